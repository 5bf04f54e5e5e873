package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoggingMiddleware(t *testing.T) {
	log := zap.NewNop().Sugar()

	t.Run("passes the request through and sets X-Request-ID", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			w.Write([]byte("body"))
		})

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rr := httptest.NewRecorder()

		LoggingMiddleware(log)(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.Equal(t, "body", rr.Body.String())

		reqID := rr.Header().Get("X-Request-ID")
		_, err := uuid.Parse(reqID)
		assert.NoError(t, err)
	})

	t.Run("each request gets its own id", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		handler := LoggingMiddleware(log)(next)

		rr1 := httptest.NewRecorder()
		handler.ServeHTTP(rr1, httptest.NewRequest(http.MethodGet, "/", nil))
		rr2 := httptest.NewRecorder()
		handler.ServeHTTP(rr2, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEqual(t, rr1.Header().Get("X-Request-ID"), rr2.Header().Get("X-Request-ID"))
	})
}
