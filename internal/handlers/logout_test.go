package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("successful logout", func(t *testing.T) {
		mockSvc := NewMockLogouter(ctrl)
		mockTokens := NewMockTokenExtractor(ctrl)

		mockTokens.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token123", nil)
		mockSvc.EXPECT().Logout(gomock.Any(), "token123").Return(nil)

		handler := NewLogoutHandler(mockSvc, mockTokens)
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.Header.Set("Authorization", "Bearer token123")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"Logged out"}`, rr.Body.String())
	})

	t.Run("missing token", func(t *testing.T) {
		mockSvc := NewMockLogouter(ctrl)
		mockTokens := NewMockTokenExtractor(ctrl)

		mockTokens.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("", errors.New("no auth header"))

		handler := NewLogoutHandler(mockSvc, mockTokens)
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("service failure", func(t *testing.T) {
		mockSvc := NewMockLogouter(ctrl)
		mockTokens := NewMockTokenExtractor(ctrl)

		mockTokens.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token123", nil)
		mockSvc.EXPECT().Logout(gomock.Any(), "token123").Return(errors.New("redis error"))

		handler := NewLogoutHandler(mockSvc, mockTokens)
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.Header.Set("Authorization", "Bearer token123")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
