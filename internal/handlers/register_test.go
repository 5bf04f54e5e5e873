package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/warblerhq/warbler/internal/models"
	"github.com/warblerhq/warbler/internal/services"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name       string
		body       string
		setup      func(m *MockRegisterer)
		wantStatus int
		wantError  string
	}{
		{
			name: "successful registration",
			body: `{"username":"alice","email":"alice@example.com","password":"secret"}`,
			setup: func(m *MockRegisterer) {
				m.EXPECT().
					Signup(gomock.Any(), "alice", "alice@example.com", "secret", gomock.Nil()).
					Return(&models.UserDB{UserID: userID, Username: "alice", Email: "alice@example.com"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "missing password",
			body: `{"username":"alice","email":"alice@example.com","password":""}`,
			setup: func(m *MockRegisterer) {
				m.EXPECT().
					Signup(gomock.Any(), "alice", "alice@example.com", "", gomock.Nil()).
					Return(nil, services.ErrPasswordRequired)
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Password is required",
		},
		{
			name: "duplicate username or email",
			body: `{"username":"alice","email":"alice@example.com","password":"secret"}`,
			setup: func(m *MockRegisterer) {
				m.EXPECT().
					Signup(gomock.Any(), "alice", "alice@example.com", "secret", gomock.Nil()).
					Return(nil, services.ErrUserAlreadyExists)
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Username or email already exists",
		},
		{
			name:       "malformed body",
			body:       `{not json`,
			setup:      func(m *MockRegisterer) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request body",
		},
		{
			name: "service failure",
			body: `{"username":"alice","email":"alice@example.com","password":"secret"}`,
			setup: func(m *MockRegisterer) {
				m.EXPECT().
					Signup(gomock.Any(), "alice", "alice@example.com", "secret", gomock.Nil()).
					Return(nil, errors.New("db error"))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			tt.setup(mockSvc)

			handler := NewRegisterHandler(mockSvc)
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantError != "" {
				var resp RegisterErrorResponse
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.wantError, resp.Error)
				return
			}

			var resp RegisterResponse
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "User registered successfully", resp.Message)
			assert.Equal(t, userID, resp.User.UserID)
			assert.Equal(t, "alice", resp.User.Username)
		})
	}
}

func TestRegisterHandler_PasswordNotSerialized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRegisterer(ctrl)
	mockSvc.EXPECT().
		Signup(gomock.Any(), "alice", "alice@example.com", "secret", gomock.Nil()).
		Return(&models.UserDB{UserID: uuid.New(), Username: "alice", PasswordHash: "$2a$10$hash"}, nil)

	handler := NewRegisterHandler(mockSvc)
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(`{"username":"alice","email":"alice@example.com","password":"secret"}`))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "hash")
	assert.NotContains(t, rr.Body.String(), "password")
}
