package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/warblerhq/warbler/internal/logger"
	"github.com/warblerhq/warbler/internal/middlewares"
	"github.com/warblerhq/warbler/internal/models"
	"github.com/warblerhq/warbler/internal/services"
)

// UserLister defines the interface for listing users.
type UserLister interface {
	List(ctx context.Context) ([]models.UserDB, error)
}

// UserGetter defines the interface for fetching a single user.
type UserGetter interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserDeleter defines the interface for deleting a user.
type UserDeleter interface {
	Delete(ctx context.Context, userID uuid.UUID) error
}

// UsersResponse represents a list of users
// swagger:model UsersResponse
type UsersResponse struct {
	Users []models.UserDB `json:"users"`
}

// UserErrorResponse represents an error response for user endpoints
// swagger:model UserErrorResponse
type UserErrorResponse struct {
	// Error message
	// default: User not found
	Error string `json:"error"`
}

// NewListUsersHandler returns an HTTP handler that lists all users.
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.UsersResponse
// @Router /users [get]
func NewListUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("failed to list users", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(UsersResponse{Users: users})
	}
}

// NewGetUserHandler returns an HTTP handler that shows a user profile.
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} models.UserDB
// @Failure 404 {object} handlers.UserErrorResponse "User not found"
// @Router /users/{userID} [get]
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "Invalid user id"})
			return
		}

		user, err := svc.Get(r.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(UserErrorResponse{Error: "User not found"})
				return
			}
			logger.Log.Errorw("failed to get user", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(user)
	}
}

// NewDeleteUserHandler returns an HTTP handler that deletes a user. Only the
// authenticated user may delete their own account; messages, likes, and
// follow edges cascade with it.
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 "User deleted"
// @Failure 403 {object} handlers.UserErrorResponse "Cannot delete another user"
// @Failure 404 {object} handlers.UserErrorResponse "User not found"
// @Router /users/{userID} [delete]
func NewDeleteUserHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "Invalid user id"})
			return
		}

		if middlewares.GetUserIDFromContext(r.Context()) != userID {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "Cannot delete another user"})
			return
		}

		if err := svc.Delete(r.Context(), userID); err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(UserErrorResponse{Error: "User not found"})
				return
			}
			logger.Log.Errorw("failed to delete user", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
