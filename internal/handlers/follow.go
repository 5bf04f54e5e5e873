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
	"github.com/warblerhq/warbler/internal/services"
)

// FollowService defines the follow/unfollow operations on the service.
type FollowService interface {
	Follow(ctx context.Context, followerID, followedID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followedID uuid.UUID) error
}

// FollowResponse represents a successful follow/unfollow response
// swagger:model FollowResponse
type FollowResponse struct {
	// Success message
	// default: Now following
	Message string `json:"message"`
}

// FollowErrorResponse represents an error response for follow endpoints
// swagger:model FollowErrorResponse
type FollowErrorResponse struct {
	// Error message
	// default: User not found
	Error string `json:"error"`
}

// NewFollowHandler returns an HTTP handler that makes the authenticated user
// follow the user named in the path. Following twice is a no-op.
// @Summary Follow a user
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User to follow"
// @Success 200 {object} handlers.FollowResponse "Now following"
// @Failure 400 {object} handlers.FollowErrorResponse "Cannot follow yourself"
// @Failure 404 {object} handlers.FollowErrorResponse "User not found"
// @Router /users/follow/{userID} [post]
func NewFollowHandler(svc FollowService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		followedID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(FollowErrorResponse{Error: "Invalid user id"})
			return
		}

		followerID := middlewares.GetUserIDFromContext(r.Context())

		if err := svc.Follow(r.Context(), followerID, followedID); err != nil {
			switch {
			case errors.Is(err, services.ErrCannotFollowSelf):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(FollowErrorResponse{Error: "Cannot follow yourself"})
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(FollowErrorResponse{Error: "User not found"})
			default:
				logger.Log.Errorw("failed to follow", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(FollowErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(FollowResponse{Message: "Now following"})
	}
}

// NewUnfollowHandler returns an HTTP handler that removes the authenticated
// user's follow of the user named in the path.
// @Summary Unfollow a user
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User to stop following"
// @Success 200 {object} handlers.FollowResponse "No longer following"
// @Router /users/stop-following/{userID} [post]
func NewUnfollowHandler(svc FollowService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		followedID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(FollowErrorResponse{Error: "Invalid user id"})
			return
		}

		followerID := middlewares.GetUserIDFromContext(r.Context())

		if err := svc.Unfollow(r.Context(), followerID, followedID); err != nil {
			logger.Log.Errorw("failed to unfollow", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(FollowErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(FollowResponse{Message: "No longer following"})
	}
}
