package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/warblerhq/warbler/internal/logger"
	"github.com/warblerhq/warbler/internal/models"
)

// SocialReader answers the derived followers/following queries.
type SocialReader interface {
	Followers(ctx context.Context, userID uuid.UUID) ([]models.UserDB, error)
	Following(ctx context.Context, userID uuid.UUID) ([]models.UserDB, error)
}

// NewFollowersHandler returns an HTTP handler that lists the users following
// the user named in the path, in follow order.
// @Summary List followers
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} handlers.UsersResponse
// @Router /users/{userID}/followers [get]
func NewFollowersHandler(svc SocialReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "Invalid user id"})
			return
		}

		users, err := svc.Followers(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("failed to list followers", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(UsersResponse{Users: users})
	}
}

// NewFollowingHandler returns an HTTP handler that lists the users the user
// named in the path is following, in follow order.
// @Summary List following
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} handlers.UsersResponse
// @Router /users/{userID}/following [get]
func NewFollowingHandler(svc SocialReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "Invalid user id"})
			return
		}

		users, err := svc.Following(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("failed to list following", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(UserErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(UsersResponse{Users: users})
	}
}
