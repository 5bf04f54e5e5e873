package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/warblerhq/warbler/internal/logger"
	"github.com/warblerhq/warbler/internal/middlewares"
	"github.com/warblerhq/warbler/internal/models"
	"github.com/warblerhq/warbler/internal/services"
)

// Liker defines the like operations on the service.
type Liker interface {
	Like(ctx context.Context, userID uuid.UUID, messageID int64) error
	Unlike(ctx context.Context, userID uuid.UUID, messageID int64) error
	Likers(ctx context.Context, messageID int64) ([]models.UserDB, error)
}

// LikeResponse represents a successful like/unlike response
// swagger:model LikeResponse
type LikeResponse struct {
	// Success message
	// default: Liked
	Message string `json:"message"`
}

// LikeErrorResponse represents an error response for like endpoints
// swagger:model LikeErrorResponse
type LikeErrorResponse struct {
	// Error message
	// default: Like target not found
	Error string `json:"error"`
}

// NewLikeHandler returns an HTTP handler that likes a message as the
// authenticated user. Liking twice is a no-op.
// @Summary Like a message
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param messageID path int true "Message ID"
// @Success 200 {object} handlers.LikeResponse "Liked"
// @Failure 404 {object} handlers.LikeErrorResponse "Like target not found"
// @Router /messages/{messageID}/like [post]
func NewLikeHandler(svc Liker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := strconv.ParseInt(chi.URLParam(r, "messageID"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(LikeErrorResponse{Error: "Invalid message id"})
			return
		}

		userID := middlewares.GetUserIDFromContext(r.Context())

		if err := svc.Like(r.Context(), userID, messageID); err != nil {
			if errors.Is(err, services.ErrLikeTargetNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(LikeErrorResponse{Error: "Like target not found"})
				return
			}
			logger.Log.Errorw("failed to like", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(LikeErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(LikeResponse{Message: "Liked"})
	}
}

// NewUnlikeHandler returns an HTTP handler that removes the authenticated
// user's like of a message.
// @Summary Unlike a message
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param messageID path int true "Message ID"
// @Success 200 {object} handlers.LikeResponse "Unliked"
// @Router /messages/{messageID}/unlike [post]
func NewUnlikeHandler(svc Liker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := strconv.ParseInt(chi.URLParam(r, "messageID"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(LikeErrorResponse{Error: "Invalid message id"})
			return
		}

		userID := middlewares.GetUserIDFromContext(r.Context())

		if err := svc.Unlike(r.Context(), userID, messageID); err != nil {
			logger.Log.Errorw("failed to unlike", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(LikeErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(LikeResponse{Message: "Unliked"})
	}
}

// NewLikersHandler returns an HTTP handler that lists the users who liked a
// message, in like order.
// @Summary List users who liked a message
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param messageID path int true "Message ID"
// @Success 200 {object} handlers.UsersResponse
// @Router /messages/{messageID}/likes [get]
func NewLikersHandler(svc Liker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := strconv.ParseInt(chi.URLParam(r, "messageID"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(LikeErrorResponse{Error: "Invalid message id"})
			return
		}

		users, err := svc.Likers(r.Context(), messageID)
		if err != nil {
			logger.Log.Errorw("failed to list likers", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(LikeErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(UsersResponse{Users: users})
	}
}
