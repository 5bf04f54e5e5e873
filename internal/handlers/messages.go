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

// MessagePoster defines the interface for posting a message.
type MessagePoster interface {
	Post(ctx context.Context, userID uuid.UUID, text string) (*models.MessageDB, error)
}

// MessageGetter defines the interface for fetching a single message.
type MessageGetter interface {
	Get(ctx context.Context, messageID int64) (*models.MessageDB, error)
}

// MessageLister defines the interface for listing messages.
type MessageLister interface {
	MessagesBy(ctx context.Context, userID uuid.UUID) ([]models.MessageDB, error)
}

// MessageTimeline defines the interface for the global message timeline.
type MessageTimeline interface {
	Timeline(ctx context.Context, limit, offset uint64) ([]models.MessageDB, error)
}

// PostMessageRequest represents the JSON body for posting a message
// swagger:model PostMessageRequest
type PostMessageRequest struct {
	// Message text
	// required: true
	// default: Hello, Warbler!
	Text string `json:"text"`
}

// MessagesResponse represents a list of messages
// swagger:model MessagesResponse
type MessagesResponse struct {
	Messages []models.MessageDB `json:"messages"`
}

// MessageErrorResponse represents an error response for message endpoints
// swagger:model MessageErrorResponse
type MessageErrorResponse struct {
	// Error message
	// default: Message text is required
	Error string `json:"error"`
}

// NewPostMessageHandler returns an HTTP handler that posts a message authored
// by the authenticated user.
// @Summary Post a message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postMessageRequest body handlers.PostMessageRequest true "Message to post"
// @Success 201 {object} models.MessageDB
// @Failure 400 {object} handlers.MessageErrorResponse "Empty text / unknown author"
// @Router /messages [post]
func NewPostMessageHandler(svc MessagePoster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PostMessageRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(MessageErrorResponse{Error: "Invalid request body"})
			return
		}

		userID := middlewares.GetUserIDFromContext(r.Context())

		msg, err := svc.Post(r.Context(), userID, req.Text)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMessageTextRequired):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(MessageErrorResponse{Error: "Message text is required"})
			case errors.Is(err, services.ErrAuthorNotFound):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(MessageErrorResponse{Error: "Author not found"})
			default:
				logger.Log.Errorw("failed to post message", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(MessageErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(msg)
	}
}

// NewGetMessageHandler returns an HTTP handler that shows a single message.
// @Summary Get a message
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param messageID path int true "Message ID"
// @Success 200 {object} models.MessageDB
// @Failure 404 {object} handlers.MessageErrorResponse "Message not found"
// @Router /messages/{messageID} [get]
func NewGetMessageHandler(svc MessageGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := strconv.ParseInt(chi.URLParam(r, "messageID"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(MessageErrorResponse{Error: "Invalid message id"})
			return
		}

		msg, err := svc.Get(r.Context(), messageID)
		if err != nil {
			if errors.Is(err, services.ErrMessageNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(MessageErrorResponse{Error: "Message not found"})
				return
			}
			logger.Log.Errorw("failed to get message", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(MessageErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(msg)
	}
}

// defaultTimelineLimit caps a timeline page when no limit is given.
const defaultTimelineLimit = 100

// NewTimelineHandler returns an HTTP handler that lists all messages in
// insertion order, paged with limit/offset query parameters.
// @Summary List messages
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} handlers.MessagesResponse
// @Router /messages [get]
func NewTimelineHandler(svc MessageTimeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := uint64(defaultTimelineLimit)
		if v := r.URL.Query().Get("limit"); v != "" {
			parsed, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(MessageErrorResponse{Error: "Invalid limit"})
				return
			}
			limit = parsed
		}

		var offset uint64
		if v := r.URL.Query().Get("offset"); v != "" {
			parsed, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(MessageErrorResponse{Error: "Invalid offset"})
				return
			}
			offset = parsed
		}

		msgs, err := svc.Timeline(r.Context(), limit, offset)
		if err != nil {
			logger.Log.Errorw("failed to list timeline", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(MessageErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MessagesResponse{Messages: msgs})
	}
}

// NewUserMessagesHandler returns an HTTP handler that lists the messages
// authored by the user named in the path, in insertion order.
// @Summary List a user's messages
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} handlers.MessagesResponse
// @Router /users/{userID}/messages [get]
func NewUserMessagesHandler(svc MessageLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(MessageErrorResponse{Error: "Invalid user id"})
			return
		}

		msgs, err := svc.MessagesBy(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("failed to list messages", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(MessageErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MessagesResponse{Messages: msgs})
	}
}
