package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/branda-app/branda/internal/api/middleware"
	"github.com/branda-app/branda/internal/api/response"
	"github.com/branda-app/branda/internal/domain"
	"github.com/branda-app/branda/internal/queue"
	"github.com/branda-app/branda/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// parseUUIDParam reads a UUID from the URL path
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}

// ChatEnqueuer hands a chat turn to the background queue
type ChatEnqueuer interface {
	EnqueueChatMessage(ctx context.Context, payload queue.ChatMessagePayload) (string, error)
}

// ChatHandler handles the conversational assistant endpoints. Messages are
// accepted and queued; the reply is produced by a worker and read back via
// the conversation history.
type ChatHandler struct {
	conversations *service.ConversationService
	enqueuer      ChatEnqueuer
}

// NewChatHandler creates a new chat handler
func NewChatHandler(conversations *service.ConversationService, enqueuer ChatEnqueuer) *ChatHandler {
	return &ChatHandler{
		conversations: conversations,
		enqueuer:      enqueuer,
	}
}

// SendMessage accepts a chat message and queues it for processing. With no
// conversation id a fresh thread is started.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserContext(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input struct {
		ConversationID *uuid.UUID `json:"conversation_id,omitempty"`
		Message        string     `json:"message" validate:"required,max=2000"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	// A supplied id that resolves is reused; anything else starts a fresh
	// thread so the message is never dropped.
	var conversationID uuid.UUID
	if input.ConversationID != nil {
		conv, err := h.conversations.Get(r.Context(), user.UserID, *input.ConversationID)
		switch {
		case err == nil:
			conversationID = conv.ID
		case errors.Is(err, domain.ErrNotFound):
			fresh, err := h.conversations.Create(r.Context(), user.UserID, "")
			if err != nil {
				response.FromError(w, err)
				return
			}
			conversationID = fresh.ID
		default:
			response.FromError(w, err)
			return
		}
	} else {
		conv, err := h.conversations.Create(r.Context(), user.UserID, "")
		if err != nil {
			response.FromError(w, err)
			return
		}
		conversationID = conv.ID
	}

	jobID, err := h.enqueuer.EnqueueChatMessage(r.Context(), queue.ChatMessagePayload{
		User:           user,
		ConversationID: conversationID,
		MessageID:      uuid.New(),
		Message:        input.Message,
	})
	if err != nil {
		response.InternalError(w, "failed to queue message")
		return
	}

	response.Accepted(w, map[string]any{
		"job_id":          jobID,
		"conversation_id": conversationID,
	})
}

// CreateConversation starts a new conversation thread
func (h *ChatHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserContext(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input struct {
		Title string `json:"title" validate:"omitempty,max=255"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	conv, err := h.conversations.Create(r.Context(), user.UserID, input.Title)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, conv)
}

// ListConversations returns the caller's conversations, most recent first
func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserContext(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			response.BadRequest(w, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	convs, err := h.conversations.List(r.Context(), user.UserID, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, convs)
}

// GetConversation returns one conversation with its messages
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserContext(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	id, ok := parseUUIDParam(r, "conversationID")
	if !ok {
		response.BadRequest(w, "invalid conversation ID")
		return
	}

	conv, err := h.conversations.Get(r.Context(), user.UserID, id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, conv)
}

// GetHistory returns a conversation's messages, cache first
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserContext(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	id, ok := parseUUIDParam(r, "conversationID")
	if !ok {
		response.BadRequest(w, "invalid conversation ID")
		return
	}

	messages, err := h.conversations.GetHistory(r.Context(), user.UserID, id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, messages)
}

// DeactivateConversation closes a conversation thread
func (h *ChatHandler) DeactivateConversation(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserContext(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	id, ok := parseUUIDParam(r, "conversationID")
	if !ok {
		response.BadRequest(w, "invalid conversation ID")
		return
	}

	if err := h.conversations.Deactivate(r.Context(), user.UserID, id); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// GetSuggestions returns starter questions seeded from one conversation's
// summary
func (h *ChatHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserContext(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	id, ok := parseUUIDParam(r, "conversationID")
	if !ok {
		response.BadRequest(w, "invalid conversation ID")
		return
	}

	count := 0
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.BadRequest(w, "count must be a positive integer")
			return
		}
		count = parsed
	}

	suggestions := h.conversations.Suggestions(r.Context(), user.UserID, id, count)
	response.OK(w, suggestions)
}
