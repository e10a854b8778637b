package queue

import (
	"encoding/json"
	"fmt"

	"github.com/branda-app/branda/internal/domain"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task types
const (
	TypeChatMessage         = "chat:message"
	TypeConversationSummary = "summary:generate"
)

// Queue names
const (
	QueueChat    = "chat"
	QueueSummary = "summary"
)

// ChatMessagePayload is the body of a chat turn job. It carries the full
// user snapshot so the worker does not re-resolve the user. The message id
// is fixed at enqueue time so a redelivered job re-appends nothing.
type ChatMessagePayload struct {
	User           domain.UserContext `json:"user"`
	ConversationID uuid.UUID          `json:"conversation_id"`
	MessageID      uuid.UUID          `json:"message_id"`
	Message        string             `json:"message"`
}

// SummaryPayload is the body of a summarization job
type SummaryPayload struct {
	TenantID       uuid.UUID `json:"tenant_id"`
	UserID         uuid.UUID `json:"user_id"`
	ConversationID uuid.UUID `json:"conversation_id"`
}

// NewChatMessageTask builds the asynq task for one chat turn
func NewChatMessageTask(payload ChatMessagePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat payload: %w", err)
	}
	return asynq.NewTask(TypeChatMessage, data), nil
}

// NewSummaryTask builds the asynq task for one summarization run
func NewSummaryTask(payload SummaryPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summary payload: %w", err)
	}
	return asynq.NewTask(TypeConversationSummary, data), nil
}
