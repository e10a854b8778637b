package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MessageRole identifies the author of a conversation turn
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// Message is one turn inside a conversation. Messages are embedded in the
// conversation document and strictly append-only in insertion order. The
// id makes appends idempotent: pushing the same id twice is a no-op.
type Message struct {
	ID        uuid.UUID   `json:"id" bson:"id"`
	Role      MessageRole `json:"role" bson:"role"`
	Content   string      `json:"content" bson:"content"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}

// Conversation is a thread of turns for one user within one tenant.
// The tenant id is immutable after creation; the thread is never
// hard-deleted, only flipped inactive.
type Conversation struct {
	ID           uuid.UUID      `json:"id" bson:"_id"`
	TenantID     uuid.UUID      `json:"tenant_id" bson:"tenantId"`
	UserID       uuid.UUID      `json:"user_id" bson:"userId"`
	Title        string         `json:"title" bson:"title"`
	Messages     []Message      `json:"messages" bson:"messages"`
	LastActivity time.Time      `json:"last_activity" bson:"lastActivity"`
	Context      map[string]any `json:"context,omitempty" bson:"context,omitempty"`
	IsActive     bool           `json:"is_active" bson:"isActive"`
	CreatedAt    time.Time      `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updatedAt"`
}

// ConversationRepository defines the interface for conversation storage.
// AppendMessage must be an atomic push plus last-activity bump, never a
// read-modify-write of the whole message array.
type ConversationRepository interface {
	Create(ctx context.Context, conv *Conversation) error
	Get(ctx context.Context, id uuid.UUID) (*Conversation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Conversation, error)
	AppendMessage(ctx context.Context, id uuid.UUID, msg Message) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}
