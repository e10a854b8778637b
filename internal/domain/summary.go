package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SummaryEntity is one extracted (type, value) pair, e.g. ("produit", "croissant").
type SummaryEntity struct {
	Type  string `json:"type" bson:"type"`
	Value string `json:"value" bson:"value"`
}

// SummaryContent is the structured result of one summarization run.
type SummaryContent struct {
	Summary   string          `json:"summary"`
	KeyPoints []string        `json:"keyPoints"`
	Entities  []SummaryEntity `json:"entities"`
}

// ConversationSummary is the compacted view of a conversation. At most one
// document exists per (tenant, conversation) pair; writes are upserts and
// each run fully supersedes the previous content.
type ConversationSummary struct {
	ID                   uuid.UUID       `json:"id" bson:"_id"`
	TenantID             uuid.UUID       `json:"tenant_id" bson:"tenantId"`
	UserID               uuid.UUID       `json:"user_id" bson:"userId"`
	ConversationID       uuid.UUID       `json:"conversation_id" bson:"conversationId"`
	Summary              string          `json:"summary" bson:"summary"`
	KeyPoints            []string        `json:"key_points" bson:"keyPoints"`
	Entities             []SummaryEntity `json:"entities" bson:"entities"`
	LastMessageTimestamp time.Time       `json:"last_message_timestamp" bson:"lastMessageTimestamp"`
	CreatedAt            time.Time       `json:"created_at" bson:"createdAt"`
	UpdatedAt            time.Time       `json:"updated_at" bson:"updatedAt"`
}

// SummaryRepository defines the interface for summary storage
type SummaryRepository interface {
	Upsert(ctx context.Context, summary *ConversationSummary) error
	GetByConversation(ctx context.Context, conversationID uuid.UUID) (*ConversationSummary, error)
	ListByPeriod(ctx context.Context, start, end time.Time) ([]ConversationSummary, error)
}
