package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/branda-app/branda/internal/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SummaryRepository implements domain.SummaryRepository using MongoDB
type SummaryRepository struct {
	coll *mongo.Collection
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *DB) *SummaryRepository {
	return &SummaryRepository{coll: db.Collection("conversation_summaries")}
}

// Upsert writes the summary for a conversation, replacing any previous run.
// At most one document exists per (tenant, conversation) pair.
func (r *SummaryRepository) Upsert(ctx context.Context, summary *domain.ConversationSummary) error {
	tenantID, err := guardInsert(ctx, summary.TenantID)
	if err != nil {
		return err
	}
	summary.TenantID = tenantID

	now := time.Now().UTC()
	filter := bson.M{
		tenantField:      tenantID,
		"conversationId": summary.ConversationID,
	}
	update := bson.M{
		"$set": bson.M{
			"userId":               summary.UserID,
			"summary":              summary.Summary,
			"keyPoints":            summary.KeyPoints,
			"entities":             summary.Entities,
			"lastMessageTimestamp": summary.LastMessageTimestamp,
			"updatedAt":            now,
		},
		"$setOnInsert": bson.M{
			"_id":       uuid.New(),
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored domain.ConversationSummary
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return fmt.Errorf("failed to upsert summary: %w", err)
	}

	summary.ID = stored.ID
	summary.CreatedAt = stored.CreatedAt
	summary.UpdatedAt = stored.UpdatedAt
	return nil
}

// GetByConversation retrieves the summary for one conversation
func (r *SummaryRepository) GetByConversation(ctx context.Context, conversationID uuid.UUID) (*domain.ConversationSummary, error) {
	filter, err := scopedFilter(ctx, bson.M{"conversationId": conversationID})
	if err != nil {
		return nil, err
	}

	var summary domain.ConversationSummary
	if err := r.coll.FindOne(ctx, filter).Decode(&summary); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find summary: %w", err)
	}
	return &summary, nil
}

// ListByPeriod returns summaries whose last message falls within [start, end)
func (r *SummaryRepository) ListByPeriod(ctx context.Context, start, end time.Time) ([]domain.ConversationSummary, error) {
	filter, err := scopedFilter(ctx, bson.M{
		"lastMessageTimestamp": bson.M{"$gte": start, "$lt": end},
	})
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "lastMessageTimestamp", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer cursor.Close(ctx)

	summaries := []domain.ConversationSummary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("failed to decode summaries: %w", err)
	}
	return summaries, nil
}
