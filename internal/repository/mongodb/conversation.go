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

// ConversationRepository implements domain.ConversationRepository using MongoDB
type ConversationRepository struct {
	coll *mongo.Collection
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *DB) *ConversationRepository {
	return &ConversationRepository{coll: db.Collection("conversations")}
}

// Create inserts a new conversation
func (r *ConversationRepository) Create(ctx context.Context, conv *domain.Conversation) error {
	tenantID, err := guardInsert(ctx, conv.TenantID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	conv.TenantID = tenantID
	if conv.ID == uuid.Nil {
		conv.ID = uuid.New()
	}
	if conv.Messages == nil {
		conv.Messages = []domain.Message{}
	}
	conv.IsActive = true
	conv.LastActivity = now
	conv.CreatedAt = now
	conv.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, conv); err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}
	return nil
}

// Get retrieves a conversation visible to the current tenant
func (r *ConversationRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	filter, err := scopedFilter(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}

	var conv domain.Conversation
	if err := r.coll.FindOne(ctx, filter).Decode(&conv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}
	return &conv, nil
}

// ListByUser returns a user's conversations, most recent activity first
func (r *ConversationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Conversation, error) {
	filter, err := scopedFilter(ctx, bson.M{"userId": userID, "isActive": true})
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "lastActivity", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer cursor.Close(ctx)

	conversations := []domain.Conversation{}
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, fmt.Errorf("failed to decode conversations: %w", err)
	}
	return conversations, nil
}

// AppendMessage pushes a message and bumps lastActivity in one update.
// The filter excludes documents already holding the message id, so a
// redelivered job re-running the same append is a no-op instead of a
// duplicate turn.
func (r *ConversationRepository) AppendMessage(ctx context.Context, id uuid.UUID, msg domain.Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	filter, err := scopedFilter(ctx, bson.M{
		"_id":         id,
		"messages.id": bson.M{"$ne": msg.ID},
	})
	if err != nil {
		return err
	}

	update := bson.M{
		"$push": bson.M{"messages": msg},
		"$set": bson.M{
			"lastActivity": time.Now().UTC(),
			"updatedAt":    time.Now().UTC(),
		},
	}
	if err := guardUpdate(update); err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	if res.MatchedCount == 0 {
		// Unmatched means the conversation is missing or the message id
		// is already present; only the former is an error.
		existsFilter, err := scopedFilter(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		count, err := r.coll.CountDocuments(ctx, existsFilter)
		if err != nil {
			return fmt.Errorf("failed to check conversation: %w", err)
		}
		if count == 0 {
			return domain.ErrNotFound
		}
	}
	return nil
}

// Deactivate flips a conversation inactive. Threads are never hard-deleted.
func (r *ConversationRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	filter, err := scopedFilter(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}}
	if err := guardUpdate(update); err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate conversation: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
