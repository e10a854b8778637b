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

// AccountingRepository implements domain.AccountingRepository using MongoDB
type AccountingRepository struct {
	coll *mongo.Collection
}

// NewAccountingRepository creates a new accounting repository
func NewAccountingRepository(db *DB) *AccountingRepository {
	return &AccountingRepository{coll: db.Collection("accounting_entries")}
}

// Create inserts a new accounting entry
func (r *AccountingRepository) Create(ctx context.Context, entry *domain.AccountingEntry) error {
	tenantID, err := guardInsert(ctx, entry.TenantID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	entry.TenantID = tenantID
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Date.IsZero() {
		entry.Date = now
	}
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert accounting entry: %w", err)
	}
	return nil
}

// Get retrieves an entry visible to the current tenant
func (r *AccountingRepository) Get(ctx context.Context, id uuid.UUID) (*domain.AccountingEntry, error) {
	filter, err := scopedFilter(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}

	var entry domain.AccountingEntry
	if err := r.coll.FindOne(ctx, filter).Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find accounting entry: %w", err)
	}
	return &entry, nil
}

// ListByPeriod returns entries dated within [start, end). An empty entryType
// matches both income and expense.
func (r *AccountingRepository) ListByPeriod(ctx context.Context, entryType domain.AccountingEntryType, start, end time.Time) ([]domain.AccountingEntry, error) {
	base := bson.M{"date": bson.M{"$gte": start, "$lt": end}}
	if entryType != "" {
		base["type"] = entryType
	}

	filter, err := scopedFilter(ctx, base)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounting entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []domain.AccountingEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode accounting entries: %w", err)
	}
	return entries, nil
}

// Delete removes an entry
func (r *AccountingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	filter, err := scopedFilter(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete accounting entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
