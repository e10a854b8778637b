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

// SaleRepository implements domain.SaleRepository using MongoDB
type SaleRepository struct {
	coll *mongo.Collection
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *DB) *SaleRepository {
	return &SaleRepository{coll: db.Collection("sales")}
}

// Create inserts a new sale
func (r *SaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	tenantID, err := guardInsert(ctx, sale.TenantID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	sale.TenantID = tenantID
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.Date.IsZero() {
		sale.Date = now
	}
	sale.CreatedAt = now
	sale.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, sale); err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}
	return nil
}

// Get retrieves a sale visible to the current tenant
func (r *SaleRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	filter, err := scopedFilter(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}

	var sale domain.Sale
	if err := r.coll.FindOne(ctx, filter).Decode(&sale); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale: %w", err)
	}
	return &sale, nil
}

// ListByPeriod returns sales dated within [start, end)
func (r *SaleRepository) ListByPeriod(ctx context.Context, start, end time.Time) ([]domain.Sale, error) {
	filter, err := scopedFilter(ctx, bson.M{"date": bson.M{"$gte": start, "$lt": end}})
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer cursor.Close(ctx)

	sales := []domain.Sale{}
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("failed to decode sales: %w", err)
	}
	return sales, nil
}

// Delete removes a sale
func (r *SaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	filter, err := scopedFilter(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
