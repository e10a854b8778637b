package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/branda-app/branda/internal/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PerformanceRepository implements domain.PerformanceRepository using MongoDB
type PerformanceRepository struct {
	coll *mongo.Collection
}

// NewPerformanceRepository creates a new performance review repository
func NewPerformanceRepository(db *DB) *PerformanceRepository {
	return &PerformanceRepository{coll: db.Collection("performance_reviews")}
}

// Create inserts a new performance review
func (r *PerformanceRepository) Create(ctx context.Context, review *domain.PerformanceReview) error {
	tenantID, err := guardInsert(ctx, review.TenantID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	review.TenantID = tenantID
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = now
	review.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to insert performance review: %w", err)
	}
	return nil
}

// ListByEmployee returns one employee's reviews, newest first
func (r *PerformanceRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]domain.PerformanceReview, error) {
	filter, err := scopedFilter(ctx, bson.M{"employeeId": employeeID})
	if err != nil {
		return nil, err
	}
	return r.find(ctx, filter)
}

// List returns all reviews for the current tenant, newest first
func (r *PerformanceRepository) List(ctx context.Context) ([]domain.PerformanceReview, error) {
	filter, err := scopedFilter(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	return r.find(ctx, filter)
}

func (r *PerformanceRepository) find(ctx context.Context, filter bson.M) ([]domain.PerformanceReview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list performance reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []domain.PerformanceReview{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode performance reviews: %w", err)
	}
	return reviews, nil
}

// Delete removes a review
func (r *PerformanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	filter, err := scopedFilter(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete performance review: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
