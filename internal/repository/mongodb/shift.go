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

// ShiftRepository implements domain.ShiftRepository using MongoDB
type ShiftRepository struct {
	coll *mongo.Collection
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *DB) *ShiftRepository {
	return &ShiftRepository{coll: db.Collection("shifts")}
}

// Create inserts a new shift
func (r *ShiftRepository) Create(ctx context.Context, shift *domain.Shift) error {
	tenantID, err := guardInsert(ctx, shift.TenantID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	shift.TenantID = tenantID
	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	shift.CreatedAt = now
	shift.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, shift); err != nil {
		return fmt.Errorf("failed to insert shift: %w", err)
	}
	return nil
}

// ListByEmployee returns one employee's shifts starting within [start, end)
func (r *ShiftRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID, start, end time.Time) ([]domain.Shift, error) {
	filter, err := scopedFilter(ctx, bson.M{
		"employeeId": employeeID,
		"start":      bson.M{"$gte": start, "$lt": end},
	})
	if err != nil {
		return nil, err
	}
	return r.find(ctx, filter)
}

// ListByPeriod returns all shifts starting within [start, end)
func (r *ShiftRepository) ListByPeriod(ctx context.Context, start, end time.Time) ([]domain.Shift, error) {
	filter, err := scopedFilter(ctx, bson.M{"start": bson.M{"$gte": start, "$lt": end}})
	if err != nil {
		return nil, err
	}
	return r.find(ctx, filter)
}

func (r *ShiftRepository) find(ctx context.Context, filter bson.M) ([]domain.Shift, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer cursor.Close(ctx)

	shifts := []domain.Shift{}
	if err := cursor.All(ctx, &shifts); err != nil {
		return nil, fmt.Errorf("failed to decode shifts: %w", err)
	}
	return shifts, nil
}

// Delete removes a shift
func (r *ShiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	filter, err := scopedFilter(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
