package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/branda-app/branda/internal/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EmployeeRepository implements domain.EmployeeRepository using MongoDB
type EmployeeRepository struct {
	coll *mongo.Collection
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *DB) *EmployeeRepository {
	return &EmployeeRepository{coll: db.Collection("employees")}
}

// Create inserts a new employee
func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	tenantID, err := guardInsert(ctx, employee.TenantID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	employee.TenantID = tenantID
	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}
	employee.IsActive = true
	employee.CreatedAt = now
	employee.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, employee); err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

// Get retrieves an employee visible to the current tenant
func (r *EmployeeRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	filter, err := scopedFilter(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}

	var employee domain.Employee
	if err := r.coll.FindOne(ctx, filter).Decode(&employee); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return &employee, nil
}

// List returns employees, optionally only active ones
func (r *EmployeeRepository) List(ctx context.Context, activeOnly bool) ([]domain.Employee, error) {
	base := bson.M{}
	if activeOnly {
		base["isActive"] = true
	}

	filter, err := scopedFilter(ctx, base)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer cursor.Close(ctx)

	employees := []domain.Employee{}
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}
	return employees, nil
}

// FindByName matches an employee by first or last name, case-insensitive
func (r *EmployeeRepository) FindByName(ctx context.Context, name string) (*domain.Employee, error) {
	pattern := primitive.Regex{Pattern: "^" + name + "$", Options: "i"}
	filter, err := scopedFilter(ctx, bson.M{
		"$or": []bson.M{
			{"firstName": pattern},
			{"lastName": pattern},
		},
	})
	if err != nil {
		return nil, err
	}

	var employee domain.Employee
	if err := r.coll.FindOne(ctx, filter).Decode(&employee); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return &employee, nil
}

// Update applies a partial update to an employee
func (r *EmployeeRepository) Update(ctx context.Context, id uuid.UUID, update *domain.EmployeeUpdate) error {
	filter, err := scopedFilter(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.FirstName != nil {
		set["firstName"] = *update.FirstName
	}
	if update.LastName != nil {
		set["lastName"] = *update.LastName
	}
	if update.Position != nil {
		set["position"] = *update.Position
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.IsActive != nil {
		set["isActive"] = *update.IsActive
	}

	doc := bson.M{"$set": set}
	if err := guardUpdate(doc); err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx, filter, doc)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an employee
func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	filter, err := scopedFilter(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
