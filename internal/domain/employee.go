package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Employee is a tenant-scoped staff record
type Employee struct {
	ID        uuid.UUID `json:"id" bson:"_id"`
	TenantID  uuid.UUID `json:"tenant_id" bson:"tenantId"`
	FirstName string    `json:"first_name" bson:"firstName"`
	LastName  string    `json:"last_name" bson:"lastName"`
	Position  string    `json:"position,omitempty" bson:"position,omitempty"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	IsActive  bool      `json:"is_active" bson:"isActive"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

// EmployeeCreate represents employee creation data
type EmployeeCreate struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Position  string `json:"position,omitempty" validate:"omitempty,max=100"`
	Email     string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// EmployeeUpdate represents a partial employee update
type EmployeeUpdate struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Position  *string `json:"position,omitempty" validate:"omitempty,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// Shift is one scheduled work period for an employee
type Shift struct {
	ID         uuid.UUID `json:"id" bson:"_id"`
	TenantID   uuid.UUID `json:"tenant_id" bson:"tenantId"`
	EmployeeID uuid.UUID `json:"employee_id" bson:"employeeId"`
	Start      time.Time `json:"start" bson:"start"`
	End        time.Time `json:"end" bson:"end"`
	Notes      string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updatedAt"`
}

// ShiftCreate represents shift creation data
type ShiftCreate struct {
	EmployeeID uuid.UUID `json:"employee_id" validate:"required"`
	Start      time.Time `json:"start" validate:"required"`
	End        time.Time `json:"end" validate:"required,gtfield=Start"`
	Notes      string    `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// PerformanceReview is a periodic evaluation of an employee
type PerformanceReview struct {
	ID         uuid.UUID `json:"id" bson:"_id"`
	TenantID   uuid.UUID `json:"tenant_id" bson:"tenantId"`
	EmployeeID uuid.UUID `json:"employee_id" bson:"employeeId"`
	Period     string    `json:"period" bson:"period"`
	Score      int       `json:"score" bson:"score"`
	Comments   string    `json:"comments,omitempty" bson:"comments,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updatedAt"`
}

// PerformanceReviewCreate represents review creation data
type PerformanceReviewCreate struct {
	EmployeeID uuid.UUID `json:"employee_id" validate:"required"`
	Period     string    `json:"period" validate:"required,max=50"`
	Score      int       `json:"score" validate:"required,min=1,max=5"`
	Comments   string    `json:"comments,omitempty" validate:"omitempty,max=2000"`
}

// EmployeeRepository defines the interface for employee storage
type EmployeeRepository interface {
	Create(ctx context.Context, employee *Employee) error
	Get(ctx context.Context, id uuid.UUID) (*Employee, error)
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
	FindByName(ctx context.Context, name string) (*Employee, error)
	Update(ctx context.Context, id uuid.UUID, update *EmployeeUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ShiftRepository defines the interface for schedule storage
type ShiftRepository interface {
	Create(ctx context.Context, shift *Shift) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, start, end time.Time) ([]Shift, error)
	ListByPeriod(ctx context.Context, start, end time.Time) ([]Shift, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PerformanceRepository defines the interface for review storage
type PerformanceRepository interface {
	Create(ctx context.Context, review *PerformanceReview) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]PerformanceReview, error)
	List(ctx context.Context) ([]PerformanceReview, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
