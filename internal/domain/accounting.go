package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountingEntryType distinguishes income from expense entries
type AccountingEntryType string

const (
	EntryIncome  AccountingEntryType = "income"
	EntryExpense AccountingEntryType = "expense"
)

// AccountingEntry is a tenant-scoped bookkeeping line
type AccountingEntry struct {
	ID        uuid.UUID           `json:"id" bson:"_id"`
	TenantID  uuid.UUID           `json:"tenant_id" bson:"tenantId"`
	Type      AccountingEntryType `json:"type" bson:"type"`
	Category  string              `json:"category" bson:"category"`
	Label     string              `json:"label" bson:"label"`
	Amount    float64             `json:"amount" bson:"amount"`
	Date      time.Time           `json:"date" bson:"date"`
	CreatedAt time.Time           `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updatedAt"`
}

// AccountingEntryCreate represents entry creation data
type AccountingEntryCreate struct {
	Type     AccountingEntryType `json:"type" validate:"required,oneof=income expense"`
	Category string              `json:"category" validate:"required,max=100"`
	Label    string              `json:"label" validate:"required,max=255"`
	Amount   float64             `json:"amount" validate:"required,gt=0"`
	Date     *time.Time          `json:"date,omitempty"`
}

// AccountingRepository defines the interface for accounting entry storage
type AccountingRepository interface {
	Create(ctx context.Context, entry *AccountingEntry) error
	Get(ctx context.Context, id uuid.UUID) (*AccountingEntry, error)
	ListByPeriod(ctx context.Context, entryType AccountingEntryType, start, end time.Time) ([]AccountingEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
