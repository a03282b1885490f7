package finance

import (
	"context"
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ExpenseFilter defines filtering options for expense queries
type ExpenseFilter struct {
	shared.Filter
	Category *ExpenseCategory
	FromDate *time.Time
	ToDate   *time.Time
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByID finds an expense by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// FindByIDForPlaza finds an expense by ID within a plaza
	FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*Expense, error)

	// FindAllForPlaza finds expenses in a plaza with filtering
	FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter ExpenseFilter) ([]Expense, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error

	// Delete removes an expense
	Delete(ctx context.Context, plazaID, id uuid.UUID) error

	// CountForPlaza counts expenses in a plaza with optional filters
	CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter ExpenseFilter) (int64, error)

	// SumForPeriod totals expense amounts within a date range, optionally
	// restricted to a category
	SumForPeriod(ctx context.Context, plazaID uuid.UUID, from, to time.Time, category *ExpenseCategory) (string, error)
}
