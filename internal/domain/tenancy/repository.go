package tenancy

import (
	"context"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BusinessFilter defines filtering options for business queries
type BusinessFilter struct {
	shared.Filter
	Status          *BusinessStatus
	FloorNumber     *string
	RentManagedOnly bool
}

// BusinessRepository defines the interface for business persistence
type BusinessRepository interface {
	// FindByID finds a business by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Business, error)

	// FindByIDForPlaza finds a business by ID within a plaza
	FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*Business, error)

	// FindByShopNumber finds a business by shop number within a plaza
	FindByShopNumber(ctx context.Context, plazaID uuid.UUID, shopNumber string) (*Business, error)

	// FindAllForPlaza finds all businesses in a plaza with filtering
	FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter BusinessFilter) ([]Business, error)

	// FindBillable finds active businesses with rent management enabled
	FindBillable(ctx context.Context, plazaID uuid.UUID) ([]Business, error)

	// Save creates or updates a business
	Save(ctx context.Context, business *Business) error

	// CountForPlaza counts businesses in a plaza with optional filters
	CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter BusinessFilter) (int64, error)
}

// AdvanceFilter defines filtering options for advance queries
type AdvanceFilter struct {
	shared.Filter
	BusinessID *uuid.UUID
	BillType   *AdvanceBillType
	Status     *AdvanceStatus
	Month      *int
	Year       *int
}

// AdvanceRepository defines the interface for advance persistence
type AdvanceRepository interface {
	// FindByID finds an advance by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Advance, error)

	// FindByIDForPlaza finds an advance by ID within a plaza
	FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*Advance, error)

	// FindActiveForPeriod finds an active advance covering the given business, type and period.
	// Returns nil without error when no advance covers the period.
	FindActiveForPeriod(ctx context.Context, plazaID, businessID uuid.UUID, billType AdvanceBillType, month, year int) (*Advance, error)

	// FindAllForPlaza finds advances in a plaza with filtering
	FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter AdvanceFilter) ([]Advance, error)

	// Save creates or updates an advance
	Save(ctx context.Context, advance *Advance) error

	// CountForPlaza counts advances in a plaza with optional filters
	CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter AdvanceFilter) (int64, error)
}
