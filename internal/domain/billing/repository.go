package billing

import (
	"context"
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BillFilter defines filtering options for bill queries
type BillFilter struct {
	shared.Filter
	BusinessID *uuid.UUID
	Category   *BillCategory
	Status     *BillStatus
	Month      *int
	Year       *int
	FromDate   *time.Time
	ToDate     *time.Time
}

// BillRepository defines the interface for bill persistence
type BillRepository interface {
	// FindByID finds a bill by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)

	// FindByIDForPlaza finds a bill by ID within a plaza
	FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*Bill, error)

	// FindByBillNumber finds a bill by its number within a plaza
	FindByBillNumber(ctx context.Context, plazaID uuid.UUID, billNumber string) (*Bill, error)

	// FindAllForPlaza finds bills in a plaza with filtering
	FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter BillFilter) ([]Bill, error)

	// FindUnpaidForBusiness finds PENDING and OVERDUE bills for a business,
	// ordered by bill date ascending (oldest first)
	FindUnpaidForBusiness(ctx context.Context, plazaID, businessID uuid.UUID) ([]Bill, error)

	// FindPastDue finds PENDING bills whose due date is before the given time
	FindPastDue(ctx context.Context, plazaID uuid.UUID, now time.Time) ([]Bill, error)

	// ExistsForPeriod reports whether a bill of the category already exists
	// for the business in the given month/year
	ExistsForPeriod(ctx context.Context, plazaID, businessID uuid.UUID, category BillCategory, month, year int) (bool, error)

	// ListNumbers returns all bill numbers in a plaza matching the
	// {prefix}-{year}- scope, for sequential number generation
	ListNumbers(ctx context.Context, plazaID uuid.UUID, prefix string, year int) ([]string, error)

	// Save creates or updates a bill
	Save(ctx context.Context, bill *Bill) error

	// CountForPlaza counts bills in a plaza with optional filters
	CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter BillFilter) (int64, error)

	// SummarizeForPlaza aggregates outstanding totals and status counts
	SummarizeForPlaza(ctx context.Context, plazaID uuid.UUID) (*BillSummary, error)
}

// BillSummary aggregates a plaza's billing position
type BillSummary struct {
	TotalBilled      string `json:"total_billed"`
	TotalCollected   string `json:"total_collected"`
	TotalOutstanding string `json:"total_outstanding"`
	PendingCount     int64  `json:"pending_count"`
	OverdueCount     int64  `json:"overdue_count"`
	PaidCount        int64  `json:"paid_count"`
	WaveoffCount     int64  `json:"waveoff_count"`
}

// MeterReadingFilter defines filtering options for meter reading queries
type MeterReadingFilter struct {
	shared.Filter
	BusinessID    *uuid.UUID
	MeterType     *MeterType
	PaymentStatus *MeterPaymentStatus
	FromDate      *time.Time
	ToDate        *time.Time
}

// MeterReadingRepository defines the interface for meter reading persistence
type MeterReadingRepository interface {
	// FindByID finds a reading by ID
	FindByID(ctx context.Context, id uuid.UUID) (*MeterReading, error)

	// FindByIDForPlaza finds a reading by ID within a plaza
	FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*MeterReading, error)

	// FindLatest finds the most recent reading (by reading date) for a
	// business and meter type. Returns nil without error when none exists.
	FindLatest(ctx context.Context, plazaID, businessID uuid.UUID, meterType MeterType) (*MeterReading, error)

	// FindAllForPlaza finds readings in a plaza with filtering
	FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter MeterReadingFilter) ([]MeterReading, error)

	// Save creates or updates a reading
	Save(ctx context.Context, reading *MeterReading) error

	// CountForPlaza counts readings in a plaza with optional filters
	CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter MeterReadingFilter) (int64, error)
}

// SettingsRepository defines the interface for billing settings persistence
type SettingsRepository interface {
	// FindForPlaza finds the settings row for a plaza.
	// Returns shared.ErrNotFound when the plaza has no settings yet.
	FindForPlaza(ctx context.Context, plazaID uuid.UUID) (*Settings, error)

	// Save creates or updates a plaza's settings
	Save(ctx context.Context, settings *Settings) error
}

// InstalmentRepository defines the interface for maintenance instalment persistence
type InstalmentRepository interface {
	// FindByID finds an instalment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*MaintenanceInstalment, error)

	// FindByIDForPlaza finds an instalment by ID within a plaza
	FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*MaintenanceInstalment, error)

	// FindByBill finds the instalment plan for a bill, ordered by sequence
	FindByBill(ctx context.Context, plazaID, billID uuid.UUID) ([]MaintenanceInstalment, error)

	// Save creates or updates an instalment
	Save(ctx context.Context, instalment *MaintenanceInstalment) error

	// SaveAll persists a whole plan
	SaveAll(ctx context.Context, instalments []*MaintenanceInstalment) error
}
