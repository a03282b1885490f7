package payroll

import (
	"context"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StaffFilter defines filtering options for staff queries
type StaffFilter struct {
	shared.Filter
	Status      *StaffStatus
	Designation *string
}

// StaffRepository defines the interface for staff persistence
type StaffRepository interface {
	// FindByID finds a staff member by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Staff, error)

	// FindByIDForPlaza finds a staff member by ID within a plaza
	FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*Staff, error)

	// FindAllForPlaza finds staff in a plaza with filtering
	FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter StaffFilter) ([]Staff, error)

	// FindPayable finds active staff due a salary record each month
	FindPayable(ctx context.Context, plazaID uuid.UUID) ([]Staff, error)

	// Save creates or updates a staff member
	Save(ctx context.Context, staff *Staff) error

	// CountForPlaza counts staff in a plaza with optional filters
	CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter StaffFilter) (int64, error)
}

// SalaryRecordFilter defines filtering options for salary record queries
type SalaryRecordFilter struct {
	shared.Filter
	StaffID *uuid.UUID
	Month   *int
	Year    *int
	Status  *SalaryStatus
}

// SalaryRecordRepository defines the interface for salary record persistence
type SalaryRecordRepository interface {
	// FindByID finds a salary record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*SalaryRecord, error)

	// FindByIDForPlaza finds a salary record by ID within a plaza
	FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*SalaryRecord, error)

	// FindAllForPlaza finds salary records in a plaza with filtering
	FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter SalaryRecordFilter) ([]SalaryRecord, error)

	// ExistsForPeriod reports whether a record exists for the staff member
	// in the given month/year
	ExistsForPeriod(ctx context.Context, plazaID, staffID uuid.UUID, month, year int) (bool, error)

	// Save creates or updates a salary record
	Save(ctx context.Context, record *SalaryRecord) error

	// CountForPlaza counts salary records in a plaza with optional filters
	CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter SalaryRecordFilter) (int64, error)

	// SumPaidForPeriod totals paid net salaries for a month
	SumPaidForPeriod(ctx context.Context, plazaID uuid.UUID, month, year int) (string, error)
}
