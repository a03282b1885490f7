package payroll

import (
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StaffStatus represents the employment state of a staff member
type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "ACTIVE"
	StaffStatusInactive StaffStatus = "INACTIVE"
	StaffStatusLeft     StaffStatus = "LEFT"
)

// IsValid checks if the status is valid
func (s StaffStatus) IsValid() bool {
	switch s {
	case StaffStatusActive, StaffStatusInactive, StaffStatusLeft:
		return true
	}
	return false
}

// Staff is a plaza employee (guard, electrician, sweeper, manager) on the
// monthly payroll.
type Staff struct {
	shared.PlazaAggregateRoot
	Name          string          `json:"name"`
	Designation   string          `json:"designation"`
	Phone         string          `json:"phone"`
	CNIC          string          `json:"cnic"` // National identity card number
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	JoinedAt      time.Time       `json:"joined_at"`
	Status        StaffStatus     `json:"status"`
	LeftAt        *time.Time      `json:"left_at"`
}

// NewStaff creates a new active staff member
func NewStaff(
	plazaID uuid.UUID,
	name string,
	designation string,
	phone string,
	cnic string,
	monthlySalary decimal.Decimal,
	joinedAt time.Time,
) (*Staff, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Staff name cannot be empty")
	}
	if designation == "" {
		return nil, shared.NewDomainError("INVALID_DESIGNATION", "Designation cannot be empty")
	}
	if monthlySalary.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_SALARY", "Monthly salary must be positive")
	}
	if joinedAt.IsZero() {
		joinedAt = time.Now()
	}

	return &Staff{
		PlazaAggregateRoot: shared.NewPlazaAggregateRoot(plazaID),
		Name:               name,
		Designation:        designation,
		Phone:              phone,
		CNIC:               cnic,
		MonthlySalary:      monthlySalary,
		JoinedAt:           joinedAt,
		Status:             StaffStatusActive,
	}, nil
}

// UpdateDetails updates contact and role details
func (s *Staff) UpdateDetails(name, designation, phone string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Staff name cannot be empty")
	}
	if designation == "" {
		return shared.NewDomainError("INVALID_DESIGNATION", "Designation cannot be empty")
	}
	s.Name = name
	s.Designation = designation
	s.Phone = phone
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// UpdateSalary changes the monthly salary for future payroll months
func (s *Staff) UpdateSalary(monthlySalary decimal.Decimal) error {
	if monthlySalary.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_SALARY", "Monthly salary must be positive")
	}
	s.MonthlySalary = monthlySalary
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Deactivate suspends the staff member without ending employment
func (s *Staff) Deactivate() error {
	if s.Status == StaffStatusLeft {
		return shared.NewDomainError("INVALID_STATE", "Staff member has already left")
	}
	s.Status = StaffStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Activate resumes an inactive staff member
func (s *Staff) Activate() error {
	if s.Status == StaffStatusLeft {
		return shared.NewDomainError("INVALID_STATE", "Staff member has already left")
	}
	s.Status = StaffStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// MarkLeft ends employment. Terminal.
func (s *Staff) MarkLeft(leftAt time.Time) error {
	if s.Status == StaffStatusLeft {
		return shared.NewDomainError("INVALID_STATE", "Staff member has already left")
	}
	if leftAt.IsZero() {
		leftAt = time.Now()
	}
	s.Status = StaffStatusLeft
	s.LeftAt = &leftAt
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// IsPayable returns true if the staff member draws salary this month
func (s *Staff) IsPayable() bool {
	return s.Status == StaffStatusActive
}
