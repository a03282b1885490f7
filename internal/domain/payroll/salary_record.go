package payroll

import (
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryStatus represents the payment state of a monthly salary record
type SalaryStatus string

const (
	SalaryStatusUnpaid SalaryStatus = "UNPAID"
	SalaryStatusPaid   SalaryStatus = "PAID"
)

// IsValid checks if the status is valid
func (s SalaryStatus) IsValid() bool {
	switch s {
	case SalaryStatusUnpaid, SalaryStatusPaid:
		return true
	}
	return false
}

// SalaryRecord is one staff member's salary for one month: the base amount
// snapshotted from the staff profile, plus any bonus and deduction applied
// for that month. One record per staff per month.
type SalaryRecord struct {
	shared.PlazaAggregateRoot
	StaffID    uuid.UUID       `json:"staff_id"`
	StaffName  string          `json:"staff_name"`
	Month      int             `json:"month"` // 1-12
	Year       int             `json:"year"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Bonus      decimal.Decimal `json:"bonus"`
	Deduction  decimal.Decimal `json:"deduction"`
	Status     SalaryStatus    `json:"status"`
	PaidAt     *time.Time      `json:"paid_at"`
	PaidBy     *uuid.UUID      `json:"paid_by"`
	Remark     string          `json:"remark"`
}

// NewSalaryRecord creates an unpaid salary record for a month
func NewSalaryRecord(
	plazaID uuid.UUID,
	staff *Staff,
	month int,
	year int,
	bonus decimal.Decimal,
	deduction decimal.Decimal,
) (*SalaryRecord, error) {
	if staff == nil {
		return nil, shared.NewDomainError("INVALID_STAFF", "Staff member is required")
	}
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Month must be between 1 and 12")
	}
	if bonus.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Bonus cannot be negative")
	}
	if deduction.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Deduction cannot be negative")
	}
	if deduction.GreaterThan(staff.MonthlySalary.Add(bonus)) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Deduction cannot exceed salary plus bonus")
	}

	return &SalaryRecord{
		PlazaAggregateRoot: shared.NewPlazaAggregateRoot(plazaID),
		StaffID:            staff.ID,
		StaffName:          staff.Name,
		Month:              month,
		Year:               year,
		BaseSalary:         staff.MonthlySalary,
		Bonus:              bonus,
		Deduction:          deduction,
		Status:             SalaryStatusUnpaid,
	}, nil
}

// NetAmount returns base + bonus - deduction
func (r *SalaryRecord) NetAmount() decimal.Decimal {
	return r.BaseSalary.Add(r.Bonus).Sub(r.Deduction)
}

// GetNetAmountMoney returns the net amount as Money
func (r *SalaryRecord) GetNetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPKR(r.NetAmount())
}

// MarkPaid settles the month's salary
func (r *SalaryRecord) MarkPaid(paidBy uuid.UUID) error {
	if r.Status == SalaryStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Salary has already been paid")
	}
	now := time.Now()
	r.Status = SalaryStatusPaid
	r.PaidAt = &now
	if paidBy != uuid.Nil {
		r.PaidBy = &paidBy
	}
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}

// AdjustBonus updates the bonus before payment
func (r *SalaryRecord) AdjustBonus(bonus decimal.Decimal) error {
	if r.Status == SalaryStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Cannot adjust a paid salary record")
	}
	if bonus.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Bonus cannot be negative")
	}
	r.Bonus = bonus
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// AdjustDeduction updates the deduction before payment
func (r *SalaryRecord) AdjustDeduction(deduction decimal.Decimal) error {
	if r.Status == SalaryStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Cannot adjust a paid salary record")
	}
	if deduction.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Deduction cannot be negative")
	}
	if deduction.GreaterThan(r.BaseSalary.Add(r.Bonus)) {
		return shared.NewDomainError("INVALID_AMOUNT", "Deduction cannot exceed salary plus bonus")
	}
	r.Deduction = deduction
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// SetRemark sets the remark
func (r *SalaryRecord) SetRemark(remark string) {
	r.Remark = remark
	r.UpdatedAt = time.Now()
}
