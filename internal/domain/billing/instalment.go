package billing

import (
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InstalmentStatus represents the state of a maintenance instalment
type InstalmentStatus string

const (
	InstalmentStatusPending   InstalmentStatus = "PENDING"
	InstalmentStatusPaid      InstalmentStatus = "PAID"
	InstalmentStatusCancelled InstalmentStatus = "CANCELLED"
)

// IsValid checks if the status is valid
func (s InstalmentStatus) IsValid() bool {
	switch s {
	case InstalmentStatusPending, InstalmentStatusPaid, InstalmentStatusCancelled:
		return true
	}
	return false
}

// MaintenanceInstalment is one slice of a maintenance bill split into
// instalments, each with its own amount, due date and payment state.
type MaintenanceInstalment struct {
	shared.PlazaAggregateRoot
	BillID         uuid.UUID        `json:"bill_id"`
	BusinessID     uuid.UUID        `json:"business_id"`
	SequenceNumber int              `json:"sequence_number"` // 1-based position in the plan
	Amount         decimal.Decimal  `json:"amount"`
	DueDate        time.Time        `json:"due_date"`
	Status         InstalmentStatus `json:"status"`
	PaidAt         *time.Time       `json:"paid_at"`
	Remark         string           `json:"remark"`
}

// NewMaintenanceInstalment creates one pending instalment of a plan
func NewMaintenanceInstalment(
	plazaID uuid.UUID,
	billID uuid.UUID,
	businessID uuid.UUID,
	sequenceNumber int,
	amount valueobject.Money,
	dueDate time.Time,
) (*MaintenanceInstalment, error) {
	if billID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BILL", "Bill ID cannot be empty")
	}
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Business ID cannot be empty")
	}
	if sequenceNumber < 1 {
		return nil, shared.NewDomainError("INVALID_SEQUENCE", "Sequence number must be positive")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Instalment amount must be positive")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	return &MaintenanceInstalment{
		PlazaAggregateRoot: shared.NewPlazaAggregateRoot(plazaID),
		BillID:             billID,
		BusinessID:         businessID,
		SequenceNumber:     sequenceNumber,
		Amount:             amount.Amount(),
		DueDate:            dueDate,
		Status:             InstalmentStatusPending,
	}, nil
}

// MarkPaid settles the instalment
func (i *MaintenanceInstalment) MarkPaid() error {
	if i.Status != InstalmentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending instalments can be paid")
	}
	now := time.Now()
	i.Status = InstalmentStatusPaid
	i.PaidAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()
	return nil
}

// Cancel voids an unpaid instalment
func (i *MaintenanceInstalment) Cancel(remark string) error {
	if i.Status != InstalmentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending instalments can be cancelled")
	}
	i.Status = InstalmentStatusCancelled
	i.Remark = remark
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// BuildInstalmentPlan splits a maintenance bill's total into count equal
// monthly instalments starting at firstDue. Any rounding remainder lands on
// the final instalment so the plan sums exactly to the bill total.
func BuildInstalmentPlan(bill *Bill, count int, firstDue time.Time) ([]*MaintenanceInstalment, error) {
	if bill.Category != BillCategoryMaintenance {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Instalment plans apply to maintenance bills only")
	}
	if count < 2 {
		return nil, shared.NewDomainError("INVALID_PLAN", "Instalment plans need at least 2 instalments")
	}
	if firstDue.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "First due date is required")
	}

	slice := bill.TotalAmount.Div(decimal.NewFromInt(int64(count))).Round(2)
	plan := make([]*MaintenanceInstalment, 0, count)
	allocated := decimal.Zero

	for seq := 1; seq <= count; seq++ {
		amount := slice
		if seq == count {
			amount = bill.TotalAmount.Sub(allocated)
		}
		instalment, err := NewMaintenanceInstalment(
			bill.PlazaID,
			bill.ID,
			bill.BusinessID,
			seq,
			valueobject.NewMoneyPKR(amount),
			firstDue.AddDate(0, seq-1, 0),
		)
		if err != nil {
			return nil, err
		}
		allocated = allocated.Add(amount)
		plan = append(plan, instalment)
	}

	return plan, nil
}
