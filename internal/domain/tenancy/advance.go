package tenancy

import (
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdvanceBillType identifies which bill category an advance covers
type AdvanceBillType string

const (
	AdvanceBillTypeRent        AdvanceBillType = "RENT"
	AdvanceBillTypeMaintenance AdvanceBillType = "MAINTENANCE"
)

// IsValid checks if the bill type is valid
func (t AdvanceBillType) IsValid() bool {
	return t == AdvanceBillTypeRent || t == AdvanceBillTypeMaintenance
}

// AdvanceStatus represents the lifecycle of an advance
type AdvanceStatus string

const (
	AdvanceStatusActive    AdvanceStatus = "ACTIVE"    // Exempts the covered month from bill generation
	AdvanceStatusSettled   AdvanceStatus = "SETTLED"   // Consumed by a billing cycle
	AdvanceStatusCancelled AdvanceStatus = "CANCELLED" // Withdrawn before settlement
)

// IsValid checks if the status is valid
func (s AdvanceStatus) IsValid() bool {
	switch s {
	case AdvanceStatusActive, AdvanceStatusSettled, AdvanceStatusCancelled:
		return true
	}
	return false
}

// Advance is a prepayment that exempts a business from bill generation
// for a specific month, year and bill type.
type Advance struct {
	shared.PlazaAggregateRoot
	BusinessID  uuid.UUID       `json:"business_id"`
	BillType    AdvanceBillType `json:"bill_type"`
	Month       int             `json:"month"` // 1-12
	Year        int             `json:"year"`
	Amount      decimal.Decimal `json:"amount"`
	Status      AdvanceStatus   `json:"status"`
	Remark      string          `json:"remark"`
	SettledAt   *time.Time      `json:"settled_at"`
	CancelledAt *time.Time      `json:"cancelled_at"`
}

// NewAdvance creates a new active advance
func NewAdvance(
	plazaID uuid.UUID,
	businessID uuid.UUID,
	billType AdvanceBillType,
	month int,
	year int,
	amount valueobject.Money,
	remark string,
) (*Advance, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Business ID cannot be empty")
	}
	if !billType.IsValid() {
		return nil, shared.NewDomainError("INVALID_BILL_TYPE", "Bill type is not valid")
	}
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Month must be between 1 and 12")
	}
	if year < 2000 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Year is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Advance amount must be positive")
	}

	return &Advance{
		PlazaAggregateRoot: shared.NewPlazaAggregateRoot(plazaID),
		BusinessID:         businessID,
		BillType:           billType,
		Month:              month,
		Year:               year,
		Amount:             amount.Amount(),
		Status:             AdvanceStatusActive,
		Remark:             remark,
	}, nil
}

// IsActive returns true if the advance still exempts its month
func (a *Advance) IsActive() bool {
	return a.Status == AdvanceStatusActive
}

// Covers returns true if the advance exempts the given bill type and period
func (a *Advance) Covers(billType AdvanceBillType, month, year int) bool {
	return a.IsActive() && a.BillType == billType && a.Month == month && a.Year == year
}

// Settle marks the advance consumed by a billing cycle
func (a *Advance) Settle() error {
	if a.Status != AdvanceStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active advances can be settled")
	}
	now := time.Now()
	a.Status = AdvanceStatusSettled
	a.SettledAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewAdvanceSettledEvent(a))

	return nil
}

// Cancel withdraws an unsettled advance
func (a *Advance) Cancel(remark string) error {
	if a.Status != AdvanceStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active advances can be cancelled")
	}
	now := time.Now()
	a.Status = AdvanceStatusCancelled
	a.CancelledAt = &now
	if remark != "" {
		a.Remark = remark
	}
	a.UpdatedAt = now
	a.IncrementVersion()
	return nil
}

// GetAmountMoney returns the advance amount as Money
func (a *Advance) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPKR(a.Amount)
}
