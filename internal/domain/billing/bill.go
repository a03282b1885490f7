package billing

import (
	"fmt"
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillCategory identifies what a bill charges for
type BillCategory string

const (
	BillCategoryRent        BillCategory = "RENT"
	BillCategoryMaintenance BillCategory = "MAINTENANCE"
	BillCategoryUtility     BillCategory = "UTILITY"
	BillCategoryOther       BillCategory = "OTHER"
)

// IsValid checks if the category is a valid BillCategory
func (c BillCategory) IsValid() bool {
	switch c {
	case BillCategoryRent, BillCategoryMaintenance, BillCategoryUtility, BillCategoryOther:
		return true
	}
	return false
}

// NumberPrefix returns the bill number prefix for the category
func (c BillCategory) NumberPrefix() string {
	switch c {
	case BillCategoryMaintenance:
		return "MAINT"
	case BillCategoryUtility:
		return "UTIL"
	case BillCategoryOther:
		return "MISC"
	default:
		return "RENT"
	}
}

// BillStatus represents the lifecycle state of a bill
type BillStatus string

const (
	BillStatusPending   BillStatus = "PENDING"   // Issued, not fully paid
	BillStatusPaid      BillStatus = "PAID"      // Fully paid
	BillStatusOverdue   BillStatus = "OVERDUE"   // Past due date, not fully paid
	BillStatusCancelled BillStatus = "CANCELLED" // Voided by an admin
	BillStatusWaveoff   BillStatus = "WAVEOFF"   // Outstanding balance written off
)

// IsValid checks if the status is a valid BillStatus
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusPending, BillStatusPaid, BillStatusOverdue, BillStatusCancelled, BillStatusWaveoff:
		return true
	}
	return false
}

// String returns the string representation of BillStatus
func (s BillStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the bill is in a terminal state
func (s BillStatus) IsTerminal() bool {
	return s == BillStatusPaid || s == BillStatusCancelled || s == BillStatusWaveoff
}

// CanReceivePayment returns true if payments can be recorded in this status
func (s BillStatus) CanReceivePayment() bool {
	return s == BillStatusPending || s == BillStatusOverdue
}

// Charges holds the per-head breakdown of a bill's amounts
type Charges struct {
	Rent        decimal.Decimal `json:"rent"`
	Maintenance decimal.Decimal `json:"maintenance"`
	Electricity decimal.Decimal `json:"electricity"`
	Gas         decimal.Decimal `json:"gas"`
	Water       decimal.Decimal `json:"water"`
	Other       decimal.Decimal `json:"other"`
}

// Total returns the sum of all charge heads
func (c Charges) Total() decimal.Decimal {
	return c.Rent.Add(c.Maintenance).Add(c.Electricity).Add(c.Gas).Add(c.Water).Add(c.Other)
}

// HasNegative returns true if any charge head is negative
func (c Charges) HasNegative() bool {
	for _, d := range []decimal.Decimal{c.Rent, c.Maintenance, c.Electricity, c.Gas, c.Water, c.Other} {
		if d.IsNegative() {
			return true
		}
	}
	return false
}

// Bill represents one billing cycle's charges owed by a business.
// The bill number is immutable once generated. The remaining amount is
// always derived (total - paid), never stored.
type Bill struct {
	shared.PlazaAggregateRoot
	BillNumber   string       `json:"bill_number"`
	BusinessID   uuid.UUID    `json:"business_id"`
	BusinessName string       `json:"business_name"`
	Category     BillCategory `json:"category"`
	Month        int          `json:"month"` // 1-12 billing period
	Year         int          `json:"year"`
	Charges      Charges      `json:"charges"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Status       BillStatus   `json:"status"`
	BillDate     time.Time    `json:"bill_date"`
	DueDate      time.Time    `json:"due_date"`
	TermsText    string       `json:"terms_text"`
	Remark       string       `json:"remark"`
	PaidAt       *time.Time   `json:"paid_at"`
	CancelledAt  *time.Time   `json:"cancelled_at"`
	CancelReason string       `json:"cancel_reason"`
	WaveoffAt    *time.Time   `json:"waveoff_at"`
	WaveoffReason string      `json:"waveoff_reason"`
}

// NewBill creates a new pending bill
func NewBill(
	plazaID uuid.UUID,
	billNumber string,
	businessID uuid.UUID,
	businessName string,
	category BillCategory,
	month int,
	year int,
	charges Charges,
	billDate time.Time,
	dueDate time.Time,
	termsText string,
) (*Bill, error) {
	if billNumber == "" {
		return nil, shared.NewDomainError("INVALID_BILL_NUMBER", "Bill number cannot be empty")
	}
	if len(billNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_BILL_NUMBER", "Bill number cannot exceed 50 characters")
	}
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Business ID cannot be empty")
	}
	if businessName == "" {
		return nil, shared.NewDomainError("INVALID_BUSINESS_NAME", "Business name cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Bill category is not valid")
	}
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Month must be between 1 and 12")
	}
	if charges.HasNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Charges cannot be negative")
	}
	total := charges.Total()
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Bill total must be positive")
	}
	if dueDate.Before(billDate) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before bill date")
	}

	b := &Bill{
		PlazaAggregateRoot: shared.NewPlazaAggregateRoot(plazaID),
		BillNumber:         billNumber,
		BusinessID:         businessID,
		BusinessName:       businessName,
		Category:           category,
		Month:              month,
		Year:               year,
		Charges:            charges,
		TotalAmount:        total,
		PaidAmount:         decimal.Zero,
		Status:             BillStatusPending,
		BillDate:           billDate,
		DueDate:            dueDate,
		TermsText:          termsText,
	}

	b.AddDomainEvent(NewBillCreatedEvent(b))

	return b, nil
}

// RemainingAmount returns total - paid, never below zero
func (b *Bill) RemainingAmount() decimal.Decimal {
	remaining := b.TotalAmount.Sub(b.PaidAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// RecordPayment adds a payment amount to the bill's running paid total.
// The bill flips to PAID once paid >= total; otherwise it stays in its
// current payable status. Amounts above the remaining balance are
// accepted and absorbed by this bill (no carry-over to later bills).
func (b *Bill) RecordPayment(amount valueobject.Money) error {
	if !b.Status.CanReceivePayment() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record payment on %s bill", b.Status))
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	b.PaidAmount = b.PaidAmount.Add(amount.Amount())

	if b.PaidAmount.GreaterThanOrEqual(b.TotalAmount) {
		now := time.Now()
		b.Status = BillStatusPaid
		b.PaidAt = &now
		b.AddDomainEvent(NewBillPaidEvent(b))
	}

	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// MarkOverdue flips a pending bill past its due date to OVERDUE
func (b *Bill) MarkOverdue(now time.Time) error {
	if b.Status != BillStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending bills can become overdue")
	}
	if !now.After(b.DueDate) {
		return shared.NewDomainError("NOT_DUE", "Bill is not past its due date")
	}
	b.Status = BillStatusOverdue
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBillOverdueEvent(b))

	return nil
}

// Waveoff writes off the bill's outstanding balance
func (b *Bill) Waveoff(reason string) error {
	if b.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot wave off %s bill", b.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Waveoff reason is required")
	}
	now := time.Now()
	b.Status = BillStatusWaveoff
	b.WaveoffAt = &now
	b.WaveoffReason = reason
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBillWaveoffEvent(b))

	return nil
}

// Cancel voids a bill that has received no payments
func (b *Bill) Cancel(reason string) error {
	if b.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel %s bill", b.Status))
	}
	if b.PaidAmount.GreaterThan(decimal.Zero) {
		return shared.NewDomainError("HAS_PAYMENTS", "Cannot cancel a bill with recorded payments")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}
	now := time.Now()
	b.Status = BillStatusCancelled
	b.CancelledAt = &now
	b.CancelReason = reason
	b.UpdatedAt = now
	b.IncrementVersion()
	return nil
}

// SetRemark sets the remark
func (b *Bill) SetRemark(remark string) {
	b.Remark = remark
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// IsPaid returns true if the bill is fully paid
func (b *Bill) IsPaid() bool {
	return b.Status == BillStatusPaid
}

// IsUnpaid returns true if the bill can still receive payments
func (b *Bill) IsUnpaid() bool {
	return b.Status.CanReceivePayment()
}

// IsPastDue returns true if the given time is past the due date and the bill is unpaid
func (b *Bill) IsPastDue(now time.Time) bool {
	return b.IsUnpaid() && now.After(b.DueDate)
}

// GetTotalAmountMoney returns the total as Money
func (b *Bill) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPKR(b.TotalAmount)
}

// GetPaidAmountMoney returns the paid amount as Money
func (b *Bill) GetPaidAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPKR(b.PaidAmount)
}

// GetRemainingAmountMoney returns the remaining amount as Money
func (b *Bill) GetRemainingAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPKR(b.RemainingAmount())
}
