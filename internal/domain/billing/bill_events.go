package billing

import (
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillCreatedEvent is raised when a new bill is issued
type BillCreatedEvent struct {
	shared.BaseDomainEvent
	BillID      uuid.UUID       `json:"bill_id"`
	BillNumber  string          `json:"bill_number"`
	BusinessID  uuid.UUID       `json:"business_id"`
	Category    BillCategory    `json:"category"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	DueDate     time.Time       `json:"due_date"`
}

// EventType returns the event type name
func (e *BillCreatedEvent) EventType() string {
	return "BillCreated"
}

// NewBillCreatedEvent creates a new BillCreatedEvent
func NewBillCreatedEvent(b *Bill) *BillCreatedEvent {
	return &BillCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BillCreated", "Bill", b.ID, b.PlazaID),
		BillID:          b.ID,
		BillNumber:      b.BillNumber,
		BusinessID:      b.BusinessID,
		Category:        b.Category,
		Month:           b.Month,
		Year:            b.Year,
		TotalAmount:     b.TotalAmount,
		DueDate:         b.DueDate,
	}
}

// BillPaidEvent is raised when a bill is fully paid
type BillPaidEvent struct {
	shared.BaseDomainEvent
	BillID      uuid.UUID       `json:"bill_id"`
	BillNumber  string          `json:"bill_number"`
	BusinessID  uuid.UUID       `json:"business_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	PaidAt      time.Time       `json:"paid_at"`
}

// EventType returns the event type name
func (e *BillPaidEvent) EventType() string {
	return "BillPaid"
}

// NewBillPaidEvent creates a new BillPaidEvent
func NewBillPaidEvent(b *Bill) *BillPaidEvent {
	paidAt := time.Now()
	if b.PaidAt != nil {
		paidAt = *b.PaidAt
	}
	return &BillPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BillPaid", "Bill", b.ID, b.PlazaID),
		BillID:          b.ID,
		BillNumber:      b.BillNumber,
		BusinessID:      b.BusinessID,
		TotalAmount:     b.TotalAmount,
		PaidAmount:      b.PaidAmount,
		PaidAt:          paidAt,
	}
}

// BillOverdueEvent is raised when a pending bill passes its due date
type BillOverdueEvent struct {
	shared.BaseDomainEvent
	BillID     uuid.UUID       `json:"bill_id"`
	BillNumber string          `json:"bill_number"`
	BusinessID uuid.UUID       `json:"business_id"`
	Remaining  decimal.Decimal `json:"remaining"`
	DueDate    time.Time       `json:"due_date"`
}

// EventType returns the event type name
func (e *BillOverdueEvent) EventType() string {
	return "BillOverdue"
}

// NewBillOverdueEvent creates a new BillOverdueEvent
func NewBillOverdueEvent(b *Bill) *BillOverdueEvent {
	return &BillOverdueEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BillOverdue", "Bill", b.ID, b.PlazaID),
		BillID:          b.ID,
		BillNumber:      b.BillNumber,
		BusinessID:      b.BusinessID,
		Remaining:       b.RemainingAmount(),
		DueDate:         b.DueDate,
	}
}

// BillWaveoffEvent is raised when a bill's balance is written off
type BillWaveoffEvent struct {
	shared.BaseDomainEvent
	BillID     uuid.UUID       `json:"bill_id"`
	BillNumber string          `json:"bill_number"`
	BusinessID uuid.UUID       `json:"business_id"`
	Waived     decimal.Decimal `json:"waived"`
	Reason     string          `json:"reason"`
}

// EventType returns the event type name
func (e *BillWaveoffEvent) EventType() string {
	return "BillWaveoff"
}

// NewBillWaveoffEvent creates a new BillWaveoffEvent
func NewBillWaveoffEvent(b *Bill) *BillWaveoffEvent {
	return &BillWaveoffEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BillWaveoff", "Bill", b.ID, b.PlazaID),
		BillID:          b.ID,
		BillNumber:      b.BillNumber,
		BusinessID:      b.BusinessID,
		Waived:          b.RemainingAmount(),
		Reason:          b.WaveoffReason,
	}
}
