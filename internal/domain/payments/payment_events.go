package payments

import (
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRecordedEvent is raised when a confirmed payment is created
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	PaymentID   uuid.UUID       `json:"payment_id"`
	BillID      uuid.UUID       `json:"bill_id"`
	BusinessID  uuid.UUID       `json:"business_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	PaymentDate time.Time       `json:"payment_date"`
}

// EventType returns the event type name
func (e *PaymentRecordedEvent) EventType() string {
	return "PaymentRecorded"
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PaymentRecorded", "Payment", p.ID, p.PlazaID),
		PaymentID:       p.ID,
		BillID:          p.BillID,
		BusinessID:      p.BusinessID,
		Amount:          p.Amount,
		Method:          p.Method,
		PaymentDate:     p.PaymentDate,
	}
}

// PendingPaymentSubmittedEvent is raised when a business submits a payment claim
type PendingPaymentSubmittedEvent struct {
	shared.BaseDomainEvent
	PendingPaymentID uuid.UUID       `json:"pending_payment_id"`
	BillID           uuid.UUID       `json:"bill_id"`
	BusinessID       uuid.UUID       `json:"business_id"`
	Amount           decimal.Decimal `json:"amount"`
	Method           PaymentMethod   `json:"method"`
}

// EventType returns the event type name
func (e *PendingPaymentSubmittedEvent) EventType() string {
	return "PendingPaymentSubmitted"
}

// NewPendingPaymentSubmittedEvent creates a new PendingPaymentSubmittedEvent
func NewPendingPaymentSubmittedEvent(pp *PendingPayment) *PendingPaymentSubmittedEvent {
	return &PendingPaymentSubmittedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("PendingPaymentSubmitted", "PendingPayment", pp.ID, pp.PlazaID),
		PendingPaymentID: pp.ID,
		BillID:           pp.BillID,
		BusinessID:       pp.BusinessID,
		Amount:           pp.Amount,
		Method:           pp.Method,
	}
}

// PendingPaymentApprovedEvent is raised when an admin approves a payment claim
type PendingPaymentApprovedEvent struct {
	shared.BaseDomainEvent
	PendingPaymentID uuid.UUID       `json:"pending_payment_id"`
	PaymentID        uuid.UUID       `json:"payment_id"`
	BillID           uuid.UUID       `json:"bill_id"`
	BusinessID       uuid.UUID       `json:"business_id"`
	Amount           decimal.Decimal `json:"amount"`
	ReviewedBy       *uuid.UUID      `json:"reviewed_by"`
}

// EventType returns the event type name
func (e *PendingPaymentApprovedEvent) EventType() string {
	return "PendingPaymentApproved"
}

// NewPendingPaymentApprovedEvent creates a new PendingPaymentApprovedEvent
func NewPendingPaymentApprovedEvent(pp *PendingPayment, paymentID uuid.UUID) *PendingPaymentApprovedEvent {
	return &PendingPaymentApprovedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("PendingPaymentApproved", "PendingPayment", pp.ID, pp.PlazaID),
		PendingPaymentID: pp.ID,
		PaymentID:        paymentID,
		BillID:           pp.BillID,
		BusinessID:       pp.BusinessID,
		Amount:           pp.Amount,
		ReviewedBy:       pp.ReviewedBy,
	}
}

// PendingPaymentRejectedEvent is raised when an admin rejects a payment claim
type PendingPaymentRejectedEvent struct {
	shared.BaseDomainEvent
	PendingPaymentID uuid.UUID       `json:"pending_payment_id"`
	BillID           uuid.UUID       `json:"bill_id"`
	BusinessID       uuid.UUID       `json:"business_id"`
	Amount           decimal.Decimal `json:"amount"`
	Reason           string          `json:"reason"`
}

// EventType returns the event type name
func (e *PendingPaymentRejectedEvent) EventType() string {
	return "PendingPaymentRejected"
}

// NewPendingPaymentRejectedEvent creates a new PendingPaymentRejectedEvent
func NewPendingPaymentRejectedEvent(pp *PendingPayment) *PendingPaymentRejectedEvent {
	return &PendingPaymentRejectedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("PendingPaymentRejected", "PendingPayment", pp.ID, pp.PlazaID),
		PendingPaymentID: pp.ID,
		BillID:           pp.BillID,
		BusinessID:       pp.BusinessID,
		Amount:           pp.Amount,
		Reason:           pp.RejectReason,
	}
}
