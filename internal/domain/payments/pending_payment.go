package payments

import (
	"fmt"
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PendingPaymentStatus represents the review state of a submitted payment
type PendingPaymentStatus string

const (
	PendingPaymentStatusPending  PendingPaymentStatus = "PENDING"
	PendingPaymentStatusApproved PendingPaymentStatus = "APPROVED"
	PendingPaymentStatusRejected PendingPaymentStatus = "REJECTED"
)

// IsValid checks if the status is valid
func (s PendingPaymentStatus) IsValid() bool {
	switch s {
	case PendingPaymentStatusPending, PendingPaymentStatusApproved, PendingPaymentStatusRejected:
		return true
	}
	return false
}

// IsTerminal returns true once the review decision has been made
func (s PendingPaymentStatus) IsTerminal() bool {
	return s == PendingPaymentStatusApproved || s == PendingPaymentStatusRejected
}

// PendingPayment is a payment claim submitted by a business, held until an
// admin approves or rejects it. Approval spawns exactly one confirmed
// Payment; both decisions are final.
type PendingPayment struct {
	shared.PlazaAggregateRoot
	BillID       uuid.UUID            `json:"bill_id"`
	BusinessID   uuid.UUID            `json:"business_id"`
	Amount       decimal.Decimal      `json:"amount"`
	Method       PaymentMethod        `json:"method"`
	Reference    string               `json:"reference"`
	ProofURL     string               `json:"proof_url"` // Uploaded receipt or transfer screenshot
	Status       PendingPaymentStatus `json:"status"`
	SubmittedAt  time.Time            `json:"submitted_at"`
	ReviewedAt   *time.Time           `json:"reviewed_at"`
	ReviewedBy   *uuid.UUID           `json:"reviewed_by"`
	RejectReason string               `json:"reject_reason"`
}

// NewPendingPayment creates a payment claim awaiting review
func NewPendingPayment(
	plazaID uuid.UUID,
	billID uuid.UUID,
	businessID uuid.UUID,
	amount valueobject.Money,
	method PaymentMethod,
	reference string,
	proofURL string,
) (*PendingPayment, error) {
	if billID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BILL", "Bill ID cannot be empty")
	}
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Business ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method is not valid")
	}

	pp := &PendingPayment{
		PlazaAggregateRoot: shared.NewPlazaAggregateRoot(plazaID),
		BillID:             billID,
		BusinessID:         businessID,
		Amount:             amount.Amount(),
		Method:             method,
		Reference:          reference,
		ProofURL:           proofURL,
		Status:             PendingPaymentStatusPending,
		SubmittedAt:        time.Now(),
	}

	pp.AddDomainEvent(NewPendingPaymentSubmittedEvent(pp))

	return pp, nil
}

// Approve finalizes the claim and spawns the confirmed Payment to apply
// against the bill. A claim can only be decided once.
func (pp *PendingPayment) Approve(reviewerID uuid.UUID, paymentDate time.Time) (*Payment, error) {
	if pp.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Payment claim is already %s", pp.Status))
	}
	if reviewerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REVIEWER", "Reviewer ID cannot be empty")
	}

	payment, err := NewPayment(
		pp.PlazaID,
		pp.BillID,
		pp.BusinessID,
		valueobject.NewMoneyPKR(pp.Amount),
		pp.Method,
		paymentDate,
		pp.Reference,
	)
	if err != nil {
		return nil, err
	}
	payment.SetReceivedBy(reviewerID)

	now := time.Now()
	pp.Status = PendingPaymentStatusApproved
	pp.ReviewedAt = &now
	pp.ReviewedBy = &reviewerID
	pp.UpdatedAt = now
	pp.IncrementVersion()

	pp.AddDomainEvent(NewPendingPaymentApprovedEvent(pp, payment.ID))

	return payment, nil
}

// Reject finalizes the claim without creating a payment
func (pp *PendingPayment) Reject(reviewerID uuid.UUID, reason string) error {
	if pp.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Payment claim is already %s", pp.Status))
	}
	if reviewerID == uuid.Nil {
		return shared.NewDomainError("INVALID_REVIEWER", "Reviewer ID cannot be empty")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}

	now := time.Now()
	pp.Status = PendingPaymentStatusRejected
	pp.ReviewedAt = &now
	pp.ReviewedBy = &reviewerID
	pp.RejectReason = reason
	pp.UpdatedAt = now
	pp.IncrementVersion()

	pp.AddDomainEvent(NewPendingPaymentRejectedEvent(pp))

	return nil
}

// GetAmountMoney returns the amount as Money
func (pp *PendingPayment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPKR(pp.Amount)
}
