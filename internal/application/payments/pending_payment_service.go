package payments

import (
	"context"
	"time"

	"github.com/plazafl/backend/internal/domain/billing"
	"github.com/plazafl/backend/internal/domain/payments"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PendingPaymentService handles business-submitted payment claims and the
// admin review workflow.
type PendingPaymentService struct {
	pendingRepo payments.PendingPaymentRepository
	paymentRepo payments.PaymentRepository
	billRepo    billing.BillRepository
	logger      *zap.Logger
}

// NewPendingPaymentService creates a new PendingPaymentService
func NewPendingPaymentService(
	pendingRepo payments.PendingPaymentRepository,
	paymentRepo payments.PaymentRepository,
	billRepo billing.BillRepository,
	logger *zap.Logger,
) *PendingPaymentService {
	return &PendingPaymentService{
		pendingRepo: pendingRepo,
		paymentRepo: paymentRepo,
		billRepo:    billRepo,
		logger:      logger,
	}
}

// PendingPaymentResponse represents a payment claim in API responses
type PendingPaymentResponse struct {
	ID           uuid.UUID       `json:"id"`
	PlazaID      uuid.UUID       `json:"plaza_id"`
	BillID       uuid.UUID       `json:"bill_id"`
	BusinessID   uuid.UUID       `json:"business_id"`
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method"`
	Reference    string          `json:"reference,omitempty"`
	ProofURL     string          `json:"proof_url,omitempty"`
	Status       string          `json:"status"`
	SubmittedAt  time.Time       `json:"submitted_at"`
	ReviewedAt   *time.Time      `json:"reviewed_at,omitempty"`
	ReviewedBy   *uuid.UUID      `json:"reviewed_by,omitempty"`
	RejectReason string          `json:"reject_reason,omitempty"`
	PaymentID    *uuid.UUID      `json:"payment_id,omitempty"`
}

// SubmitPendingPaymentRequest represents a business submitting a claim
type SubmitPendingPaymentRequest struct {
	BillID    uuid.UUID       `json:"bill_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	Reference string          `json:"reference"`
	ProofURL  string          `json:"proof_url"`
}

// PendingPaymentListFilter defines filtering options for claim list queries
type PendingPaymentListFilter struct {
	BusinessID *uuid.UUID `form:"business_id"`
	BillID     *uuid.UUID `form:"bill_id"`
	Status     string     `form:"status"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// Submit records a payment claim from a business against one of its bills
func (s *PendingPaymentService) Submit(ctx context.Context, plazaID, businessID uuid.UUID, req SubmitPendingPaymentRequest) (*PendingPaymentResponse, error) {
	bill, err := s.billRepo.FindByIDForPlaza(ctx, plazaID, req.BillID)
	if err != nil {
		return nil, err
	}
	if bill.BusinessID != businessID {
		return nil, shared.ErrForbidden
	}
	if !bill.IsUnpaid() {
		return nil, shared.NewDomainError("INVALID_STATE", "Bill is not open for payment")
	}

	pending, err := payments.NewPendingPayment(
		plazaID,
		bill.ID,
		businessID,
		valueobject.NewMoneyPKR(req.Amount),
		payments.PaymentMethod(req.Method),
		req.Reference,
		req.ProofURL,
	)
	if err != nil {
		return nil, err
	}

	if err := s.pendingRepo.Save(ctx, pending); err != nil {
		return nil, err
	}

	return toPendingPaymentResponse(pending, nil), nil
}

// GetPendingPayment fetches one claim
func (s *PendingPaymentService) GetPendingPayment(ctx context.Context, plazaID, id uuid.UUID) (*PendingPaymentResponse, error) {
	pending, err := s.pendingRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	return toPendingPaymentResponse(pending, nil), nil
}

// ListPendingPayments lists claims with filtering and pagination
func (s *PendingPaymentService) ListPendingPayments(ctx context.Context, plazaID uuid.UUID, filter PendingPaymentListFilter) (*shared.Paginated[PendingPaymentResponse], error) {
	repoFilter := payments.PendingPaymentFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.BusinessID = filter.BusinessID
	repoFilter.BillID = filter.BillID
	if filter.Status != "" {
		status := payments.PendingPaymentStatus(filter.Status)
		repoFilter.Status = &status
	}

	results, err := s.pendingRepo.FindAllForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.pendingRepo.CountForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]PendingPaymentResponse, 0, len(results))
	for i := range results {
		items = append(items, *toPendingPaymentResponse(&results[i], nil))
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// Approve finalizes a claim: the spawned payment is persisted and applied
// to the bill in one pass. Approving an already-decided claim fails with
// an invalid-state error and changes nothing.
func (s *PendingPaymentService) Approve(ctx context.Context, plazaID, id, reviewerID uuid.UUID) (*PendingPaymentResponse, error) {
	pending, err := s.pendingRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}

	payment, err := pending.Approve(reviewerID, time.Now())
	if err != nil {
		return nil, err
	}

	bill, err := s.billRepo.FindByIDForPlaza(ctx, plazaID, pending.BillID)
	if err != nil {
		return nil, err
	}
	if err := bill.RecordPayment(payment.GetAmountMoney()); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}
	if err := s.pendingRepo.Save(ctx, pending); err != nil {
		return nil, err
	}

	s.logger.Info("pending payment approved",
		zap.String("bill_number", bill.BillNumber),
		zap.String("amount", payment.Amount.String()),
		zap.String("bill_status", bill.Status.String()))

	paymentID := payment.ID
	return toPendingPaymentResponse(pending, &paymentID), nil
}

// RejectPendingPaymentRequest represents the rejection reason
type RejectPendingPaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Reject finalizes a claim without creating a payment
func (s *PendingPaymentService) Reject(ctx context.Context, plazaID, id, reviewerID uuid.UUID, req RejectPendingPaymentRequest) (*PendingPaymentResponse, error) {
	pending, err := s.pendingRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}

	if err := pending.Reject(reviewerID, req.Reason); err != nil {
		return nil, err
	}

	if err := s.pendingRepo.Save(ctx, pending); err != nil {
		return nil, err
	}

	return toPendingPaymentResponse(pending, nil), nil
}

func toPendingPaymentResponse(pp *payments.PendingPayment, paymentID *uuid.UUID) *PendingPaymentResponse {
	return &PendingPaymentResponse{
		ID:           pp.ID,
		PlazaID:      pp.PlazaID,
		BillID:       pp.BillID,
		BusinessID:   pp.BusinessID,
		Amount:       pp.Amount,
		Method:       string(pp.Method),
		Reference:    pp.Reference,
		ProofURL:     pp.ProofURL,
		Status:       string(pp.Status),
		SubmittedAt:  pp.SubmittedAt,
		ReviewedAt:   pp.ReviewedAt,
		ReviewedBy:   pp.ReviewedBy,
		RejectReason: pp.RejectReason,
		PaymentID:    paymentID,
	}
}
