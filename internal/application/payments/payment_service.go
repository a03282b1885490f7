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

// PaymentService provides application-level payment operations
type PaymentService struct {
	paymentRepo payments.PaymentRepository
	billRepo    billing.BillRepository
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo payments.PaymentRepository,
	billRepo billing.BillRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		billRepo:    billRepo,
		logger:      logger,
	}
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	PlazaID     uuid.UUID       `json:"plaza_id"`
	BillID      uuid.UUID       `json:"bill_id"`
	BusinessID  uuid.UUID       `json:"business_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	PaymentDate time.Time       `json:"payment_date"`
	Reference   string          `json:"reference,omitempty"`
	ReceivedBy  *uuid.UUID      `json:"received_by,omitempty"`
	Remark      string          `json:"remark,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	BillStatus  string          `json:"bill_status"`
}

// RecordPaymentRequest represents a request to record a payment.
// With a bill ID the payment settles that bill; with only a business ID
// the oldest unpaid bill receives the whole amount.
type RecordPaymentRequest struct {
	BillID      *uuid.UUID      `json:"bill_id"`
	BusinessID  *uuid.UUID      `json:"business_id"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required"`
	PaymentDate *time.Time      `json:"payment_date"`
	Reference   string          `json:"reference"`
	Remark      string          `json:"remark"`
	ReceivedBy  *uuid.UUID      `json:"-"` // Set from JWT context
}

// PaymentListFilter defines filtering options for payment list queries
type PaymentListFilter struct {
	BusinessID *uuid.UUID `form:"business_id"`
	BillID     *uuid.UUID `form:"bill_id"`
	Method     string     `form:"method"`
	FromDate   *time.Time `form:"from_date"`
	ToDate     *time.Time `form:"to_date"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// RecordPayment records a confirmed payment and applies it to its bill
func (s *PaymentService) RecordPayment(ctx context.Context, plazaID uuid.UUID, req RecordPaymentRequest) (*PaymentResponse, error) {
	var bill *billing.Bill
	var err error

	switch {
	case req.BillID != nil:
		bill, err = s.billRepo.FindByIDForPlaza(ctx, plazaID, *req.BillID)
		if err != nil {
			return nil, err
		}
	case req.BusinessID != nil:
		unpaid, err := s.billRepo.FindUnpaidForBusiness(ctx, plazaID, *req.BusinessID)
		if err != nil {
			return nil, err
		}
		bill, err = payments.PickOldestUnpaid(unpaid)
		if err != nil {
			return nil, err
		}
	default:
		return nil, shared.NewDomainError("INVALID_TARGET", "Either bill_id or business_id is required")
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment, err := payments.NewPayment(
		plazaID,
		bill.ID,
		bill.BusinessID,
		valueobject.NewMoneyPKR(req.Amount),
		payments.PaymentMethod(req.Method),
		paymentDate,
		req.Reference,
	)
	if err != nil {
		return nil, err
	}
	if req.ReceivedBy != nil {
		payment.SetReceivedBy(*req.ReceivedBy)
	}
	if req.Remark != "" {
		payment.SetRemark(req.Remark)
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

	s.logger.Info("payment recorded",
		zap.String("bill_number", bill.BillNumber),
		zap.String("amount", payment.Amount.String()),
		zap.String("bill_status", bill.Status.String()))

	return toPaymentResponse(payment, bill), nil
}

// GetPayment fetches one payment
func (s *PaymentService) GetPayment(ctx context.Context, plazaID, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment, nil), nil
}

// ListPayments lists payments with filtering and pagination
func (s *PaymentService) ListPayments(ctx context.Context, plazaID uuid.UUID, filter PaymentListFilter) (*shared.Paginated[PaymentResponse], error) {
	repoFilter := payments.PaymentFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.BusinessID = filter.BusinessID
	repoFilter.BillID = filter.BillID
	repoFilter.FromDate = filter.FromDate
	repoFilter.ToDate = filter.ToDate
	if filter.Method != "" {
		method := payments.PaymentMethod(filter.Method)
		repoFilter.Method = &method
	}

	results, err := s.paymentRepo.FindAllForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.paymentRepo.CountForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]PaymentResponse, 0, len(results))
	for i := range results {
		items = append(items, *toPaymentResponse(&results[i], nil))
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// ListBillPayments lists all payments applied to one bill
func (s *PaymentService) ListBillPayments(ctx context.Context, plazaID, billID uuid.UUID) ([]PaymentResponse, error) {
	results, err := s.paymentRepo.FindByBill(ctx, plazaID, billID)
	if err != nil {
		return nil, err
	}
	items := make([]PaymentResponse, 0, len(results))
	for i := range results {
		items = append(items, *toPaymentResponse(&results[i], nil))
	}
	return items, nil
}

func toPaymentResponse(p *payments.Payment, bill *billing.Bill) *PaymentResponse {
	resp := &PaymentResponse{
		ID:          p.ID,
		PlazaID:     p.PlazaID,
		BillID:      p.BillID,
		BusinessID:  p.BusinessID,
		Amount:      p.Amount,
		Method:      string(p.Method),
		PaymentDate: p.PaymentDate,
		Reference:   p.Reference,
		ReceivedBy:  p.ReceivedBy,
		Remark:      p.Remark,
		CreatedAt:   p.CreatedAt,
	}
	if bill != nil {
		resp.BillStatus = bill.Status.String()
	}
	return resp
}
