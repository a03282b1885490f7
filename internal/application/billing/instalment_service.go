package billing

import (
	"context"
	"time"

	"github.com/plazafl/backend/internal/domain/billing"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InstalmentService manages instalment plans for maintenance bills
type InstalmentService struct {
	instalmentRepo billing.InstalmentRepository
	billRepo       billing.BillRepository
}

// NewInstalmentService creates a new InstalmentService
func NewInstalmentService(
	instalmentRepo billing.InstalmentRepository,
	billRepo billing.BillRepository,
) *InstalmentService {
	return &InstalmentService{
		instalmentRepo: instalmentRepo,
		billRepo:       billRepo,
	}
}

// InstalmentResponse represents one instalment in API responses
type InstalmentResponse struct {
	ID             uuid.UUID       `json:"id"`
	PlazaID        uuid.UUID       `json:"plaza_id"`
	BillID         uuid.UUID       `json:"bill_id"`
	BusinessID     uuid.UUID       `json:"business_id"`
	SequenceNumber int             `json:"sequence_number"`
	Amount         decimal.Decimal `json:"amount"`
	DueDate        time.Time       `json:"due_date"`
	Status         string          `json:"status"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	Remark         string          `json:"remark,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateInstalmentPlanRequest represents a request to split a maintenance
// bill into instalments
type CreateInstalmentPlanRequest struct {
	Count    int        `json:"count" binding:"required,min=2,max=12"`
	FirstDue *time.Time `json:"first_due"`
}

// CancelInstalmentRequest carries the reason for voiding an instalment
type CancelInstalmentRequest struct {
	Remark string `json:"remark"`
}

// CreatePlan splits a maintenance bill into equal monthly instalments. A
// bill can carry at most one plan.
func (s *InstalmentService) CreatePlan(ctx context.Context, plazaID, billID uuid.UUID, req CreateInstalmentPlanRequest) ([]InstalmentResponse, error) {
	bill, err := s.billRepo.FindByIDForPlaza(ctx, plazaID, billID)
	if err != nil {
		return nil, err
	}
	if bill.Status != billing.BillStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Instalment plans can only be created for pending bills")
	}

	existing, err := s.instalmentRepo.FindByBill(ctx, plazaID, billID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, shared.NewDomainError("PLAN_EXISTS", "Bill already has an instalment plan")
	}

	firstDue := bill.DueDate
	if req.FirstDue != nil {
		firstDue = *req.FirstDue
	}

	plan, err := billing.BuildInstalmentPlan(bill, req.Count, firstDue)
	if err != nil {
		return nil, err
	}

	if err := s.instalmentRepo.SaveAll(ctx, plan); err != nil {
		return nil, err
	}

	responses := make([]InstalmentResponse, len(plan))
	for i, instalment := range plan {
		responses[i] = *toInstalmentResponse(instalment)
	}
	return responses, nil
}

// ListForBill returns a bill's instalment plan ordered by sequence
func (s *InstalmentService) ListForBill(ctx context.Context, plazaID, billID uuid.UUID) ([]InstalmentResponse, error) {
	if _, err := s.billRepo.FindByIDForPlaza(ctx, plazaID, billID); err != nil {
		return nil, err
	}

	instalments, err := s.instalmentRepo.FindByBill(ctx, plazaID, billID)
	if err != nil {
		return nil, err
	}

	responses := make([]InstalmentResponse, len(instalments))
	for i := range instalments {
		responses[i] = *toInstalmentResponse(&instalments[i])
	}
	return responses, nil
}

// PayInstalment settles a pending instalment
func (s *InstalmentService) PayInstalment(ctx context.Context, plazaID, id uuid.UUID) (*InstalmentResponse, error) {
	instalment, err := s.instalmentRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}

	if err := instalment.MarkPaid(); err != nil {
		return nil, err
	}

	if err := s.instalmentRepo.Save(ctx, instalment); err != nil {
		return nil, err
	}
	return toInstalmentResponse(instalment), nil
}

// CancelInstalment voids an unpaid instalment
func (s *InstalmentService) CancelInstalment(ctx context.Context, plazaID, id uuid.UUID, req CancelInstalmentRequest) (*InstalmentResponse, error) {
	instalment, err := s.instalmentRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}

	if err := instalment.Cancel(req.Remark); err != nil {
		return nil, err
	}

	if err := s.instalmentRepo.Save(ctx, instalment); err != nil {
		return nil, err
	}
	return toInstalmentResponse(instalment), nil
}

func toInstalmentResponse(i *billing.MaintenanceInstalment) *InstalmentResponse {
	return &InstalmentResponse{
		ID:             i.ID,
		PlazaID:        i.PlazaID,
		BillID:         i.BillID,
		BusinessID:     i.BusinessID,
		SequenceNumber: i.SequenceNumber,
		Amount:         i.Amount,
		DueDate:        i.DueDate,
		Status:         string(i.Status),
		PaidAt:         i.PaidAt,
		Remark:         i.Remark,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
