package tenancy

import (
	"context"
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/shared/valueobject"
	"github.com/plazafl/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdvanceService provides application-level advance prepayment operations
type AdvanceService struct {
	advanceRepo  tenancy.AdvanceRepository
	businessRepo tenancy.BusinessRepository
}

// NewAdvanceService creates a new AdvanceService
func NewAdvanceService(advanceRepo tenancy.AdvanceRepository, businessRepo tenancy.BusinessRepository) *AdvanceService {
	return &AdvanceService{
		advanceRepo:  advanceRepo,
		businessRepo: businessRepo,
	}
}

// AdvanceResponse represents an advance in API responses
type AdvanceResponse struct {
	ID         uuid.UUID       `json:"id"`
	PlazaID    uuid.UUID       `json:"plaza_id"`
	BusinessID uuid.UUID       `json:"business_id"`
	BillType   string          `json:"bill_type"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	Remark     string          `json:"remark,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreateAdvanceRequest represents a request to record an advance prepayment
type CreateAdvanceRequest struct {
	BusinessID uuid.UUID       `json:"business_id" binding:"required"`
	BillType   string          `json:"bill_type" binding:"required"`
	Month      int             `json:"month" binding:"required"`
	Year       int             `json:"year" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Remark     string          `json:"remark"`
}

// AdvanceListFilter defines filtering options for advance list queries
type AdvanceListFilter struct {
	BusinessID *uuid.UUID `form:"business_id"`
	BillType   string     `form:"bill_type"`
	Status     string     `form:"status"`
	Month      *int       `form:"month"`
	Year       *int       `form:"year"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// CreateAdvance records an advance prepayment for a business
func (s *AdvanceService) CreateAdvance(ctx context.Context, plazaID uuid.UUID, req CreateAdvanceRequest) (*AdvanceResponse, error) {
	business, err := s.businessRepo.FindByIDForPlaza(ctx, plazaID, req.BusinessID)
	if err != nil {
		return nil, err
	}

	billType := tenancy.AdvanceBillType(req.BillType)
	existing, err := s.advanceRepo.FindActiveForPeriod(ctx, plazaID, business.ID, billType, req.Month, req.Year)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ADVANCE_EXISTS", "An active advance already covers this period")
	}

	advance, err := tenancy.NewAdvance(
		plazaID,
		business.ID,
		billType,
		req.Month,
		req.Year,
		valueobject.NewMoneyPKR(req.Amount),
		req.Remark,
	)
	if err != nil {
		return nil, err
	}

	if err := s.advanceRepo.Save(ctx, advance); err != nil {
		return nil, err
	}

	return toAdvanceResponse(advance), nil
}

// GetAdvance fetches one advance
func (s *AdvanceService) GetAdvance(ctx context.Context, plazaID, id uuid.UUID) (*AdvanceResponse, error) {
	advance, err := s.advanceRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	return toAdvanceResponse(advance), nil
}

// ListAdvances lists advances with filtering and pagination
func (s *AdvanceService) ListAdvances(ctx context.Context, plazaID uuid.UUID, filter AdvanceListFilter) (*shared.Paginated[AdvanceResponse], error) {
	repoFilter := tenancy.AdvanceFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.BusinessID = filter.BusinessID
	repoFilter.Month = filter.Month
	repoFilter.Year = filter.Year
	if filter.BillType != "" {
		billType := tenancy.AdvanceBillType(filter.BillType)
		repoFilter.BillType = &billType
	}
	if filter.Status != "" {
		status := tenancy.AdvanceStatus(filter.Status)
		repoFilter.Status = &status
	}

	advances, err := s.advanceRepo.FindAllForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.advanceRepo.CountForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]AdvanceResponse, 0, len(advances))
	for i := range advances {
		items = append(items, *toAdvanceResponse(&advances[i]))
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// SettleAdvance marks an advance as consumed by its billing period
func (s *AdvanceService) SettleAdvance(ctx context.Context, plazaID, id uuid.UUID) (*AdvanceResponse, error) {
	advance, err := s.advanceRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	if err := advance.Settle(); err != nil {
		return nil, err
	}
	if err := s.advanceRepo.Save(ctx, advance); err != nil {
		return nil, err
	}
	return toAdvanceResponse(advance), nil
}

// CancelAdvanceRequest represents a request to cancel an advance
type CancelAdvanceRequest struct {
	Remark string `json:"remark" binding:"required"`
}

// CancelAdvance voids an active advance
func (s *AdvanceService) CancelAdvance(ctx context.Context, plazaID, id uuid.UUID, req CancelAdvanceRequest) (*AdvanceResponse, error) {
	advance, err := s.advanceRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	if err := advance.Cancel(req.Remark); err != nil {
		return nil, err
	}
	if err := s.advanceRepo.Save(ctx, advance); err != nil {
		return nil, err
	}
	return toAdvanceResponse(advance), nil
}

func toAdvanceResponse(a *tenancy.Advance) *AdvanceResponse {
	return &AdvanceResponse{
		ID:         a.ID,
		PlazaID:    a.PlazaID,
		BusinessID: a.BusinessID,
		BillType:   string(a.BillType),
		Month:      a.Month,
		Year:       a.Year,
		Amount:     a.Amount,
		Status:     string(a.Status),
		Remark:     a.Remark,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
