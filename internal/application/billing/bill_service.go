package billing

import (
	"context"
	"time"

	"github.com/plazafl/backend/internal/domain/billing"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillService provides application-level bill operations
type BillService struct {
	billRepo     billing.BillRepository
	businessRepo tenancy.BusinessRepository
	settingsRepo billing.SettingsRepository
}

// NewBillService creates a new BillService
func NewBillService(
	billRepo billing.BillRepository,
	businessRepo tenancy.BusinessRepository,
	settingsRepo billing.SettingsRepository,
) *BillService {
	return &BillService{
		billRepo:     billRepo,
		businessRepo: businessRepo,
		settingsRepo: settingsRepo,
	}
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID              uuid.UUID       `json:"id"`
	PlazaID         uuid.UUID       `json:"plaza_id"`
	BillNumber      string          `json:"bill_number"`
	BusinessID      uuid.UUID       `json:"business_id"`
	BusinessName    string          `json:"business_name"`
	Category        string          `json:"category"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	Charges         billing.Charges `json:"charges"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          string          `json:"status"`
	BillDate        time.Time       `json:"bill_date"`
	DueDate         time.Time       `json:"due_date"`
	TermsText       string          `json:"terms_text,omitempty"`
	Remark          string          `json:"remark,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// CreateBillRequest represents a request to create a bill manually
type CreateBillRequest struct {
	BusinessID uuid.UUID       `json:"business_id" binding:"required"`
	Category   string          `json:"category" binding:"required"`
	Month      int             `json:"month" binding:"required"`
	Year       int             `json:"year" binding:"required"`
	Rent       decimal.Decimal `json:"rent"`
	Maintenance decimal.Decimal `json:"maintenance"`
	Electricity decimal.Decimal `json:"electricity"`
	Gas        decimal.Decimal `json:"gas"`
	Water      decimal.Decimal `json:"water"`
	Other      decimal.Decimal `json:"other"`
	BillDate   *time.Time      `json:"bill_date"`
	DueDate    *time.Time      `json:"due_date"`
	Remark     string          `json:"remark"`
	CreatedBy  *uuid.UUID      `json:"-"` // Set from JWT context
}

// BillListFilter defines filtering options for bill list queries
type BillListFilter struct {
	BusinessID *uuid.UUID `form:"business_id"`
	Category   string     `form:"category"`
	Status     string     `form:"status"`
	Month      *int       `form:"month"`
	Year       *int       `form:"year"`
	Search     string     `form:"search"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// CreateBill creates a bill for any category with an assigned sequential number
func (s *BillService) CreateBill(ctx context.Context, plazaID uuid.UUID, req CreateBillRequest) (*BillResponse, error) {
	business, err := s.businessRepo.FindByIDForPlaza(ctx, plazaID, req.BusinessID)
	if err != nil {
		return nil, err
	}

	category := billing.BillCategory(req.Category)
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Bill category is not valid")
	}

	billDate := time.Now()
	if req.BillDate != nil {
		billDate = *req.BillDate
	}

	settings, err := s.loadSettings(ctx, plazaID)
	if err != nil {
		return nil, err
	}

	dueDate := billDate.AddDate(0, 0, settings.DueOffsetDays)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	numbers, err := s.billRepo.ListNumbers(ctx, plazaID, category.NumberPrefix(), billDate.Year())
	if err != nil {
		return nil, err
	}
	billNumber := billing.NextBillNumber(category.NumberPrefix(), billDate.Year(), numbers)

	bill, err := billing.NewBill(
		plazaID,
		billNumber,
		business.ID,
		business.Name,
		category,
		req.Month,
		req.Year,
		billing.Charges{
			Rent:        req.Rent,
			Maintenance: req.Maintenance,
			Electricity: req.Electricity,
			Gas:         req.Gas,
			Water:       req.Water,
			Other:       req.Other,
		},
		billDate,
		dueDate,
		settings.TermsText(),
	)
	if err != nil {
		return nil, err
	}

	if req.Remark != "" {
		bill.SetRemark(req.Remark)
	}
	if req.CreatedBy != nil {
		bill.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	return ToBillResponse(bill), nil
}

// GetBill fetches one bill
func (s *BillService) GetBill(ctx context.Context, plazaID, id uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	return ToBillResponse(bill), nil
}

// ListBills lists bills with filtering and pagination
func (s *BillService) ListBills(ctx context.Context, plazaID uuid.UUID, filter BillListFilter) (*shared.Paginated[BillResponse], error) {
	repoFilter := billing.BillFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.Search = filter.Search
	repoFilter.BusinessID = filter.BusinessID
	repoFilter.Month = filter.Month
	repoFilter.Year = filter.Year
	if filter.Category != "" {
		category := billing.BillCategory(filter.Category)
		repoFilter.Category = &category
	}
	if filter.Status != "" {
		status := billing.BillStatus(filter.Status)
		repoFilter.Status = &status
	}

	bills, err := s.billRepo.FindAllForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.billRepo.CountForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]BillResponse, 0, len(bills))
	for i := range bills {
		items = append(items, *ToBillResponse(&bills[i]))
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// GetSummary aggregates the plaza's billing position
func (s *BillService) GetSummary(ctx context.Context, plazaID uuid.UUID) (*billing.BillSummary, error) {
	return s.billRepo.SummarizeForPlaza(ctx, plazaID)
}

// WaveoffBillRequest represents a request to write off a bill's balance
type WaveoffBillRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// WaveoffBill writes off the outstanding balance of a bill
func (s *BillService) WaveoffBill(ctx context.Context, plazaID, id uuid.UUID, req WaveoffBillRequest) (*BillResponse, error) {
	bill, err := s.billRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	if err := bill.Waveoff(req.Reason); err != nil {
		return nil, err
	}
	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}
	return ToBillResponse(bill), nil
}

// CancelBillRequest represents a request to void a bill
type CancelBillRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CancelBill voids a bill that has received no payments
func (s *BillService) CancelBill(ctx context.Context, plazaID, id uuid.UUID, req CancelBillRequest) (*BillResponse, error) {
	bill, err := s.billRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	if err := bill.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}
	return ToBillResponse(bill), nil
}

// OverdueSweepResult summarizes an overdue sweep run
type OverdueSweepResult struct {
	Checked int      `json:"checked"`
	Marked  int      `json:"marked"`
	Errors  []string `json:"errors,omitempty"`
}

// SweepOverdue marks past-due pending bills as OVERDUE. Per-bill failures
// are collected and the sweep continues.
func (s *BillService) SweepOverdue(ctx context.Context, plazaID uuid.UUID) (*OverdueSweepResult, error) {
	now := time.Now()
	bills, err := s.billRepo.FindPastDue(ctx, plazaID, now)
	if err != nil {
		return nil, err
	}

	result := &OverdueSweepResult{Checked: len(bills)}
	for i := range bills {
		bill := &bills[i]
		if err := bill.MarkOverdue(now); err != nil {
			result.Errors = append(result.Errors, bill.BillNumber+": "+err.Error())
			continue
		}
		if err := s.billRepo.Save(ctx, bill); err != nil {
			result.Errors = append(result.Errors, bill.BillNumber+": "+err.Error())
			continue
		}
		result.Marked++
	}

	return result, nil
}

func (s *BillService) loadSettings(ctx context.Context, plazaID uuid.UUID) (*billing.Settings, error) {
	settings, err := s.settingsRepo.FindForPlaza(ctx, plazaID)
	if err == shared.ErrNotFound {
		return billing.NewSettings(plazaID), nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// ToBillResponse maps a bill aggregate to its API response
func ToBillResponse(b *billing.Bill) *BillResponse {
	return &BillResponse{
		ID:              b.ID,
		PlazaID:         b.PlazaID,
		BillNumber:      b.BillNumber,
		BusinessID:      b.BusinessID,
		BusinessName:    b.BusinessName,
		Category:        string(b.Category),
		Month:           b.Month,
		Year:            b.Year,
		Charges:         b.Charges,
		TotalAmount:     b.TotalAmount,
		PaidAmount:      b.PaidAmount,
		RemainingAmount: b.RemainingAmount(),
		Status:          string(b.Status),
		BillDate:        b.BillDate,
		DueDate:         b.DueDate,
		TermsText:       b.TermsText,
		Remark:          b.Remark,
		PaidAt:          b.PaidAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		Version:         b.GetVersion(),
	}
}
