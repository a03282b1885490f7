package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/plazafl/backend/internal/domain/payroll"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SalaryService generates monthly salary records for payable staff and
// settles them. Generation is idempotent per staff per month.
type SalaryService struct {
	salaryRepo payroll.SalaryRecordRepository
	staffRepo  payroll.StaffRepository
	logger     *zap.Logger
}

// NewSalaryService creates a new SalaryService
func NewSalaryService(
	salaryRepo payroll.SalaryRecordRepository,
	staffRepo payroll.StaffRepository,
	logger *zap.Logger,
) *SalaryService {
	return &SalaryService{
		salaryRepo: salaryRepo,
		staffRepo:  staffRepo,
		logger:     logger,
	}
}

// SalaryRecordResponse represents a salary record in API responses
type SalaryRecordResponse struct {
	ID         uuid.UUID       `json:"id"`
	PlazaID    uuid.UUID       `json:"plaza_id"`
	StaffID    uuid.UUID       `json:"staff_id"`
	StaffName  string          `json:"staff_name"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Bonus      decimal.Decimal `json:"bonus"`
	Deduction  decimal.Decimal `json:"deduction"`
	NetAmount  decimal.Decimal `json:"net_amount"`
	Status     string          `json:"status"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
	PaidBy     *uuid.UUID      `json:"paid_by,omitempty"`
	Remark     string          `json:"remark,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// GenerateSalariesRequest identifies the payroll month
type GenerateSalariesRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=2000"`
}

// SalaryGenerationResult summarizes a payroll generation run
type SalaryGenerationResult struct {
	Success    bool                       `json:"success"`
	Message    string                     `json:"message"`
	Month      int                        `json:"month"`
	Year       int                        `json:"year"`
	Statistics SalaryGenerationStatistics `json:"statistics"`
	Errors     []string                   `json:"errors,omitempty"`
}

// SalaryGenerationStatistics breaks down a generation run by outcome
type SalaryGenerationStatistics struct {
	Total     int `json:"total_staff"`
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// GenerateSalaries creates unpaid salary records for every payable staff
// member that does not already have one for the month. Staff that already
// have a record are skipped, so re-running a month is safe.
func (s *SalaryService) GenerateSalaries(ctx context.Context, plazaID uuid.UUID, req GenerateSalariesRequest) (*SalaryGenerationResult, error) {
	staff, err := s.staffRepo.FindPayable(ctx, plazaID)
	if err != nil {
		return nil, err
	}

	result := &SalaryGenerationResult{
		Month: req.Month,
		Year:  req.Year,
		Statistics: SalaryGenerationStatistics{
			Total: len(staff),
		},
	}

	for i := range staff {
		member := &staff[i]

		exists, err := s.salaryRepo.ExistsForPeriod(ctx, plazaID, member.ID, req.Month, req.Year)
		if err != nil {
			result.Statistics.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", member.Name, err))
			continue
		}
		if exists {
			result.Statistics.Skipped++
			continue
		}

		record, err := payroll.NewSalaryRecord(plazaID, member, req.Month, req.Year, decimal.Zero, decimal.Zero)
		if err != nil {
			result.Statistics.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", member.Name, err))
			continue
		}
		if err := s.salaryRepo.Save(ctx, record); err != nil {
			result.Statistics.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", member.Name, err))
			continue
		}
		result.Statistics.Generated++
	}

	result.Success = result.Statistics.Failed == 0
	result.Message = fmt.Sprintf("Generated %d salary records for %d/%d",
		result.Statistics.Generated, req.Month, req.Year)

	s.logger.Info("salary generation completed",
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Int("generated", result.Statistics.Generated),
		zap.Int("skipped", result.Statistics.Skipped),
		zap.Int("failed", result.Statistics.Failed))

	return result, nil
}

// SalaryListFilter defines filtering options for salary record list queries
type SalaryListFilter struct {
	StaffID  *uuid.UUID `form:"staff_id"`
	Month    *int       `form:"month"`
	Year     *int       `form:"year"`
	Status   string     `form:"status"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// ListSalaries lists salary records with filtering and pagination
func (s *SalaryService) ListSalaries(ctx context.Context, plazaID uuid.UUID, filter SalaryListFilter) (*shared.Paginated[SalaryRecordResponse], error) {
	repoFilter := payroll.SalaryRecordFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.StaffID = filter.StaffID
	repoFilter.Month = filter.Month
	repoFilter.Year = filter.Year
	if filter.Status != "" {
		status := payroll.SalaryStatus(filter.Status)
		repoFilter.Status = &status
	}

	results, err := s.salaryRepo.FindAllForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.salaryRepo.CountForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]SalaryRecordResponse, 0, len(results))
	for i := range results {
		items = append(items, *toSalaryRecordResponse(&results[i]))
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// GetSalary fetches one salary record
func (s *SalaryService) GetSalary(ctx context.Context, plazaID, id uuid.UUID) (*SalaryRecordResponse, error) {
	record, err := s.salaryRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	return toSalaryRecordResponse(record), nil
}

// AdjustSalaryRequest carries bonus and deduction changes for an unpaid record
type AdjustSalaryRequest struct {
	Bonus     *decimal.Decimal `json:"bonus"`
	Deduction *decimal.Decimal `json:"deduction"`
	Remark    string           `json:"remark"`
}

// AdjustSalary updates bonus or deduction on an unpaid salary record
func (s *SalaryService) AdjustSalary(ctx context.Context, plazaID, id uuid.UUID, req AdjustSalaryRequest) (*SalaryRecordResponse, error) {
	record, err := s.salaryRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}

	if req.Bonus != nil {
		if err := record.AdjustBonus(*req.Bonus); err != nil {
			return nil, err
		}
	}
	if req.Deduction != nil {
		if err := record.AdjustDeduction(*req.Deduction); err != nil {
			return nil, err
		}
	}
	if req.Remark != "" {
		record.SetRemark(req.Remark)
	}

	if err := s.salaryRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	return toSalaryRecordResponse(record), nil
}

// PaySalary marks a salary record as paid
func (s *SalaryService) PaySalary(ctx context.Context, plazaID, id, paidBy uuid.UUID) (*SalaryRecordResponse, error) {
	record, err := s.salaryRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}

	if err := record.MarkPaid(paidBy); err != nil {
		return nil, err
	}

	if err := s.salaryRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("salary paid",
		zap.String("staff_name", record.StaffName),
		zap.Int("month", record.Month),
		zap.Int("year", record.Year),
		zap.String("net_amount", record.NetAmount().String()))

	return toSalaryRecordResponse(record), nil
}

func toSalaryRecordResponse(r *payroll.SalaryRecord) *SalaryRecordResponse {
	return &SalaryRecordResponse{
		ID:         r.ID,
		PlazaID:    r.PlazaID,
		StaffID:    r.StaffID,
		StaffName:  r.StaffName,
		Month:      r.Month,
		Year:       r.Year,
		BaseSalary: r.BaseSalary,
		Bonus:      r.Bonus,
		Deduction:  r.Deduction,
		NetAmount:  r.NetAmount(),
		Status:     string(r.Status),
		PaidAt:     r.PaidAt,
		PaidBy:     r.PaidBy,
		Remark:     r.Remark,
		CreatedAt:  r.CreatedAt,
	}
}
