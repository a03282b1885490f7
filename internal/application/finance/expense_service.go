package finance

import (
	"context"
	"time"

	"github.com/plazafl/backend/internal/domain/finance"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseService provides application-level expense tracking operations
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
	logger      *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	PlazaID     uuid.UUID       `json:"plaza_id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expense_date"`
	Vendor      string          `json:"vendor,omitempty"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
	Remark      string          `json:"remark,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate *time.Time      `json:"expense_date"`
	Vendor      string          `json:"vendor"`
	ReceiptURL  string          `json:"receipt_url"`
	Remark      string          `json:"remark"`
}

// UpdateExpenseRequest represents a request to revise an expense
type UpdateExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate *time.Time      `json:"expense_date"`
	Vendor      string          `json:"vendor"`
	ReceiptURL  string          `json:"receipt_url"`
	Remark      string          `json:"remark"`
}

// ExpenseListFilter defines filtering options for expense list queries
type ExpenseListFilter struct {
	Category string     `form:"category"`
	FromDate *time.Time `form:"from_date"`
	ToDate   *time.Time `form:"to_date"`
	Search   string     `form:"search"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// CreateExpense records a plaza expense
func (s *ExpenseService) CreateExpense(ctx context.Context, plazaID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	expenseDate := time.Now()
	if req.ExpenseDate != nil {
		expenseDate = *req.ExpenseDate
	}

	expense, err := finance.NewExpense(
		plazaID,
		finance.ExpenseCategory(req.Category),
		req.Description,
		valueobject.NewMoneyPKR(req.Amount),
		expenseDate,
		req.Vendor,
	)
	if err != nil {
		return nil, err
	}
	if req.ReceiptURL != "" {
		expense.AttachReceipt(req.ReceiptURL)
	}
	if req.Remark != "" {
		expense.SetRemark(req.Remark)
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("expense recorded",
		zap.String("category", string(expense.Category)),
		zap.String("amount", expense.Amount.String()))

	return toExpenseResponse(expense), nil
}

// GetExpense fetches one expense
func (s *ExpenseService) GetExpense(ctx context.Context, plazaID, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// ListExpenses lists expenses with filtering and pagination
func (s *ExpenseService) ListExpenses(ctx context.Context, plazaID uuid.UUID, filter ExpenseListFilter) (*shared.Paginated[ExpenseResponse], error) {
	repoFilter := finance.ExpenseFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.Search = filter.Search
	repoFilter.FromDate = filter.FromDate
	repoFilter.ToDate = filter.ToDate
	if filter.Category != "" {
		category := finance.ExpenseCategory(filter.Category)
		repoFilter.Category = &category
	}

	results, err := s.expenseRepo.FindAllForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.expenseRepo.CountForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ExpenseResponse, 0, len(results))
	for i := range results {
		items = append(items, *toExpenseResponse(&results[i]))
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// UpdateExpense revises a recorded expense
func (s *ExpenseService) UpdateExpense(ctx context.Context, plazaID, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}

	expenseDate := expense.ExpenseDate
	if req.ExpenseDate != nil {
		expenseDate = *req.ExpenseDate
	}

	if err := expense.Update(
		finance.ExpenseCategory(req.Category),
		req.Description,
		valueobject.NewMoneyPKR(req.Amount),
		expenseDate,
		req.Vendor,
	); err != nil {
		return nil, err
	}
	if req.ReceiptURL != "" {
		expense.AttachReceipt(req.ReceiptURL)
	}
	if req.Remark != "" {
		expense.SetRemark(req.Remark)
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// DeleteExpense removes an expense record
func (s *ExpenseService) DeleteExpense(ctx context.Context, plazaID, id uuid.UUID) error {
	if _, err := s.expenseRepo.FindByIDForPlaza(ctx, plazaID, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, plazaID, id)
}

// MonthlyLedger sets collected payments against expenses for one month
type MonthlyLedger struct {
	Month         int    `json:"month"`
	Year          int    `json:"year"`
	TotalExpenses string `json:"total_expenses"`
	TotalSalaries string `json:"total_salaries"`
}

// GetMonthlyExpenseTotal sums expenses for a calendar month
func (s *ExpenseService) GetMonthlyExpenseTotal(ctx context.Context, plazaID uuid.UUID, month, year int) (string, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	return s.expenseRepo.SumForPeriod(ctx, plazaID, from, to, nil)
}

func toExpenseResponse(e *finance.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		PlazaID:     e.PlazaID,
		Category:    string(e.Category),
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate,
		Vendor:      e.Vendor,
		ReceiptURL:  e.ReceiptURL,
		Remark:      e.Remark,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
