package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/finance"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForPlaza finds an expense by ID within a plaza
func (r *GormExpenseRepository) FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("plaza_id = ? AND id = ?", plazaID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForPlaza finds expenses in a plaza with filtering
func (r *GormExpenseRepository) FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter finance.ExpenseFilter) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ExpenseModel{}).Where("plaza_id = ?", plazaID), filter)
	query = applyListOptions(query, filter.Filter, ExpenseSortFields)

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	result := make([]finance.Expense, len(expenseModels))
	for i, model := range expenseModels {
		result[i] = *model.ToDomain()
	}
	return result, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, plazaID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("plaza_id = ? AND id = ?", plazaID, id).
		Delete(&models.ExpenseModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForPlaza counts expenses in a plaza with optional filters
func (r *GormExpenseRepository) CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter finance.ExpenseFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ExpenseModel{}).Where("plaza_id = ?", plazaID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumForPeriod totals expense amounts within a date range, optionally
// restricted to a category
func (r *GormExpenseRepository) SumForPeriod(ctx context.Context, plazaID uuid.UUID, from, to time.Time, category *finance.ExpenseCategory) (string, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("plaza_id = ? AND expense_date >= ? AND expense_date < ?", plazaID, from, to)
	if category != nil {
		query = query.Where("category = ?", *category)
	}

	var total decimal.Decimal
	if err := query.Scan(&total).Error; err != nil {
		return "", err
	}
	return total.StringFixed(2), nil
}

// applyFilter applies expense-specific filter conditions
func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter finance.ExpenseFilter) *gorm.DB {
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.FromDate != nil {
		query = query.Where("expense_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("expense_date <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ? OR vendor ILIKE ?", searchPattern, searchPattern)
	}
	return query
}
