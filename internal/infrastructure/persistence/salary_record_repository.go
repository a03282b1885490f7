package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/payroll"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSalaryRecordRepository implements payroll.SalaryRecordRepository using GORM
type GormSalaryRecordRepository struct {
	db *gorm.DB
}

// NewGormSalaryRecordRepository creates a new GormSalaryRecordRepository
func NewGormSalaryRecordRepository(db *gorm.DB) *GormSalaryRecordRepository {
	return &GormSalaryRecordRepository{db: db}
}

// FindByID finds a salary record by ID
func (r *GormSalaryRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.SalaryRecord, error) {
	var model models.SalaryRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForPlaza finds a salary record by ID within a plaza
func (r *GormSalaryRecordRepository) FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*payroll.SalaryRecord, error) {
	var model models.SalaryRecordModel
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

// FindAllForPlaza finds salary records in a plaza with filtering
func (r *GormSalaryRecordRepository) FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter payroll.SalaryRecordFilter) ([]payroll.SalaryRecord, error) {
	var recordModels []models.SalaryRecordModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SalaryRecordModel{}).Where("plaza_id = ?", plazaID), filter)
	query = applyListOptions(query, filter.Filter, SalaryRecordSortFields)

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}

	result := make([]payroll.SalaryRecord, len(recordModels))
	for i, model := range recordModels {
		result[i] = *model.ToDomain()
	}
	return result, nil
}

// ExistsForPeriod reports whether a record exists for the staff member
// in the given month/year
func (r *GormSalaryRecordRepository) ExistsForPeriod(ctx context.Context, plazaID, staffID uuid.UUID, month, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SalaryRecordModel{}).
		Where("plaza_id = ? AND staff_id = ? AND month = ? AND year = ?", plazaID, staffID, month, year).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a salary record
func (r *GormSalaryRecordRepository) Save(ctx context.Context, record *payroll.SalaryRecord) error {
	model := models.SalaryRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForPlaza counts salary records in a plaza with optional filters
func (r *GormSalaryRecordRepository) CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter payroll.SalaryRecordFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SalaryRecordModel{}).Where("plaza_id = ?", plazaID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumPaidForPeriod totals paid net salaries for a month
func (r *GormSalaryRecordRepository) SumPaidForPeriod(ctx context.Context, plazaID uuid.UUID, month, year int) (string, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&models.SalaryRecordModel{}).
		Select("COALESCE(SUM(base_salary + bonus - deduction), 0)").
		Where("plaza_id = ? AND month = ? AND year = ? AND status = ?", plazaID, month, year, payroll.SalaryStatusPaid).
		Scan(&total).Error
	if err != nil {
		return "", err
	}
	return total.StringFixed(2), nil
}

// applyFilter applies salary-record-specific filter conditions
func (r *GormSalaryRecordRepository) applyFilter(query *gorm.DB, filter payroll.SalaryRecordFilter) *gorm.DB {
	if filter.StaffID != nil {
		query = query.Where("staff_id = ?", *filter.StaffID)
	}
	if filter.Month != nil {
		query = query.Where("month = ?", *filter.Month)
	}
	if filter.Year != nil {
		query = query.Where("year = ?", *filter.Year)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("staff_name ILIKE ?", searchPattern)
	}
	return query
}
