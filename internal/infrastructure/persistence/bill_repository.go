package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/billing"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormBillRepository implements billing.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a bill by its ID
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForPlaza finds a bill by ID within a plaza
func (r *GormBillRepository) FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
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

// FindByBillNumber finds a bill by its number within a plaza
func (r *GormBillRepository) FindByBillNumber(ctx context.Context, plazaID uuid.UUID, billNumber string) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).
		Where("plaza_id = ? AND bill_number = ?", plazaID, billNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForPlaza finds bills in a plaza with filtering
func (r *GormBillRepository) FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter billing.BillFilter) ([]billing.Bill, error) {
	var billModels []models.BillModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BillModel{}).Where("plaza_id = ?", plazaID), filter)
	query = applyListOptions(query, filter.Filter, BillSortFields)

	if err := query.Find(&billModels).Error; err != nil {
		return nil, err
	}

	return toDomainBills(billModels), nil
}

// FindUnpaidForBusiness finds PENDING and OVERDUE bills for a business,
// oldest bill date first. Payment reconciliation settles these in order.
func (r *GormBillRepository) FindUnpaidForBusiness(ctx context.Context, plazaID, businessID uuid.UUID) ([]billing.Bill, error) {
	var billModels []models.BillModel
	if err := r.db.WithContext(ctx).
		Where("plaza_id = ? AND business_id = ? AND status IN ?",
			plazaID, businessID, []billing.BillStatus{billing.BillStatusPending, billing.BillStatusOverdue}).
		Order("bill_date ASC, created_at ASC").
		Find(&billModels).Error; err != nil {
		return nil, err
	}
	return toDomainBills(billModels), nil
}

// FindPastDue finds PENDING bills whose due date is before the given time
func (r *GormBillRepository) FindPastDue(ctx context.Context, plazaID uuid.UUID, now time.Time) ([]billing.Bill, error) {
	var billModels []models.BillModel
	if err := r.db.WithContext(ctx).
		Where("plaza_id = ? AND status = ? AND due_date < ?", plazaID, billing.BillStatusPending, now).
		Order("due_date ASC").
		Find(&billModels).Error; err != nil {
		return nil, err
	}
	return toDomainBills(billModels), nil
}

// ExistsForPeriod reports whether a bill of the category already exists
// for the business in the given month/year. Cancelled bills do not count;
// a cancelled bill's period can be re-billed.
func (r *GormBillRepository) ExistsForPeriod(ctx context.Context, plazaID, businessID uuid.UUID, category billing.BillCategory, month, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BillModel{}).
		Where("plaza_id = ? AND business_id = ? AND category = ? AND month = ? AND year = ? AND status <> ?",
			plazaID, businessID, category, month, year, billing.BillStatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListNumbers returns all bill numbers in a plaza matching the
// {prefix}-{year}- scope, for sequential number generation
func (r *GormBillRepository) ListNumbers(ctx context.Context, plazaID uuid.UUID, prefix string, year int) ([]string, error) {
	var numbers []string
	pattern := fmt.Sprintf("%s-%d-%%", prefix, year)
	err := r.db.WithContext(ctx).Model(&models.BillModel{}).
		Where("plaza_id = ? AND bill_number LIKE ?", plazaID, pattern).
		Pluck("bill_number", &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

// Save creates or updates a bill
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForPlaza counts bills in a plaza with optional filters
func (r *GormBillRepository) CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter billing.BillFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BillModel{}).Where("plaza_id = ?", plazaID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SummarizeForPlaza aggregates outstanding totals and status counts
func (r *GormBillRepository) SummarizeForPlaza(ctx context.Context, plazaID uuid.UUID) (*billing.BillSummary, error) {
	type row struct {
		Status billing.BillStatus
		Count  int64
		Total  decimal.Decimal
		Paid   decimal.Decimal
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.BillModel{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total, COALESCE(SUM(paid_amount), 0) AS paid").
		Where("plaza_id = ?", plazaID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &billing.BillSummary{}
	totalBilled := decimal.Zero
	totalCollected := decimal.Zero
	totalOutstanding := decimal.Zero

	for _, rw := range rows {
		switch rw.Status {
		case billing.BillStatusPending:
			summary.PendingCount = rw.Count
		case billing.BillStatusOverdue:
			summary.OverdueCount = rw.Count
		case billing.BillStatusPaid:
			summary.PaidCount = rw.Count
		case billing.BillStatusWaveoff:
			summary.WaveoffCount = rw.Count
		case billing.BillStatusCancelled:
			// Cancelled bills never count towards billed totals
			continue
		}
		totalBilled = totalBilled.Add(rw.Total)
		totalCollected = totalCollected.Add(rw.Paid)
		if rw.Status == billing.BillStatusPending || rw.Status == billing.BillStatusOverdue {
			totalOutstanding = totalOutstanding.Add(rw.Total.Sub(rw.Paid))
		}
	}

	summary.TotalBilled = totalBilled.StringFixed(2)
	summary.TotalCollected = totalCollected.StringFixed(2)
	summary.TotalOutstanding = totalOutstanding.StringFixed(2)
	return summary, nil
}

// applyFilter applies bill-specific filter conditions
func (r *GormBillRepository) applyFilter(query *gorm.DB, filter billing.BillFilter) *gorm.DB {
	if filter.BusinessID != nil {
		query = query.Where("business_id = ?", *filter.BusinessID)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Month != nil {
		query = query.Where("month = ?", *filter.Month)
	}
	if filter.Year != nil {
		query = query.Where("year = ?", *filter.Year)
	}
	if filter.FromDate != nil {
		query = query.Where("bill_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("bill_date <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("bill_number ILIKE ? OR business_name ILIKE ?", searchPattern, searchPattern)
	}
	return query
}

func toDomainBills(billModels []models.BillModel) []billing.Bill {
	bills := make([]billing.Bill, len(billModels))
	for i, model := range billModels {
		bills[i] = *model.ToDomain()
	}
	return bills
}
