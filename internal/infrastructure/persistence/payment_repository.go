package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/payments"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements payments.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payments.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForPlaza finds a payment by ID within a plaza
func (r *GormPaymentRepository) FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*payments.Payment, error) {
	var model models.PaymentModel
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

// FindAllForPlaza finds payments in a plaza with filtering
func (r *GormPaymentRepository) FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter payments.PaymentFilter) ([]payments.Payment, error) {
	var paymentModels []models.PaymentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}).Where("plaza_id = ?", plazaID), filter)
	query = applyListOptions(query, filter.Filter, PaymentSortFields)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	return toDomainPayments(paymentModels), nil
}

// FindByBill finds all payments applied to a bill, newest first
func (r *GormPaymentRepository) FindByBill(ctx context.Context, plazaID, billID uuid.UUID) ([]payments.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("plaza_id = ? AND bill_id = ?", plazaID, billID).
		Order("payment_date DESC, created_at DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// Save creates a payment. Payments are never updated.
func (r *GormPaymentRepository) Save(ctx context.Context, payment *payments.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Create(model).Error
}

// CountForPlaza counts payments in a plaza with optional filters
func (r *GormPaymentRepository) CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter payments.PaymentFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}).Where("plaza_id = ?", plazaID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumForPlaza totals payment amounts in a plaza within a date range
func (r *GormPaymentRepository) SumForPlaza(ctx context.Context, plazaID uuid.UUID, from, to time.Time) (string, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("plaza_id = ? AND payment_date >= ? AND payment_date < ?", plazaID, from, to).
		Scan(&total).Error
	if err != nil {
		return "", err
	}
	return total.StringFixed(2), nil
}

// applyFilter applies payment-specific filter conditions
func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter payments.PaymentFilter) *gorm.DB {
	if filter.BusinessID != nil {
		query = query.Where("business_id = ?", *filter.BusinessID)
	}
	if filter.BillID != nil {
		query = query.Where("bill_id = ?", *filter.BillID)
	}
	if filter.Method != nil {
		query = query.Where("method = ?", *filter.Method)
	}
	if filter.FromDate != nil {
		query = query.Where("payment_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("payment_date <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("reference ILIKE ?", searchPattern)
	}
	return query
}

func toDomainPayments(paymentModels []models.PaymentModel) []payments.Payment {
	result := make([]payments.Payment, len(paymentModels))
	for i, model := range paymentModels {
		result[i] = *model.ToDomain()
	}
	return result
}
