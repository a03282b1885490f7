package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/payments"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPendingPaymentRepository implements payments.PendingPaymentRepository using GORM
type GormPendingPaymentRepository struct {
	db *gorm.DB
}

// NewGormPendingPaymentRepository creates a new GormPendingPaymentRepository
func NewGormPendingPaymentRepository(db *gorm.DB) *GormPendingPaymentRepository {
	return &GormPendingPaymentRepository{db: db}
}

// FindByID finds a pending payment by ID
func (r *GormPendingPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payments.PendingPayment, error) {
	var model models.PendingPaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForPlaza finds a pending payment by ID within a plaza
func (r *GormPendingPaymentRepository) FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*payments.PendingPayment, error) {
	var model models.PendingPaymentModel
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

// FindAllForPlaza finds pending payments in a plaza with filtering
func (r *GormPendingPaymentRepository) FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter payments.PendingPaymentFilter) ([]payments.PendingPayment, error) {
	var pendingModels []models.PendingPaymentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PendingPaymentModel{}).Where("plaza_id = ?", plazaID), filter)
	query = applyListOptions(query, filter.Filter, PendingPaymentSortFields)

	if err := query.Find(&pendingModels).Error; err != nil {
		return nil, err
	}

	result := make([]payments.PendingPayment, len(pendingModels))
	for i, model := range pendingModels {
		result[i] = *model.ToDomain()
	}
	return result, nil
}

// CountForPlaza counts claims in a plaza with optional filters
func (r *GormPendingPaymentRepository) CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter payments.PendingPaymentFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PendingPaymentModel{}).Where("plaza_id = ?", plazaID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountPendingForPlaza counts claims still awaiting review
func (r *GormPendingPaymentRepository) CountPendingForPlaza(ctx context.Context, plazaID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PendingPaymentModel{}).
		Where("plaza_id = ? AND status = ?", plazaID, payments.PendingPaymentStatusPending).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a pending payment
func (r *GormPendingPaymentRepository) Save(ctx context.Context, pendingPayment *payments.PendingPayment) error {
	model := models.PendingPaymentModelFromDomain(pendingPayment)
	return r.db.WithContext(ctx).Save(model).Error
}

// applyFilter applies pending-payment-specific filter conditions
func (r *GormPendingPaymentRepository) applyFilter(query *gorm.DB, filter payments.PendingPaymentFilter) *gorm.DB {
	if filter.BusinessID != nil {
		query = query.Where("business_id = ?", *filter.BusinessID)
	}
	if filter.BillID != nil {
		query = query.Where("bill_id = ?", *filter.BillID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("reference ILIKE ?", searchPattern)
	}
	return query
}
