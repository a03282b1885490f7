package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/tenancy"
	"github.com/plazafl/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAdvanceRepository implements tenancy.AdvanceRepository using GORM
type GormAdvanceRepository struct {
	db *gorm.DB
}

// NewGormAdvanceRepository creates a new GormAdvanceRepository
func NewGormAdvanceRepository(db *gorm.DB) *GormAdvanceRepository {
	return &GormAdvanceRepository{db: db}
}

// FindByID finds an advance by its ID
func (r *GormAdvanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Advance, error) {
	var model models.AdvanceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForPlaza finds an advance by ID within a plaza
func (r *GormAdvanceRepository) FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*tenancy.Advance, error) {
	var model models.AdvanceModel
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

// FindActiveForPeriod finds an active advance covering the given business,
// type and period. Returns nil without error when no advance covers it.
func (r *GormAdvanceRepository) FindActiveForPeriod(ctx context.Context, plazaID, businessID uuid.UUID, billType tenancy.AdvanceBillType, month, year int) (*tenancy.Advance, error) {
	var model models.AdvanceModel
	err := r.db.WithContext(ctx).
		Where("plaza_id = ? AND business_id = ? AND bill_type = ? AND month = ? AND year = ? AND status = ?",
			plazaID, businessID, billType, month, year, tenancy.AdvanceStatusActive).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForPlaza finds advances in a plaza with filtering
func (r *GormAdvanceRepository) FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter tenancy.AdvanceFilter) ([]tenancy.Advance, error) {
	var advanceModels []models.AdvanceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AdvanceModel{}).Where("plaza_id = ?", plazaID), filter)
	query = applyListOptions(query, filter.Filter, AdvanceSortFields)

	if err := query.Find(&advanceModels).Error; err != nil {
		return nil, err
	}

	advances := make([]tenancy.Advance, len(advanceModels))
	for i, model := range advanceModels {
		advances[i] = *model.ToDomain()
	}
	return advances, nil
}

// Save creates or updates an advance
func (r *GormAdvanceRepository) Save(ctx context.Context, advance *tenancy.Advance) error {
	model := models.AdvanceModelFromDomain(advance)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForPlaza counts advances in a plaza with optional filters
func (r *GormAdvanceRepository) CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter tenancy.AdvanceFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AdvanceModel{}).Where("plaza_id = ?", plazaID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies advance-specific filter conditions
func (r *GormAdvanceRepository) applyFilter(query *gorm.DB, filter tenancy.AdvanceFilter) *gorm.DB {
	if filter.BusinessID != nil {
		query = query.Where("business_id = ?", *filter.BusinessID)
	}
	if filter.BillType != nil {
		query = query.Where("bill_type = ?", *filter.BillType)
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
	return query
}
