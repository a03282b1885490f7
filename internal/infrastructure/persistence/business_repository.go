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

// GormBusinessRepository implements tenancy.BusinessRepository using GORM
type GormBusinessRepository struct {
	db *gorm.DB
}

// NewGormBusinessRepository creates a new GormBusinessRepository
func NewGormBusinessRepository(db *gorm.DB) *GormBusinessRepository {
	return &GormBusinessRepository{db: db}
}

// FindByID finds a business by its ID
func (r *GormBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Business, error) {
	var model models.BusinessModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForPlaza finds a business by ID within a plaza
func (r *GormBusinessRepository) FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*tenancy.Business, error) {
	var model models.BusinessModel
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

// FindByShopNumber finds a business by shop number within a plaza
func (r *GormBusinessRepository) FindByShopNumber(ctx context.Context, plazaID uuid.UUID, shopNumber string) (*tenancy.Business, error) {
	var model models.BusinessModel
	if err := r.db.WithContext(ctx).
		Where("plaza_id = ? AND shop_number = ?", plazaID, shopNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForPlaza finds all businesses in a plaza with filtering
func (r *GormBusinessRepository) FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter tenancy.BusinessFilter) ([]tenancy.Business, error) {
	var businessModels []models.BusinessModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BusinessModel{}).Where("plaza_id = ?", plazaID), filter)
	query = applyListOptions(query, filter.Filter, BusinessSortFields)

	if err := query.Find(&businessModels).Error; err != nil {
		return nil, err
	}

	businesses := make([]tenancy.Business, len(businessModels))
	for i, model := range businessModels {
		businesses[i] = *model.ToDomain()
	}
	return businesses, nil
}

// FindBillable finds active businesses with rent management enabled
func (r *GormBusinessRepository) FindBillable(ctx context.Context, plazaID uuid.UUID) ([]tenancy.Business, error) {
	var businessModels []models.BusinessModel
	if err := r.db.WithContext(ctx).
		Where("plaza_id = ? AND status = ? AND rent_management_enabled = ?",
			plazaID, tenancy.BusinessStatusActive, true).
		Order("shop_number ASC").
		Find(&businessModels).Error; err != nil {
		return nil, err
	}

	businesses := make([]tenancy.Business, len(businessModels))
	for i, model := range businessModels {
		businesses[i] = *model.ToDomain()
	}
	return businesses, nil
}

// Save creates or updates a business
func (r *GormBusinessRepository) Save(ctx context.Context, business *tenancy.Business) error {
	model := models.BusinessModelFromDomain(business)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForPlaza counts businesses in a plaza with optional filters
func (r *GormBusinessRepository) CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter tenancy.BusinessFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BusinessModel{}).Where("plaza_id = ?", plazaID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies business-specific filter conditions
func (r *GormBusinessRepository) applyFilter(query *gorm.DB, filter tenancy.BusinessFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FloorNumber != nil {
		query = query.Where("floor_number = ?", *filter.FloorNumber)
	}
	if filter.RentManagedOnly {
		query = query.Where("rent_management_enabled = ?", true)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR owner_name ILIKE ? OR shop_number ILIKE ? OR phone ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}
	return query
}
