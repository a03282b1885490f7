package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/billing"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMeterReadingRepository implements billing.MeterReadingRepository using GORM
type GormMeterReadingRepository struct {
	db *gorm.DB
}

// NewGormMeterReadingRepository creates a new GormMeterReadingRepository
func NewGormMeterReadingRepository(db *gorm.DB) *GormMeterReadingRepository {
	return &GormMeterReadingRepository{db: db}
}

// FindByID finds a reading by its ID
func (r *GormMeterReadingRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.MeterReading, error) {
	var model models.MeterReadingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForPlaza finds a reading by ID within a plaza
func (r *GormMeterReadingRepository) FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*billing.MeterReading, error) {
	var model models.MeterReadingModel
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

// FindLatest finds the most recent reading (by reading date) for a business
// and meter type. Returns nil without error when none exists; the first
// reading of a meter has no predecessor.
func (r *GormMeterReadingRepository) FindLatest(ctx context.Context, plazaID, businessID uuid.UUID, meterType billing.MeterType) (*billing.MeterReading, error) {
	var model models.MeterReadingModel
	err := r.db.WithContext(ctx).
		Where("plaza_id = ? AND business_id = ? AND meter_type = ?", plazaID, businessID, meterType).
		Order("reading_date DESC, created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForPlaza finds readings in a plaza with filtering
func (r *GormMeterReadingRepository) FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter billing.MeterReadingFilter) ([]billing.MeterReading, error) {
	var readingModels []models.MeterReadingModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.MeterReadingModel{}).Where("plaza_id = ?", plazaID), filter)
	query = applyListOptions(query, filter.Filter, MeterReadingSortFields)

	if err := query.Find(&readingModels).Error; err != nil {
		return nil, err
	}

	readings := make([]billing.MeterReading, len(readingModels))
	for i, model := range readingModels {
		readings[i] = *model.ToDomain()
	}
	return readings, nil
}

// Save creates or updates a reading
func (r *GormMeterReadingRepository) Save(ctx context.Context, reading *billing.MeterReading) error {
	model := models.MeterReadingModelFromDomain(reading)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForPlaza counts readings in a plaza with optional filters
func (r *GormMeterReadingRepository) CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter billing.MeterReadingFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.MeterReadingModel{}).Where("plaza_id = ?", plazaID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies meter-reading-specific filter conditions
func (r *GormMeterReadingRepository) applyFilter(query *gorm.DB, filter billing.MeterReadingFilter) *gorm.DB {
	if filter.BusinessID != nil {
		query = query.Where("business_id = ?", *filter.BusinessID)
	}
	if filter.MeterType != nil {
		query = query.Where("meter_type = ?", *filter.MeterType)
	}
	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filter.PaymentStatus)
	}
	if filter.FromDate != nil {
		query = query.Where("reading_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("reading_date <= ?", *filter.ToDate)
	}
	return query
}
