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

// GormInstalmentRepository implements billing.InstalmentRepository using GORM
type GormInstalmentRepository struct {
	db *gorm.DB
}

// NewGormInstalmentRepository creates a new GormInstalmentRepository
func NewGormInstalmentRepository(db *gorm.DB) *GormInstalmentRepository {
	return &GormInstalmentRepository{db: db}
}

// FindByID finds an instalment by its ID
func (r *GormInstalmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.MaintenanceInstalment, error) {
	var model models.MaintenanceInstalmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForPlaza finds an instalment by ID within a plaza
func (r *GormInstalmentRepository) FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*billing.MaintenanceInstalment, error) {
	var model models.MaintenanceInstalmentModel
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

// FindByBill finds the instalment plan for a bill, ordered by sequence
func (r *GormInstalmentRepository) FindByBill(ctx context.Context, plazaID, billID uuid.UUID) ([]billing.MaintenanceInstalment, error) {
	var instalmentModels []models.MaintenanceInstalmentModel
	if err := r.db.WithContext(ctx).
		Where("plaza_id = ? AND bill_id = ?", plazaID, billID).
		Order("sequence_number ASC").
		Find(&instalmentModels).Error; err != nil {
		return nil, err
	}

	instalments := make([]billing.MaintenanceInstalment, len(instalmentModels))
	for i, model := range instalmentModels {
		instalments[i] = *model.ToDomain()
	}
	return instalments, nil
}

// Save creates or updates an instalment
func (r *GormInstalmentRepository) Save(ctx context.Context, instalment *billing.MaintenanceInstalment) error {
	model := models.MaintenanceInstalmentModelFromDomain(instalment)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveAll persists a whole plan in one transaction
func (r *GormInstalmentRepository) SaveAll(ctx context.Context, instalments []*billing.MaintenanceInstalment) error {
	if len(instalments) == 0 {
		return nil
	}
	instalmentModels := make([]*models.MaintenanceInstalmentModel, len(instalments))
	for i, instalment := range instalments {
		instalmentModels[i] = models.MaintenanceInstalmentModelFromDomain(instalment)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(instalmentModels).Error
	})
}
