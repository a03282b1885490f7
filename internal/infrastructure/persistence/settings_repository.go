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

// GormSettingsRepository implements billing.SettingsRepository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// FindForPlaza finds the settings row for a plaza.
// Returns shared.ErrNotFound when the plaza has no settings yet.
func (r *GormSettingsRepository) FindForPlaza(ctx context.Context, plazaID uuid.UUID) (*billing.Settings, error) {
	var model models.SettingsModel
	if err := r.db.WithContext(ctx).
		Where("plaza_id = ?", plazaID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a plaza's settings
func (r *GormSettingsRepository) Save(ctx context.Context, settings *billing.Settings) error {
	model := models.SettingsModelFromDomain(settings)
	return r.db.WithContext(ctx).Save(model).Error
}
