package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/tenancy"
	"github.com/plazafl/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPlazaRepository implements tenancy.PlazaRepository using GORM
type GormPlazaRepository struct {
	db *gorm.DB
}

// NewGormPlazaRepository creates a new GormPlazaRepository
func NewGormPlazaRepository(db *gorm.DB) *GormPlazaRepository {
	return &GormPlazaRepository{db: db}
}

// FindByID finds a plaza by its ID
func (r *GormPlazaRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Plaza, error) {
	var model models.PlazaModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a plaza by its code
func (r *GormPlazaRepository) FindByCode(ctx context.Context, code string) (*tenancy.Plaza, error) {
	var model models.PlazaModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToLower(strings.TrimSpace(code))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists all plazas
func (r *GormPlazaRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenancy.Plaza, error) {
	var plazaModels []models.PlazaModel
	query := r.db.WithContext(ctx).Model(&models.PlazaModel{})
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ? OR city ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}
	query = applyListOptions(query, filter, PlazaSortFields)

	if err := query.Find(&plazaModels).Error; err != nil {
		return nil, err
	}

	plazas := make([]tenancy.Plaza, len(plazaModels))
	for i, model := range plazaModels {
		plazas[i] = *model.ToDomain()
	}
	return plazas, nil
}

// FindActive lists active plazas, the set the billing run iterates
func (r *GormPlazaRepository) FindActive(ctx context.Context) ([]tenancy.Plaza, error) {
	var plazaModels []models.PlazaModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", tenancy.PlazaStatusActive).
		Order("created_at ASC").
		Find(&plazaModels).Error; err != nil {
		return nil, err
	}

	plazas := make([]tenancy.Plaza, len(plazaModels))
	for i, model := range plazaModels {
		plazas[i] = *model.ToDomain()
	}
	return plazas, nil
}

// Save creates or updates a plaza
func (r *GormPlazaRepository) Save(ctx context.Context, plaza *tenancy.Plaza) error {
	model := models.PlazaModelFromDomain(plaza)
	return r.db.WithContext(ctx).Save(model).Error
}
