package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/identity"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForPlaza finds a user by ID within a plaza
func (r *GormUserRepository) FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
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

// FindByUsername finds a user by username within a plaza
func (r *GormUserRepository) FindByUsername(ctx context.Context, plazaID uuid.UUID, username string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("plaza_id = ? AND username = ?", plazaID, normalizeUsername(username)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBusiness finds the login accounts tied to a business
func (r *GormUserRepository) FindByBusiness(ctx context.Context, plazaID, businessID uuid.UUID) ([]identity.User, error) {
	var userModels []models.UserModel
	if err := r.db.WithContext(ctx).
		Where("plaza_id = ? AND business_id = ?", plazaID, businessID).
		Order("created_at ASC").
		Find(&userModels).Error; err != nil {
		return nil, err
	}
	return toDomainUsers(userModels), nil
}

// FindAllForPlaza finds users in a plaza with filtering
func (r *GormUserRepository) FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter identity.UserFilter) ([]identity.User, error) {
	var userModels []models.UserModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.UserModel{}).Where("plaza_id = ?", plazaID), filter)
	query = applyListOptions(query, filter.Filter, UserSortFields)

	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}

	return toDomainUsers(userModels), nil
}

// ExistsByUsername reports whether a username is taken within a plaza
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, plazaID uuid.UUID, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("plaza_id = ? AND username = ?", plazaID, normalizeUsername(username)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForPlaza counts users in a plaza with optional filters
func (r *GormUserRepository) CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter identity.UserFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.UserModel{}).Where("plaza_id = ?", plazaID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies user-specific filter conditions
func (r *GormUserRepository) applyFilter(query *gorm.DB, filter identity.UserFilter) *gorm.DB {
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("username ILIKE ? OR display_name ILIKE ? OR email ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}
	return query
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func toDomainUsers(userModels []models.UserModel) []identity.User {
	result := make([]identity.User, len(userModels))
	for i, model := range userModels {
		result[i] = *model.ToDomain()
	}
	return result
}
