package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/payroll"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStaffRepository implements payroll.StaffRepository using GORM
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GormStaffRepository
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// FindByID finds a staff member by ID
func (r *GormStaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.Staff, error) {
	var model models.StaffModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForPlaza finds a staff member by ID within a plaza
func (r *GormStaffRepository) FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*payroll.Staff, error) {
	var model models.StaffModel
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

// FindAllForPlaza finds staff in a plaza with filtering
func (r *GormStaffRepository) FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter payroll.StaffFilter) ([]payroll.Staff, error) {
	var staffModels []models.StaffModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StaffModel{}).Where("plaza_id = ?", plazaID), filter)
	query = applyListOptions(query, filter.Filter, StaffSortFields)

	if err := query.Find(&staffModels).Error; err != nil {
		return nil, err
	}

	return toDomainStaff(staffModels), nil
}

// FindPayable finds active staff due a salary record each month
func (r *GormStaffRepository) FindPayable(ctx context.Context, plazaID uuid.UUID) ([]payroll.Staff, error) {
	var staffModels []models.StaffModel
	if err := r.db.WithContext(ctx).
		Where("plaza_id = ? AND status = ?", plazaID, payroll.StaffStatusActive).
		Order("name ASC").
		Find(&staffModels).Error; err != nil {
		return nil, err
	}
	return toDomainStaff(staffModels), nil
}

// Save creates or updates a staff member
func (r *GormStaffRepository) Save(ctx context.Context, staff *payroll.Staff) error {
	model := models.StaffModelFromDomain(staff)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForPlaza counts staff in a plaza with optional filters
func (r *GormStaffRepository) CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter payroll.StaffFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StaffModel{}).Where("plaza_id = ?", plazaID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies staff-specific filter conditions
func (r *GormStaffRepository) applyFilter(query *gorm.DB, filter payroll.StaffFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Designation != nil {
		query = query.Where("designation = ?", *filter.Designation)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR designation ILIKE ? OR phone ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}
	return query
}

func toDomainStaff(staffModels []models.StaffModel) []payroll.Staff {
	result := make([]payroll.Staff, len(staffModels))
	for i, model := range staffModels {
		result[i] = *model.ToDomain()
	}
	return result
}
