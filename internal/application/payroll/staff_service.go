package payroll

import (
	"context"
	"time"

	"github.com/plazafl/backend/internal/domain/payroll"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StaffService provides application-level staff management operations
type StaffService struct {
	staffRepo payroll.StaffRepository
	logger    *zap.Logger
}

// NewStaffService creates a new StaffService
func NewStaffService(staffRepo payroll.StaffRepository, logger *zap.Logger) *StaffService {
	return &StaffService{
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// StaffResponse represents a staff member in API responses
type StaffResponse struct {
	ID            uuid.UUID       `json:"id"`
	PlazaID       uuid.UUID       `json:"plaza_id"`
	Name          string          `json:"name"`
	Designation   string          `json:"designation"`
	Phone         string          `json:"phone,omitempty"`
	CNIC          string          `json:"cnic,omitempty"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	JoinedAt      time.Time       `json:"joined_at"`
	Status        string          `json:"status"`
	LeftAt        *time.Time      `json:"left_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateStaffRequest represents a request to add a staff member
type CreateStaffRequest struct {
	Name          string          `json:"name" binding:"required"`
	Designation   string          `json:"designation" binding:"required"`
	Phone         string          `json:"phone"`
	CNIC          string          `json:"cnic"`
	MonthlySalary decimal.Decimal `json:"monthly_salary" binding:"required"`
	JoinedAt      *time.Time      `json:"joined_at"`
}

// UpdateStaffRequest represents a request to update staff details
type UpdateStaffRequest struct {
	Name          string           `json:"name" binding:"required"`
	Designation   string           `json:"designation" binding:"required"`
	Phone         string           `json:"phone"`
	MonthlySalary *decimal.Decimal `json:"monthly_salary"`
}

// StaffListFilter defines filtering options for staff list queries
type StaffListFilter struct {
	Status      string `form:"status"`
	Designation string `form:"designation"`
	Search      string `form:"search"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

// CreateStaff adds a staff member to the plaza payroll
func (s *StaffService) CreateStaff(ctx context.Context, plazaID uuid.UUID, req CreateStaffRequest) (*StaffResponse, error) {
	joinedAt := time.Now()
	if req.JoinedAt != nil {
		joinedAt = *req.JoinedAt
	}

	staff, err := payroll.NewStaff(plazaID, req.Name, req.Designation, req.Phone, req.CNIC, req.MonthlySalary, joinedAt)
	if err != nil {
		return nil, err
	}

	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, err
	}

	s.logger.Info("staff member added",
		zap.String("name", staff.Name),
		zap.String("designation", staff.Designation))

	return toStaffResponse(staff), nil
}

// GetStaff fetches one staff member
func (s *StaffService) GetStaff(ctx context.Context, plazaID, id uuid.UUID) (*StaffResponse, error) {
	staff, err := s.staffRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	return toStaffResponse(staff), nil
}

// ListStaff lists staff with filtering and pagination
func (s *StaffService) ListStaff(ctx context.Context, plazaID uuid.UUID, filter StaffListFilter) (*shared.Paginated[StaffResponse], error) {
	repoFilter := payroll.StaffFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.Search = filter.Search
	if filter.Status != "" {
		status := payroll.StaffStatus(filter.Status)
		repoFilter.Status = &status
	}
	if filter.Designation != "" {
		repoFilter.Designation = &filter.Designation
	}

	results, err := s.staffRepo.FindAllForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.staffRepo.CountForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]StaffResponse, 0, len(results))
	for i := range results {
		items = append(items, *toStaffResponse(&results[i]))
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// UpdateStaff updates details and, when given, the monthly salary
func (s *StaffService) UpdateStaff(ctx context.Context, plazaID, id uuid.UUID, req UpdateStaffRequest) (*StaffResponse, error) {
	staff, err := s.staffRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}

	if err := staff.UpdateDetails(req.Name, req.Designation, req.Phone); err != nil {
		return nil, err
	}
	if req.MonthlySalary != nil {
		if err := staff.UpdateSalary(*req.MonthlySalary); err != nil {
			return nil, err
		}
	}

	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, err
	}
	return toStaffResponse(staff), nil
}

// ActivateStaff resumes an inactive staff member
func (s *StaffService) ActivateStaff(ctx context.Context, plazaID, id uuid.UUID) (*StaffResponse, error) {
	return s.transition(ctx, plazaID, id, func(staff *payroll.Staff) error {
		return staff.Activate()
	})
}

// DeactivateStaff suspends a staff member without ending employment
func (s *StaffService) DeactivateStaff(ctx context.Context, plazaID, id uuid.UUID) (*StaffResponse, error) {
	return s.transition(ctx, plazaID, id, func(staff *payroll.Staff) error {
		return staff.Deactivate()
	})
}

// MarkStaffLeftRequest carries the optional departure date
type MarkStaffLeftRequest struct {
	LeftAt *time.Time `json:"left_at"`
}

// MarkStaffLeft ends employment for a staff member
func (s *StaffService) MarkStaffLeft(ctx context.Context, plazaID, id uuid.UUID, req MarkStaffLeftRequest) (*StaffResponse, error) {
	leftAt := time.Now()
	if req.LeftAt != nil {
		leftAt = *req.LeftAt
	}
	return s.transition(ctx, plazaID, id, func(staff *payroll.Staff) error {
		return staff.MarkLeft(leftAt)
	})
}

func (s *StaffService) transition(ctx context.Context, plazaID, id uuid.UUID, apply func(*payroll.Staff) error) (*StaffResponse, error) {
	staff, err := s.staffRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	if err := apply(staff); err != nil {
		return nil, err
	}
	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, err
	}
	return toStaffResponse(staff), nil
}

func toStaffResponse(staff *payroll.Staff) *StaffResponse {
	return &StaffResponse{
		ID:            staff.ID,
		PlazaID:       staff.PlazaID,
		Name:          staff.Name,
		Designation:   staff.Designation,
		Phone:         staff.Phone,
		CNIC:          staff.CNIC,
		MonthlySalary: staff.MonthlySalary,
		JoinedAt:      staff.JoinedAt,
		Status:        string(staff.Status),
		LeftAt:        staff.LeftAt,
		CreatedAt:     staff.CreatedAt,
		UpdatedAt:     staff.UpdatedAt,
	}
}
