package tenancy

import (
	"context"
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/shared/valueobject"
	"github.com/plazafl/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BusinessService provides application-level business operations
type BusinessService struct {
	businessRepo tenancy.BusinessRepository
}

// NewBusinessService creates a new BusinessService
func NewBusinessService(businessRepo tenancy.BusinessRepository) *BusinessService {
	return &BusinessService{businessRepo: businessRepo}
}

// BusinessResponse represents a business in API responses
type BusinessResponse struct {
	ID                    uuid.UUID       `json:"id"`
	PlazaID               uuid.UUID       `json:"plaza_id"`
	Name                  string          `json:"name"`
	OwnerName             string          `json:"owner_name"`
	Phone                 string          `json:"phone"`
	Email                 string          `json:"email,omitempty"`
	FloorNumber           string          `json:"floor_number"`
	ShopNumber            string          `json:"shop_number"`
	RentAmount            decimal.Decimal `json:"rent_amount"`
	MaintenanceAmount     decimal.Decimal `json:"maintenance_amount"`
	LeaseStart            time.Time       `json:"lease_start"`
	LeaseEnd              *time.Time      `json:"lease_end,omitempty"`
	Status                string          `json:"status"`
	RentManagementEnabled bool            `json:"rent_management_enabled"`
	TerminatedAt          *time.Time      `json:"terminated_at,omitempty"`
	TerminationReason     string          `json:"termination_reason,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	Version               int             `json:"version"`
}

// CreateBusinessRequest represents a request to register a business
type CreateBusinessRequest struct {
	Name              string          `json:"name" binding:"required"`
	OwnerName         string          `json:"owner_name" binding:"required"`
	Phone             string          `json:"phone" binding:"required"`
	Email             string          `json:"email"`
	FloorNumber       string          `json:"floor_number" binding:"required"`
	ShopNumber        string          `json:"shop_number" binding:"required"`
	RentAmount        decimal.Decimal `json:"rent_amount" binding:"required"`
	MaintenanceAmount decimal.Decimal `json:"maintenance_amount"`
	LeaseStart        time.Time       `json:"lease_start" binding:"required"`
	LeaseEnd          *time.Time      `json:"lease_end"`
	CreatedBy         *uuid.UUID      `json:"-"` // Set from JWT context
}

// UpdateBusinessRequest represents a request to update business details
type UpdateBusinessRequest struct {
	OwnerName         string          `json:"owner_name" binding:"required"`
	Phone             string          `json:"phone" binding:"required"`
	Email             string          `json:"email"`
	FloorNumber       string          `json:"floor_number" binding:"required"`
	ShopNumber        string          `json:"shop_number" binding:"required"`
	RentAmount        decimal.Decimal `json:"rent_amount" binding:"required"`
	MaintenanceAmount decimal.Decimal `json:"maintenance_amount"`
}

// BusinessListFilter defines filtering options for business list queries
type BusinessListFilter struct {
	Search      string `form:"search"`
	Status      string `form:"status"`
	FloorNumber string `form:"floor_number"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

// CreateBusiness registers a new business in a plaza
func (s *BusinessService) CreateBusiness(ctx context.Context, plazaID uuid.UUID, req CreateBusinessRequest) (*BusinessResponse, error) {
	existing, err := s.businessRepo.FindByShopNumber(ctx, plazaID, req.ShopNumber)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("SHOP_OCCUPIED", "Shop number already has a registered business")
	}

	business, err := tenancy.NewBusiness(
		plazaID,
		req.Name,
		req.OwnerName,
		req.Phone,
		req.ShopNumber,
		req.FloorNumber,
		valueobject.NewMoneyPKR(req.RentAmount),
		valueobject.NewMoneyPKR(req.MaintenanceAmount),
		req.LeaseStart,
	)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		business.UpdateContact(req.OwnerName, req.Phone, req.Email)
	}
	if req.LeaseEnd != nil {
		business.LeaseEnd = req.LeaseEnd
	}
	if req.CreatedBy != nil {
		business.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}

	return toBusinessResponse(business), nil
}

// GetBusiness fetches one business
func (s *BusinessService) GetBusiness(ctx context.Context, plazaID, id uuid.UUID) (*BusinessResponse, error) {
	business, err := s.businessRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	return toBusinessResponse(business), nil
}

// ListBusinesses lists businesses with filtering and pagination
func (s *BusinessService) ListBusinesses(ctx context.Context, plazaID uuid.UUID, filter BusinessListFilter) (*shared.Paginated[BusinessResponse], error) {
	repoFilter := tenancy.BusinessFilter{Filter: shared.DefaultFilter()}
	repoFilter.Search = filter.Search
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		status := tenancy.BusinessStatus(filter.Status)
		repoFilter.Status = &status
	}
	if filter.FloorNumber != "" {
		repoFilter.FloorNumber = &filter.FloorNumber
	}

	businesses, err := s.businessRepo.FindAllForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.businessRepo.CountForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]BusinessResponse, 0, len(businesses))
	for i := range businesses {
		items = append(items, *toBusinessResponse(&businesses[i]))
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// UpdateBusiness updates business details and charges
func (s *BusinessService) UpdateBusiness(ctx context.Context, plazaID, id uuid.UUID, req UpdateBusinessRequest) (*BusinessResponse, error) {
	business, err := s.businessRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}

	business.UpdateContact(req.OwnerName, req.Phone, req.Email)
	if err := business.UpdateLocation(req.FloorNumber, req.ShopNumber); err != nil {
		return nil, err
	}
	if err := business.UpdateCharges(valueobject.NewMoneyPKR(req.RentAmount), valueobject.NewMoneyPKR(req.MaintenanceAmount)); err != nil {
		return nil, err
	}

	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}

	return toBusinessResponse(business), nil
}

// SetRentManagement toggles recurring rent billing for a business
func (s *BusinessService) SetRentManagement(ctx context.Context, plazaID, id uuid.UUID, enabled bool) (*BusinessResponse, error) {
	business, err := s.businessRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}

	business.SetRentManagement(enabled)
	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}

	return toBusinessResponse(business), nil
}

// ActivateBusiness reactivates an inactive business
func (s *BusinessService) ActivateBusiness(ctx context.Context, plazaID, id uuid.UUID) (*BusinessResponse, error) {
	business, err := s.businessRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	if err := business.Activate(); err != nil {
		return nil, err
	}
	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}
	return toBusinessResponse(business), nil
}

// DeactivateBusiness suspends a business without ending the lease
func (s *BusinessService) DeactivateBusiness(ctx context.Context, plazaID, id uuid.UUID) (*BusinessResponse, error) {
	business, err := s.businessRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	if err := business.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}
	return toBusinessResponse(business), nil
}

// TerminateBusinessRequest represents a request to terminate a lease
type TerminateBusinessRequest struct {
	Reason   string     `json:"reason" binding:"required"`
	LeaseEnd *time.Time `json:"lease_end"`
}

// TerminateBusiness ends the lease. Terminal.
func (s *BusinessService) TerminateBusiness(ctx context.Context, plazaID, id uuid.UUID, req TerminateBusinessRequest) (*BusinessResponse, error) {
	business, err := s.businessRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	leaseEnd := time.Now()
	if req.LeaseEnd != nil {
		leaseEnd = *req.LeaseEnd
	}
	if err := business.Terminate(req.Reason, leaseEnd); err != nil {
		return nil, err
	}
	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}
	return toBusinessResponse(business), nil
}

func toBusinessResponse(b *tenancy.Business) *BusinessResponse {
	return &BusinessResponse{
		ID:                    b.ID,
		PlazaID:               b.PlazaID,
		Name:                  b.Name,
		OwnerName:             b.OwnerName,
		Phone:                 b.Phone,
		Email:                 b.Email,
		FloorNumber:           b.FloorNumber,
		ShopNumber:            b.ShopNumber,
		RentAmount:            b.RentAmount,
		MaintenanceAmount:     b.MaintenanceAmount,
		LeaseStart:            b.LeaseStart,
		LeaseEnd:              b.LeaseEnd,
		Status:                string(b.Status),
		RentManagementEnabled: b.RentManagementEnabled,
		TerminatedAt:          b.TerminatedAt,
		TerminationReason:     b.TerminationReason,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
		Version:               b.GetVersion(),
	}
}
