package identity

import (
	"context"
	"time"

	"github.com/plazafl/backend/internal/domain/identity"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService provides application-level user administration
type UserService struct {
	userRepo     identity.UserRepository
	businessRepo tenancy.BusinessRepository
	logger       *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo identity.UserRepository,
	businessRepo tenancy.BusinessRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		logger:       logger,
	}
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	PlazaID     uuid.UUID  `json:"plaza_id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `json:"role"`
	BusinessID  *uuid.UUID `json:"business_id,omitempty"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateUserRequest represents a request to create a staff login account
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role" binding:"required"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// CreateBusinessUserRequest represents a request to create a login account
// tied to a business
type CreateBusinessUserRequest struct {
	BusinessID  uuid.UUID `json:"business_id" binding:"required"`
	Username    string    `json:"username" binding:"required"`
	Password    string    `json:"password" binding:"required"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone"`
}

// UserListFilter defines filtering options for user list queries
type UserListFilter struct {
	Role     string `form:"role"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateUser creates an owner or admin account for plaza staff
func (s *UserService) CreateUser(ctx context.Context, plazaID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	role := identity.UserRole(req.Role)
	if role == identity.UserRoleBusiness {
		return nil, shared.NewDomainError("INVALID_ROLE", "Business accounts are created through the business endpoint")
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, plazaID, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already in use")
	}

	user, err := identity.NewActiveUser(plazaID, req.Username, req.Password, role)
	if err != nil {
		return nil, err
	}
	if err := applyProfile(user, req.DisplayName, req.Email, req.Phone); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	return toUserResponse(user), nil
}

// CreateBusinessUser creates a login account for a shop owner
func (s *UserService) CreateBusinessUser(ctx context.Context, plazaID uuid.UUID, req CreateBusinessUserRequest) (*UserResponse, error) {
	if _, err := s.businessRepo.FindByIDForPlaza(ctx, plazaID, req.BusinessID); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, plazaID, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already in use")
	}

	user, err := identity.NewBusinessUser(plazaID, req.BusinessID, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	if err := applyProfile(user, req.DisplayName, "", req.Phone); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("business user created",
		zap.String("username", user.Username),
		zap.String("business_id", req.BusinessID.String()))

	return toUserResponse(user), nil
}

// GetUser fetches one user
func (s *UserService) GetUser(ctx context.Context, plazaID, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ListUsers lists users with filtering and pagination
func (s *UserService) ListUsers(ctx context.Context, plazaID uuid.UUID, filter UserListFilter) (*shared.Paginated[UserResponse], error) {
	repoFilter := identity.UserFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.Search = filter.Search
	if filter.Role != "" {
		role := identity.UserRole(filter.Role)
		repoFilter.Role = &role
	}
	if filter.Status != "" {
		status := identity.UserStatus(filter.Status)
		repoFilter.Status = &status
	}

	results, err := s.userRepo.FindAllForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.CountForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]UserResponse, 0, len(results))
	for i := range results {
		items = append(items, *toUserResponse(&results[i]))
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// ActivateUser activates a user account
func (s *UserService) ActivateUser(ctx context.Context, plazaID, id uuid.UUID) (*UserResponse, error) {
	return s.transition(ctx, plazaID, id, func(u *identity.User) error { return u.Activate() })
}

// DeactivateUser deactivates a user account
func (s *UserService) DeactivateUser(ctx context.Context, plazaID, id uuid.UUID) (*UserResponse, error) {
	return s.transition(ctx, plazaID, id, func(u *identity.User) error { return u.Deactivate() })
}

// UnlockUser clears a lockout so the user can try logging in again
func (s *UserService) UnlockUser(ctx context.Context, plazaID, id uuid.UUID) (*UserResponse, error) {
	return s.transition(ctx, plazaID, id, func(u *identity.User) error { return u.Unlock() })
}

// ResetPasswordRequest carries the replacement password
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetPassword sets a new password without checking the old one and forces
// a change on next login
func (s *UserService) ResetPassword(ctx context.Context, plazaID, id uuid.UUID, req ResetPasswordRequest) error {
	user, err := s.userRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return err
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	user.ForcePasswordChange()

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password reset", zap.String("username", user.Username))
	return nil
}

func (s *UserService) transition(ctx context.Context, plazaID, id uuid.UUID, apply func(*identity.User) error) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	if err := apply(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func applyProfile(user *identity.User, displayName, email, phone string) error {
	if displayName != "" {
		if err := user.SetDisplayName(displayName); err != nil {
			return err
		}
	}
	if email != "" {
		if err := user.SetEmail(email); err != nil {
			return err
		}
	}
	if phone != "" {
		if err := user.SetPhone(phone); err != nil {
			return err
		}
	}
	return nil
}

func toUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		PlazaID:     u.PlazaID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        string(u.Role),
		BusinessID:  u.BusinessID,
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
