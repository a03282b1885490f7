package identity

import (
	"context"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserFilter defines filtering options for user queries
type UserFilter struct {
	shared.Filter
	Role   *UserRole
	Status *UserStatus
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByIDForPlaza finds a user by ID within a plaza
	FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username within a plaza
	FindByUsername(ctx context.Context, plazaID uuid.UUID, username string) (*User, error)

	// FindByBusiness finds the login accounts tied to a business
	FindByBusiness(ctx context.Context, plazaID, businessID uuid.UUID) ([]User, error)

	// FindAllForPlaza finds users in a plaza with filtering
	FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter UserFilter) ([]User, error)

	// ExistsByUsername reports whether a username is taken within a plaza
	ExistsByUsername(ctx context.Context, plazaID uuid.UUID, username string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// CountForPlaza counts users in a plaza with optional filters
	CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter UserFilter) (int64, error)
}
