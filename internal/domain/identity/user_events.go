package identity

import (
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserCreatedEvent is raised when a new user account is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     UserRole  `json:"role"`
}

// EventType returns the event type name
func (e *UserCreatedEvent) EventType() string {
	return "UserCreated"
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(u *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("UserCreated", "User", u.ID, u.PlazaID),
		UserID:          u.ID,
		Username:        u.Username,
		Role:            u.Role,
	}
}
