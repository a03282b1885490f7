package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version      int           `gorm:"not null;default:1"`
	domainEvents []DomainEvent `gorm:"-"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent adds a domain event to be published
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		Version:      1,
		domainEvents: make([]DomainEvent, 0),
	}
}

// PlazaAggregateRoot extends BaseAggregateRoot with plaza (tenant) scoping.
// Every billing, payment and payroll record belongs to exactly one plaza.
type PlazaAggregateRoot struct {
	BaseAggregateRoot
	PlazaID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"` // Admin user who created this record
}

// NewPlazaAggregateRoot creates a new plaza-scoped aggregate root
func NewPlazaAggregateRoot(plazaID uuid.UUID) PlazaAggregateRoot {
	return PlazaAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		PlazaID:           plazaID,
	}
}

// NewPlazaAggregateRootWithCreator creates a new plaza-scoped aggregate root with creator info
func NewPlazaAggregateRootWithCreator(plazaID, createdBy uuid.UUID) PlazaAggregateRoot {
	return PlazaAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		PlazaID:           plazaID,
		CreatedBy:         &createdBy,
	}
}

// SetCreatedBy sets the creator user ID
func (t *PlazaAggregateRoot) SetCreatedBy(userID uuid.UUID) {
	t.CreatedBy = &userID
}

// GetCreatedBy returns the creator user ID
func (t *PlazaAggregateRoot) GetCreatedBy() *uuid.UUID {
	return t.CreatedBy
}
