package tenancy

import (
	"context"
	"strings"
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PlazaStatus represents the status of a plaza
type PlazaStatus string

const (
	PlazaStatusActive    PlazaStatus = "ACTIVE"
	PlazaStatusSuspended PlazaStatus = "SUSPENDED"
)

// IsValid checks if the status is valid
func (s PlazaStatus) IsValid() bool {
	return s == PlazaStatusActive || s == PlazaStatusSuspended
}

// Plaza is one managed property. Every business, bill, payment and staff
// record is scoped to a plaza; the recurring billing run iterates active
// plazas independently.
type Plaza struct {
	shared.BaseAggregateRoot
	Name    string      `json:"name"`
	Code    string      `json:"code"` // Short unique slug, e.g. "gulberg-heights"
	Address string      `json:"address"`
	City    string      `json:"city"`
	Status  PlazaStatus `json:"status"`
}

// NewPlaza creates a new active plaza
func NewPlaza(name, code, address, city string) (*Plaza, error) {
	name = strings.TrimSpace(name)
	code = strings.ToLower(strings.TrimSpace(code))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Plaza name cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Plaza code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Plaza code cannot exceed 50 characters")
	}

	return &Plaza{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
		Address:           address,
		City:              city,
		Status:            PlazaStatusActive,
	}, nil
}

// UpdateDetails updates name and address details
func (p *Plaza) UpdateDetails(name, address, city string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Plaza name cannot be empty")
	}
	p.Name = name
	p.Address = address
	p.City = city
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Suspend pauses the plaza; suspended plazas are skipped by the billing run
func (p *Plaza) Suspend() error {
	if p.Status == PlazaStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Plaza is already suspended")
	}
	p.Status = PlazaStatusSuspended
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Activate resumes a suspended plaza
func (p *Plaza) Activate() error {
	if p.Status == PlazaStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Plaza is already active")
	}
	p.Status = PlazaStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IsActive returns true if the plaza is active
func (p *Plaza) IsActive() bool {
	return p.Status == PlazaStatusActive
}

// PlazaRepository defines the interface for plaza persistence
type PlazaRepository interface {
	// FindByID finds a plaza by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Plaza, error)

	// FindByCode finds a plaza by its code
	FindByCode(ctx context.Context, code string) (*Plaza, error)

	// FindAll lists all plazas
	FindAll(ctx context.Context, filter shared.Filter) ([]Plaza, error)

	// FindActive lists active plazas, the set the billing run iterates
	FindActive(ctx context.Context) ([]Plaza, error)

	// Save creates or updates a plaza
	Save(ctx context.Context, plaza *Plaza) error
}
