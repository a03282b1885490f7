package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel provides common persistence fields for aggregate roots.
// It extends BaseModel with version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// BaseAggregateRoot rebuilds a domain BaseAggregateRoot from persistence fields
func (m *AggregateModel) BaseAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: m.ToDomain(),
		Version:    m.Version,
	}
}

// PlazaAggregateModel provides common persistence fields for plaza-scoped
// aggregate roots. It extends AggregateModel with the plaza ID and creator.
type PlazaAggregateModel struct {
	AggregateModel
	PlazaID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// FromDomainPlazaAggregateRoot populates PlazaAggregateModel from domain PlazaAggregateRoot
func (m *PlazaAggregateModel) FromDomainPlazaAggregateRoot(p shared.PlazaAggregateRoot) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.PlazaID = p.PlazaID
	m.CreatedBy = p.CreatedBy
}

// PlazaAggregateRoot rebuilds a domain PlazaAggregateRoot from persistence fields
func (m *PlazaAggregateModel) PlazaAggregateRoot() shared.PlazaAggregateRoot {
	return shared.PlazaAggregateRoot{
		BaseAggregateRoot: m.AggregateModel.BaseAggregateRoot(),
		PlazaID:           m.PlazaID,
		CreatedBy:         m.CreatedBy,
	}
}
