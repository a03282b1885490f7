package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// PlazaModel is the persistence model for the Plaza aggregate root.
type PlazaModel struct {
	AggregateModel
	Name    string             `gorm:"type:varchar(200);not null"`
	Code    string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	Address string             `gorm:"type:varchar(500)"`
	City    string             `gorm:"type:varchar(100)"`
	Status  tenancy.PlazaStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
}

// TableName returns the table name for GORM
func (PlazaModel) TableName() string {
	return "plazas"
}

// ToDomain converts the persistence model to a domain Plaza entity.
func (m *PlazaModel) ToDomain() *tenancy.Plaza {
	return &tenancy.Plaza{
		BaseAggregateRoot: m.AggregateModel.BaseAggregateRoot(),
		Name:              m.Name,
		Code:              m.Code,
		Address:           m.Address,
		City:              m.City,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Plaza entity.
func (m *PlazaModel) FromDomain(p *tenancy.Plaza) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Code = p.Code
	m.Address = p.Address
	m.City = p.City
	m.Status = p.Status
}

// PlazaModelFromDomain creates a new persistence model from a domain Plaza.
func PlazaModelFromDomain(p *tenancy.Plaza) *PlazaModel {
	m := &PlazaModel{}
	m.FromDomain(p)
	return m
}

// BusinessModel is the persistence model for the Business aggregate root.
type BusinessModel struct {
	PlazaAggregateModel
	Name                  string                 `gorm:"type:varchar(200);not null;index"`
	OwnerName             string                 `gorm:"type:varchar(200)"`
	Phone                 string                 `gorm:"type:varchar(30)"`
	Email                 string                 `gorm:"type:varchar(200)"`
	FloorNumber           string                 `gorm:"type:varchar(20);index"`
	ShopNumber            string                 `gorm:"type:varchar(30);not null;index"`
	RentAmount            decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	MaintenanceAmount     decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	LeaseStart            time.Time              `gorm:"not null"`
	LeaseEnd              *time.Time
	Status                tenancy.BusinessStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	RentManagementEnabled bool                   `gorm:"not null;default:true;index"`
	TerminatedAt          *time.Time
	TerminationReason     string                 `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (BusinessModel) TableName() string {
	return "businesses"
}

// ToDomain converts the persistence model to a domain Business entity.
func (m *BusinessModel) ToDomain() *tenancy.Business {
	return &tenancy.Business{
		PlazaAggregateRoot:    m.PlazaAggregateRoot(),
		Name:                  m.Name,
		OwnerName:             m.OwnerName,
		Phone:                 m.Phone,
		Email:                 m.Email,
		FloorNumber:           m.FloorNumber,
		ShopNumber:            m.ShopNumber,
		RentAmount:            m.RentAmount,
		MaintenanceAmount:     m.MaintenanceAmount,
		LeaseStart:            m.LeaseStart,
		LeaseEnd:              m.LeaseEnd,
		Status:                m.Status,
		RentManagementEnabled: m.RentManagementEnabled,
		TerminatedAt:          m.TerminatedAt,
		TerminationReason:     m.TerminationReason,
	}
}

// FromDomain populates the persistence model from a domain Business entity.
func (m *BusinessModel) FromDomain(b *tenancy.Business) {
	m.FromDomainPlazaAggregateRoot(b.PlazaAggregateRoot)
	m.Name = b.Name
	m.OwnerName = b.OwnerName
	m.Phone = b.Phone
	m.Email = b.Email
	m.FloorNumber = b.FloorNumber
	m.ShopNumber = b.ShopNumber
	m.RentAmount = b.RentAmount
	m.MaintenanceAmount = b.MaintenanceAmount
	m.LeaseStart = b.LeaseStart
	m.LeaseEnd = b.LeaseEnd
	m.Status = b.Status
	m.RentManagementEnabled = b.RentManagementEnabled
	m.TerminatedAt = b.TerminatedAt
	m.TerminationReason = b.TerminationReason
}

// BusinessModelFromDomain creates a new persistence model from a domain Business.
func BusinessModelFromDomain(b *tenancy.Business) *BusinessModel {
	m := &BusinessModel{}
	m.FromDomain(b)
	return m
}

// AdvanceModel is the persistence model for the Advance aggregate root.
type AdvanceModel struct {
	PlazaAggregateModel
	BusinessID  uuid.UUID               `gorm:"type:uuid;not null;index"`
	BillType    tenancy.AdvanceBillType `gorm:"type:varchar(20);not null;index"`
	Month       int                     `gorm:"not null;index"`
	Year        int                     `gorm:"not null;index"`
	Amount      decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	Status      tenancy.AdvanceStatus   `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	Remark      string                  `gorm:"type:varchar(500)"`
	SettledAt   *time.Time
	CancelledAt *time.Time
}

// TableName returns the table name for GORM
func (AdvanceModel) TableName() string {
	return "advances"
}

// ToDomain converts the persistence model to a domain Advance entity.
func (m *AdvanceModel) ToDomain() *tenancy.Advance {
	return &tenancy.Advance{
		PlazaAggregateRoot: m.PlazaAggregateRoot(),
		BusinessID:         m.BusinessID,
		BillType:           m.BillType,
		Month:              m.Month,
		Year:               m.Year,
		Amount:             m.Amount,
		Status:             m.Status,
		Remark:             m.Remark,
		SettledAt:          m.SettledAt,
		CancelledAt:        m.CancelledAt,
	}
}

// FromDomain populates the persistence model from a domain Advance entity.
func (m *AdvanceModel) FromDomain(a *tenancy.Advance) {
	m.FromDomainPlazaAggregateRoot(a.PlazaAggregateRoot)
	m.BusinessID = a.BusinessID
	m.BillType = a.BillType
	m.Month = a.Month
	m.Year = a.Year
	m.Amount = a.Amount
	m.Status = a.Status
	m.Remark = a.Remark
	m.SettledAt = a.SettledAt
	m.CancelledAt = a.CancelledAt
}

// AdvanceModelFromDomain creates a new persistence model from a domain Advance.
func AdvanceModelFromDomain(a *tenancy.Advance) *AdvanceModel {
	m := &AdvanceModel{}
	m.FromDomain(a)
	return m
}
