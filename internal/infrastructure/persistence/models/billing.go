package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// BillModel is the persistence model for the Bill aggregate root.
type BillModel struct {
	PlazaAggregateModel
	BillNumber    string               `gorm:"type:varchar(50);not null;index"`
	BusinessID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	BusinessName  string               `gorm:"type:varchar(200);not null"`
	Category      billing.BillCategory `gorm:"type:varchar(20);not null;index"`
	Month         int                  `gorm:"not null;index"`
	Year          int                  `gorm:"not null;index"`
	RentCharge        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MaintenanceCharge decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ElectricityCharge decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	GasCharge         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	WaterCharge       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	OtherCharge       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalAmount   decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	PaidAmount    decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	Status        billing.BillStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	BillDate      time.Time          `gorm:"not null;index"`
	DueDate       time.Time          `gorm:"not null;index"`
	TermsText     string             `gorm:"type:text"`
	Remark        string             `gorm:"type:varchar(500)"`
	PaidAt        *time.Time
	CancelledAt   *time.Time
	CancelReason  string `gorm:"type:varchar(500)"`
	WaveoffAt     *time.Time
	WaveoffReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill entity.
func (m *BillModel) ToDomain() *billing.Bill {
	return &billing.Bill{
		PlazaAggregateRoot: m.PlazaAggregateRoot(),
		BillNumber:         m.BillNumber,
		BusinessID:         m.BusinessID,
		BusinessName:       m.BusinessName,
		Category:           m.Category,
		Month:              m.Month,
		Year:               m.Year,
		Charges: billing.Charges{
			Rent:        m.RentCharge,
			Maintenance: m.MaintenanceCharge,
			Electricity: m.ElectricityCharge,
			Gas:         m.GasCharge,
			Water:       m.WaterCharge,
			Other:       m.OtherCharge,
		},
		TotalAmount:   m.TotalAmount,
		PaidAmount:    m.PaidAmount,
		Status:        m.Status,
		BillDate:      m.BillDate,
		DueDate:       m.DueDate,
		TermsText:     m.TermsText,
		Remark:        m.Remark,
		PaidAt:        m.PaidAt,
		CancelledAt:   m.CancelledAt,
		CancelReason:  m.CancelReason,
		WaveoffAt:     m.WaveoffAt,
		WaveoffReason: m.WaveoffReason,
	}
}

// FromDomain populates the persistence model from a domain Bill entity.
func (m *BillModel) FromDomain(b *billing.Bill) {
	m.FromDomainPlazaAggregateRoot(b.PlazaAggregateRoot)
	m.BillNumber = b.BillNumber
	m.BusinessID = b.BusinessID
	m.BusinessName = b.BusinessName
	m.Category = b.Category
	m.Month = b.Month
	m.Year = b.Year
	m.RentCharge = b.Charges.Rent
	m.MaintenanceCharge = b.Charges.Maintenance
	m.ElectricityCharge = b.Charges.Electricity
	m.GasCharge = b.Charges.Gas
	m.WaterCharge = b.Charges.Water
	m.OtherCharge = b.Charges.Other
	m.TotalAmount = b.TotalAmount
	m.PaidAmount = b.PaidAmount
	m.Status = b.Status
	m.BillDate = b.BillDate
	m.DueDate = b.DueDate
	m.TermsText = b.TermsText
	m.Remark = b.Remark
	m.PaidAt = b.PaidAt
	m.CancelledAt = b.CancelledAt
	m.CancelReason = b.CancelReason
	m.WaveoffAt = b.WaveoffAt
	m.WaveoffReason = b.WaveoffReason
}

// BillModelFromDomain creates a new persistence model from a domain Bill.
func BillModelFromDomain(b *billing.Bill) *BillModel {
	m := &BillModel{}
	m.FromDomain(b)
	return m
}

// MeterReadingModel is the persistence model for the MeterReading aggregate root.
type MeterReadingModel struct {
	PlazaAggregateModel
	BusinessID      uuid.UUID                  `gorm:"type:uuid;not null;index"`
	MeterType       billing.MeterType          `gorm:"type:varchar(20);not null;index"`
	PreviousReading decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	CurrentReading  decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	Consumption     decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	RatePerUnit     decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Amount          decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	ReadingDate     time.Time                  `gorm:"not null;index"`
	PaymentStatus   billing.MeterPaymentStatus `gorm:"type:varchar(20);not null;default:'UNBILLED';index"`
	BillID          *uuid.UUID                 `gorm:"type:uuid;index"`
	Remark          string                     `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (MeterReadingModel) TableName() string {
	return "meter_readings"
}

// ToDomain converts the persistence model to a domain MeterReading entity.
func (m *MeterReadingModel) ToDomain() *billing.MeterReading {
	return &billing.MeterReading{
		PlazaAggregateRoot: m.PlazaAggregateRoot(),
		BusinessID:         m.BusinessID,
		MeterType:          m.MeterType,
		PreviousReading:    m.PreviousReading,
		CurrentReading:     m.CurrentReading,
		Consumption:        m.Consumption,
		RatePerUnit:        m.RatePerUnit,
		Amount:             m.Amount,
		ReadingDate:        m.ReadingDate,
		PaymentStatus:      m.PaymentStatus,
		BillID:             m.BillID,
		Remark:             m.Remark,
	}
}

// FromDomain populates the persistence model from a domain MeterReading entity.
func (m *MeterReadingModel) FromDomain(r *billing.MeterReading) {
	m.FromDomainPlazaAggregateRoot(r.PlazaAggregateRoot)
	m.BusinessID = r.BusinessID
	m.MeterType = r.MeterType
	m.PreviousReading = r.PreviousReading
	m.CurrentReading = r.CurrentReading
	m.Consumption = r.Consumption
	m.RatePerUnit = r.RatePerUnit
	m.Amount = r.Amount
	m.ReadingDate = r.ReadingDate
	m.PaymentStatus = r.PaymentStatus
	m.BillID = r.BillID
	m.Remark = r.Remark
}

// MeterReadingModelFromDomain creates a new persistence model from a domain MeterReading.
func MeterReadingModelFromDomain(r *billing.MeterReading) *MeterReadingModel {
	m := &MeterReadingModel{}
	m.FromDomain(r)
	return m
}

// SettingsModel is the persistence model for a plaza's billing Settings.
// Terms and conditions lines are stored as a jsonb array.
type SettingsModel struct {
	PlazaAggregateModel
	RentGenerationDay  int             `gorm:"not null;default:1"`
	DueOffsetDays      int             `gorm:"not null;default:15"`
	ElectricityRate    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GasRate            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	WaterRate          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TermsAndConditions string          `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (SettingsModel) TableName() string {
	return "billing_settings"
}

// ToDomain converts the persistence model to a domain Settings entity.
func (m *SettingsModel) ToDomain() *billing.Settings {
	var terms []string
	if m.TermsAndConditions != "" {
		// A corrupt row falls back to no terms rather than failing the read
		_ = json.Unmarshal([]byte(m.TermsAndConditions), &terms)
	}
	if terms == nil {
		terms = []string{}
	}
	return &billing.Settings{
		PlazaAggregateRoot: m.PlazaAggregateRoot(),
		RentGenerationDay:  m.RentGenerationDay,
		DueOffsetDays:      m.DueOffsetDays,
		ElectricityRate:    m.ElectricityRate,
		GasRate:            m.GasRate,
		WaterRate:          m.WaterRate,
		TermsAndConditions: terms,
	}
}

// FromDomain populates the persistence model from a domain Settings entity.
func (m *SettingsModel) FromDomain(s *billing.Settings) {
	m.FromDomainPlazaAggregateRoot(s.PlazaAggregateRoot)
	m.RentGenerationDay = s.RentGenerationDay
	m.DueOffsetDays = s.DueOffsetDays
	m.ElectricityRate = s.ElectricityRate
	m.GasRate = s.GasRate
	m.WaterRate = s.WaterRate
	terms, err := json.Marshal(s.TermsAndConditions)
	if err != nil {
		terms = []byte("[]")
	}
	m.TermsAndConditions = string(terms)
}

// SettingsModelFromDomain creates a new persistence model from domain Settings.
func SettingsModelFromDomain(s *billing.Settings) *SettingsModel {
	m := &SettingsModel{}
	m.FromDomain(s)
	return m
}

// MaintenanceInstalmentModel is the persistence model for one instalment of
// a maintenance bill plan.
type MaintenanceInstalmentModel struct {
	PlazaAggregateModel
	BillID         uuid.UUID                `gorm:"type:uuid;not null;index"`
	BusinessID     uuid.UUID                `gorm:"type:uuid;not null;index"`
	SequenceNumber int                      `gorm:"not null"`
	Amount         decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	DueDate        time.Time                `gorm:"not null;index"`
	Status         billing.InstalmentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaidAt         *time.Time
	Remark         string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (MaintenanceInstalmentModel) TableName() string {
	return "maintenance_instalments"
}

// ToDomain converts the persistence model to a domain MaintenanceInstalment entity.
func (m *MaintenanceInstalmentModel) ToDomain() *billing.MaintenanceInstalment {
	return &billing.MaintenanceInstalment{
		PlazaAggregateRoot: m.PlazaAggregateRoot(),
		BillID:             m.BillID,
		BusinessID:         m.BusinessID,
		SequenceNumber:     m.SequenceNumber,
		Amount:             m.Amount,
		DueDate:            m.DueDate,
		Status:             m.Status,
		PaidAt:             m.PaidAt,
		Remark:             m.Remark,
	}
}

// FromDomain populates the persistence model from a domain MaintenanceInstalment entity.
func (m *MaintenanceInstalmentModel) FromDomain(i *billing.MaintenanceInstalment) {
	m.FromDomainPlazaAggregateRoot(i.PlazaAggregateRoot)
	m.BillID = i.BillID
	m.BusinessID = i.BusinessID
	m.SequenceNumber = i.SequenceNumber
	m.Amount = i.Amount
	m.DueDate = i.DueDate
	m.Status = i.Status
	m.PaidAt = i.PaidAt
	m.Remark = i.Remark
}

// MaintenanceInstalmentModelFromDomain creates a new persistence model from a domain instalment.
func MaintenanceInstalmentModelFromDomain(i *billing.MaintenanceInstalment) *MaintenanceInstalmentModel {
	m := &MaintenanceInstalmentModel{}
	m.FromDomain(i)
	return m
}
