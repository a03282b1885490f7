package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/payments"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for the Payment aggregate root.
// Payments are append-only; rows are never updated after insert.
type PaymentModel struct {
	PlazaAggregateModel
	BillID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	BusinessID  uuid.UUID              `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	Method      payments.PaymentMethod `gorm:"type:varchar(20);not null;index"`
	PaymentDate time.Time              `gorm:"not null;index"`
	Reference   string                 `gorm:"type:varchar(100)"`
	ReceivedBy  *uuid.UUID             `gorm:"type:uuid;index"`
	Remark      string                 `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *payments.Payment {
	return &payments.Payment{
		PlazaAggregateRoot: m.PlazaAggregateRoot(),
		BillID:             m.BillID,
		BusinessID:         m.BusinessID,
		Amount:             m.Amount,
		Method:             m.Method,
		PaymentDate:        m.PaymentDate,
		Reference:          m.Reference,
		ReceivedBy:         m.ReceivedBy,
		Remark:             m.Remark,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *payments.Payment) {
	m.FromDomainPlazaAggregateRoot(p.PlazaAggregateRoot)
	m.BillID = p.BillID
	m.BusinessID = p.BusinessID
	m.Amount = p.Amount
	m.Method = p.Method
	m.PaymentDate = p.PaymentDate
	m.Reference = p.Reference
	m.ReceivedBy = p.ReceivedBy
	m.Remark = p.Remark
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *payments.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// PendingPaymentModel is the persistence model for the PendingPayment aggregate root.
type PendingPaymentModel struct {
	PlazaAggregateModel
	BillID       uuid.UUID                     `gorm:"type:uuid;not null;index"`
	BusinessID   uuid.UUID                     `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal               `gorm:"type:decimal(18,2);not null"`
	Method       payments.PaymentMethod        `gorm:"type:varchar(20);not null"`
	Reference    string                        `gorm:"type:varchar(100)"`
	ProofURL     string                        `gorm:"type:varchar(1000)"`
	Status       payments.PendingPaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	SubmittedAt  time.Time                     `gorm:"not null;index"`
	ReviewedAt   *time.Time
	ReviewedBy   *uuid.UUID `gorm:"type:uuid"`
	RejectReason string     `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PendingPaymentModel) TableName() string {
	return "pending_payments"
}

// ToDomain converts the persistence model to a domain PendingPayment entity.
func (m *PendingPaymentModel) ToDomain() *payments.PendingPayment {
	return &payments.PendingPayment{
		PlazaAggregateRoot: m.PlazaAggregateRoot(),
		BillID:             m.BillID,
		BusinessID:         m.BusinessID,
		Amount:             m.Amount,
		Method:             m.Method,
		Reference:          m.Reference,
		ProofURL:           m.ProofURL,
		Status:             m.Status,
		SubmittedAt:        m.SubmittedAt,
		ReviewedAt:         m.ReviewedAt,
		ReviewedBy:         m.ReviewedBy,
		RejectReason:       m.RejectReason,
	}
}

// FromDomain populates the persistence model from a domain PendingPayment entity.
func (m *PendingPaymentModel) FromDomain(p *payments.PendingPayment) {
	m.FromDomainPlazaAggregateRoot(p.PlazaAggregateRoot)
	m.BillID = p.BillID
	m.BusinessID = p.BusinessID
	m.Amount = p.Amount
	m.Method = p.Method
	m.Reference = p.Reference
	m.ProofURL = p.ProofURL
	m.Status = p.Status
	m.SubmittedAt = p.SubmittedAt
	m.ReviewedAt = p.ReviewedAt
	m.ReviewedBy = p.ReviewedBy
	m.RejectReason = p.RejectReason
}

// PendingPaymentModelFromDomain creates a new persistence model from a domain PendingPayment.
func PendingPaymentModelFromDomain(p *payments.PendingPayment) *PendingPaymentModel {
	m := &PendingPaymentModel{}
	m.FromDomain(p)
	return m
}
