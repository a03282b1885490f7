package models

import (
	"time"

	"github.com/plazafl/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for the Expense aggregate root.
type ExpenseModel struct {
	PlazaAggregateModel
	Category    finance.ExpenseCategory `gorm:"type:varchar(30);not null;index"`
	Description string                  `gorm:"type:varchar(500);not null"`
	Amount      decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	ExpenseDate time.Time               `gorm:"not null;index"`
	Vendor      string                  `gorm:"type:varchar(200)"`
	ReceiptURL  string                  `gorm:"type:varchar(1000)"`
	Remark      string                  `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		PlazaAggregateRoot: m.PlazaAggregateRoot(),
		Category:           m.Category,
		Description:        m.Description,
		Amount:             m.Amount,
		ExpenseDate:        m.ExpenseDate,
		Vendor:             m.Vendor,
		ReceiptURL:         m.ReceiptURL,
		Remark:             m.Remark,
	}
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.FromDomainPlazaAggregateRoot(e.PlazaAggregateRoot)
	m.Category = e.Category
	m.Description = e.Description
	m.Amount = e.Amount
	m.ExpenseDate = e.ExpenseDate
	m.Vendor = e.Vendor
	m.ReceiptURL = e.ReceiptURL
	m.Remark = e.Remark
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense.
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}
