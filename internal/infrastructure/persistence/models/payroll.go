package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// StaffModel is the persistence model for the Staff aggregate root.
type StaffModel struct {
	PlazaAggregateModel
	Name          string              `gorm:"type:varchar(200);not null;index"`
	Designation   string              `gorm:"type:varchar(100);index"`
	Phone         string              `gorm:"type:varchar(30)"`
	CNIC          string              `gorm:"type:varchar(20)"`
	MonthlySalary decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	JoinedAt      time.Time           `gorm:"not null"`
	Status        payroll.StaffStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	LeftAt        *time.Time
}

// TableName returns the table name for GORM
func (StaffModel) TableName() string {
	return "staff"
}

// ToDomain converts the persistence model to a domain Staff entity.
func (m *StaffModel) ToDomain() *payroll.Staff {
	return &payroll.Staff{
		PlazaAggregateRoot: m.PlazaAggregateRoot(),
		Name:               m.Name,
		Designation:        m.Designation,
		Phone:              m.Phone,
		CNIC:               m.CNIC,
		MonthlySalary:      m.MonthlySalary,
		JoinedAt:           m.JoinedAt,
		Status:             m.Status,
		LeftAt:             m.LeftAt,
	}
}

// FromDomain populates the persistence model from a domain Staff entity.
func (m *StaffModel) FromDomain(s *payroll.Staff) {
	m.FromDomainPlazaAggregateRoot(s.PlazaAggregateRoot)
	m.Name = s.Name
	m.Designation = s.Designation
	m.Phone = s.Phone
	m.CNIC = s.CNIC
	m.MonthlySalary = s.MonthlySalary
	m.JoinedAt = s.JoinedAt
	m.Status = s.Status
	m.LeftAt = s.LeftAt
}

// StaffModelFromDomain creates a new persistence model from a domain Staff.
func StaffModelFromDomain(s *payroll.Staff) *StaffModel {
	m := &StaffModel{}
	m.FromDomain(s)
	return m
}

// SalaryRecordModel is the persistence model for the SalaryRecord aggregate root.
type SalaryRecordModel struct {
	PlazaAggregateModel
	StaffID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	StaffName  string               `gorm:"type:varchar(200);not null"`
	Month      int                  `gorm:"not null;index"`
	Year       int                  `gorm:"not null;index"`
	BaseSalary decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Bonus      decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Deduction  decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Status     payroll.SalaryStatus `gorm:"type:varchar(20);not null;default:'UNPAID';index"`
	PaidAt     *time.Time
	PaidBy     *uuid.UUID `gorm:"type:uuid"`
	Remark     string     `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SalaryRecordModel) TableName() string {
	return "salary_records"
}

// ToDomain converts the persistence model to a domain SalaryRecord entity.
func (m *SalaryRecordModel) ToDomain() *payroll.SalaryRecord {
	return &payroll.SalaryRecord{
		PlazaAggregateRoot: m.PlazaAggregateRoot(),
		StaffID:            m.StaffID,
		StaffName:          m.StaffName,
		Month:              m.Month,
		Year:               m.Year,
		BaseSalary:         m.BaseSalary,
		Bonus:              m.Bonus,
		Deduction:          m.Deduction,
		Status:             m.Status,
		PaidAt:             m.PaidAt,
		PaidBy:             m.PaidBy,
		Remark:             m.Remark,
	}
}

// FromDomain populates the persistence model from a domain SalaryRecord entity.
func (m *SalaryRecordModel) FromDomain(r *payroll.SalaryRecord) {
	m.FromDomainPlazaAggregateRoot(r.PlazaAggregateRoot)
	m.StaffID = r.StaffID
	m.StaffName = r.StaffName
	m.Month = r.Month
	m.Year = r.Year
	m.BaseSalary = r.BaseSalary
	m.Bonus = r.Bonus
	m.Deduction = r.Deduction
	m.Status = r.Status
	m.PaidAt = r.PaidAt
	m.PaidBy = r.PaidBy
	m.Remark = r.Remark
}

// SalaryRecordModelFromDomain creates a new persistence model from a domain SalaryRecord.
func SalaryRecordModelFromDomain(r *payroll.SalaryRecord) *SalaryRecordModel {
	m := &SalaryRecordModel{}
	m.FromDomain(r)
	return m
}
