package finance

import (
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory identifies what a plaza expense paid for
type ExpenseCategory string

const (
	ExpenseCategoryRepair      ExpenseCategory = "REPAIR"
	ExpenseCategoryUtility     ExpenseCategory = "UTILITY"
	ExpenseCategoryCleaning    ExpenseCategory = "CLEANING"
	ExpenseCategorySecurity    ExpenseCategory = "SECURITY"
	ExpenseCategorySupplies    ExpenseCategory = "SUPPLIES"
	ExpenseCategoryGovernment  ExpenseCategory = "GOVERNMENT" // Taxes, levies, permit fees
	ExpenseCategoryMiscellaneous ExpenseCategory = "MISCELLANEOUS"
)

// IsValid checks if the category is valid
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryRepair, ExpenseCategoryUtility, ExpenseCategoryCleaning,
		ExpenseCategorySecurity, ExpenseCategorySupplies, ExpenseCategoryGovernment,
		ExpenseCategoryMiscellaneous:
		return true
	}
	return false
}

// Expense records money spent running the plaza: repairs, shared utilities,
// cleaning, security and the like. Expenses sit on the outgoing side of the
// monthly ledger against collected bill payments.
type Expense struct {
	shared.PlazaAggregateRoot
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expense_date"`
	Vendor      string          `json:"vendor"`
	ReceiptURL  string          `json:"receipt_url"`
	Remark      string          `json:"remark"`
}

// NewExpense creates a new expense record
func NewExpense(
	plazaID uuid.UUID,
	category ExpenseCategory,
	description string,
	amount valueobject.Money,
	expenseDate time.Time,
	vendor string,
) (*Expense, error) {
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	return &Expense{
		PlazaAggregateRoot: shared.NewPlazaAggregateRoot(plazaID),
		Category:           category,
		Description:        description,
		Amount:             amount.Amount(),
		ExpenseDate:        expenseDate,
		Vendor:             vendor,
	}, nil
}

// Update revises the expense details
func (e *Expense) Update(category ExpenseCategory, description string, amount valueobject.Money, expenseDate time.Time, vendor string) error {
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	e.Category = category
	e.Description = description
	e.Amount = amount.Amount()
	if !expenseDate.IsZero() {
		e.ExpenseDate = expenseDate
	}
	e.Vendor = vendor
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// AttachReceipt links an uploaded receipt image
func (e *Expense) AttachReceipt(url string) {
	e.ReceiptURL = url
	e.UpdatedAt = time.Now()
}

// SetRemark sets the remark
func (e *Expense) SetRemark(remark string) {
	e.Remark = remark
	e.UpdatedAt = time.Now()
}

// GetAmountMoney returns the amount as Money
func (e *Expense) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPKR(e.Amount)
}
