package finance

import (
	"testing"
	"time"

	"github.com/plazafl/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpense(t *testing.T) {
	expenseDate := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	expense, err := NewExpense(
		uuid.New(),
		ExpenseCategoryRepair,
		"Replaced basement water pump",
		valueobject.NewMoneyPKR(decimal.NewFromInt(18500)),
		expenseDate,
		"Hafeez Hardware",
	)
	require.NoError(t, err)

	assert.Equal(t, ExpenseCategoryRepair, expense.Category)
	assert.True(t, expense.Amount.Equal(decimal.NewFromInt(18500)))
	assert.Equal(t, expenseDate, expense.ExpenseDate)
	assert.Equal(t, "Hafeez Hardware", expense.Vendor)
}

func TestNewExpense_Validation(t *testing.T) {
	plazaID := uuid.New()
	amount := valueobject.NewMoneyPKR(decimal.NewFromInt(1000))

	_, err := NewExpense(plazaID, ExpenseCategory("BRIBERY"), "desc", amount, time.Now(), "")
	assert.Error(t, err)

	_, err = NewExpense(plazaID, ExpenseCategoryUtility, "", amount, time.Now(), "")
	assert.Error(t, err)

	_, err = NewExpense(plazaID, ExpenseCategoryUtility, "desc", valueobject.ZeroPKR(), time.Now(), "")
	assert.Error(t, err)
}

func TestNewExpense_DefaultsDate(t *testing.T) {
	expense, err := NewExpense(
		uuid.New(), ExpenseCategoryCleaning, "Monthly deep clean",
		valueobject.NewMoneyPKR(decimal.NewFromInt(5000)), time.Time{}, "",
	)
	require.NoError(t, err)
	assert.False(t, expense.ExpenseDate.IsZero())
}

func TestExpenseUpdate(t *testing.T) {
	expense, err := NewExpense(
		uuid.New(), ExpenseCategoryRepair, "Pump repair",
		valueobject.NewMoneyPKR(decimal.NewFromInt(18500)), time.Now(), "Hafeez Hardware",
	)
	require.NoError(t, err)

	newDate := time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC)
	err = expense.Update(
		ExpenseCategorySupplies, "Pump repair plus spare belts",
		valueobject.NewMoneyPKR(decimal.NewFromInt(21000)), newDate, "Hafeez Hardware",
	)
	require.NoError(t, err)

	assert.Equal(t, ExpenseCategorySupplies, expense.Category)
	assert.True(t, expense.Amount.Equal(decimal.NewFromInt(21000)))
	assert.Equal(t, newDate, expense.ExpenseDate)

	err = expense.Update(ExpenseCategorySupplies, "", valueobject.NewMoneyPKR(decimal.NewFromInt(1)), newDate, "")
	assert.Error(t, err)
}
