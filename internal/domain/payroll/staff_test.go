package payroll

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStaff(t *testing.T) *Staff {
	staff, err := NewStaff(
		uuid.New(),
		"Muhammad Asif",
		"Security Guard",
		"0300-1234567",
		"35202-1234567-1",
		decimal.NewFromInt(35000),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return staff
}

func TestNewStaff(t *testing.T) {
	staff := createTestStaff(t)

	assert.Equal(t, "Muhammad Asif", staff.Name)
	assert.Equal(t, "Security Guard", staff.Designation)
	assert.Equal(t, StaffStatusActive, staff.Status)
	assert.True(t, staff.IsPayable())
}

func TestNewStaff_Validation(t *testing.T) {
	plazaID := uuid.New()
	joined := time.Now()

	_, err := NewStaff(plazaID, "", "Guard", "", "", decimal.NewFromInt(35000), joined)
	assert.Error(t, err)

	_, err = NewStaff(plazaID, "Asif", "", "", "", decimal.NewFromInt(35000), joined)
	assert.Error(t, err)

	_, err = NewStaff(plazaID, "Asif", "Guard", "", "", decimal.Zero, joined)
	assert.Error(t, err)
}

func TestStaffStatusTransitions(t *testing.T) {
	staff := createTestStaff(t)

	require.NoError(t, staff.Deactivate())
	assert.Equal(t, StaffStatusInactive, staff.Status)
	assert.False(t, staff.IsPayable())

	require.NoError(t, staff.Activate())
	assert.Equal(t, StaffStatusActive, staff.Status)

	leftAt := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, staff.MarkLeft(leftAt))
	assert.Equal(t, StaffStatusLeft, staff.Status)
	require.NotNil(t, staff.LeftAt)
	assert.Equal(t, leftAt, *staff.LeftAt)

	// LEFT is terminal
	assert.Error(t, staff.Activate())
	assert.Error(t, staff.Deactivate())
	assert.Error(t, staff.MarkLeft(time.Now()))
}

func TestStaffUpdateSalary(t *testing.T) {
	staff := createTestStaff(t)

	require.NoError(t, staff.UpdateSalary(decimal.NewFromInt(40000)))
	assert.True(t, staff.MonthlySalary.Equal(decimal.NewFromInt(40000)))

	assert.Error(t, staff.UpdateSalary(decimal.NewFromInt(-1)))
}

func TestNewSalaryRecord(t *testing.T) {
	staff := createTestStaff(t)

	record, err := NewSalaryRecord(staff.PlazaID, staff, 3, 2025, decimal.NewFromInt(2000), decimal.NewFromInt(500))
	require.NoError(t, err)

	assert.Equal(t, staff.ID, record.StaffID)
	assert.Equal(t, SalaryStatusUnpaid, record.Status)
	assert.True(t, record.BaseSalary.Equal(decimal.NewFromInt(35000)))
	assert.True(t, record.NetAmount().Equal(decimal.NewFromInt(36500)))
}

func TestNewSalaryRecord_Validation(t *testing.T) {
	staff := createTestStaff(t)

	_, err := NewSalaryRecord(staff.PlazaID, nil, 3, 2025, decimal.Zero, decimal.Zero)
	assert.Error(t, err)

	_, err = NewSalaryRecord(staff.PlazaID, staff, 0, 2025, decimal.Zero, decimal.Zero)
	assert.Error(t, err)

	_, err = NewSalaryRecord(staff.PlazaID, staff, 3, 2025, decimal.NewFromInt(-1), decimal.Zero)
	assert.Error(t, err)

	// Deduction beyond salary plus bonus would produce a negative payout
	_, err = NewSalaryRecord(staff.PlazaID, staff, 3, 2025, decimal.Zero, decimal.NewFromInt(40000))
	assert.Error(t, err)
}

func TestSalaryRecordMarkPaid(t *testing.T) {
	staff := createTestStaff(t)
	record, err := NewSalaryRecord(staff.PlazaID, staff, 3, 2025, decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	payerID := uuid.New()
	require.NoError(t, record.MarkPaid(payerID))
	assert.Equal(t, SalaryStatusPaid, record.Status)
	assert.NotNil(t, record.PaidAt)
	require.NotNil(t, record.PaidBy)
	assert.Equal(t, payerID, *record.PaidBy)

	assert.Error(t, record.MarkPaid(payerID))
	assert.Error(t, record.AdjustBonus(decimal.NewFromInt(1000)))
	assert.Error(t, record.AdjustDeduction(decimal.NewFromInt(1000)))
}

func TestSalaryRecordAdjustments(t *testing.T) {
	staff := createTestStaff(t)
	record, err := NewSalaryRecord(staff.PlazaID, staff, 3, 2025, decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, record.AdjustBonus(decimal.NewFromInt(5000)))
	require.NoError(t, record.AdjustDeduction(decimal.NewFromInt(1500)))
	assert.True(t, record.NetAmount().Equal(decimal.NewFromInt(38500)))

	assert.Error(t, record.AdjustDeduction(decimal.NewFromInt(50000)))
}
