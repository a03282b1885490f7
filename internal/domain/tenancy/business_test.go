package tenancy

import (
	"testing"
	"time"

	"github.com/plazafl/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBusiness(t *testing.T) *Business {
	b, err := NewBusiness(
		uuid.New(),
		"Al-Noor Electronics",
		"Imran Khan",
		"0300-1234567",
		"G-12",
		"Ground",
		valueobject.NewMoneyPKRFromFloat(25000),
		valueobject.NewMoneyPKRFromFloat(3000),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return b
}

func TestNewBusiness(t *testing.T) {
	b := createTestBusiness(t)

	assert.Equal(t, "Al-Noor Electronics", b.Name)
	assert.Equal(t, "G-12", b.ShopNumber)
	assert.Equal(t, BusinessStatusActive, b.Status)
	assert.True(t, b.RentManagementEnabled)
	assert.True(t, b.IsBillable())
	assert.Len(t, b.GetDomainEvents(), 1)
	assert.Equal(t, "BusinessCreated", b.GetDomainEvents()[0].EventType())
}

func TestNewBusiness_Validation(t *testing.T) {
	plazaID := uuid.New()
	start := time.Now()
	rent := valueobject.NewMoneyPKRFromFloat(10000)
	maint := valueobject.NewMoneyPKRFromFloat(1000)

	t.Run("empty name", func(t *testing.T) {
		_, err := NewBusiness(plazaID, "", "owner", "", "G-1", "Ground", rent, maint, start)
		assert.Error(t, err)
	})

	t.Run("empty shop number", func(t *testing.T) {
		_, err := NewBusiness(plazaID, "Shop", "owner", "", "", "Ground", rent, maint, start)
		assert.Error(t, err)
	})

	t.Run("negative rent", func(t *testing.T) {
		_, err := NewBusiness(plazaID, "Shop", "owner", "", "G-1", "Ground",
			valueobject.NewMoneyPKRFromFloat(-1), maint, start)
		assert.Error(t, err)
	})

	t.Run("zero lease start", func(t *testing.T) {
		_, err := NewBusiness(plazaID, "Shop", "owner", "", "G-1", "Ground", rent, maint, time.Time{})
		assert.Error(t, err)
	})
}

func TestBusiness_StatusTransitions(t *testing.T) {
	b := createTestBusiness(t)

	require.NoError(t, b.Deactivate())
	assert.Equal(t, BusinessStatusInactive, b.Status)
	assert.False(t, b.IsBillable())

	require.NoError(t, b.Activate())
	assert.Equal(t, BusinessStatusActive, b.Status)

	require.NoError(t, b.Terminate("lease expired", time.Now()))
	assert.Equal(t, BusinessStatusTerminated, b.Status)
	assert.NotNil(t, b.TerminatedAt)
	assert.False(t, b.RentManagementEnabled)

	assert.Error(t, b.Activate())
	assert.Error(t, b.Deactivate())
	assert.Error(t, b.Terminate("again", time.Now()))
}

func TestBusiness_Terminate_RequiresReason(t *testing.T) {
	b := createTestBusiness(t)
	err := b.Terminate("", time.Now())
	assert.Error(t, err)
	assert.Equal(t, BusinessStatusActive, b.Status)
}

func TestBusiness_SetRentManagement(t *testing.T) {
	b := createTestBusiness(t)
	b.SetRentManagement(false)
	assert.False(t, b.IsBillable())
	assert.Equal(t, BusinessStatusActive, b.Status)
}

func TestBusiness_UpdateCharges(t *testing.T) {
	b := createTestBusiness(t)
	err := b.UpdateCharges(valueobject.NewMoneyPKRFromFloat(30000), valueobject.NewMoneyPKRFromFloat(3500))
	require.NoError(t, err)
	assert.True(t, b.RentAmount.Equal(decimal.NewFromInt(30000)))

	err = b.UpdateCharges(valueobject.NewMoneyPKRFromFloat(-5), valueobject.NewMoneyPKRFromFloat(0))
	assert.Error(t, err)
}

func TestAdvance_Lifecycle(t *testing.T) {
	a, err := NewAdvance(uuid.New(), uuid.New(), AdvanceBillTypeRent, 7, 2025,
		valueobject.NewMoneyPKRFromFloat(25000), "paid in advance for July")
	require.NoError(t, err)

	assert.True(t, a.IsActive())
	assert.True(t, a.Covers(AdvanceBillTypeRent, 7, 2025))
	assert.False(t, a.Covers(AdvanceBillTypeRent, 8, 2025))
	assert.False(t, a.Covers(AdvanceBillTypeMaintenance, 7, 2025))

	require.NoError(t, a.Settle())
	assert.Equal(t, AdvanceStatusSettled, a.Status)
	assert.NotNil(t, a.SettledAt)
	assert.False(t, a.Covers(AdvanceBillTypeRent, 7, 2025))

	assert.Error(t, a.Settle())
	assert.Error(t, a.Cancel(""))
}

func TestAdvance_Cancel(t *testing.T) {
	a, err := NewAdvance(uuid.New(), uuid.New(), AdvanceBillTypeMaintenance, 3, 2025,
		valueobject.NewMoneyPKRFromFloat(3000), "")
	require.NoError(t, err)

	require.NoError(t, a.Cancel("entered by mistake"))
	assert.Equal(t, AdvanceStatusCancelled, a.Status)
	assert.Equal(t, "entered by mistake", a.Remark)
}

func TestNewAdvance_Validation(t *testing.T) {
	plazaID := uuid.New()
	businessID := uuid.New()
	amount := valueobject.NewMoneyPKRFromFloat(1000)

	tests := []struct {
		name     string
		billType AdvanceBillType
		month    int
		year     int
		amount   valueobject.Money
	}{
		{"invalid bill type", AdvanceBillType("OTHER"), 1, 2025, amount},
		{"month too low", AdvanceBillTypeRent, 0, 2025, amount},
		{"month too high", AdvanceBillTypeRent, 13, 2025, amount},
		{"year too low", AdvanceBillTypeRent, 1, 1999, amount},
		{"zero amount", AdvanceBillTypeRent, 1, 2025, valueobject.ZeroPKR()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAdvance(plazaID, businessID, tt.billType, tt.month, tt.year, tt.amount, "")
			assert.Error(t, err)
		})
	}
}
