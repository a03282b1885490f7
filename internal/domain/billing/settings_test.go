package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSettings_Defaults(t *testing.T) {
	settings := NewSettings(uuid.New())

	assert.Equal(t, 1, settings.RentGenerationDay)
	assert.Equal(t, DefaultDueOffsetDays, settings.DueOffsetDays)
	assert.True(t, settings.ElectricityRate.IsZero())
	assert.Empty(t, settings.TermsAndConditions)
}

func TestSettingsSetRentGenerationDay(t *testing.T) {
	settings := NewSettings(uuid.New())

	require.NoError(t, settings.SetRentGenerationDay(15))
	assert.Equal(t, 15, settings.RentGenerationDay)

	assert.Error(t, settings.SetRentGenerationDay(0))
	assert.Error(t, settings.SetRentGenerationDay(32))
}

func TestSettingsIsGenerationDay(t *testing.T) {
	settings := NewSettings(uuid.New())
	require.NoError(t, settings.SetRentGenerationDay(15))

	assert.True(t, settings.IsGenerationDay(time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)))
	assert.False(t, settings.IsGenerationDay(time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)))
	assert.False(t, settings.IsGenerationDay(time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC)))
}

func TestSettingsIsGenerationDay_ShortMonth(t *testing.T) {
	settings := NewSettings(uuid.New())
	require.NoError(t, settings.SetRentGenerationDay(31))

	// A day past the month's end fires on the month's last day instead
	assert.True(t, settings.IsGenerationDay(time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC)))
	assert.False(t, settings.IsGenerationDay(time.Date(2025, 2, 27, 9, 0, 0, 0, time.UTC)))
	assert.True(t, settings.IsGenerationDay(time.Date(2025, 4, 30, 9, 0, 0, 0, time.UTC)))
	assert.True(t, settings.IsGenerationDay(time.Date(2025, 3, 31, 9, 0, 0, 0, time.UTC)))
}

func TestSettingsSetMeterRates(t *testing.T) {
	settings := NewSettings(uuid.New())

	err := settings.SetMeterRates(
		decimal.NewFromFloat(8.5),
		decimal.NewFromFloat(3.25),
		decimal.NewFromInt(2),
	)
	require.NoError(t, err)

	assert.True(t, settings.RateFor(MeterTypeElectricity).Equal(decimal.NewFromFloat(8.5)))
	assert.True(t, settings.RateFor(MeterTypeGas).Equal(decimal.NewFromFloat(3.25)))
	assert.True(t, settings.RateFor(MeterTypeWater).Equal(decimal.NewFromInt(2)))

	err = settings.SetMeterRates(decimal.NewFromInt(-1), decimal.Zero, decimal.Zero)
	assert.Error(t, err)
}

func TestSettingsTermsText(t *testing.T) {
	settings := NewSettings(uuid.New())
	assert.Equal(t, "", settings.TermsText())

	settings.SetTerms([]string{
		"Pay before the due date.",
		"Late payments attract a surcharge.",
	})
	assert.Equal(t, "Pay before the due date.\nLate payments attract a surcharge.", settings.TermsText())
}
