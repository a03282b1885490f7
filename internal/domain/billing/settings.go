package billing

import (
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultDueOffsetDays is how many days after the bill date a bill falls due
const DefaultDueOffsetDays = 15

// Settings holds a plaza's billing configuration: when the recurring rent
// run fires, how long businesses get to pay, default utility rates and the
// terms text attached to generated bills.
type Settings struct {
	shared.PlazaAggregateRoot
	RentGenerationDay int             `json:"rent_generation_day"` // 1-31, day-of-month the rent run generates bills
	DueOffsetDays     int             `json:"due_offset_days"`
	ElectricityRate   decimal.Decimal `json:"electricity_rate"`
	GasRate           decimal.Decimal `json:"gas_rate"`
	WaterRate         decimal.Decimal `json:"water_rate"`
	TermsAndConditions []string       `json:"terms_and_conditions"`
}

// NewSettings creates settings with sane defaults for a new plaza
func NewSettings(plazaID uuid.UUID) *Settings {
	return &Settings{
		PlazaAggregateRoot: shared.NewPlazaAggregateRoot(plazaID),
		RentGenerationDay:  1,
		DueOffsetDays:      DefaultDueOffsetDays,
		ElectricityRate:    decimal.Zero,
		GasRate:            decimal.Zero,
		WaterRate:          decimal.Zero,
		TermsAndConditions: []string{},
	}
}

// SetRentGenerationDay updates the day-of-month the rent run fires
func (s *Settings) SetRentGenerationDay(day int) error {
	if day < 1 || day > 31 {
		return shared.NewDomainError("INVALID_GENERATION_DAY", "Generation day must be between 1 and 31")
	}
	s.RentGenerationDay = day
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetDueOffsetDays updates how many days businesses get to pay
func (s *Settings) SetDueOffsetDays(days int) error {
	if days < 1 {
		return shared.NewDomainError("INVALID_DUE_OFFSET", "Due offset must be at least 1 day")
	}
	s.DueOffsetDays = days
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetMeterRates updates the default per-unit utility rates
func (s *Settings) SetMeterRates(electricity, gas, water decimal.Decimal) error {
	if electricity.IsNegative() || gas.IsNegative() || water.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Meter rates cannot be negative")
	}
	s.ElectricityRate = electricity
	s.GasRate = gas
	s.WaterRate = water
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetTerms replaces the terms-and-conditions entries attached to new bills
func (s *Settings) SetTerms(terms []string) {
	s.TermsAndConditions = terms
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// RateFor returns the default rate for a meter type
func (s *Settings) RateFor(meterType MeterType) decimal.Decimal {
	switch meterType {
	case MeterTypeElectricity:
		return s.ElectricityRate
	case MeterTypeGas:
		return s.GasRate
	case MeterTypeWater:
		return s.WaterRate
	}
	return decimal.Zero
}

// IsGenerationDay reports whether the rent run should generate bills today.
// Generation days past the end of a short month fire on the month's last day.
func (s *Settings) IsGenerationDay(now time.Time) bool {
	day := s.RentGenerationDay
	lastDay := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	if day > lastDay {
		day = lastDay
	}
	return now.Day() == day
}

// TermsText renders the terms entries as the text snapshot stored on bills
func (s *Settings) TermsText() string {
	text := ""
	for i, term := range s.TermsAndConditions {
		if i > 0 {
			text += "\n"
		}
		text += term
	}
	return text
}
