package billing

import (
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MeterType identifies the utility a reading measures
type MeterType string

const (
	MeterTypeElectricity MeterType = "ELECTRICITY"
	MeterTypeGas         MeterType = "GAS"
	MeterTypeWater       MeterType = "WATER"
)

// IsValid checks if the meter type is valid
func (t MeterType) IsValid() bool {
	switch t {
	case MeterTypeElectricity, MeterTypeGas, MeterTypeWater:
		return true
	}
	return false
}

// MeterPaymentStatus tracks whether a reading has been billed and settled
type MeterPaymentStatus string

const (
	MeterPaymentStatusUnbilled MeterPaymentStatus = "UNBILLED" // No bill issued yet
	MeterPaymentStatusBilled   MeterPaymentStatus = "BILLED"   // Included in a utility bill
	MeterPaymentStatusPaid     MeterPaymentStatus = "PAID"     // The covering bill was paid
)

// ComputeConsumption returns the billable units between two readings.
// A current reading below the previous one (meter replacement, data entry
// slip) clamps to zero consumption rather than rejecting the entry.
func ComputeConsumption(previous, current decimal.Decimal) decimal.Decimal {
	consumption := current.Sub(previous)
	if consumption.IsNegative() {
		return decimal.Zero
	}
	return consumption
}

// MeterReading records one utility meter reading for a business. Readings
// are append-only; a reading's previous value is the latest prior reading's
// current value for the same business and meter type, or zero for the first.
type MeterReading struct {
	shared.PlazaAggregateRoot
	BusinessID      uuid.UUID          `json:"business_id"`
	MeterType       MeterType          `json:"meter_type"`
	PreviousReading decimal.Decimal    `json:"previous_reading"`
	CurrentReading  decimal.Decimal    `json:"current_reading"`
	Consumption     decimal.Decimal    `json:"consumption"`
	RatePerUnit     decimal.Decimal    `json:"rate_per_unit"`
	Amount          decimal.Decimal    `json:"amount"`
	ReadingDate     time.Time          `json:"reading_date"`
	PaymentStatus   MeterPaymentStatus `json:"payment_status"`
	BillID          *uuid.UUID         `json:"bill_id"` // Set once a utility bill covers this reading
	Remark          string             `json:"remark"`
}

// NewMeterReading creates a new unbilled meter reading, computing the
// consumption and amount from the supplied readings and rate.
func NewMeterReading(
	plazaID uuid.UUID,
	businessID uuid.UUID,
	meterType MeterType,
	previousReading decimal.Decimal,
	currentReading decimal.Decimal,
	ratePerUnit decimal.Decimal,
	readingDate time.Time,
) (*MeterReading, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Business ID cannot be empty")
	}
	if !meterType.IsValid() {
		return nil, shared.NewDomainError("INVALID_METER_TYPE", "Meter type is not valid")
	}
	if previousReading.IsNegative() || currentReading.IsNegative() {
		return nil, shared.NewDomainError("INVALID_READING", "Readings cannot be negative")
	}
	if ratePerUnit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate per unit cannot be negative")
	}
	if readingDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Reading date is required")
	}

	consumption := ComputeConsumption(previousReading, currentReading)

	return &MeterReading{
		PlazaAggregateRoot: shared.NewPlazaAggregateRoot(plazaID),
		BusinessID:         businessID,
		MeterType:          meterType,
		PreviousReading:    previousReading,
		CurrentReading:     currentReading,
		Consumption:        consumption,
		RatePerUnit:        ratePerUnit,
		Amount:             consumption.Mul(ratePerUnit),
		ReadingDate:        readingDate,
		PaymentStatus:      MeterPaymentStatusUnbilled,
	}, nil
}

// MarkBilled ties the reading to the utility bill that covers it
func (r *MeterReading) MarkBilled(billID uuid.UUID) error {
	if r.PaymentStatus != MeterPaymentStatusUnbilled {
		return shared.NewDomainError("INVALID_STATE", "Reading has already been billed")
	}
	if billID == uuid.Nil {
		return shared.NewDomainError("INVALID_BILL", "Bill ID cannot be empty")
	}
	r.PaymentStatus = MeterPaymentStatusBilled
	r.BillID = &billID
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// MarkPaid records that the covering bill has been settled
func (r *MeterReading) MarkPaid() error {
	if r.PaymentStatus != MeterPaymentStatusBilled {
		return shared.NewDomainError("INVALID_STATE", "Only billed readings can be marked paid")
	}
	r.PaymentStatus = MeterPaymentStatusPaid
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}
