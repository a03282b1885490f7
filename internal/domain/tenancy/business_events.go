package tenancy

import (
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BusinessCreatedEvent is raised when a new business is onboarded
type BusinessCreatedEvent struct {
	shared.BaseDomainEvent
	BusinessID uuid.UUID       `json:"business_id"`
	Name       string          `json:"name"`
	ShopNumber string          `json:"shop_number"`
	RentAmount decimal.Decimal `json:"rent_amount"`
	LeaseStart time.Time       `json:"lease_start"`
}

// EventType returns the event type name
func (e *BusinessCreatedEvent) EventType() string {
	return "BusinessCreated"
}

// NewBusinessCreatedEvent creates a new BusinessCreatedEvent
func NewBusinessCreatedEvent(b *Business) *BusinessCreatedEvent {
	return &BusinessCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BusinessCreated", "Business", b.ID, b.PlazaID),
		BusinessID:      b.ID,
		Name:            b.Name,
		ShopNumber:      b.ShopNumber,
		RentAmount:      b.RentAmount,
		LeaseStart:      b.LeaseStart,
	}
}

// BusinessTerminatedEvent is raised when a lease is terminated
type BusinessTerminatedEvent struct {
	shared.BaseDomainEvent
	BusinessID uuid.UUID  `json:"business_id"`
	Name       string     `json:"name"`
	Reason     string     `json:"reason"`
	LeaseEnd   *time.Time `json:"lease_end"`
}

// EventType returns the event type name
func (e *BusinessTerminatedEvent) EventType() string {
	return "BusinessTerminated"
}

// NewBusinessTerminatedEvent creates a new BusinessTerminatedEvent
func NewBusinessTerminatedEvent(b *Business) *BusinessTerminatedEvent {
	return &BusinessTerminatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BusinessTerminated", "Business", b.ID, b.PlazaID),
		BusinessID:      b.ID,
		Name:            b.Name,
		Reason:          b.TerminationReason,
		LeaseEnd:        b.LeaseEnd,
	}
}

// AdvanceSettledEvent is raised when an advance is consumed by a billing cycle
type AdvanceSettledEvent struct {
	shared.BaseDomainEvent
	AdvanceID  uuid.UUID       `json:"advance_id"`
	BusinessID uuid.UUID       `json:"business_id"`
	BillType   string          `json:"bill_type"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Amount     decimal.Decimal `json:"amount"`
}

// EventType returns the event type name
func (e *AdvanceSettledEvent) EventType() string {
	return "AdvanceSettled"
}

// NewAdvanceSettledEvent creates a new AdvanceSettledEvent
func NewAdvanceSettledEvent(a *Advance) *AdvanceSettledEvent {
	return &AdvanceSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("AdvanceSettled", "Advance", a.ID, a.PlazaID),
		AdvanceID:       a.ID,
		BusinessID:      a.BusinessID,
		BillType:        string(a.BillType),
		Month:           a.Month,
		Year:            a.Year,
		Amount:          a.Amount,
	}
}
