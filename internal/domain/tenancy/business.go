package tenancy

import (
	"fmt"
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BusinessStatus represents the occupancy status of a business
type BusinessStatus string

const (
	BusinessStatusActive     BusinessStatus = "ACTIVE"     // Currently occupying and billed
	BusinessStatusInactive   BusinessStatus = "INACTIVE"   // Temporarily not billed
	BusinessStatusTerminated BusinessStatus = "TERMINATED" // Lease ended, record retained
)

// IsValid checks if the status is a valid BusinessStatus
func (s BusinessStatus) IsValid() bool {
	switch s {
	case BusinessStatusActive, BusinessStatusInactive, BusinessStatusTerminated:
		return true
	}
	return false
}

// String returns the string representation of BusinessStatus
func (s BusinessStatus) String() string {
	return string(s)
}

// Business represents a tenant shop occupying space in a plaza.
// Businesses are never hard-deleted; the lease ends with a status change.
type Business struct {
	shared.PlazaAggregateRoot
	Name                  string          `json:"name"`
	OwnerName             string          `json:"owner_name"`
	Phone                 string          `json:"phone"`
	Email                 string          `json:"email"`
	FloorNumber           string          `json:"floor_number"`
	ShopNumber            string          `json:"shop_number"`
	RentAmount            decimal.Decimal `json:"rent_amount"`
	MaintenanceAmount     decimal.Decimal `json:"maintenance_amount"`
	LeaseStart            time.Time       `json:"lease_start"`
	LeaseEnd              *time.Time      `json:"lease_end"`
	Status                BusinessStatus  `json:"status"`
	RentManagementEnabled bool            `json:"rent_management_enabled"`
	TerminatedAt          *time.Time      `json:"terminated_at"`
	TerminationReason     string          `json:"termination_reason"`
}

// NewBusiness creates a new business record in ACTIVE status
func NewBusiness(
	plazaID uuid.UUID,
	name string,
	ownerName string,
	phone string,
	shopNumber string,
	floorNumber string,
	rentAmount valueobject.Money,
	maintenanceAmount valueobject.Money,
	leaseStart time.Time,
) (*Business, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Business name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Business name cannot exceed 200 characters")
	}
	if shopNumber == "" {
		return nil, shared.NewDomainError("INVALID_SHOP_NUMBER", "Shop number cannot be empty")
	}
	if rentAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Rent amount cannot be negative")
	}
	if maintenanceAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Maintenance amount cannot be negative")
	}
	if leaseStart.IsZero() {
		return nil, shared.NewDomainError("INVALID_LEASE", "Lease start date is required")
	}

	b := &Business{
		PlazaAggregateRoot:    shared.NewPlazaAggregateRoot(plazaID),
		Name:                  name,
		OwnerName:             ownerName,
		Phone:                 phone,
		ShopNumber:            shopNumber,
		FloorNumber:           floorNumber,
		RentAmount:            rentAmount.Amount(),
		MaintenanceAmount:     maintenanceAmount.Amount(),
		LeaseStart:            leaseStart,
		Status:                BusinessStatusActive,
		RentManagementEnabled: true,
	}

	b.AddDomainEvent(NewBusinessCreatedEvent(b))

	return b, nil
}

// UpdateContact updates the contact details
func (b *Business) UpdateContact(ownerName, phone, email string) {
	b.OwnerName = ownerName
	b.Phone = phone
	b.Email = email
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// UpdateLocation updates the floor and shop number
func (b *Business) UpdateLocation(floorNumber, shopNumber string) error {
	if shopNumber == "" {
		return shared.NewDomainError("INVALID_SHOP_NUMBER", "Shop number cannot be empty")
	}
	b.FloorNumber = floorNumber
	b.ShopNumber = shopNumber
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// UpdateCharges updates the configured monthly rent and maintenance amounts.
// Already-generated bills keep the amounts they were created with.
func (b *Business) UpdateCharges(rentAmount, maintenanceAmount valueobject.Money) error {
	if rentAmount.IsNegative() || maintenanceAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Charges cannot be negative")
	}
	b.RentAmount = rentAmount.Amount()
	b.MaintenanceAmount = maintenanceAmount.Amount()
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// SetRentManagement toggles inclusion in the recurring rent bill run
func (b *Business) SetRentManagement(enabled bool) {
	b.RentManagementEnabled = enabled
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// Deactivate marks the business inactive. Inactive businesses are skipped by billing.
func (b *Business) Deactivate() error {
	if b.Status == BusinessStatusTerminated {
		return shared.NewDomainError("INVALID_STATE", "Cannot deactivate a terminated business")
	}
	b.Status = BusinessStatusInactive
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Activate marks the business active again
func (b *Business) Activate() error {
	if b.Status == BusinessStatusTerminated {
		return shared.NewDomainError("INVALID_STATE", "Cannot activate a terminated business")
	}
	b.Status = BusinessStatusActive
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Terminate ends the lease. Terminal state.
func (b *Business) Terminate(reason string, leaseEnd time.Time) error {
	if b.Status == BusinessStatusTerminated {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Business %s is already terminated", b.Name))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Termination reason is required")
	}

	now := time.Now()
	b.Status = BusinessStatusTerminated
	b.TerminatedAt = &now
	b.TerminationReason = reason
	b.LeaseEnd = &leaseEnd
	b.RentManagementEnabled = false
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBusinessTerminatedEvent(b))

	return nil
}

// IsActive returns true if the business is currently active
func (b *Business) IsActive() bool {
	return b.Status == BusinessStatusActive
}

// IsBillable returns true if the recurring billing run should consider this business
func (b *Business) IsBillable() bool {
	return b.Status == BusinessStatusActive && b.RentManagementEnabled
}

// GetRentAmountMoney returns the rent amount as Money
func (b *Business) GetRentAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPKR(b.RentAmount)
}

// GetMaintenanceAmountMoney returns the maintenance amount as Money
func (b *Business) GetMaintenanceAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPKR(b.MaintenanceAmount)
}
