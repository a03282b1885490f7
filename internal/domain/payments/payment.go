package payments

import (
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodOnline       PaymentMethod = "ONLINE"
)

// IsValid checks if the method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCheque, PaymentMethodOnline:
		return true
	}
	return false
}

// Payment is one confirmed payment applied against a bill. Payments are
// append-only: corrections are made by waving off or cancelling on the bill
// side, never by editing a payment row.
type Payment struct {
	shared.PlazaAggregateRoot
	BillID      uuid.UUID       `json:"bill_id"`
	BusinessID  uuid.UUID       `json:"business_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	PaymentDate time.Time       `json:"payment_date"`
	Reference   string          `json:"reference"` // Cheque number, transaction ID
	ReceivedBy  *uuid.UUID      `json:"received_by"`
	Remark      string          `json:"remark"`
}

// NewPayment creates a confirmed payment record
func NewPayment(
	plazaID uuid.UUID,
	billID uuid.UUID,
	businessID uuid.UUID,
	amount valueobject.Money,
	method PaymentMethod,
	paymentDate time.Time,
	reference string,
) (*Payment, error) {
	if billID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BILL", "Bill ID cannot be empty")
	}
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Business ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method is not valid")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	p := &Payment{
		PlazaAggregateRoot: shared.NewPlazaAggregateRoot(plazaID),
		BillID:             billID,
		BusinessID:         businessID,
		Amount:             amount.Amount(),
		Method:             method,
		PaymentDate:        paymentDate,
		Reference:          reference,
	}

	p.AddDomainEvent(NewPaymentRecordedEvent(p))

	return p, nil
}

// SetReceivedBy records the admin who took the payment
func (p *Payment) SetReceivedBy(userID uuid.UUID) {
	p.ReceivedBy = &userID
	p.UpdatedAt = time.Now()
}

// SetRemark sets the remark
func (p *Payment) SetRemark(remark string) {
	p.Remark = remark
	p.UpdatedAt = time.Now()
}

// GetAmountMoney returns the amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPKR(p.Amount)
}
