package payments

import (
	"context"
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentFilter defines filtering options for payment queries
type PaymentFilter struct {
	shared.Filter
	BusinessID *uuid.UUID
	BillID     *uuid.UUID
	Method     *PaymentMethod
	FromDate   *time.Time
	ToDate     *time.Time
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByIDForPlaza finds a payment by ID within a plaza
	FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*Payment, error)

	// FindAllForPlaza finds payments in a plaza with filtering
	FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter PaymentFilter) ([]Payment, error)

	// FindByBill finds all payments applied to a bill, newest first
	FindByBill(ctx context.Context, plazaID, billID uuid.UUID) ([]Payment, error)

	// Save creates a payment. Payments are never updated.
	Save(ctx context.Context, payment *Payment) error

	// CountForPlaza counts payments in a plaza with optional filters
	CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter PaymentFilter) (int64, error)

	// SumForPlaza totals payment amounts in a plaza within a date range
	SumForPlaza(ctx context.Context, plazaID uuid.UUID, from, to time.Time) (string, error)
}

// PendingPaymentFilter defines filtering options for pending payment queries
type PendingPaymentFilter struct {
	shared.Filter
	BusinessID *uuid.UUID
	BillID     *uuid.UUID
	Status     *PendingPaymentStatus
}

// PendingPaymentRepository defines the interface for pending payment persistence
type PendingPaymentRepository interface {
	// FindByID finds a pending payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PendingPayment, error)

	// FindByIDForPlaza finds a pending payment by ID within a plaza
	FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*PendingPayment, error)

	// FindAllForPlaza finds pending payments in a plaza with filtering
	FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter PendingPaymentFilter) ([]PendingPayment, error)

	// CountForPlaza counts claims in a plaza with optional filters
	CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter PendingPaymentFilter) (int64, error)

	// CountPendingForPlaza counts claims still awaiting review
	CountPendingForPlaza(ctx context.Context, plazaID uuid.UUID) (int64, error)

	// Save creates or updates a pending payment
	Save(ctx context.Context, pendingPayment *PendingPayment) error
}
