package payments

import (
	"context"
	"testing"
	"time"

	"github.com/plazafl/backend/internal/domain/billing"
	"github.com/plazafl/backend/internal/domain/payments"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payments.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*payments.Payment, error) {
	args := m.Called(ctx, plazaID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter payments.PaymentFilter) ([]payments.Payment, error) {
	args := m.Called(ctx, plazaID, filter)
	return args.Get(0).([]payments.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByBill(ctx context.Context, plazaID, billID uuid.UUID) ([]payments.Payment, error) {
	args := m.Called(ctx, plazaID, billID)
	return args.Get(0).([]payments.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *payments.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter payments.PaymentFilter) (int64, error) {
	args := m.Called(ctx, plazaID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) SumForPlaza(ctx context.Context, plazaID uuid.UUID, from, to time.Time) (string, error) {
	args := m.Called(ctx, plazaID, from, to)
	return args.String(0), args.Error(1)
}

type MockPendingPaymentRepository struct {
	mock.Mock
}

func (m *MockPendingPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payments.PendingPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.PendingPayment), args.Error(1)
}

func (m *MockPendingPaymentRepository) FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*payments.PendingPayment, error) {
	args := m.Called(ctx, plazaID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.PendingPayment), args.Error(1)
}

func (m *MockPendingPaymentRepository) FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter payments.PendingPaymentFilter) ([]payments.PendingPayment, error) {
	args := m.Called(ctx, plazaID, filter)
	return args.Get(0).([]payments.PendingPayment), args.Error(1)
}

func (m *MockPendingPaymentRepository) CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter payments.PendingPaymentFilter) (int64, error) {
	args := m.Called(ctx, plazaID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPendingPaymentRepository) CountPendingForPlaza(ctx context.Context, plazaID uuid.UUID) (int64, error) {
	args := m.Called(ctx, plazaID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPendingPaymentRepository) Save(ctx context.Context, pendingPayment *payments.PendingPayment) error {
	args := m.Called(ctx, pendingPayment)
	return args.Error(0)
}

type MockBillRepositoryForPayments struct {
	mock.Mock
}

func (m *MockBillRepositoryForPayments) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepositoryForPayments) FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, plazaID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepositoryForPayments) FindByBillNumber(ctx context.Context, plazaID uuid.UUID, billNumber string) (*billing.Bill, error) {
	args := m.Called(ctx, plazaID, billNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepositoryForPayments) FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter billing.BillFilter) ([]billing.Bill, error) {
	args := m.Called(ctx, plazaID, filter)
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepositoryForPayments) FindUnpaidForBusiness(ctx context.Context, plazaID, businessID uuid.UUID) ([]billing.Bill, error) {
	args := m.Called(ctx, plazaID, businessID)
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepositoryForPayments) FindPastDue(ctx context.Context, plazaID uuid.UUID, now time.Time) ([]billing.Bill, error) {
	args := m.Called(ctx, plazaID, now)
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepositoryForPayments) ExistsForPeriod(ctx context.Context, plazaID, businessID uuid.UUID, category billing.BillCategory, month, year int) (bool, error) {
	args := m.Called(ctx, plazaID, businessID, category, month, year)
	return args.Bool(0), args.Error(1)
}

func (m *MockBillRepositoryForPayments) ListNumbers(ctx context.Context, plazaID uuid.UUID, prefix string, year int) ([]string, error) {
	args := m.Called(ctx, plazaID, prefix, year)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBillRepositoryForPayments) Save(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepositoryForPayments) CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter billing.BillFilter) (int64, error) {
	args := m.Called(ctx, plazaID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepositoryForPayments) SummarizeForPlaza(ctx context.Context, plazaID uuid.UUID) (*billing.BillSummary, error) {
	args := m.Called(ctx, plazaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.BillSummary), args.Error(1)
}

// =============================================================================
// Fixtures
// =============================================================================

func newRentBill(t *testing.T, plazaID, businessID uuid.UUID, number string, month int, amount int64) *billing.Bill {
	t.Helper()
	billDate := time.Date(2025, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	bill, err := billing.NewBill(
		plazaID, number, businessID, "Al-Noor Electronics",
		billing.BillCategoryRent, month, 2025,
		billing.Charges{Rent: decimal.NewFromInt(amount)},
		billDate, billDate.AddDate(0, 0, 15), "",
	)
	require.NoError(t, err)
	return bill
}

// =============================================================================
// Tests
// =============================================================================

func TestRecordPayment_AgainstBill(t *testing.T) {
	plazaID := uuid.New()
	businessID := uuid.New()
	paymentRepo := new(MockPaymentRepository)
	billRepo := new(MockBillRepositoryForPayments)
	service := NewPaymentService(paymentRepo, billRepo, zap.NewNop())

	bill := newRentBill(t, plazaID, businessID, "RENT-2025-001", 3, 30000)
	billRepo.On("FindByIDForPlaza", mock.Anything, plazaID, bill.ID).Return(bill, nil)
	paymentRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	billRepo.On("Save", mock.Anything, bill).Return(nil)

	resp, err := service.RecordPayment(context.Background(), plazaID, RecordPaymentRequest{
		BillID: &bill.ID,
		Amount: decimal.NewFromInt(30000),
		Method: "CASH",
	})
	require.NoError(t, err)

	assert.Equal(t, "PAID", resp.BillStatus)
	assert.Equal(t, billing.BillStatusPaid, bill.Status)
}

func TestRecordPayment_OldestUnpaidFirst(t *testing.T) {
	plazaID := uuid.New()
	businessID := uuid.New()
	paymentRepo := new(MockPaymentRepository)
	billRepo := new(MockBillRepositoryForPayments)
	service := NewPaymentService(paymentRepo, billRepo, zap.NewNop())

	january := newRentBill(t, plazaID, businessID, "RENT-2025-001", 1, 30000)
	february := newRentBill(t, plazaID, businessID, "RENT-2025-002", 2, 30000)

	billRepo.On("FindUnpaidForBusiness", mock.Anything, plazaID, businessID).
		Return([]billing.Bill{*january, *february}, nil)
	paymentRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	var savedBill *billing.Bill
	billRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		savedBill = args.Get(1).(*billing.Bill)
	}).Return(nil)

	resp, err := service.RecordPayment(context.Background(), plazaID, RecordPaymentRequest{
		BusinessID: &businessID,
		Amount:     decimal.NewFromInt(30000),
		Method:     "BANK_TRANSFER",
	})
	require.NoError(t, err)

	// The January bill, being oldest, takes the payment
	require.NotNil(t, savedBill)
	assert.Equal(t, "RENT-2025-001", savedBill.BillNumber)
	assert.Equal(t, billing.BillStatusPaid, savedBill.Status)
	assert.Equal(t, january.ID, resp.BillID)
}

func TestRecordPayment_PartialLeavesBillPending(t *testing.T) {
	plazaID := uuid.New()
	businessID := uuid.New()
	paymentRepo := new(MockPaymentRepository)
	billRepo := new(MockBillRepositoryForPayments)
	service := NewPaymentService(paymentRepo, billRepo, zap.NewNop())

	bill := newRentBill(t, plazaID, businessID, "RENT-2025-001", 3, 30000)
	billRepo.On("FindByIDForPlaza", mock.Anything, plazaID, bill.ID).Return(bill, nil)
	paymentRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	billRepo.On("Save", mock.Anything, bill).Return(nil)

	resp, err := service.RecordPayment(context.Background(), plazaID, RecordPaymentRequest{
		BillID: &bill.ID,
		Amount: decimal.NewFromInt(10000),
		Method: "CASH",
	})
	require.NoError(t, err)

	assert.Equal(t, "PENDING", resp.BillStatus)
	assert.True(t, bill.RemainingAmount().Equal(decimal.NewFromInt(20000)))
}

func TestRecordPayment_NoUnpaidBills(t *testing.T) {
	plazaID := uuid.New()
	businessID := uuid.New()
	paymentRepo := new(MockPaymentRepository)
	billRepo := new(MockBillRepositoryForPayments)
	service := NewPaymentService(paymentRepo, billRepo, zap.NewNop())

	billRepo.On("FindUnpaidForBusiness", mock.Anything, plazaID, businessID).
		Return([]billing.Bill{}, nil)

	_, err := service.RecordPayment(context.Background(), plazaID, RecordPaymentRequest{
		BusinessID: &businessID,
		Amount:     decimal.NewFromInt(5000),
		Method:     "CASH",
	})
	require.Error(t, err)
	paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRecordPayment_NoTarget(t *testing.T) {
	service := NewPaymentService(new(MockPaymentRepository), new(MockBillRepositoryForPayments), zap.NewNop())

	_, err := service.RecordPayment(context.Background(), uuid.New(), RecordPaymentRequest{
		Amount: decimal.NewFromInt(5000),
		Method: "CASH",
	})
	require.Error(t, err)
	domainErr, ok := err.(*shared.DomainError)
	require.True(t, ok)
	assert.Equal(t, "INVALID_TARGET", domainErr.Code)
}
