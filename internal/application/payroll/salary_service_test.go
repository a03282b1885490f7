package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/plazafl/backend/internal/domain/payroll"
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

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.Staff), args.Error(1)
}

func (m *MockStaffRepository) FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*payroll.Staff, error) {
	args := m.Called(ctx, plazaID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.Staff), args.Error(1)
}

func (m *MockStaffRepository) FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter payroll.StaffFilter) ([]payroll.Staff, error) {
	args := m.Called(ctx, plazaID, filter)
	return args.Get(0).([]payroll.Staff), args.Error(1)
}

func (m *MockStaffRepository) FindPayable(ctx context.Context, plazaID uuid.UUID) ([]payroll.Staff, error) {
	args := m.Called(ctx, plazaID)
	return args.Get(0).([]payroll.Staff), args.Error(1)
}

func (m *MockStaffRepository) Save(ctx context.Context, staff *payroll.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter payroll.StaffFilter) (int64, error) {
	args := m.Called(ctx, plazaID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockSalaryRecordRepository struct {
	mock.Mock
}

func (m *MockSalaryRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.SalaryRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.SalaryRecord), args.Error(1)
}

func (m *MockSalaryRecordRepository) FindByIDForPlaza(ctx context.Context, plazaID, id uuid.UUID) (*payroll.SalaryRecord, error) {
	args := m.Called(ctx, plazaID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.SalaryRecord), args.Error(1)
}

func (m *MockSalaryRecordRepository) FindAllForPlaza(ctx context.Context, plazaID uuid.UUID, filter payroll.SalaryRecordFilter) ([]payroll.SalaryRecord, error) {
	args := m.Called(ctx, plazaID, filter)
	return args.Get(0).([]payroll.SalaryRecord), args.Error(1)
}

func (m *MockSalaryRecordRepository) ExistsForPeriod(ctx context.Context, plazaID, staffID uuid.UUID, month, year int) (bool, error) {
	args := m.Called(ctx, plazaID, staffID, month, year)
	return args.Bool(0), args.Error(1)
}

func (m *MockSalaryRecordRepository) Save(ctx context.Context, record *payroll.SalaryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSalaryRecordRepository) CountForPlaza(ctx context.Context, plazaID uuid.UUID, filter payroll.SalaryRecordFilter) (int64, error) {
	args := m.Called(ctx, plazaID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalaryRecordRepository) SumPaidForPeriod(ctx context.Context, plazaID uuid.UUID, month, year int) (string, error) {
	args := m.Called(ctx, plazaID, month, year)
	return args.String(0), args.Error(1)
}

// =============================================================================
// Fixtures
// =============================================================================

func newTestStaff(t *testing.T, plazaID uuid.UUID, name string, salary int64) *payroll.Staff {
	t.Helper()
	staff, err := payroll.NewStaff(
		plazaID, name, "Security Guard", "0300-1234567", "35202-1234567-1",
		decimal.NewFromInt(salary),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return staff
}

// =============================================================================
// Tests
// =============================================================================

func TestGenerateSalaries(t *testing.T) {
	plazaID := uuid.New()
	salaryRepo := new(MockSalaryRecordRepository)
	staffRepo := new(MockStaffRepository)
	service := NewSalaryService(salaryRepo, staffRepo, zap.NewNop())

	guard := newTestStaff(t, plazaID, "Muhammad Asif", 35000)
	sweeper := newTestStaff(t, plazaID, "Rashid Ali", 22000)

	staffRepo.On("FindPayable", mock.Anything, plazaID).Return([]payroll.Staff{*guard, *sweeper}, nil)
	salaryRepo.On("ExistsForPeriod", mock.Anything, plazaID, guard.ID, 3, 2025).Return(false, nil)
	salaryRepo.On("ExistsForPeriod", mock.Anything, plazaID, sweeper.ID, 3, 2025).Return(false, nil)

	var saved []*payroll.SalaryRecord
	salaryRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = append(saved, args.Get(1).(*payroll.SalaryRecord))
	}).Return(nil)

	result, err := service.GenerateSalaries(context.Background(), plazaID, GenerateSalariesRequest{Month: 3, Year: 2025})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Statistics.Generated)
	assert.Equal(t, 0, result.Statistics.Skipped)

	require.Len(t, saved, 2)
	assert.Equal(t, "Muhammad Asif", saved[0].StaffName)
	assert.True(t, saved[0].BaseSalary.Equal(decimal.NewFromInt(35000)))
	assert.Equal(t, payroll.SalaryStatusUnpaid, saved[0].Status)
	assert.True(t, saved[1].NetAmount().Equal(decimal.NewFromInt(22000)))
}

func TestGenerateSalaries_SkipsExistingRecords(t *testing.T) {
	plazaID := uuid.New()
	salaryRepo := new(MockSalaryRecordRepository)
	staffRepo := new(MockStaffRepository)
	service := NewSalaryService(salaryRepo, staffRepo, zap.NewNop())

	guard := newTestStaff(t, plazaID, "Muhammad Asif", 35000)
	staffRepo.On("FindPayable", mock.Anything, plazaID).Return([]payroll.Staff{*guard}, nil)
	salaryRepo.On("ExistsForPeriod", mock.Anything, plazaID, guard.ID, 3, 2025).Return(true, nil)

	result, err := service.GenerateSalaries(context.Background(), plazaID, GenerateSalariesRequest{Month: 3, Year: 2025})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.Statistics.Generated)
	assert.Equal(t, 1, result.Statistics.Skipped)
	salaryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGenerateSalaries_CollectsPerStaffErrors(t *testing.T) {
	plazaID := uuid.New()
	salaryRepo := new(MockSalaryRecordRepository)
	staffRepo := new(MockStaffRepository)
	service := NewSalaryService(salaryRepo, staffRepo, zap.NewNop())

	guard := newTestStaff(t, plazaID, "Muhammad Asif", 35000)
	sweeper := newTestStaff(t, plazaID, "Rashid Ali", 22000)

	staffRepo.On("FindPayable", mock.Anything, plazaID).Return([]payroll.Staff{*guard, *sweeper}, nil)
	salaryRepo.On("ExistsForPeriod", mock.Anything, plazaID, guard.ID, 3, 2025).
		Return(false, shared.NewDomainError("DB_ERROR", "connection reset"))
	salaryRepo.On("ExistsForPeriod", mock.Anything, plazaID, sweeper.ID, 3, 2025).Return(false, nil)
	salaryRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	result, err := service.GenerateSalaries(context.Background(), plazaID, GenerateSalariesRequest{Month: 3, Year: 2025})
	require.NoError(t, err)

	// One staff member fails, the run continues for the rest
	assert.False(t, result.Success)
	assert.Equal(t, 1, result.Statistics.Failed)
	assert.Equal(t, 1, result.Statistics.Generated)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Muhammad Asif")
}

func TestPaySalary(t *testing.T) {
	plazaID := uuid.New()
	paidBy := uuid.New()
	salaryRepo := new(MockSalaryRecordRepository)
	service := NewSalaryService(salaryRepo, new(MockStaffRepository), zap.NewNop())

	guard := newTestStaff(t, plazaID, "Muhammad Asif", 35000)
	record, err := payroll.NewSalaryRecord(plazaID, guard, 3, 2025, decimal.NewFromInt(2000), decimal.NewFromInt(500))
	require.NoError(t, err)

	salaryRepo.On("FindByIDForPlaza", mock.Anything, plazaID, record.ID).Return(record, nil)
	salaryRepo.On("Save", mock.Anything, record).Return(nil)

	resp, err := service.PaySalary(context.Background(), plazaID, record.ID, paidBy)
	require.NoError(t, err)

	assert.Equal(t, "PAID", resp.Status)
	assert.True(t, resp.NetAmount.Equal(decimal.NewFromInt(36500)))
	require.NotNil(t, resp.PaidBy)
	assert.Equal(t, paidBy, *resp.PaidBy)
}

func TestPaySalary_AlreadyPaid(t *testing.T) {
	plazaID := uuid.New()
	salaryRepo := new(MockSalaryRecordRepository)
	service := NewSalaryService(salaryRepo, new(MockStaffRepository), zap.NewNop())

	guard := newTestStaff(t, plazaID, "Muhammad Asif", 35000)
	record, err := payroll.NewSalaryRecord(plazaID, guard, 3, 2025, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, record.MarkPaid(uuid.New()))

	salaryRepo.On("FindByIDForPlaza", mock.Anything, plazaID, record.ID).Return(record, nil)

	_, err = service.PaySalary(context.Background(), plazaID, record.ID, uuid.New())
	require.Error(t, err)
	salaryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAdjustSalary_BlockedAfterPayment(t *testing.T) {
	plazaID := uuid.New()
	salaryRepo := new(MockSalaryRecordRepository)
	service := NewSalaryService(salaryRepo, new(MockStaffRepository), zap.NewNop())

	guard := newTestStaff(t, plazaID, "Muhammad Asif", 35000)
	record, err := payroll.NewSalaryRecord(plazaID, guard, 3, 2025, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, record.MarkPaid(uuid.New()))

	salaryRepo.On("FindByIDForPlaza", mock.Anything, plazaID, record.ID).Return(record, nil)

	bonus := decimal.NewFromInt(5000)
	_, err = service.AdjustSalary(context.Background(), plazaID, record.ID, AdjustSalaryRequest{Bonus: &bonus})
	require.Error(t, err)
	salaryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
