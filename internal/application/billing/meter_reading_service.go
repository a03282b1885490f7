package billing

import (
	"context"
	"time"

	"github.com/plazafl/backend/internal/domain/billing"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MeterReadingService provides application-level meter reading operations
type MeterReadingService struct {
	readingRepo  billing.MeterReadingRepository
	billRepo     billing.BillRepository
	businessRepo tenancy.BusinessRepository
	settingsRepo billing.SettingsRepository
}

// NewMeterReadingService creates a new MeterReadingService
func NewMeterReadingService(
	readingRepo billing.MeterReadingRepository,
	billRepo billing.BillRepository,
	businessRepo tenancy.BusinessRepository,
	settingsRepo billing.SettingsRepository,
) *MeterReadingService {
	return &MeterReadingService{
		readingRepo:  readingRepo,
		billRepo:     billRepo,
		businessRepo: businessRepo,
		settingsRepo: settingsRepo,
	}
}

// MeterReadingResponse represents a meter reading in API responses
type MeterReadingResponse struct {
	ID              uuid.UUID       `json:"id"`
	PlazaID         uuid.UUID       `json:"plaza_id"`
	BusinessID      uuid.UUID       `json:"business_id"`
	MeterType       string          `json:"meter_type"`
	PreviousReading decimal.Decimal `json:"previous_reading"`
	CurrentReading  decimal.Decimal `json:"current_reading"`
	Consumption     decimal.Decimal `json:"consumption"`
	RatePerUnit     decimal.Decimal `json:"rate_per_unit"`
	Amount          decimal.Decimal `json:"amount"`
	ReadingDate     time.Time       `json:"reading_date"`
	PaymentStatus   string          `json:"payment_status"`
	BillID          *uuid.UUID      `json:"bill_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// RecordMeterReadingRequest represents a request to record a reading.
// The previous reading is resolved automatically from the latest prior
// reading for the same business and meter; the rate falls back to the
// plaza's configured default when omitted.
type RecordMeterReadingRequest struct {
	BusinessID     uuid.UUID        `json:"business_id" binding:"required"`
	MeterType      string           `json:"meter_type" binding:"required"`
	CurrentReading decimal.Decimal  `json:"current_reading" binding:"required"`
	RatePerUnit    *decimal.Decimal `json:"rate_per_unit"`
	ReadingDate    *time.Time       `json:"reading_date"`
	CreatedBy      *uuid.UUID       `json:"-"` // Set from JWT context
}

// MeterReadingListFilter defines filtering options for reading list queries
type MeterReadingListFilter struct {
	BusinessID    *uuid.UUID `form:"business_id"`
	MeterType     string     `form:"meter_type"`
	PaymentStatus string     `form:"payment_status"`
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size"`
}

// RecordReading records a new meter reading with auto-resolved previous value
func (s *MeterReadingService) RecordReading(ctx context.Context, plazaID uuid.UUID, req RecordMeterReadingRequest) (*MeterReadingResponse, error) {
	business, err := s.businessRepo.FindByIDForPlaza(ctx, plazaID, req.BusinessID)
	if err != nil {
		return nil, err
	}

	meterType := billing.MeterType(req.MeterType)
	if !meterType.IsValid() {
		return nil, shared.NewDomainError("INVALID_METER_TYPE", "Meter type is not valid")
	}

	previous := decimal.Zero
	latest, err := s.readingRepo.FindLatest(ctx, plazaID, business.ID, meterType)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		previous = latest.CurrentReading
	}

	rate := decimal.Zero
	if req.RatePerUnit != nil {
		rate = *req.RatePerUnit
	} else {
		settings, err := s.settingsRepo.FindForPlaza(ctx, plazaID)
		if err != nil && err != shared.ErrNotFound {
			return nil, err
		}
		if settings != nil {
			rate = settings.RateFor(meterType)
		}
	}

	readingDate := time.Now()
	if req.ReadingDate != nil {
		readingDate = *req.ReadingDate
	}

	reading, err := billing.NewMeterReading(
		plazaID,
		business.ID,
		meterType,
		previous,
		req.CurrentReading,
		rate,
		readingDate,
	)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		reading.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.readingRepo.Save(ctx, reading); err != nil {
		return nil, err
	}

	return toMeterReadingResponse(reading), nil
}

// GetReading fetches one reading
func (s *MeterReadingService) GetReading(ctx context.Context, plazaID, id uuid.UUID) (*MeterReadingResponse, error) {
	reading, err := s.readingRepo.FindByIDForPlaza(ctx, plazaID, id)
	if err != nil {
		return nil, err
	}
	return toMeterReadingResponse(reading), nil
}

// ListReadings lists readings with filtering and pagination
func (s *MeterReadingService) ListReadings(ctx context.Context, plazaID uuid.UUID, filter MeterReadingListFilter) (*shared.Paginated[MeterReadingResponse], error) {
	repoFilter := billing.MeterReadingFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.BusinessID = filter.BusinessID
	if filter.MeterType != "" {
		meterType := billing.MeterType(filter.MeterType)
		repoFilter.MeterType = &meterType
	}
	if filter.PaymentStatus != "" {
		status := billing.MeterPaymentStatus(filter.PaymentStatus)
		repoFilter.PaymentStatus = &status
	}

	readings, err := s.readingRepo.FindAllForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.readingRepo.CountForPlaza(ctx, plazaID, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]MeterReadingResponse, 0, len(readings))
	for i := range readings {
		items = append(items, *toMeterReadingResponse(&readings[i]))
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// CreateUtilityBillRequest represents a request to bill an unbilled reading
type CreateUtilityBillRequest struct {
	DueDate *time.Time `json:"due_date"`
	Remark  string     `json:"remark"`
}

// CreateUtilityBill issues a utility bill covering one unbilled reading
func (s *MeterReadingService) CreateUtilityBill(ctx context.Context, plazaID, readingID uuid.UUID, req CreateUtilityBillRequest) (*BillResponse, error) {
	reading, err := s.readingRepo.FindByIDForPlaza(ctx, plazaID, readingID)
	if err != nil {
		return nil, err
	}
	if reading.PaymentStatus != billing.MeterPaymentStatusUnbilled {
		return nil, shared.NewDomainError("INVALID_STATE", "Reading has already been billed")
	}

	business, err := s.businessRepo.FindByIDForPlaza(ctx, plazaID, reading.BusinessID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.FindForPlaza(ctx, plazaID)
	if err == shared.ErrNotFound {
		settings = billing.NewSettings(plazaID)
	} else if err != nil {
		return nil, err
	}

	billDate := time.Now()
	dueDate := billDate.AddDate(0, 0, settings.DueOffsetDays)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	charges := billing.Charges{}
	switch reading.MeterType {
	case billing.MeterTypeElectricity:
		charges.Electricity = reading.Amount
	case billing.MeterTypeGas:
		charges.Gas = reading.Amount
	case billing.MeterTypeWater:
		charges.Water = reading.Amount
	}

	prefix := billing.BillCategoryUtility.NumberPrefix()
	numbers, err := s.billRepo.ListNumbers(ctx, plazaID, prefix, billDate.Year())
	if err != nil {
		return nil, err
	}

	bill, err := billing.NewBill(
		plazaID,
		billing.NextBillNumber(prefix, billDate.Year(), numbers),
		business.ID,
		business.Name,
		billing.BillCategoryUtility,
		int(reading.ReadingDate.Month()),
		reading.ReadingDate.Year(),
		charges,
		billDate,
		dueDate,
		settings.TermsText(),
	)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		bill.SetRemark(req.Remark)
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	if err := reading.MarkBilled(bill.ID); err != nil {
		return nil, err
	}
	if err := s.readingRepo.Save(ctx, reading); err != nil {
		return nil, err
	}

	return ToBillResponse(bill), nil
}

func toMeterReadingResponse(r *billing.MeterReading) *MeterReadingResponse {
	return &MeterReadingResponse{
		ID:              r.ID,
		PlazaID:         r.PlazaID,
		BusinessID:      r.BusinessID,
		MeterType:       string(r.MeterType),
		PreviousReading: r.PreviousReading,
		CurrentReading:  r.CurrentReading,
		Consumption:     r.Consumption,
		RatePerUnit:     r.RatePerUnit,
		Amount:          r.Amount,
		ReadingDate:     r.ReadingDate,
		PaymentStatus:   string(r.PaymentStatus),
		BillID:          r.BillID,
		CreatedAt:       r.CreatedAt,
	}
}
