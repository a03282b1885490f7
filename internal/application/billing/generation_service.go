package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/plazafl/backend/internal/domain/billing"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerationService runs the recurring rent bill batch. It is invoked by an
// external scheduler hitting the cron endpoint, once per day per plaza.
type GenerationService struct {
	billRepo     billing.BillRepository
	businessRepo tenancy.BusinessRepository
	advanceRepo  tenancy.AdvanceRepository
	settingsRepo billing.SettingsRepository
	logger       *zap.Logger
}

// NewGenerationService creates a new GenerationService
func NewGenerationService(
	billRepo billing.BillRepository,
	businessRepo tenancy.BusinessRepository,
	advanceRepo tenancy.AdvanceRepository,
	settingsRepo billing.SettingsRepository,
	logger *zap.Logger,
) *GenerationService {
	return &GenerationService{
		billRepo:     billRepo,
		businessRepo: businessRepo,
		advanceRepo:  advanceRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GenerationStatistics counts the outcomes of one generation run
type GenerationStatistics struct {
	Total     int `json:"total"`
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// GenerationResult is the JSON summary returned to the scheduler
type GenerationResult struct {
	Success       bool                 `json:"success"`
	Message       string               `json:"message"`
	Date          string               `json:"date"`
	GenerationDay int                  `json:"generation_day"`
	Statistics    GenerationStatistics `json:"statistics"`
	Errors        []string             `json:"errors,omitempty"`
}

// GenerateRentBills runs the monthly rent batch for one plaza. Outside the
// plaza's generation day it is a no-op. Each billable business gets one
// PENDING rent bill for the current month unless an active rent advance or
// an existing rent bill already covers the period. Per-business failures
// are collected and the batch continues.
func (s *GenerationService) GenerateRentBills(ctx context.Context, plazaID uuid.UUID, now time.Time) (*GenerationResult, error) {
	settings, err := s.settingsRepo.FindForPlaza(ctx, plazaID)
	if err == shared.ErrNotFound {
		settings = billing.NewSettings(plazaID)
	} else if err != nil {
		return nil, err
	}

	result := &GenerationResult{
		Success:       true,
		Date:          now.Format("2006-01-02"),
		GenerationDay: settings.RentGenerationDay,
	}

	if !settings.IsGenerationDay(now) {
		result.Message = fmt.Sprintf("Not the generation day (day %d); nothing to do", settings.RentGenerationDay)
		return result, nil
	}

	businesses, err := s.businessRepo.FindBillable(ctx, plazaID)
	if err != nil {
		return nil, err
	}

	month := int(now.Month())
	year := now.Year()
	prefix := billing.BillCategoryRent.NumberPrefix()

	numbers, err := s.billRepo.ListNumbers(ctx, plazaID, prefix, year)
	if err != nil {
		return nil, err
	}
	minter := billing.NewNumberMinter()

	result.Statistics.Total = len(businesses)

	for i := range businesses {
		business := &businesses[i]

		advance, err := s.advanceRepo.FindActiveForPeriod(ctx, plazaID, business.ID, tenancy.AdvanceBillTypeRent, month, year)
		if err != nil {
			result.Statistics.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", business.Name, err))
			continue
		}
		if advance != nil {
			s.logger.Debug("skipping business with active advance",
				zap.String("business", business.Name),
				zap.Int("month", month),
				zap.Int("year", year))
			result.Statistics.Skipped++
			continue
		}

		exists, err := s.billRepo.ExistsForPeriod(ctx, plazaID, business.ID, billing.BillCategoryRent, month, year)
		if err != nil {
			result.Statistics.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", business.Name, err))
			continue
		}
		if exists {
			result.Statistics.Skipped++
			continue
		}

		billNumber := minter.Mint(prefix, year, numbers)
		dueDate := now.AddDate(0, 0, settings.DueOffsetDays)

		bill, err := billing.NewBill(
			plazaID,
			billNumber,
			business.ID,
			business.Name,
			billing.BillCategoryRent,
			month,
			year,
			billing.Charges{
				Rent:        business.RentAmount,
				Maintenance: business.MaintenanceAmount,
			},
			now,
			dueDate,
			settings.TermsText(),
		)
		if err != nil {
			result.Statistics.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", business.Name, err))
			continue
		}

		if err := s.billRepo.Save(ctx, bill); err != nil {
			result.Statistics.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", business.Name, err))
			continue
		}

		s.logger.Info("rent bill generated",
			zap.String("bill_number", bill.BillNumber),
			zap.String("business", business.Name),
			zap.String("total", bill.TotalAmount.String()))
		result.Statistics.Generated++
	}

	result.Success = result.Statistics.Failed == 0
	result.Message = fmt.Sprintf("Generated %d bills, skipped %d, failed %d",
		result.Statistics.Generated, result.Statistics.Skipped, result.Statistics.Failed)

	return result, nil
}
