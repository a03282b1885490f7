package billing

import (
	"context"
	"time"

	"github.com/plazafl/backend/internal/domain/billing"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettingsCache caches per-plaza billing settings between reads. The cron
// run and every bill creation consult settings, so reads dominate writes.
type SettingsCache interface {
	Get(ctx context.Context, plazaID uuid.UUID) (*billing.Settings, bool)
	Set(ctx context.Context, plazaID uuid.UUID, settings *billing.Settings)
	Invalidate(ctx context.Context, plazaID uuid.UUID)
}

// SettingsService provides application-level billing settings operations
type SettingsService struct {
	settingsRepo billing.SettingsRepository
	cache        SettingsCache
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo billing.SettingsRepository, cache SettingsCache) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		cache:        cache,
	}
}

// SettingsResponse represents billing settings in API responses
type SettingsResponse struct {
	PlazaID            uuid.UUID       `json:"plaza_id"`
	RentGenerationDay  int             `json:"rent_generation_day"`
	DueOffsetDays      int             `json:"due_offset_days"`
	ElectricityRate    decimal.Decimal `json:"electricity_rate"`
	GasRate            decimal.Decimal `json:"gas_rate"`
	WaterRate          decimal.Decimal `json:"water_rate"`
	TermsAndConditions []string        `json:"terms_and_conditions"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// UpdateSettingsRequest represents a request to update billing settings
type UpdateSettingsRequest struct {
	RentGenerationDay  int             `json:"rent_generation_day" binding:"required"`
	DueOffsetDays      int             `json:"due_offset_days" binding:"required"`
	ElectricityRate    decimal.Decimal `json:"electricity_rate"`
	GasRate            decimal.Decimal `json:"gas_rate"`
	WaterRate          decimal.Decimal `json:"water_rate"`
	TermsAndConditions []string        `json:"terms_and_conditions"`
}

// GetSettings fetches the plaza's billing settings, creating defaults on
// first access
func (s *SettingsService) GetSettings(ctx context.Context, plazaID uuid.UUID) (*SettingsResponse, error) {
	if cached, ok := s.cache.Get(ctx, plazaID); ok {
		return toSettingsResponse(cached), nil
	}

	settings, err := s.settingsRepo.FindForPlaza(ctx, plazaID)
	if err == shared.ErrNotFound {
		settings = billing.NewSettings(plazaID)
		if err := s.settingsRepo.Save(ctx, settings); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, plazaID, settings)
	return toSettingsResponse(settings), nil
}

// UpdateSettings replaces the plaza's billing settings
func (s *SettingsService) UpdateSettings(ctx context.Context, plazaID uuid.UUID, req UpdateSettingsRequest) (*SettingsResponse, error) {
	settings, err := s.settingsRepo.FindForPlaza(ctx, plazaID)
	if err == shared.ErrNotFound {
		settings = billing.NewSettings(plazaID)
	} else if err != nil {
		return nil, err
	}

	if err := settings.SetRentGenerationDay(req.RentGenerationDay); err != nil {
		return nil, err
	}
	if err := settings.SetDueOffsetDays(req.DueOffsetDays); err != nil {
		return nil, err
	}
	if err := settings.SetMeterRates(req.ElectricityRate, req.GasRate, req.WaterRate); err != nil {
		return nil, err
	}
	settings.SetTerms(req.TermsAndConditions)

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, plazaID)

	return toSettingsResponse(settings), nil
}

func toSettingsResponse(s *billing.Settings) *SettingsResponse {
	return &SettingsResponse{
		PlazaID:            s.PlazaID,
		RentGenerationDay:  s.RentGenerationDay,
		DueOffsetDays:      s.DueOffsetDays,
		ElectricityRate:    s.ElectricityRate,
		GasRate:            s.GasRate,
		WaterRate:          s.WaterRate,
		TermsAndConditions: s.TermsAndConditions,
		UpdatedAt:          s.UpdatedAt,
	}
}
