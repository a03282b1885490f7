package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	appbilling "github.com/plazafl/backend/internal/application/billing"
	"github.com/plazafl/backend/internal/domain/tenancy"
	"go.uber.org/zap"
)

// CronHandler triggers the scheduled billing jobs over HTTP. It backs the
// endpoints called by external schedulers and is guarded by the cron secret
// middleware, not JWT.
type CronHandler struct {
	BaseHandler
	plazaRepo         tenancy.PlazaRepository
	generationService *appbilling.GenerationService
	billService       *appbilling.BillService
	logger            *zap.Logger
}

// NewCronHandler creates a new CronHandler
func NewCronHandler(
	plazaRepo tenancy.PlazaRepository,
	generationService *appbilling.GenerationService,
	billService *appbilling.BillService,
	logger *zap.Logger,
) *CronHandler {
	return &CronHandler{
		plazaRepo:         plazaRepo,
		generationService: generationService,
		billService:       billService,
		logger:            logger,
	}
}

// CronRunSummary reports a cron run across all active plazas
type CronRunSummary struct {
	Plazas    int            `json:"plazas"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Results   map[string]any `json:"results"`
}

// GenerateBills runs the rent bill generation for every active plaza
func (h *CronHandler) GenerateBills(c *gin.Context) {
	ctx := c.Request.Context()
	plazas, err := h.plazaRepo.FindActive(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	now := time.Now()
	summary := CronRunSummary{Plazas: len(plazas), Results: make(map[string]any, len(plazas))}
	for _, plaza := range plazas {
		result, err := h.generationService.GenerateRentBills(ctx, plaza.ID, now)
		if err != nil {
			summary.Failed++
			summary.Results[plaza.ID.String()] = gin.H{"error": err.Error()}
			h.logger.Error("Cron bill generation failed",
				zap.String("plaza_id", plaza.ID.String()),
				zap.Error(err))
			continue
		}
		summary.Succeeded++
		summary.Results[plaza.ID.String()] = result
	}

	h.Success(c, summary)
}

// SweepOverdue runs the past-due sweep for every active plaza
func (h *CronHandler) SweepOverdue(c *gin.Context) {
	ctx := c.Request.Context()
	plazas, err := h.plazaRepo.FindActive(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	summary := CronRunSummary{Plazas: len(plazas), Results: make(map[string]any, len(plazas))}
	for _, plaza := range plazas {
		result, err := h.billService.SweepOverdue(ctx, plaza.ID)
		if err != nil {
			summary.Failed++
			summary.Results[plaza.ID.String()] = gin.H{"error": err.Error()}
			h.logger.Error("Cron overdue sweep failed",
				zap.String("plaza_id", plaza.ID.String()),
				zap.Error(err))
			continue
		}
		summary.Succeeded++
		summary.Results[plaza.ID.String()] = result
	}

	h.Success(c, summary)
}
