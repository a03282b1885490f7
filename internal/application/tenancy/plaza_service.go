package tenancy

import (
	"context"
	"time"

	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/tenancy"
	"github.com/google/uuid"
)

// PlazaService provides application-level plaza operations
type PlazaService struct {
	plazaRepo tenancy.PlazaRepository
}

// NewPlazaService creates a new PlazaService
func NewPlazaService(plazaRepo tenancy.PlazaRepository) *PlazaService {
	return &PlazaService{plazaRepo: plazaRepo}
}

// PlazaResponse represents a plaza in API responses
type PlazaResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePlazaRequest represents a request to register a plaza
type CreatePlazaRequest struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code" binding:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// CreatePlaza registers a new plaza
func (s *PlazaService) CreatePlaza(ctx context.Context, req CreatePlazaRequest) (*PlazaResponse, error) {
	existing, err := s.plazaRepo.FindByCode(ctx, req.Code)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("CODE_TAKEN", "Plaza code is already in use")
	}

	plaza, err := tenancy.NewPlaza(req.Name, req.Code, req.Address, req.City)
	if err != nil {
		return nil, err
	}

	if err := s.plazaRepo.Save(ctx, plaza); err != nil {
		return nil, err
	}

	return toPlazaResponse(plaza), nil
}

// GetPlaza fetches one plaza
func (s *PlazaService) GetPlaza(ctx context.Context, id uuid.UUID) (*PlazaResponse, error) {
	plaza, err := s.plazaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPlazaResponse(plaza), nil
}

// ListPlazas lists all plazas
func (s *PlazaService) ListPlazas(ctx context.Context) ([]PlazaResponse, error) {
	plazas, err := s.plazaRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	items := make([]PlazaResponse, 0, len(plazas))
	for i := range plazas {
		items = append(items, *toPlazaResponse(&plazas[i]))
	}
	return items, nil
}

func toPlazaResponse(p *tenancy.Plaza) *PlazaResponse {
	return &PlazaResponse{
		ID:        p.ID,
		Name:      p.Name,
		Code:      p.Code,
		Address:   p.Address,
		City:      p.City,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
