package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apptenancy "github.com/plazafl/backend/internal/application/tenancy"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/tenancy"
	"github.com/plazafl/backend/internal/interfaces/http/dto"
	"github.com/plazafl/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlazaRepo struct {
	byID   map[uuid.UUID]*tenancy.Plaza
	byCode map[string]*tenancy.Plaza
}

func newFakePlazaRepo() *fakePlazaRepo {
	return &fakePlazaRepo{
		byID:   make(map[uuid.UUID]*tenancy.Plaza),
		byCode: make(map[string]*tenancy.Plaza),
	}
}

func (r *fakePlazaRepo) FindByID(_ context.Context, id uuid.UUID) (*tenancy.Plaza, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePlazaRepo) FindByCode(_ context.Context, code string) (*tenancy.Plaza, error) {
	if p, ok := r.byCode[code]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePlazaRepo) FindAll(_ context.Context, _ shared.Filter) ([]tenancy.Plaza, error) {
	plazas := make([]tenancy.Plaza, 0, len(r.byID))
	for _, p := range r.byID {
		plazas = append(plazas, *p)
	}
	return plazas, nil
}

func (r *fakePlazaRepo) FindActive(ctx context.Context) ([]tenancy.Plaza, error) {
	return r.FindAll(ctx, shared.Filter{})
}

func (r *fakePlazaRepo) Save(_ context.Context, plaza *tenancy.Plaza) error {
	r.byID[plaza.ID] = plaza
	r.byCode[plaza.Code] = plaza
	return nil
}

func newPlazaTestRouter(repo tenancy.PlazaRepository) *gin.Engine {
	handler := NewPlazaHandler(apptenancy.NewPlazaService(repo))
	router := gin.New()
	router.POST("/plazas", handler.Create)
	router.GET("/plazas", handler.List)
	router.GET("/plaza", func(c *gin.Context) {
		// Simulate JWT middleware for the single-plaza lookup
		if id := c.GetHeader("X-Test-Plaza-ID"); id != "" {
			c.Set(middleware.JWTPlazaIDKey, id)
		}
		handler.Get(c)
	})
	return router
}

func TestPlazaHandler_Create(t *testing.T) {
	router := newPlazaTestRouter(newFakePlazaRepo())

	body, _ := json.Marshal(gin.H{
		"name": "City Center Plaza",
		"code": "CCP",
		"city": "Lahore",
	})
	req := httptest.NewRequest(http.MethodPost, "/plazas", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestPlazaHandler_CreateDuplicateCode(t *testing.T) {
	repo := newFakePlazaRepo()
	existing, err := tenancy.NewPlaza("Existing", "CCP", "", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), existing))

	router := newPlazaTestRouter(repo)

	body, _ := json.Marshal(gin.H{"name": "Another", "code": "CCP"})
	req := httptest.NewRequest(http.MethodPost, "/plazas", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPlazaHandler_CreateMissingFields(t *testing.T) {
	router := newPlazaTestRouter(newFakePlazaRepo())

	body, _ := json.Marshal(gin.H{"name": "No Code"})
	req := httptest.NewRequest(http.MethodPost, "/plazas", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlazaHandler_Get(t *testing.T) {
	repo := newFakePlazaRepo()
	plaza, err := tenancy.NewPlaza("City Center Plaza", "CCP", "", "Lahore")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), plaza))

	router := newPlazaTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/plaza", nil)
	req.Header.Set("X-Test-Plaza-ID", plaza.ID.String())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "City Center Plaza")
}

func TestPlazaHandler_GetUnauthenticated(t *testing.T) {
	router := newPlazaTestRouter(newFakePlazaRepo())

	req := httptest.NewRequest(http.MethodGet, "/plaza", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
