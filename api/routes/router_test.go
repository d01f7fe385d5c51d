package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianalima/joalheria-backend/internal/adminauth"
	"github.com/marianalima/joalheria-backend/internal/catalog"
	"github.com/marianalima/joalheria-backend/pkg/config"
	"github.com/marianalima/joalheria-backend/pkg/enums"
	"github.com/marianalima/joalheria-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubCatalogService struct {
	products []catalog.ProductDTO
}

func (s stubCatalogService) Create(ctx context.Context, input catalog.CreateProductInput) (*catalog.ProductDTO, error) {
	panic("unimplemented")
}

func (s stubCatalogService) Get(ctx context.Context, id uuid.UUID) (*catalog.ProductDTO, error) {
	panic("unimplemented")
}

func (s stubCatalogService) List(ctx context.Context, category *enums.ProductCategory) ([]catalog.ProductDTO, error) {
	return s.products, nil
}

func (s stubCatalogService) Update(ctx context.Context, id uuid.UUID, input catalog.UpdateProductInput) (*catalog.ProductDTO, error) {
	panic("unimplemented")
}

func (s stubCatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (s stubCatalogService) Seed(ctx context.Context) (int, error) {
	return 0, nil
}

func testDeps(t *testing.T) Deps {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.Session.CookieName = "joalheria_session"
	cfg.Admin.Secret = "back-office-secret"
	cfg.Admin.TokenSigningSecret = "signing-secret"
	cfg.Admin.TokenIssuer = "joalheria"

	return Deps{
		Config:         cfg,
		Logger:         logger.New(logger.Options{ServiceName: "test"}),
		DBPinger:       stubPinger{},
		AdminAuth:      adminauth.NewService(cfg.Admin),
		CatalogService: stubCatalogService{products: []catalog.ProductDTO{{Name: "Colar Ponto de Luz"}}},
	}
}

func TestRouterHealthLive(t *testing.T) {
	router := NewRouter(testDeps(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload.Data["status"])
}

func TestRouterListProducts(t *testing.T) {
	router := NewRouter(testDeps(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Colar Ponto de Luz")
}

func TestRouterAdminRoutesRequireCapability(t *testing.T) {
	router := NewRouter(testDeps(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouterCartRequiresToken(t *testing.T) {
	router := NewRouter(testDeps(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterAdminCheckWithoutSession(t *testing.T) {
	router := NewRouter(testDeps(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/check", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"admin":false`)
}
