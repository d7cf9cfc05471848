package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/temucosoft-api/internal/application/auth"
	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/application/usecase"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	apphttp "github.com/jhoicas/temucosoft-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/temucosoft-api/pkg/jwt"
)

// Repositorios en memoria para levantar el router completo sin Postgres.

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[u.ID] = u
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.byID {
		if companyID == "" || u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

type memPlans struct {
	mu    sync.Mutex
	plans []*entity.SubscriptionPlan
}

func (r *memPlans) Create(_ context.Context, p *entity.SubscriptionPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = append(r.plans, p)
	return nil
}

func (r *memPlans) GetByID(_ context.Context, id string) (*entity.SubscriptionPlan, error) {
	for _, p := range r.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memPlans) GetByName(_ context.Context, name string) (*entity.SubscriptionPlan, error) {
	for _, p := range r.plans {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memPlans) List(_ context.Context) ([]*entity.SubscriptionPlan, error) {
	return r.plans, nil
}

type memCompanies struct {
	byID map[string]*entity.Company
}

func (r *memCompanies) Create(_ context.Context, c *entity.Company) error {
	r.byID[c.ID] = c
	return nil
}

func (r *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return r.byID[id], nil
}

func (r *memCompanies) GetByRUT(_ context.Context, rut string) (*entity.Company, error) {
	for _, c := range r.byID {
		if c.RUT == rut {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCompanies) Update(_ context.Context, c *entity.Company) error {
	r.byID[c.ID] = c
	return nil
}

func (r *memCompanies) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	out := make([]*entity.Company, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

type memProducts struct {
	byID map[string]*entity.Product
}

func (r *memProducts) Create(_ context.Context, p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.byID[id], nil
}

func (r *memProducts) Update(_ context.Context, p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *memProducts) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *memProducts) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if companyID == "" || p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

type routerFixture struct {
	app       *fiber.App
	companies *memCompanies
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &memUsers{byID: map[string]*entity.User{
		"u-op":    {ID: "u-op", Username: "superadmin", PasswordHash: string(hash), Role: entity.RoleSystemOperator, IsActive: true},
		"u-clerk": {ID: "u-clerk", CompanyID: "c1", Username: "caja1", PasswordHash: string(hash), Role: entity.RoleClerk, IsActive: true},
	}}
	plans := &memPlans{}
	companies := &memCompanies{byID: map[string]*entity.Company{
		"c1": {ID: "c1", Name: "Almacén Los Aromos", RUT: "99776655-5", IsActive: true, SubscriptionStatus: entity.SubscriptionInactive},
	}}

	products := &memProducts{byID: map[string]*entity.Product{
		"p1": {ID: "p1", CompanyID: "c1", SKU: "HRN-01", Name: "Harina", Price: decimal.NewFromInt(1290), Cost: decimal.NewFromInt(800)},
		"p2": {ID: "p2", CompanyID: "c2", SKU: "AZC-01", Name: "Azúcar", Price: decimal.NewFromInt(990)},
	}}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer, RefreshWindowMinutes: 30}),
		ProductUC:    usecase.NewProductUseCase(products, companies),
		PlanUC:       usecase.NewPlanUseCase(plans),
		UserUC:       usecase.NewUserUseCase(users, companies),
		CompanyUC:    usecase.NewCompanyUseCase(companies),
		TenantStatus: usecase.NewTenantStatusService(companies),
		JWTSecret:    testJWTSecret,
	})
	return &routerFixture{app: app, companies: companies}
}

func (f *routerFixture) login(t *testing.T, username string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"`+username+`","password":"clave-segura"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body := doRequest(t, f.app, req)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	return "Bearer " + out.Token
}

func TestRouter_LoginYPlanes(t *testing.T) {
	f := newRouterFixture(t)
	opToken := f.login(t, "superadmin")

	req := httptest.NewRequest(http.MethodPost, "/api/plans", strings.NewReader(`{"name":"basic","max_users":3,"price":"9.99"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", opToken)
	resp, body := doRequest(t, f.app, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	clerkToken := f.login(t, "caja1")
	req = httptest.NewRequest(http.MethodGet, "/api/plans", nil)
	req.Header.Set("Authorization", clerkToken)
	resp, body = doRequest(t, f.app, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.PlanResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "basic", list[0].Name)
	assert.Equal(t, "9.99", list[0].Price.StringFixed(2))

	req = httptest.NewRequest(http.MethodPost, "/api/plans", strings.NewReader(`{"name":"premium","max_users":999,"price":"99.99"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", clerkToken)
	resp, _ = doRequest(t, f.app, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_LoginValidaCampos(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"caja1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body := doRequest(t, f.app, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, body).Fields, "password")

	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"caja1","password":"otra"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body = doRequest(t, f.app, req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, body).Code)
}

func TestRouter_EmpresaDesactivadaBloqueaSusCuentas(t *testing.T) {
	f := newRouterFixture(t)
	clerkToken := f.login(t, "caja1")

	f.companies.byID["c1"].IsActive = false

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", clerkToken)
	resp, body := doRequest(t, f.app, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "TENANT_INACTIVE", decodeError(t, body).Code)
}

func TestRouter_RutaProtegidaSinToken(t *testing.T) {
	f := newRouterFixture(t)

	resp, _ := doRequest(t, f.app, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_RefreshToken(t *testing.T) {
	f := newRouterFixture(t)

	expired, err := pkgjwt.Generate(testJWTSecret, "u-clerk", "c1", "clerk", testIssuer, -5)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(`{"token":"`+expired+`"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body := doRequest(t, f.app, req)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)

	req = httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	resp, _ = doRequest(t, f.app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "el token renovado autentica")

	req = httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(`{"token":"basura"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = doRequest(t, f.app, req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body = doRequest(t, f.app, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, body).Fields, "token")
}

func TestRouter_DetallePublicoDeProducto(t *testing.T) {
	f := newRouterFixture(t)

	resp, body := doRequest(t, f.app, httptest.NewRequest(http.MethodGet, "/api/shop/c1/products/p1", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var item dto.CatalogProductResponse
	require.NoError(t, json.Unmarshal(body, &item))
	assert.Equal(t, "Harina", item.Name)
	assert.NotContains(t, string(body), "cost", "el catálogo público no expone costos")

	resp, _ = doRequest(t, f.app, httptest.NewRequest(http.MethodGet, "/api/shop/c1/products/p2", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
