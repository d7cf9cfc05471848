package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/domain/access"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	apphttp "github.com/jhoicas/temucosoft-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/temucosoft-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "temucosoft-test"
	testExpMin    = 60
)

// fakeResolver devuelve el actor registrado por ID; los IDs desconocidos resuelven a un actor
// no autenticado, igual que una cuenta borrada.
type fakeResolver struct {
	actors map[string]access.Actor
	err    error
}

func (r *fakeResolver) ResolveActor(_ context.Context, userID string) (access.Actor, error) {
	if r.err != nil {
		return access.Actor{}, r.err
	}
	return r.actors[userID], nil
}

func activeActor(role entity.Role, companyID string) access.Actor {
	return access.Actor{UserID: testUserID, CompanyID: companyID, Role: role, Active: true, Authenticated: true}
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := pkgjwt.Generate(testJWTSecret, userID, testCompanyID, string(entity.RoleClerk), testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + token
}

// buildAuthApp monta AuthMiddleware y una ruta que devuelve los locals cargados.
func buildAuthApp(resolver apphttp.ActorResolver, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	handlers := append([]fiber.Handler{apphttp.AuthMiddleware(testJWTSecret, resolver)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, body
}

func decodeError(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildAuthApp(&fakeResolver{})

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decodeError(t, body).Code)
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := buildAuthApp(&fakeResolver{})

	cases := map[string]string{
		"sin prefijo Bearer": "Token abc",
		"firma incorrecta":   "Bearer eyJhbGciOiJIUzI1NiJ9.e30.firma",
		"basura":             "Bearer no-es-un-jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", header)
			resp, body := doRequest(t, app, req)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "INVALID_TOKEN", decodeError(t, body).Code)
		})
	}
}

func TestAuthMiddleware_ActorDesdeLaBase(t *testing.T) {
	// El token dice clerk; la cuenta persistida es manager y manda.
	resolver := &fakeResolver{actors: map[string]access.Actor{
		testUserID: activeActor(entity.RoleManager, testCompanyID),
	}}
	app := buildAuthApp(resolver)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearer(t, testUserID))
	resp, body := doRequest(t, app, req)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]string
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, testUserID, got["user_id"])
	assert.Equal(t, testCompanyID, got["company_id"])
	assert.Equal(t, string(entity.RoleManager), got["role"])
}

func TestAuthMiddleware_CuentaBorradaOInactiva(t *testing.T) {
	inactive := activeActor(entity.RoleClerk, testCompanyID)
	inactive.Active = false
	resolver := &fakeResolver{actors: map[string]access.Actor{testUserID: inactive}}
	app := buildAuthApp(resolver)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearer(t, testUserID))
	resp, body := doRequest(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "ACCOUNT_INACTIVE", decodeError(t, body).Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearer(t, "borrado"))
	resp, body = doRequest(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeError(t, body).Code)
}

func TestAuthMiddleware_FalloDeBase(t *testing.T) {
	app := buildAuthApp(&fakeResolver{err: errors.New("conexión rechazada")})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearer(t, testUserID))
	resp, _ := doRequest(t, app, req)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRequireOperation(t *testing.T) {
	resolver := &fakeResolver{actors: map[string]access.Actor{
		testUserID: activeActor(entity.RoleClerk, testCompanyID),
	}}
	app := buildAuthApp(resolver, apphttp.RequireOperation(access.OpViewReports))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearer(t, testUserID))
	resp, body := doRequest(t, app, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeError(t, body).Code)

	resolver.actors[testUserID] = activeActor(entity.RoleManager, testCompanyID)
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearer(t, testUserID))
	resp, _ = doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

type fakeTenants struct {
	active map[string]bool
	err    error
}

func (f *fakeTenants) IsActive(_ context.Context, companyID string) (bool, error) {
	return f.active[companyID], f.err
}

func TestRequireActiveTenant(t *testing.T) {
	resolver := &fakeResolver{actors: map[string]access.Actor{
		testUserID: activeActor(entity.RoleClerk, testCompanyID),
		"sysop":    {UserID: "sysop", Role: entity.RoleSystemOperator, Active: true, Authenticated: true},
	}}
	tenants := &fakeTenants{active: map[string]bool{testCompanyID: false}}
	app := buildAuthApp(resolver, apphttp.RequireActiveTenant(tenants))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearer(t, testUserID))
	resp, body := doRequest(t, app, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "TENANT_INACTIVE", decodeError(t, body).Code)

	// El operador no tiene empresa y siempre pasa.
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearer(t, "sysop"))
	resp, _ = doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	tenants.active[testCompanyID] = true
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearer(t, testUserID))
	resp, _ = doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	tenants.err = errors.New("timeout")
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearer(t, testUserID))
	resp, body = doRequest(t, app, req)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "TENANT_CHECK_FAILED", decodeError(t, body).Code)
}
