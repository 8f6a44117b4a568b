package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jportela/producao-pro/internal/domain/entity"
	apphttp "github.com/jportela/producao-pro/internal/interfaces/http"
)

type fakeModuleChecker struct {
	active bool
	err    error
}

func (f *fakeModuleChecker) HasActiveModule(_ context.Context, _ string, _ entity.Module) (bool, error) {
	return f.active, f.err
}

func buildModuleApp(checker *fakeModuleChecker) *fiber.App {
	app := fiber.New()
	app.Get("/vendas",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireModule(entity.ModuleVendas, checker),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
	)
	return app
}

func moduleRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/vendas", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireModule_ModuloAtivo_Passa(t *testing.T) {
	app := buildModuleApp(&fakeModuleChecker{active: true})
	resp := moduleRequest(t, app, tokenForRole(t, "vendedor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireModule_ModuloInativo_Retorna403(t *testing.T) {
	app := buildModuleApp(&fakeModuleChecker{active: false})
	resp := moduleRequest(t, app, tokenForRole(t, "vendedor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MODULE_DISABLED")
}

func TestRequireModule_FalhaDeInfra_Retorna503(t *testing.T) {
	app := buildModuleApp(&fakeModuleChecker{err: errors.New("db down")})
	resp := moduleRequest(t, app, tokenForRole(t, "vendedor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MODULE_CHECK_FAILED")
}

func TestRequireModule_SemToken_Retorna401(t *testing.T) {
	app := buildModuleApp(&fakeModuleChecker{active: true})
	resp := moduleRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
