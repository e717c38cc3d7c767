package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loretomm/fattura-api/pkg/jwt"
)

const testSecret = "test-secret"

// appConRutaProtegida monta una ruta mínima detrás del middleware que devuelve
// el operador extraído del token.
func appConRutaProtegida() *fiber.App {
	app := fiber.New()
	app.Get("/protegida", AuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"operator": GetOperator(c)})
	})
	return app
}

func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := appConRutaProtegida()

	token, err := jwt.Generate(testSecret, "operador", "fattura-api", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := appConRutaProtegida()

	resp, err := app.Test(httptest.NewRequest("GET", "/protegida", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoIncorrecto(t *testing.T) {
	app := appConRutaProtegida()

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := appConRutaProtegida()

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-jwt")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// Un token firmado con otro secret se rechaza aunque sea estructuralmente válido.
func TestAuthMiddleware_SecretDistinto(t *testing.T) {
	app := appConRutaProtegida()

	token, err := jwt.Generate("otro-secret", "operador", "fattura-api", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := appConRutaProtegida()

	token, err := jwt.Generate(testSecret, "operador", "fattura-api", -5)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
