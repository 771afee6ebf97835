package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pedidos/internal/application/dto"
	apphttp "github.com/jhoicas/inventario-pedidos/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inventario-pedidos/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "inventario-pedidos-test"
	testExpMin    = 60
)

// guardedApp expone GET /guarded detrás de AuthMiddleware + RequireRole(roles...).
func guardedApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireRole(roles...), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
	})
	return app
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// hit devuelve status y código de error (vacío si la respuesta no es un ErrorResponse).
func hit(t *testing.T, app *fiber.App, authorization string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name     string
		allowed  []string
		role     string
		wantCode int
		wantErr  string
	}{
		{"bodeguero en ruta de bodega", []string{"admin", "bodeguero"}, "bodeguero", http.StatusOK, ""},
		{"vendedor en ruta de bodega", []string{"admin", "bodeguero"}, "vendedor", http.StatusForbidden, "FORBIDDEN"},
		{"bodeguero en ruta de ventas", []string{"admin", "vendedor"}, "bodeguero", http.StatusForbidden, "FORBIDDEN"},
		{"rol del token en mayúsculas", []string{"admin", "bodeguero"}, "Bodeguero", http.StatusOK, ""},
		{"rol permitido declarado en mayúsculas", []string{"ADMIN"}, "admin", http.StatusOK, ""},
		{"token sin rol", []string{"admin"}, "", http.StatusUnauthorized, "MISSING_ROLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, errCode := hit(t, guardedApp(tc.allowed...), bearer(t, tc.role))
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantErr, errCode)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_RechazaAntesDelRol(t *testing.T) {
	app := guardedApp("admin")
	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, -1)
	require.NoError(t, err)
	foreign, err := pkgjwt.Generate("otro-secreto", testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	cases := map[string]struct {
		header  string
		wantErr string
	}{
		"sin header":     {"", "MISSING_TOKEN"},
		"sin esquema":    {"abc.def.ghi", "INVALID_TOKEN"},
		"token expirado": {"Bearer " + expired, "INVALID_TOKEN"},
		"otro secreto":   {"Bearer " + foreign, "INVALID_TOKEN"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			code, errCode := hit(t, app, tc.header)
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.Equal(t, tc.wantErr, errCode)
		})
	}
}

func TestAuthMiddleware_CargaUsuarioYRol(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", bearer(t, "vendedor"))
	resp, err := guardedApp("vendedor").Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "vendedor", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Reparto bodega / ventas en las rutas del libro de pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestRutasDelLibro_BodegaYVentas(t *testing.T) {
	app := buildAPI(t)
	admin := login(t, app, "admin@bodega.test", "admin")
	keeper := login(t, app, "bodega@bodega.test", "bodeguero")
	seller := login(t, app, "ventas@bodega.test", "vendedor")

	customer := create(t, app, "/api/companies", seller, fiber.Map{"name": "ACME", "is_customer": true})
	part := create(t, app, "/api/parts", admin, fiber.Map{"name": "Tornillo M3", "salable": true})
	batch := create(t, app, "/api/stock", keeper, fiber.Map{"part_id": part, "quantity": 40})

	// ventas abre el pedido y sus líneas; bodega no
	code, _ := call(t, app, http.MethodPost, "/api/sales-orders", keeper, fiber.Map{"reference": "SO-B", "customer_id": customer})
	assert.Equal(t, http.StatusForbidden, code)
	so := create(t, app, "/api/sales-orders", seller, fiber.Map{"reference": "SO-1", "customer_id": customer})
	code, _ = call(t, app, http.MethodPost, "/api/sales-orders/"+so+"/lines", keeper, fiber.Map{"part_id": part, "quantity": 10})
	assert.Equal(t, http.StatusForbidden, code)
	line := create(t, app, "/api/sales-orders/"+so+"/lines", seller, fiber.Map{"part_id": part, "quantity": 10})

	// bodega asigna, libera y cancela; ventas no
	code, _ = call(t, app, http.MethodPost, "/api/sales-orders/lines/"+line+"/allocations", seller, fiber.Map{"stock_item_id": batch, "quantity": 10})
	assert.Equal(t, http.StatusForbidden, code)
	alloc := create(t, app, "/api/sales-orders/lines/"+line+"/allocations", keeper, fiber.Map{"stock_item_id": batch, "quantity": 10})

	code, _ = call(t, app, http.MethodDelete, "/api/sales-orders/allocations/"+alloc, seller, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = call(t, app, http.MethodPost, "/api/sales-orders/"+so+"/cancel", seller, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = call(t, app, http.MethodPost, "/api/sales-orders/"+so+"/ship", seller, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, raw := call(t, app, http.MethodPost, "/api/sales-orders/"+so+"/cancel", keeper, nil)
	require.Equal(t, http.StatusOK, code, string(raw))
	assert.Equal(t, float64(1), decode(t, raw)["allocations_removed"])

	// ambos consultan
	code, _ = call(t, app, http.MethodGet, "/api/sales-orders/lines/"+line, seller, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(t, app, http.MethodGet, "/api/sales-orders/"+so, keeper, nil)
	assert.Equal(t, http.StatusOK, code)
}
