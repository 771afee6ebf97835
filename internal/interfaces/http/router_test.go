package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-pedidos/internal/application/auth"
	"github.com/jhoicas/inventario-pedidos/internal/application/barcode"
	"github.com/jhoicas/inventario-pedidos/internal/application/order"
	"github.com/jhoicas/inventario-pedidos/internal/application/stock"
	"github.com/jhoicas/inventario-pedidos/internal/application/usecase"
	"github.com/jhoicas/inventario-pedidos/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-pedidos/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/inventario-pedidos/internal/interfaces/http"
	"github.com/jhoicas/inventario-pedidos/internal/plugins"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	users := memory.NewUserRepository(store)
	companies := memory.NewCompanyRepository(store)
	parts := memory.NewPartRepository(store)
	locations := memory.NewLocationRepository(store)
	stocks := memory.NewStockItemRepository(store)
	tracking := memory.NewTrackingRepository(store)
	orders := memory.NewSalesOrderRepository(store)
	allocs := memory.NewAllocationRepository(store)

	registry := plugins.NewRegistry()
	require.NoError(t, plugins.RegisterBuiltins(registry))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}).
			WithBcryptCost(bcrypt.MinCost),
		UserUC:         usecase.NewUserUseCase(users),
		CompanyUC:      usecase.NewCompanyUseCase(companies),
		PartUC:         usecase.NewPartUseCase(parts),
		LocationUC:     usecase.NewLocationUseCase(locations),
		StockUC:        stock.NewStockUseCase(tx, stocks, tracking, allocs, parts, locations),
		SalesOrderUC:   order.NewSalesOrderUseCase(orders, allocs, stocks, companies, parts),
		LedgerUC:       order.NewLedgerUseCase(tx, orders, allocs, stocks, zerolog.Nop()),
		PackingSlipUC:  order.NewPackingSlipUseCase(orders, allocs, stocks, companies, parts, pdf.NewMarotoPackingSlipGenerator()),
		ScanUC:         barcode.NewScanUseCase(registry, stocks, locations, parts, zerolog.Nop()),
		JWTSecret:      testJWTSecret,
		InstanceName:   "Bodega Central",
		MatchThreshold: 65,
	})
	return app
}

// call lanza una petición JSON y devuelve status y cuerpo.
func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m), string(raw))
	return m
}

// login registra un usuario con el rol dado y devuelve su token.
func login(t *testing.T, app *fiber.App, email, role string) string {
	t.Helper()
	code, raw := call(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email": email, "password": "secreto123", "name": role, "role": role,
	})
	require.Equal(t, http.StatusCreated, code, string(raw))
	code, raw = call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": email, "password": "secreto123"})
	require.Equal(t, http.StatusOK, code, string(raw))
	tok, _ := decode(t, raw)["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func create(t *testing.T, app *fiber.App, path, token string, body any) string {
	t.Helper()
	code, raw := call(t, app, http.MethodPost, path, token, body)
	require.Equal(t, http.StatusCreated, code, string(raw))
	id, _ := decode(t, raw)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: pedido → asignación → envío → documento de despacho
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoDePedido(t *testing.T) {
	app := buildAPI(t)
	admin := login(t, app, "admin@bodega.test", "admin")

	customer := create(t, app, "/api/companies", admin, fiber.Map{"name": "ACME", "is_customer": true})
	part := create(t, app, "/api/parts", admin, fiber.Map{"name": "Tornillo M3", "salable": true})
	loc := create(t, app, "/api/locations", admin, fiber.Map{"name": "Estante A"})
	batchA := create(t, app, "/api/stock", admin, fiber.Map{"part_id": part, "location_id": loc, "quantity": 100})
	batchB := create(t, app, "/api/stock", admin, fiber.Map{"part_id": part, "location_id": loc, "quantity": 200})

	so := create(t, app, "/api/sales-orders", admin, fiber.Map{"reference": "SO-0001", "customer_id": customer})
	line := create(t, app, "/api/sales-orders/"+so+"/lines", admin, fiber.Map{"part_id": part, "quantity": 50})

	// línea duplicada
	code, raw := call(t, app, http.MethodPost, "/api/sales-orders/"+so+"/lines", admin, fiber.Map{"part_id": part, "quantity": 5})
	assert.Equal(t, http.StatusConflict, code, string(raw))

	create(t, app, "/api/sales-orders/lines/"+line+"/allocations", admin, fiber.Map{"stock_item_id": batchA, "quantity": 25})
	create(t, app, "/api/sales-orders/lines/"+line+"/allocations", admin, fiber.Map{"stock_item_id": batchB, "quantity": 25})

	code, raw = call(t, app, http.MethodGet, "/api/sales-orders/"+so, admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, decode(t, raw)["fully_allocated"])

	code, raw = call(t, app, http.MethodGet, "/api/stock/"+batchA, admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "75", decode(t, raw)["unallocated_quantity"])

	code, raw = call(t, app, http.MethodPost, "/api/sales-orders/"+so+"/ship", admin, nil)
	require.Equal(t, http.StatusOK, code, string(raw))
	shipment := decode(t, raw)
	assert.Equal(t, float64(2), shipment["allocations_consumed"])

	code, raw = call(t, app, http.MethodGet, "/api/stock/"+batchB, admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "175", decode(t, raw)["quantity"])

	code, raw = call(t, app, http.MethodGet, "/api/sales-orders/lines/"+line, admin, nil)
	require.Equal(t, http.StatusOK, code)
	l := decode(t, raw)
	assert.Equal(t, "50", l["fulfilled"])
	assert.Equal(t, "0", l["allocated"])

	// un pedido enviado no se cancela
	code, raw = call(t, app, http.MethodPost, "/api/sales-orders/"+so+"/cancel", admin, nil)
	assert.Equal(t, http.StatusBadRequest, code, string(raw))

	req := httptest.NewRequest(http.MethodGet, "/api/sales-orders/"+so+"/packing-slip", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "despacho-SO-0001.pdf")
}

func TestAPI_VendedorNoPuedeEnviarNiCancelar(t *testing.T) {
	app := buildAPI(t)
	admin := login(t, app, "admin@bodega.test", "admin")
	seller := login(t, app, "ventas@bodega.test", "vendedor")

	customer := create(t, app, "/api/companies", admin, fiber.Map{"name": "ACME", "is_customer": true})
	so := create(t, app, "/api/sales-orders", seller, fiber.Map{"reference": "SO-0002", "customer_id": customer})

	code, _ := call(t, app, http.MethodPost, "/api/sales-orders/"+so+"/ship", seller, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = call(t, app, http.MethodPost, "/api/sales-orders/"+so+"/cancel", seller, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, raw := call(t, app, http.MethodPost, "/api/sales-orders/"+so+"/cancel", admin, nil)
	require.Equal(t, http.StatusOK, code, string(raw))
	assert.Equal(t, float64(0), decode(t, raw)["allocations_removed"])
}

func TestAPI_PaginacionConTopes(t *testing.T) {
	app := buildAPI(t)
	admin := login(t, app, "admin@bodega.test", "admin")

	code, raw := call(t, app, http.MethodGet, "/api/parts?limit=500&offset=-4", admin, nil)
	require.Equal(t, http.StatusOK, code, string(raw))
	page, _ := decode(t, raw)["page"].(map[string]any)
	assert.Equal(t, float64(100), page["limit"])
	assert.Equal(t, float64(0), page["offset"])

	code, raw = call(t, app, http.MethodGet, "/api/parts?limit=abc", admin, nil)
	require.Equal(t, http.StatusOK, code, string(raw))
	page, _ = decode(t, raw)["page"].(map[string]any)
	assert.Equal(t, float64(20), page["limit"])
}

func TestAPI_ErroresDeValidacion(t *testing.T) {
	app := buildAPI(t)
	admin := login(t, app, "admin@bodega.test", "admin")

	supplier := create(t, app, "/api/companies", admin, fiber.Map{"name": "Proveedor SA"})
	code, raw := call(t, app, http.MethodPost, "/api/sales-orders", admin, fiber.Map{"reference": "SO-9", "customer_id": supplier})
	assert.Equal(t, http.StatusBadRequest, code, "la empresa no es cliente: %s", raw)

	code, _ = call(t, app, http.MethodGet, "/api/sales-orders/no-existe", admin, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, app, http.MethodGet, "/api/sales-orders?status=99", admin, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, app, http.MethodGet, "/api/sales-orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Endpoints de metadatos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_VersionYCodigos(t *testing.T) {
	app := buildAPI(t)

	code, raw := call(t, app, http.MethodGet, "/api/version", "", nil)
	require.Equal(t, http.StatusOK, code)
	v := decode(t, raw)
	assert.Equal(t, "Bodega Central", v["instance"])
	assert.NotEmpty(t, v["server"])

	code, raw = call(t, app, http.MethodGet, "/api/status-codes", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, decode(t, raw), "SalesOrderStatus")

	code, _ = call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth_PingABaseDeDatos(t *testing.T) {
	cases := []struct {
		name     string
		db       apphttp.Pinger
		wantCode int
		want     map[string]any
	}{
		{"sin base de datos", nil, http.StatusOK, map[string]any{"status": "ok"}},
		{"base disponible", pingFunc(func(context.Context) error { return nil }), http.StatusOK,
			map[string]any{"status": "ok", "database": "ok"}},
		{"base caída", pingFunc(func(context.Context) error { return errors.New("connection refused") }), http.StatusServiceUnavailable,
			map[string]any{"status": "degraded", "database": "unreachable"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health", apphttp.NewMetaHandler(nil, "Bodega Central", tc.db).Health)
			code, raw := call(t, app, http.MethodGet, "/health", "", nil)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.want, decode(t, raw))
		})
	}
}

func TestAPI_BarcodeYMatch(t *testing.T) {
	app := buildAPI(t)
	admin := login(t, app, "admin@bodega.test", "admin")

	create(t, app, "/api/companies", admin, fiber.Map{"name": "Texas Instruments", "is_manufacturer": true})
	part := create(t, app, "/api/parts", admin, fiber.Map{"name": "Resistencia 10k", "salable": true})

	code, raw := call(t, app, http.MethodPost, "/api/barcode", admin, fiber.Map{"barcode": fmt.Sprintf(`{"part": %q}`, part)})
	require.Equal(t, http.StatusOK, code, string(raw))
	assert.Equal(t, part, decode(t, raw)["part"])

	code, _ = call(t, app, http.MethodPost, "/api/barcode", admin, fiber.Map{"barcode": "ABC-123"})
	assert.Equal(t, http.StatusNotFound, code)

	code, raw = call(t, app, http.MethodGet, "/api/companies/match?name=Texas%20Instrument", admin, nil)
	require.Equal(t, http.StatusOK, code, string(raw))
	assert.NotEmpty(t, decode(t, raw)["matches"])
}
