package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pedidos/internal/application/auth"
	"github.com/jhoicas/inventario-pedidos/internal/application/barcode"
	"github.com/jhoicas/inventario-pedidos/internal/application/order"
	"github.com/jhoicas/inventario-pedidos/internal/application/stock"
	"github.com/jhoicas/inventario-pedidos/internal/application/usecase"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	CompanyUC      *usecase.CompanyUseCase
	PartUC         *usecase.PartUseCase
	LocationUC     *usecase.LocationUseCase
	StockUC        *stock.StockUseCase
	SalesOrderUC   *order.SalesOrderUseCase
	LedgerUC       *order.LedgerUseCase
	PackingSlipUC  *order.PackingSlipUseCase
	ScanUC         *barcode.ScanUseCase
	DB             Pinger // nil con almacenamiento en memoria
	JWTSecret      string
	InstanceName   string
	MatchThreshold int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	meta := NewMetaHandler(deps.ScanUC, deps.InstanceName, deps.DB)
	app.Get("/health", meta.Health)

	api := app.Group("/api")
	api.Get("/version", meta.Version)
	api.Get("/status-codes", meta.StatusCodes)
	api.Get("/openapi.json", meta.OpenAPI)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/barcode", meta.Barcode)

	staff := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor)
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	sales := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Catálogo: lectura para todos, alta/edición para admin
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.MatchThreshold)
	companies.Get("/", staff, companyHandler.List)
	companies.Get("/match", staff, companyHandler.MatchManufacturers)
	companies.Post("/", sales, companyHandler.Create)
	companies.Get("/:id", staff, companyHandler.GetByID)

	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC)
	parts.Get("/", staff, partHandler.List)
	parts.Post("/", RequireRole(entity.RoleAdmin), partHandler.Create)
	parts.Get("/:id", staff, partHandler.GetByID)
	parts.Put("/:id", RequireRole(entity.RoleAdmin), partHandler.Update)

	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", staff, locationHandler.List)
	locations.Post("/", warehouse, locationHandler.Create)
	locations.Get("/:id", staff, locationHandler.GetByID)

	// Existencias: mutaciones solo bodega
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Get("/", staff, stockHandler.ListByPart)
	stockGroup.Post("/", warehouse, stockHandler.Create)
	stockGroup.Get("/:id", staff, stockHandler.GetByID)
	stockGroup.Get("/:id/tracking", staff, stockHandler.Tracking)
	stockGroup.Post("/:id/add", warehouse, stockHandler.Add)
	stockGroup.Post("/:id/take", warehouse, stockHandler.Take)
	stockGroup.Post("/:id/count", warehouse, stockHandler.Count)
	stockGroup.Post("/:id/split", warehouse, stockHandler.Split)
	stockGroup.Post("/:id/move", warehouse, stockHandler.Move)

	// Pedidos de venta: alta por ventas, libro de asignaciones por bodega
	orders := protected.Group("/sales-orders")
	orderHandler := NewSalesOrderHandler(deps.SalesOrderUC, deps.LedgerUC, deps.PackingSlipUC, deps.InstanceName)
	orders.Get("/lines/:lineId", staff, orderHandler.Line)
	orders.Post("/lines/:lineId/allocations", warehouse, orderHandler.Allocate)
	orders.Delete("/allocations/:allocationId", warehouse, orderHandler.DeleteAllocation)
	orders.Get("/", staff, orderHandler.List)
	orders.Post("/", sales, orderHandler.Create)
	orders.Get("/:id", staff, orderHandler.GetByID)
	orders.Get("/:id/lines", staff, orderHandler.Lines)
	orders.Post("/:id/lines", sales, orderHandler.AddLine)
	orders.Post("/:id/ship", warehouse, orderHandler.Ship)
	orders.Post("/:id/cancel", warehouse, orderHandler.Cancel)
	orders.Get("/:id/packing-slip", staff, orderHandler.PackingSlip)
}
