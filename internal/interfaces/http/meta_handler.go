package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"

	"github.com/jhoicas/inventario-pedidos/internal/application/barcode"
	"github.com/jhoicas/inventario-pedidos/internal/application/dto"
	"github.com/jhoicas/inventario-pedidos/internal/domain/status"
	"github.com/jhoicas/inventario-pedidos/internal/version"
)

// Pinger verifica la conexión con la base de datos (lo cumple *pgxpool.Pool).
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

// MetaHandler expone salud, versión, códigos de estado y escaneo de códigos de barras.
type MetaHandler struct {
	scan         *barcode.ScanUseCase
	instanceName string
	db           Pinger
}

// NewMetaHandler construye el handler. db es nil con almacenamiento en memoria.
func NewMetaHandler(scan *barcode.ScanUseCase, instanceName string, db Pinger) *MetaHandler {
	return &MetaHandler{scan: scan, instanceName: instanceName, db: db}
}

// Health godoc
// @Summary      Health check (incluye ping a la base de datos)
// @Tags         meta
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *MetaHandler) Health(c *fiber.Ctx) error {
	if h.db == nil {
		return c.JSON(fiber.Map{"status": "ok"})
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "database": "unreachable"})
	}
	return c.JSON(fiber.Map{"status": "ok", "database": "ok"})
}

// Version godoc
// @Summary      Versión del servidor y de la API
// @Tags         meta
// @Produce      json
// @Success      200  {object}  dto.VersionResponse
// @Router       /api/version [get]
func (h *MetaHandler) Version(c *fiber.Ctx) error {
	info := version.Info(h.instanceName)
	return c.JSON(dto.VersionResponse{
		Server:       info.Server,
		InstanceName: info.InstanceName,
		Commit:       info.Commit,
		CommitDate:   info.CommitDate,
		APIVersion:   info.APIVersion,
	})
}

// StatusCodes godoc
// @Summary      Conjuntos de códigos de estado
// @Tags         meta
// @Produce      json
// @Success      200  {object}  map[string][]status.Option
// @Router       /api/status-codes [get]
func (h *MetaHandler) StatusCodes(c *fiber.Ctx) error {
	return c.JSON(status.All())
}

// Barcode godoc
// @Summary      Decodificar un código de barras escaneado
// @Tags         meta
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BarcodeRequest  true  "Código escaneado"
// @Success      200   {object}  dto.BarcodeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/barcode [post]
func (h *MetaHandler) Barcode(c *fiber.Ctx) error {
	var in dto.BarcodeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.scan.Scan(c.UserContext(), in.Barcode)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// OpenAPI devuelve la especificación registrada en swag (vacía si el paquete docs no se enlazó).
func (h *MetaHandler) OpenAPI(c *fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return notFound(c, "especificación no disponible")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(doc)
}
