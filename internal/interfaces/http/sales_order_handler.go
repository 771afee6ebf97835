package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pedidos/internal/application/dto"
	"github.com/jhoicas/inventario-pedidos/internal/application/order"
)

// SalesOrderHandler maneja pedidos de venta, sus líneas, asignaciones y envío.
type SalesOrderHandler struct {
	orders       *order.SalesOrderUseCase
	ledger       *order.LedgerUseCase
	slips        *order.PackingSlipUseCase
	instanceName string
}

// NewSalesOrderHandler construye el handler.
func NewSalesOrderHandler(
	orders *order.SalesOrderUseCase,
	ledger *order.LedgerUseCase,
	slips *order.PackingSlipUseCase,
	instanceName string,
) *SalesOrderHandler {
	return &SalesOrderHandler{orders: orders, ledger: ledger, slips: slips, instanceName: instanceName}
}

// Create godoc
// @Summary      Crear pedido de venta
// @Tags         sales-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesOrderRequest  true  "Referencia y cliente"
// @Success      201   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales-orders [post]
func (h *SalesOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido por ID
// @Tags         sales-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id} [get]
func (h *SalesOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.orders.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "pedido no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pedidos de venta
// @Tags         sales-orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  int  false  "Código de estado (10 = pendiente)"
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.SalesOrderListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/sales-orders [get]
func (h *SalesOrderHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.orders.List(c.UserContext(), c.QueryInt("status", 0), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddLine godoc
// @Summary      Agregar línea al pedido
// @Tags         sales-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del pedido"
// @Param        body  body  dto.AddLineRequest  true  "Parte y cantidad"
// @Success      201   {object}  dto.LineItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/lines [post]
func (h *SalesOrderHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.AddLine(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Lines godoc
// @Summary      Líneas del pedido con cantidades asignadas y despachadas
// @Tags         sales-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {array}   dto.LineItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/lines [get]
func (h *SalesOrderHandler) Lines(c *fiber.Ctx) error {
	out, err := h.orders.Lines(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Line godoc
// @Summary      Obtener una línea con sus asignaciones
// @Tags         sales-orders
// @Security     Bearer
// @Produce      json
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      200     {object}  dto.LineItemResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/sales-orders/lines/{lineId} [get]
func (h *SalesOrderHandler) Line(c *fiber.Ctx) error {
	out, err := h.ledger.Line(c.UserContext(), c.Params("lineId"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "línea no encontrada")
	}
	return c.JSON(out)
}

// Allocate godoc
// @Summary      Asignar existencia de un lote a una línea
// @Tags         sales-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        lineId  path  string               true  "ID de la línea"
// @Param        body    body  dto.AllocateRequest  true  "Lote y cantidad"
// @Success      201     {object}  dto.AllocationResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/sales-orders/lines/{lineId}/allocations [post]
func (h *SalesOrderHandler) Allocate(c *fiber.Ctx) error {
	var in dto.AllocateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.Allocate(c.UserContext(), order.AllocateInput{
		LineID:      c.Params("lineId"),
		StockItemID: in.StockItemID,
		Quantity:    in.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteAllocation godoc
// @Summary      Liberar una asignación
// @Tags         sales-orders
// @Security     Bearer
// @Param        allocationId  path  string  true  "ID de la asignación"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/allocations/{allocationId} [delete]
func (h *SalesOrderHandler) DeleteAllocation(c *fiber.Ctx) error {
	if err := h.ledger.DeleteAllocation(c.UserContext(), c.Params("allocationId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Ship godoc
// @Summary      Enviar pedido (consume todas las asignaciones)
// @Tags         sales-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/ship [post]
func (h *SalesOrderHandler) Ship(c *fiber.Ctx) error {
	out, err := h.ledger.ShipOrder(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar pedido (libera todas las asignaciones)
// @Tags         sales-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.CancelResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/cancel [post]
func (h *SalesOrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.ledger.CancelOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PackingSlip godoc
// @Summary      Descargar documento de despacho en PDF
// @Tags         sales-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/packing-slip [get]
func (h *SalesOrderHandler) PackingSlip(c *fiber.Ctx) error {
	pdf, filename, err := h.slips.Download(c.UserContext(), c.Params("id"), h.instanceName)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
