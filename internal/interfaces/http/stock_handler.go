package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pedidos/internal/application/dto"
	"github.com/jhoicas/inventario-pedidos/internal/application/stock"
)

// StockHandler maneja recepción, ajustes y movimientos de lotes.
type StockHandler struct {
	uc *stock.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Create godoc
// @Summary      Recibir lote de existencias
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockItemRequest  true  "Parte, ubicación y cantidad"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener lote por ID
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "lote no encontrado")
	}
	return c.JSON(out)
}

// ListByPart godoc
// @Summary      Listar lotes de una parte
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        part_id  query  string  true  "ID de la parte"
// @Success      200      {array}   dto.StockItemResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) ListByPart(c *fiber.Ctx) error {
	partID := c.Query("part_id")
	if partID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "part_id es requerido"})
	}
	out, err := h.uc.ListByPart(c.UserContext(), partID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Sumar existencia a un lote
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del lote"
// @Param        body  body  dto.StockAdjustRequest  true  "Cantidad"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/add [post]
func (h *StockHandler) Add(c *fiber.Ctx) error {
	var in dto.StockAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Add(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Take godoc
// @Summary      Retirar existencia de un lote
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del lote"
// @Param        body  body  dto.StockAdjustRequest  true  "Cantidad"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/take [post]
func (h *StockHandler) Take(c *fiber.Ctx) error {
	var in dto.StockAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Take(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Count godoc
// @Summary      Registrar conteo físico de un lote
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del lote"
// @Param        body  body  dto.StockAdjustRequest  true  "Cantidad contada"
// @Success      200   {object}  dto.StockItemResponse
// @Router       /api/stock/{id}/count [post]
func (h *StockHandler) Count(c *fiber.Ctx) error {
	var in dto.StockAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Count(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Split godoc
// @Summary      Separar parte de un lote en uno nuevo
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del lote"
// @Param        body  body  dto.StockSplitRequest  true  "Cantidad y ubicación"
// @Success      200   {object}  dto.StockMoveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/split [post]
func (h *StockHandler) Split(c *fiber.Ctx) error {
	var in dto.StockSplitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Split(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Move godoc
// @Summary      Mover un lote (o parte de él) a otra ubicación
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del lote"
// @Param        body  body  dto.StockMoveRequest  true  "Ubicación y cantidad opcional"
// @Success      200   {object}  dto.StockMoveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/move [post]
func (h *StockHandler) Move(c *fiber.Ctx) error {
	var in dto.StockMoveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Move(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Tracking godoc
// @Summary      Historial de un lote
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {array}   dto.StockTrackingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/tracking [get]
func (h *StockHandler) Tracking(c *fiber.Ctx) error {
	out, err := h.uc.Tracking(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
