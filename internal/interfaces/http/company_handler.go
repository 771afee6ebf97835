package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pedidos/internal/application/dto"
	"github.com/jhoicas/inventario-pedidos/internal/application/usecase"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
)

// CompanyHandler maneja las peticiones HTTP para clientes, proveedores y fabricantes.
type CompanyHandler struct {
	uc        *usecase.CompanyUseCase
	threshold int
}

// NewCompanyHandler construye el handler. threshold es el umbral por defecto del match de fabricantes.
func NewCompanyHandler(uc *usecase.CompanyUseCase, threshold int) *CompanyHandler {
	return &CompanyHandler{uc: uc, threshold: threshold}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener empresa por ID
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "empresa no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        customer      query  bool  false  "Solo clientes"
// @Param        supplier      query  bool  false  "Solo proveedores"
// @Param        manufacturer  query  bool  false  "Solo fabricantes"
// @Param        limit         query  int   false  "Límite"  default(20)
// @Param        offset        query  int   false  "Offset"  default(0)
// @Success      200           {object}  dto.CompanyListResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	filter := repository.CompanyFilter{
		CustomersOnly:     c.QueryBool("customer", false),
		SuppliersOnly:     c.QueryBool("supplier", false),
		ManufacturersOnly: c.QueryBool("manufacturer", false),
	}
	out, err := h.uc.List(c.UserContext(), filter, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MatchManufacturers godoc
// @Summary      Sugerir fabricantes por similitud de nombre
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        name       query  string  true   "Nombre a buscar"
// @Param        threshold  query  int     false  "Umbral de similitud (1-100)"
// @Success      200        {object}  dto.ManufacturerMatchResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/companies/match [get]
func (h *CompanyHandler) MatchManufacturers(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.MatchManufacturers(c.UserContext(), name, c.QueryInt("threshold", h.threshold))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
