package order

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pedidos/internal/domain"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
)

// PackingSlipLine una fila del documento de despacho.
type PackingSlipLine struct {
	PartName  string
	Reference string
	Quantity  decimal.Decimal
	Allocated decimal.Decimal
	Fulfilled decimal.Decimal
}

// PackingSlip datos necesarios para renderizar el documento de despacho de un pedido.
type PackingSlip struct {
	InstanceName string
	Order        *entity.SalesOrder
	Customer     *entity.Company
	Lines        []PackingSlipLine
}

// PackingSlipGenerator puerto de salida: convierte un PackingSlip en bytes PDF.
type PackingSlipGenerator interface {
	GeneratePackingSlip(ctx context.Context, slip PackingSlip) ([]byte, error)
}

// PackingSlipUseCase genera el PDF de despacho de un pedido (pendiente o enviado).
type PackingSlipUseCase struct {
	read      reader
	companies repository.CompanyRepository
	parts     repository.PartRepository
	generator PackingSlipGenerator
}

// NewPackingSlipUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPackingSlipUseCase(
	orderRepo repository.SalesOrderRepository,
	allocRepo repository.AllocationRepository,
	stockRepo repository.StockItemRepository,
	companyRepo repository.CompanyRepository,
	partRepo repository.PartRepository,
	generator PackingSlipGenerator,
) *PackingSlipUseCase {
	return &PackingSlipUseCase{
		read:      reader{orders: orderRepo, allocs: allocRepo, stock: stockRepo},
		companies: companyRepo,
		parts:     partRepo,
		generator: generator,
	}
}

// Download devuelve (pdfBytes, filename). instanceName se imprime en el encabezado.
func (uc *PackingSlipUseCase) Download(ctx context.Context, orderID, instanceName string) ([]byte, string, error) {
	// ── 1. Pedido ─────────────────────────────────────────────────────────────
	order, err := uc.read.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("packing slip: obtener pedido: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Cliente ────────────────────────────────────────────────────────────
	customer, err := uc.companies.GetByID(ctx, order.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("packing slip: obtener cliente: %w", err)
	}
	if customer == nil {
		customer = &entity.Company{ID: order.CustomerID}
	}

	// ── 3. Líneas con cantidades ──────────────────────────────────────────────
	lines, states, _, err := uc.read.lineStates(ctx, order)
	if err != nil {
		return nil, "", fmt.Errorf("packing slip: líneas: %w", err)
	}
	slip := PackingSlip{InstanceName: instanceName, Order: order, Customer: customer}
	for i, l := range lines {
		name := l.PartID
		if part, err := uc.parts.GetByID(ctx, l.PartID); err == nil && part != nil {
			name = part.Name
		}
		slip.Lines = append(slip.Lines, PackingSlipLine{
			PartName:  name,
			Reference: l.Reference,
			Quantity:  l.Quantity,
			Allocated: states[i].Allocated,
			Fulfilled: states[i].Fulfilled,
		})
	}

	// ── 4. Render ─────────────────────────────────────────────────────────────
	pdf, err := uc.generator.GeneratePackingSlip(ctx, slip)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("despacho-%s.pdf", order.Reference), nil
}
