// Package pdf genera el documento de despacho (packing slip) de un pedido de venta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Instancia            │  Pedido N° + Estado + Fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto + referencia del cliente        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Parte | Ref. | Solicitado | Asignado | Despachado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR del pedido + notas                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"encoding/json"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pedidos/internal/application/order"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
	"github.com/jhoicas/inventario-pedidos/internal/domain/status"
)

var _ order.PackingSlipGenerator = (*MarotoPackingSlipGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPackingSlipGenerator implementa order.PackingSlipGenerator usando Maroto v2.
type MarotoPackingSlipGenerator struct{}

// NewMarotoPackingSlipGenerator construye el generador.
func NewMarotoPackingSlipGenerator() *MarotoPackingSlipGenerator {
	return &MarotoPackingSlipGenerator{}
}

// GeneratePackingSlip genera el PDF y devuelve sus bytes.
func (g *MarotoPackingSlipGenerator) GeneratePackingSlip(_ context.Context, slip order.PackingSlip) ([]byte, error) {
	if slip.Order == nil {
		return nil, fmt.Errorf("pdf: pedido requerido")
	}
	customer := slip.Customer
	if customer == nil {
		customer = &entity.Company{}
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Documento de despacho "+slip.Order.Reference, true).
		WithAuthor(nonEmpty(slip.InstanceName, "InvenTree"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(slip.InstanceName, slip.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer, slip.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(slip.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(slip.Lines))

	m.AddRows(line.NewRow(3))
	footer, err := footerRows(slip.Order)
	if err != nil {
		return nil, err
	}
	m.AddRows(footer...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la instancia (izq) y referencia, estado y fecha (der).
func headerRow(instance string, o *entity.SalesOrder) core.Row {
	date := o.CreatedAt
	if o.ShipmentDate != nil {
		date = *o.ShipmentDate
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(instance, "InvenTree"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Documento de despacho", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PEDIDO DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(o.Reference, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("%s   |   %s", status.SalesOrder.Label(o.Status), date.Format("02/01/2006")), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente.
func customerRow(c *entity.Company, o *entity.SalesOrder) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(c.Name, o.CustomerID), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Contacto: %s   |   Dirección: %s   |   Ref. cliente: %s",
				nonEmpty(c.Contact, "—"),
				nonEmpty(c.Address, "—"),
				nonEmpty(o.CustomerReference, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Parte", 5, align.Left),
		h("Ref.", 1, align.Left),
		h("Solicitado", 2, align.Right),
		h("Asignado", 2, align.Right),
		h("Despachado", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableLineRows: una fila por línea del pedido.
func tableLineRows(lines []order.PackingSlipLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			cell(l.PartName, 5, align.Left),
			cell(nonEmpty(l.Reference, "—"), 1, align.Left),
			cell(formatQuantity(l.Quantity), 2, align.Right),
			cell(formatQuantity(l.Allocated), 2, align.Right),
			cell(formatQuantity(l.Fulfilled), 2, align.Right),
		))
	}
	return result
}

// totalsRow: total de unidades solicitadas y despachadas.
func totalsRow(lines []order.PackingSlipLine) core.Row {
	requested, shipped := decimal.Zero, decimal.Zero
	for _, l := range lines {
		requested = requested.Add(l.Quantity)
		shipped = shipped.Add(l.Fulfilled)
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(label("Unidades solicitadas:"), label("Unidades despachadas:")),
		col.New(3).Add(value(formatQuantity(requested)), value(formatQuantity(shipped))),
	)
}

// footerRows: código QR con el identificador del pedido y notas.
func footerRows(o *entity.SalesOrder) ([]core.Row, error) {
	qr, err := json.Marshal(map[string]string{"salesorder": o.ID})
	if err != nil {
		return nil, fmt.Errorf("pdf: codificar QR: %w", err)
	}
	rows := []core.Row{
		row.New(40).Add(
			col.New(3).Add(code.NewQr(string(qr), props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Notas", props.Text{Style: fontstyle.Bold, Size: 8, Top: 2, Left: 3, Color: colorPrimary}),
				text.New(nonEmpty(o.Notes, "—"), props.Text{Size: 8, Top: 8, Left: 3, Color: colorGray}),
			),
		),
	}
	return rows, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQuantity imprime la cantidad sin ceros decimales sobrantes y con puntos de miles.
// Ej: 1500 → "1.500", 2.50000 → "2,5"
func formatQuantity(d decimal.Decimal) string {
	s := d.String()
	intPart, frac := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i+1:]
			break
		}
	}
	sign := ""
	if len(intPart) > 0 && intPart[0] == '-' {
		sign, intPart = "-", intPart[1:]
	}
	out := sign + groupThousands(intPart)
	if frac != "" {
		out += "," + frac
	}
	return out
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
