// Package pdf genera la hoja de preparación (picking list) de un pedido.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: N° Pedido + Cliente  │  Estado + Prioridad + Fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESTINO: Dirección de envío                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Ubicación | Lote | Vence | Cant.   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR del número de pedido + faltantes               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

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

	apporder "github.com/jhoicas/wms-api/internal/application/order"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// PickingListRenderer implementa order.PickingListRenderer con Maroto v2.
type PickingListRenderer struct{}

var _ apporder.PickingListRenderer = (*PickingListRenderer)(nil)

func NewPickingListRenderer() *PickingListRenderer { return &PickingListRenderer{} }

// Render genera el PDF y devuelve sus bytes.
func (r *PickingListRenderer) Render(list *apporder.PickingList) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de preparación "+list.Order.OrderNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(list))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(addressRow(list))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(list)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(list))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de preparación: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(list *apporder.PickingList) core.Row {
	o := list.Order
	return row.New(18).Add(
		col.New(7).Add(
			text.New("HOJA DE PREPARACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(o.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
			text.New("Cliente: "+o.CustomerID, props.Text{
				Size: 8, Top: 13, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Estado: "+string(o.Status), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Prioridad: "+strconv.Itoa(o.Priority), props.Text{
				Size: 8, Align: align.Right, Top: 7,
			}),
			text.New("Generada: "+list.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func addressRow(list *apporder.PickingList) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(list.Order.ShippingAddress, "—"), props.Text{Size: 8, Top: 7}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Ubicación", 2, align.Left),
		h("Lote", 2, align.Left),
		h("Vence", 2, align.Center),
		h("Cant.", 1, align.Right),
	)
}

// tableRows una fila por toma; la primera toma de cada línea lleva SKU y nombre.
func tableRows(list *apporder.PickingList) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	var rows []core.Row
	for _, l := range list.Lines {
		if len(l.Picks) == 0 {
			rows = append(rows, row.New(7).Add(
				cell(l.ProductSKU, 2, align.Left),
				cell(l.ProductName, 3, align.Left),
				cell("—", 2, align.Left),
				cell("", 2, align.Left),
				cell("", 2, align.Center),
				cell("0", 1, align.Right),
			))
		}
		for i, p := range l.Picks {
			sku, name := "", ""
			if i == 0 {
				sku, name = l.ProductSKU, l.ProductName
			}
			expiry := ""
			if p.ExpiryDate != nil {
				expiry = p.ExpiryDate.Format("02/01/2006")
			}
			rows = append(rows, row.New(7).Add(
				cell(sku, 2, align.Left),
				cell(name, 3, align.Left),
				cell(p.LocationCode, 2, align.Left),
				cell(nonEmpty(p.BatchNumber, "—"), 2, align.Left),
				cell(expiry, 2, align.Center),
				cell(strconv.Itoa(p.Quantity), 1, align.Right),
			))
		}
		if l.Shortfall > 0 {
			rows = append(rows, row.New(6).Add(col.New(12).Add(
				text.New(fmt.Sprintf("Faltante %s: %d de %d unidades", l.ProductSKU, l.Shortfall, l.Quantity), props.Text{
					Style: fontstyle.Bold, Size: 7.5, Color: colorAlert, Top: 1, Left: 1,
				}),
			)))
		}
	}
	return rows
}

func footerRow(list *apporder.PickingList) core.Row {
	units := 0
	for _, l := range list.Lines {
		units += l.Quantity
	}
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(list.Order.OrderNumber, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New(fmt.Sprintf("%d líneas, %d unidades", len(list.Lines), units), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 4, Left: 3, Color: colorPrimary,
			}),
			text.New("Escanee el código QR en la estación de empaque.", props.Text{
				Size: 8, Top: 14, Left: 3, Color: colorGray,
			}),
			text.New("Total del pedido: $"+formatMoney(list.Order.Total().StringFixed(0)), props.Text{
				Size: 8, Top: 22, Left: 3, Color: colorGray,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000"
func formatMoney(s string) string {
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
