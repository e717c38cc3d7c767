// Package pdf implementa la copia cortesía en PDF de la fattura elettronica.
// No sustituye al XML (el único formato con valor fiscal): es la
// representación legible que el operador puede archivar o reenviar al cliente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Denominazione + P.IVA  │  N° protocollo + Data     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CEDENTE: Sede legale                                       │
//	│  CESSIONARIO: Nombre + dirección de facturación             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Qta | Descrizione | Prezzo unit. | IVA | Totale     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Imponibile / Imposta / TOTALE DOCUMENTO           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Causale + leyenda                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotoconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/loretomm/fattura-api/internal/domain/entity"
	"github.com/loretomm/fattura-api/pkg/config"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	cfg config.FatturaConfig
}

// NewMarotoPDFGenerator construye el generador con la identidad del cedente.
func NewMarotoPDFGenerator(cfg config.FatturaConfig) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{cfg: cfg}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	order *entity.Order,
	protocolNumber string,
	invoiceDate time.Time,
) ([]byte, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	cfg := marotoconfig.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Fattura Elettronica", true).
		WithAuthor(g.cfg.Denominazione, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(protocolNumber, invoiceDate))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.cedenteRow())
	m.AddRows(cessionarioRow(order.BillingAddress))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	detailRows, err := g.tableDetailRows(order.LineItems)
	if err != nil {
		return nil, err
	}
	for _, r := range detailRows {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	totRow, err := g.totalsRow(order)
	if err != nil {
		return nil, err
	}
	m.AddRows(totRow)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(order.Name) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: denominazione + P.IVA (izq) y protocollo + data (der).
func (g *MarotoPDFGenerator) headerRow(protocolNumber string, invoiceDate time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.cfg.Denominazione, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("P.IVA: "+g.cfg.IDPaese+g.cfg.IDCodice, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FATTURA ELETTRONICA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("N. "+protocolNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+invoiceDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// cedenteRow: sede legale del cedente/prestatore.
func (g *MarotoPDFGenerator) cedenteRow() core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CEDENTE / PRESTATORE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s, %s %s (%s), %s   |   Regime fiscale: %s",
				g.cfg.Indirizzo, g.cfg.CAP, g.cfg.Comune, g.cfg.Provincia,
				g.cfg.Nazione, g.cfg.RegimeFiscale,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// cessionarioRow: datos del comprador desde la billing_address del pedido.
func cessionarioRow(billing *entity.BillingAddress) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CESSIONARIO / COMMITTENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(billing.FirstName+" "+billing.LastName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s, %s %s (%s), %s",
				billing.Address1, billing.Zip, billing.City,
				billing.ProvinceCode, billing.CountryCode,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qta", 1, align.Center),
		h("Descrizione", 6, align.Left),
		h("Prezzo unit.", 2, align.Right),
		h("IVA%", 1, align.Center),
		h("Totale", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea del pedido. El totale de línea sigue la
// misma regla que el XML: eco del precio unitario en modo compatibilidad,
// prezzo × quantità con ComputeTotals.
func (g *MarotoPDFGenerator) tableDetailRows(items []entity.LineItem) ([]core.Row, error) {
	result := make([]core.Row, 0, len(items))
	for _, item := range items {
		totale := item.Price
		if g.cfg.ComputeTotals {
			price, err := decimal.NewFromString(item.Price)
			if err != nil {
				return nil, fmt.Errorf("pdf: price %q no es decimal: %w", item.Price, err)
			}
			totale = price.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2).StringFixed(2)
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				strconv.Itoa(item.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				item.Title,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				item.Price,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				g.cfg.AliquotaIVA,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				totale,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result, nil
}

// totalsRow: imponibile, imposta y totale documento alineados a la derecha.
func (g *MarotoPDFGenerator) totalsRow(order *entity.Order) (core.Row, error) {
	imposta := "0.00"
	if g.cfg.ComputeTotals {
		imponibile, err := decimal.NewFromString(order.SubtotalPrice)
		if err != nil {
			return nil, fmt.Errorf("pdf: subtotal_price %q no es decimal: %w", order.SubtotalPrice, err)
		}
		aliquota, err := decimal.NewFromString(g.cfg.AliquotaIVA)
		if err != nil {
			return nil, fmt.Errorf("pdf: aliquota %q no es decimal: %w", g.cfg.AliquotaIVA, err)
		}
		imposta = imponibile.Mul(aliquota).Div(decimal.NewFromInt(100)).Round(2).StringFixed(2)
	}

	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, right float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: right, Top: 17,
		})
	}

	return row.New(26).Add(
		col.New(3), // espacio izquierdo
		col.New(3).Add(
			label("Imponibile:", 2),
			label("Imposta ("+g.cfg.AliquotaIVA+"%):", 9),
			grand("TOTALE DOCUMENTO:", 2),
		),
		col.New(3).Add(
			value(order.SubtotalPrice+" "+g.cfg.Divisa, 2),
			value(imposta+" "+g.cfg.Divisa, 9),
			grand(order.TotalPrice+" "+g.cfg.Divisa, 1),
		),
		col.New(3), // espacio derecho
	), nil
}

// footerRows: causale + leyenda.
func footerRows(orderName string) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Causale: Vendita ordine Shopify "+orderName, props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Copia di cortesia priva di valore fiscale. "+
					"Il documento fiscale è il file XML trasmesso secondo il tracciato FatturaPA.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}
