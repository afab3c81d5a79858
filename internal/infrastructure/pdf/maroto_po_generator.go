// Package pdf genera la versión imprimible de la orden de compra sugerida.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + corrida         │  Target WOS + fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MÉTRICAS: unidades / colores / SKUs                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Color | Talla | Tier | WOS | Cant. | Razón     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VALIDACIÓN: advertencias o "PO meets all constraints"       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"math"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/po-optimizer/internal/application/replenishment"
	"github.com/jhoicas/po-optimizer/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarning = &props.Color{Red: 170, Green: 90, Blue: 0}
	colorOK      = &props.Color{Red: 20, Green: 120, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPOGenerator implementa replenishment.POExporter usando Maroto v2.
type MarotoPOGenerator struct {
	title string
}

// NewMarotoPOGenerator construye el generador. title aparece en la cabecera y en los metadatos.
func NewMarotoPOGenerator(title string) *MarotoPOGenerator {
	if title == "" {
		title = "Suggested Purchase Order"
	}
	return &MarotoPOGenerator{title: title}
}

func (g *MarotoPOGenerator) Format() replenishment.ExportFormat { return replenishment.ExportPDF }

func (g *MarotoPOGenerator) ContentType() string { return "application/pdf" }

// Export genera el PDF y devuelve sus bytes.
func (g *MarotoPOGenerator) Export(_ context.Context, result *replenishment.POResult) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, result))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(result))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(result.Lines)...)

	m.AddRows(row.New(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(validationRows(result.Issues)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, result *replenishment.POResult) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Run: "+result.RunID, props.Text{
				Size: 7, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Target WOS: "+strconv.Itoa(result.TargetWOS), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Generated: "+result.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func summaryRow(result *replenishment.POResult) core.Row {
	s := result.Summary()
	metric := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorPrimary, Top: 5,
			}),
		)
	}
	return row.New(14).Add(
		metric("Total Units", formatThousands(s.TotalUnits)),
		metric("Colors", strconv.Itoa(s.Colors)),
		metric("SKUs", strconv.Itoa(s.SKUs)),
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
		h("Color", 1, align.Left),
		h("Size", 1, align.Center),
		h("Velocity", 1, align.Center),
		h("WOS", 1, align.Right),
		h("Replan Qty", 2, align.Right),
		h("Reason", 4, align.Left),
	)
}

func tableDetailRows(lines []entity.POLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{
			Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	for _, l := range lines {
		result = append(result, row.New(6).Add(
			cell(l.SKU, 2, align.Left),
			cell(l.Color, 1, align.Left),
			cell(l.Size, 1, align.Center),
			cell(l.VelocityTier, 1, align.Center),
			cell(formatWOS(l.WOS), 1, align.Right),
			cell(formatThousands(l.SuggestedReplanQty), 2, align.Right),
			cell(l.Reason, 4, align.Left),
		))
	}
	return result
}

func validationRows(issues []entity.POIssue) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("VALIDATION", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	if len(issues) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("PO meets all constraints!", props.Text{Size: 8, Color: colorOK, Top: 1}),
		)))
	}
	for _, i := range issues {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("- "+i.Message, props.Text{Size: 8, Color: colorWarning, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func formatWOS(wos float64) string {
	if math.IsInf(wos, 1) {
		return "inf"
	}
	return strconv.FormatFloat(wos, 'f', 1, 64)
}

// formatThousands inserta comas de miles. Ej: 25000 → "25,000".
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + formatThousands(-n)
	}
	if len(s) <= 3 {
		return s
	}
	buf := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
