// Package cli renderiza la PO y la foto por SKU en la terminal.
package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jhoicas/po-optimizer/internal/application/replenishment"
	"github.com/jhoicas/po-optimizer/internal/domain/entity"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5A100"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#3FB950"))
	metricBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
)

// POColumns columnas de la tabla de la PO en pantalla.
var POColumns = []string{"SKU", "Color", "Size", "Velocity Tier", "WOS", "Suggested Replan Qty", "Reason"}

// SnapshotColumns columnas de la tabla de datos preparados.
var SnapshotColumns = []string{"SKU", "Week", "Sales Rate", "Current Qty", "WOS", "Target WOS", "Suggested Replan Qty"}

// RenderPO escribe la tabla de la PO, las advertencias y las tres métricas de cabecera.
func RenderPO(w io.Writer, result *replenishment.POResult) error {
	rows := make([][]string, 0, len(result.Lines))
	for _, l := range result.Lines {
		rows = append(rows, []string{
			l.SKU, l.Color, l.Size, l.VelocityTier,
			FormatWOS(l.WOS), strconv.Itoa(l.SuggestedReplanQty), l.Reason,
		})
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Suggested PO · Target WOS %d", result.TargetWOS)))
	b.WriteString("\n")
	b.WriteString(newTable(POColumns, rows).String())
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("PO Validation"))
	b.WriteString("\n")
	if len(result.Issues) == 0 {
		b.WriteString(okStyle.Render("PO meets all constraints!"))
		b.WriteString("\n")
	}
	for _, i := range result.Issues {
		b.WriteString(warnStyle.Render("! " + i.Message))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	s := result.Summary()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		metricBox.Render("Total Units\n"+strconv.Itoa(s.TotalUnits)),
		metricBox.Render("Colors\n"+strconv.Itoa(s.Colors)),
		metricBox.Render("SKUs\n"+strconv.Itoa(s.SKUs)),
	))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderSnapshots escribe la foto por SKU.
func RenderSnapshots(w io.Writer, snapshots []entity.SkuSnapshot) error {
	rows := make([][]string, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, []string{
			s.SKU,
			strconv.Itoa(s.WeekNumber),
			strconv.FormatFloat(s.SalesRatePerWeek, 'f', -1, 64),
			strconv.FormatFloat(s.CurrentQuantity, 'f', -1, 64),
			FormatWOS(s.WOS),
			strconv.Itoa(s.TargetWOS),
			strconv.Itoa(s.SuggestedReplanQty),
		})
	}
	_, err := io.WriteString(w, newTable(SnapshotColumns, rows).String()+"\n")
	return err
}

// FormatWOS WOS con dos decimales; "inf" para SKUs sin ventas.
func FormatWOS(wos float64) string {
	if math.IsInf(wos, 1) {
		return "inf"
	}
	return strconv.FormatFloat(wos, 'f', 2, 64)
}

func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
}
