// Package export serializa la PO sugerida al archivo CSV descargable.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jhoicas/po-optimizer/internal/application/replenishment"
)

// CSVHeader columnas del archivo descargable, en orden.
var CSVHeader = []string{"SKU", "Color", "Size", "Suggested Replan Qty", "Reason"}

// CSVExporter implementa replenishment.POExporter: CSV separado por comas, UTF-8, con cabecera.
type CSVExporter struct{}

// NewCSVExporter construye el exportador.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

func (e *CSVExporter) Format() replenishment.ExportFormat { return replenishment.ExportCSV }

func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Export escribe una fila por línea de la PO, en el orden de la PO.
func (e *CSVExporter) Export(_ context.Context, result *replenishment.POResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CSVHeader); err != nil {
		return nil, fmt.Errorf("export: escribir cabecera: %w", err)
	}
	for _, l := range result.Lines {
		if err := w.Write([]string{
			l.SKU,
			l.Color,
			l.Size,
			strconv.Itoa(l.SuggestedReplanQty),
			l.Reason,
		}); err != nil {
			return nil, fmt.Errorf("export: escribir SKU %s: %w", l.SKU, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush: %w", err)
	}
	return buf.Bytes(), nil
}
