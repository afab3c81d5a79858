package replenishment

import "context"

// ExportFormat formato de descarga de la PO.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// POExporter serializa el resultado de una corrida a un archivo descargable.
type POExporter interface {
	Format() ExportFormat
	ContentType() string
	Export(ctx context.Context, result *POResult) ([]byte, error)
}
