// Package csvfile lee el archivo de ventas/inventario semanal (separado por ';') y
// mantiene una caché por ruta invalidada por fecha de modificación y tamaño.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/po-optimizer/internal/domain"
	"github.com/jhoicas/po-optimizer/internal/domain/entity"
)

// Nombres de columna del archivo de entrada (se comparan tras recortar espacios).
const (
	ColSKU         = "SKU"
	ColWeekNumber  = "Week Number"
	ColSalesRate   = "Sales Rate Per Week"
	ColCurrentQty  = "Current Quantity"
	ColVelocity    = "Velocity"
	fieldDelimiter = ';'

	// Techo de Week Number; los valores mayores se saturan.
	maxWeekNumber = math.MaxInt32
)

var requiredColumns = []string{ColSKU, ColWeekNumber, ColSalesRate, ColCurrentQty}

// ParseStats contadores de una lectura.
type ParseStats struct {
	Rows         int
	CoercedCells int // celdas numéricas vacías o inválidas tratadas como 0
}

// ParseRecords lee el archivo completo. Las celdas numéricas inválidas valen 0 sin error;
// solo falla si faltan columnas obligatorias (*domain.DataFormatError) o el CSV está roto.
func ParseRecords(r io.Reader, name string) ([]entity.SkuRecord, ParseStats, error) {
	var stats ParseStats

	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.Comma = fieldDelimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, stats, &domain.DataFormatError{Path: name, Missing: requiredColumns}
	}
	if err != nil {
		return nil, stats, fmt.Errorf("csvfile: leer cabecera de %s: %w", name, err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		key := strings.TrimSpace(col)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, stats, &domain.DataFormatError{Path: name, Missing: missing}
	}

	velocityIdx, hasVelocity := index[ColVelocity]
	cell := func(record []string, i int) string {
		if i < len(record) {
			return record[i]
		}
		return ""
	}
	number := func(raw string) float64 {
		v, ok := parseNumber(raw)
		if !ok {
			stats.CoercedCells++
		}
		return v
	}
	week := func(raw string) int {
		v := number(raw)
		if v >= maxWeekNumber {
			return maxWeekNumber
		}
		return int(v)
	}

	var records []entity.SkuRecord
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("csvfile: %s fila %d: %w", name, stats.Rows+2, err)
		}

		rec := entity.SkuRecord{
			Row:              stats.Rows,
			SKU:              cell(record, index[ColSKU]),
			WeekNumber:       week(cell(record, index[ColWeekNumber])),
			SalesRatePerWeek: number(cell(record, index[ColSalesRate])),
			CurrentQuantity:  number(cell(record, index[ColCurrentQty])),
		}
		if hasVelocity {
			rec.Velocity = strings.TrimSpace(cell(record, velocityIdx))
		}
		records = append(records, rec)
		stats.Rows++
	}
	return records, stats, nil
}

// parseNumber convierte una celda a número. Vacío, texto, NaN, infinito o negativo → (0, false).
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
