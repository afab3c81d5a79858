package repository

import (
	"context"

	"github.com/jhoicas/po-optimizer/internal/domain/entity"
)

// SkuRecordSource define el puerto de lectura de los registros semanales por SKU (DIP).
// Las implementaciones devuelven *domain.DataFormatError si faltan columnas obligatorias.
type SkuRecordSource interface {
	LoadRecords(ctx context.Context) ([]entity.SkuRecord, error)
}

// SkuRecordReloader fuente que permite descartar su caché de forma explícita.
type SkuRecordReloader interface {
	SkuRecordSource
	Reload(ctx context.Context) error
}
