package csvfile

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/po-optimizer/internal/domain/entity"
	"github.com/jhoicas/po-optimizer/pkg/logger"
)

// FileSource implementa repository.SkuRecordSource sobre un archivo local.
type FileSource struct {
	path  string
	cache *RecordCache
	log   *logger.Logger
}

// NewFileSource construye la fuente. cache puede compartirse entre fuentes.
func NewFileSource(path string, cache *RecordCache, log *logger.Logger) *FileSource {
	if cache == nil {
		cache = NewRecordCache()
	}
	return &FileSource{path: path, cache: cache, log: log.Component("csvfile")}
}

// Path ruta del archivo de datos.
func (s *FileSource) Path() string { return s.path }

// LoadRecords devuelve los registros del archivo, usando la caché si el archivo no cambió.
func (s *FileSource) LoadRecords(ctx context.Context) ([]entity.SkuRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("csvfile: stat %s: %w", s.path, err)
	}
	version := FileVersion{ModTime: info.ModTime(), Size: info.Size()}

	if records, ok := s.cache.Get(s.path, version); ok {
		return records, nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("csvfile: abrir %s: %w", s.path, err)
	}
	defer f.Close()

	records, stats, err := ParseRecords(f, s.path)
	if err != nil {
		return nil, err
	}
	s.cache.Put(s.path, version, records)

	s.log.Debug().
		Str("path", s.path).
		Int("rows", stats.Rows).
		Int("coerced_cells", stats.CoercedCells).
		Msg("archivo de datos leído")
	return records, nil
}

// Reload invalida la caché de la ruta y vuelve a leer el archivo.
func (s *FileSource) Reload(ctx context.Context) error {
	s.cache.Invalidate(s.path)
	_, err := s.LoadRecords(ctx)
	return err
}
