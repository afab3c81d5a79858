package csvfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/po-optimizer/internal/domain"
	"github.com/jhoicas/po-optimizer/internal/domain/entity"
	"github.com/jhoicas/po-optimizer/internal/infrastructure/csvfile"
	"github.com/jhoicas/po-optimizer/pkg/logger"
)

func writeData(t *testing.T, path, content string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

// ──────────────────────────────────────────────────────────────────────────────
// FileSource
// ──────────────────────────────────────────────────────────────────────────────

func TestFileSource_UsaCacheMientrasNoCambieElArchivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	mod := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	writeData(t, path, sampleData, mod)

	cache := csvfile.NewRecordCache()
	src := csvfile.NewFileSource(path, cache, logger.Nop())

	first, err := src.LoadRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, 1, cache.Len())

	// Mutar lo devuelto no altera la caché.
	first[0].SKU = "mutado"
	second, err := src.LoadRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Red S", second[0].SKU)
}

func TestFileSource_ReleeCuandoCambiaElArchivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	mod := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	writeData(t, path, sampleData, mod)

	src := csvfile.NewFileSource(path, nil, logger.Nop())
	recs, err := src.LoadRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 3)

	writeData(t, path, sampleData+"Green;1;4;8;\n", mod.Add(time.Minute))
	recs, err = src.LoadRecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 4)
}

// Reload fuerza la relectura aunque fecha y tamaño coincidan.
func TestFileSource_ReloadInvalida(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	mod := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	writeData(t, path, sampleData, mod)

	src := csvfile.NewFileSource(path, nil, logger.Nop())
	_, err := src.LoadRecords(context.Background())
	require.NoError(t, err)

	// Mismo tamaño y misma fecha, distinto contenido.
	writeData(t, path, "SKU;Week Number;Sales Rate Per Week;Current Quantity;Velocity\n"+
		"Red X;1;100;200;Fast\n"+
		"Blue M;1;10;5;\n"+
		"Blue M;2;20;30;Slow\n", mod)

	recs, err := src.LoadRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Red S", recs[0].SKU)

	require.NoError(t, src.Reload(context.Background()))
	recs, err = src.LoadRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Red X", recs[0].SKU)
}

func TestFileSource_ArchivoInexistente(t *testing.T) {
	src := csvfile.NewFileSource(filepath.Join(t.TempDir(), "nope.csv"), nil, logger.Nop())
	_, err := src.LoadRecords(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSource_ColumnasFaltantesNoSeCachean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	writeData(t, path, "SKU;Week Number\nRed S;1\n", time.Now())

	cache := csvfile.NewRecordCache()
	src := csvfile.NewFileSource(path, cache, logger.Nop())
	_, err := src.LoadRecords(context.Background())

	assert.ErrorIs(t, err, domain.ErrDataFormat)
	assert.Equal(t, 0, cache.Len())
}

func TestFileSource_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := csvfile.NewFileSource("data.csv", nil, logger.Nop())
	_, err := src.LoadRecords(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordCache
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordCache(t *testing.T) {
	c := csvfile.NewRecordCache()
	v1 := csvfile.FileVersion{ModTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Size: 10}
	v2 := csvfile.FileVersion{ModTime: v1.ModTime, Size: 11}
	recs := []entity.SkuRecord{{SKU: "Red S"}}

	_, ok := c.Get("a.csv", v1)
	assert.False(t, ok)

	c.Put("a.csv", v1, recs)
	c.Put("b.csv", v1, recs)
	recs[0].SKU = "mutado"

	got, ok := c.Get("a.csv", v1)
	require.True(t, ok)
	assert.Equal(t, "Red S", got[0].SKU)

	_, ok = c.Get("a.csv", v2)
	assert.False(t, ok, "otra versión del archivo no debe acertar")

	c.Invalidate("a.csv")
	_, ok = c.Get("a.csv", v1)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
}
