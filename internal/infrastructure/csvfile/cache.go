package csvfile

import (
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/po-optimizer/internal/domain/entity"
)

// FileVersion identifica una versión concreta del archivo en disco.
type FileVersion struct {
	ModTime time.Time
	Size    int64
}

type cacheEntry struct {
	version FileVersion
	records []entity.SkuRecord
}

// RecordCache caché de registros crudos por ruta. Solo guarda datos del archivo, nunca
// resultados que dependan del TargetWOS. Segura para uso concurrente.
type RecordCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewRecordCache crea una caché vacía.
func NewRecordCache() *RecordCache {
	return &RecordCache{entries: make(map[string]cacheEntry)}
}

// Get devuelve una copia de los registros si la versión cacheada coincide con la del disco.
func (c *RecordCache) Get(path string, version FileVersion) ([]entity.SkuRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[path]
	if !ok || e.version.Size != version.Size || !e.version.ModTime.Equal(version.ModTime) {
		return nil, false
	}
	return slices.Clone(e.records), true
}

// Put reemplaza la entrada de la ruta.
func (c *RecordCache) Put(path string, version FileVersion, records []entity.SkuRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = cacheEntry{version: version, records: slices.Clone(records)}
}

// Invalidate elimina la entrada de la ruta.
func (c *RecordCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Purge vacía la caché.
func (c *RecordCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Len número de archivos cacheados.
func (c *RecordCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
