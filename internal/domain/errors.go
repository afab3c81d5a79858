package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDataFormat       = errors.New("formato de datos inválido")
	ErrInvalidTargetWOS = fmt.Errorf("%w: target WOS fuera de rango", ErrInvalidInput)
)

// DataFormatError indica que el archivo de entrada no trae las columnas obligatorias.
// Es fatal: la corrida se aborta antes de calcular nada.
type DataFormatError struct {
	Path    string
	Missing []string
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("%s: faltan columnas obligatorias en %q: %s",
		ErrDataFormat.Error(), e.Path, strings.Join(e.Missing, ", "))
}

// Is permite errors.Is(err, domain.ErrDataFormat).
func (e *DataFormatError) Is(target error) bool {
	return target == ErrDataFormat
}
