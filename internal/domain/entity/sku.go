package entity

import (
	"math"
	"strings"
)

// UnknownLabel valor por defecto para Size y VelocityTier cuando el dato no viene.
const UnknownLabel = "Unknown"

// SkuRecord fila cruda del archivo de ventas: un SKU en una semana.
// SKU es "<color> <talla>"; Velocity vacío significa ausente.
type SkuRecord struct {
	Row              int // índice de la fila de datos (0 = primera fila tras el header)
	SKU              string
	WeekNumber       int
	SalesRatePerWeek float64 // unidades/semana, >= 0
	CurrentQuantity  float64 // unidades en mano, >= 0
	Velocity         string
}

// SkuSnapshot foto actual de un SKU (solo la última semana) con los campos derivados.
type SkuSnapshot struct {
	SkuRecord
	WOS                float64 // +Inf cuando SalesRatePerWeek es 0
	TargetWOS          int
	SuggestedReplanQty int // siempre >= 0
	Color              string
	Size               string
	VelocityTier       string
}

// HasFiniteWOS indica si el SKU tiene ventas y por tanto un WOS calculable.
func (s SkuSnapshot) HasFiniteWOS() bool {
	return !math.IsInf(s.WOS, 1)
}

// SplitSKU separa color y talla por el primer espacio. Sin espacio, la talla es "Unknown".
func SplitSKU(sku string) (color, size string) {
	color, size, found := strings.Cut(sku, " ")
	if !found {
		return sku, UnknownLabel
	}
	// La talla es el segundo token: "Red XL Tall" → "XL".
	if i := strings.IndexByte(size, ' '); i >= 0 {
		size = size[:i]
	}
	return color, size
}

// Rango permitido para el objetivo de semanas de inventario.
const (
	MinTargetWOS     = 8
	MaxTargetWOS     = 20
	DefaultTargetWOS = 15
)

// ValidTargetWOS indica si el objetivo está dentro del rango que acepta el operador.
func ValidTargetWOS(target int) bool {
	return target >= MinTargetWOS && target <= MaxTargetWOS
}
