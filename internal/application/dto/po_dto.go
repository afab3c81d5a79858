package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SkuSnapshotDTO foto actual de un SKU para la tabla de datos preparados.
type SkuSnapshotDTO struct {
	SKU                string           `json:"sku"`
	Color              string           `json:"color"`
	Size               string           `json:"size"`
	VelocityTier       string           `json:"velocity_tier"`
	WeekNumber         int              `json:"week_number"`
	SalesRatePerWeek   decimal.Decimal  `json:"sales_rate_per_week"`
	CurrentQuantity    decimal.Decimal  `json:"current_quantity"`
	WOS                *decimal.Decimal `json:"wos"` // null = infinito (sin ventas)
	TargetWOS          int              `json:"target_wos"`
	SuggestedReplanQty int              `json:"suggested_replan_qty"`
}

// POLineDTO línea de la orden de compra sugerida.
type POLineDTO struct {
	SkuSnapshotDTO
	PercentOfVolume decimal.Decimal `json:"percent_of_volume"` // 0..1, 4 decimales
	Tier            string          `json:"tier"`              // high_velocity|low_velocity|fill_up
	Reason          string          `json:"reason"`
}

// POIssueDTO advertencia de validación (no bloquea la descarga).
type POIssueDTO struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// POSummaryDTO métricas de cabecera de la PO.
type POSummaryDTO struct {
	TotalUnits int `json:"total_units"`
	Colors     int `json:"colors"`
	SKUs       int `json:"skus"`
}

// POResultDTO respuesta de GET /api/po/suggestion.
type POResultDTO struct {
	RunID       string       `json:"run_id"`
	TargetWOS   int          `json:"target_wos"`
	GeneratedAt time.Time    `json:"generated_at"`
	Valid       bool         `json:"valid"` // true si no hay advertencias
	Summary     POSummaryDTO `json:"summary"`
	Lines       []POLineDTO  `json:"lines"`
	Issues      []POIssueDTO `json:"issues"`
}

// SnapshotsDTO respuesta de GET /api/po/snapshots.
type SnapshotsDTO struct {
	TargetWOS int              `json:"target_wos"`
	Total     int              `json:"total"`
	Snapshots []SkuSnapshotDTO `json:"snapshots"`
}
