// Package replenishment contiene el motor de la orden de compra de reposición:
// preparación de la foto por SKU, reglas de inclusión y validación de la PO.
package replenishment

import (
	"fmt"
	"math"

	"github.com/jhoicas/po-optimizer/internal/domain"
	"github.com/jhoicas/po-optimizer/internal/domain/entity"
)

// PrepareSnapshots reduce los registros semanales a una foto por SKU con la última semana
// y calcula WOS, cantidad sugerida de re-plan, color, talla y tier de velocidad.
//
// Reglas:
//   - Gana el registro con mayor WeekNumber; ante empate gana la última fila leída.
//   - El orden de salida es el de la primera aparición de cada SKU en la entrada.
//   - Sin ventas (tasa 0) el WOS es +Inf: nunca se considera desabastecido.
func PrepareSnapshots(records []entity.SkuRecord, targetWOS int) ([]entity.SkuSnapshot, error) {
	if !entity.ValidTargetWOS(targetWOS) {
		return nil, fmt.Errorf("%w: %d (permitido %d-%d)",
			domain.ErrInvalidTargetWOS, targetWOS, entity.MinTargetWOS, entity.MaxTargetWOS)
	}

	latest := make(map[string]int, len(records)) // SKU → índice del registro vigente
	order := make([]string, 0, len(records))
	for i, r := range records {
		j, seen := latest[r.SKU]
		if !seen {
			latest[r.SKU] = i
			order = append(order, r.SKU)
			continue
		}
		if r.WeekNumber >= records[j].WeekNumber {
			latest[r.SKU] = i
		}
	}

	snapshots := make([]entity.SkuSnapshot, 0, len(order))
	for _, sku := range order {
		snapshots = append(snapshots, newSnapshot(records[latest[sku]], targetWOS))
	}
	return snapshots, nil
}

func newSnapshot(r entity.SkuRecord, targetWOS int) entity.SkuSnapshot {
	color, size := entity.SplitSKU(r.SKU)
	tier := r.Velocity
	if tier == "" {
		tier = entity.UnknownLabel
	}
	return entity.SkuSnapshot{
		SkuRecord:          r,
		WOS:                WeeksOfSupply(r.CurrentQuantity, r.SalesRatePerWeek),
		TargetWOS:          targetWOS,
		SuggestedReplanQty: ReplanQuantity(targetWOS, r.SalesRatePerWeek, r.CurrentQuantity),
		Color:              color,
		Size:               size,
		VelocityTier:       tier,
	}
}

// WeeksOfSupply cantidad / tasa semanal. Con tasa 0 devuelve +Inf (también para 0/0).
func WeeksOfSupply(quantity, ratePerWeek float64) float64 {
	if ratePerWeek <= 0 {
		return math.Inf(1)
	}
	return quantity / ratePerWeek
}

// ReplanQuantity unidades para llevar el SKU al WOS objetivo:
// max(0, round(target × tasa − cantidad)), redondeo half-to-even, saturado en entity.MaxUnits.
func ReplanQuantity(targetWOS int, ratePerWeek, quantity float64) int {
	need := float64(targetWOS)*ratePerWeek - quantity
	return entity.ClampUnits(math.RoundToEven(need))
}
