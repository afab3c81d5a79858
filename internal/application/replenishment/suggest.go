package replenishment

import (
	"sort"

	"github.com/jhoicas/po-optimizer/internal/domain/entity"
)

// Suggester aplica las reglas de inclusión de la PO en tres niveles:
// alta rotación, baja rotación colectiva y relleno hasta el mínimo de unidades.
type Suggester struct {
	policy entity.POPolicy
}

// NewSuggester construye el sugeridor con la política indicada.
func NewSuggester(policy entity.POPolicy) *Suggester {
	return &Suggester{policy: policy}
}

// Suggest devuelve las líneas de la PO. Cada SKU aparece como máximo una vez (gana el
// primer nivel que lo incluye). No modifica snapshots.
func (s *Suggester) Suggest(snapshots []entity.SkuSnapshot) []entity.POLine {
	shares := VolumeShares(snapshots)
	po := make([]entity.POLine, 0, len(snapshots))
	included := make(map[string]bool, len(snapshots))

	add := func(i int, tier entity.POTier, reason string) bool {
		snap := snapshots[i]
		if included[snap.SKU] {
			return false
		}
		included[snap.SKU] = true
		po = append(po, entity.POLine{
			SkuSnapshot:     snap,
			PercentOfVolume: shares[i],
			Tier:            tier,
			Reason:          reason,
		})
		return true
	}

	// 1. Alta rotación y desabastecidos
	for i, snap := range snapshots {
		if shares[i] >= s.policy.HighVelocityShare && s.understocked(snap) {
			add(i, entity.POTierHighVelocity, entity.ReasonHighVelocity)
		}
	}

	// 2. Baja rotación: todo el grupo o nada, según su participación acumulada
	var low []int
	lowShare := 0.0
	for i, snap := range snapshots {
		if shares[i] < s.policy.HighVelocityShare && s.understocked(snap) {
			low = append(low, i)
			lowShare += shares[i]
		}
	}
	if lowShare > s.policy.LowVelocityCollectiveShare {
		for _, i := range low {
			add(i, entity.POTierLowVelocity, entity.ReasonLowVelocity)
		}
	}

	// 3. Relleno por menor WOS hasta alcanzar el mínimo de unidades
	total := entity.TotalUnits(po)
	if total >= s.policy.MinTotalUnits {
		return po
	}
	candidates := make([]int, 0, len(snapshots)-len(po))
	for i, snap := range snapshots {
		if !included[snap.SKU] {
			candidates = append(candidates, i)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return snapshots[candidates[a]].WOS < snapshots[candidates[b]].WOS
	})
	for _, i := range candidates {
		qty := snapshots[i].SuggestedReplanQty
		if qty < s.policy.MinLineUnits {
			continue
		}
		if add(i, entity.POTierFillUp, entity.ReasonFillUp) {
			total = entity.AddUnits(total, qty)
		}
		if total >= s.policy.MinTotalUnits {
			break
		}
	}
	return po
}

func (s *Suggester) understocked(snap entity.SkuSnapshot) bool {
	return snap.HasFiniteWOS() && snap.WOS < s.policy.MaxUnderstockWOS
}

// VolumeShares participación de cada SKU en la venta semanal total, en el orden de entrada.
// Si la venta total es 0, todas las participaciones son 0.
func VolumeShares(snapshots []entity.SkuSnapshot) []float64 {
	total := 0.0
	for _, s := range snapshots {
		total += s.SalesRatePerWeek
	}
	shares := make([]float64, len(snapshots))
	if total <= 0 {
		return shares
	}
	for i, s := range snapshots {
		shares[i] = s.SalesRatePerWeek / total
	}
	return shares
}
