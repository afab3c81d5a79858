package replenishment

import (
	"fmt"
	"iter"
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/po-optimizer/internal/domain/entity"
)

// Validator revisa la PO contra los mínimos de unidades (total, por color y por SKU).
type Validator struct {
	policy  entity.POPolicy
	printer *message.Printer
}

// NewValidator construye el validador con la política indicada.
func NewValidator(policy entity.POPolicy) *Validator {
	return &Validator{
		policy:  policy,
		printer: message.NewPrinter(language.English),
	}
}

// Issues produce las advertencias en orden: total, colores (orden alfabético) y líneas
// (orden de la PO). La secuencia se puede volver a derivar con las mismas líneas.
func (v *Validator) Issues(lines []entity.POLine) iter.Seq[entity.POIssue] {
	return func(yield func(entity.POIssue) bool) {
		if total := entity.TotalUnits(lines); total < v.policy.MinTotalUnits {
			if !yield(entity.POIssue{
				Kind:    entity.POIssueTotalUnits,
				Message: fmt.Sprintf("Total Units below minimum: %d < %d", total, v.policy.MinTotalUnits),
			}) {
				return
			}
		}

		byColor := make(map[string]int)
		for _, l := range lines {
			byColor[l.Color] = entity.AddUnits(byColor[l.Color], l.SuggestedReplanQty)
		}
		colors := make([]string, 0, len(byColor))
		for c := range byColor {
			colors = append(colors, c)
		}
		slices.Sort(colors)
		for _, c := range colors {
			if byColor[c] >= v.policy.MinColorUnits {
				continue
			}
			if !yield(entity.POIssue{
				Kind:    entity.POIssueColorUnits,
				Subject: c,
				Message: v.printer.Sprintf("Color '%s' has less than %d units", c, v.policy.MinColorUnits),
			}) {
				return
			}
		}

		for _, l := range lines {
			if l.SuggestedReplanQty >= v.policy.MinLineUnits {
				continue
			}
			if !yield(entity.POIssue{
				Kind:    entity.POIssueLineUnits,
				Subject: l.SKU,
				Message: fmt.Sprintf("SKU %s has less than %d units", l.SKU, v.policy.MinLineUnits),
			}) {
				return
			}
		}
	}
}

// Validate materializa Issues. Un resultado vacío significa que la PO cumple todo.
func (v *Validator) Validate(lines []entity.POLine) []entity.POIssue {
	return slices.Collect(v.Issues(lines))
}
