package entity

import "math"

// POTier nivel de la regla que incluyó al SKU en la orden de compra.
type POTier string

const (
	POTierHighVelocity POTier = "high_velocity"
	POTierLowVelocity  POTier = "low_velocity"
	POTierFillUp       POTier = "fill_up"
)

// Razones legibles que acompañan cada línea de la PO.
const (
	ReasonHighVelocity = "High velocity & WOS < 10"
	ReasonLowVelocity  = "Low velocity & collectively understocked"
	ReasonFillUp       = "Fill-up to reach minimum PO units"
)

// POLine línea de la orden de compra sugerida.
type POLine struct {
	SkuSnapshot
	PercentOfVolume float64 // participación del SKU en la venta semanal total (0..1)
	Tier            POTier
	Reason          string
}

// POPolicy umbrales de negocio compartidos por el sugeridor y el validador.
type POPolicy struct {
	HighVelocityShare          float64 // % de volumen a partir del cual un SKU es de alta rotación
	MaxUnderstockWOS           float64 // WOS por debajo del cual un SKU se considera desabastecido
	LowVelocityCollectiveShare float64 // % acumulado que debe superar el grupo de baja rotación
	MinTotalUnits              int     // mínimo de unidades de la PO completa
	MinColorUnits              int     // mínimo de unidades por color
	MinLineUnits               int     // mínimo de unidades por SKU
}

// DefaultPOPolicy reglas vigentes de la PO.
func DefaultPOPolicy() POPolicy {
	return POPolicy{
		HighVelocityShare:          0.05,
		MaxUnderstockWOS:           10,
		LowVelocityCollectiveShare: 0.05,
		MinTotalUnits:              5000,
		MinColorUnits:              1000,
		MinLineUnits:               25,
	}
}

// MaxUnits techo de cualquier cantidad de unidades (por línea o acumulada).
// Las cantidades mayores se saturan en este valor.
const MaxUnits = math.MaxInt32

// ClampUnits convierte una cantidad calculada a unidades enteras dentro de [0, MaxUnits].
// NaN y valores no positivos valen 0.
func ClampUnits(v float64) int {
	switch {
	case !(v > 0):
		return 0
	case v >= MaxUnits:
		return MaxUnits
	default:
		return int(v)
	}
}

// AddUnits suma dos cantidades saturando en MaxUnits.
func AddUnits(a, b int) int {
	if a > MaxUnits-b {
		return MaxUnits
	}
	return a + b
}

// TotalUnits suma de SuggestedReplanQty de las líneas, saturada en MaxUnits.
func TotalUnits(lines []POLine) int {
	total := 0
	for _, l := range lines {
		total = AddUnits(total, l.SuggestedReplanQty)
	}
	return total
}

// POIssueKind tipo de restricción incumplida por la PO.
type POIssueKind string

const (
	POIssueTotalUnits POIssueKind = "total_units"
	POIssueColorUnits POIssueKind = "color_units"
	POIssueLineUnits  POIssueKind = "line_units"
)

// POIssue advertencia no bloqueante sobre la PO. La PO se genera igual.
type POIssue struct {
	Kind    POIssueKind
	Subject string // color o SKU afectado; vacío para el total
	Message string
}

func (i POIssue) String() string { return i.Message }
