package replenishment

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/po-optimizer/internal/application/dto"
	"github.com/jhoicas/po-optimizer/internal/domain"
	"github.com/jhoicas/po-optimizer/internal/domain/entity"
	"github.com/jhoicas/po-optimizer/internal/domain/repository"
	"github.com/jhoicas/po-optimizer/pkg/logger"
)

// POResult resultado de una corrida de optimización para un TargetWOS.
type POResult struct {
	RunID       string
	TargetWOS   int
	GeneratedAt time.Time
	Lines       []entity.POLine
	Issues      []entity.POIssue
}

// Summary total de unidades, colores distintos y SKUs distintos de la PO.
func (r *POResult) Summary() dto.POSummaryDTO {
	colors := make(map[string]struct{})
	skus := make(map[string]struct{})
	for _, l := range r.Lines {
		colors[l.Color] = struct{}{}
		skus[l.SKU] = struct{}{}
	}
	return dto.POSummaryDTO{
		TotalUnits: entity.TotalUnits(r.Lines),
		Colors:     len(colors),
		SKUs:       len(skus),
	}
}

// ToDTO convierte el resultado a la respuesta HTTP.
func (r *POResult) ToDTO() dto.POResultDTO {
	lines := make([]dto.POLineDTO, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, dto.POLineDTO{
			SkuSnapshotDTO:  SnapshotToDTO(l.SkuSnapshot),
			PercentOfVolume: decimal.NewFromFloat(l.PercentOfVolume).Round(4),
			Tier:            string(l.Tier),
			Reason:          l.Reason,
		})
	}
	issues := make([]dto.POIssueDTO, 0, len(r.Issues))
	for _, i := range r.Issues {
		issues = append(issues, dto.POIssueDTO{Kind: string(i.Kind), Subject: i.Subject, Message: i.Message})
	}
	return dto.POResultDTO{
		RunID:       r.RunID,
		TargetWOS:   r.TargetWOS,
		GeneratedAt: r.GeneratedAt,
		Valid:       len(r.Issues) == 0,
		Summary:     r.Summary(),
		Lines:       lines,
		Issues:      issues,
	}
}

// SnapshotToDTO convierte una foto de SKU; el WOS infinito se expone como null.
func SnapshotToDTO(s entity.SkuSnapshot) dto.SkuSnapshotDTO {
	var wos *decimal.Decimal
	if !math.IsInf(s.WOS, 0) && !math.IsNaN(s.WOS) {
		d := decimal.NewFromFloat(s.WOS).Round(2)
		wos = &d
	}
	return dto.SkuSnapshotDTO{
		SKU:                s.SKU,
		Color:              s.Color,
		Size:               s.Size,
		VelocityTier:       s.VelocityTier,
		WeekNumber:         s.WeekNumber,
		SalesRatePerWeek:   decimal.NewFromFloat(s.SalesRatePerWeek).Round(2),
		CurrentQuantity:    decimal.NewFromFloat(s.CurrentQuantity).Round(2),
		WOS:                wos,
		TargetWOS:          s.TargetWOS,
		SuggestedReplanQty: s.SuggestedReplanQty,
	}
}

// OptimizeUseCase ejecuta el pipeline completo: carga → foto por SKU → PO → validación.
// No guarda resultados entre corridas: cada llamada recalcula con el TargetWOS recibido.
type OptimizeUseCase struct {
	source    repository.SkuRecordSource
	suggester *Suggester
	validator *Validator
	exporters map[ExportFormat]POExporter
	log       *logger.Logger
	now       func() time.Time
}

// NewOptimizeUseCase construye el caso de uso inyectando la fuente de datos y los exportadores.
func NewOptimizeUseCase(
	source repository.SkuRecordSource,
	policy entity.POPolicy,
	log *logger.Logger,
	exporters ...POExporter,
) *OptimizeUseCase {
	byFormat := make(map[ExportFormat]POExporter, len(exporters))
	for _, e := range exporters {
		byFormat[e.Format()] = e
	}
	return &OptimizeUseCase{
		source:    source,
		suggester: NewSuggester(policy),
		validator: NewValidator(policy),
		exporters: byFormat,
		log:       log.Component("replenishment"),
		now:       time.Now,
	}
}

// Snapshots devuelve la foto preparada por SKU para el TargetWOS indicado.
func (uc *OptimizeUseCase) Snapshots(ctx context.Context, targetWOS int) ([]entity.SkuSnapshot, error) {
	if !entity.ValidTargetWOS(targetWOS) {
		return nil, fmt.Errorf("%w: %d (permitido %d-%d)",
			domain.ErrInvalidTargetWOS, targetWOS, entity.MinTargetWOS, entity.MaxTargetWOS)
	}
	records, err := uc.source.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("replenishment: cargar registros: %w", err)
	}
	return PrepareSnapshots(records, targetWOS)
}

// Optimize sugiere y valida la PO. Las advertencias de validación no son errores:
// el resultado siempre incluye la PO completa.
func (uc *OptimizeUseCase) Optimize(ctx context.Context, targetWOS int) (*POResult, error) {
	snapshots, err := uc.Snapshots(ctx, targetWOS)
	if err != nil {
		return nil, err
	}

	lines := uc.suggester.Suggest(snapshots)
	issues := uc.validator.Validate(lines)

	result := &POResult{
		RunID:       uuid.NewString(),
		TargetWOS:   targetWOS,
		GeneratedAt: uc.now(),
		Lines:       lines,
		Issues:      issues,
	}

	uc.log.Info().
		Str("run_id", result.RunID).
		Int("target_wos", targetWOS).
		Int("skus", len(snapshots)).
		Int("po_lines", len(lines)).
		Int("total_units", entity.TotalUnits(lines)).
		Int("issues", len(issues)).
		Msg("PO sugerida")
	return result, nil
}

// ExportPO corre la optimización y la serializa en el formato pedido.
func (uc *OptimizeUseCase) ExportPO(
	ctx context.Context,
	targetWOS int,
	format ExportFormat,
) (data []byte, filename, contentType string, err error) {
	if _, ok := uc.exporters[format]; !ok {
		return nil, "", "", unsupportedFormat(format)
	}
	result, err := uc.Optimize(ctx, targetWOS)
	if err != nil {
		return nil, "", "", err
	}
	return uc.Export(ctx, result, format)
}

// Export serializa un resultado ya calculado.
// Retorna domain.ErrInvalidInput si no hay exportador para el formato.
func (uc *OptimizeUseCase) Export(
	ctx context.Context,
	result *POResult,
	format ExportFormat,
) (data []byte, filename, contentType string, err error) {
	exporter, ok := uc.exporters[format]
	if !ok {
		return nil, "", "", unsupportedFormat(format)
	}

	data, err = exporter.Export(ctx, result)
	if err != nil {
		return nil, "", "", fmt.Errorf("replenishment: exportar %s: %w", format, err)
	}

	uc.log.Info().
		Str("run_id", result.RunID).
		Str("format", string(format)).
		Int("bytes", len(data)).
		Msg("PO exportada")
	return data, "optimized_po." + string(format), exporter.ContentType(), nil
}

func unsupportedFormat(format ExportFormat) error {
	return fmt.Errorf("%w: formato de exportación no soportado: %q", domain.ErrInvalidInput, format)
}

// Reload descarta la caché de la fuente si la soporta y vuelve a leer el archivo.
func (uc *OptimizeUseCase) Reload(ctx context.Context) error {
	reloader, ok := uc.source.(repository.SkuRecordReloader)
	if !ok {
		return nil
	}
	if err := reloader.Reload(ctx); err != nil {
		return fmt.Errorf("replenishment: recargar datos: %w", err)
	}
	uc.log.Info().Msg("datos recargados")
	return nil
}
