package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/po-optimizer/internal/application/dto"
	"github.com/jhoicas/po-optimizer/internal/application/replenishment"
	"github.com/jhoicas/po-optimizer/internal/domain"
	"github.com/jhoicas/po-optimizer/pkg/logger"
)

// POHandler maneja las peticiones HTTP del optimizador de órdenes de compra.
type POHandler struct {
	uc               *replenishment.OptimizeUseCase
	defaultTargetWOS int
	log              *logger.Logger
}

// NewPOHandler construye el handler.
func NewPOHandler(uc *replenishment.OptimizeUseCase, defaultTargetWOS int, log *logger.Logger) *POHandler {
	return &POHandler{uc: uc, defaultTargetWOS: defaultTargetWOS, log: log.Component("http")}
}

// Suggest godoc
// @Summary      Sugerir orden de compra
// @Description  Calcula la PO para el objetivo de semanas de inventario y la valida.
//
//	Las advertencias de validación no impiden la respuesta.
//
// @Tags         po
// @Security     Bearer
// @Produce      json
// @Param        target_wos  query  int  false  "Objetivo de WOS (8-20). Default: PO_DEFAULT_TARGET_WOS."
// @Success      200  {object}  dto.POResultDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/po/suggestion [get]
func (h *POHandler) Suggest(c *fiber.Ctx) error {
	target, err := h.targetWOS(c)
	if err != nil {
		return h.fail(c, err)
	}
	result, err := h.uc.Optimize(c.Context(), target)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result.ToDTO())
}

// Snapshots godoc
// @Summary      Foto actual por SKU
// @Description  Última semana de cada SKU con WOS y cantidad sugerida de re-plan.
// @Tags         po
// @Security     Bearer
// @Produce      json
// @Param        target_wos  query  int  false  "Objetivo de WOS (8-20)."
// @Success      200  {object}  dto.SnapshotsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/po/snapshots [get]
func (h *POHandler) Snapshots(c *fiber.Ctx) error {
	target, err := h.targetWOS(c)
	if err != nil {
		return h.fail(c, err)
	}
	snapshots, err := h.uc.Snapshots(c.Context(), target)
	if err != nil {
		return h.fail(c, err)
	}
	out := dto.SnapshotsDTO{
		TargetWOS: target,
		Total:     len(snapshots),
		Snapshots: make([]dto.SkuSnapshotDTO, 0, len(snapshots)),
	}
	for _, s := range snapshots {
		out.Snapshots = append(out.Snapshots, replenishment.SnapshotToDTO(s))
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar la orden de compra
// @Description  CSV (SKU, Color, Size, Suggested Replan Qty, Reason) o PDF.
// @Tags         po
// @Security     Bearer
// @Produce      text/csv
// @Produce      application/pdf
// @Param        target_wos  query  int  false  "Objetivo de WOS (8-20)."
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/po/suggestion/csv [get]
// @Router       /api/po/suggestion/pdf [get]
func (h *POHandler) Download(format replenishment.ExportFormat) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target, err := h.targetWOS(c)
		if err != nil {
			return h.fail(c, err)
		}
		data, filename, contentType, err := h.uc.ExportPO(c.Context(), target, format)
		if err != nil {
			return h.fail(c, err)
		}
		c.Attachment(filename)
		c.Set(fiber.HeaderContentType, contentType)
		return c.Send(data)
	}
}

// Reload godoc
// @Summary      Recargar el archivo de datos
// @Description  Invalida la caché del archivo de ventas y lo vuelve a leer.
// @Tags         po
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/po/data/reload [post]
func (h *POHandler) Reload(c *fiber.Ctx) error {
	if err := h.uc.Reload(c.Context()); err != nil {
		return h.fail(c, err)
	}
	h.log.Info().Str("operator", GetOperator(c)).Msg("recarga de datos solicitada")
	return c.JSON(dto.MessageResponse{Message: "datos recargados"})
}

// targetWOS lee ?target_wos; ausente → valor por defecto de configuración.
func (h *POHandler) targetWOS(c *fiber.Ctx) (int, error) {
	raw := c.Query("target_wos")
	if raw == "" {
		return h.defaultTargetWOS, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	return n, nil
}

func (h *POHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrDataFormat):
		h.log.Error().Err(err).Msg("archivo de datos inválido")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "DATA_FORMAT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTargetWOS):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	default:
		h.log.Error().Err(err).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
