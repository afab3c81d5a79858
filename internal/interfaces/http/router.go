package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/po-optimizer/internal/application/replenishment"
	"github.com/jhoicas/po-optimizer/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Optimize         *replenishment.OptimizeUseCase
	DefaultTargetWOS int
	JWTSecret        string // vacío = rutas abiertas
	Logger           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	po := api.Group("/po")
	if deps.JWTSecret != "" {
		po.Use(AuthMiddleware(deps.JWTSecret))
	}

	poHandler := NewPOHandler(deps.Optimize, deps.DefaultTargetWOS, deps.Logger)
	po.Get("/suggestion", poHandler.Suggest)
	po.Get("/suggestion/csv", poHandler.Download(replenishment.ExportCSV))
	po.Get("/suggestion/pdf", poHandler.Download(replenishment.ExportPDF))
	po.Get("/snapshots", poHandler.Snapshots)
	po.Post("/data/reload", poHandler.Reload)
}
