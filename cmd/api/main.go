package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/po-optimizer/docs"
	"github.com/jhoicas/po-optimizer/internal/application/replenishment"
	"github.com/jhoicas/po-optimizer/internal/domain/entity"
	"github.com/jhoicas/po-optimizer/internal/infrastructure/csvfile"
	"github.com/jhoicas/po-optimizer/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/po-optimizer/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/po-optimizer/internal/interfaces/http"
	"github.com/jhoicas/po-optimizer/pkg/config"
	"github.com/jhoicas/po-optimizer/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("data_path", cfg.PO.DataPath).
		Bool("auth", cfg.JWT.Enabled()).
		Msg("iniciando aplicación")

	if !entity.ValidTargetWOS(cfg.PO.DefaultTargetWOS) {
		log.Fatal().Int("target_wos", cfg.PO.DefaultTargetWOS).Msg("PO_DEFAULT_TARGET_WOS fuera de rango (8-20)")
	}

	// Caché de registros crudos por archivo; los resultados por TargetWOS nunca se guardan.
	cache := csvfile.NewRecordCache()
	source := csvfile.NewFileSource(cfg.PO.DataPath, cache, log)

	// Lectura inicial: un archivo sin columnas obligatorias debe frenar el arranque.
	if _, err := source.LoadRecords(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("lectura del archivo de datos")
	}

	optimizeUC := replenishment.NewOptimizeUseCase(
		source,
		entity.DefaultPOPolicy(),
		log,
		export.NewCSVExporter(),
		infrapdf.NewMarotoPOGenerator(cfg.App.Name+" - Suggested PO"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "PO Optimizer API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Optimize:         optimizeUC,
		DefaultTargetWOS: cfg.PO.DefaultTargetWOS,
		JWTSecret:        cfg.JWT.Secret,
		Logger:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
