// po ejecuta el optimizador de órdenes de compra desde la terminal.
//
// Uso:
//
//	po suggest  --file data.csv --target-wos 15 [--csv optimized_po.csv] [--pdf optimized_po.pdf]
//	po snapshots --file data.csv --target-wos 15
//	po token    --operator ana
//
// La configuración (PO_DATA_PATH, PO_DEFAULT_TARGET_WOS, JWT_SECRET...) se lee igual que en la API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/po-optimizer/internal/application/replenishment"
	"github.com/jhoicas/po-optimizer/internal/domain/entity"
	"github.com/jhoicas/po-optimizer/internal/infrastructure/csvfile"
	"github.com/jhoicas/po-optimizer/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/po-optimizer/internal/infrastructure/pdf"
	"github.com/jhoicas/po-optimizer/internal/interfaces/cli"
	"github.com/jhoicas/po-optimizer/pkg/config"
	"github.com/jhoicas/po-optimizer/pkg/jwt"
	"github.com/jhoicas/po-optimizer/pkg/logger"
)

var errNoJWTSecret = errors.New("JWT_SECRET no está configurado: defina el secreto de la API para emitir tokens")

type options struct {
	file      string
	targetWOS int
	logLevel  string
	csvOut    string
	pdfOut    string
	operator  string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts := &options{}

	root := &cobra.Command{
		Use:           "po",
		Short:         "Optimizador de órdenes de compra de reposición",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.file, "file", cfg.PO.DataPath, "archivo de ventas/inventario separado por ';'")
	root.PersistentFlags().IntVar(&opts.targetWOS, "target-wos", cfg.PO.DefaultTargetWOS, "objetivo de semanas de inventario (8-20)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "trace, debug, info, warn, error")

	suggest := &cobra.Command{
		Use:   "suggest",
		Short: "Sugiere y valida la PO",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSuggest(cmd, cfg, opts)
		},
	}
	suggest.Flags().StringVar(&opts.csvOut, "csv", "", "escribe la PO en este archivo CSV")
	suggest.Flags().StringVar(&opts.pdfOut, "pdf", "", "escribe la PO en este archivo PDF")

	snapshots := &cobra.Command{
		Use:   "snapshots",
		Short: "Muestra la foto actual por SKU",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := newUseCase(cfg, opts)
			snaps, err := uc.Snapshots(cmd.Context(), opts.targetWOS)
			if err != nil {
				return err
			}
			return cli.RenderSnapshots(cmd.OutOrStdout(), snaps)
		},
	}

	token := &cobra.Command{
		Use:   "token",
		Short: "Genera un Bearer Token para la API (requiere JWT_SECRET)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runToken(cmd.OutOrStdout(), cfg, opts.operator)
		},
	}
	token.Flags().StringVar(&opts.operator, "operator", "", "nombre del operador")
	_ = token.MarkFlagRequired("operator")

	root.AddCommand(suggest, snapshots, token)
	return root
}

func newUseCase(cfg *config.Config, opts *options) *replenishment.OptimizeUseCase {
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: opts.logLevel, Out: os.Stderr})
	source := csvfile.NewFileSource(opts.file, nil, log)
	return replenishment.NewOptimizeUseCase(
		source,
		entity.DefaultPOPolicy(),
		log,
		export.NewCSVExporter(),
		infrapdf.NewMarotoPOGenerator(cfg.App.Name+" - Suggested PO"),
	)
}

func runSuggest(cmd *cobra.Command, cfg *config.Config, opts *options) error {
	ctx := cmd.Context()
	uc := newUseCase(cfg, opts)

	result, err := uc.Optimize(ctx, opts.targetWOS)
	if err != nil {
		return err
	}
	if err := cli.RenderPO(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	for _, t := range exportTargets(opts) {
		if err := writeExport(ctx, cmd.ErrOrStderr(), uc, result, t); err != nil {
			return err
		}
	}
	return nil
}

type exportTarget struct {
	format replenishment.ExportFormat
	path   string
}

// exportTargets archivos pedidos por flags, siempre en el orden CSV, PDF.
func exportTargets(opts *options) []exportTarget {
	var targets []exportTarget
	for _, t := range []exportTarget{
		{replenishment.ExportCSV, opts.csvOut},
		{replenishment.ExportPDF, opts.pdfOut},
	} {
		if t.path != "" {
			targets = append(targets, t)
		}
	}
	return targets
}

func writeExport(
	ctx context.Context,
	log io.Writer,
	uc *replenishment.OptimizeUseCase,
	result *replenishment.POResult,
	t exportTarget,
) error {
	data, _, _, err := uc.Export(ctx, result, t.format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(t.path, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", t.path, err)
	}
	fmt.Fprintf(log, "PO %s escrita en %s\n", t.format, t.path)
	return nil
}

// runToken imprime un Bearer Token para el operador. Sin JWT_SECRET no hay con qué firmar.
func runToken(w io.Writer, cfg *config.Config, operator string) error {
	if !cfg.JWT.Enabled() {
		return errNoJWTSecret
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, operator, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, tok)
	return err
}
