// Command incident-etl processes operator incident communiqués for the
// Mendoza basin: it detects each report's dialect, extracts and validates an
// incident record, persists it, and refreshes the Excel/QGIS exports.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/basinwatch/incident-data-etl/internal/adapter/sqlite"
	"github.com/basinwatch/incident-data-etl/internal/adapter/textfile"
	"github.com/basinwatch/incident-data-etl/internal/config"
	"github.com/basinwatch/incident-data-etl/internal/export"
	"github.com/basinwatch/incident-data-etl/internal/extract"
	"github.com/basinwatch/incident-data-etl/internal/observability"
	"github.com/basinwatch/incident-data-etl/internal/pipeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "incident-etl",
		Short:        "Extract, normalize, and persist basin incident reports",
		SilenceUsage: true,
	}
	root.AddCommand(newProcessCmd(), newExportCmd(), newGenmockCmd())
	return root
}

func newProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Run one pass over the raw report directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg)
			metrics := observability.NewMetrics()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := sqlite.Open(ctx, cfg.DBPath, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			reader := textfile.NewReader(cfg.RawDir, logger)
			p := pipeline.New(reader, extract.NewRegistry(logger), store, logger, metrics)

			summary, err := p.Run(ctx)
			if err != nil {
				logger.Error("run aborted", "error", err)
				return err
			}

			if cfg.ExportEnabled {
				if err := export.NewService(store, logger, metrics).Export(ctx, cfg.ExportDir); err != nil {
					logger.Error("export failed", "error", err)
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"processed %d: %d persisted, %d duplicates, %d invalid, %d parse errors, %d store failures\n",
				summary.Processed, summary.Persisted, summary.Duplicates,
				summary.Invalid, summary.ParseErrors, summary.StoreFailures)
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Rewrite the Excel and QGIS CSV exports from the database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg)
			metrics := observability.NewMetrics()

			store, err := sqlite.Open(cmd.Context(), cfg.DBPath, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			return export.NewService(store, logger, metrics).Export(cmd.Context(), cfg.ExportDir)
		},
	}
}

func newGenmockCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "genmock",
		Short: "Write sample reports in every supported dialect",
		Long: "Writes one synthetic report per operator dialect plus one with\n" +
			"out-of-basin coordinates, for exercising the pipeline end to end\n" +
			"without confidential source documents.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			for name, text := range mockReports {
				path := filepath.Join(outDir, name)
				if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "data/raw", "directory for the generated reports")
	return cmd
}
