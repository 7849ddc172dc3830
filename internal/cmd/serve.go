package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"logscope/adapters/csvfile"
	"logscope/adapters/report"
	"logscope/app"
	"logscope/internal/config"
	"logscope/internal/metrics"
	"logscope/ui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interactive dashboard server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		analysis, reports, err := buildServices(cfg)
		if err != nil {
			return err
		}

		dashboard, err := ui.NewApp(ui.Config{Port: cfg.Server.Port}, analysis, reports)
		if err != nil {
			return err
		}

		log.Printf("Dashboard starting on port %s (data: %s)", cfg.Server.Port, cfg.Paths.DataDir)
		return dashboard.Start()
	},
}

// buildServices wires the loader, metrics engine, and report generator into
// the two application services
func buildServices(cfg *config.Config) (*app.AnalysisService, *app.ReportService, error) {
	loader := csvfile.NewLoader(cfg.Paths.DataDir)
	engine := metrics.NewEngine(cfg)

	generator, err := report.NewGenerator()
	if err != nil {
		return nil, nil, err
	}

	analysis := app.NewAnalysisService(loader, engine)
	reports := app.NewReportService(loader, generator, cfg.Paths.ReportsDir)
	return analysis, reports, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
