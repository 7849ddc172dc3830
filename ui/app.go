package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/semaphore"

	"logscope/adapters/excel"
	"logscope/app"
)

//go:embed templates/*
var embeddedFiles embed.FS

// maxConcurrentReports caps simultaneous on-demand profiling runs; report
// generation is the only CPU-heavy operation in the dashboard
const maxConcurrentReports = 2

// App represents the dashboard application
type App struct {
	router    *chi.Mux
	analysis  *app.AnalysisService
	reports   *app.ReportService
	exporter  *excel.Exporter
	templates *template.Template
	reportSem *semaphore.Weighted
	port      string
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates a new dashboard application
func NewApp(config Config, analysis *app.AnalysisService, reports *app.ReportService) (*App, error) {
	funcMap := template.FuncMap{
		"pct":      func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
		"usd":      func(v float64) string { return fmt.Sprintf("$%.2f", v) },
		"f1":       func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"countfmt": func(v float64) string { return fmt.Sprintf("%d", int(v)) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		analysis:  analysis,
		reports:   reports,
		exporter:  excel.NewExporter(),
		templates: templates,
		reportSem: semaphore.NewWeighted(maxConcurrentReports),
		port:      config.Port,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Main pages
	a.router.Get("/", a.handleIndex)
	a.router.Get("/datasets/{kind}", a.handleDataset)
	a.router.Get("/datasets/{kind}/report", a.handleReport)
	a.router.Get("/datasets/{kind}/export.xlsx", a.handleExport)

	// API endpoints
	a.router.Get("/api/datasets/{kind}/metrics", a.handleMetricsJSON)
	a.router.Get("/api/datasets/{kind}/charts", a.handleChartsJSON)
}

// Router exposes the configured router, used by tests
func (a *App) Router() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.port
	log.Printf("Starting logscope dashboard on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// renderTemplate executes a template with the given data
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
