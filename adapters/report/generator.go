package report

import (
	"context"
	"log"

	"logscope/domain/core"
	"logscope/domain/logs"
	"logscope/internal/errors"
	"logscope/internal/profiling"
	"logscope/ports"
)

// Generator adapts the profiling engine to the ReportGenerator port. The
// adapter only supplies the table and title and carries the rendered
// document back; engine failures are surfaced verbatim and never retried.
type Generator struct {
	profiler *profiling.Profiler
	renderer *profiling.Renderer
}

// NewGenerator creates a report generator backed by the built-in profiler
func NewGenerator() (*Generator, error) {
	renderer, err := profiling.NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Generator{
		profiler: profiling.NewProfiler(),
		renderer: renderer,
	}, nil
}

// Generate profiles the table and renders the standalone HTML document
func (g *Generator) Generate(ctx context.Context, table *logs.Table, title string) (*ports.ReportDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.ReportError(string(table.Kind()), err)
	}

	log.Printf("[ReportGenerator] Profiling %s dataset (%d rows)", table.Kind(), table.NumRows())

	profile, err := g.profiler.Profile(table, title)
	if err != nil {
		return nil, errors.ReportError(string(table.Kind()), err)
	}

	html, err := g.renderer.Render(profile)
	if err != nil {
		return nil, errors.ReportError(string(table.Kind()), err)
	}

	return &ports.ReportDocument{
		ID:    core.ReportID(core.NewID()),
		Title: title,
		HTML:  html,
	}, nil
}
