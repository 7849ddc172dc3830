package app

import (
	"context"

	"logscope/domain/logs"
	"logscope/internal/charts"
	"logscope/internal/metrics"
	"logscope/ports"
)

// AnalysisView bundles everything one dashboard view needs for a dataset
type AnalysisView struct {
	Table   *logs.Table
	Summary *metrics.Summary
	Charts  []charts.Chart
}

// AnalysisService loads a dataset and computes its metrics and chart
// descriptors. Tables are loaded fresh per call; no state leaks across
// sessions.
type AnalysisService struct {
	loader ports.DatasetLoader
	engine *metrics.Engine
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(loader ports.DatasetLoader, engine *metrics.Engine) *AnalysisService {
	return &AnalysisService{loader: loader, engine: engine}
}

// Analyze runs the full load-compute-chart pipeline for one dataset kind.
// Load and schema failures abort this dataset only.
func (s *AnalysisService) Analyze(ctx context.Context, kind logs.Kind) (*AnalysisView, error) {
	table, err := s.loader.Load(ctx, kind)
	if err != nil {
		return nil, err
	}

	summary, err := s.engine.Compute(table)
	if err != nil {
		return nil, err
	}

	chartSet, err := charts.Build(table, summary)
	if err != nil {
		return nil, err
	}

	return &AnalysisView{Table: table, Summary: summary, Charts: chartSet}, nil
}

// Summarize computes metrics only, without chart descriptors
func (s *AnalysisService) Summarize(ctx context.Context, kind logs.Kind) (*metrics.Summary, error) {
	table, err := s.loader.Load(ctx, kind)
	if err != nil {
		return nil, err
	}
	return s.engine.Compute(table)
}
