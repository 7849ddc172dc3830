package app

import (
	"context"
	"os"
	"path/filepath"

	"logscope/domain/logs"
	"logscope/internal"
	"logscope/internal/errors"
	"logscope/ports"
)

// BatchResult records the outcome of one dataset's report generation
type BatchResult struct {
	Kind logs.Kind
	Path string
	Err  error
}

// ReportService orchestrates profiling-report generation: load the dataset,
// invoke the delegated engine, persist the HTML artifact.
type ReportService struct {
	loader     ports.DatasetLoader
	generator  ports.ReportGenerator
	reportsDir string
	logger     *internal.Logger
}

// NewReportService creates a report service writing into reportsDir
func NewReportService(loader ports.DatasetLoader, generator ports.ReportGenerator, reportsDir string) *ReportService {
	return &ReportService{
		loader:     loader,
		generator:  generator,
		reportsDir: reportsDir,
		logger:     internal.NewDefaultLogger(),
	}
}

// Generate produces the profiling report for one dataset in memory
func (s *ReportService) Generate(ctx context.Context, kind logs.Kind) (*ports.ReportDocument, error) {
	table, err := s.loader.Load(ctx, kind)
	if err != nil {
		return nil, err
	}
	return s.generator.Generate(ctx, table, kind.Title())
}

// GenerateAndSave produces one report and writes it to the fixed report
// path, returning the written file path
func (s *ReportService) GenerateAndSave(ctx context.Context, kind logs.Kind) (string, error) {
	doc, err := s.Generate(ctx, kind)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.reportsDir, 0o755); err != nil {
		return "", errors.ReportError(string(kind), err)
	}

	path := filepath.Join(s.reportsDir, kind.ReportFileName())
	if err := os.WriteFile(path, doc.HTML, 0o644); err != nil {
		return "", errors.ReportError(string(kind), err)
	}

	return path, nil
}

// GenerateAll runs report generation for all five datasets sequentially.
// A failing dataset is logged and recorded; the batch continues to the
// next dataset. Each report is independently regenerable.
func (s *ReportService) GenerateAll(ctx context.Context) []BatchResult {
	kinds := logs.AllKinds()
	results := make([]BatchResult, 0, len(kinds))

	for _, kind := range kinds {
		path, err := s.GenerateAndSave(ctx, kind)
		if err != nil {
			s.logger.Error("%s report failed: %v", kind, err)
		} else {
			s.logger.Info("%s report saved: %s", kind, path)
		}
		results = append(results, BatchResult{Kind: kind, Path: path, Err: err})
	}

	return results
}
