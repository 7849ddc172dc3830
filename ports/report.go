package ports

import (
	"context"

	"logscope/domain/core"
	"logscope/domain/logs"
)

// ReportDocument is a rendered profiling report artifact
type ReportDocument struct {
	ID    core.ReportID
	Title string
	HTML  []byte
}

// ReportGenerator wraps the automated profiling engine. The adapter supplies
// the table and a title and persists or returns the result; it never inspects
// or alters the report's internal content.
type ReportGenerator interface {
	Generate(ctx context.Context, table *logs.Table, title string) (*ReportDocument, error)
}
