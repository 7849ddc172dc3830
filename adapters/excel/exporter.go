package excel

import (
	"bytes"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"logscope/internal/metrics"
)

// Exporter writes a computed metrics summary into an XLSX workbook: one
// overview sheet plus one sheet per breakdown.
type Exporter struct{}

// NewExporter creates a metrics exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// sheetNameLimit is the workbook format's sheet name cap
const sheetNameLimit = 31

// WriteSummary renders the summary into an in-memory workbook
func (e *Exporter) WriteSummary(summary *metrics.Summary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	overview := "Summary"
	if err := f.SetSheetName("Sheet1", overview); err != nil {
		return nil, fmt.Errorf("failed to name overview sheet: %w", err)
	}

	f.SetCellValue(overview, "A1", "Dataset")
	f.SetCellValue(overview, "B1", summary.Kind.Title())
	f.SetCellValue(overview, "A2", "Rows")
	f.SetCellValue(overview, "B2", summary.RowCount)

	f.SetCellValue(overview, "A4", "Metric")
	f.SetCellValue(overview, "B4", "Value")
	row := 5
	for _, m := range summary.Metrics {
		f.SetCellValue(overview, fmt.Sprintf("A%d", row), m.Label)
		f.SetCellValue(overview, fmt.Sprintf("B%d", row), formatValue(m))
		row++
	}

	for _, b := range summary.Breakdowns {
		name := sheetName(b.Name)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		f.SetCellValue(name, "A1", b.Label)
		f.SetCellValue(name, "A2", "Category")
		f.SetCellValue(name, "B2", "Value")
		for i, entry := range b.Entries {
			f.SetCellValue(name, fmt.Sprintf("A%d", i+3), entry.Key)
			f.SetCellValue(name, fmt.Sprintf("B%d", i+3), entry.Value)
		}
	}

	return f.WriteToBuffer()
}

// SaveSummary writes the workbook to disk
func (e *Exporter) SaveSummary(summary *metrics.Summary, path string) error {
	buf, err := e.WriteSummary(summary)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func formatValue(m metrics.Metric) interface{} {
	switch m.Format {
	case metrics.FormatPercent:
		return fmt.Sprintf("%.1f%%", m.Value*100)
	case metrics.FormatCurrency:
		return fmt.Sprintf("$%.2f", m.Value)
	case metrics.FormatCount:
		return int(m.Value)
	default:
		return m.Value
	}
}

func sheetName(name string) string {
	if len(name) > sheetNameLimit {
		return name[:sheetNameLimit]
	}
	return name
}
