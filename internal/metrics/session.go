package metrics

import (
	"github.com/montanaflynn/stats"

	"logscope/domain/logs"
)

// computeSession derives the session dataset metrics: duration summary,
// completion rate, page and data-transfer aggregates.
func (e *Engine) computeSession(table *logs.Table) (*Summary, error) {
	durations, err := table.Floats("duration_minutes")
	if err != nil {
		return nil, schemaErr(table, "mean_duration", "duration_minutes", err)
	}
	pages, err := table.Ints("pages_accessed")
	if err != nil {
		return nil, schemaErr(table, "mean_pages", "pages_accessed", err)
	}
	transferred, err := table.Floats("data_transferred_mb")
	if err != nil {
		return nil, schemaErr(table, "total_data_mb", "data_transferred_mb", err)
	}
	statuses, err := table.Strings("session_status")
	if err != nil {
		return nil, schemaErr(table, "completion_rate", "session_status", err)
	}

	total := table.NumRows()

	// stats returns NaN on empty input; an empty table must yield zeros
	meanDuration, medianDuration := 0.0, 0.0
	if total > 0 {
		meanDuration, _ = stats.Mean(durations)
		medianDuration, _ = stats.Median(durations)
	}

	completed := 0
	statusCounts := newCounter()
	for _, s := range statuses {
		statusCounts.inc(s)
		if s == e.session.CompletedStatus {
			completed++
		}
	}

	pagesSum := 0
	for _, p := range pages {
		pagesSum += p
	}
	dataSum := 0.0
	for _, mb := range transferred {
		dataSum += mb
	}

	return &Summary{
		Kind:     logs.KindSession,
		RowCount: total,
		Metrics: []Metric{
			{Name: "total_sessions", Label: "Total Sessions", Value: float64(total), Format: FormatCount},
			{Name: "mean_duration", Label: "Avg Duration (min)", Value: meanDuration, Format: FormatFloat},
			{Name: "median_duration", Label: "Median Duration (min)", Value: medianDuration, Format: FormatFloat},
			{Name: "completion_rate", Label: "Completion Rate", Value: rate(completed, total), Format: FormatPercent},
			{Name: "mean_pages", Label: "Avg Pages/Session", Value: rate(pagesSum, total), Format: FormatFloat},
			{Name: "total_data_mb", Label: "Total Data (MB)", Value: dataSum, Format: FormatFloat},
		},
		Breakdowns: []Breakdown{
			{Name: "status_distribution", Label: "Session Status", Entries: statusCounts.entries()},
		},
	}, nil
}
