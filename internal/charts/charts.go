package charts

import (
	"fmt"
	"math"

	"logscope/domain/logs"
	"logscope/internal/metrics"
)

// ChartKind names the renderer a descriptor targets
type ChartKind string

const (
	KindBar       ChartKind = "bar"
	KindHBar      ChartKind = "hbar"
	KindPie       ChartKind = "pie"
	KindLine      ChartKind = "line"
	KindHistogram ChartKind = "histogram"
)

// Series is one named value series of a chart
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Chart is a renderer-agnostic chart descriptor. Rendering is delegated to
// the visualization layer; the builder only fixes category labels and
// series values.
type Chart struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Kind   ChartKind `json:"kind"`
	Labels []string  `json:"labels"`
	Series []Series  `json:"series"`
}

// histogramBins is the bucket count for numeric distributions, matching the
// original dashboard's histogram resolution
const histogramBins = 30

// Build maps a loaded table and its computed metrics to the fixed chart set
// for the dataset kind. Purely deterministic; no I/O.
func Build(table *logs.Table, summary *metrics.Summary) ([]Chart, error) {
	switch summary.Kind {
	case logs.KindLogin:
		return buildLogin(summary), nil
	case logs.KindSession:
		return buildSession(table, summary)
	case logs.KindAuth:
		return buildAuth(summary), nil
	case logs.KindSecurity:
		return buildSecurity(table, summary)
	case logs.KindSubscription:
		return buildSubscription(summary), nil
	}
	return nil, fmt.Errorf("no charts defined for dataset kind %q", summary.Kind)
}

func buildLogin(summary *metrics.Summary) []Chart {
	return []Chart{
		fromBreakdown(summary, "status_distribution", KindPie),
		fromBreakdown(summary, "method_counts", KindBar),
		fromBreakdown(summary, "device_distribution", KindPie),
		fromBreakdown(summary, "browser_distribution", KindBar),
		fromBreakdown(summary, "failed_by_hour", KindLine),
	}
}

func buildSession(table *logs.Table, summary *metrics.Summary) ([]Chart, error) {
	durations, err := table.Floats("duration_minutes")
	if err != nil {
		return nil, err
	}
	transferred, err := table.Floats("data_transferred_mb")
	if err != nil {
		return nil, err
	}
	pages, err := table.NumericValues("pages_accessed")
	if err != nil {
		return nil, err
	}
	return []Chart{
		histogram("duration_histogram", "Distribution of Session Durations", durations),
		fromBreakdown(summary, "status_distribution", KindPie),
		histogram("data_histogram", "Data Transfer Distribution", transferred),
		histogram("pages_histogram", "Pages Accessed Distribution", pages),
	}, nil
}

func buildAuth(summary *metrics.Summary) []Chart {
	return []Chart{
		fromBreakdown(summary, "result_distribution", KindBar),
		fromBreakdown(summary, "failure_reasons", KindPie),
		fromBreakdown(summary, "geo_distribution", KindBar),
		fromBreakdown(summary, "top_offenders", KindHBar),
		fromBreakdown(summary, "suspicious_ips", KindHBar),
	}
}

func buildSecurity(table *logs.Table, summary *metrics.Summary) ([]Chart, error) {
	rps, err := table.Floats("requests_per_second")
	if err != nil {
		return nil, err
	}
	return []Chart{
		fromBreakdown(summary, "event_type_distribution", KindBar),
		fromBreakdown(summary, "severity_distribution", KindPie),
		fromBreakdown(summary, "blocked_counts", KindPie),
		histogram("rps_histogram", "Requests Per Second Distribution", rps),
		fromBreakdown(summary, "top_attack_ips", KindBar),
	}, nil
}

func buildSubscription(summary *metrics.Summary) []Chart {
	return []Chart{
		fromBreakdown(summary, "type_distribution", KindPie),
		fromBreakdown(summary, "popular_services", KindHBar),
		fromBreakdown(summary, "revenue_by_type", KindBar),
		fromBreakdown(summary, "revenue_by_service", KindHBar),
		fromBreakdown(summary, "status_distribution", KindPie),
	}
}

// fromBreakdown turns a computed breakdown into a single-series chart.
// The descriptor mirrors the breakdown values exactly.
func fromBreakdown(summary *metrics.Summary, name string, kind ChartKind) Chart {
	b, ok := summary.Breakdown(name)
	if !ok {
		return Chart{ID: name, Kind: kind}
	}
	labels := make([]string, len(b.Entries))
	values := make([]float64, len(b.Entries))
	for i, e := range b.Entries {
		labels[i] = e.Key
		values[i] = e.Value
	}
	return Chart{
		ID:     name,
		Title:  b.Label,
		Kind:   kind,
		Labels: labels,
		Series: []Series{{Name: b.Label, Values: values}},
	}
}

// histogram bins numeric values into equal-width buckets
func histogram(id, title string, values []float64) Chart {
	if len(values) == 0 {
		return Chart{ID: id, Title: title, Kind: KindHistogram}
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	bins := histogramBins
	width := (hi - lo) / float64(bins)
	if width == 0 {
		bins = 1
		width = 1
	}

	counts := make([]float64, bins)
	labels := make([]string, bins)
	for _, v := range values {
		idx := int(math.Floor((v - lo) / width))
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	for i := range labels {
		labels[i] = fmt.Sprintf("%.1f", lo+width*float64(i))
	}

	return Chart{
		ID:     id,
		Title:  title,
		Kind:   KindHistogram,
		Labels: labels,
		Series: []Series{{Name: title, Values: counts}},
	}
}
