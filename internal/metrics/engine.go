package metrics

import (
	"fmt"
	"sort"

	"logscope/domain/logs"
	"logscope/internal/config"
	"logscope/internal/errors"
)

// Format hints how a metric value should be displayed
type Format string

const (
	FormatCount    Format = "count"
	FormatPercent  Format = "percent"
	FormatCurrency Format = "usd"
	FormatFloat    Format = "float"
)

// Metric is a single scalar derived from a dataset
type Metric struct {
	Name   string  `json:"name"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Format Format  `json:"format"`
}

// Entry is one category of a breakdown with its count or sum
type Entry struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// Breakdown is an ordered per-category aggregate (distribution, top-k, sum)
type Breakdown struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Entries []Entry `json:"entries"`
}

// Summary holds everything the engine computes for one dataset
type Summary struct {
	Kind       logs.Kind   `json:"kind"`
	RowCount   int         `json:"row_count"`
	Metrics    []Metric    `json:"metrics"`
	Breakdowns []Breakdown `json:"breakdowns"`
}

// Metric returns a scalar metric by name
func (s *Summary) Metric(name string) (Metric, bool) {
	for _, m := range s.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

// Breakdown returns a breakdown by name
func (s *Summary) Breakdown(name string) (Breakdown, bool) {
	for _, b := range s.Breakdowns {
		if b.Name == name {
			return b, true
		}
	}
	return Breakdown{}, false
}

// Engine computes per-kind summary statistics over loaded tables. It is
// read-only over the table and carries the sentinel configuration for the
// security and session metrics.
type Engine struct {
	security config.SecurityConfig
	session  config.SessionConfig
}

// NewEngine creates a metrics engine with the given sentinel configuration
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		security: cfg.Security,
		session:  cfg.Session,
	}
}

// Compute derives the fixed metric set for the table's kind. A missing or
// mistyped column fails with a SCHEMA_ERROR naming the metric and the
// expected column; the condition is fatal for the dataset and never retried.
func (e *Engine) Compute(table *logs.Table) (*Summary, error) {
	switch table.Kind() {
	case logs.KindLogin:
		return e.computeLogin(table)
	case logs.KindSession:
		return e.computeSession(table)
	case logs.KindAuth:
		return e.computeAuth(table)
	case logs.KindSecurity:
		return e.computeSecurity(table)
	case logs.KindSubscription:
		return e.computeSubscription(table)
	}
	return nil, errors.New(errors.CodeInternalError, fmt.Sprintf("no metrics defined for dataset kind %q", table.Kind()))
}

// schemaErr wraps a table column access failure with the metric that
// required the column
func schemaErr(table *logs.Table, metric, column string, cause error) error {
	return errors.SchemaError(string(table.Kind()), "metric "+metric, column, cause)
}

// rate divides part by total, defined as 0 over an empty table
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

// counter counts string keys preserving first-seen order for tie-breaking
type counter struct {
	counts map[string]float64
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]float64)}
}

func (c *counter) add(key string, weight float64) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key] += weight
}

func (c *counter) inc(key string) {
	c.add(key, 1)
}

// entries returns all keys ordered by descending value; ties keep
// first-seen order from the source table
func (c *counter) entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, Entry{Key: key, Value: c.counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// topK returns the k highest-valued entries
func (c *counter) topK(k int) []Entry {
	all := c.entries()
	if k < len(all) {
		return all[:k]
	}
	return all
}

// distinct returns the number of distinct keys seen
func (c *counter) distinct() int {
	return len(c.order)
}
