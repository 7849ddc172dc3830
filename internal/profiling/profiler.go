package profiling

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"logscope/domain/logs"
)

// topValueLimit caps categorical frequency tables, matching the original
// report's top-10 listings
const topValueLimit = 10

// normalityAlpha is the significance threshold for the normality check
const normalityAlpha = 0.05

// Profiler computes descriptive-statistics profiles over loaded tables.
// It is the delegated engine behind the report adapter; callers treat the
// resulting Profile as opaque.
type Profiler struct{}

// NewProfiler creates a new profiler
func NewProfiler() *Profiler {
	return &Profiler{}
}

// Profile analyzes every column of the table and the relationships between
// its numeric columns
func (p *Profiler) Profile(table *logs.Table, title string) (*Profile, error) {
	if table == nil {
		return nil, fmt.Errorf("nil table")
	}

	columns := table.Columns()
	profile := &Profile{
		Title:       title,
		Description: table.Kind().Description(),
		Kind:        table.Kind(),
		RowCount:    table.NumRows(),
		ColumnCount: len(columns),
		GeneratedAt: time.Now(),
	}

	for _, name := range columns {
		col, err := p.profileColumn(table, name)
		if err != nil {
			return nil, fmt.Errorf("profiling column %s: %w", name, err)
		}
		profile.MissingCells += col.NullCount
		profile.Columns = append(profile.Columns, col)
	}

	profile.DuplicateRows = countDuplicateRows(table)
	profile.SampleRows = table.SampleRows(10)

	if corr := p.correlations(table); corr != nil {
		profile.Correlations = corr
	}

	return profile, nil
}

func (p *Profiler) profileColumn(table *logs.Table, name string) (ColumnProfile, error) {
	colType, ok := table.ColumnTypeOf(name)
	if !ok {
		return ColumnProfile{}, fmt.Errorf("column not found")
	}

	col := ColumnProfile{Name: name, Type: colType}

	switch colType {
	case logs.TypeFloat, logs.TypeInt:
		values, err := table.NumericValues(name)
		if err != nil {
			return col, err
		}
		col.NonNull = len(values)
		col.UniqueCount = uniqueFloats(values)
		numeric := p.numericProfile(values)
		col.Numeric = &numeric

	case logs.TypeTimestamp:
		values, err := table.Times(name)
		if err != nil {
			return col, err
		}
		col.NonNull = len(values)
		seen := make(map[string]bool, len(values))
		for _, v := range values {
			seen[v.String()] = true
		}
		col.UniqueCount = len(seen)

	case logs.TypeBool:
		values, err := table.Bools(name)
		if err != nil {
			return col, err
		}
		col.NonNull = len(values)
		counts := map[string]int{}
		for _, v := range values {
			counts[fmt.Sprintf("%t", v)]++
		}
		col.UniqueCount = len(counts)
		col.Categorical = categoricalFromCounts(counts, len(values))

	default:
		values, err := table.Strings(name)
		if err != nil {
			return col, err
		}
		counts := map[string]int{}
		for _, v := range values {
			if strings.TrimSpace(v) == "" {
				col.NullCount++
				continue
			}
			col.NonNull++
			counts[v]++
		}
		col.UniqueCount = len(counts)
		col.Categorical = categoricalFromCounts(counts, col.NonNull)
	}

	return col, nil
}

// numericProfile computes the describe-style summary plus shape statistics
func (p *Profiler) numericProfile(values []float64) NumericProfile {
	mean, _ := stats.Mean(values)
	stdDev, _ := stats.StandardDeviation(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	median, _ := stats.Median(values)
	q25, _ := stats.Percentile(values, 25)
	q75, _ := stats.Percentile(values, 75)

	skewness := calculateSkewness(values, mean, stdDev)
	kurtosis := calculateKurtosis(values, mean, stdDev)
	isNormal, normalP := jarqueBera(len(values), skewness, kurtosis)

	return NumericProfile{
		Mean:     mean,
		StdDev:   stdDev,
		Min:      min,
		Q25:      q25,
		Median:   median,
		Q75:      q75,
		Max:      max,
		Skewness: skewness,
		Kurtosis: kurtosis,
		IsNormal: isNormal,
		NormalP:  normalP,
	}
}

// correlations computes the pairwise Pearson matrix over numeric columns;
// nil when fewer than two numeric columns exist
func (p *Profiler) correlations(table *logs.Table) *CorrelationMatrix {
	names := table.NumericColumns()
	if len(names) < 2 {
		return nil
	}

	series := make([][]float64, len(names))
	for i, name := range names {
		values, err := table.NumericValues(name)
		if err != nil {
			return nil
		}
		series[i] = values
	}

	matrix := make([][]float64, len(names))
	for i := range names {
		matrix[i] = make([]float64, len(names))
		for j := range names {
			if i == j {
				matrix[i][j] = 1
				continue
			}
			r := stat.Correlation(series[i], series[j], nil)
			if math.IsNaN(r) {
				r = 0
			}
			matrix[i][j] = r
		}
	}

	return &CorrelationMatrix{Columns: names, Values: matrix}
}

func calculateSkewness(values []float64, mean, stdDev float64) float64 {
	if len(values) == 0 || stdDev == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		z := (v - mean) / stdDev
		sum += z * z * z
	}
	return sum / float64(len(values))
}

func calculateKurtosis(values []float64, mean, stdDev float64) float64 {
	if len(values) == 0 || stdDev == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		z := (v - mean) / stdDev
		sum += z * z * z * z
	}
	// Excess kurtosis: normal distribution scores 0
	return sum/float64(len(values)) - 3
}

// jarqueBera tests normality from sample skewness and excess kurtosis.
// The statistic follows a chi-squared distribution with 2 degrees of freedom.
func jarqueBera(n int, skewness, kurtosis float64) (bool, float64) {
	if n < 8 {
		return false, 1
	}
	jb := float64(n) / 6 * (skewness*skewness + kurtosis*kurtosis/4)
	chi := distuv.ChiSquared{K: 2}
	pValue := 1 - chi.CDF(jb)
	return pValue > normalityAlpha, pValue
}

func uniqueFloats(values []float64) int {
	seen := make(map[float64]bool, len(values))
	for _, v := range values {
		seen[v] = true
	}
	return len(seen)
}

func categoricalFromCounts(counts map[string]int, total int) *CategoricalProfile {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	if len(keys) > topValueLimit {
		keys = keys[:topValueLimit]
	}

	top := make([]ValueCount, len(keys))
	for i, k := range keys {
		share := 0.0
		if total > 0 {
			share = float64(counts[k]) / float64(total)
		}
		top[i] = ValueCount{Value: k, Count: counts[k], Share: share}
	}
	return &CategoricalProfile{TopValues: top}
}

func countDuplicateRows(table *logs.Table) int {
	rows := table.SampleRows(table.NumRows())
	seen := make(map[string]bool, len(rows))
	duplicates := 0
	for _, row := range rows {
		key := rowKey(table.Columns(), row)
		if seen[key] {
			duplicates++
			continue
		}
		seen[key] = true
	}
	return duplicates
}

func rowKey(columns []string, row map[string]string) string {
	var b strings.Builder
	for _, c := range columns {
		b.WriteString(row[c])
		b.WriteByte('\x1f')
	}
	return b.String()
}
