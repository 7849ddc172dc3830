package profiling

import (
	"time"

	"logscope/domain/logs"
)

// ValueCount is one categorical value with its frequency
type ValueCount struct {
	Value string  `json:"value"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// NumericProfile holds descriptive statistics for one numeric column
type NumericProfile struct {
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Q25      float64 `json:"q25"`
	Median   float64 `json:"median"`
	Q75      float64 `json:"q75"`
	Max      float64 `json:"max"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	IsNormal bool    `json:"is_normal"`
	NormalP  float64 `json:"normal_p"`
}

// CategoricalProfile holds the frequency table of one categorical column
type CategoricalProfile struct {
	TopValues []ValueCount `json:"top_values"`
}

// ColumnProfile describes one column of a profiled dataset
type ColumnProfile struct {
	Name        string              `json:"name"`
	Type        logs.ColumnType     `json:"type"`
	NonNull     int                 `json:"non_null"`
	NullCount   int                 `json:"null_count"`
	UniqueCount int                 `json:"unique_count"`
	Numeric     *NumericProfile     `json:"numeric,omitempty"`
	Categorical *CategoricalProfile `json:"categorical,omitempty"`
}

// CorrelationMatrix holds pairwise Pearson correlations between the numeric
// columns, in column order
type CorrelationMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// Profile is the full automated-profiling result for one dataset
type Profile struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Kind          logs.Kind           `json:"kind"`
	RowCount      int                 `json:"row_count"`
	ColumnCount   int                 `json:"column_count"`
	MissingCells  int                 `json:"missing_cells"`
	DuplicateRows int                 `json:"duplicate_rows"`
	Columns       []ColumnProfile     `json:"columns"`
	Correlations  *CorrelationMatrix  `json:"correlations,omitempty"`
	SampleRows    []map[string]string `json:"sample_rows"`
	GeneratedAt   time.Time           `json:"generated_at"`
}
