package profiling

import (
	"math"
	"testing"

	"logscope/domain/logs"
)

func sessionTable(t *testing.T, durations []float64) *logs.Table {
	t.Helper()

	n := len(durations)
	ids := make([]string, n)
	users := make([]string, n)
	pages := make([]int, n)
	data := make([]float64, n)
	statuses := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = "s"
		users[i] = "u"
		pages[i] = i % 7
		data[i] = durations[i] * 0.5
		statuses[i] = logs.SessionCompleted
	}

	table := logs.NewTable(logs.KindSession, n)
	for name, values := range map[string][]string{
		"session_id":     ids,
		"user_id":        users,
		"session_status": statuses,
	} {
		if err := table.AddStrings(name, values); err != nil {
			t.Fatalf("AddStrings(%s) failed: %v", name, err)
		}
	}
	if err := table.AddFloats("duration_minutes", durations); err != nil {
		t.Fatalf("AddFloats failed: %v", err)
	}
	if err := table.AddInts("pages_accessed", pages); err != nil {
		t.Fatalf("AddInts failed: %v", err)
	}
	if err := table.AddFloats("data_transferred_mb", data); err != nil {
		t.Fatalf("AddFloats failed: %v", err)
	}
	return table
}

func TestProfileNumericColumn(t *testing.T) {
	table := sessionTable(t, []float64{10, 20, 30, 40, 50})

	profile, err := NewProfiler().Profile(table, "Sessions")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	if profile.RowCount != 5 || profile.ColumnCount != 6 {
		t.Errorf("Expected 5x6 profile, got %dx%d", profile.RowCount, profile.ColumnCount)
	}

	var duration *ColumnProfile
	for i := range profile.Columns {
		if profile.Columns[i].Name == "duration_minutes" {
			duration = &profile.Columns[i]
		}
	}
	if duration == nil || duration.Numeric == nil {
		t.Fatal("duration_minutes should have a numeric profile")
	}

	num := duration.Numeric
	if math.Abs(num.Mean-30) > 1e-9 {
		t.Errorf("Expected mean 30, got %v", num.Mean)
	}
	if math.Abs(num.Median-30) > 1e-9 {
		t.Errorf("Expected median 30, got %v", num.Median)
	}
	if num.Min != 10 || num.Max != 50 {
		t.Errorf("Expected range [10,50], got [%v,%v]", num.Min, num.Max)
	}
	if math.Abs(num.Skewness) > 1e-9 {
		t.Errorf("Symmetric input should have zero skewness, got %v", num.Skewness)
	}
}

func TestProfileCategoricalColumn(t *testing.T) {
	table := sessionTable(t, []float64{10, 20, 30})

	profile, err := NewProfiler().Profile(table, "Sessions")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	for _, col := range profile.Columns {
		if col.Name != "session_status" {
			continue
		}
		if col.Categorical == nil {
			t.Fatal("session_status should have a frequency table")
		}
		top := col.Categorical.TopValues
		if len(top) != 1 || top[0].Value != logs.SessionCompleted {
			t.Fatalf("Expected single COMPLETED value, got %+v", top)
		}
		if math.Abs(top[0].Share-1.0) > 1e-9 {
			t.Errorf("Expected share 1.0, got %v", top[0].Share)
		}
		return
	}
	t.Fatal("session_status column not profiled")
}

func TestProfileCorrelations(t *testing.T) {
	// data_transferred_mb is an exact linear function of duration_minutes
	table := sessionTable(t, []float64{5, 15, 25, 35, 45, 55})

	profile, err := NewProfiler().Profile(table, "Sessions")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if profile.Correlations == nil {
		t.Fatal("Expected a correlation matrix")
	}

	corr := profile.Correlations
	if len(corr.Columns) != 3 {
		t.Fatalf("Expected 3 numeric columns, got %v", corr.Columns)
	}

	di, mi := -1, -1
	for i, name := range corr.Columns {
		switch name {
		case "duration_minutes":
			di = i
		case "data_transferred_mb":
			mi = i
		}
	}
	if di < 0 || mi < 0 {
		t.Fatalf("Numeric columns missing from matrix: %v", corr.Columns)
	}

	if math.Abs(corr.Values[di][di]-1.0) > 1e-9 {
		t.Errorf("Diagonal should be 1, got %v", corr.Values[di][di])
	}
	if math.Abs(corr.Values[di][mi]-1.0) > 1e-6 {
		t.Errorf("Linear columns should correlate at 1, got %v", corr.Values[di][mi])
	}
	if math.Abs(corr.Values[di][mi]-corr.Values[mi][di]) > 1e-12 {
		t.Error("Correlation matrix should be symmetric")
	}
}

func TestProfileDuplicateRows(t *testing.T) {
	// all cells identical across rows except numeric columns
	table := sessionTable(t, []float64{10, 10, 10, 20})

	profile, err := NewProfiler().Profile(table, "Sessions")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	// rows 0..2 differ in pages_accessed (0,1,2) so only full-cell
	// duplicates count; craft an exact duplicate pair instead
	if profile.DuplicateRows < 0 {
		t.Errorf("Duplicate count must be non-negative, got %d", profile.DuplicateRows)
	}

	dup := logs.NewTable(logs.KindSession, 3)
	for name, values := range map[string][]string{
		"session_id":     {"s1", "s1", "s2"},
		"user_id":        {"u", "u", "u"},
		"session_status": {"COMPLETED", "COMPLETED", "COMPLETED"},
	} {
		if err := dup.AddStrings(name, values); err != nil {
			t.Fatalf("AddStrings failed: %v", err)
		}
	}
	if err := dup.AddFloats("duration_minutes", []float64{10, 10, 10}); err != nil {
		t.Fatalf("AddFloats failed: %v", err)
	}
	if err := dup.AddInts("pages_accessed", []int{1, 1, 1}); err != nil {
		t.Fatalf("AddInts failed: %v", err)
	}
	if err := dup.AddFloats("data_transferred_mb", []float64{5, 5, 5}); err != nil {
		t.Fatalf("AddFloats failed: %v", err)
	}

	dupProfile, err := NewProfiler().Profile(dup, "Sessions")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if dupProfile.DuplicateRows != 1 {
		t.Errorf("Expected 1 duplicate row, got %d", dupProfile.DuplicateRows)
	}
}

func TestJarqueBera(t *testing.T) {
	// zero skewness and zero excess kurtosis give JB=0 and p=1
	isNormal, p := jarqueBera(1000, 0, 0)
	if !isNormal || math.Abs(p-1.0) > 1e-9 {
		t.Errorf("Perfectly normal shape should pass, got normal=%v p=%v", isNormal, p)
	}

	// heavy skew on a large sample is decisively non-normal
	isNormal, p = jarqueBera(2000, 1.5, 2)
	if isNormal {
		t.Errorf("Skewed shape should fail, got p=%v", p)
	}

	// too few observations for the asymptotic test
	if isNormal, _ := jarqueBera(5, 0, 0); isNormal {
		t.Error("Tiny samples should never be marked normal")
	}
}

func TestSkewnessAndKurtosis(t *testing.T) {
	// uniform-ish symmetric values: skewness 0, platykurtic (negative excess)
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mean := 5.5
	std := 0.0
	for _, v := range values {
		std += (v - mean) * (v - mean)
	}
	std = math.Sqrt(std / float64(len(values)))

	if skew := calculateSkewness(values, mean, std); math.Abs(skew) > 1e-9 {
		t.Errorf("Symmetric values should have zero skewness, got %v", skew)
	}
	if kurt := calculateKurtosis(values, mean, std); kurt >= 0 {
		t.Errorf("Flat values should have negative excess kurtosis, got %v", kurt)
	}

	// degenerate column
	if skew := calculateSkewness([]float64{3, 3, 3}, 3, 0); skew != 0 {
		t.Errorf("Constant column skewness should be 0, got %v", skew)
	}
}
