package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logscope/domain/core"
	"logscope/domain/logs"
	"logscope/internal/config"
	apperrors "logscope/internal/errors"
)

func testEngine() *Engine {
	return NewEngine(&config.Config{
		Security: config.SecurityConfig{
			BlankEvent: logs.EventBlankRequest,
			DOSEvent:   logs.EventDOSAttack,
		},
		Session: config.SessionConfig{
			CompletedStatus: logs.SessionCompleted,
		},
	})
}

func timestampsAt(hours ...int) []core.Timestamp {
	out := make([]core.Timestamp, len(hours))
	for i, h := range hours {
		out[i] = core.NewTimestamp(time.Date(2024, 6, 1, h, 0, 0, 0, time.UTC))
	}
	return out
}

func loginTable(t *testing.T) *logs.Table {
	t.Helper()

	table := logs.NewTable(logs.KindLogin, 5)
	require.NoError(t, table.AddTimes("timestamp", timestampsAt(9, 9, 14, 14, 23)))
	require.NoError(t, table.AddStrings("user_id", []string{"u1", "u2", "u1", "u3", "u1"}))
	require.NoError(t, table.AddStrings("ip_address", []string{"a", "a", "b", "c", "d"}))
	require.NoError(t, table.AddStrings("login_status", []string{"SUCCESS", "FAILED", "SUCCESS", "SUCCESS", "FAILED"}))
	require.NoError(t, table.AddStrings("login_method", []string{"PASSWORD", "OAUTH", "PASSWORD", "SSO", "PASSWORD"}))
	require.NoError(t, table.AddStrings("device_type", []string{"DESKTOP", "MOBILE", "DESKTOP", "TABLET", "MOBILE"}))
	require.NoError(t, table.AddStrings("browser", []string{"CHROME", "CHROME", "FIREFOX", "SAFARI", "EDGE"}))
	return table
}

func TestComputeLogin(t *testing.T) {
	summary, err := testEngine().Compute(loginTable(t))
	require.NoError(t, err)

	assert.Equal(t, logs.KindLogin, summary.Kind)
	assert.Equal(t, 5, summary.RowCount)

	total, ok := summary.Metric("total_attempts")
	require.True(t, ok)
	assert.Equal(t, 5.0, total.Value)

	successRate, ok := summary.Metric("success_rate")
	require.True(t, ok)
	assert.InDelta(t, 0.6, successRate.Value, 1e-9)

	uniqueUsers, ok := summary.Metric("unique_users")
	require.True(t, ok)
	assert.Equal(t, 3.0, uniqueUsers.Value)

	byHour, ok := summary.Breakdown("failed_by_hour")
	require.True(t, ok)
	require.Len(t, byHour.Entries, 24)
	assert.Equal(t, "09:00", byHour.Entries[9].Key)
	assert.Equal(t, 1.0, byHour.Entries[9].Value)
	assert.Equal(t, 1.0, byHour.Entries[23].Value)
	assert.Equal(t, 0.0, byHour.Entries[14].Value)
}

func TestComputeLoginMethodOrdering(t *testing.T) {
	summary, err := testEngine().Compute(loginTable(t))
	require.NoError(t, err)

	methods, ok := summary.Breakdown("method_counts")
	require.True(t, ok)
	require.Len(t, methods.Entries, 3)

	// PASSWORD dominates; OAUTH and SSO tie at 1 and keep first-seen order
	assert.Equal(t, "PASSWORD", methods.Entries[0].Key)
	assert.Equal(t, 3.0, methods.Entries[0].Value)
	assert.Equal(t, "OAUTH", methods.Entries[1].Key)
	assert.Equal(t, "SSO", methods.Entries[2].Key)
}

func TestComputeSession(t *testing.T) {
	table := logs.NewTable(logs.KindSession, 4)
	require.NoError(t, table.AddStrings("session_id", []string{"s1", "s2", "s3", "s4"}))
	require.NoError(t, table.AddStrings("user_id", []string{"u1", "u2", "u3", "u4"}))
	require.NoError(t, table.AddFloats("duration_minutes", []float64{10, 20, 30, 40}))
	require.NoError(t, table.AddInts("pages_accessed", []int{2, 4, 6, 8}))
	require.NoError(t, table.AddFloats("data_transferred_mb", []float64{1.5, 2.5, 3.0, 3.0}))
	require.NoError(t, table.AddStrings("session_status", []string{"COMPLETED", "COMPLETED", "TIMEOUT", "TERMINATED"}))

	summary, err := testEngine().Compute(table)
	require.NoError(t, err)

	mean, _ := summary.Metric("mean_duration")
	assert.InDelta(t, 25.0, mean.Value, 1e-9)

	median, _ := summary.Metric("median_duration")
	assert.InDelta(t, 25.0, median.Value, 1e-9)

	completion, _ := summary.Metric("completion_rate")
	assert.InDelta(t, 0.5, completion.Value, 1e-9)

	pages, _ := summary.Metric("mean_pages")
	assert.InDelta(t, 5.0, pages.Value, 1e-9)

	data, _ := summary.Metric("total_data_mb")
	assert.InDelta(t, 10.0, data.Value, 1e-9)
}

func TestComputeSecuritySentinels(t *testing.T) {
	events := []string{
		"NORMAL", "DOS_ATTACK", "BLANK_REQUEST", "DOS_ATTACK", "SQL_INJECTION", "NORMAL",
	}
	n := len(events)

	table := logs.NewTable(logs.KindSecurity, n)
	require.NoError(t, table.AddTimes("timestamp", timestampsAt(1, 2, 3, 4, 5, 6)))
	require.NoError(t, table.AddStrings("event_type", events))
	require.NoError(t, table.AddStrings("source_ip", []string{"a", "b", "c", "b", "d", "e"}))
	require.NoError(t, table.AddFloats("requests_per_second", []float64{10, 1500, 5, 2500, 40, 12}))
	require.NoError(t, table.AddBools("blocked", []bool{false, true, false, true, true, false}))
	require.NoError(t, table.AddStrings("severity", []string{"LOW", "CRITICAL", "LOW", "HIGH", "HIGH", "MEDIUM"}))

	summary, err := testEngine().Compute(table)
	require.NoError(t, err)

	dos, _ := summary.Metric("dos_attack_count")
	assert.Equal(t, 2.0, dos.Value)

	blank, _ := summary.Metric("blank_request_count")
	assert.Equal(t, 1.0, blank.Value)

	blockedRate, _ := summary.Metric("blocked_rate")
	assert.InDelta(t, 0.5, blockedRate.Value, 1e-9)

	maxDOS, _ := summary.Metric("max_rps_dos")
	assert.Equal(t, 2500.0, maxDOS.Value)

	meanHigh, _ := summary.Metric("mean_rps_high_severity")
	assert.InDelta(t, (1500.0+2500.0+40.0)/3.0, meanHigh.Value, 1e-9)

	// severity counts cover every row
	severities, ok := summary.Breakdown("severity_distribution")
	require.True(t, ok)
	sum := 0.0
	for _, e := range severities.Entries {
		sum += e.Value
	}
	assert.Equal(t, float64(n), sum)

	// attack IP counter excludes NORMAL traffic; "b" attacked twice
	attackIPs, ok := summary.Breakdown("top_attack_ips")
	require.True(t, ok)
	assert.Equal(t, "b", attackIPs.Entries[0].Key)
	assert.Equal(t, 2.0, attackIPs.Entries[0].Value)
}

func TestComputeSecurityConfigurableSentinels(t *testing.T) {
	engine := NewEngine(&config.Config{
		Security: config.SecurityConfig{BlankEvent: "DOS_ATTACK", DOSEvent: "NORMAL"},
		Session:  config.SessionConfig{CompletedStatus: logs.SessionCompleted},
	})

	table := logs.NewTable(logs.KindSecurity, 2)
	require.NoError(t, table.AddTimes("timestamp", timestampsAt(1, 2)))
	require.NoError(t, table.AddStrings("event_type", []string{"NORMAL", "DOS_ATTACK"}))
	require.NoError(t, table.AddStrings("source_ip", []string{"a", "b"}))
	require.NoError(t, table.AddFloats("requests_per_second", []float64{10, 20}))
	require.NoError(t, table.AddBools("blocked", []bool{false, false}))
	require.NoError(t, table.AddStrings("severity", []string{"LOW", "LOW"}))

	summary, err := engine.Compute(table)
	require.NoError(t, err)

	// The sentinels are swapped, so the counts follow the configuration
	dos, _ := summary.Metric("dos_attack_count")
	assert.Equal(t, 1.0, dos.Value)
	blank, _ := summary.Metric("blank_request_count")
	assert.Equal(t, 1.0, blank.Value)
}

func TestComputeAuth(t *testing.T) {
	table := logs.NewTable(logs.KindAuth, 4)
	require.NoError(t, table.AddTimes("timestamp", timestampsAt(1, 2, 3, 4)))
	require.NoError(t, table.AddStrings("attempted_username", []string{"alice", "admin", "root", "bob"}))
	require.NoError(t, table.AddStrings("ip_address", []string{"a", "b", "b", "c"}))
	require.NoError(t, table.AddStrings("auth_result", []string{"AUTHENTIC", "UNAUTHENTIC", "UNAUTHENTIC", "AUTHENTIC"}))
	require.NoError(t, table.AddStrings("failure_reason", []string{"", "INVALID_PASSWORD", "UNKNOWN_USER", ""}))
	require.NoError(t, table.AddStrings("geolocation", []string{"US", "CN", "CN", "DE"}))
	require.NoError(t, table.AddInts("attempt_count", []int{1, 8, 5, 1}))

	summary, err := testEngine().Compute(table)
	require.NoError(t, err)

	unauthRate, _ := summary.Metric("unauthentic_rate")
	assert.InDelta(t, 0.5, unauthRate.Value, 1e-9)

	reasons, ok := summary.Breakdown("failure_reasons")
	require.True(t, ok)
	// empty reasons from authentic rows are excluded
	for _, e := range reasons.Entries {
		assert.NotEmpty(t, e.Key)
	}
	assert.Len(t, reasons.Entries, 2)
}

func TestComputeSubscriptionRevenue(t *testing.T) {
	table := logs.NewTable(logs.KindSubscription, 4)
	require.NoError(t, table.AddStrings("subscription_id", []string{"s1", "s2", "s3", "s4"}))
	require.NoError(t, table.AddStrings("user_id", []string{"u1", "u2", "u3", "u4"}))
	require.NoError(t, table.AddStrings("service_type", []string{"STREAMING", "STORAGE", "STREAMING", "COMPUTE"}))
	require.NoError(t, table.AddStrings("service_name", []string{"VideoMax", "BoxDrive", "VideoMax", "GridRun"}))
	require.NoError(t, table.AddFloats("monthly_fee_usd", []float64{15.99, 9.99, 15.99, 49.99}))
	require.NoError(t, table.AddStrings("subscription_status", []string{"ACTIVE", "ACTIVE", "EXPIRED", "CANCELLED"}))
	require.NoError(t, table.AddBools("auto_renew", []bool{true, false, true, false}))

	summary, err := testEngine().Compute(table)
	require.NoError(t, err)

	// only ACTIVE subscriptions contribute revenue
	revenue, _ := summary.Metric("monthly_revenue")
	assert.InDelta(t, 15.99+9.99, revenue.Value, 1e-9)

	active, _ := summary.Metric("active_count")
	assert.Equal(t, 2.0, active.Value)

	renew, _ := summary.Metric("auto_renew_rate")
	assert.InDelta(t, 0.5, renew.Value, 1e-9)
}

func TestRevenueTracksFeeDelta(t *testing.T) {
	build := func(fee0 float64) *logs.Table {
		table := logs.NewTable(logs.KindSubscription, 3)
		require.NoError(t, table.AddStrings("subscription_id", []string{"s1", "s2", "s3"}))
		require.NoError(t, table.AddStrings("user_id", []string{"u1", "u2", "u3"}))
		require.NoError(t, table.AddStrings("service_type", []string{"STORAGE", "STORAGE", "COMPUTE"}))
		require.NoError(t, table.AddStrings("service_name", []string{"BoxDrive", "BoxDrive", "GridRun"}))
		require.NoError(t, table.AddFloats("monthly_fee_usd", []float64{fee0, 9.99, 49.99}))
		require.NoError(t, table.AddStrings("subscription_status", []string{"ACTIVE", "ACTIVE", "ACTIVE"}))
		require.NoError(t, table.AddBools("auto_renew", []bool{true, true, true}))
		return table
	}

	engine := testEngine()
	before, err := engine.Compute(build(10.00))
	require.NoError(t, err)
	after, err := engine.Compute(build(12.50))
	require.NoError(t, err)

	revBefore, _ := before.Metric("monthly_revenue")
	revAfter, _ := after.Metric("monthly_revenue")
	assert.InDelta(t, 2.50, revAfter.Value-revBefore.Value, 1e-9)
}

func TestDOSCountOverFullSizedDataset(t *testing.T) {
	const total = 500
	const dosRows = 12

	events := make([]string, total)
	ips := make([]string, total)
	rps := make([]float64, total)
	blocked := make([]bool, total)
	severities := make([]string, total)
	ts := make([]core.Timestamp, total)
	for i := 0; i < total; i++ {
		events[i] = "NORMAL"
		ips[i] = "10.0.0.1"
		rps[i] = 20
		severities[i] = "LOW"
		ts[i] = core.NewTimestamp(time.Date(2024, 6, 1, 0, 0, i, 0, time.UTC))
	}
	for i := 0; i < dosRows; i++ {
		idx := i * 40
		events[idx] = "DOS_ATTACK"
		rps[idx] = 1200
		blocked[idx] = true
		severities[idx] = "CRITICAL"
	}

	table := logs.NewTable(logs.KindSecurity, total)
	require.NoError(t, table.AddTimes("timestamp", ts))
	require.NoError(t, table.AddStrings("event_type", events))
	require.NoError(t, table.AddStrings("source_ip", ips))
	require.NoError(t, table.AddFloats("requests_per_second", rps))
	require.NoError(t, table.AddBools("blocked", blocked))
	require.NoError(t, table.AddStrings("severity", severities))

	summary, err := testEngine().Compute(table)
	require.NoError(t, err)

	dos, _ := summary.Metric("dos_attack_count")
	assert.Equal(t, float64(dosRows), dos.Value)
}

func TestComputeEmptyTableRatesAreZero(t *testing.T) {
	table := logs.NewTable(logs.KindSession, 0)
	require.NoError(t, table.AddStrings("session_id", nil))
	require.NoError(t, table.AddStrings("user_id", nil))
	require.NoError(t, table.AddFloats("duration_minutes", nil))
	require.NoError(t, table.AddInts("pages_accessed", nil))
	require.NoError(t, table.AddFloats("data_transferred_mb", nil))
	require.NoError(t, table.AddStrings("session_status", nil))

	summary, err := testEngine().Compute(table)
	require.NoError(t, err)

	for _, m := range summary.Metrics {
		assert.Equalf(t, 0.0, m.Value, "metric %s should be 0 over an empty table", m.Name)
	}
}

func TestComputeMissingColumnIsSchemaError(t *testing.T) {
	table := logs.NewTable(logs.KindLogin, 1)
	require.NoError(t, table.AddStrings("user_id", []string{"u1"}))

	_, err := testEngine().Compute(table)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSchemaError, apperrors.GetCode(err))
}

func TestComputeIsDeterministic(t *testing.T) {
	table := loginTable(t)
	engine := testEngine()

	first, err := engine.Compute(table)
	require.NoError(t, err)
	second, err := engine.Compute(table)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
