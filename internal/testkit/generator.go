package testkit

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"logscope/domain/core"
	"logscope/domain/logs"
)

// GeneratorConfig configures the synthetic server-log generator
type GeneratorConfig struct {
	Rows      int       `json:"rows"`
	UserCount int       `json:"user_count"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Seed      int64     `json:"seed"`
}

// DefaultGeneratorConfig returns the fixed production shape: 500 rows per
// dataset over a 30-day window
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Rows:      500,
		UserCount: 80,
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC),
		Seed:      42,
	}
}

// LogGenerator produces the five fixed-schema CSV datasets. Output is
// deterministic for a given config: each dataset derives its own RNG from
// the seed and the dataset index.
type LogGenerator struct {
	config GeneratorConfig
}

// NewLogGenerator creates a generator with the given config
func NewLogGenerator(config GeneratorConfig) *LogGenerator {
	return &LogGenerator{config: config}
}

// WriteAll writes all five CSV files into dataDir
func (g *LogGenerator) WriteAll(dataDir string) error {
	for _, kind := range logs.AllKinds() {
		if err := g.WriteDataset(dataDir, kind); err != nil {
			return err
		}
	}
	return nil
}

// WriteDataset writes one dataset's CSV file into dataDir
func (g *LogGenerator) WriteDataset(dataDir string, kind logs.Kind) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(dataDir, kind.FileName())
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(g.Records(kind)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	writer.Flush()
	return writer.Error()
}

// Records returns header plus data rows for one dataset kind
func (g *LogGenerator) Records(kind logs.Kind) [][]string {
	rng := rand.New(rand.NewSource(g.config.Seed + int64(kind.Index())))

	switch kind {
	case logs.KindLogin:
		return g.loginRecords(rng)
	case logs.KindSession:
		return g.sessionRecords(rng)
	case logs.KindAuth:
		return g.authRecords(rng)
	case logs.KindSecurity:
		return g.securityRecords(rng)
	case logs.KindSubscription:
		return g.subscriptionRecords(rng)
	}
	return nil
}

const timestampLayout = "2006-01-02 15:04:05"

func (g *LogGenerator) loginRecords(rng *rand.Rand) [][]string {
	records := [][]string{logs.SchemaFor(logs.KindLogin).ColumnNames()}

	times := g.sortedTimestamps(rng)
	methods := []string{"PASSWORD", "PASSWORD", "OAUTH", "SSO", "TWO_FACTOR"}
	devices := []string{"DESKTOP", "DESKTOP", "MOBILE", "TABLET"}
	browsers := []string{"CHROME", "CHROME", "FIREFOX", "SAFARI", "EDGE"}

	for i := 0; i < g.config.Rows; i++ {
		status := logs.LoginSuccess
		if rng.Float64() < 0.18 {
			status = logs.LoginFailed
		}
		records = append(records, []string{
			times[i].Format(timestampLayout),
			g.userID(rng),
			randomIP(rng),
			status,
			pick(rng, methods),
			pick(rng, devices),
			pick(rng, browsers),
		})
	}
	return records
}

func (g *LogGenerator) sessionRecords(rng *rand.Rand) [][]string {
	records := [][]string{logs.SchemaFor(logs.KindSession).ColumnNames()}

	statuses := []string{
		logs.SessionCompleted, logs.SessionCompleted, logs.SessionCompleted,
		logs.SessionCompleted, logs.SessionCompleted, logs.SessionCompleted, logs.SessionCompleted,
		logs.SessionTimeout, logs.SessionTimeout,
		logs.SessionTerminated,
	}

	for i := 0; i < g.config.Rows; i++ {
		duration := math.Abs(rng.NormFloat64()*25 + 30)
		pages := 1 + rng.Intn(50)
		// Data transfer loosely tracks session length
		data := math.Abs(duration*rng.Float64()*2 + rng.NormFloat64()*5)

		records = append(records, []string{
			core.NewSessionID(i + 1).String(),
			g.userID(rng),
			fmt.Sprintf("%.2f", duration),
			fmt.Sprintf("%d", pages),
			fmt.Sprintf("%.2f", data),
			pick(rng, statuses),
		})
	}
	return records
}

func (g *LogGenerator) authRecords(rng *rand.Rand) [][]string {
	records := [][]string{logs.SchemaFor(logs.KindAuth).ColumnNames()}

	times := g.sortedTimestamps(rng)
	attackNames := []string{"admin", "root", "guest", "test", "oracle", "administrator"}
	reasons := []string{"INVALID_PASSWORD", "INVALID_PASSWORD", "UNKNOWN_USER", "EXPIRED_TOKEN", "ACCOUNT_LOCKED"}
	countries := []string{"US", "DE", "IN", "BR", "CN", "RU", "GB", "FR"}

	for i := 0; i < g.config.Rows; i++ {
		result := logs.AuthResultAuthentic
		username := g.userID(rng)
		reason := ""
		attempts := 1 + rng.Intn(3)

		if rng.Float64() < 0.3 {
			result = logs.AuthResultUnauthentic
			reason = pick(rng, reasons)
			attempts = 1 + rng.Intn(20)
			if rng.Float64() < 0.5 {
				username = pick(rng, attackNames)
			}
		}

		records = append(records, []string{
			times[i].Format(timestampLayout),
			username,
			randomIP(rng),
			result,
			reason,
			pick(rng, countries),
			fmt.Sprintf("%d", attempts),
		})
	}
	return records
}

func (g *LogGenerator) securityRecords(rng *rand.Rand) [][]string {
	records := [][]string{logs.SchemaFor(logs.KindSecurity).ColumnNames()}

	times := g.sortedTimestamps(rng)

	for i := 0; i < g.config.Rows; i++ {
		event := logs.EventNormal
		switch r := rng.Float64(); {
		case r < 0.12:
			event = logs.EventBlankRequest
		case r < 0.22:
			event = logs.EventDOSAttack
		case r < 0.32:
			event = logs.EventSQLInjection
		case r < 0.40:
			event = logs.EventXSSAttempt
		}

		rps := math.Abs(rng.NormFloat64()*15 + 25)
		blocked := false
		severity := logs.SeverityLow

		if event != logs.EventNormal {
			blocked = rng.Float64() < 0.85
			severity = pick(rng, []string{logs.SeverityMedium, logs.SeverityHigh, logs.SeverityCritical})
		}
		if event == logs.EventDOSAttack {
			rps = 500 + rng.Float64()*2500
			severity = pick(rng, []string{logs.SeverityHigh, logs.SeverityCritical})
		}

		records = append(records, []string{
			times[i].Format(timestampLayout),
			event,
			randomIP(rng),
			fmt.Sprintf("%.2f", rps),
			fmt.Sprintf("%t", blocked),
			severity,
		})
	}
	return records
}

func (g *LogGenerator) subscriptionRecords(rng *rand.Rand) [][]string {
	records := [][]string{logs.SchemaFor(logs.KindSubscription).ColumnNames()}

	services := map[string][]string{
		"STREAMING": {"StreamPrime", "CineMax Go"},
		"STORAGE":   {"CloudVault", "BoxDrive"},
		"COMPUTE":   {"GridRunner", "LambdaForge"},
		"ANALYTICS": {"InsightHub", "MetricsPro"},
		"SECURITY":  {"ShieldWall", "SentryGuard"},
	}
	fees := map[string][2]float64{
		"STREAMING": {7.99, 19.99},
		"STORAGE":   {2.99, 12.99},
		"COMPUTE":   {24.99, 99.99},
		"ANALYTICS": {14.99, 59.99},
		"SECURITY":  {9.99, 39.99},
	}
	types := []string{"STREAMING", "STORAGE", "COMPUTE", "ANALYTICS", "SECURITY"}
	statuses := []string{
		logs.SubscriptionActive, logs.SubscriptionActive, logs.SubscriptionActive,
		logs.SubscriptionActive, logs.SubscriptionActive, logs.SubscriptionActive, logs.SubscriptionActive,
		logs.SubscriptionExpired, logs.SubscriptionExpired,
		logs.SubscriptionCancelled,
	}

	for i := 0; i < g.config.Rows; i++ {
		serviceType := pick(rng, types)
		feeRange := fees[serviceType]
		fee := feeRange[0] + rng.Float64()*(feeRange[1]-feeRange[0])

		records = append(records, []string{
			core.NewSubscriptionID(i + 1).String(),
			g.userID(rng),
			serviceType,
			pick(rng, services[serviceType]),
			fmt.Sprintf("%.2f", fee),
			pick(rng, statuses),
			fmt.Sprintf("%t", rng.Float64() < 0.6),
		})
	}
	return records
}

// sortedTimestamps produces Rows chronological timestamps within the window
func (g *LogGenerator) sortedTimestamps(rng *rand.Rand) []time.Time {
	window := g.config.EndDate.Sub(g.config.StartDate)
	times := make([]time.Time, g.config.Rows)
	for i := range times {
		offset := time.Duration(rng.Int63n(int64(window)))
		times[i] = g.config.StartDate.Add(offset).Truncate(time.Second)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

func (g *LogGenerator) userID(rng *rand.Rand) string {
	return fmt.Sprintf("user_%04d", 1+rng.Intn(g.config.UserCount))
}

func randomIP(rng *rand.Rand) string {
	return fmt.Sprintf("%d.%d.%d.%d", 10+rng.Intn(200), rng.Intn(256), rng.Intn(256), 1+rng.Intn(254))
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}
