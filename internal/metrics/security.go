package metrics

import (
	"logscope/domain/logs"
)

// computeSecurity derives the security-event metrics: blank-request and DOS
// counts, severity and blocked distributions, and request-rate aggregates
// during high-severity events. The blank and DOS sentinels come from
// configuration.
func (e *Engine) computeSecurity(table *logs.Table) (*Summary, error) {
	events, err := table.Strings("event_type")
	if err != nil {
		return nil, schemaErr(table, "dos_attack_count", "event_type", err)
	}
	severities, err := table.Strings("severity")
	if err != nil {
		return nil, schemaErr(table, "severity_distribution", "severity", err)
	}
	blocked, err := table.Bools("blocked")
	if err != nil {
		return nil, schemaErr(table, "blocked_counts", "blocked", err)
	}
	rps, err := table.Floats("requests_per_second")
	if err != nil {
		return nil, schemaErr(table, "mean_rps_high_severity", "requests_per_second", err)
	}
	sourceIPs, err := table.Strings("source_ip")
	if err != nil {
		return nil, schemaErr(table, "top_attack_ips", "source_ip", err)
	}

	total := table.NumRows()
	eventCounts := newCounter()
	severityCounts := newCounter()
	attackIPs := newCounter()

	blankCount, dosCount, blockedCount := 0, 0, 0
	highSevSum, highSevN := 0.0, 0
	maxDOSRate := 0.0

	for i := 0; i < total; i++ {
		eventCounts.inc(events[i])
		severityCounts.inc(severities[i])

		if blocked[i] {
			blockedCount++
		}
		switch events[i] {
		case e.security.BlankEvent:
			blankCount++
		case e.security.DOSEvent:
			dosCount++
			if rps[i] > maxDOSRate {
				maxDOSRate = rps[i]
			}
		}
		if events[i] != logs.EventNormal {
			attackIPs.inc(sourceIPs[i])
		}
		if severities[i] == logs.SeverityHigh || severities[i] == logs.SeverityCritical {
			highSevSum += rps[i]
			highSevN++
		}
	}

	meanHighSevRPS := 0.0
	if highSevN > 0 {
		meanHighSevRPS = highSevSum / float64(highSevN)
	}

	blockedBreakdown := []Entry{
		{Key: "Blocked", Value: float64(blockedCount)},
		{Key: "Allowed", Value: float64(total - blockedCount)},
	}

	return &Summary{
		Kind:     logs.KindSecurity,
		RowCount: total,
		Metrics: []Metric{
			{Name: "total_events", Label: "Total Events", Value: float64(total), Format: FormatCount},
			{Name: "blank_request_count", Label: "Blank Requests", Value: float64(blankCount), Format: FormatCount},
			{Name: "dos_attack_count", Label: "DOS Attacks", Value: float64(dosCount), Format: FormatCount},
			{Name: "blocked_rate", Label: "Blocked Rate", Value: rate(blockedCount, total), Format: FormatPercent},
			{Name: "mean_rps_high_severity", Label: "Avg RPS (High Severity)", Value: meanHighSevRPS, Format: FormatFloat},
			{Name: "max_rps_dos", Label: "Max RPS During DOS", Value: maxDOSRate, Format: FormatFloat},
		},
		Breakdowns: []Breakdown{
			{Name: "event_type_distribution", Label: "Security Event Types", Entries: eventCounts.entries()},
			{Name: "severity_distribution", Label: "Severity Distribution", Entries: severityCounts.entries()},
			{Name: "blocked_counts", Label: "Blocked vs Allowed", Entries: blockedBreakdown},
			{Name: "top_attack_ips", Label: "Top Source IPs by Attack Volume", Entries: attackIPs.topK(topOffenderLimit)},
		},
	}, nil
}
