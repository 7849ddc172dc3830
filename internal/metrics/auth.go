package metrics

import (
	"logscope/domain/logs"
)

// topOffenderLimit bounds the offender and failure-reason listings shown on
// the dashboard, matching the original report's top-10 tables.
const topOffenderLimit = 10

// computeAuth derives the authentication-attempt metrics: unauthentic
// counts and rate, failure reasons, and the most frequent offending
// usernames and source IPs.
func (e *Engine) computeAuth(table *logs.Table) (*Summary, error) {
	results, err := table.Strings("auth_result")
	if err != nil {
		return nil, schemaErr(table, "unauthentic_rate", "auth_result", err)
	}
	reasons, err := table.Strings("failure_reason")
	if err != nil {
		return nil, schemaErr(table, "failure_reasons", "failure_reason", err)
	}
	usernames, err := table.Strings("attempted_username")
	if err != nil {
		return nil, schemaErr(table, "top_offenders", "attempted_username", err)
	}
	ips, err := table.Strings("ip_address")
	if err != nil {
		return nil, schemaErr(table, "suspicious_ips", "ip_address", err)
	}
	geos, err := table.Strings("geolocation")
	if err != nil {
		return nil, schemaErr(table, "geo_distribution", "geolocation", err)
	}

	total := table.NumRows()
	unauthentic := 0
	resultCounts := newCounter()
	reasonCounts := newCounter()
	offenderCounts := newCounter()
	suspiciousIPs := newCounter()
	geoCounts := newCounter()

	for i := 0; i < total; i++ {
		resultCounts.inc(results[i])
		geoCounts.inc(geos[i])

		if results[i] != logs.AuthResultUnauthentic {
			continue
		}
		unauthentic++
		offenderCounts.inc(usernames[i])
		suspiciousIPs.inc(ips[i])
		if reasons[i] != "" {
			reasonCounts.inc(reasons[i])
		}
	}

	return &Summary{
		Kind:     logs.KindAuth,
		RowCount: total,
		Metrics: []Metric{
			{Name: "total_attempts", Label: "Total Attempts", Value: float64(total), Format: FormatCount},
			{Name: "unauthentic_count", Label: "Unauthentic Attempts", Value: float64(unauthentic), Format: FormatCount},
			{Name: "unauthentic_rate", Label: "Unauthentic Rate", Value: rate(unauthentic, total), Format: FormatPercent},
			{Name: "authentic_count", Label: "Authentic Attempts", Value: float64(total - unauthentic), Format: FormatCount},
			{Name: "suspicious_ip_count", Label: "Suspicious IPs", Value: float64(suspiciousIPs.distinct()), Format: FormatCount},
		},
		Breakdowns: []Breakdown{
			{Name: "result_distribution", Label: "Authentication Results", Entries: resultCounts.entries()},
			{Name: "failure_reasons", Label: "Failure Reasons (Unauthentic)", Entries: reasonCounts.topK(topOffenderLimit)},
			{Name: "top_offenders", Label: "Top Offending Usernames", Entries: offenderCounts.topK(topOffenderLimit)},
			{Name: "suspicious_ips", Label: "Top Suspicious IP Addresses", Entries: suspiciousIPs.topK(topOffenderLimit)},
			{Name: "geo_distribution", Label: "Geographic Distribution", Entries: geoCounts.entries()},
		},
	}, nil
}
