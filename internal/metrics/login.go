package metrics

import (
	"fmt"

	"logscope/domain/logs"
)

// computeLogin derives the login dataset metrics: attempt counts, success
// rate, method/device/browser frequencies, and failed logins bucketed by
// hour of day.
func (e *Engine) computeLogin(table *logs.Table) (*Summary, error) {
	status, err := table.Strings("login_status")
	if err != nil {
		return nil, schemaErr(table, "success_rate", "login_status", err)
	}
	methods, err := table.Strings("login_method")
	if err != nil {
		return nil, schemaErr(table, "top_methods", "login_method", err)
	}
	users, err := table.Strings("user_id")
	if err != nil {
		return nil, schemaErr(table, "unique_users", "user_id", err)
	}
	ips, err := table.Strings("ip_address")
	if err != nil {
		return nil, schemaErr(table, "unique_ips", "ip_address", err)
	}
	times, err := table.Times("timestamp")
	if err != nil {
		return nil, schemaErr(table, "failed_by_hour", "timestamp", err)
	}
	devices, err := table.Strings("device_type")
	if err != nil {
		return nil, schemaErr(table, "device_distribution", "device_type", err)
	}
	browsers, err := table.Strings("browser")
	if err != nil {
		return nil, schemaErr(table, "browser_distribution", "browser", err)
	}

	total := table.NumRows()
	successes := 0
	statusCounts := newCounter()
	methodCounts := newCounter()
	deviceCounts := newCounter()
	browserCounts := newCounter()
	userCounts := newCounter()
	ipCounts := newCounter()

	failedByHour := make([]Entry, 24)
	for h := range failedByHour {
		failedByHour[h] = Entry{Key: fmt.Sprintf("%02d:00", h)}
	}

	for i := 0; i < total; i++ {
		statusCounts.inc(status[i])
		methodCounts.inc(methods[i])
		deviceCounts.inc(devices[i])
		browserCounts.inc(browsers[i])
		userCounts.inc(users[i])
		ipCounts.inc(ips[i])

		if status[i] == logs.LoginSuccess {
			successes++
		} else {
			failedByHour[times[i].Hour()].Value++
		}
	}

	return &Summary{
		Kind:     logs.KindLogin,
		RowCount: total,
		Metrics: []Metric{
			{Name: "total_attempts", Label: "Total Login Attempts", Value: float64(total), Format: FormatCount},
			{Name: "success_rate", Label: "Success Rate", Value: rate(successes, total), Format: FormatPercent},
			{Name: "failure_count", Label: "Failed Logins", Value: float64(total - successes), Format: FormatCount},
			{Name: "unique_users", Label: "Unique Users", Value: float64(userCounts.distinct()), Format: FormatCount},
			{Name: "unique_ips", Label: "Unique IPs", Value: float64(ipCounts.distinct()), Format: FormatCount},
		},
		Breakdowns: []Breakdown{
			{Name: "status_distribution", Label: "Login Success vs Failed", Entries: statusCounts.entries()},
			{Name: "method_counts", Label: "Login Methods Used", Entries: methodCounts.entries()},
			{Name: "device_distribution", Label: "Device Type Distribution", Entries: deviceCounts.entries()},
			{Name: "browser_distribution", Label: "Browser Usage", Entries: browserCounts.entries()},
			{Name: "failed_by_hour", Label: "Failed Logins by Hour of Day", Entries: failedByHour},
		},
	}, nil
}
