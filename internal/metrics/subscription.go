package metrics

import (
	"logscope/domain/logs"
)

// computeSubscription derives the subscription metrics: active revenue
// total, service-type and status distributions, and auto-renewal rate.
// Revenue sums monthly_fee_usd over rows whose status is ACTIVE.
func (e *Engine) computeSubscription(table *logs.Table) (*Summary, error) {
	statuses, err := table.Strings("subscription_status")
	if err != nil {
		return nil, schemaErr(table, "monthly_revenue", "subscription_status", err)
	}
	fees, err := table.Floats("monthly_fee_usd")
	if err != nil {
		return nil, schemaErr(table, "monthly_revenue", "monthly_fee_usd", err)
	}
	serviceTypes, err := table.Strings("service_type")
	if err != nil {
		return nil, schemaErr(table, "revenue_by_type", "service_type", err)
	}
	serviceNames, err := table.Strings("service_name")
	if err != nil {
		return nil, schemaErr(table, "revenue_by_service", "service_name", err)
	}
	autoRenew, err := table.Bools("auto_renew")
	if err != nil {
		return nil, schemaErr(table, "auto_renew_rate", "auto_renew", err)
	}

	total := table.NumRows()
	statusCounts := newCounter()
	typeCounts := newCounter()
	serviceCounts := newCounter()
	revenueByType := newCounter()
	revenueByService := newCounter()

	active, renewing := 0, 0
	revenue := 0.0

	for i := 0; i < total; i++ {
		statusCounts.inc(statuses[i])
		typeCounts.inc(serviceTypes[i])
		serviceCounts.inc(serviceNames[i])

		if autoRenew[i] {
			renewing++
		}
		if statuses[i] == logs.SubscriptionActive {
			active++
			revenue += fees[i]
			revenueByType.add(serviceTypes[i], fees[i])
			revenueByService.add(serviceNames[i], fees[i])
		}
	}

	return &Summary{
		Kind:     logs.KindSubscription,
		RowCount: total,
		Metrics: []Metric{
			{Name: "total_subscriptions", Label: "Total Subscriptions", Value: float64(total), Format: FormatCount},
			{Name: "active_count", Label: "Active Subscriptions", Value: float64(active), Format: FormatCount},
			{Name: "monthly_revenue", Label: "Monthly Revenue", Value: revenue, Format: FormatCurrency},
			{Name: "auto_renew_rate", Label: "Auto-Renew Rate", Value: rate(renewing, total), Format: FormatPercent},
		},
		Breakdowns: []Breakdown{
			{Name: "type_distribution", Label: "Service Type Distribution", Entries: typeCounts.entries()},
			{Name: "popular_services", Label: "Popular Services", Entries: serviceCounts.entries()},
			{Name: "revenue_by_type", Label: "Revenue by Service Type", Entries: revenueByType.entries()},
			{Name: "revenue_by_service", Label: "Revenue by Service", Entries: revenueByService.entries()},
			{Name: "status_distribution", Label: "Subscription Status Breakdown", Entries: statusCounts.entries()},
		},
	}, nil
}
