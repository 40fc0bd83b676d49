package series

// MergeDeltas sums any number of dated-value series on calendar-day keys.
// The result covers the union of all days, sorted ascending. Per-account
// calendars may differ; derived ratios (drawdown, streaks, risk metrics)
// must be recomputed on the merged series, never averaged across accounts.
func MergeDeltas(lists ...[]DatedValue) []DatedValue {
	totals := make(map[Date]float64)
	for _, list := range lists {
		for _, dv := range list {
			totals[dv.Day] += dv.Value
		}
	}

	out := make([]DatedValue, 0, len(totals))
	for day, v := range totals {
		out = append(out, DatedValue{Day: day, Value: v})
	}
	Sort(out)
	return out
}

// MergeRows combines calendarized per-account rows into a single portfolio
// series: per-day gross, fees and net are summed and balances re-rolled
// from the combined initial balance. Each input must already be
// calendarized over its own range; days absent from an account contribute
// zero.
func MergeRows(initialBalance float64, accounts ...[]DailyRow) []DailyRow {
	var gross, fees []DatedValue
	var start, end Date
	for _, rows := range accounts {
		for _, r := range rows {
			gross = append(gross, DatedValue{Day: r.Day, Value: r.GrossPnL})
			fees = append(fees, DatedValue{Day: r.Day, Value: r.Fees})
			if start.IsZero() || r.Day.Before(start) {
				start = r.Day
			}
			if end.IsZero() || r.Day.After(end) {
				end = r.Day
			}
		}
	}
	if start.IsZero() {
		return nil
	}
	return Build(gross, fees, start, end, initialBalance)
}
