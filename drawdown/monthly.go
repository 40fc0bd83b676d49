package drawdown

import "github.com/rustyeddy/analytics/series"

// MonthlyRow holds one calendar month's return and worst drawdown.
// Return is nil when the month's opening equity is zero.
type MonthlyRow struct {
	Month    string   `json:"month"`
	Return   *float64 `json:"return"`
	Drawdown float64  `json:"drawdown"`
}

// Monthly partitions an equity curve by calendar month and reports the
// first-to-last return and the worst daily drawdown inside each month.
// Drawdowns answer to the running peak of the whole curve, not a peak
// reset at month start.
func Monthly(curve series.EquityCurve, seed float64) []MonthlyRow {
	if len(curve) == 0 {
		return nil
	}
	dd := Series(curve, seed)

	var out []MonthlyRow
	var cur *MonthlyRow
	var first float64
	for i, p := range curve {
		key := p.Day.MonthKey()
		if cur == nil || cur.Month != key {
			out = append(out, MonthlyRow{Month: key})
			cur = &out[len(out)-1]
			first = p.Equity
		}
		if first != 0 {
			r := p.Equity/first - 1
			cur.Return = &r
		}
		if dd[i].Value < cur.Drawdown {
			cur.Drawdown = dd[i].Value
		}
	}
	return out
}

// MTDReturn is the latest month's first-to-last equity return, nil when
// the curve is empty or the month opened at zero.
func MTDReturn(curve series.EquityCurve) *float64 {
	if len(curve) == 0 {
		return nil
	}
	key := curve[len(curve)-1].Day.MonthKey()
	var first float64
	seen := false
	for _, p := range curve {
		if p.Day.MonthKey() != key {
			continue
		}
		if !seen {
			first = p.Equity
			seen = true
		}
	}
	if !seen || first == 0 {
		return nil
	}
	r := curve[len(curve)-1].Equity/first - 1
	return &r
}

// MTDMaxDrawdown compounds the latest month's returns into a unit equity
// curve and reports its worst drawdown (a negative number, 0 when the
// month is empty).
func MTDMaxDrawdown(returns []series.DatedValue) float64 {
	if len(returns) == 0 {
		return 0
	}
	key := returns[len(returns)-1].Day.MonthKey()
	var month []series.DatedValue
	for _, r := range returns {
		if r.Day.MonthKey() == key {
			month = append(month, r)
		}
	}
	equity := series.CompoundReturns(month, 1)
	return Max(equity, 0)
}

// LosingDays counts negative-return days and their share of the series.
func LosingDays(returns []series.DatedValue) (count int, ratio float64) {
	if len(returns) == 0 {
		return 0, 0
	}
	for _, r := range returns {
		if r.Value < 0 {
			count++
		}
	}
	return count, float64(count) / float64(len(returns))
}
