// Package series turns sparse dated P&L deltas into complete day-by-day
// balance series and equity curves. All functions are pure; callers supply
// already-fetched arrays and keep the results.
package series

import (
	"fmt"
	"sort"
)

// DatedValue is one observation on one calendar day.
type DatedValue struct {
	Day   Date    `json:"day"`
	Value float64 `json:"value"`
}

// Validate checks that a series is strictly ascending by day with no
// duplicate days.
func Validate(s []DatedValue) error {
	for i := 1; i < len(s); i++ {
		if !s[i-1].Day.Before(s[i].Day) {
			return fmt.Errorf("series not strictly ascending at index %d (%s then %s)",
				i, s[i-1].Day, s[i].Day)
		}
	}
	return nil
}

// Sort orders a series ascending by day, in place.
func Sort(s []DatedValue) {
	sort.Slice(s, func(i, j int) bool { return s[i].Day.Before(s[j].Day) })
}

// DailyRow is one calendarized day of account activity with rolled balances.
// DailyReturnPct is nil when the day's start balance is zero.
type DailyRow struct {
	Day            Date     `json:"day"`
	GrossPnL       float64  `json:"gross_pnl"`
	Fees           float64  `json:"fees"`
	NetPnL         float64  `json:"net_pnl"`
	StartBalance   float64  `json:"start_balance"`
	EndBalance     float64  `json:"end_balance"`
	DailyReturnPct *float64 `json:"daily_return_pct"`
}

// Build calendarizes sparse gross-P&L and fee deltas over [start, end]
// inclusive and rolls balances forward from initialBalance. Days with no
// activity are zero-filled. Inputs need not be sorted; multiple deltas on
// the same day are summed. Empty input yields an all-zero series.
func Build(gross, fees []DatedValue, start, end Date, initialBalance float64) []DailyRow {
	if end.Before(start) {
		return nil
	}

	grossByDay := bucketByDay(gross, start, end)
	feesByDay := bucketByDay(fees, start, end)

	n := DaysBetween(start, end) + 1
	rows := make([]DailyRow, 0, n)

	balance := initialBalance
	for d := start; !d.After(end); d = d.Next() {
		g := grossByDay[d]
		f := feesByDay[d]
		net := g - f

		row := DailyRow{
			Day:          d,
			GrossPnL:     g,
			Fees:         f,
			NetPnL:       net,
			StartBalance: balance,
			EndBalance:   balance + net,
		}
		if balance != 0 {
			r := net / balance
			row.DailyReturnPct = &r
		}
		balance = row.EndBalance
		rows = append(rows, row)
	}
	return rows
}

func bucketByDay(s []DatedValue, start, end Date) map[Date]float64 {
	m := make(map[Date]float64, len(s))
	for _, dv := range s {
		if dv.Day.Before(start) || dv.Day.After(end) {
			continue
		}
		m[dv.Day] += dv.Value
	}
	return m
}

// Net extracts the net P&L series from calendarized rows.
func Net(rows []DailyRow) []DatedValue {
	out := make([]DatedValue, len(rows))
	for i, r := range rows {
		out[i] = DatedValue{Day: r.Day, Value: r.NetPnL}
	}
	return out
}

// Returns extracts the daily return series from calendarized rows.
// Days whose return is not computable (zero start balance) yield 0,
// matching the upstream convention of treating them as flat.
func Returns(rows []DailyRow) []DatedValue {
	out := make([]DatedValue, len(rows))
	for i, r := range rows {
		v := 0.0
		if r.DailyReturnPct != nil {
			v = *r.DailyReturnPct
		}
		out[i] = DatedValue{Day: r.Day, Value: v}
	}
	return out
}

// InjectUnrealized adds a live unrealized P&L figure onto the final day's
// end balance and recomputes that day's return. No-op on an empty series
// or a zero adjustment.
func InjectUnrealized(rows []DailyRow, upnl float64) {
	if len(rows) == 0 || upnl == 0 {
		return
	}
	last := &rows[len(rows)-1]
	last.EndBalance += upnl
	last.NetPnL += upnl
	if last.StartBalance != 0 {
		r := last.NetPnL / last.StartBalance
		last.DailyReturnPct = &r
	} else {
		last.DailyReturnPct = nil
	}
}
