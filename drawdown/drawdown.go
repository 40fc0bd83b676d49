// Package drawdown derives drawdown and losing-streak diagnostics from
// equity curves and daily net P&L series.
package drawdown

import (
	"github.com/rustyeddy/analytics/series"
)

// Stats summarizes drawdown over a full equity curve.
type Stats struct {
	MaxDrawdownPct     float64      `json:"max_drawdown_pct"`
	MaxDrawdownPeakDay *series.Date `json:"max_drawdown_peak_day"`
	CurrentDrawdownPct float64      `json:"current_drawdown_pct"`
	CurrentDrawdownDays int         `json:"current_drawdown_days"`
}

// Period marks the worst drawdown episode: the peak it fell from, the
// trough, and the first day equity regained the peak (nil if never).
type Period struct {
	PeakDay     series.Date  `json:"peak_day"`
	TroughDay   series.Date  `json:"trough_day"`
	RecoveryDay *series.Date `json:"recovery_day"`
}

// Analyze walks an equity curve with a running peak and returns drawdown
// statistics plus the worst-episode marker. seed pre-loads the peak (an
// initial balance, typically); pass 0 to seed from the first point.
// An empty curve returns zero stats and a nil period.
func Analyze(curve series.EquityCurve, seed float64) (Stats, *Period) {
	if len(curve) == 0 {
		return Stats{}, nil
	}

	peak := seed
	peakDay := curve[0].Day
	if peak <= 0 {
		peak = curve[0].Equity
	}

	var stats Stats
	var worstPeak float64
	var worstPeakDay, troughDay series.Date
	troughIdx := -1

	for i, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
			peakDay = p.Day
		}
		dd := 0.0
		if peak > 0 {
			dd = p.Equity/peak - 1
		}
		if dd < stats.MaxDrawdownPct {
			stats.MaxDrawdownPct = dd
			worstPeak = peak
			worstPeakDay = peakDay
			troughDay = p.Day
			troughIdx = i
		}
		if i == len(curve)-1 {
			stats.CurrentDrawdownPct = dd
		}
	}

	// Trailing consecutive days under water.
	ddSeries := Series(curve, seed)
	for i := len(ddSeries) - 1; i >= 0 && ddSeries[i].Value < 0; i-- {
		stats.CurrentDrawdownDays++
	}

	if troughIdx < 0 {
		return stats, nil
	}

	stats.MaxDrawdownPeakDay = &worstPeakDay
	period := &Period{PeakDay: worstPeakDay, TroughDay: troughDay}
	for _, p := range curve[troughIdx+1:] {
		if p.Equity >= worstPeak {
			day := p.Day
			period.RecoveryDay = &day
			break
		}
	}
	return stats, period
}

// Series returns the day-by-day drawdown series of a curve. Every value
// is <= 0, and exactly 0 whenever a new peak is set.
func Series(curve series.EquityCurve, seed float64) []series.DatedValue {
	out := make([]series.DatedValue, len(curve))
	peak := seed
	if peak <= 0 && len(curve) > 0 {
		peak = curve[0].Equity
	}
	for i, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		dd := 0.0
		if peak > 0 {
			dd = p.Equity/peak - 1
		}
		out[i] = series.DatedValue{Day: p.Day, Value: dd}
	}
	return out
}

// Max returns the worst (most negative) drawdown of a curve, 0 for an
// empty curve.
func Max(curve series.EquityCurve, seed float64) float64 {
	min := 0.0
	for _, dv := range Series(curve, seed) {
		if dv.Value < min {
			min = dv.Value
		}
	}
	return min
}

// WindowCurrent measures the drawdown of the last point on or after
// windowStart against peaks accumulated over the full history, so a
// month-to-date window still answers to the all-time peak. Returns nil
// when the window contains no points.
func WindowCurrent(full series.EquityCurve, windowStart series.Date) *float64 {
	dd := Series(full, 0)
	for i := len(dd) - 1; i >= 0; i-- {
		if !dd[i].Day.Before(windowStart) {
			v := dd[i].Value
			return &v
		}
	}
	return nil
}
