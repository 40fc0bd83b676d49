// Package pairs analyzes two aligned price series as a spread trade:
// rolling hedge ratio, spread z-score, mean-reversion diagnostics,
// rolling correlation, and stationarity checks.
package pairs

import (
	"math"

	"github.com/rustyeddy/analytics/series"
)

// Hedge-ratio clamp bounds; degenerate OLS slopes are pinned here rather
// than propagated.
const (
	BetaMin = 0.05
	BetaMax = 20.0
)

// Config tunes the rolling analysis. A nil Test falls back to the
// default ADF+KPSS implementation.
type Config struct {
	Window       int
	Significance float64
	Test         StationarityTest
}

// SpreadRow is the hedge/spread state on one day. Fields are nil until
// enough history has accrued or when the window variance is ~0.
type SpreadRow struct {
	Day    series.Date `json:"t"`
	Beta   *float64    `json:"beta"`
	Spread *float64    `json:"spread"`
	Mu     *float64    `json:"mu"`
	Sigma  *float64    `json:"sigma"`
	Z      *float64    `json:"z"`
}

// ReversionRow carries AR(1) mean-reversion diagnostics of the spread.
type ReversionRow struct {
	Day          series.Date `json:"t"`
	Phi          *float64    `json:"phi"`
	Strength     *float64    `json:"strength"`
	HalfLifeDays *float64    `json:"half_life_days"`
}

// StationarityRow reports the rolling stationarity test of the spread.
type StationarityRow struct {
	Day   series.Date `json:"t"`
	ADFP  *float64    `json:"adf_p"`
	KPSSP *float64    `json:"kpss_p"`
	Pass  *bool       `json:"pass"`
}

// CorrelationRow holds rolling log-return correlations.
type CorrelationRow struct {
	Day      series.Date `json:"t"`
	Pearson  *float64    `json:"pearson"`
	Spearman *float64    `json:"spearman"`
}

// Result bundles every rolling diagnostic, one row per aligned day.
type Result struct {
	Spread                  []SpreadRow       `json:"spread"`
	Reversion               []ReversionRow    `json:"reversion"`
	Stationarity            []StationarityRow `json:"stationarity"`
	Correlation             []CorrelationRow  `json:"correlation"`
	BreakdownProbabilityPct float64           `json:"breakdown_probability_pct"`
}

// Analyze aligns the two price series on their common trading days and
// runs every rolling diagnostic. Overlap shorter than the window yields
// an empty result.
func Analyze(x, y []series.DatedValue, cfg Config) Result {
	if cfg.Test == nil {
		cfg.Test = ADFKPSS{}
	}
	days, px, py := align(x, y)
	if cfg.Window < 2 || len(days) < cfg.Window {
		return Result{}
	}
	n := len(days)
	w := cfg.Window

	lx := make([]float64, n)
	ly := make([]float64, n)
	for i := range days {
		lx[i] = math.Log(px[i])
		ly[i] = math.Log(py[i])
	}

	res := Result{
		Spread:       make([]SpreadRow, n),
		Reversion:    make([]ReversionRow, n),
		Stationarity: make([]StationarityRow, n),
		Correlation:  make([]CorrelationRow, n),
	}

	// spreads[i] is only valid where valid[i]; rolling mu/sigma and the
	// spread-based diagnostics consume trailing runs of valid spreads.
	spreads := make([]float64, n)
	valid := make([]bool, n)

	for t := 0; t < n; t++ {
		res.Spread[t] = SpreadRow{Day: days[t]}
		res.Reversion[t] = ReversionRow{Day: days[t]}
		res.Stationarity[t] = StationarityRow{Day: days[t]}
		res.Correlation[t] = CorrelationRow{Day: days[t]}
		if t < w-1 {
			continue
		}

		beta := hedgeRatio(lx[t-w+1:t+1], ly[t-w+1:t+1])
		if beta == nil {
			continue
		}
		res.Spread[t].Beta = beta
		sp := lx[t] - *beta*ly[t]
		spreads[t] = sp
		valid[t] = true
		res.Spread[t].Spread = &sp

		if win, ok := trailingSpreads(spreads, valid, t, w); ok {
			mu, sigma := meanStd(win)
			res.Spread[t].Mu = &mu
			res.Spread[t].Sigma = &sigma
			if sigma > 1e-12 {
				z := (sp - mu) / sigma
				res.Spread[t].Z = finite(z)
			}
			fillReversion(&res.Reversion[t], win)
			fillStationarity(&res.Stationarity[t], win, cfg)
		}

		fillCorrelation(&res.Correlation[t], lx[t-w+1:t+1], ly[t-w+1:t+1])
	}

	res.BreakdownProbabilityPct = breakdownPct(res.Stationarity)
	return res
}

// align intersects the two series on common days, both assumed sorted
// ascending. Non-positive prices are dropped (log-price domain).
func align(x, y []series.DatedValue) ([]series.Date, []float64, []float64) {
	var days []series.Date
	var px, py []float64
	i, j := 0, 0
	for i < len(x) && j < len(y) {
		switch {
		case x[i].Day.Before(y[j].Day):
			i++
		case y[j].Day.Before(x[i].Day):
			j++
		default:
			if x[i].Value > 0 && y[j].Value > 0 {
				days = append(days, x[i].Day)
				px = append(px, x[i].Value)
				py = append(py, y[j].Value)
			}
			i++
			j++
		}
	}
	return days, px, py
}

// hedgeRatio is the closed-form OLS slope of lx on ly, clamped to
// [BetaMin, BetaMax]. Near-zero regressor variance yields nil.
func hedgeRatio(lx, ly []float64) *float64 {
	my := mean(ly)
	mx := mean(lx)
	var cov, vy float64
	for i := range ly {
		dy := ly[i] - my
		cov += (lx[i] - mx) * dy
		vy += dy * dy
	}
	if vy < 1e-12 {
		return nil
	}
	beta := cov / vy
	if beta < BetaMin {
		beta = BetaMin
	} else if beta > BetaMax {
		beta = BetaMax
	}
	return &beta
}

// trailingSpreads returns the last w spread values ending at t if all of
// them are valid (contiguous hedge-ratio history).
func trailingSpreads(spreads []float64, valid []bool, t, w int) ([]float64, bool) {
	if t-w+1 < 0 {
		return nil, false
	}
	for i := t - w + 1; i <= t; i++ {
		if !valid[i] {
			return nil, false
		}
	}
	return spreads[t-w+1 : t+1], true
}

func breakdownPct(rows []StationarityRow) float64 {
	tested, failed := 0, 0
	for _, r := range rows {
		if r.Pass == nil {
			continue
		}
		tested++
		if !*r.Pass {
			failed++
		}
	}
	if tested == 0 {
		return 0
	}
	return float64(failed) / float64(tested) * 100
}

func mean(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// meanStd returns the mean and population standard deviation of v.
func meanStd(v []float64) (float64, float64) {
	m := mean(v)
	var ss float64
	for _, x := range v {
		d := x - m
		ss += d * d
	}
	return m, math.Sqrt(ss / float64(len(v)))
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
