// Package rolling computes windowed risk ratios (Sharpe, Sortino, Calmar)
// and annualized return/volatility over return series.
package rolling

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/rustyeddy/analytics/series"
)

// Frequency is the sampling interval of a return series.
type Frequency int

const (
	Daily Frequency = iota
	Weekly
	Monthly
)

// PeriodsPerYear maps the frequency to its annualization factor.
func (f Frequency) PeriodsPerYear() float64 {
	switch f {
	case Weekly:
		return 52
	case Monthly:
		return 12
	default:
		return 365
	}
}

func (f Frequency) String() string {
	switch f {
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		return "daily"
	}
}

// ParseFrequency parses "daily", "weekly" or "monthly".
func ParseFrequency(s string) (Frequency, error) {
	switch s {
	case "daily":
		return Daily, nil
	case "weekly":
		return Weekly, nil
	case "monthly":
		return Monthly, nil
	}
	return Daily, fmt.Errorf("unknown frequency %q", s)
}

// WindowSpec names a trailing window measured in periods.
type WindowSpec struct {
	Periods int    `json:"periods" yaml:"periods"`
	Label   string `json:"label" yaml:"label"`
}

// Row is one window's risk metrics. Fields are nil whenever the metric is
// not computable (short history, zero variance, flat drawdown).
type Row struct {
	WindowLabel string   `json:"window_label"`
	Periods     int      `json:"periods"`
	Sharpe      *float64 `json:"sharpe"`
	Sortino     *float64 `json:"sortino"`
	Calmar      *float64 `json:"calmar"`
	AnnReturn   *float64 `json:"ann_return"`
}

// Compute evaluates every window spec against the trailing returns.
// riskFree is a per-period rate. Windows longer than the available
// history yield all-nil rows. The last row is the headline figure.
func Compute(returns []series.DatedValue, freq Frequency, windows []WindowSpec, riskFree float64) []Row {
	rows := make([]Row, 0, len(windows))
	for _, w := range windows {
		row := Row{WindowLabel: w.Label, Periods: w.Periods}
		if w.Periods > 0 && len(returns) >= w.Periods {
			tail := returns[len(returns)-w.Periods:]
			vals := make([]float64, len(tail))
			for i, dv := range tail {
				vals[i] = dv.Value
			}
			fill(&row, vals, freq.PeriodsPerYear(), riskFree)
		}
		rows = append(rows, row)
	}
	return rows
}

// Headline returns the last row, the dashboard's main figure, or nil.
func Headline(rows []Row) *Row {
	if len(rows) == 0 {
		return nil
	}
	return &rows[len(rows)-1]
}

func fill(row *Row, vals []float64, periodsPerYear, riskFree float64) {
	n := len(vals)
	if n < 2 {
		return
	}

	mean := stat.Mean(vals, nil)
	stdev := stat.StdDev(vals, nil)
	downside := downsideDeviation(vals)
	excess := mean - riskFree
	sqrtPPY := math.Sqrt(periodsPerYear)

	if stdev > 0 {
		row.Sharpe = finite(excess / stdev * sqrtPPY)
	}
	if downside > 0 {
		row.Sortino = finite(excess / downside * sqrtPPY)
	}

	// Compound the window into a unit equity curve and annualize growth.
	equity := 1.0
	peak := 1.0
	maxDD := 0.0
	for _, r := range vals {
		equity *= 1 + r
		if equity > peak {
			peak = equity
		}
		if peak > 0 {
			if dd := equity/peak - 1; dd < maxDD {
				maxDD = dd
			}
		}
	}
	if equity > 0 {
		row.AnnReturn = finite(math.Pow(equity, periodsPerYear/float64(n)) - 1)
	}
	if row.AnnReturn != nil && math.Abs(maxDD) > 1e-12 {
		row.Calmar = finite(*row.AnnReturn / math.Abs(maxDD))
	}
}

// downsideDeviation is the sample deviation of negative returns only,
// measured against zero.
func downsideDeviation(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	sum := 0.0
	for _, r := range vals {
		if r < 0 {
			sum += r * r
		}
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
