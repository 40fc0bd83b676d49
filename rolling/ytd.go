package rolling

import "github.com/rustyeddy/analytics/series"

// YearRow holds one calendar year's risk ratios.
type YearRow struct {
	Year      int      `json:"year"`
	Periods   int      `json:"periods"`
	Sharpe    *float64 `json:"sharpe"`
	Sortino   *float64 `json:"sortino"`
	Calmar    *float64 `json:"calmar"`
	AnnReturn *float64 `json:"ann_return"`
}

// ByYear partitions a return series by calendar year and computes the
// same ratios per year. With monthly granularity each year contributes
// at most 12 equity points, one per month index; finer granularities use
// the raw periods directly.
func ByYear(returns []series.DatedValue, freq Frequency, riskFree float64) []YearRow {
	var out []YearRow
	var bucket []float64

	flush := func() {
		if len(out) == 0 {
			return
		}
		cur := &out[len(out)-1]
		cur.Periods = len(bucket)
		row := Row{}
		fill(&row, bucket, freq.PeriodsPerYear(), riskFree)
		cur.Sharpe, cur.Sortino, cur.Calmar, cur.AnnReturn = row.Sharpe, row.Sortino, row.Calmar, row.AnnReturn
		bucket = bucket[:0]
	}

	for _, dv := range returns {
		y := dv.Day.Year()
		if len(out) == 0 || out[len(out)-1].Year != y {
			flush()
			out = append(out, YearRow{Year: y})
		}
		if freq == Monthly && len(bucket) >= 12 {
			continue // one point per month index, capped at a full year
		}
		bucket = append(bucket, dv.Value)
	}
	flush()
	return out
}
