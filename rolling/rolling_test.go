package rolling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/analytics/series"
)

func returnsFrom(start string, vals []float64) []series.DatedValue {
	d, err := series.ParseDate(start)
	if err != nil {
		panic(err)
	}
	out := make([]series.DatedValue, len(vals))
	for i, v := range vals {
		out[i] = series.DatedValue{Day: d, Value: v}
		d = d.Next()
	}
	return out
}

func TestComputeShortHistoryIsNull(t *testing.T) {
	t.Parallel()

	returns := returnsFrom("2025-01-01", []float64{0.01, -0.02, 0.005})
	rows := Compute(returns, Daily, []WindowSpec{
		{Periods: 3, Label: "3d"},
		{Periods: 30, Label: "30d"},
	}, 0)
	require.Len(t, rows, 2)

	assert.NotNil(t, rows[0].Sharpe)
	assert.Nil(t, rows[1].Sharpe)
	assert.Nil(t, rows[1].Sortino)
	assert.Nil(t, rows[1].Calmar)
	assert.Nil(t, rows[1].AnnReturn)
}

func TestComputeSharpe(t *testing.T) {
	t.Parallel()

	// Two-point window keeps the arithmetic checkable by hand.
	returns := returnsFrom("2025-01-01", []float64{0.01, 0.03})
	rows := Compute(returns, Daily, []WindowSpec{{Periods: 2, Label: "2d"}}, 0)
	require.Len(t, rows, 1)

	// mean 0.02, sample stdev sqrt(((0.01-0.02)^2+(0.03-0.02)^2)/1)
	stdev := math.Sqrt(2e-4 / 1)
	require.NotNil(t, rows[0].Sharpe)
	assert.InDelta(t, 0.02/stdev*math.Sqrt(365), *rows[0].Sharpe, 1e-9)

	// No negative returns: downside deviation 0, Sortino null.
	assert.Nil(t, rows[0].Sortino)

	require.NotNil(t, rows[0].AnnReturn)
	wantAnn := math.Pow(1.01*1.03, 365.0/2) - 1
	assert.InDelta(t, wantAnn, *rows[0].AnnReturn, 1e-9)

	// Monotonically rising equity never draws down: Calmar null.
	assert.Nil(t, rows[0].Calmar)
}

func TestComputeZeroVariance(t *testing.T) {
	t.Parallel()

	returns := returnsFrom("2025-01-01", []float64{0.01, 0.01, 0.01, 0.01})
	rows := Compute(returns, Daily, []WindowSpec{{Periods: 4, Label: "4d"}}, 0)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Sharpe, "zero stdev must not divide")
	assert.Nil(t, rows[0].Sortino)
	assert.NotNil(t, rows[0].AnnReturn)
}

func TestComputeCalmar(t *testing.T) {
	t.Parallel()

	returns := returnsFrom("2025-01-01", []float64{0.10, -0.05, 0.08})
	rows := Compute(returns, Daily, []WindowSpec{{Periods: 3, Label: "3d"}}, 0)
	require.Len(t, rows, 1)

	equity := 1.10 * 0.95 * 1.08
	ann := math.Pow(equity, 365.0/3) - 1
	require.NotNil(t, rows[0].Calmar)
	assert.InDelta(t, ann/0.05, *rows[0].Calmar, 1e-9)
}

func TestComputeRiskFree(t *testing.T) {
	t.Parallel()

	returns := returnsFrom("2025-01-01", []float64{0.01, 0.03})
	withRF := Compute(returns, Daily, []WindowSpec{{Periods: 2, Label: "2d"}}, 0.02)
	require.NotNil(t, withRF[0].Sharpe)
	assert.InDelta(t, 0.0, *withRF[0].Sharpe, 1e-9, "excess mean is zero at rf=mean")
}

func TestHeadlineIsLastWindow(t *testing.T) {
	t.Parallel()

	returns := returnsFrom("2025-01-01", []float64{0.01, -0.02, 0.005, 0.002})
	rows := Compute(returns, Daily, []WindowSpec{
		{Periods: 2, Label: "2d"},
		{Periods: 4, Label: "4d"},
	}, 0)
	h := Headline(rows)
	require.NotNil(t, h)
	assert.Equal(t, "4d", h.WindowLabel)

	assert.Nil(t, Headline(nil))
}

func TestFrequencies(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 365, Daily.PeriodsPerYear(), 0)
	assert.InDelta(t, 52, Weekly.PeriodsPerYear(), 0)
	assert.InDelta(t, 12, Monthly.PeriodsPerYear(), 0)

	f, err := ParseFrequency("weekly")
	require.NoError(t, err)
	assert.Equal(t, Weekly, f)

	_, err = ParseFrequency("hourly")
	assert.Error(t, err)
}

func TestByYearPartitions(t *testing.T) {
	t.Parallel()

	returns := append(
		returnsFrom("2024-12-29", []float64{0.01, -0.02, 0.015}),
		returnsFrom("2025-01-01", []float64{0.005, 0.01, -0.01, 0.02})...,
	)
	rows := ByYear(returns, Daily, 0)
	require.Len(t, rows, 2)
	assert.Equal(t, 2024, rows[0].Year)
	assert.Equal(t, 3, rows[0].Periods)
	assert.Equal(t, 2025, rows[1].Year)
	assert.Equal(t, 4, rows[1].Periods)
	assert.NotNil(t, rows[1].Sharpe)
}

func TestByYearMonthlyCapsTwelvePoints(t *testing.T) {
	t.Parallel()

	// 14 monthly observations stamped inside one calendar year: only the
	// first 12 count.
	d, _ := series.ParseDate("2025-01-31")
	var returns []series.DatedValue
	for i := 0; i < 14; i++ {
		returns = append(returns, series.DatedValue{Day: d.AddDays(i), Value: 0.01 * float64(i%3)})
	}
	rows := ByYear(returns, Monthly, 0)
	require.Len(t, rows, 1)
	assert.Equal(t, 12, rows[0].Periods)
}
