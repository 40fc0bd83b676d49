package drawdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/analytics/series"
)

func day(s string) series.Date {
	d, err := series.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func curveFromNet(net []float64, initial float64, start string) series.EquityCurve {
	curve := make(series.EquityCurve, len(net))
	d := day(start)
	equity := initial
	for i, v := range net {
		equity += v
		curve[i] = series.EquityPoint{Day: d, Equity: equity}
		d = d.Next()
	}
	return curve
}

func TestAnalyzeSeededPeak(t *testing.T) {
	t.Parallel()

	// Balances 990, 970, 965, 995, 980 against the 1000 seed.
	curve := curveFromNet([]float64{-10, -20, -5, 30, -15}, 1000, "2025-01-01")
	stats, period := Analyze(curve, 1000)

	assert.InDelta(t, -0.035, stats.MaxDrawdownPct, 1e-9)
	require.NotNil(t, period)
	assert.Equal(t, "2025-01-03", period.TroughDay.String())
	assert.Nil(t, period.RecoveryDay, "equity never regains the 1000 peak")

	assert.InDelta(t, -0.02, stats.CurrentDrawdownPct, 1e-9)
	assert.Equal(t, 5, stats.CurrentDrawdownDays)
}

func TestAnalyzeRecovery(t *testing.T) {
	t.Parallel()

	curve := curveFromNet([]float64{50, -30, -40, 10, 80}, 1000, "2025-01-01")
	stats, period := Analyze(curve, 0)

	// Peak 1050 on day 1, trough 980 on day 3, recovered on day 5 (1070).
	assert.InDelta(t, 980.0/1050.0-1, stats.MaxDrawdownPct, 1e-9)
	require.NotNil(t, stats.MaxDrawdownPeakDay)
	assert.Equal(t, "2025-01-01", stats.MaxDrawdownPeakDay.String())
	require.NotNil(t, period)
	assert.Equal(t, "2025-01-03", period.TroughDay.String())
	require.NotNil(t, period.RecoveryDay)
	assert.Equal(t, "2025-01-05", period.RecoveryDay.String())

	assert.Zero(t, stats.CurrentDrawdownPct)
	assert.Zero(t, stats.CurrentDrawdownDays)
}

func TestSeriesInvariants(t *testing.T) {
	t.Parallel()

	curve := curveFromNet([]float64{10, -5, 20, -1, -2, 30}, 500, "2025-01-01")
	dd := Series(curve, 0)

	peak := curve[0].Equity
	for i, p := range curve {
		assert.LessOrEqual(t, dd[i].Value, 0.0)
		if p.Equity > peak {
			peak = p.Equity
		}
		if p.Equity == peak {
			assert.Zero(t, dd[i].Value, "new peak must have zero drawdown")
		}
	}
}

func TestAnalyzeEmptyCurve(t *testing.T) {
	t.Parallel()

	stats, period := Analyze(nil, 1000)
	assert.Zero(t, stats.MaxDrawdownPct)
	assert.Nil(t, stats.MaxDrawdownPeakDay)
	assert.Zero(t, stats.CurrentDrawdownDays)
	assert.Nil(t, period)
}

func TestWindowCurrent(t *testing.T) {
	t.Parallel()

	curve := curveFromNet([]float64{100, -50, -10}, 1000, "2025-01-01")
	got := WindowCurrent(curve, day("2025-01-02"))
	require.NotNil(t, got)
	// Last point 1040 against the all-time peak 1100.
	assert.InDelta(t, 1040.0/1100.0-1, *got, 1e-9)

	assert.Nil(t, WindowCurrent(curve, day("2025-02-01")))
}

func TestStreaksThreshold(t *testing.T) {
	t.Parallel()

	net := make([]series.DatedValue, 0, 8)
	d := day("2025-01-01")
	for _, v := range []float64{-1, -1, -1, 2, -1, -1, -1, -1} {
		net = append(net, series.DatedValue{Day: d, Value: v})
		d = d.Next()
	}

	stats := Streaks(net, StreakOptions{Threshold: 4})
	assert.Equal(t, 4, stats.Max)
	assert.Equal(t, 4, stats.Current)
	assert.True(t, stats.MeetsThreshold)
	require.Len(t, stats.TailDays, 4)
	assert.Equal(t, "2025-01-05", stats.TailDays[0].Day.String())
}

func TestStreaksIgnoresTrailingZeros(t *testing.T) {
	t.Parallel()

	net := []series.DatedValue{
		{Day: day("2025-01-01"), Value: -3},
		{Day: day("2025-01-02"), Value: -1},
		{Day: day("2025-01-03"), Value: 0},
		{Day: day("2025-01-04"), Value: 0},
	}
	stats := Streaks(net, StreakOptions{IgnoreTrailingZero: true})
	assert.Equal(t, 2, stats.Current)
	assert.Equal(t, 2, stats.Max)
	assert.False(t, stats.MeetsThreshold)

	// Without the option, trailing zeros break the current run.
	stats = Streaks(net, StreakOptions{})
	assert.Equal(t, 0, stats.Current)
	assert.Equal(t, 2, stats.Max)
}

func TestStreaksEmpty(t *testing.T) {
	t.Parallel()

	stats := Streaks(nil, StreakOptions{})
	assert.Zero(t, stats.Current)
	assert.Zero(t, stats.Max)
	assert.False(t, stats.MeetsThreshold)
	assert.Empty(t, stats.TailDays)
}

func TestMonthly(t *testing.T) {
	t.Parallel()

	curve := series.EquityCurve{
		{Day: day("2025-01-30"), Equity: 1000},
		{Day: day("2025-01-31"), Equity: 1100},
		{Day: day("2025-02-01"), Equity: 1050},
		{Day: day("2025-02-02"), Equity: 1200},
	}
	rows := Monthly(curve, 0)
	require.Len(t, rows, 2)

	assert.Equal(t, "2025-01", rows[0].Month)
	require.NotNil(t, rows[0].Return)
	assert.InDelta(t, 0.10, *rows[0].Return, 1e-9)

	assert.Equal(t, "2025-02", rows[1].Month)
	require.NotNil(t, rows[1].Return)
	assert.InDelta(t, 1200.0/1050.0-1, *rows[1].Return, 1e-9)
	assert.InDelta(t, 1050.0/1100.0-1, rows[1].Drawdown, 1e-9)
}

func TestMTDHelpers(t *testing.T) {
	t.Parallel()

	curve := series.EquityCurve{
		{Day: day("2025-01-31"), Equity: 900},
		{Day: day("2025-02-01"), Equity: 1000},
		{Day: day("2025-02-10"), Equity: 1080},
	}
	got := MTDReturn(curve)
	require.NotNil(t, got)
	assert.InDelta(t, 0.08, *got, 1e-9)

	assert.Nil(t, MTDReturn(nil))

	returns := []series.DatedValue{
		{Day: day("2025-02-01"), Value: 0.10},
		{Day: day("2025-02-02"), Value: -0.05},
		{Day: day("2025-02-03"), Value: 0.01},
	}
	assert.InDelta(t, -0.05, MTDMaxDrawdown(returns), 1e-9)
	assert.Zero(t, MTDMaxDrawdown(nil))
}

func TestLosingDays(t *testing.T) {
	t.Parallel()

	returns := []series.DatedValue{
		{Day: day("2025-01-01"), Value: -0.01},
		{Day: day("2025-01-02"), Value: 0.02},
		{Day: day("2025-01-03"), Value: -0.03},
		{Day: day("2025-01-04"), Value: 0.00},
	}
	count, ratio := LosingDays(returns)
	assert.Equal(t, 2, count)
	assert.InDelta(t, 0.5, ratio, 1e-9)

	count, ratio = LosingDays(nil)
	assert.Zero(t, count)
	assert.Zero(t, ratio)
}
