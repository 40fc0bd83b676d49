package bootstrap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/analytics/rolling"
)

func horizons(periods ...int) []rolling.WindowSpec {
	out := make([]rolling.WindowSpec, len(periods))
	for i, p := range periods {
		out[i] = rolling.WindowSpec{Periods: p, Label: "h"}
	}
	return out
}

func TestSingleElementPoolIsExact(t *testing.T) {
	t.Parallel()

	// A one-element pool admits no variance: every path compounds to
	// (1.01)^H - 1 exactly.
	for _, p := range []float64{0, 0.5, 1} {
		sim := &Simulator{Pool: []float64{0.01}, P: p, Seed: 7}
		dist := sim.HorizonDistributions(horizons(5), 200)
		require.Len(t, dist, 1)

		want := math.Pow(1.01, 5) - 1
		assert.InDelta(t, want, dist[0].Mean, 1e-12)
		assert.InDelta(t, want, dist[0].P5, 1e-12)
		assert.InDelta(t, want, dist[0].P50, 1e-12)
		assert.InDelta(t, want, dist[0].P95, 1e-12)
	}
}

func TestContinuationOneIsCyclicReplay(t *testing.T) {
	t.Parallel()

	// With P=1 every path is a contiguous cyclic run; over a horizon of
	// exactly the pool length the compounded return is the full-cycle
	// product no matter where the path starts.
	pool := []float64{0.01, -0.02, 0.03, 0.005}
	sim := &Simulator{Pool: pool, P: 1, Seed: 42}

	want := 1.0
	for _, r := range pool {
		want *= 1 + r
	}
	want -= 1

	dist := sim.HorizonDistributions(horizons(len(pool)), 500)
	require.Len(t, dist, 1)
	assert.InDelta(t, want, dist[0].Mean, 1e-12)
	assert.InDelta(t, want, dist[0].P5, 1e-12)
	assert.InDelta(t, want, dist[0].P95, 1e-12)
}

func TestContinuationZeroIsIndependent(t *testing.T) {
	t.Parallel()

	// P=0 jumps on every draw. Over a one-period horizon the sample mean
	// converges on the pool mean.
	pool := []float64{-0.02, 0.00, 0.02}
	sim := &Simulator{Pool: pool, P: 0, Seed: 11}

	dist := sim.HorizonDistributions(horizons(1), 50_000)
	require.Len(t, dist, 1)
	assert.InDelta(t, 0.0, dist[0].Mean, 2e-3)
}

func TestHorizonDistributionsDegenerate(t *testing.T) {
	t.Parallel()

	sim := &Simulator{Pool: nil, P: 0.5, Seed: 1}
	dist := sim.HorizonDistributions(horizons(10), 100)
	require.Len(t, dist, 1)
	assert.Zero(t, dist[0].Mean)
	assert.Zero(t, dist[0].P50)
}

func TestDrawdownExceedance(t *testing.T) {
	t.Parallel()

	// Strictly losing pool: a 10-period path loses ~40%, so a 20%
	// threshold is always exceeded and a 60% threshold never is.
	sim := &Simulator{Pool: []float64{-0.05}, P: 0.5, Seed: 3}
	rows := sim.DrawdownExceedance(horizons(10), []float64{0.20, 0.60})
	require.Len(t, rows, 2)
	assert.InDelta(t, 1.0, rows[0].Probability, 1e-12)
	assert.InDelta(t, 0.0, rows[1].Probability, 1e-12)

	// Strictly winning pool never draws down.
	sim = &Simulator{Pool: []float64{0.01}, P: 0.5, Seed: 3}
	rows = sim.DrawdownExceedance(horizons(10), []float64{0.05})
	assert.Zero(t, rows[0].Probability)
}

func TestLossRunLengths(t *testing.T) {
	t.Parallel()

	// Every period loses: the longest run always equals the horizon.
	sim := &Simulator{Pool: []float64{-0.01}, P: 0.5, Seed: 5}
	rows := sim.LossRunLengths(horizons(10), []int{5, 10})
	require.Len(t, rows, 2)
	assert.InDelta(t, 1.0, rows[0].Probability, 1e-12, "run of 10 exceeds 5")
	assert.InDelta(t, 0.0, rows[1].Probability, 1e-12, "run of 10 never exceeds 10")
}

func TestRuinMonotoneInHorizon(t *testing.T) {
	t.Parallel()

	pool := []float64{-0.06, 0.04, -0.05, 0.03, -0.04, 0.02}
	sim := &Simulator{Pool: pool, P: 0.3, Seed: 9}

	rows := sim.RuinProbabilities(horizons(10, 40, 160), 4000, 10_000, 0.15)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.GreaterOrEqual(t, r.Probability, 0.0)
		assert.LessOrEqual(t, r.Probability, 1.0)
	}
	// Statistical property: longer horizons cannot make ruin less likely.
	assert.GreaterOrEqual(t, rows[1].Probability, rows[0].Probability-0.02)
	assert.GreaterOrEqual(t, rows[2].Probability, rows[1].Probability-0.02)
}

func TestRuinMonotoneInFloor(t *testing.T) {
	t.Parallel()

	pool := []float64{-0.06, 0.04, -0.05, 0.03, -0.04, 0.02}
	sim := &Simulator{Pool: pool, P: 0.3, Seed: 13}

	near := sim.RuinProbabilities(horizons(60), 4000, 10_000, 0.05)
	far := sim.RuinProbabilities(horizons(60), 4000, 10_000, 0.40)
	assert.GreaterOrEqual(t, near[0].Probability, far[0].Probability-0.02,
		"a floor closer to starting equity is hit at least as often")
}

func TestRuinDegenerate(t *testing.T) {
	t.Parallel()

	sim := &Simulator{Pool: []float64{-0.05}, P: 0.5, Seed: 1}

	assert.Zero(t, sim.RuinProbabilities(horizons(10), 100, 0, 0.2)[0].Probability, "non-positive equity")
	assert.Zero(t, sim.RuinProbabilities(horizons(10), 100, 1000, 0)[0].Probability, "non-positive threshold")

	empty := &Simulator{Pool: nil, P: 0.5, Seed: 1}
	assert.Zero(t, empty.RuinProbabilities(horizons(10), 100, 1000, 0.2)[0].Probability)
}

func TestSeededRunsReproduce(t *testing.T) {
	t.Parallel()

	pool := []float64{0.02, -0.03, 0.01, -0.01}
	a := &Simulator{Pool: pool, P: 0.7, Seed: 99}
	b := &Simulator{Pool: pool, P: 0.7, Seed: 99}

	assert.Equal(t,
		a.HorizonDistributions(horizons(20, 40), 500),
		b.HorizonDistributions(horizons(20, 40), 500),
	)
}

func TestDeriveSeedSpreadsCells(t *testing.T) {
	t.Parallel()

	seen := make(map[uint64]bool)
	for cell := 0; cell < 64; cell++ {
		s := deriveSeed(12345, cell)
		assert.False(t, seen[s], "cell seeds must not collide")
		seen[s] = true
	}
}
