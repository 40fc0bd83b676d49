// Package bootstrap runs stationary-bootstrap Monte Carlo over a pool of
// historical per-period returns: horizon-return distributions,
// drawdown-exceedance and loss-run-length tables, and ruin probabilities.
package bootstrap

import (
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/rustyeddy/analytics/rolling"
)

// ExceedanceSamplePaths is the fixed sample size for the exceedance and
// loss-run tables.
const ExceedanceSamplePaths = 10_000

// Simulator owns the historical pool and the resampling parameters.
// P is the block-continuation probability: 1 replays the pool cyclically,
// 0 degenerates to independent resampling. Seed 0 means nondeterministic.
// A Simulator is safe for concurrent use; every cell derives its own
// random source.
type Simulator struct {
	Pool []float64
	P    float64
	Seed uint64
}

func (s *Simulator) rngFor(cell int) Rand {
	if s.Seed == 0 {
		return NewUnseeded()
	}
	return NewRand(deriveSeed(s.Seed, cell))
}

// HorizonDist is the compounded-return distribution over one horizon.
type HorizonDist struct {
	Label   string  `json:"label"`
	Periods int     `json:"periods"`
	Mean    float64 `json:"mean"`
	P5      float64 `json:"p5"`
	P50     float64 `json:"p50"`
	P95     float64 `json:"p95"`
}

// ExceedanceRow is the probability that a horizon path's maximum drawdown
// magnitude meets or exceeds ThresholdPct.
type ExceedanceRow struct {
	Label        string  `json:"label"`
	Periods      int     `json:"periods"`
	ThresholdPct float64 `json:"threshold_pct"`
	Probability  float64 `json:"probability"`
}

// LossRunRow is the probability that a horizon path's longest run of
// strictly negative periods exceeds K.
type LossRunRow struct {
	Label       string  `json:"label"`
	Periods     int     `json:"periods"`
	K           int     `json:"k"`
	Probability float64 `json:"probability"`
}

// RuinRow is the probability that compounded equity breaches the ruin
// floor at any point within the horizon.
type RuinRow struct {
	Label       string  `json:"label"`
	Periods     int     `json:"periods"`
	Probability float64 `json:"probability"`
}

// HorizonDistributions simulates paths independent horizon-length
// compounded returns per horizon and reports mean and p5/p50/p95
// quantiles. An empty pool or non-positive path count yields zero rows.
func (s *Simulator) HorizonDistributions(horizons []rolling.WindowSpec, paths int) []HorizonDist {
	out := make([]HorizonDist, len(horizons))
	var wg sync.WaitGroup
	for i, h := range horizons {
		out[i] = HorizonDist{Label: h.Label, Periods: h.Periods}
		if len(s.Pool) == 0 || paths <= 0 || h.Periods <= 0 {
			continue
		}
		wg.Add(1)
		go func(i int, h rolling.WindowSpec) {
			defer wg.Done()
			sam := newSampler(s.Pool, s.P, s.rngFor(i))
			sample := make([]float64, paths)
			for p := 0; p < paths; p++ {
				sam.reset()
				sample[p] = compound(sam, h.Periods)
			}
			sort.Float64s(sample)
			out[i].Mean = stat.Mean(sample, nil)
			out[i].P5 = stat.Quantile(0.05, stat.Empirical, sample, nil)
			out[i].P50 = stat.Quantile(0.50, stat.Empirical, sample, nil)
			out[i].P95 = stat.Quantile(0.95, stat.Empirical, sample, nil)
		}(i, h)
	}
	wg.Wait()
	return out
}

// DrawdownExceedance fills the (horizon, threshold) grid with the
// fraction of ExceedanceSamplePaths paths whose maximum drawdown
// magnitude meets or exceeds the threshold. Cells run concurrently.
func (s *Simulator) DrawdownExceedance(horizons []rolling.WindowSpec, thresholds []float64) []ExceedanceRow {
	out := make([]ExceedanceRow, 0, len(horizons)*len(thresholds))
	for _, h := range horizons {
		for _, th := range thresholds {
			out = append(out, ExceedanceRow{Label: h.Label, Periods: h.Periods, ThresholdPct: th})
		}
	}

	var wg sync.WaitGroup
	for i := range out {
		row := &out[i]
		if len(s.Pool) == 0 || row.Periods <= 0 || row.ThresholdPct <= 0 {
			continue
		}
		wg.Add(1)
		go func(cell int, row *ExceedanceRow) {
			defer wg.Done()
			sam := newSampler(s.Pool, s.P, s.rngFor(cell))
			hits := 0
			for p := 0; p < ExceedanceSamplePaths; p++ {
				sam.reset()
				if maxDrawdownMagnitude(sam, row.Periods) >= row.ThresholdPct {
					hits++
				}
			}
			row.Probability = float64(hits) / float64(ExceedanceSamplePaths)
		}(i, row)
	}
	wg.Wait()
	return out
}

// LossRunLengths fills the (horizon, k) grid with the fraction of paths
// whose longest strictly-negative run exceeds k.
func (s *Simulator) LossRunLengths(horizons []rolling.WindowSpec, ks []int) []LossRunRow {
	out := make([]LossRunRow, 0, len(horizons)*len(ks))
	for _, h := range horizons {
		for _, k := range ks {
			out = append(out, LossRunRow{Label: h.Label, Periods: h.Periods, K: k})
		}
	}

	var wg sync.WaitGroup
	for i := range out {
		row := &out[i]
		if len(s.Pool) == 0 || row.Periods <= 0 || row.K < 0 {
			continue
		}
		wg.Add(1)
		go func(cell int, row *LossRunRow) {
			defer wg.Done()
			sam := newSampler(s.Pool, s.P, s.rngFor(cell))
			hits := 0
			for p := 0; p < ExceedanceSamplePaths; p++ {
				sam.reset()
				if longestLossRun(sam, row.Periods) > row.K {
					hits++
				}
			}
			row.Probability = float64(hits) / float64(ExceedanceSamplePaths)
		}(i, row)
	}
	wg.Wait()
	return out
}

// RuinProbabilities compounds each simulated path period by period and
// flags ruin the first time equity breaches
// initialEquity * (1 - thresholdPct). Degenerate inputs (empty pool,
// non-positive equity or threshold) short-circuit to zero probabilities.
func (s *Simulator) RuinProbabilities(horizons []rolling.WindowSpec, paths int, initialEquity, thresholdPct float64) []RuinRow {
	out := make([]RuinRow, len(horizons))
	var wg sync.WaitGroup
	for i, h := range horizons {
		out[i] = RuinRow{Label: h.Label, Periods: h.Periods}
		if len(s.Pool) == 0 || paths <= 0 || h.Periods <= 0 || initialEquity <= 0 || thresholdPct <= 0 {
			continue
		}
		wg.Add(1)
		go func(cell int, row *RuinRow, periods int) {
			defer wg.Done()
			floor := initialEquity * (1 - thresholdPct)
			sam := newSampler(s.Pool, s.P, s.rngFor(cell))
			hits := 0
			for p := 0; p < paths; p++ {
				sam.reset()
				equity := initialEquity
				for t := 0; t < periods; t++ {
					equity *= 1 + sam.next()
					if equity <= floor {
						hits++
						break
					}
				}
			}
			row.Probability = float64(hits) / float64(paths)
		}(i, &out[i], h.Periods)
	}
	wg.Wait()
	return out
}

func compound(sam *sampler, periods int) float64 {
	equity := 1.0
	for t := 0; t < periods; t++ {
		equity *= 1 + sam.next()
	}
	return equity - 1
}

func maxDrawdownMagnitude(sam *sampler, periods int) float64 {
	equity := 1.0
	peak := 1.0
	worst := 0.0
	for t := 0; t < periods; t++ {
		equity *= 1 + sam.next()
		if equity > peak {
			peak = equity
		}
		if dd := 1 - equity/peak; dd > worst {
			worst = dd
		}
	}
	return worst
}

func longestLossRun(sam *sampler, periods int) int {
	longest, run := 0, 0
	for t := 0; t < periods; t++ {
		if sam.next() < 0 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}
