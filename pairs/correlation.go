package pairs

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// fillCorrelation computes rolling Pearson and Spearman correlation on
// the log-returns of the two windows. Near-zero variance on either leg
// yields nil rather than a divide-by-zero artifact.
func fillCorrelation(row *CorrelationRow, lx, ly []float64) {
	if len(lx) < 3 {
		return
	}
	rx := diff(lx)
	ry := diff(ly)

	if stdevZero(rx) || stdevZero(ry) {
		return
	}
	row.Pearson = finite(stat.Correlation(rx, ry, nil))

	rkx := averageRanks(rx)
	rky := averageRanks(ry)
	if stdevZero(rkx) || stdevZero(rky) {
		return
	}
	row.Spearman = finite(stat.Correlation(rkx, rky, nil))
}

func diff(v []float64) []float64 {
	out := make([]float64, len(v)-1)
	for i := 1; i < len(v); i++ {
		out[i-1] = v[i] - v[i-1]
	}
	return out
}

func stdevZero(v []float64) bool {
	_, sd := meanStd(v)
	return sd < 1e-12
}

// averageRanks assigns 1-based ranks, averaging over ties.
func averageRanks(v []float64) []float64 {
	idx := make([]int, len(v))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return v[idx[a]] < v[idx[b]] })

	ranks := make([]float64, len(v))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && v[idx[j+1]] == v[idx[i]] {
			j++
		}
		// ranks i..j share the average of positions i+1..j+1
		avg := float64(i+j+2) / 2
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}
