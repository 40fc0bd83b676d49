// Package exposure aggregates per-symbol and per-pair notional exposure
// from position snapshots and derives a portfolio concentration ratio.
package exposure

import (
	"math"
	"sort"
)

// Leg is one side of a pair position: a signed quantity at a price.
type Leg struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// Position is a pair snapshot; both legs aggregate under PairID.
type Position struct {
	PairID string `json:"pair_id"`
	Legs   []Leg  `json:"legs"`
}

// Row is gross and net notional for one symbol or pair key.
type Row struct {
	Key   string  `json:"key"`
	Gross float64 `json:"gross"`
	Net   float64 `json:"net"`
}

// Report is the full exposure breakdown. ConcentrationPct is the largest
// pair's gross exposure as a percentage of total balance, nil when there
// are no exposures or the balance is non-positive; it may exceed 100
// under leverage.
type Report struct {
	Symbols          []Row    `json:"symbols"`
	Pairs            []Row    `json:"pairs"`
	ConcentrationPct *float64 `json:"concentration_pct"`
}

// Calculate sums |qty*price| and qty*price per symbol and per pair.
// A two-leg pair contributes to both symbols' totals.
func Calculate(positions []Position, totalBalance float64) Report {
	symbols := make(map[string]*Row)
	pairs := make(map[string]*Row)

	for _, pos := range positions {
		for _, leg := range pos.Legs {
			notional := leg.Quantity * leg.Price
			add(symbols, leg.Symbol, notional)
			add(pairs, pos.PairID, notional)
		}
	}

	report := Report{Symbols: flatten(symbols), Pairs: flatten(pairs)}

	var maxGross float64
	for _, p := range report.Pairs {
		if p.Gross > maxGross {
			maxGross = p.Gross
		}
	}
	if maxGross > 0 && totalBalance > 0 {
		c := maxGross / totalBalance * 100
		report.ConcentrationPct = &c
	}
	return report
}

func add(m map[string]*Row, key string, notional float64) {
	row, ok := m[key]
	if !ok {
		row = &Row{Key: key}
		m[key] = row
	}
	row.Gross += math.Abs(notional)
	row.Net += notional
}

func flatten(m map[string]*Row) []Row {
	out := make([]Row, 0, len(m))
	for _, r := range m {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Gross != out[j].Gross {
			return out[i].Gross > out[j].Gross
		}
		return out[i].Key < out[j].Key
	})
	return out
}
