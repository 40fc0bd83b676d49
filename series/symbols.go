package series

import "sort"

// TradePnL is one realized-P&L observation attributed to a symbol within
// an account.
type TradePnL struct {
	Account     string
	Symbol      string
	RealizedPnL float64
}

// SymbolPnLRow aggregates realized P&L for one symbol across accounts.
type SymbolPnLRow struct {
	Symbol    string             `json:"symbol"`
	ByAccount map[string]float64 `json:"by_account"`
	Total     float64            `json:"total"`
}

// SymbolPnL sums realized P&L per symbol per account and returns rows
// ordered by cross-account total, best first, plus per-account totals.
// Accounts with no trades still appear in the totals map with 0.
func SymbolPnL(trades []TradePnL, accounts []string) ([]SymbolPnLRow, map[string]float64) {
	totals := make(map[string]float64, len(accounts))
	for _, a := range accounts {
		totals[a] = 0
	}

	bySymbol := make(map[string]map[string]float64)
	for _, t := range trades {
		m, ok := bySymbol[t.Symbol]
		if !ok {
			m = make(map[string]float64)
			bySymbol[t.Symbol] = m
		}
		m[t.Account] += t.RealizedPnL
		totals[t.Account] += t.RealizedPnL
	}

	rows := make([]SymbolPnLRow, 0, len(bySymbol))
	for sym, m := range bySymbol {
		row := SymbolPnLRow{Symbol: sym, ByAccount: m}
		for _, v := range m {
			row.Total += v
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Symbol < rows[j].Symbol
	})
	return rows, totals
}
