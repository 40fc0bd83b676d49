package ledger

import (
	"fmt"

	"github.com/rustyeddy/analytics/exposure"
	"github.com/rustyeddy/analytics/series"
)

// DailyDeltas sums realized P&L and commissions per UTC calendar day for
// one account over [start, end]. Days with no trades are absent; the
// daily series builder zero-fills them.
func (l *SQLite) DailyDeltas(account string, start, end series.Date) (gross, fees []series.DatedValue, err error) {
	rows, err := l.db.Query(`
		SELECT date(time), SUM(realized_pnl), SUM(commission)
		FROM trades
		WHERE account = ? AND date(time) >= ? AND date(time) <= ?
		GROUP BY date(time)
		ORDER BY date(time) ASC`,
		account, start.String(), end.String())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var day string
		var g, c float64
		if err := rows.Scan(&day, &g, &c); err != nil {
			return nil, nil, err
		}
		d, err := series.ParseDate(day)
		if err != nil {
			return nil, nil, fmt.Errorf("trades row: %w", err)
		}
		gross = append(gross, series.DatedValue{Day: d, Value: g})
		fees = append(fees, series.DatedValue{Day: d, Value: c})
	}
	return gross, fees, rows.Err()
}

// TradePnL lists per-trade realized P&L net of commission, attributed to
// symbol and account, for the symbol-P&L aggregation.
func (l *SQLite) TradePnL(accounts []string, start, end series.Date) ([]series.TradePnL, error) {
	var out []series.TradePnL
	for _, account := range accounts {
		rows, err := l.db.Query(`
			SELECT symbol, realized_pnl - commission
			FROM trades
			WHERE account = ? AND date(time) >= ? AND date(time) <= ?`,
			account, start.String(), end.String())
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			t := series.TradePnL{Account: account}
			if err := rows.Scan(&t.Symbol, &t.RealizedPnL); err != nil {
				rows.Close()
				return nil, err
			}
			out = append(out, t)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return out, nil
}

// Prices returns an instrument's daily closes over [start, end], ordered
// ascending.
func (l *SQLite) Prices(symbol string, start, end series.Date) ([]series.DatedValue, error) {
	rows, err := l.db.Query(`
		SELECT day, close
		FROM prices
		WHERE symbol = ? AND day >= ? AND day <= ?
		ORDER BY day ASC`,
		symbol, start.String(), end.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []series.DatedValue
	for rows.Next() {
		var day string
		var close float64
		if err := rows.Scan(&day, &close); err != nil {
			return nil, err
		}
		d, err := series.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("prices row: %w", err)
		}
		out = append(out, series.DatedValue{Day: d, Value: close})
	}
	return out, rows.Err()
}

// Positions reconstructs an account's pair positions from their legs.
func (l *SQLite) Positions(account string) ([]exposure.Position, error) {
	rows, err := l.db.Query(`
		SELECT pair_id, symbol, quantity, price
		FROM positions
		WHERE account = ?
		ORDER BY pair_id, leg ASC`,
		account)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []exposure.Position
	byPair := make(map[string]int)
	for rows.Next() {
		var pairID string
		var leg exposure.Leg
		if err := rows.Scan(&pairID, &leg.Symbol, &leg.Quantity, &leg.Price); err != nil {
			return nil, err
		}
		idx, ok := byPair[pairID]
		if !ok {
			idx = len(out)
			byPair[pairID] = idx
			out = append(out, exposure.Position{PairID: pairID})
		}
		out[idx].Legs = append(out[idx].Legs, leg)
	}
	return out, rows.Err()
}
