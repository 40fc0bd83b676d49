// Package ledger materializes analytics inputs (dated P&L deltas, price
// bars, position snapshots) from SQLite trade ledgers and CSV exports.
// It is the input side only; analytics results are never written back.
package ledger

import (
	"time"

	"github.com/rustyeddy/analytics/exposure"
	"github.com/rustyeddy/analytics/series"
)

// TradeRecord is one fill in an account's ledger. RealizedPnL is gross;
// Commission is subtracted downstream to form net P&L.
type TradeRecord struct {
	Account     string
	Symbol      string
	Time        time.Time
	RealizedPnL float64
	Commission  float64
}

// PriceBar is one instrument close on one day.
type PriceBar struct {
	Symbol string
	Day    series.Date
	Close  float64
}

// Loader is the read contract the CLI consumes. *SQLite implements it;
// callers with CSV exports use the Read* helpers directly.
type Loader interface {
	DailyDeltas(account string, start, end series.Date) (gross, fees []series.DatedValue, err error)
	Prices(symbol string, start, end series.Date) ([]series.DatedValue, error)
	Positions(account string) ([]exposure.Position, error)
}
