package ledger

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/analytics/exposure"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// AddTrade inserts one fill. Used by importers and test fixtures.
func (l *SQLite) AddTrade(t TradeRecord) error {
	_, err := l.db.Exec(`
		INSERT INTO trades (account, symbol, time, realized_pnl, commission)
		VALUES (?, ?, ?, ?, ?)`,
		t.Account, t.Symbol, t.Time, t.RealizedPnL, t.Commission,
	)
	return err
}

// AddPrice upserts one daily close.
func (l *SQLite) AddPrice(p PriceBar) error {
	_, err := l.db.Exec(`
		INSERT OR REPLACE INTO prices (symbol, day, close)
		VALUES (?, ?, ?)`,
		p.Symbol, p.Day.String(), p.Close,
	)
	return err
}

// AddPosition inserts one pair leg.
func (l *SQLite) AddPosition(account, pairID string, leg int, side exposure.Leg) error {
	_, err := l.db.Exec(`
		INSERT INTO positions (account, pair_id, leg, symbol, quantity, price)
		VALUES (?, ?, ?, ?, ?, ?)`,
		account, pairID, leg, side.Symbol, side.Quantity, side.Price,
	)
	return err
}

func (l *SQLite) Close() error {
	return l.db.Close()
}
