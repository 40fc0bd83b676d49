// ledger/schema.go
package ledger

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	account TEXT NOT NULL,
	symbol TEXT NOT NULL,
	time DATETIME NOT NULL,
	realized_pnl REAL NOT NULL,
	commission REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_trades_account_time ON trades(account, time);

CREATE TABLE IF NOT EXISTS prices (
	symbol TEXT NOT NULL,
	day TEXT NOT NULL,
	close REAL NOT NULL,
	PRIMARY KEY (symbol, day)
);

CREATE TABLE IF NOT EXISTS positions (
	account TEXT NOT NULL,
	pair_id TEXT NOT NULL,
	leg INTEGER NOT NULL,
	symbol TEXT NOT NULL,
	quantity REAL NOT NULL,
	price REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_positions_account ON positions(account);
`
