package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"tradejournal/paper"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id TEXT PRIMARY KEY,
	balance REAL NOT NULL,
	initial_balance REAL NOT NULL,
	realized_pnl REAL NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	type TEXT NOT NULL,
	quantity REAL NOT NULL,
	limit_price REAL,
	status TEXT NOT NULL,
	filled_price REAL,
	created_at DATETIME NOT NULL,
	filled_at DATETIME
);

CREATE TABLE IF NOT EXISTS positions (
	id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	quantity REAL NOT NULL,
	entry_price REAL NOT NULL,
	stop_loss REAL,
	take_profit REAL,
	opened_at DATETIME NOT NULL,
	closed_at DATETIME,
	exit_price REAL,
	realized_pnl REAL,
	tool_id TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_positions_symbol ON positions(symbol);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) SaveAccount(a paper.Account) error {
	_, err := s.db.Exec(`
		INSERT INTO accounts (id, balance, initial_balance, realized_pnl, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			balance = excluded.balance,
			realized_pnl = excluded.realized_pnl`,
		a.ID, a.Balance, a.InitialBalance, a.RealizedPnL, a.CreatedAt,
	)
	return err
}

func (s *SQLiteStore) SaveOrder(o paper.Order) error {
	_, err := s.db.Exec(`
		INSERT INTO orders (id, symbol, side, type, quantity, limit_price, status, filled_price, created_at, filled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			filled_price = excluded.filled_price,
			filled_at = excluded.filled_at`,
		o.ID, o.Symbol, string(o.Side), string(o.Type), o.Quantity,
		o.LimitPrice, string(o.Status), o.FilledPrice, o.CreatedAt, o.FilledAt,
	)
	return err
}

func (s *SQLiteStore) SavePosition(p paper.Position) error {
	_, err := s.db.Exec(`
		INSERT INTO positions (id, symbol, side, quantity, entry_price, stop_loss, take_profit, opened_at, closed_at, exit_price, realized_pnl, tool_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			stop_loss = excluded.stop_loss,
			take_profit = excluded.take_profit,
			closed_at = excluded.closed_at,
			exit_price = excluded.exit_price,
			realized_pnl = excluded.realized_pnl`,
		p.ID, p.Symbol, string(p.Side), p.Quantity, p.EntryPrice,
		p.StopLoss, p.TakeProfit, p.OpenedAt, p.ClosedAt, p.ExitPrice, p.RealizedPnL, p.ToolID,
	)
	return err
}

func (s *SQLiteStore) LoadAccount(id string) (paper.Account, error) {
	var a paper.Account
	err := s.db.QueryRow(`
		SELECT id, balance, initial_balance, realized_pnl, created_at
		FROM accounts WHERE id = ?`, id,
	).Scan(&a.ID, &a.Balance, &a.InitialBalance, &a.RealizedPnL, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return paper.Account{}, fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	return a, err
}

func (s *SQLiteStore) LoadOrder(id string) (paper.Order, error) {
	var o paper.Order
	err := s.db.QueryRow(`
		SELECT id, symbol, side, type, quantity, limit_price, status, filled_price, created_at, filled_at
		FROM orders WHERE id = ?`, id,
	).Scan(&o.ID, &o.Symbol, &o.Side, &o.Type, &o.Quantity, &o.LimitPrice, &o.Status, &o.FilledPrice, &o.CreatedAt, &o.FilledAt)
	if err == sql.ErrNoRows {
		return paper.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return o, err
}

func (s *SQLiteStore) LoadPosition(id string) (paper.Position, error) {
	row := s.db.QueryRow(`
		SELECT id, symbol, side, quantity, entry_price, stop_loss, take_profit, opened_at, closed_at, exit_price, realized_pnl, tool_id
		FROM positions WHERE id = ?`, id)

	p, err := scanPosition(row.Scan)
	if err == sql.ErrNoRows {
		return paper.Position{}, fmt.Errorf("position %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (s *SQLiteStore) ListPositions() ([]paper.Position, error) {
	rows, err := s.db.Query(`
		SELECT id, symbol, side, quantity, entry_price, stop_loss, take_profit, opened_at, closed_at, exit_price, realized_pnl, tool_id
		FROM positions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []paper.Position
	for rows.Next() {
		p, err := scanPosition(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPosition(scan func(...any) error) (paper.Position, error) {
	var p paper.Position
	err := scan(
		&p.ID, &p.Symbol, &p.Side, &p.Quantity, &p.EntryPrice,
		&p.StopLoss, &p.TakeProfit, &p.OpenedAt, &p.ClosedAt,
		&p.ExitPrice, &p.RealizedPnL, &p.ToolID,
	)
	return p, err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
