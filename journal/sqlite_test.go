package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func newTestSQLite(t *testing.T) (*SQLiteJournal, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	assert.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('trades','equity')`)
	assert.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["trades"])
	assert.True(t, found["equity"])
}

func TestSQLiteRecordTrade(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	open := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	closeT := time.Date(2024, 1, 2, 4, 5, 6, 0, time.UTC)

	rec := TradeRecord{
		PositionID:  "P1",
		Symbol:      "AAPL",
		Side:        "buy",
		Quantity:    3,
		EntryPrice:  150.25,
		ExitPrice:   148.5,
		OpenTime:    open,
		CloseTime:   closeT,
		RealizedPnL: -5.25,
		Reason:      "StopLoss",
	}
	assert.NoError(t, j.RecordTrade(rec))
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var got TradeRecord
	err = db.QueryRow(`SELECT position_id, symbol, side, quantity, entry_price, exit_price, realized_pnl, reason FROM trades`).
		Scan(&got.PositionID, &got.Symbol, &got.Side, &got.Quantity, &got.EntryPrice, &got.ExitPrice, &got.RealizedPnL, &got.Reason)
	assert.NoError(t, err)
	assert.Equal(t, rec.PositionID, got.PositionID)
	assert.Equal(t, rec.Symbol, got.Symbol)
	assert.Equal(t, rec.Side, got.Side)
	assert.Equal(t, rec.RealizedPnL, got.RealizedPnL)
	assert.Equal(t, rec.Reason, got.Reason)
}

func TestSQLiteRecordEquity(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	snap := EquitySnapshot{
		Time:          time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Balance:       10000,
		Equity:        10050.5,
		RealizedPnL:   -20,
		OpenPositions: 2,
	}
	assert.NoError(t, j.RecordEquity(snap))
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var got EquitySnapshot
	err = db.QueryRow(`SELECT balance, equity, realized_pnl, open_positions FROM equity`).
		Scan(&got.Balance, &got.Equity, &got.RealizedPnL, &got.OpenPositions)
	assert.NoError(t, err)
	assert.Equal(t, snap.Balance, got.Balance)
	assert.Equal(t, snap.Equity, got.Equity)
	assert.Equal(t, snap.OpenPositions, got.OpenPositions)
}
