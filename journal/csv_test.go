package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestCSV(t *testing.T) (*CSVJournal, string, string) {
	t.Helper()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	j, err := NewCSV(tradesPath, equityPath)
	assert.NoError(t, err)
	return j, tradesPath, equityPath
}

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	j, tradesPath, equityPath := newTestCSV(t)
	assert.NoError(t, j.Close())

	tradesData, err := os.ReadFile(tradesPath)
	assert.NoError(t, err)
	equityData, err := os.ReadFile(equityPath)
	assert.NoError(t, err)

	tradesHeader, err := csv.NewReader(strings.NewReader(string(tradesData))).Read()
	assert.NoError(t, err)
	equityHeader, err := csv.NewReader(strings.NewReader(string(equityData))).Read()
	assert.NoError(t, err)

	wantTrades := []string{"position_id", "symbol", "side", "quantity", "entry_price", "exit_price", "open_time", "close_time", "realized_pnl", "reason"}
	assert.Equal(t, wantTrades, tradesHeader)

	wantEquity := []string{"time", "balance", "equity", "realized_pnl", "open_positions"}
	assert.Equal(t, wantEquity, equityHeader)
}

func TestCSVJournalRecords(t *testing.T) {
	t.Parallel()

	j, tradesPath, equityPath := newTestCSV(t)

	open := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	closeT := open.Add(time.Hour)

	assert.NoError(t, j.RecordTrade(TradeRecord{
		PositionID:  "P1",
		Symbol:      "AAPL",
		Side:        "sell",
		Quantity:    2,
		EntryPrice:  100,
		ExitPrice:   95,
		OpenTime:    open,
		CloseTime:   closeT,
		RealizedPnL: 10,
		Reason:      "TakeProfit",
	}))
	assert.NoError(t, j.RecordEquity(EquitySnapshot{
		Time:    closeT,
		Balance: 10010,
		Equity:  10010,
	}))
	assert.NoError(t, j.Close())

	tradesData, err := os.ReadFile(tradesPath)
	assert.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(tradesData))).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "P1", rows[1][0])
	assert.Equal(t, "AAPL", rows[1][1])
	assert.Equal(t, "sell", rows[1][2])
	assert.Equal(t, open.Format(time.RFC3339), rows[1][6])

	equityData, err := os.ReadFile(equityPath)
	assert.NoError(t, err)
	erows, err := csv.NewReader(strings.NewReader(string(equityData))).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, erows, 2)
	assert.Equal(t, "0", erows[1][4])
}
