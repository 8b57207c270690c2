// Package journal records closed trades and equity snapshots to a durable
// backend (SQLite or CSV). The paper engine writes one TradeRecord per
// closure and one EquitySnapshot after every mutation that moves balance or
// marks.
package journal

import "time"

type TradeRecord struct {
	PositionID  string
	Symbol      string
	Side        string
	Quantity    float64
	EntryPrice  float64
	ExitPrice   float64
	OpenTime    time.Time
	CloseTime   time.Time
	RealizedPnL float64
	Reason      string
}

type EquitySnapshot struct {
	Time          time.Time
	Balance       float64
	Equity        float64
	RealizedPnL   float64
	OpenPositions int
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// Nop discards everything. Useful for tests and throwaway sessions.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error     { return nil }
func (Nop) RecordEquity(EquitySnapshot) error { return nil }
func (Nop) Close() error                      { return nil }
