// Package paper implements the paper-trading simulation engine: one simulated
// account, synchronous market fills, and automatic stop-loss / take-profit
// closure driven by incoming price ticks.
package paper

import "time"

// Account is the simulated cash account. Balance changes only by realized
// P&L at close time; margin is never locked on open.
type Account struct {
	ID             string
	Balance        float64
	InitialBalance float64
	RealizedPnL    float64
	CreatedAt      time.Time
}

// TotalReturnPercent returns the account return relative to its initial
// balance, in percent.
func (a Account) TotalReturnPercent() float64 {
	if a.InitialBalance == 0 {
		return 0
	}
	return (a.Balance - a.InitialBalance) / a.InitialBalance * 100
}
