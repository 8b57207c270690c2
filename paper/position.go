package paper

import "time"

// Position is one simulated trade. A position is open exactly while ClosedAt
// is nil; once closed, ExitPrice and RealizedPnL are set and never change.
type Position struct {
	ID         string
	Symbol     string
	Side       OrderSide
	Quantity   float64
	EntryPrice float64
	StopLoss   *float64
	TakeProfit *float64
	OpenedAt   time.Time

	ClosedAt    *time.Time
	ExitPrice   *float64
	RealizedPnL *float64

	// ToolID links back to the drawing that opened this position, if any.
	// The two lifecycles are independent; this is a foreign key, not a
	// shared reference.
	ToolID string
}

func (p *Position) IsOpen() bool {
	return p.ClosedAt == nil
}

func (p *Position) IsLong() bool {
	return p.Side == SideBuy
}

// UnrealizedPnL returns the mark-to-market P&L at the given price.
func (p *Position) UnrealizedPnL(price float64) float64 {
	pnl := (price - p.EntryPrice) * p.Quantity
	if !p.IsLong() {
		pnl = -pnl
	}
	return pnl
}

// ShouldTriggerStopLoss reports whether the price has crossed the stop-loss
// level. False when no stop-loss is set.
func (p *Position) ShouldTriggerStopLoss(price float64) bool {
	if p.StopLoss == nil {
		return false
	}
	if p.IsLong() {
		return price <= *p.StopLoss
	}
	return price >= *p.StopLoss
}

// ShouldTriggerTakeProfit reports whether the price has crossed the
// take-profit level. False when no take-profit is set.
func (p *Position) ShouldTriggerTakeProfit(price float64) bool {
	if p.TakeProfit == nil {
		return false
	}
	if p.IsLong() {
		return price >= *p.TakeProfit
	}
	return price <= *p.TakeProfit
}
