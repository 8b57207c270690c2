package drawing

import (
	"errors"
	"fmt"
	"time"

	"tradejournal/internal/id"
)

// Status is the position tool lifecycle state.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Default percentage offsets for percentage-based construction: 2% risk to
// 4% reward.
const (
	DefaultStopLossPercent   = 2.0
	DefaultTakeProfitPercent = 4.0
)

var (
	// ErrInvalidLevels means the SL/entry/TP ordering is wrong for the side.
	ErrInvalidLevels = errors.New("invalid level ordering for side")

	// ErrNotDraft rejects linking a tool that has already left draft.
	ErrNotDraft = errors.New("tool is not a draft")

	// ErrNotActive rejects closing a tool that is not active.
	ErrNotActive = errors.New("tool is not active")
)

// PositionTool is a drawing spanning [Entry.Time, EndTime] with entry,
// stop-loss, and take-profit price levels. It starts as a draft, becomes
// active when linked to a live position id (set exactly once), and closes
// when that position closes. Deleting a tool never touches the linked
// position; the two lifecycles are connected only by the stored id.
type PositionTool struct {
	id     string
	Symbol string

	Entry           Point
	EndTime         time.Time
	StopLossPrice   float64
	TakeProfitPrice float64
	Quantity        float64
	Long            bool

	Status           Status
	LinkedPositionID string
	ExitPrice        *float64
	RealizedPnL      *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPositionTool creates a draft tool from explicit levels.
func NewPositionTool(symbol string, entry Point, endTime time.Time, stopLoss, takeProfit, quantity float64, long bool) *PositionTool {
	now := time.Now().UTC()
	return &PositionTool{
		id:              id.New(),
		Symbol:          symbol,
		Entry:           entry,
		EndTime:         endTime,
		StopLossPrice:   stopLoss,
		TakeProfitPrice: takeProfit,
		Quantity:        quantity,
		Long:            long,
		Status:          StatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// CreateLong builds a draft long tool with SL below and TP above the entry,
// derived from percentage offsets. Zero percentages use the 2%/4% defaults.
func CreateLong(symbol string, entry Point, endTime time.Time, quantity, slPercent, tpPercent float64) *PositionTool {
	if slPercent == 0 {
		slPercent = DefaultStopLossPercent
	}
	if tpPercent == 0 {
		tpPercent = DefaultTakeProfitPercent
	}
	sl := entry.Price * (1 - slPercent/100)
	tp := entry.Price * (1 + tpPercent/100)
	return NewPositionTool(symbol, entry, endTime, sl, tp, quantity, true)
}

// CreateShort mirrors CreateLong: SL above the entry, TP below.
func CreateShort(symbol string, entry Point, endTime time.Time, quantity, slPercent, tpPercent float64) *PositionTool {
	if slPercent == 0 {
		slPercent = DefaultStopLossPercent
	}
	if tpPercent == 0 {
		tpPercent = DefaultTakeProfitPercent
	}
	sl := entry.Price * (1 + slPercent/100)
	tp := entry.Price * (1 - tpPercent/100)
	return NewPositionTool(symbol, entry, endTime, sl, tp, quantity, false)
}

func (t *PositionTool) ID() string { return t.id }

func (t *PositionTool) Kind() Kind { return KindPositionTool }

// IsValid checks the level ordering for the side: long requires
// SL < entry < TP, short requires TP < entry < SL. Tools failing this must
// never reach active.
func (t *PositionTool) IsValid() bool {
	if t.Long {
		return t.StopLossPrice < t.Entry.Price && t.Entry.Price < t.TakeProfitPrice
	}
	return t.TakeProfitPrice < t.Entry.Price && t.Entry.Price < t.StopLossPrice
}

func (t *PositionTool) RiskPerShare() float64 {
	return abs(t.Entry.Price - t.StopLossPrice)
}

func (t *PositionTool) RewardPerShare() float64 {
	return abs(t.TakeProfitPrice - t.Entry.Price)
}

// RiskRewardRatio is reward over risk per share, 0 when risk is 0.
func (t *PositionTool) RiskRewardRatio() float64 {
	risk := t.RiskPerShare()
	if risk == 0 {
		return 0
	}
	return t.RewardPerShare() / risk
}

func (t *PositionTool) TotalRisk() float64 {
	return t.RiskPerShare() * t.Quantity
}

func (t *PositionTool) TotalReward() float64 {
	return t.RewardPerShare() * t.Quantity
}

// Link transitions draft → active, binding the tool to a live position id.
// The link is set exactly once; invalid tools are rejected.
func (t *PositionTool) Link(positionID string) error {
	if t.Status != StatusDraft || t.LinkedPositionID != "" {
		return fmt.Errorf("link tool %s: %w", t.id, ErrNotDraft)
	}
	if !t.IsValid() {
		return fmt.Errorf("link tool %s: %w", t.id, ErrInvalidLevels)
	}
	if positionID == "" {
		return fmt.Errorf("link tool %s: empty position id", t.id)
	}
	t.LinkedPositionID = positionID
	t.Status = StatusActive
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkClosed transitions active → closed, recording the linked position's
// exit price and realized P&L.
func (t *PositionTool) MarkClosed(exitPrice, realizedPnL float64) error {
	if t.Status != StatusActive {
		return fmt.Errorf("close tool %s: %w", t.id, ErrNotActive)
	}
	t.ExitPrice = &exitPrice
	t.RealizedPnL = &realizedPnL
	t.Status = StatusClosed
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// AnchorPoints returns the entry anchor, the right time edge at entry price,
// and the SL/TP levels at the entry time.
func (t *PositionTool) AnchorPoints() []Point {
	return []Point{
		t.Entry,
		{Time: t.EndTime, Price: t.Entry.Price},
		{Time: t.Entry.Time, Price: t.StopLossPrice},
		{Time: t.Entry.Time, Price: t.TakeProfitPrice},
	}
}

// priceEnvelope returns the min/max band spanned by entry, SL, and TP.
func (t *PositionTool) priceEnvelope() (lo, hi float64) {
	lo, hi = t.Entry.Price, t.Entry.Price
	for _, v := range []float64{t.StopLossPrice, t.TakeProfitPrice} {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func (t *PositionTool) inTimeSpan(at time.Time) bool {
	return !at.Before(t.Entry.Time) && !at.After(t.EndTime)
}

// IsNearPoint reports whether the query point selects this tool: its time
// must fall within the tool's span and its price within tolerance of one of
// the three levels, or within the min/max envelope those levels span.
func (t *PositionTool) IsNearPoint(p Point, tolerance float64) bool {
	if !t.inTimeSpan(p.Time) {
		return false
	}

	for _, level := range []float64{t.Entry.Price, t.StopLossPrice, t.TakeProfitPrice} {
		if abs(p.Price-level) <= tolerance {
			return true
		}
	}

	lo, hi := t.priceEnvelope()
	return p.Price >= lo-tolerance && p.Price <= hi+tolerance
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
