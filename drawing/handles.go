package drawing

import "time"

// Handle identifies which part of a position tool an edit gesture grabbed.
type Handle int

const (
	HandleNone Handle = iota
	HandleBody
	HandleRightEdge

	HandleEntryLine
	HandleEntryLeft
	HandleEntryRight

	HandleStopLossLine
	HandleStopLossLeft
	HandleStopLossRight

	HandleTakeProfitLine
	HandleTakeProfitLeft
	HandleTakeProfitRight
)

func (h Handle) String() string {
	switch h {
	case HandleBody:
		return "body"
	case HandleRightEdge:
		return "right-edge"
	case HandleEntryLine:
		return "entry"
	case HandleEntryLeft:
		return "entry-left"
	case HandleEntryRight:
		return "entry-right"
	case HandleStopLossLine:
		return "stop-loss"
	case HandleStopLossLeft:
		return "stop-loss-left"
	case HandleStopLossRight:
		return "stop-loss-right"
	case HandleTakeProfitLine:
		return "take-profit"
	case HandleTakeProfitLeft:
		return "take-profit-left"
	case HandleTakeProfitRight:
		return "take-profit-right"
	}
	return "none"
}

// GetHandleAt resolves the edit handle under a query point. Price lines are
// checked in priority order stop-loss, take-profit, entry; a hit near the
// left or right time edge of a line selects its sub-handle. Points that miss
// every line but land inside the tool's envelope resolve to the right resize
// edge or the body.
func (t *PositionTool) GetHandleAt(p Point, priceTolerance float64, timeTolerance time.Duration) Handle {
	if !t.inTimeSpan(p.Time) {
		return HandleNone
	}

	lines := []struct {
		price             float64
		line, left, right Handle
	}{
		{t.StopLossPrice, HandleStopLossLine, HandleStopLossLeft, HandleStopLossRight},
		{t.TakeProfitPrice, HandleTakeProfitLine, HandleTakeProfitLeft, HandleTakeProfitRight},
		{t.Entry.Price, HandleEntryLine, HandleEntryLeft, HandleEntryRight},
	}
	for _, l := range lines {
		if abs(p.Price-l.price) > priceTolerance {
			continue
		}
		if nearTime(p.Time, t.Entry.Time, timeTolerance) {
			return l.left
		}
		if nearTime(p.Time, t.EndTime, timeTolerance) {
			return l.right
		}
		return l.line
	}

	lo, hi := t.priceEnvelope()
	if p.Price >= lo-priceTolerance && p.Price <= hi+priceTolerance {
		if nearTime(p.Time, t.EndTime, timeTolerance) {
			return HandleRightEdge
		}
		return HandleBody
	}
	return HandleNone
}

func nearTime(a, b time.Time, tol time.Duration) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= tol
}
