package drawing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	toolStart = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	toolEnd   = toolStart.Add(time.Hour)
)

func newLongTool() *PositionTool {
	return CreateLong("AAPL", Point{Time: toolStart, Price: 100}, toolEnd, 1, 2, 4)
}

func TestCreateLongDerivesLevels(t *testing.T) {
	tool := newLongTool()

	assert.InDelta(t, 98, tool.StopLossPrice, 1e-9)
	assert.InDelta(t, 104, tool.TakeProfitPrice, 1e-9)
	assert.True(t, tool.Long)
	assert.True(t, tool.IsValid())
	assert.Equal(t, StatusDraft, tool.Status)
}

func TestCreateShortMirrors(t *testing.T) {
	tool := CreateShort("AAPL", Point{Time: toolStart, Price: 100}, toolEnd, 1, 2, 4)

	assert.InDelta(t, 102, tool.StopLossPrice, 1e-9)
	assert.InDelta(t, 96, tool.TakeProfitPrice, 1e-9)
	assert.False(t, tool.Long)
	assert.True(t, tool.IsValid())
}

func TestCreateDefaultsTo2and4Percent(t *testing.T) {
	tool := CreateLong("AAPL", Point{Time: toolStart, Price: 100}, toolEnd, 1, 0, 0)

	assert.InDelta(t, 98, tool.StopLossPrice, 1e-9)
	assert.InDelta(t, 104, tool.TakeProfitPrice, 1e-9)
}

func TestValidityGate(t *testing.T) {
	// Swapped percentages put the stop above a long entry.
	tool := NewPositionTool("AAPL", Point{Time: toolStart, Price: 100}, toolEnd, 104, 98, 1, true)
	assert.False(t, tool.IsValid())

	err := tool.Link("pos-1")
	assert.ErrorIs(t, err, ErrInvalidLevels)
	assert.Equal(t, StatusDraft, tool.Status)
	assert.Empty(t, tool.LinkedPositionID)
}

func TestStateMachine(t *testing.T) {
	tool := newLongTool()

	assert.NoError(t, tool.Link("pos-1"))
	assert.Equal(t, StatusActive, tool.Status)
	assert.Equal(t, "pos-1", tool.LinkedPositionID)

	// The link is set exactly once.
	assert.ErrorIs(t, tool.Link("pos-2"), ErrNotDraft)
	assert.Equal(t, "pos-1", tool.LinkedPositionID)

	assert.NoError(t, tool.MarkClosed(104, 4))
	assert.Equal(t, StatusClosed, tool.Status)
	assert.Equal(t, 104.0, *tool.ExitPrice)
	assert.Equal(t, 4.0, *tool.RealizedPnL)

	assert.ErrorIs(t, tool.MarkClosed(105, 5), ErrNotActive)
	assert.Equal(t, 104.0, *tool.ExitPrice)
}

func TestMarkClosedRequiresActive(t *testing.T) {
	tool := newLongTool()
	assert.ErrorIs(t, tool.MarkClosed(104, 4), ErrNotActive)
}

func TestRiskMetrics(t *testing.T) {
	tool := NewPositionTool("AAPL", Point{Time: toolStart, Price: 100}, toolEnd, 98, 104, 3, true)

	assert.InDelta(t, 2, tool.RiskPerShare(), 1e-9)
	assert.InDelta(t, 4, tool.RewardPerShare(), 1e-9)
	assert.InDelta(t, 2, tool.RiskRewardRatio(), 1e-9)
	assert.InDelta(t, 6, tool.TotalRisk(), 1e-9)
	assert.InDelta(t, 12, tool.TotalReward(), 1e-9)
}

func TestRiskRewardRatioZeroRisk(t *testing.T) {
	tool := NewPositionTool("AAPL", Point{Time: toolStart, Price: 100}, toolEnd, 100, 104, 1, true)
	assert.Equal(t, 0.0, tool.RiskRewardRatio())
}

func TestIsNearPoint(t *testing.T) {
	tool := newLongTool() // levels 98 / 100 / 104
	mid := toolStart.Add(30 * time.Minute)

	// Near each level.
	assert.True(t, tool.IsNearPoint(Point{Time: mid, Price: 100.3}, 0.5))
	assert.True(t, tool.IsNearPoint(Point{Time: mid, Price: 97.8}, 0.5))
	assert.True(t, tool.IsNearPoint(Point{Time: mid, Price: 104.4}, 0.5))

	// Inside the envelope but away from any level.
	assert.True(t, tool.IsNearPoint(Point{Time: mid, Price: 101.5}, 0.5))

	// Outside the envelope.
	assert.False(t, tool.IsNearPoint(Point{Time: mid, Price: 106}, 0.5))

	// Outside the time span.
	assert.False(t, tool.IsNearPoint(Point{Time: toolEnd.Add(time.Minute), Price: 100}, 0.5))
	assert.False(t, tool.IsNearPoint(Point{Time: toolStart.Add(-time.Minute), Price: 100}, 0.5))
}

func TestGetHandleAtPriority(t *testing.T) {
	tool := newLongTool() // levels 98 / 100 / 104
	mid := toolStart.Add(30 * time.Minute)
	tol := 5 * time.Minute

	assert.Equal(t, HandleStopLossLine, tool.GetHandleAt(Point{Time: mid, Price: 98.2}, 0.5, tol))
	assert.Equal(t, HandleTakeProfitLine, tool.GetHandleAt(Point{Time: mid, Price: 104.1}, 0.5, tol))
	assert.Equal(t, HandleEntryLine, tool.GetHandleAt(Point{Time: mid, Price: 100.1}, 0.5, tol))

	// A wide price tolerance makes 99 hit both the stop-loss and entry
	// lines; stop-loss wins by priority.
	assert.Equal(t, HandleStopLossLine, tool.GetHandleAt(Point{Time: mid, Price: 99}, 1.5, tol))
}

func TestGetHandleAtEdgesAndBody(t *testing.T) {
	tool := newLongTool()
	mid := toolStart.Add(30 * time.Minute)
	tol := 5 * time.Minute

	// Line sub-handles at the time edges.
	assert.Equal(t, HandleEntryLeft, tool.GetHandleAt(Point{Time: toolStart.Add(time.Minute), Price: 100}, 0.5, tol))
	assert.Equal(t, HandleEntryRight, tool.GetHandleAt(Point{Time: toolEnd.Add(-time.Minute), Price: 100}, 0.5, tol))
	assert.Equal(t, HandleStopLossLeft, tool.GetHandleAt(Point{Time: toolStart, Price: 98}, 0.5, tol))

	// Envelope fallbacks.
	assert.Equal(t, HandleBody, tool.GetHandleAt(Point{Time: mid, Price: 101.5}, 0.5, tol))
	assert.Equal(t, HandleRightEdge, tool.GetHandleAt(Point{Time: toolEnd.Add(-time.Minute), Price: 101.5}, 0.5, tol))

	// Complete miss.
	assert.Equal(t, HandleNone, tool.GetHandleAt(Point{Time: mid, Price: 110}, 0.5, tol))
	assert.Equal(t, HandleNone, tool.GetHandleAt(Point{Time: toolEnd.Add(time.Hour), Price: 100}, 0.5, tol))
}

func TestAnchorPoints(t *testing.T) {
	tool := newLongTool()
	anchors := tool.AnchorPoints()

	assert.Len(t, anchors, 4)
	assert.Equal(t, tool.Entry, anchors[0])
	assert.Equal(t, Point{Time: toolEnd, Price: 100}, anchors[1])
}
