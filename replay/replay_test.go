package replay

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"tradejournal/journal"
	"tradejournal/paper"
)

func newEngine() *paper.Engine {
	return paper.NewEngine(paper.Config{InitialBalance: 10_000, DefaultQuantity: 1}, journal.Nop{}, zerolog.Nop())
}

func TestRunFeedsTicksAndTriggers(t *testing.T) {
	e := newEngine()
	id, err := e.OpenPositionFromTool("AAPL", true, 100, 1, 90, 110, "")
	assert.NoError(t, err)

	input := strings.Join([]string{
		"symbol,price,time",
		"AAPL,101,2024-01-01T09:00:00Z",
		"AAPL,95,2024-01-01T09:01:00Z",
		"AAPL,89,2024-01-01T09:02:00Z",
	}, "\n")

	stats, err := Run(strings.NewReader(input), e, zerolog.Nop())
	assert.NoError(t, err)
	assert.Equal(t, 3, stats.Ticks)
	assert.Equal(t, 0, stats.Dropped)

	p, ok := e.GetPosition(id)
	assert.True(t, ok)
	assert.False(t, p.IsOpen())
	assert.Equal(t, 89.0, *p.ExitPrice)
}

func TestRunDropsMalformedRows(t *testing.T) {
	e := newEngine()

	input := strings.Join([]string{
		"symbol,price,time",
		"AAPL,not-a-price,2024-01-01T09:00:00Z",
		"AAPL,100,not-a-time",
		"AAPL,100",
		",100,2024-01-01T09:00:00Z",
		"AAPL,100,2024-01-01T09:00:00Z",
	}, "\n")

	stats, err := Run(strings.NewReader(input), e, zerolog.Nop())
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.Ticks)
	assert.Equal(t, 4, stats.Dropped)

	tick, err := e.CurrentPrice("AAPL")
	assert.NoError(t, err)
	assert.Equal(t, 100.0, tick.Price)
}

func TestRunParsesVolume(t *testing.T) {
	e := newEngine()

	input := "AAPL,100,2024-01-01T09:00:00Z,5000\n"
	stats, err := Run(strings.NewReader(input), e, zerolog.Nop())
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.Ticks)

	tick, err := e.CurrentPrice("AAPL")
	assert.NoError(t, err)
	assert.Equal(t, 5000.0, tick.Volume)
}

func TestRunFileMissing(t *testing.T) {
	_, err := RunFile("/nonexistent/ticks.csv", newEngine(), zerolog.Nop())
	assert.Error(t, err)
}
