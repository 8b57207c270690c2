package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandleDerivedMetrics(t *testing.T) {
	bull := Candle{Open: 100, High: 110, Low: 95, Close: 106}
	assert.True(t, bull.IsBullish())
	assert.InDelta(t, 6, bull.BodySize(), 1e-9)
	assert.InDelta(t, 15, bull.Range(), 1e-9)
	assert.InDelta(t, 4, bull.UpperWick(), 1e-9)
	assert.InDelta(t, 5, bull.LowerWick(), 1e-9)

	bear := Candle{Open: 106, High: 110, Low: 95, Close: 100}
	assert.False(t, bear.IsBullish())
	assert.InDelta(t, 6, bear.BodySize(), 1e-9)
	assert.InDelta(t, 4, bear.UpperWick(), 1e-9)
	assert.InDelta(t, 5, bear.LowerWick(), 1e-9)

	doji := Candle{Open: 100, High: 101, Low: 99, Close: 100}
	assert.True(t, doji.IsBullish())
	assert.Equal(t, 0.0, doji.BodySize())
}

func TestCloses(t *testing.T) {
	candles := []Candle{{Close: 1}, {Close: 2}, {Close: 3}}
	assert.Equal(t, []float64{1, 2, 3}, Closes(candles))
}

func TestTickValid(t *testing.T) {
	assert.True(t, Tick{Symbol: "AAPL", Price: 1}.Valid())
	assert.False(t, Tick{Symbol: "", Price: 1}.Valid())
	assert.False(t, Tick{Symbol: "AAPL", Price: 0}.Valid())
	assert.False(t, Tick{Symbol: "AAPL", Price: -2}.Valid())
}

func TestTickStore(t *testing.T) {
	s := NewTickStore()

	_, err := s.Get("AAPL")
	assert.ErrorIs(t, err, ErrNoPrice)

	s.Set(Tick{Symbol: "AAPL", Price: 100})
	s.Set(Tick{Symbol: "AAPL", Price: 101})

	got, err := s.Get("AAPL")
	assert.NoError(t, err)
	assert.Equal(t, 101.0, got.Price)
}
