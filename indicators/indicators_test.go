package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tradejournal/market"
)

func candlesFromCloses(closes ...float64) []market.Candle {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]market.Candle, len(closes))
	for i, c := range closes {
		out[i] = market.Candle{
			Time:  start.Add(time.Duration(i) * time.Minute),
			Open:  c,
			High:  c + 1,
			Low:   c - 1,
			Close: c,
		}
	}
	return out
}

func TestSMAAlignment(t *testing.T) {
	s := SMA(candlesFromCloses(1, 2, 3, 4, 5), 3)

	assert.False(t, s.Defined(0))
	assert.False(t, s.Defined(1))
	assert.InDelta(t, 2, s[2], 1e-9)
	assert.InDelta(t, 3, s[3], 1e-9)
	assert.InDelta(t, 4, s[4], 1e-9)
}

func TestSMAInsufficientHistory(t *testing.T) {
	s := SMA(candlesFromCloses(1, 2), 3)
	assert.Len(t, s, 2)
	assert.Equal(t, -1, s.FirstDefined())
}

func TestEMASeedEqualsSMA(t *testing.T) {
	candles := candlesFromCloses(10, 11, 13, 12, 14, 15, 13, 16)
	period := 4

	ema := EMA(candles, period)
	sma := SMA(candles, period)

	assert.Equal(t, period-1, ema.FirstDefined())
	assert.Equal(t, sma[period-1], ema[period-1])
}

func TestEMARecurrence(t *testing.T) {
	candles := candlesFromCloses(1, 2, 3, 4, 5)
	ema := EMA(candles, 3)

	k := 2.0 / 4.0
	want := 2.0 // seed: SMA of 1,2,3
	want = (4-want)*k + want
	assert.InDelta(t, want, ema[3], 1e-9)
	want = (5-want)*k + want
	assert.InDelta(t, want, ema[4], 1e-9)
}

func TestRSIAllGains(t *testing.T) {
	candles := candlesFromCloses(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	rsi := RSI(candles, 5)

	assert.Equal(t, 5, rsi.FirstDefined())
	for i := 5; i < len(candles); i++ {
		assert.InDelta(t, 100, rsi[i], 1e-9)
	}
}

func TestRSIAllLossesConvergesToZero(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}
	rsi := RSI(candlesFromCloses(closes...), 5)

	last := rsi[len(rsi)-1]
	assert.InDelta(t, 0, last, 1e-6)
}

func TestRSIInsufficientHistory(t *testing.T) {
	rsi := RSI(candlesFromCloses(1, 2, 3), 5)
	assert.Equal(t, -1, rsi.FirstDefined())
}

func TestBollingerBands(t *testing.T) {
	candles := candlesFromCloses(2, 4, 6) // mean 4, population std sqrt(8/3)
	b := BollingerBands(candles, 3, 2)

	assert.False(t, b.Middle.Defined(1))
	sd := math.Sqrt(8.0 / 3.0)
	assert.InDelta(t, 4, b.Middle[2], 1e-9)
	assert.InDelta(t, 4+2*sd, b.Upper[2], 1e-9)
	assert.InDelta(t, 4-2*sd, b.Lower[2], 1e-9)
}

func TestMACDDefinedRegion(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i%7)
	}
	candles := candlesFromCloses(closes...)

	m := MACD(candles, 12, 26, 9)

	assert.Equal(t, 25, m.MACD.FirstDefined())
	assert.Equal(t, 25+8, m.Signal.FirstDefined())
	for i := range closes {
		if m.Signal.Defined(i) {
			assert.True(t, m.MACD.Defined(i))
			assert.InDelta(t, m.MACD[i]-m.Signal[i], m.Histogram[i], 1e-9)
		}
	}
}

func TestMACDSignalSeed(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	candles := candlesFromCloses(closes...)

	m := MACD(candles, 3, 5, 4)

	// Seed is the simple mean of the first 4 defined MACD values.
	first := m.MACD.FirstDefined()
	want := (m.MACD[first] + m.MACD[first+1] + m.MACD[first+2] + m.MACD[first+3]) / 4
	assert.InDelta(t, want, m.Signal[first+3], 1e-9)
}

func TestComputeDispatch(t *testing.T) {
	candles := candlesFromCloses(1, 2, 3, 4, 5)

	r := Compute(Config{ID: "a", Type: TypeSMA, Period: 3, Enabled: true}, candles)
	assert.InDelta(t, 2, r.Values[2], 1e-9)

	r = Compute(Config{ID: "b", Type: TypeBollinger, Period: 3, Enabled: true}, candles)
	assert.Contains(t, r.Extra, "upper")
	assert.Contains(t, r.Extra, "lower")

	r = Compute(Config{ID: "c", Type: TypeSMA, Period: 3, Enabled: false}, candles)
	assert.Equal(t, -1, r.Values.FirstDefined())

	r = Compute(Config{ID: "d", Type: Type("bogus"), Period: 3, Enabled: true}, candles)
	assert.Equal(t, -1, r.Values.FirstDefined())
}

func TestDeterminism(t *testing.T) {
	candles := candlesFromCloses(5, 3, 8, 2, 9, 4, 7, 1, 6, 8, 3, 9)

	a := RSI(candles, 5)
	b := RSI(candles, 5)
	for i := range a {
		assert.Equal(t, a.Defined(i), b.Defined(i))
		if a.Defined(i) {
			assert.Equal(t, a[i], b[i])
		}
	}
}
