package indicators

import (
	"math"

	"tradejournal/market"
)

// SMA computes the Simple Moving Average of closes over the given period.
// Entries before index period-1 are undefined. A non-positive period or a
// candle count below the period yields an all-undefined series.
func SMA(candles []market.Candle, period int) Series {
	out := NewSeries(len(candles))
	if period <= 0 || len(candles) < period {
		return out
	}

	closes := market.Closes(candles)
	sum := 0.0
	for i, v := range closes {
		sum += v
		if i >= period {
			sum -= closes[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA computes the Exponential Moving Average of closes. The value at index
// period-1 is seeded with the SMA over the same window; subsequent values use
// the standard smoothing multiplier k = 2/(period+1).
func EMA(candles []market.Candle, period int) Series {
	out := NewSeries(len(candles))
	if period <= 0 || len(candles) < period {
		return out
	}

	k := 2.0 / float64(period+1)

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += candles[i].Close
	}
	ema := seed / float64(period)
	out[period-1] = ema

	for i := period; i < len(candles); i++ {
		ema = (candles[i].Close-ema)*k + ema
		out[i] = ema
	}
	return out
}

// emaOver applies EMA smoothing to an arbitrary value slice, seeding with the
// simple mean of the first period values. Used by MACD for its signal line.
func emaOver(values []float64, period int) Series {
	out := NewSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	k := 2.0 / float64(period+1)

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += values[i]
	}
	ema := seed / float64(period)
	out[period-1] = ema

	for i := period; i < len(values); i++ {
		ema = (values[i]-ema)*k + ema
		out[i] = ema
	}
	return out
}

// stddev computes the population standard deviation of the window ending at
// index end (inclusive).
func stddev(closes []float64, end, period int, mean float64) float64 {
	sum := 0.0
	for i := end - period + 1; i <= end; i++ {
		d := closes[i] - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(period))
}
