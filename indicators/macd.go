package indicators

import "tradejournal/market"

// MACDResult holds the MACD line, signal line, and histogram, aligned to the
// candle input.
type MACDResult struct {
	MACD      Series
	Signal    Series
	Histogram Series
}

// MACD computes the Moving Average Convergence Divergence. The MACD line is
// EMA(fast) − EMA(slow), defined from index slow-1. The signal line is an EMA
// over the defined region of the MACD line, seeded with the simple mean of
// its first signalPeriod values.
func MACD(candles []market.Candle, fast, slow, signalPeriod int) MACDResult {
	n := len(candles)
	r := MACDResult{
		MACD:      NewSeries(n),
		Signal:    NewSeries(n),
		Histogram: NewSeries(n),
	}
	if fast <= 0 || slow <= 0 || signalPeriod <= 0 || n < slow {
		return r
	}

	fastEMA := EMA(candles, fast)
	slowEMA := EMA(candles, slow)

	for i := slow - 1; i < n; i++ {
		r.MACD[i] = fastEMA[i] - slowEMA[i]
	}

	// Signal over the defined region of the MACD line.
	defined := r.MACD[slow-1:]
	sig := emaOver(defined, signalPeriod)
	for i, v := range sig {
		if sig.Defined(i) {
			r.Signal[slow-1+i] = v
			r.Histogram[slow-1+i] = defined[i] - v
		}
	}
	return r
}
