package indicators

import "tradejournal/market"

// RSI computes the Relative Strength Index using Wilder smoothing. The first
// value appears at index period (it needs period prior deltas); earlier
// entries are undefined. Losses are tracked as positive magnitudes.
func RSI(candles []market.Candle, period int) Series {
	out := NewSeries(len(candles))
	if period <= 0 || len(candles) <= period {
		return out
	}

	// Seed averages over the first period deltas.
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		d := candles[i].Close - candles[i-1].Close
		if d > 0 {
			avgGain += d
		} else {
			avgLoss += -d
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(candles); i++ {
		d := candles[i].Close - candles[i-1].Close
		gain, loss := 0.0, 0.0
		if d > 0 {
			gain = d
		} else {
			loss = -d
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
