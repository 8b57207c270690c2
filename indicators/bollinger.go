package indicators

import "tradejournal/market"

// Bands holds the three Bollinger Band series, aligned to the candle input.
type Bands struct {
	Upper  Series
	Middle Series
	Lower  Series
}

// BollingerBands computes bands around an SMA middle line using the
// population standard deviation of closes over the same trailing window.
func BollingerBands(candles []market.Candle, period int, mult float64) Bands {
	b := Bands{
		Upper:  NewSeries(len(candles)),
		Middle: SMA(candles, period),
		Lower:  NewSeries(len(candles)),
	}
	if period <= 0 || len(candles) < period {
		return b
	}

	closes := market.Closes(candles)
	for i := period - 1; i < len(candles); i++ {
		mid := b.Middle[i]
		sd := stddev(closes, i, period, mid)
		b.Upper[i] = mid + mult*sd
		b.Lower[i] = mid - mult*sd
	}
	return b
}
