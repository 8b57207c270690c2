package indicators

import "tradejournal/market"

// Type identifies an indicator kind.
type Type string

const (
	TypeSMA       Type = "sma"
	TypeEMA       Type = "ema"
	TypeRSI       Type = "rsi"
	TypeBollinger Type = "bollinger"
	TypeMACD      Type = "macd"
)

// Default parameters used when a config leaves them zero.
const (
	DefaultBollingerMult = 2.0
	DefaultMACDFast      = 12
	DefaultMACDSlow      = 26
	DefaultMACDSignal    = 9
)

// Config describes one indicator a consumer wants computed over a candle
// sequence. Period2 is indicator-specific: the MACD slow period, unused
// elsewhere.
type Config struct {
	ID      string `json:"id" yaml:"id"`
	Type    Type   `json:"type" yaml:"type"`
	Period  int    `json:"period" yaml:"period"`
	Period2 int    `json:"period2,omitempty" yaml:"period2,omitempty"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Result is the computed output for one config: a primary series plus, for
// multi-line indicators, additional named series. All series are aligned
// index-for-index with the candle input.
type Result struct {
	ID     string
	Type   Type
	Values Series
	Extra  map[string]Series
}

// Compute evaluates one indicator config over the candle sequence. Unknown
// types and disabled configs produce an all-undefined primary series; this
// engine never errors.
func Compute(cfg Config, candles []market.Candle) Result {
	r := Result{ID: cfg.ID, Type: cfg.Type}
	if !cfg.Enabled {
		r.Values = NewSeries(len(candles))
		return r
	}

	switch cfg.Type {
	case TypeSMA:
		r.Values = SMA(candles, cfg.Period)
	case TypeEMA:
		r.Values = EMA(candles, cfg.Period)
	case TypeRSI:
		r.Values = RSI(candles, cfg.Period)
	case TypeBollinger:
		b := BollingerBands(candles, cfg.Period, DefaultBollingerMult)
		r.Values = b.Middle
		r.Extra = map[string]Series{"upper": b.Upper, "lower": b.Lower}
	case TypeMACD:
		fast, slow := cfg.Period, cfg.Period2
		if fast == 0 {
			fast = DefaultMACDFast
		}
		if slow == 0 {
			slow = DefaultMACDSlow
		}
		m := MACD(candles, fast, slow, DefaultMACDSignal)
		r.Values = m.MACD
		r.Extra = map[string]Series{"signal": m.Signal, "histogram": m.Histogram}
	default:
		r.Values = NewSeries(len(candles))
	}
	return r
}
