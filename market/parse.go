package market

import (
	"encoding/json"
	"time"
)

// candleJSON mirrors the shape of an upstream market-data candle response.
// Timestamps arrive as unix milliseconds.
type candleJSON struct {
	Time   int64    `json:"time"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume float64  `json:"volume"`
}

func (cj candleJSON) valid() bool {
	if cj.Time <= 0 || cj.Open == nil || cj.High == nil || cj.Low == nil || cj.Close == nil {
		return false
	}
	return *cj.Low <= *cj.High
}

// ParseCandles decodes a JSON candle batch. A batch that fails to decode, or
// that contains any malformed candle, yields an empty slice rather than a
// partial one: downstream indicator math must never see a corrupt sequence.
func ParseCandles(data []byte) []Candle {
	var raw []candleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	out := make([]Candle, 0, len(raw))
	for _, cj := range raw {
		if !cj.valid() {
			return nil
		}
		out = append(out, Candle{
			Time:   time.UnixMilli(cj.Time).UTC(),
			Open:   *cj.Open,
			High:   *cj.High,
			Low:    *cj.Low,
			Close:  *cj.Close,
			Volume: cj.Volume,
		})
	}
	return out
}
