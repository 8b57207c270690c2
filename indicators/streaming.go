package indicators

import (
	"fmt"

	"tradejournal/market"
)

// Indicator computes a single streaming value from candles, for live chart
// updates where recomputing a full series per tick is wasteful.
type Indicator interface {
	// Name returns a stable identifier like "EMA(20)" or "RSI(14)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next closed candle.
	Update(c market.Candle)

	// Ready reports whether Value() is meaningful.
	Ready() bool

	// Value returns the current value. Callers should always check Ready().
	Value() float64
}

// StreamingSMA is a streaming Simple Moving Average.
type StreamingSMA struct {
	period int
	window []float64
	sum    float64
}

func NewStreamingSMA(period int) *StreamingSMA {
	return &StreamingSMA{period: period, window: make([]float64, 0, period)}
}

func (m *StreamingSMA) Name() string { return fmt.Sprintf("SMA(%d)", m.period) }
func (m *StreamingSMA) Warmup() int  { return m.period }

func (m *StreamingSMA) Reset() {
	m.window = m.window[:0]
	m.sum = 0
}

func (m *StreamingSMA) Update(c market.Candle) {
	m.window = append(m.window, c.Close)
	m.sum += c.Close
	if len(m.window) > m.period {
		m.sum -= m.window[0]
		m.window = m.window[1:]
	}
}

func (m *StreamingSMA) Ready() bool {
	return len(m.window) >= m.period
}

func (m *StreamingSMA) Value() float64 {
	if !m.Ready() {
		return 0
	}
	return m.sum / float64(len(m.window))
}

// StreamingEMA is a streaming Exponential Moving Average seeded with the SMA
// of its first period closes.
type StreamingEMA struct {
	period    int
	k         float64
	ema       float64
	count     int
	warmupSum float64
}

func NewStreamingEMA(period int) *StreamingEMA {
	return &StreamingEMA{period: period, k: 2.0 / float64(period+1)}
}

func (e *StreamingEMA) Name() string { return fmt.Sprintf("EMA(%d)", e.period) }
func (e *StreamingEMA) Warmup() int  { return e.period }

func (e *StreamingEMA) Reset() {
	e.ema = 0
	e.count = 0
	e.warmupSum = 0
}

func (e *StreamingEMA) Update(c market.Candle) {
	if e.count < e.period {
		e.warmupSum += c.Close
		e.count++
		if e.count == e.period {
			e.ema = e.warmupSum / float64(e.period)
		}
		return
	}
	e.ema = (c.Close-e.ema)*e.k + e.ema
}

func (e *StreamingEMA) Ready() bool {
	return e.count >= e.period
}

func (e *StreamingEMA) Value() float64 {
	if !e.Ready() {
		return 0
	}
	return e.ema
}

// StreamingRSI is a streaming Relative Strength Index with Wilder smoothing.
type StreamingRSI struct {
	period   int
	prev     float64
	hasPrev  bool
	deltas   int
	avgGain  float64
	avgLoss  float64
	seedGain float64
	seedLoss float64
}

func NewStreamingRSI(period int) *StreamingRSI {
	return &StreamingRSI{period: period}
}

func (r *StreamingRSI) Name() string { return fmt.Sprintf("RSI(%d)", r.period) }

// Warmup is period+1 candles: the first candle only establishes prev close.
func (r *StreamingRSI) Warmup() int { return r.period + 1 }

func (r *StreamingRSI) Reset() {
	*r = StreamingRSI{period: r.period}
}

func (r *StreamingRSI) Update(c market.Candle) {
	if !r.hasPrev {
		r.prev = c.Close
		r.hasPrev = true
		return
	}

	d := c.Close - r.prev
	r.prev = c.Close
	gain, loss := 0.0, 0.0
	if d > 0 {
		gain = d
	} else {
		loss = -d
	}
	r.deltas++

	if r.deltas <= r.period {
		r.seedGain += gain
		r.seedLoss += loss
		if r.deltas == r.period {
			r.avgGain = r.seedGain / float64(r.period)
			r.avgLoss = r.seedLoss / float64(r.period)
		}
		return
	}

	r.avgGain = (r.avgGain*float64(r.period-1) + gain) / float64(r.period)
	r.avgLoss = (r.avgLoss*float64(r.period-1) + loss) / float64(r.period)
}

func (r *StreamingRSI) Ready() bool {
	return r.deltas >= r.period
}

func (r *StreamingRSI) Value() float64 {
	if !r.Ready() {
		return 0
	}
	return rsiValue(r.avgGain, r.avgLoss)
}
