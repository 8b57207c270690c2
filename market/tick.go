package market

import (
	"errors"
	"sync"
	"time"
)

// ErrNoPrice is returned when no tick has been seen for a symbol yet.
var ErrNoPrice = errors.New("price not found")

// Tick is one timestamped price observation for a symbol, as pushed by a
// streaming transport. Volume and Change are optional and zero when the feed
// does not supply them.
type Tick struct {
	Symbol string
	Price  float64
	Time   time.Time
	Volume float64
	Change float64
}

// Valid reports whether the tick carries the fields the engine requires.
// Malformed ticks are dropped by consumers, never processed partially.
func (t Tick) Valid() bool {
	return t.Symbol != "" && t.Price > 0
}

// TickStore keeps the latest tick per symbol.
type TickStore struct {
	mu    sync.RWMutex
	ticks map[string]Tick
}

func NewTickStore() *TickStore {
	return &TickStore{ticks: make(map[string]Tick)}
}

func (s *TickStore) Set(t Tick) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticks[t.Symbol] = t
}

func (s *TickStore) Get(symbol string) (Tick, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.ticks[symbol]
	if !ok {
		return Tick{}, ErrNoPrice
	}
	return t, nil
}
