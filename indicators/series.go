// Package indicators provides technical analysis indicators computed over
// candle sequences. All series functions are pure and deterministic: the same
// candle input always yields the same output, and insufficient history yields
// "no value" entries instead of errors.
package indicators

import "math"

// Series is an indicator output aligned index-for-index with its candle
// input. Entries with insufficient history hold NaN; use Defined to test.
type Series []float64

// NewSeries returns a series of length n with every entry undefined.
func NewSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

// Defined reports whether the entry at i holds a computed value.
func (s Series) Defined(i int) bool {
	return i >= 0 && i < len(s) && !math.IsNaN(s[i])
}

// FirstDefined returns the index of the first computed value, or -1 if the
// whole series is undefined.
func (s Series) FirstDefined() int {
	for i := range s {
		if !math.IsNaN(s[i]) {
			return i
		}
	}
	return -1
}
