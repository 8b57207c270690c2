package drawing

import (
	"time"

	"tradejournal/internal/id"
)

// TrendLine is a straight segment between two chart points.
type TrendLine struct {
	id    string
	Start Point
	End   Point
}

func NewTrendLine(start, end Point) *TrendLine {
	if end.Time.Before(start.Time) {
		start, end = end, start
	}
	return &TrendLine{id: id.New(), Start: start, End: end}
}

func (l *TrendLine) ID() string { return l.id }

func (l *TrendLine) Kind() Kind { return KindTrendLine }

func (l *TrendLine) AnchorPoints() []Point {
	return []Point{l.Start, l.End}
}

// priceAt linearly interpolates the line's price at a time within its span.
func (l *TrendLine) priceAt(at time.Time) float64 {
	span := l.End.Time.Sub(l.Start.Time)
	if span <= 0 {
		return l.Start.Price
	}
	frac := float64(at.Sub(l.Start.Time)) / float64(span)
	return l.Start.Price + frac*(l.End.Price-l.Start.Price)
}

func (l *TrendLine) IsNearPoint(p Point, tolerance float64) bool {
	if p.Time.Before(l.Start.Time) || p.Time.After(l.End.Time) {
		return false
	}
	return abs(p.Price-l.priceAt(p.Time)) <= tolerance
}

// HorizontalLine is an unbounded price level.
type HorizontalLine struct {
	id    string
	Price float64
}

func NewHorizontalLine(price float64) *HorizontalLine {
	return &HorizontalLine{id: id.New(), Price: price}
}

func (l *HorizontalLine) ID() string { return l.id }

func (l *HorizontalLine) Kind() Kind { return KindHorizontalLine }

func (l *HorizontalLine) AnchorPoints() []Point {
	return []Point{{Price: l.Price}}
}

func (l *HorizontalLine) IsNearPoint(p Point, tolerance float64) bool {
	return abs(p.Price-l.Price) <= tolerance
}
