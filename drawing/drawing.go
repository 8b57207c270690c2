// Package drawing models chart-anchored geometric objects in
// screen-independent price/time coordinates. The position tool is the drawing
// that can be promoted into a live simulated position; simpler variants
// (trend line, horizontal line) share the same interface.
package drawing

import "time"

// Point is a chart coordinate: a moment in time at a price level.
type Point struct {
	Time  time.Time
	Price float64
}

// Kind discriminates the closed set of drawing variants.
type Kind string

const (
	KindPositionTool   Kind = "position"
	KindTrendLine      Kind = "trendline"
	KindHorizontalLine Kind = "horizontal"
)

// Drawing is the behavior shared by every variant.
type Drawing interface {
	ID() string
	Kind() Kind

	// AnchorPoints returns the points a renderer or editor can grab.
	AnchorPoints() []Point

	// IsNearPoint reports whether a query point selects this drawing,
	// with price tolerance in chart units.
	IsNearPoint(p Point, tolerance float64) bool
}
