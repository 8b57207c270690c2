package paper

import "errors"

var (
	// ErrInvalidInput rejects non-positive prices or quantities.
	ErrInvalidInput = errors.New("invalid price or quantity")

	// ErrInvalidLevels rejects SL/TP levels ordered wrongly for the side.
	ErrInvalidLevels = errors.New("invalid stop-loss/take-profit levels")

	// ErrDuplicatePosition rejects a second open position on a symbol in
	// single-position-per-symbol mode.
	ErrDuplicatePosition = errors.New("position already open for symbol")

	// ErrNotFound means no position exists with the given id.
	ErrNotFound = errors.New("position not found")

	// ErrStillOpen means a closed-position result was requested for a
	// position that has not closed.
	ErrStillOpen = errors.New("position is still open")
)
