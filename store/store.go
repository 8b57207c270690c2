// Package store persists paper-trading records (accounts, orders, positions)
// keyed by id. The engine depends only on the Recorder subset; loading is for
// session restore and journal review tooling.
package store

import (
	"errors"

	"tradejournal/paper"
)

// ErrNotFound means no record exists with the given id.
var ErrNotFound = errors.New("record not found")

// RecordStore is the full persistence contract: everything the engine writes
// plus the reads a session-restore path needs.
type RecordStore interface {
	paper.Recorder

	LoadAccount(id string) (paper.Account, error)
	LoadPosition(id string) (paper.Position, error)
	LoadOrder(id string) (paper.Order, error)
	ListPositions() ([]paper.Position, error)
	Close() error
}
