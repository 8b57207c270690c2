package drawing

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound means no drawing exists with the given id.
var ErrNotFound = errors.New("drawing not found")

// Store is the id-keyed drawing collection. It is independent of the trading
// engine's position set; the only connection between the two is the position
// id stored on an active tool.
type Store struct {
	mu       sync.RWMutex
	drawings map[string]Drawing
}

func NewStore() *Store {
	return &Store{drawings: make(map[string]Drawing)}
}

func (s *Store) Add(d Drawing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawings[d.ID()] = d
}

func (s *Store) Get(id string) (Drawing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drawings[id]
	return d, ok
}

// Delete removes a drawing. Deleting an active position tool does not close
// its linked position.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drawings, id)
}

// List returns all drawings ordered by id.
func (s *Store) List() []Drawing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Drawing, 0, len(s.drawings))
	for _, d := range s.drawings {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// HitTest returns the topmost drawing selected by the query point, position
// tools first.
func (s *Store) HitTest(p Point, tolerance float64) (Drawing, bool) {
	for _, d := range s.List() {
		if d.Kind() == KindPositionTool && d.IsNearPoint(p, tolerance) {
			return d, true
		}
	}
	for _, d := range s.List() {
		if d.Kind() != KindPositionTool && d.IsNearPoint(p, tolerance) {
			return d, true
		}
	}
	return nil, false
}

// Tool returns the position tool with the given id.
func (s *Store) Tool(id string) (*PositionTool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drawings[id]
	if !ok {
		return nil, fmt.Errorf("tool %s: %w", id, ErrNotFound)
	}
	t, ok := d.(*PositionTool)
	if !ok {
		return nil, fmt.Errorf("tool %s: drawing is a %s", id, d.Kind())
	}
	return t, nil
}

// ToolByPosition returns the position tool linked to the given position id.
func (s *Store) ToolByPosition(positionID string) (*PositionTool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.drawings {
		if t, ok := d.(*PositionTool); ok && t.LinkedPositionID == positionID {
			return t, true
		}
	}
	return nil, false
}
