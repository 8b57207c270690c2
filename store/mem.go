package store

import (
	"fmt"
	"sort"
	"sync"

	"tradejournal/paper"
)

// MemStore is an in-memory RecordStore for tests and throwaway sessions.
type MemStore struct {
	mu        sync.RWMutex
	accounts  map[string]paper.Account
	orders    map[string]paper.Order
	positions map[string]paper.Position
}

func NewMem() *MemStore {
	return &MemStore{
		accounts:  make(map[string]paper.Account),
		orders:    make(map[string]paper.Order),
		positions: make(map[string]paper.Position),
	}
}

func (s *MemStore) SaveAccount(a paper.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = a
	return nil
}

func (s *MemStore) SaveOrder(o paper.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
	return nil
}

func (s *MemStore) SavePosition(p paper.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[p.ID] = p
	return nil
}

func (s *MemStore) LoadAccount(id string) (paper.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return paper.Account{}, fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	return a, nil
}

func (s *MemStore) LoadOrder(id string) (paper.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return paper.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return o, nil
}

func (s *MemStore) LoadPosition(id string) (paper.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.positions[id]
	if !ok {
		return paper.Position{}, fmt.Errorf("position %s: %w", id, ErrNotFound)
	}
	return p, nil
}

func (s *MemStore) ListPositions() ([]paper.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]paper.Position, 0, len(s.positions))
	for _, p := range s.positions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) Close() error { return nil }
