// Package memory keeps exported tables in process.
package memory

import (
	"context"
	"sync"

	"financeiro/internal/export"
)

type Store struct {
	mu     sync.Mutex
	tabs   map[string][][]any
	writes int
}

func New() *Store {
	return &Store{tabs: map[string][][]any{}}
}

func (s *Store) Name() string {
	return "memory"
}

// Write replaces every tab named by tables.
func (s *Store) Write(ctx context.Context, tables []export.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tables {
		s.tabs[t.Name] = t.Values()
	}
	s.writes++
	return nil
}

// Tab returns the values last written to name.
func (s *Store) Tab(name string) ([][]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.tabs[name]
	return v, ok
}

// Writes counts successful Write calls.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
