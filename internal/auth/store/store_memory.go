package store

import (
	"context"
	"sync"

	"coicit/internal/auth/models"
	"coicit/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded usuario store for tests and local runs.
type InMemory struct {
	mu       sync.RWMutex
	nextID   int64
	porID    map[int64]models.Usuario
	porApodo map[string]int64
}

// NewInMemory constructs an empty in-memory usuario store.
func NewInMemory() *InMemory {
	return &InMemory{
		nextID:   1,
		porID:    make(map[int64]models.Usuario),
		porApodo: make(map[string]int64),
	}
}

// Crear inserts a usuario, enforcing apodo uniqueness.
func (s *InMemory) Crear(ctx context.Context, u *models.Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.porApodo[u.Apodo]; ok {
		return sentinel.ErrConflict
	}
	u.ID = s.nextID
	s.nextID++
	s.porID[u.ID] = *u
	s.porApodo[u.Apodo] = u.ID
	return nil
}

// BuscarPorApodo returns the usuario with the given login name.
func (s *InMemory) BuscarPorApodo(ctx context.Context, apodo string) (*models.Usuario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.porApodo[apodo]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	u := s.porID[id]
	return &u, nil
}

// BuscarPorID returns the usuario with the given id.
func (s *InMemory) BuscarPorID(ctx context.Context, id int64) (*models.Usuario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.porID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &u, nil
}
