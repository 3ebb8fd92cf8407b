package store

import (
	"context"
	"strings"
	"sync"

	"coicit/internal/persona/models"
	"coicit/pkg/platform/sentinel"
)

// InMemory is the mutex-guarded map store used by unit tests and local runs.
// It enforces the same cedula uniqueness the database does.
type InMemory struct {
	mu       sync.RWMutex
	nextID   int64
	personas map[int64]*models.Persona
}

// NewInMemory constructs an empty in-memory persona store.
func NewInMemory() *InMemory {
	return &InMemory{nextID: 1, personas: make(map[int64]*models.Persona)}
}

// Crear inserts p, assigning its ID. Duplicate cedulas return ErrConflict.
func (s *InMemory) Crear(ctx context.Context, p *models.Persona) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.personas {
		if existing.Cedula == p.Cedula {
			return sentinel.ErrConflict
		}
	}
	p.ID = s.nextID
	s.nextID++
	clone := *p
	s.personas[p.ID] = &clone
	return nil
}

// BuscarPorCedula finds a persona by exact cedula match.
func (s *InMemory) BuscarPorCedula(ctx context.Context, cedula string) (*models.Persona, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.personas {
		if p.Cedula == cedula {
			clone := *p
			return &clone, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// BuscarPorID finds a persona by primary key.
func (s *InMemory) BuscarPorID(ctx context.Context, id int64) (*models.Persona, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.personas[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

// Listar returns every persona in insertion order.
func (s *InMemory) Listar(ctx context.Context) ([]models.Persona, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Persona, 0, len(s.personas))
	for id := int64(1); id < s.nextID; id++ {
		if p, ok := s.personas[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

// BuscarPorNombre finds the first persona matching first name and first
// surname (case-insensitive). The importer uses this to dedupe speakers.
func (s *InMemory) BuscarPorNombre(ctx context.Context, primerNombre, primerApellido string) (*models.Persona, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.personas {
		if strings.EqualFold(p.PrimerNombre, primerNombre) && strings.EqualFold(p.PrimerApellido, primerApellido) {
			clone := *p
			return &clone, nil
		}
	}
	return nil, sentinel.ErrNotFound
}
