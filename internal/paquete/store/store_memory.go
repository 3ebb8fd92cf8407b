package store

import (
	"context"
	"sort"
	"sync"

	"coicit/internal/paquete/models"
	"coicit/pkg/platform/sentinel"
)

// InMemory keeps packages, structures and tariff history in maps.
type InMemory struct {
	mu       sync.RWMutex
	nextID   int64
	paquetes map[int64]*models.Completo
}

// NewInMemory constructs an empty in-memory package store.
func NewInMemory() *InMemory {
	return &InMemory{nextID: 1, paquetes: make(map[int64]*models.Completo)}
}

// Crear inserts a package, assigning its ID.
func (s *InMemory) Crear(ctx context.Context, p *models.Paquete) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID
	s.nextID++
	s.paquetes[p.ID] = &models.Completo{Paquete: *p}
	return nil
}

// AgregarTipo includes an activity type in a package with its ceiling.
func (s *InMemory) AgregarTipo(ctx context.Context, idPaquete int64, detalle models.DetalleEstructura) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.paquetes[idPaquete]
	if !ok {
		return sentinel.ErrNotFound
	}
	p.Estructura = append(p.Estructura, detalle)
	return nil
}

// AgregarTarifa appends a tariff row to a package's history.
func (s *InMemory) AgregarTarifa(ctx context.Context, tarifa models.Tarifa) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.paquetes[tarifa.IDPaquete]
	if !ok {
		return sentinel.ErrNotFound
	}
	tarifa.ID = s.nextID
	s.nextID++
	p.Tarifas = append(p.Tarifas, tarifa)
	return nil
}

// ListarCompletos returns every package with structure and tariff history.
func (s *InMemory) ListarCompletos(ctx context.Context) ([]models.Completo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Completo, 0, len(s.paquetes))
	for _, p := range s.paquetes {
		clone := *p
		clone.Estructura = append([]models.DetalleEstructura(nil), p.Estructura...)
		clone.Tarifas = append([]models.Tarifa(nil), p.Tarifas...)
		out = append(out, clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// BuscarPorID finds a package by primary key.
func (s *InMemory) BuscarPorID(ctx context.Context, id int64) (*models.Paquete, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.paquetes[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := p.Paquete
	return &clone, nil
}

// EstructuraPorPaquete returns the included types and ceilings of a package.
func (s *InMemory) EstructuraPorPaquete(ctx context.Context, id int64) ([]models.DetalleEstructura, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.paquetes[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return append([]models.DetalleEstructura(nil), p.Estructura...), nil
}
