package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"coicit/internal/actividad/models"
	"coicit/pkg/platform/sentinel"
)

// InMemory keeps activities and their reference entities in maps. It backs
// unit tests for the catalog, enrollment and importer flows.
type InMemory struct {
	mu     sync.RWMutex
	nextID int64

	actividades map[int64]*models.Actividad
	tipos       map[int64]*models.TipoActividad
	espacios    map[int64]*models.Espacio
	unidades    map[int64]*models.Unidad
	expositores map[int64]*models.Expositor

	// nombreExpositor lets Detalle carry the speaker name without a persona
	// store round trip.
	nombreExpositor map[int64]string
}

// NewInMemory constructs an empty in-memory activity store.
func NewInMemory() *InMemory {
	return &InMemory{
		nextID:          1,
		actividades:     make(map[int64]*models.Actividad),
		tipos:           make(map[int64]*models.TipoActividad),
		espacios:        make(map[int64]*models.Espacio),
		unidades:        make(map[int64]*models.Unidad),
		expositores:     make(map[int64]*models.Expositor),
		nombreExpositor: make(map[int64]string),
	}
}

func (s *InMemory) siguienteID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// CrearTipo registers an activity type.
func (s *InMemory) CrearTipo(ctx context.Context, t *models.TipoActividad) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.siguienteID()
	clone := *t
	s.tipos[t.ID] = &clone
	return nil
}

// CrearEspacio registers a venue.
func (s *InMemory) CrearEspacio(ctx context.Context, e *models.Espacio) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.siguienteID()
	clone := *e
	s.espacios[e.ID] = &clone
	return nil
}

// CrearUnidad registers an organizational unit.
func (s *InMemory) CrearUnidad(ctx context.Context, u *models.Unidad) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.siguienteID()
	clone := *u
	s.unidades[u.ID] = &clone
	return nil
}

// CrearExpositor registers a speaker. nombre is the display name carried into
// catalog rows.
func (s *InMemory) CrearExpositor(ctx context.Context, e *models.Expositor, nombre string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.siguienteID()
	clone := *e
	s.expositores[e.ID] = &clone
	s.nombreExpositor[e.ID] = nombre
	return nil
}

// BuscarExpositorPorPersona finds the speaker record for a persona.
func (s *InMemory) BuscarExpositorPorPersona(ctx context.Context, idPersona int64) (*models.Expositor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.expositores {
		if e.IDPersona == idPersona {
			clone := *e
			return &clone, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// ListarTipos returns every activity type.
func (s *InMemory) ListarTipos(ctx context.Context) ([]models.TipoActividad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TipoActividad, 0, len(s.tipos))
	for _, t := range s.tipos {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ListarEspacios returns every venue.
func (s *InMemory) ListarEspacios(ctx context.Context) ([]models.Espacio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Espacio, 0, len(s.espacios))
	for _, e := range s.espacios {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ListarUnidades returns every organizational unit.
func (s *InMemory) ListarUnidades(ctx context.Context) ([]models.Unidad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Unidad, 0, len(s.unidades))
	for _, u := range s.unidades {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Crear inserts an activity, assigning its ID.
func (s *InMemory) Crear(ctx context.Context, a *models.Actividad) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.actividades {
		if existing.CodigoMatricula == a.CodigoMatricula {
			return sentinel.ErrConflict
		}
	}
	a.ID = s.siguienteID()
	clone := *a
	s.actividades[a.ID] = &clone
	return nil
}

// Actualizar replaces an existing activity.
func (s *InMemory) Actualizar(ctx context.Context, a *models.Actividad) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.actividades[a.ID]; !ok {
		return sentinel.ErrNotFound
	}
	clone := *a
	s.actividades[a.ID] = &clone
	return nil
}

// BuscarPorID finds an activity by primary key.
func (s *InMemory) BuscarPorID(ctx context.Context, id int64) (*models.Actividad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.actividades[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

// BuscarPorCodigo finds an activity by its external enrollment code.
func (s *InMemory) BuscarPorCodigo(ctx context.Context, codigo string) (*models.Actividad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.actividades {
		if a.CodigoMatricula == codigo {
			clone := *a
			return &clone, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// TipoDeActividad returns the type descriptor of an activity.
func (s *InMemory) TipoDeActividad(ctx context.Context, idActividad int64) (*models.TipoActividad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.actividades[idActividad]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	t, ok := s.tipos[a.IDTipoActividad]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *t
	return &clone, nil
}

// Listar returns joined catalog rows matching the filter, ordered by start
// date then start time. Enrollment counts are filled in by the service.
func (s *InMemory) Listar(ctx context.Context, filtro models.Filtro) ([]models.Detalle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	estado := filtro.Estado
	if estado == "" {
		estado = models.EstadoDisponible
	}

	out := make([]models.Detalle, 0, len(s.actividades))
	for _, a := range s.actividades {
		if a.Estado != estado {
			continue
		}
		tipo := s.tipos[a.IDTipoActividad]
		unidad := s.unidades[a.IDUnidad]
		espacio := s.espacios[a.IDEspacio]
		if tipo == nil || unidad == nil || espacio == nil {
			continue
		}
		if filtro.Tipo != "" && tipo.Descripcion != filtro.Tipo {
			continue
		}
		if filtro.Unidad != "" && !strings.Contains(strings.ToLower(unidad.Descripcion), strings.ToLower(filtro.Unidad)) {
			continue
		}

		d := models.Detalle{
			Actividad:     *a,
			TipoActividad: tipo.Descripcion,
			Unidad:        unidad.Descripcion,
			Espacio:       *espacio,
		}
		if a.IDExpositor != nil {
			if e, ok := s.expositores[*a.IDExpositor]; ok {
				d.Expositor = &models.ExpositorDetalle{
					Nombre:       s.nombreExpositor[e.ID],
					Especialidad: e.Especialidad,
					Procedencia:  e.Procedencia,
				}
			}
		}
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].FechaInicio.Equal(out[j].FechaInicio) {
			return out[i].FechaInicio.Before(out[j].FechaInicio)
		}
		return out[i].HoraInicio.Before(out[j].HoraInicio)
	})
	return out, nil
}
