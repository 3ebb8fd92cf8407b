package store

import (
	"context"
	"sync"

	actmodels "coicit/internal/actividad/models"
	actstore "coicit/internal/actividad/store"
	"coicit/internal/inscripcion/models"
	"coicit/internal/inscripcion/service"
	paquetemodels "coicit/internal/paquete/models"
	paquetestore "coicit/internal/paquete/store"
	"coicit/pkg/platform/sentinel"
)

// InMemory keeps enrollments in memory, delegating reference reads to the
// actividad and paquete memory stores. RunInTx serializes on one mutex, which
// gives the same exclusion the row lock provides in Postgres.
type InMemory struct {
	mu     sync.Mutex
	nextID int64
	porID  map[int64]models.Inscripcion

	actividades *actstore.InMemory
	paquetes    *paquetestore.InMemory
}

// NewInMemory constructs an empty in-memory enrollment store.
func NewInMemory(actividades *actstore.InMemory, paquetes *paquetestore.InMemory) *InMemory {
	return &InMemory{
		nextID:      1,
		porID:       make(map[int64]models.Inscripcion),
		actividades: actividades,
		paquetes:    paquetes,
	}
}

// RunInTx runs fn under the store mutex. The insert is the last step of fn,
// so a failed fn leaves no partial state behind.
func (s *InMemory) RunInTx(ctx context.Context, fn func(store service.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&txMemoria{s: s})
}

// ContarPorActividad returns the enrollment count per activity id.
func (s *InMemory) ContarPorActividad(ctx context.Context) (map[int64]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conteos := make(map[int64]int)
	for _, i := range s.porID {
		conteos[i.IDActividad]++
	}
	return conteos, nil
}

// ContarPorActividadID returns the enrollment count for one activity.
func (s *InMemory) ContarPorActividadID(ctx context.Context, idActividad int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contarActividad(idActividad), nil
}

// BuscarPorID returns one enrollment.
func (s *InMemory) BuscarPorID(ctx context.Context, id int64) (*models.Inscripcion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.porID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &i, nil
}

// Listar returns every enrollment, most recent id first.
func (s *InMemory) Listar(ctx context.Context) ([]models.Inscripcion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Inscripcion, 0, len(s.porID))
	for id := s.nextID - 1; id >= 1; id-- {
		if i, ok := s.porID[id]; ok {
			out = append(out, i)
		}
	}
	return out, nil
}

func (s *InMemory) contarActividad(idActividad int64) int {
	n := 0
	for _, i := range s.porID {
		if i.IDActividad == idActividad {
			n++
		}
	}
	return n
}

// txMemoria is the transaction-scoped view; the caller holds the mutex.
type txMemoria struct {
	s *InMemory
}

func (t *txMemoria) ActividadParaInscribir(ctx context.Context, id int64) (*actmodels.Actividad, int, error) {
	actividad, err := t.s.actividades.BuscarPorID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return actividad, t.s.contarActividad(id), nil
}

func (t *txMemoria) EstructuraPorPaquete(ctx context.Context, idPaquete int64) ([]paquetemodels.DetalleEstructura, error) {
	return t.s.paquetes.EstructuraPorPaquete(ctx, idPaquete)
}

func (t *txMemoria) ConteoPorTipo(ctx context.Context, idPersona, idPaquete, idTipoActividad int64) (int, error) {
	n := 0
	for _, i := range t.s.porID {
		if i.IDPersona != idPersona || i.IDPaquete != idPaquete {
			continue
		}
		actividad, err := t.s.actividades.BuscarPorID(ctx, i.IDActividad)
		if err != nil {
			return 0, err
		}
		if actividad.IDTipoActividad == idTipoActividad {
			n++
		}
	}
	return n, nil
}

func (t *txMemoria) ExisteInscripcion(ctx context.Context, idPersona, idActividad int64) (bool, error) {
	for _, i := range t.s.porID {
		if i.IDPersona == idPersona && i.IDActividad == idActividad {
			return true, nil
		}
	}
	return false, nil
}

func (t *txMemoria) Insertar(ctx context.Context, i *models.Inscripcion) error {
	for _, existente := range t.s.porID {
		if existente.IDPersona == i.IDPersona && existente.IDActividad == i.IDActividad {
			return sentinel.ErrConflict
		}
	}
	i.ID = t.s.nextID
	t.s.nextID++
	t.s.porID[i.ID] = *i
	return nil
}
