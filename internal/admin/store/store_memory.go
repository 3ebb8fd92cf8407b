package store

import (
	"context"

	actmodels "coicit/internal/actividad/models"
	actstore "coicit/internal/actividad/store"
	"coicit/internal/admin/service"
	inscripcionstore "coicit/internal/inscripcion/store"
	paquetemodels "coicit/internal/paquete/models"
	paquetestore "coicit/internal/paquete/store"
	personamodels "coicit/internal/persona/models"
	personastore "coicit/internal/persona/store"
)

// InMemory computes the dashboard aggregates over the memory stores, mirror
// of the SQL the Postgres store runs.
type InMemory struct {
	personas      *personastore.InMemory
	actividades   *actstore.InMemory
	paquetes      *paquetestore.InMemory
	inscripciones *inscripcionstore.InMemory
}

// NewInMemory constructs an in-memory dashboard store over the given stores.
func NewInMemory(personas *personastore.InMemory, actividades *actstore.InMemory,
	paquetes *paquetestore.InMemory, inscripciones *inscripcionstore.InMemory) *InMemory {
	return &InMemory{
		personas:      personas,
		actividades:   actividades,
		paquetes:      paquetes,
		inscripciones: inscripciones,
	}
}

// TotalInscripciones counts every enrollment.
func (s *InMemory) TotalInscripciones(ctx context.Context) (int, error) {
	inscripciones, err := s.inscripciones.Listar(ctx)
	if err != nil {
		return 0, err
	}
	return len(inscripciones), nil
}

// TotalRecaudado sums the tariff in effect, per enrollment, for the
// participant's segment on the enrollment date.
func (s *InMemory) TotalRecaudado(ctx context.Context) (float64, error) {
	inscripciones, err := s.inscripciones.Listar(ctx)
	if err != nil {
		return 0, err
	}
	completos, err := s.paquetes.ListarCompletos(ctx)
	if err != nil {
		return 0, err
	}
	tarifasPorPaquete := make(map[int64][]paquetemodels.Tarifa, len(completos))
	for _, p := range completos {
		tarifasPorPaquete[p.ID] = p.Tarifas
	}

	var total float64
	for _, i := range inscripciones {
		persona, err := s.personas.BuscarPorID(ctx, i.IDPersona)
		if err != nil {
			return 0, err
		}
		vigentes := paquetemodels.ResolverTarifas(tarifasPorPaquete[i.IDPaquete], i.FechaInscripcion)
		total += vigentes[persona.TipoPersona]
	}
	return total, nil
}

// ContarPersonasPorTipo groups the registered participants by segment.
func (s *InMemory) ContarPersonasPorTipo(ctx context.Context) (map[personamodels.TipoPersona]int, error) {
	personas, err := s.personas.Listar(ctx)
	if err != nil {
		return nil, err
	}
	conteos := make(map[personamodels.TipoPersona]int)
	for _, p := range personas {
		conteos[p.TipoPersona]++
	}
	return conteos, nil
}

// ContarActividadesPorEstado groups the catalog by state.
func (s *InMemory) ContarActividadesPorEstado(ctx context.Context) (map[actmodels.Estado]int, error) {
	conteos := make(map[actmodels.Estado]int)
	for _, estado := range []actmodels.Estado{actmodels.EstadoDisponible, actmodels.EstadoCerrada, actmodels.EstadoCancelada} {
		detalles, err := s.actividades.Listar(ctx, actmodels.Filtro{Estado: estado})
		if err != nil {
			return nil, err
		}
		if len(detalles) > 0 {
			conteos[estado] = len(detalles)
		}
	}
	return conteos, nil
}

// InscripcionesRecientes returns the latest enrollments with display names.
func (s *InMemory) InscripcionesRecientes(ctx context.Context, limite int) ([]service.Reciente, error) {
	inscripciones, err := s.inscripciones.Listar(ctx)
	if err != nil {
		return nil, err
	}
	if len(inscripciones) > limite {
		inscripciones = inscripciones[:limite]
	}

	out := make([]service.Reciente, 0, len(inscripciones))
	for _, i := range inscripciones {
		persona, err := s.personas.BuscarPorID(ctx, i.IDPersona)
		if err != nil {
			return nil, err
		}
		actividad, err := s.actividades.BuscarPorID(ctx, i.IDActividad)
		if err != nil {
			return nil, err
		}
		paquete, err := s.paquetes.BuscarPorID(ctx, i.IDPaquete)
		if err != nil {
			return nil, err
		}
		out = append(out, service.Reciente{
			ID:        i.ID,
			Persona:   persona.NombreCorto(),
			Actividad: actividad.Descripcion,
			Paquete:   paquete.Descripcion,
			Fecha:     i.FechaInscripcion.Format("2006-01-02"),
		})
	}
	return out, nil
}
