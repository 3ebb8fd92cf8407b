// Package service aggregates the registration figures for the dashboard.
package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	actmodels "coicit/internal/actividad/models"
	personamodels "coicit/internal/persona/models"
	dErrors "coicit/pkg/domain-errors"
)

// Reciente is one row of the latest-enrollments feed.
type Reciente struct {
	ID        int64  `json:"id_inscripcion"`
	Persona   string `json:"persona"`
	Actividad string `json:"actividad"`
	Paquete   string `json:"paquete"`
	Fecha     string `json:"fecha_inscripcion"`
}

// Estadisticas is the dashboard payload.
type Estadisticas struct {
	TotalInscripciones   int                               `json:"total_inscripciones"`
	TotalRecaudado       float64                           `json:"total_recaudado"`
	PersonasPorTipo      map[personamodels.TipoPersona]int `json:"personas_por_tipo"`
	ActividadesPorEstado map[actmodels.Estado]int          `json:"actividades_por_estado"`
	Recientes            []Reciente                        `json:"inscripciones_recientes"`
}

// Store is the aggregation surface the dashboard reads from. Recaudado
// resolves, per enrollment, the tariff in effect for the participant's
// segment on the enrollment date.
type Store interface {
	TotalInscripciones(ctx context.Context) (int, error)
	TotalRecaudado(ctx context.Context) (float64, error)
	ContarPersonasPorTipo(ctx context.Context) (map[personamodels.TipoPersona]int, error)
	ContarActividadesPorEstado(ctx context.Context) (map[actmodels.Estado]int, error)
	InscripcionesRecientes(ctx context.Context, limite int) ([]Reciente, error)
}

const limiteRecientes = 5

// Service computes the dashboard.
type Service struct {
	store Store
}

// New constructs an admin service.
func New(store Store) *Service {
	return &Service{store: store}
}

// Estadisticas gathers every aggregate, running the reads concurrently.
func (s *Service) Estadisticas(ctx context.Context) (*Estadisticas, error) {
	var stats Estadisticas
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.TotalInscripciones, err = s.store.TotalInscripciones(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalRecaudado, err = s.store.TotalRecaudado(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.PersonasPorTipo, err = s.store.ContarPersonasPorTipo(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.ActividadesPorEstado, err = s.store.ContarActividadesPorEstado(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Recientes, err = s.store.InscripcionesRecientes(gctx, limiteRecientes)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "calcular estadísticas")
	}
	return &stats, nil
}
