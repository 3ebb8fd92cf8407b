// Package service assembles the activity catalog with live seat counts.
package service

import (
	"context"

	"coicit/internal/actividad/models"
	dErrors "coicit/pkg/domain-errors"
)

// Store is the persistence surface the catalog needs.
type Store interface {
	Listar(ctx context.Context, filtro models.Filtro) ([]models.Detalle, error)
}

// ContadorInscripciones reports current enrollment counts per activity. The
// inscripcion store implements it.
type ContadorInscripciones interface {
	ContarPorActividad(ctx context.Context) (map[int64]int, error)
}

// Service lists activities with computed remaining seats.
type Service struct {
	actividades Store
	inscritos   ContadorInscripciones
}

// New constructs an actividad service.
func New(actividades Store, inscritos ContadorInscripciones) *Service {
	return &Service{actividades: actividades, inscritos: inscritos}
}

// Listar returns catalog rows for the filter with enrollment counts applied.
// An invalid estado is a bad request; an empty one defaults to disponible.
func (s *Service) Listar(ctx context.Context, filtro models.Filtro) ([]models.Detalle, error) {
	if filtro.Estado != "" && !filtro.Estado.Valido() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Estado de actividad inválido")
	}

	detalles, err := s.actividades.Listar(ctx, filtro)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "listar actividades")
	}

	conteos, err := s.inscritos.ContarPorActividad(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "contar inscritos")
	}
	for i := range detalles {
		detalles[i].Inscritos = conteos[detalles[i].ID]
	}
	return detalles, nil
}
