// Package service implements participant search and registration.
package service

import (
	"context"
	"errors"
	"strings"

	"coicit/internal/persona/models"
	dErrors "coicit/pkg/domain-errors"
	"coicit/pkg/platform/sentinel"
)

// Store is the persistence surface the service needs.
type Store interface {
	Crear(ctx context.Context, p *models.Persona) error
	BuscarPorCedula(ctx context.Context, cedula string) (*models.Persona, error)
	BuscarPorID(ctx context.Context, id int64) (*models.Persona, error)
}

// Service handles participant lookup and registration.
type Service struct {
	personas Store
}

// New constructs a persona service.
func New(personas Store) *Service {
	return &Service{personas: personas}
}

// Buscar looks a participant up by cedula. A miss is a legitimate outcome,
// reported through the found flag, never as an error.
func (s *Service) Buscar(ctx context.Context, cedula string) (*models.Persona, bool, error) {
	cedula = strings.TrimSpace(cedula)
	if cedula == "" {
		return nil, false, dErrors.New(dErrors.CodeBadRequest, "Cédula requerida")
	}
	p, err := s.personas.BuscarPorCedula(ctx, cedula)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "buscar persona")
	}
	return p, true, nil
}

// Registrar creates a new participant. Duplicate cedulas yield a conflict.
func (s *Service) Registrar(ctx context.Context, nueva models.Persona) (*models.Persona, error) {
	nueva.Cedula = strings.TrimSpace(nueva.Cedula)
	if !nueva.TipoPersona.Valido() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Tipo de persona inválido")
	}

	if err := s.personas.Crear(ctx, &nueva); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "Ya existe una persona con esta cédula")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "registrar persona")
	}
	return &nueva, nil
}
