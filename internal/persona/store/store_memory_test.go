package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"coicit/internal/persona/models"
	"coicit/pkg/platform/sentinel"
)

type PersonaStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *PersonaStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestPersonaStoreSuite(t *testing.T) {
	suite.Run(t, new(PersonaStoreSuite))
}

func (s *PersonaStoreSuite) newPersona(cedula string) *models.Persona {
	return &models.Persona{
		Cedula:         cedula,
		PrimerNombre:   "María",
		PrimerApellido: "González",
		TipoPersona:    models.TipoEstudianteActivo,
	}
}

func (s *PersonaStoreSuite) TestCrearYBuscar() {
	s.Run("creates and finds by cedula", func() {
		p := s.newPersona("8-1001-1001")
		s.Require().NoError(s.store.Crear(s.ctx, p))
		s.NotZero(p.ID)

		found, err := s.store.BuscarPorCedula(s.ctx, "8-1001-1001")
		s.Require().NoError(err)
		s.Equal(p.ID, found.ID)
		s.Equal(models.TipoEstudianteActivo, found.TipoPersona)
	})

	s.Run("returns ErrNotFound for unknown cedula", func() {
		_, err := s.store.BuscarPorCedula(s.ctx, "9-9999-9999")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("finds by ID", func() {
		p := s.newPersona("8-1002-1002")
		s.Require().NoError(s.store.Crear(s.ctx, p))

		found, err := s.store.BuscarPorID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal("8-1002-1002", found.Cedula)
	})
}

func (s *PersonaStoreSuite) TestCedulaUnica() {
	p := s.newPersona("8-1001-1001")
	s.Require().NoError(s.store.Crear(s.ctx, p))

	dup := s.newPersona("8-1001-1001")
	err := s.store.Crear(s.ctx, dup)
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *PersonaStoreSuite) TestBuscarPorNombre() {
	p := s.newPersona("8-1003-1003")
	s.Require().NoError(s.store.Crear(s.ctx, p))

	found, err := s.store.BuscarPorNombre(s.ctx, "maría", "GONZÁLEZ")
	s.Require().NoError(err)
	s.Equal(p.ID, found.ID)

	_, err = s.store.BuscarPorNombre(s.ctx, "Pedro", "Pérez")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
