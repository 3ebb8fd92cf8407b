package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"coicit/internal/actividad/models"
	"coicit/pkg/platform/sentinel"
)

func sembrar(t *testing.T) (*InMemory, models.Actividad) {
	t.Helper()
	s := NewInMemory()
	ctx := context.Background()

	tipo := models.TipoActividad{Descripcion: "ponencia"}
	require.NoError(t, s.CrearTipo(ctx, &tipo))
	espacio := models.Espacio{Descripcion: "Auditorio", Capacidad: 100, Ubicacion: "Edificio 1"}
	require.NoError(t, s.CrearEspacio(ctx, &espacio))
	unidad := models.Unidad{Descripcion: "FISC"}
	require.NoError(t, s.CrearUnidad(ctx, &unidad))

	a := models.Actividad{
		IDTipoActividad: tipo.ID, IDEspacio: espacio.ID, IDUnidad: unidad.ID,
		CodigoMatricula: "PON-001", Descripcion: "Sistemas distribuidos",
		FechaInicio: time.Date(2025, 9, 23, 0, 0, 0, 0, time.UTC),
		Capacidad:   40, Estado: models.EstadoDisponible,
	}
	require.NoError(t, s.Crear(ctx, &a))
	return s, a
}

func TestBuscarPorCodigo(t *testing.T) {
	s, a := sembrar(t)
	ctx := context.Background()

	encontrada, err := s.BuscarPorCodigo(ctx, "PON-001")
	require.NoError(t, err)
	require.Equal(t, a.ID, encontrada.ID)

	_, err = s.BuscarPorCodigo(ctx, "PON-999")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestActualizar(t *testing.T) {
	s, a := sembrar(t)
	ctx := context.Background()

	a.Descripcion = "Sistemas distribuidos II"
	a.Estado = models.EstadoCerrada
	require.NoError(t, s.Actualizar(ctx, &a))

	encontrada, err := s.BuscarPorID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "Sistemas distribuidos II", encontrada.Descripcion)
	require.Equal(t, models.EstadoCerrada, encontrada.Estado)

	inexistente := models.Actividad{ID: 999}
	require.ErrorIs(t, s.Actualizar(ctx, &inexistente), sentinel.ErrNotFound)
}

func TestListarOrdenaPorFecha(t *testing.T) {
	s, a := sembrar(t)
	ctx := context.Background()

	anterior := models.Actividad{
		IDTipoActividad: a.IDTipoActividad, IDEspacio: a.IDEspacio, IDUnidad: a.IDUnidad,
		CodigoMatricula: "PON-000", Descripcion: "Apertura",
		FechaInicio: time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC),
		Capacidad:   40, Estado: models.EstadoDisponible,
	}
	require.NoError(t, s.Crear(ctx, &anterior))

	detalles, err := s.Listar(ctx, models.Filtro{})
	require.NoError(t, err)
	require.Len(t, detalles, 2)
	require.Equal(t, "PON-000", detalles[0].CodigoMatricula)
	require.Equal(t, "PON-001", detalles[1].CodigoMatricula)
}

func TestExpositorEnCatalogo(t *testing.T) {
	s, a := sembrar(t)
	ctx := context.Background()

	expositor := models.Expositor{IDPersona: 7, Especialidad: "Redes", Procedencia: "UTP"}
	require.NoError(t, s.CrearExpositor(ctx, &expositor, "Ana Martínez"))

	a.IDExpositor = &expositor.ID
	require.NoError(t, s.Actualizar(ctx, &a))

	encontrado, err := s.BuscarExpositorPorPersona(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, expositor.ID, encontrado.ID)

	detalles, err := s.Listar(ctx, models.Filtro{})
	require.NoError(t, err)
	require.NotNil(t, detalles[0].Expositor)
	require.Equal(t, "Ana Martínez", detalles[0].Expositor.Nombre)
	require.Equal(t, "Redes", detalles[0].Expositor.Especialidad)
}
