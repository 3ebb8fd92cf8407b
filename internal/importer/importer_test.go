package importer

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	actmodels "coicit/internal/actividad/models"
	actstore "coicit/internal/actividad/store"
	"coicit/internal/eventos"
	personastore "coicit/internal/persona/store"
)

type entorno struct {
	actividades *actstore.InMemory
	personas    *personastore.InMemory
	importer    *Importer
}

func newEntorno(t *testing.T) *entorno {
	t.Helper()
	ctx := context.Background()
	e := &entorno{
		actividades: actstore.NewInMemory(),
		personas:    personastore.NewInMemory(),
	}

	for _, descripcion := range []string{"ponencia", "sesion_interactiva", "sesion_experto", "tour"} {
		tipo := actmodels.TipoActividad{Descripcion: descripcion}
		require.NoError(t, e.actividades.CrearTipo(ctx, &tipo))
	}
	unidad := actmodels.Unidad{Descripcion: "Facultad de Ingeniería de Sistemas Computacionales"}
	require.NoError(t, e.actividades.CrearUnidad(ctx, &unidad))
	espacio := actmodels.Espacio{Descripcion: "Auditorio", Capacidad: 120, Ubicacion: "Edificio 1"}
	require.NoError(t, e.actividades.CrearEspacio(ctx, &espacio))

	e.importer = New(e.actividades, e.personas, slog.New(slog.NewTextHandler(io.Discard, nil)), 2025)
	return e
}

func registroBase() eventos.Registro {
	return eventos.Registro{
		Code:     "PON-001",
		Title:    "Sistemas distribuidos",
		Speaker:  "Ana Martínez (UTP)",
		Date:     "23/9",
		Time:     "8:00 - 10:00",
		Location: "Auditorio",
		Faculty:  "Sistemas Computacionales",
		Type:     "Ponencia",
		Status:   "available",
	}
}

func TestRunCreaActividad(t *testing.T) {
	e := newEntorno(t)
	ctx := context.Background()

	resumen, err := e.importer.Run(ctx, []eventos.Registro{registroBase()})
	require.NoError(t, err)
	require.Equal(t, 1, resumen.Creadas)
	require.Zero(t, resumen.Actualizadas)
	require.Empty(t, resumen.Errores)

	actividad, err := e.actividades.BuscarPorCodigo(ctx, "PON-001")
	require.NoError(t, err)
	require.Equal(t, "Sistemas distribuidos", actividad.Descripcion)
	require.Equal(t, actmodels.EstadoDisponible, actividad.Estado)
	// Venue seats 120 but imported activities cap at 50.
	require.Equal(t, 50, actividad.Capacidad)
	require.Equal(t, 10.00, actividad.Precio)
	require.NotNil(t, actividad.IDExpositor)

	persona, err := e.personas.BuscarPorNombre(ctx, "Ana", "Martínez")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(persona.Cedula, "EXP-"))
}

func TestRunActualizaPorCodigo(t *testing.T) {
	e := newEntorno(t)
	ctx := context.Background()

	_, err := e.importer.Run(ctx, []eventos.Registro{registroBase()})
	require.NoError(t, err)

	cambiado := registroBase()
	cambiado.Title = "Sistemas distribuidos II"
	cambiado.Status = "closed"
	resumen, err := e.importer.Run(ctx, []eventos.Registro{cambiado})
	require.NoError(t, err)
	require.Zero(t, resumen.Creadas)
	require.Equal(t, 1, resumen.Actualizadas)

	actividad, err := e.actividades.BuscarPorCodigo(ctx, "PON-001")
	require.NoError(t, err)
	require.Equal(t, "Sistemas distribuidos II", actividad.Descripcion)
	require.Equal(t, actmodels.EstadoCerrada, actividad.Estado)
}

func TestRunCreaEspacioFaltante(t *testing.T) {
	e := newEntorno(t)
	ctx := context.Background()

	registro := registroBase()
	registro.Location = "Salon 205"
	_, err := e.importer.Run(ctx, []eventos.Registro{registro})
	require.NoError(t, err)

	espacios, err := e.actividades.ListarEspacios(ctx)
	require.NoError(t, err)
	require.Len(t, espacios, 2)

	actividad, err := e.actividades.BuscarPorCodigo(ctx, "PON-001")
	require.NoError(t, err)
	require.Equal(t, 30, actividad.Capacidad)
}

func TestRunReusaExpositor(t *testing.T) {
	e := newEntorno(t)
	ctx := context.Background()

	segundo := registroBase()
	segundo.Code = "PON-002"
	segundo.Speaker = "Ana Martínez"
	resumen, err := e.importer.Run(ctx, []eventos.Registro{registroBase(), segundo})
	require.NoError(t, err)
	require.Equal(t, 2, resumen.Creadas)

	primera, err := e.actividades.BuscarPorCodigo(ctx, "PON-001")
	require.NoError(t, err)
	otra, err := e.actividades.BuscarPorCodigo(ctx, "PON-002")
	require.NoError(t, err)
	require.Equal(t, *primera.IDExpositor, *otra.IDExpositor)
}

func TestRunColectaErroresPorRegistro(t *testing.T) {
	e := newEntorno(t)
	ctx := context.Background()

	sinTipo := registroBase()
	sinTipo.Code = "MAL-001"
	sinTipo.Type = "karaoke"
	fechaRota := registroBase()
	fechaRota.Code = "MAL-002"
	fechaRota.Date = "32/1"
	sinUnidad := registroBase()
	sinUnidad.Code = "MAL-003"
	sinUnidad.Faculty = "Medicina"

	resumen, err := e.importer.Run(ctx, []eventos.Registro{sinTipo, fechaRota, sinUnidad, registroBase()})
	require.NoError(t, err)
	require.Equal(t, 1, resumen.Creadas)
	require.Len(t, resumen.Errores, 3)
	require.Contains(t, resumen.Errores[0], "MAL-001")
	require.Contains(t, resumen.Errores[1], "MAL-002")
	require.Contains(t, resumen.Errores[2], "MAL-003")
}

func TestRunSinExpositor(t *testing.T) {
	e := newEntorno(t)
	ctx := context.Background()

	registro := registroBase()
	registro.Speaker = ""
	_, err := e.importer.Run(ctx, []eventos.Registro{registro})
	require.NoError(t, err)

	actividad, err := e.actividades.BuscarPorCodigo(ctx, "PON-001")
	require.NoError(t, err)
	require.Nil(t, actividad.IDExpositor)
}
