package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"coicit/internal/actividad/models"
	"coicit/internal/actividad/service"
	"coicit/internal/actividad/store"
	inscripcionmodels "coicit/internal/inscripcion/models"
	inscripcionservice "coicit/internal/inscripcion/service"
	inscripcionstore "coicit/internal/inscripcion/store"
	paquetestore "coicit/internal/paquete/store"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	actividades := store.NewInMemory()
	paquetes := paquetestore.NewInMemory()
	inscripciones := inscripcionstore.NewInMemory(actividades, paquetes)

	tipo := models.TipoActividad{Descripcion: "ponencia"}
	require.NoError(t, actividades.CrearTipo(ctx, &tipo))
	espacio := models.Espacio{Descripcion: "Auditorio", Capacidad: 100, Ubicacion: "Edificio 1"}
	require.NoError(t, actividades.CrearEspacio(ctx, &espacio))
	fisc := models.Unidad{Descripcion: "FISC"}
	require.NoError(t, actividades.CrearUnidad(ctx, &fisc))
	fie := models.Unidad{Descripcion: "FIE"}
	require.NoError(t, actividades.CrearUnidad(ctx, &fie))

	disponible := models.Actividad{
		IDTipoActividad: tipo.ID, IDEspacio: espacio.ID, IDUnidad: fisc.ID,
		CodigoMatricula: "PON-001", Descripcion: "Sistemas distribuidos",
		Capacidad: 40, Precio: 10, Estado: models.EstadoDisponible,
	}
	require.NoError(t, actividades.Crear(ctx, &disponible))
	cerrada := models.Actividad{
		IDTipoActividad: tipo.ID, IDEspacio: espacio.ID, IDUnidad: fie.ID,
		CodigoMatricula: "PON-002", Descripcion: "Bases de datos",
		Capacidad: 40, Precio: 10, Estado: models.EstadoCerrada,
	}
	require.NoError(t, actividades.Crear(ctx, &cerrada))

	// Two seats taken in the disponible activity.
	require.NoError(t, inscripciones.RunInTx(ctx, func(s inscripcionservice.Store) error {
		for _, idPersona := range []int64{1, 2} {
			err := s.Insertar(ctx, &inscripcionmodels.Inscripcion{
				IDPersona: idPersona, IDActividad: disponible.ID, IDPaquete: 1, IDUsuarioRegistro: 1,
			})
			if err != nil {
				return err
			}
		}
		return nil
	}))

	svc := service.New(actividades, inscripciones)
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return r
}

type listado struct {
	Success bool `json:"success"`
	Total   int  `json:"total"`
	Data    []struct {
		CodigoMatricula  string `json:"codigo_matricula"`
		Unidad           string `json:"unidad"`
		Inscritos        int    `json:"inscritos"`
		CuposDisponibles int    `json:"cupos_disponibles"`
		Espacio          struct {
			Nombre string `json:"nombre"`
		} `json:"espacio"`
	} `json:"data"`
}

func listar(t *testing.T, router http.Handler, url string) listado {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp listado
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestListarActividades(t *testing.T) {
	router := newRouter(t)

	// Without filters only disponibles are listed.
	resp := listar(t, router, "/api/actividades")
	require.True(t, resp.Success)
	require.Equal(t, 1, resp.Total)
	require.Equal(t, "PON-001", resp.Data[0].CodigoMatricula)
	require.Equal(t, "Auditorio", resp.Data[0].Espacio.Nombre)
	require.Equal(t, 2, resp.Data[0].Inscritos)
	require.Equal(t, 38, resp.Data[0].CuposDisponibles)
}

func TestListarActividadesFiltros(t *testing.T) {
	router := newRouter(t)

	resp := listar(t, router, "/api/actividades?estado=cerrada")
	require.Equal(t, 1, resp.Total)
	require.Equal(t, "PON-002", resp.Data[0].CodigoMatricula)

	resp = listar(t, router, "/api/actividades?unidad=fie&estado=cerrada")
	require.Equal(t, 1, resp.Total)

	resp = listar(t, router, "/api/actividades?tipo=tour")
	require.Zero(t, resp.Total)
}

func TestListarActividadesEstadoInvalido(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/actividades?estado=abierta", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
