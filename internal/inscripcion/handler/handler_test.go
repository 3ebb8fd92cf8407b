package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	actmodels "coicit/internal/actividad/models"
	actstore "coicit/internal/actividad/store"
	authmodels "coicit/internal/auth/models"
	authstore "coicit/internal/auth/store"
	"coicit/internal/inscripcion/service"
	"coicit/internal/inscripcion/store"
	paquetemodels "coicit/internal/paquete/models"
	paquetestore "coicit/internal/paquete/store"
	personamodels "coicit/internal/persona/models"
	personastore "coicit/internal/persona/store"
)

type ids struct {
	persona, actividad, paquete, usuario int64
}

func newRouter(t *testing.T) (http.Handler, ids) {
	t.Helper()
	ctx := context.Background()

	personas := personastore.NewInMemory()
	actividades := actstore.NewInMemory()
	paquetes := paquetestore.NewInMemory()
	usuarios := authstore.NewInMemory()
	inscripciones := store.NewInMemory(actividades, paquetes)

	persona := personamodels.Persona{
		Cedula: "8-1001-1001", PrimerNombre: "María", PrimerApellido: "González",
		TipoPersona: personamodels.TipoEstudianteActivo,
	}
	require.NoError(t, personas.Crear(ctx, &persona))

	tipo := actmodels.TipoActividad{Descripcion: "ponencia"}
	require.NoError(t, actividades.CrearTipo(ctx, &tipo))
	espacio := actmodels.Espacio{Descripcion: "Auditorio", Capacidad: 50, Ubicacion: "Edificio 1"}
	require.NoError(t, actividades.CrearEspacio(ctx, &espacio))
	unidad := actmodels.Unidad{Descripcion: "FISC"}
	require.NoError(t, actividades.CrearUnidad(ctx, &unidad))
	actividad := actmodels.Actividad{
		IDTipoActividad: tipo.ID, IDEspacio: espacio.ID, IDUnidad: unidad.ID,
		CodigoMatricula: "PON-001", Descripcion: "Sistemas distribuidos",
		Capacidad: 50, Estado: actmodels.EstadoDisponible,
	}
	require.NoError(t, actividades.Crear(ctx, &actividad))

	paquete := paquetemodels.Paquete{Descripcion: "Paquete Ponencias"}
	require.NoError(t, paquetes.Crear(ctx, &paquete))
	require.NoError(t, paquetes.AgregarTipo(ctx, paquete.ID, paquetemodels.DetalleEstructura{
		IDTipoActividad: tipo.ID, TipoDescripcion: "ponencia", CantidadMaxima: 2,
	}))

	usuario := authmodels.Usuario{Apodo: "captador1", Contrasena: "x", Rol: authmodels.RolCaptador, IDPersona: persona.ID}
	require.NoError(t, usuarios.Crear(ctx, &usuario))

	svc := service.New(personas, actividades, paquetes, usuarios, inscripciones, nil)
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return r, ids{persona: persona.ID, actividad: actividad.ID, paquete: paquete.ID, usuario: usuario.ID}
}

func post(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/inscripciones", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func cuerpo(i ids) string {
	return fmt.Sprintf(`{"id_persona":%d,"id_actividad":%d,"id_paquete":%d,"id_usuario_registro":%d}`,
		i.persona, i.actividad, i.paquete, i.usuario)
}

func TestCrearInscripcionEndpoint(t *testing.T) {
	router, ids := newRouter(t)

	rec := post(router, cuerpo(ids))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			ID      int64 `json:"id_inscripcion"`
			Persona struct {
				NombreCompleto string `json:"nombre_completo"`
			} `json:"persona"`
			Actividad struct {
				CodigoMatricula string `json:"codigo_matricula"`
			} `json:"actividad"`
			UsuarioRegistro struct {
				Apodo string `json:"apodo_usuario"`
			} `json:"usuario_registro"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Equal(t, "Inscripción registrada exitosamente", resp.Message)
	require.NotZero(t, resp.Data.ID)
	require.Equal(t, "María González", resp.Data.Persona.NombreCompleto)
	require.Equal(t, "PON-001", resp.Data.Actividad.CodigoMatricula)
	require.Equal(t, "captador1", resp.Data.UsuarioRegistro.Apodo)
}

func TestCrearInscripcionDuplicada(t *testing.T) {
	router, ids := newRouter(t)

	require.Equal(t, http.StatusCreated, post(router, cuerpo(ids)).Code)

	rec := post(router, cuerpo(ids))
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.False(t, resp.Success)
	require.Equal(t, "Ya estás inscrito en esta actividad", resp.Error)
}

func TestCrearInscripcionValidaEntrada(t *testing.T) {
	router, _ := newRouter(t)

	rec := post(router, `{"id_persona":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(router, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(router, `{"id_persona":-1,"id_actividad":1,"id_paquete":1,"id_usuario_registro":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
