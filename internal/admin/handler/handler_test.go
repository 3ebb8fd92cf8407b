package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	actmodels "coicit/internal/actividad/models"
	actstore "coicit/internal/actividad/store"
	adminservice "coicit/internal/admin/service"
	adminstore "coicit/internal/admin/store"
	authmodels "coicit/internal/auth/models"
	authservice "coicit/internal/auth/service"
	authstore "coicit/internal/auth/store"
	"coicit/internal/auth/token"
	inscripcionmodels "coicit/internal/inscripcion/models"
	inscripcionservice "coicit/internal/inscripcion/service"
	inscripcionstore "coicit/internal/inscripcion/store"
	paquetemodels "coicit/internal/paquete/models"
	paquetestore "coicit/internal/paquete/store"
	personamodels "coicit/internal/persona/models"
	personastore "coicit/internal/persona/store"
)

type entorno struct {
	router http.Handler
	tokens *token.Service

	admin    authmodels.Usuario
	captador authmodels.Usuario
}

func newEntorno(t *testing.T) *entorno {
	t.Helper()
	ctx := context.Background()

	personas := personastore.NewInMemory()
	actividades := actstore.NewInMemory()
	paquetes := paquetestore.NewInMemory()
	usuarios := authstore.NewInMemory()
	inscripciones := inscripcionstore.NewInMemory(actividades, paquetes)

	participante := personamodels.Persona{
		Cedula: "8-1001-1001", PrimerNombre: "María", PrimerApellido: "González",
		TipoPersona: personamodels.TipoEstudianteActivo,
	}
	require.NoError(t, personas.Crear(ctx, &participante))
	externo := personamodels.Persona{
		Cedula: "8-1002-1002", PrimerNombre: "Luis", PrimerApellido: "Pérez",
		TipoPersona: personamodels.TipoExterno,
	}
	require.NoError(t, personas.Crear(ctx, &externo))

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
	cerrada := actmodels.Actividad{
		IDTipoActividad: tipo.ID, IDEspacio: espacio.ID, IDUnidad: unidad.ID,
		CodigoMatricula: "PON-002", Descripcion: "Bases de datos",
		Capacidad: 50, Estado: actmodels.EstadoCerrada,
	}
	require.NoError(t, actividades.Crear(ctx, &cerrada))

	paquete := paquetemodels.Paquete{Descripcion: "Paquete Ponencias"}
	require.NoError(t, paquetes.Crear(ctx, &paquete))
	require.NoError(t, paquetes.AgregarTarifa(ctx, paquetemodels.Tarifa{
		IDPaquete: paquete.ID, Segmento: personamodels.TipoEstudianteActivo,
		Costo: 15, VigenciaDesde: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	hash, err := bcrypt.GenerateFromPassword([]byte("coicit2025"), bcrypt.MinCost)
	require.NoError(t, err)
	e := &entorno{tokens: token.New("clave-de-prueba", time.Hour)}
	e.admin = authmodels.Usuario{Apodo: "admin", Contrasena: string(hash), Rol: authmodels.RolAdmin, IDPersona: participante.ID}
	require.NoError(t, usuarios.Crear(ctx, &e.admin))
	e.captador = authmodels.Usuario{Apodo: "captador1", Contrasena: string(hash), Rol: authmodels.RolCaptador, IDPersona: externo.ID}
	require.NoError(t, usuarios.Crear(ctx, &e.captador))

	require.NoError(t, inscripciones.RunInTx(ctx, func(store inscripcionservice.Store) error {
		return store.Insertar(ctx, &inscripcionmodels.Inscripcion{
			IDPersona: participante.ID, IDActividad: actividad.ID, IDPaquete: paquete.ID,
			IDUsuarioRegistro: e.captador.ID,
			FechaInscripcion:  time.Date(2025, 9, 23, 0, 0, 0, 0, time.UTC),
			HoraInscripcion:   time.Date(2025, 9, 23, 9, 0, 0, 0, time.UTC),
		})
	}))

	sesiones := authservice.New(usuarios, personas, e.tokens)
	svc := adminservice.New(adminstore.NewInMemory(personas, actividades, paquetes, inscripciones))
	h := New(svc, sesiones, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	e.router = r
	return e
}

func (e *entorno) get(t *testing.T, usuario *authmodels.Usuario) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/estadisticas", nil)
	if usuario != nil {
		firmado, err := e.tokens.Emitir(usuario, time.Now())
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+firmado)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestEstadisticas(t *testing.T) {
	e := newEntorno(t)

	rec := e.get(t, &e.admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			TotalInscripciones   int            `json:"total_inscripciones"`
			TotalRecaudado       float64        `json:"total_recaudado"`
			PersonasPorTipo      map[string]int `json:"personas_por_tipo"`
			ActividadesPorEstado map[string]int `json:"actividades_por_estado"`
			Recientes            []struct {
				Persona   string `json:"persona"`
				Actividad string `json:"actividad"`
			} `json:"inscripciones_recientes"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Equal(t, 1, resp.Data.TotalInscripciones)
	require.Equal(t, 15.0, resp.Data.TotalRecaudado)
	require.Equal(t, 1, resp.Data.PersonasPorTipo["estudiante_activo"])
	require.Equal(t, 1, resp.Data.PersonasPorTipo["externo"])
	require.Equal(t, 1, resp.Data.ActividadesPorEstado["disponible"])
	require.Equal(t, 1, resp.Data.ActividadesPorEstado["cerrada"])
	require.Len(t, resp.Data.Recientes, 1)
	require.Equal(t, "María González", resp.Data.Recientes[0].Persona)
	require.Equal(t, "Sistemas distribuidos", resp.Data.Recientes[0].Actividad)
}

func TestEstadisticasRequiereAdmin(t *testing.T) {
	e := newEntorno(t)

	require.Equal(t, http.StatusUnauthorized, e.get(t, nil).Code)
	require.Equal(t, http.StatusForbidden, e.get(t, &e.captador).Code)
}
