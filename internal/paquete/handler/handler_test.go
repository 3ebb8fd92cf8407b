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

	"coicit/internal/paquete/models"
	"coicit/internal/paquete/service"
	"coicit/internal/paquete/store"
	personamodels "coicit/internal/persona/models"
)

func fecha(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	paquetes := store.NewInMemory()
	ctx := context.Background()

	completo := &models.Paquete{Descripcion: "Paquete Completo", CostoBase: 50}
	require.NoError(t, paquetes.Crear(ctx, completo))
	require.NoError(t, paquetes.AgregarTipo(ctx, completo.ID, models.DetalleEstructura{
		IDTipoActividad: 1, TipoDescripcion: "ponencia", CantidadMaxima: 3,
	}))
	require.NoError(t, paquetes.AgregarTarifa(ctx, models.Tarifa{
		IDPaquete: completo.ID, Segmento: personamodels.TipoEstudianteActivo,
		Costo: 10, VigenciaDesde: fecha(2025, 1, 1),
	}))
	require.NoError(t, paquetes.AgregarTarifa(ctx, models.Tarifa{
		IDPaquete: completo.ID, Segmento: personamodels.TipoEstudianteActivo,
		Costo: 20, VigenciaDesde: fecha(2025, 9, 1),
	}))
	require.NoError(t, paquetes.AgregarTarifa(ctx, models.Tarifa{
		IDPaquete: completo.ID, Segmento: personamodels.TipoExterno,
		Costo: 60, VigenciaDesde: fecha(2025, 1, 1),
	}))

	svc := service.New(paquetes)
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func listar(t *testing.T, router http.Handler, url string) listarDecoded {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp listarDecoded
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

type listarDecoded struct {
	Success bool `json:"success"`
	Data    []struct {
		Nombre         string             `json:"nombre"`
		Tarifas        map[string]float64 `json:"tarifas"`
		TiposIncluidos []struct {
			Nombre string `json:"nombre"`
		} `json:"tipos_actividad_incluidos"`
	} `json:"data"`
	SegmentoInfo *struct {
		Descripcion string `json:"descripcion"`
	} `json:"segmento_info"`
}

func TestListarPaquetesResuelveTarifaVigente(t *testing.T) {
	router := newRouter(t)

	resp := listar(t, router, "/api/paquetes?fecha=2025-06-15")
	require.Len(t, resp.Data, 1)
	require.Equal(t, 10.0, resp.Data[0].Tarifas["estudiante_activo"])
	require.Equal(t, 60.0, resp.Data[0].Tarifas["externo"])

	resp = listar(t, router, "/api/paquetes?fecha=2025-09-01")
	require.Equal(t, 20.0, resp.Data[0].Tarifas["estudiante_activo"])
}

func TestListarPaquetesFiltraSegmento(t *testing.T) {
	router := newRouter(t)

	resp := listar(t, router, "/api/paquetes?fecha=2025-06-15&segmento=estudiante_activo")
	require.Len(t, resp.Data[0].Tarifas, 1)
	require.Equal(t, 10.0, resp.Data[0].Tarifas["estudiante_activo"])
	require.NotNil(t, resp.SegmentoInfo)
	require.Equal(t, "Estudiante Activo", resp.SegmentoInfo.Descripcion)
}

func TestListarPaquetesValidaEntrada(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/paquetes?fecha=15-06-2025", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/paquetes?segmento=becario", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
