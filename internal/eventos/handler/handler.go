// Package handler exposes the file-backed activity listing. It serves the
// published events.json directly, with no database involved, so the catalog
// stays browsable before the import has run.
package handler

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"coicit/internal/eventos"
	"coicit/pkg/platform/httputil"
	"coicit/pkg/requestcontext"
)

// Handler serves activities straight from the events feed file.
type Handler struct {
	archivo string
	anio    int
	logger  *slog.Logger
}

// New constructs an eventos handler for the given feed file and year.
func New(archivo string, anio int, logger *slog.Logger) *Handler {
	return &Handler{archivo: archivo, anio: anio, logger: logger}
}

// Register mounts the file-backed listing route.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/actividades-json", h.handleListar)
}

func (h *Handler) handleListar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	tipo := q.Get("tipo")
	unidad := q.Get("unidad")
	estado := q.Get("estado")
	if estado == "" {
		estado = "disponible"
	}

	// Reading per request keeps the endpoint hot-reloadable: dropping a new
	// feed file in place is all it takes to update the listing.
	registros, err := eventos.CargarArchivo(h.archivo)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			h.logger.ErrorContext(ctx, "leer archivo de eventos failed",
				"request_id", requestcontext.RequestID(ctx),
				"archivo", h.archivo,
				"error", err,
			)
		}
		cero := 0
		httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{
			Success: true,
			Data:    []actividadJSON{},
			Total:   &cero,
			Message: "No se pudieron cargar actividades desde el archivo",
		})
		return
	}

	rows := make([]actividadJSON, 0, len(registros))
	for _, registro := range registros {
		if eventos.MapearEstado(registro.Status) != estado && registro.Status != estado {
			continue
		}
		if tipo != "" && registro.Type != tipo {
			continue
		}
		if unidad != "" && !strings.Contains(strings.ToLower(registro.Faculty), strings.ToLower(unidad)) {
			continue
		}

		row, err := h.newActividadJSON(registro, len(rows)+1)
		if err != nil {
			h.logger.WarnContext(ctx, "registro de evento inválido",
				"request_id", requestcontext.RequestID(ctx),
				"codigo", registro.Code,
				"error", err,
			)
			continue
		}
		rows = append(rows, row)
	}
	httputil.WriteList(w, rows, len(rows))
}

func (h *Handler) newActividadJSON(registro eventos.Registro, id int) (actividadJSON, error) {
	fecha, err := eventos.ParseFecha(registro.Date, h.anio)
	if err != nil {
		return actividadJSON{}, err
	}
	inicio, fin, err := eventos.ParseRangoHoras(registro.Time)
	if err != nil {
		return actividadJSON{}, err
	}

	expositor := registro.Speaker
	if expositor == "" {
		expositor = "No especificado"
	}
	cupos := 30
	if registro.Capacity != nil {
		cupos = *registro.Capacity
	}
	return actividadJSON{
		ID:               strconv.Itoa(id),
		CodigoMatricula:  registro.Code,
		Descripcion:      registro.Title,
		Expositor:        expositor,
		FechaHoraInicio:  inicio.Sobre(fecha).Format("2006-01-02 15:04"),
		FechaHoraFin:     fin.Sobre(fecha).Format("2006-01-02 15:04"),
		Ubicacion:        registro.Location,
		Facultad:         registro.Faculty,
		Tipo:             registro.Type,
		Estado:           registro.Status,
		CuposDisponibles: cupos,
		CuposTotales:     cupos,
	}, nil
}

type actividadJSON struct {
	ID               string `json:"id"`
	CodigoMatricula  string `json:"codigo_matricula"`
	Descripcion      string `json:"descripcion_actividad"`
	Expositor        string `json:"expositor"`
	FechaHoraInicio  string `json:"fecha_hora_inicio"`
	FechaHoraFin     string `json:"fecha_hora_fin"`
	Ubicacion        string `json:"ubicacion"`
	Facultad         string `json:"facultad"`
	Tipo             string `json:"tipo"`
	Estado           string `json:"estado"`
	CuposDisponibles int    `json:"cupos_disponibles"`
	CuposTotales     int    `json:"cupos_totales"`
}
