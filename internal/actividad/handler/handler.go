// Package handler exposes the activity catalog endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"coicit/internal/actividad/models"
	"coicit/pkg/platform/httputil"
	"coicit/pkg/requestcontext"
)

// Service defines the catalog operations the handler needs.
type Service interface {
	Listar(ctx context.Context, filtro models.Filtro) ([]models.Detalle, error)
}

// Handler wires the catalog endpoint to the actividad service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an actividad handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the catalog route.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/actividades", h.handleListar)
}

func (h *Handler) handleListar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	filtro := models.Filtro{
		Tipo:   q.Get("tipo"),
		Unidad: q.Get("unidad"),
		Estado: models.Estado(q.Get("estado")),
	}

	detalles, err := h.service.Listar(ctx, filtro)
	if err != nil {
		h.logger.ErrorContext(ctx, "listar actividades failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	rows := make([]actividadRow, 0, len(detalles))
	for _, d := range detalles {
		rows = append(rows, newActividadRow(d))
	}
	httputil.WriteList(w, rows, len(rows))
}
