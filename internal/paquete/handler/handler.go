// Package handler exposes the package pricing endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"coicit/internal/paquete/service"
	personamodels "coicit/internal/persona/models"
	dErrors "coicit/pkg/domain-errors"
	"coicit/pkg/platform/httputil"
	"coicit/pkg/requestcontext"
)

// Service defines the pricing operations the handler needs.
type Service interface {
	Listar(ctx context.Context, segmento personamodels.TipoPersona, fecha time.Time) ([]service.Resuelto, *service.SegmentoInfo, error)
}

// Handler wires the pricing endpoint to the paquete service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a paquete handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the pricing route.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/paquetes", h.handleListar)
}

func (h *Handler) handleListar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	fecha := requestcontext.Now(ctx)
	if raw := q.Get("fecha"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Fecha inválida, se espera AAAA-MM-DD"))
			return
		}
		fecha = parsed
	}

	segmento := personamodels.TipoPersona(q.Get("segmento"))
	resueltos, info, err := h.service.Listar(ctx, segmento, fecha)
	if err != nil {
		h.logger.ErrorContext(ctx, "listar paquetes failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	rows := make([]paqueteRow, 0, len(resueltos))
	for _, p := range resueltos {
		rows = append(rows, newPaqueteRow(p))
	}
	httputil.WriteJSON(w, http.StatusOK, listarResponse{
		Success:       true,
		Data:          rows,
		SegmentoInfo:  info,
		FechaConsulta: fecha.Format("2006-01-02"),
	})
}
