// Package handler exposes the enrollment endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"coicit/internal/inscripcion/service"
	"coicit/internal/platform/validation"
	dErrors "coicit/pkg/domain-errors"
	"coicit/pkg/platform/httputil"
	"coicit/pkg/requestcontext"
)

// Service defines the enrollment operations the handler needs.
type Service interface {
	Crear(ctx context.Context, sol service.Solicitud) (*service.Recibo, error)
}

// Handler wires the enrollment endpoint to the inscripcion service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an inscripcion handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the enrollment route.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/inscripciones", h.handleCrear)
}

func (h *Handler) handleCrear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req crearRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	recibo, err := h.service.Crear(ctx, req.toSolicitud())
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "crear inscripcion failed",
				"request_id", requestcontext.RequestID(ctx),
				"persona", req.IDPersona,
				"actividad", req.IDActividad,
				"error", err,
			)
		} else {
			h.logger.WarnContext(ctx, "crear inscripcion rejected",
				"request_id", requestcontext.RequestID(ctx),
				"persona", req.IDPersona,
				"actividad", req.IDActividad,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteMessage(w, http.StatusCreated, newReciboData(recibo), "Inscripción registrada exitosamente")
}
