// Package handler exposes participant search and registration endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"coicit/internal/persona/models"
	"coicit/internal/platform/metrics"
	"coicit/internal/platform/validation"
	"coicit/pkg/platform/httputil"
	"coicit/pkg/requestcontext"
)

// Service defines the participant operations the handler needs.
type Service interface {
	Buscar(ctx context.Context, cedula string) (*models.Persona, bool, error)
	Registrar(ctx context.Context, nueva models.Persona) (*models.Persona, error)
}

// Handler wires participant endpoints to the persona service.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a persona handler.
func New(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{service: service, logger: logger, metrics: m}
}

// Register mounts the persona routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/personas/buscar", h.handleBuscar)
	r.Post("/api/personas/registrar", h.handleRegistrar)
}

func (h *Handler) handleBuscar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cedula := r.URL.Query().Get("cedula")

	persona, found, err := h.service.Buscar(ctx, cedula)
	if err != nil {
		h.logger.ErrorContext(ctx, "buscar persona failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if !found {
		// A miss is not an error for the caller; the page offers registration.
		httputil.WriteJSON(w, http.StatusOK, buscarResponse{
			Success: false,
			Found:   false,
			Message: "Persona no encontrada",
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, buscarResponse{
		Success: true,
		Found:   true,
		Data:    newPersonaData(persona),
	})
}

func (h *Handler) handleRegistrar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registrarRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	persona, err := h.service.Registrar(ctx, req.toPersona())
	if err != nil {
		h.logger.WarnContext(ctx, "registrar persona rejected",
			"request_id", requestcontext.RequestID(ctx),
			"cedula", req.Cedula,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.PersonasRegistradas.Inc()
	}
	httputil.WriteMessage(w, http.StatusCreated, newPersonaData(persona), "Persona registrada exitosamente")
}
