// Package handler exposes the staff login endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"coicit/internal/auth/service"
	"coicit/internal/platform/metrics"
	"coicit/internal/platform/validation"
	dErrors "coicit/pkg/domain-errors"
	"coicit/pkg/platform/httputil"
	"coicit/pkg/requestcontext"
)

// Service defines the authentication operations the handler needs.
type Service interface {
	Login(ctx context.Context, apodo, contrasena string) (*service.Sesion, error)
}

// Handler wires the login endpoint to the auth service.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs an auth handler.
func New(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{service: service, logger: logger, metrics: m}
}

// Register mounts the auth routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/auth/login", h.handleLogin)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	sesion, err := h.service.Login(ctx, req.Apodo, req.Contrasena)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeUnauthorized {
			h.logger.WarnContext(ctx, "login rejected",
				"request_id", requestcontext.RequestID(ctx),
				"apodo", req.Apodo,
			)
			h.incLogin("fallido")
		}
		httputil.WriteError(w, err)
		return
	}

	h.incLogin("ok")
	httputil.WriteMessage(w, http.StatusOK, newSesionData(sesion), "Inicio de sesión exitoso")
}

func (h *Handler) incLogin(resultado string) {
	if h.metrics != nil {
		h.metrics.IncLogin(resultado)
	}
}
