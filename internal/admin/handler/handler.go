// Package handler exposes the admin statistics dashboard.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"coicit/internal/admin/service"
	authmodels "coicit/internal/auth/models"
	dErrors "coicit/pkg/domain-errors"
	"coicit/pkg/platform/httputil"
	"coicit/pkg/requestcontext"
)

// Service defines the aggregation operations the handler needs.
type Service interface {
	Estadisticas(ctx context.Context) (*service.Estadisticas, error)
}

// Sesiones resolves the staff account behind a bearer token.
type Sesiones interface {
	Validar(ctx context.Context, token string) (*authmodels.Usuario, error)
}

// Handler wires the dashboard endpoint, gated to admin accounts.
type Handler struct {
	service  Service
	sesiones Sesiones
	logger   *slog.Logger
}

// New constructs an admin handler.
func New(service Service, sesiones Sesiones, logger *slog.Logger) *Handler {
	return &Handler{service: service, sesiones: sesiones, logger: logger}
}

// Register mounts the dashboard route.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/admin/estadisticas", h.handleEstadisticas)
}

func (h *Handler) handleEstadisticas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	usuario, err := h.autorizar(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	stats, err := h.service.Estadisticas(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "estadisticas failed",
			"request_id", requestcontext.RequestID(ctx),
			"usuario", usuario.Apodo,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, stats)
}

func (h *Handler) autorizar(r *http.Request) (*authmodels.Usuario, error) {
	encabezado := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(encabezado, "Bearer ")
	if !ok || token == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Token requerido")
	}
	usuario, err := h.sesiones.Validar(r.Context(), token)
	if err != nil {
		return nil, err
	}
	if usuario.Rol != authmodels.RolAdmin {
		return nil, dErrors.New(dErrors.CodeForbidden, "Acceso restringido a administradores")
	}
	return usuario, nil
}
