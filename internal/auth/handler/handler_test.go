package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authmodels "coicit/internal/auth/models"
	"coicit/internal/auth/service"
	authstore "coicit/internal/auth/store"
	"coicit/internal/auth/token"
	personamodels "coicit/internal/persona/models"
	personastore "coicit/internal/persona/store"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	personas := personastore.NewInMemory()
	admin := personamodels.Persona{
		Cedula:         "8-1001-1001",
		PrimerNombre:   "María",
		PrimerApellido: "González",
		TipoPersona:    personamodels.TipoAdministrativo,
	}
	require.NoError(t, personas.Crear(ctx, &admin))

	hash, err := bcrypt.GenerateFromPassword([]byte("coicit2025"), bcrypt.DefaultCost)
	require.NoError(t, err)

	usuarios := authstore.NewInMemory()
	require.NoError(t, usuarios.Crear(ctx, &authmodels.Usuario{
		Apodo:      "admin",
		Contrasena: string(hash),
		Rol:        authmodels.RolAdmin,
		IDPersona:  admin.ID,
	}))

	tokens := token.New("clave-de-prueba", time.Hour)
	svc := service.New(usuarios, personas, tokens)
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func postLogin(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginAdmin(t *testing.T) {
	router := newRouter(t)

	rec := postLogin(router, `{"apodo_usuario":"admin","contrasena":"coicit2025"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Usuario struct {
				Apodo   string `json:"apodo_usuario"`
				Rol     string `json:"rol"`
				Persona struct {
					NombreCompleto string `json:"nombre_completo"`
					Cedula         string `json:"cedula"`
				} `json:"persona"`
			} `json:"usuario"`
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Equal(t, "admin", resp.Data.Usuario.Apodo)
	require.Equal(t, "admin", resp.Data.Usuario.Rol)
	require.Equal(t, "María González", resp.Data.Usuario.Persona.NombreCompleto)
	require.Equal(t, "8-1001-1001", resp.Data.Usuario.Persona.Cedula)
	require.NotEmpty(t, resp.Data.Token)
}

func TestLoginRechazaCredencialesInvalidas(t *testing.T) {
	router := newRouter(t)

	rec := postLogin(router, `{"apodo_usuario":"admin","contrasena":"incorrecta"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.False(t, resp.Success)
	require.Equal(t, "Usuario o contraseña incorrectos", resp.Error)

	// Unknown accounts answer identically to wrong passwords.
	rec = postLogin(router, `{"apodo_usuario":"nadie","contrasena":"coicit2025"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginValidaEntrada(t *testing.T) {
	router := newRouter(t)

	rec := postLogin(router, `{"apodo_usuario":"admin"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postLogin(router, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
