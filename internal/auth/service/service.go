// Package service authenticates staff accounts.
package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"coicit/internal/auth/models"
	"coicit/internal/auth/token"
	personamodels "coicit/internal/persona/models"
	dErrors "coicit/pkg/domain-errors"
	"coicit/pkg/platform/sentinel"
	"coicit/pkg/requestcontext"
)

// Store is the persistence surface authentication needs.
type Store interface {
	BuscarPorApodo(ctx context.Context, apodo string) (*models.Usuario, error)
	BuscarPorID(ctx context.Context, id int64) (*models.Usuario, error)
}

// Personas resolves the persona behind a staff account.
type Personas interface {
	BuscarPorID(ctx context.Context, id int64) (*personamodels.Persona, error)
}

// Sesion is the outcome of a successful login.
type Sesion struct {
	Usuario models.Usuario
	Persona personamodels.Persona
	Token   string
}

// Service verifies credentials and issues session tokens.
type Service struct {
	usuarios Store
	personas Personas
	tokens   *token.Service
}

// New constructs an auth service.
func New(usuarios Store, personas Personas, tokens *token.Service) *Service {
	return &Service{usuarios: usuarios, personas: personas, tokens: tokens}
}

// errCredenciales deliberately does not say whether the account exists.
func errCredenciales() error {
	return dErrors.New(dErrors.CodeUnauthorized, "Usuario o contraseña incorrectos")
}

// Login verifies the apodo/contrasena pair and returns a signed session.
func (s *Service) Login(ctx context.Context, apodo, contrasena string) (*Sesion, error) {
	if apodo == "" || contrasena == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Usuario y contraseña son requeridos")
	}

	usuario, err := s.usuarios.BuscarPorApodo(ctx, apodo)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, errCredenciales()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "buscar usuario")
	}
	if bcrypt.CompareHashAndPassword([]byte(usuario.Contrasena), []byte(contrasena)) != nil {
		return nil, errCredenciales()
	}

	persona, err := s.personas.BuscarPorID(ctx, usuario.IDPersona)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "buscar persona del usuario")
	}

	firmado, err := s.tokens.Emitir(usuario, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "firmar token")
	}
	return &Sesion{Usuario: *usuario, Persona: *persona, Token: firmado}, nil
}

// Validar resolves the usuario behind a session token.
func (s *Service) Validar(ctx context.Context, tokenString string) (*models.Usuario, error) {
	claims, err := s.tokens.Validar(tokenString)
	if err != nil {
		return nil, err
	}
	id, err := claims.UsuarioID()
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Token inválido")
	}
	usuario, err := s.usuarios.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "Token inválido")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "buscar usuario del token")
	}
	return usuario, nil
}
