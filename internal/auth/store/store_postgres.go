// Package store persists staff accounts.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coicit/internal/auth/models"
	"coicit/pkg/platform/pgerr"
	"coicit/pkg/platform/sentinel"
)

const columnasUsuario = "id_usuario, apodo_usuario, contrasena_usuario, rol, id_persona"

// Postgres is the production usuario store.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a Postgres-backed usuario store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Crear inserts a usuario; a duplicated apodo maps to ErrConflict.
func (s *Postgres) Crear(ctx context.Context, u *models.Usuario) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO usuarios (apodo_usuario, contrasena_usuario, rol, id_persona)
		VALUES ($1, $2, $3, $4)
		RETURNING id_usuario`,
		u.Apodo, u.Contrasena, u.Rol, u.IDPersona,
	).Scan(&u.ID)
	if err != nil {
		if pgerr.IsUniqueViolation(err, "uq_usuarios_apodo") {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// BuscarPorApodo returns the usuario with the given login name.
func (s *Postgres) BuscarPorApodo(ctx context.Context, apodo string) (*models.Usuario, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+columnasUsuario+" FROM usuarios WHERE apodo_usuario = $1", apodo)
	return scanUsuario(row)
}

// BuscarPorID returns the usuario with the given id.
func (s *Postgres) BuscarPorID(ctx context.Context, id int64) (*models.Usuario, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+columnasUsuario+" FROM usuarios WHERE id_usuario = $1", id)
	return scanUsuario(row)
}

func scanUsuario(row *sql.Row) (*models.Usuario, error) {
	var u models.Usuario
	err := row.Scan(&u.ID, &u.Apodo, &u.Contrasena, &u.Rol, &u.IDPersona)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan usuario: %w", err)
	}
	return &u, nil
}
