package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coicit/internal/persona/models"
	"coicit/pkg/platform/pgerr"
	"coicit/pkg/platform/sentinel"
)

const columnasPersona = `id_persona, cedula, primer_nombre, segundo_nombre,
	primer_apellido, segundo_apellido, correo, telefono, tipo_persona`

// Postgres persists personas in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed persona store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Crear inserts p and fills in its generated ID. Duplicate cedulas surface as
// sentinel.ErrConflict via the unique constraint, classified by name rather
// than message text.
func (s *Postgres) Crear(ctx context.Context, p *models.Persona) error {
	query := `
		INSERT INTO persona (cedula, primer_nombre, segundo_nombre,
			primer_apellido, segundo_apellido, correo, telefono, tipo_persona)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id_persona
	`
	err := s.db.QueryRowContext(ctx, query,
		p.Cedula, p.PrimerNombre, nullString(p.SegundoNombre),
		p.PrimerApellido, nullString(p.SegundoApellido),
		nullString(p.Correo), nullString(p.Telefono), string(p.TipoPersona),
	).Scan(&p.ID)
	if err != nil {
		if pgerr.IsUniqueViolation(err, "uq_persona_cedula") {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert persona: %w", err)
	}
	return nil
}

// BuscarPorCedula finds a persona by exact cedula match.
func (s *Postgres) BuscarPorCedula(ctx context.Context, cedula string) (*models.Persona, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+columnasPersona+` FROM persona WHERE cedula = $1`, cedula)
	return scanPersona(row)
}

// BuscarPorID finds a persona by primary key.
func (s *Postgres) BuscarPorID(ctx context.Context, id int64) (*models.Persona, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+columnasPersona+` FROM persona WHERE id_persona = $1`, id)
	return scanPersona(row)
}

// BuscarPorNombre finds the first persona matching first name and first
// surname, case-insensitively. Used by the event importer to dedupe speakers.
func (s *Postgres) BuscarPorNombre(ctx context.Context, primerNombre, primerApellido string) (*models.Persona, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+columnasPersona+` FROM persona
		 WHERE lower(primer_nombre) = lower($1) AND lower(primer_apellido) = lower($2)
		 ORDER BY id_persona LIMIT 1`,
		primerNombre, primerApellido)
	return scanPersona(row)
}

func scanPersona(row *sql.Row) (*models.Persona, error) {
	var p models.Persona
	var segundoNombre, segundoApellido, correo, telefono sql.NullString
	err := row.Scan(&p.ID, &p.Cedula, &p.PrimerNombre, &segundoNombre,
		&p.PrimerApellido, &segundoApellido, &correo, &telefono, &p.TipoPersona)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan persona: %w", err)
	}
	p.SegundoNombre = segundoNombre.String
	p.SegundoApellido = segundoApellido.String
	p.Correo = correo.String
	p.Telefono = telefono.String
	return &p, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
