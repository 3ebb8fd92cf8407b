// Package store persists enrollments.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	actmodels "coicit/internal/actividad/models"
	"coicit/internal/inscripcion/models"
	paquetemodels "coicit/internal/paquete/models"
	"coicit/pkg/platform/pgerr"
	"coicit/pkg/platform/sentinel"
)

// Postgres serves the enrollment reads that run outside a transaction.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a Postgres-backed enrollment store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// ContarPorActividad returns the enrollment count per activity id.
func (s *Postgres) ContarPorActividad(ctx context.Context) (map[int64]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id_actividad, COUNT(*)
		FROM inscripciones
		GROUP BY id_actividad`)
	if err != nil {
		return nil, fmt.Errorf("contar inscripciones: %w", err)
	}
	defer rows.Close()

	conteos := make(map[int64]int)
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan conteo: %w", err)
		}
		conteos[id] = n
	}
	return conteos, rows.Err()
}

// ContarPorActividadID returns the enrollment count for one activity.
func (s *Postgres) ContarPorActividadID(ctx context.Context, idActividad int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM inscripciones WHERE id_actividad = $1", idActividad,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("contar inscripciones de actividad: %w", err)
	}
	return n, nil
}

// BuscarPorID returns one enrollment.
func (s *Postgres) BuscarPorID(ctx context.Context, id int64) (*models.Inscripcion, error) {
	var i models.Inscripcion
	var observacion sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id_inscripcion, id_persona, id_actividad, id_paquete, id_usuario,
		       fecha_inscripcion, hora_inscripcion, observacion
		FROM inscripciones WHERE id_inscripcion = $1`, id,
	).Scan(&i.ID, &i.IDPersona, &i.IDActividad, &i.IDPaquete, &i.IDUsuarioRegistro,
		&i.FechaInscripcion, &i.HoraInscripcion, &observacion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan inscripcion: %w", err)
	}
	i.Observacion = observacion.String
	return &i, nil
}

// PostgresTx is the transaction-scoped store the rule checks run against.
type PostgresTx struct {
	tx *sql.Tx
}

// NewPostgresTx wraps an open transaction.
func NewPostgresTx(tx *sql.Tx) *PostgresTx {
	return &PostgresTx{tx: tx}
}

// ActividadParaInscribir locks the activity row and returns it with its
// current enrollment count. Concurrent enrollments for the same activity
// queue on this lock.
func (s *PostgresTx) ActividadParaInscribir(ctx context.Context, id int64) (*actmodels.Actividad, int, error) {
	var a actmodels.Actividad
	var idExpositor sql.NullInt64
	err := s.tx.QueryRowContext(ctx, `
		SELECT id_actividad, id_tipo_actividad, id_espacio, id_unidad, id_expositor,
		       codigo_matricula, descripcion_actividad, fecha_inicio, fecha_final,
		       hora_inicio, hora_final, capacidad_personas,
		       precio_actividad_individual, estado
		FROM actividad
		WHERE id_actividad = $1
		FOR UPDATE`, id,
	).Scan(&a.ID, &a.IDTipoActividad, &a.IDEspacio, &a.IDUnidad, &idExpositor,
		&a.CodigoMatricula, &a.Descripcion, &a.FechaInicio, &a.FechaFinal,
		&a.HoraInicio, &a.HoraFinal, &a.Capacidad, &a.Precio, &a.Estado)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, sentinel.ErrNotFound
		}
		return nil, 0, fmt.Errorf("bloquear actividad: %w", err)
	}
	if idExpositor.Valid {
		a.IDExpositor = &idExpositor.Int64
	}

	var inscritos int
	err = s.tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM inscripciones WHERE id_actividad = $1", id,
	).Scan(&inscritos)
	if err != nil {
		return nil, 0, fmt.Errorf("contar inscritos: %w", err)
	}
	return &a, inscritos, nil
}

// EstructuraPorPaquete returns the package's included activity types.
func (s *PostgresTx) EstructuraPorPaquete(ctx context.Context, idPaquete int64) ([]paquetemodels.DetalleEstructura, error) {
	rows, err := s.tx.QueryContext(ctx, `
		SELECT d.id_tipo_actividad, t.descripcion_tipo_actividad, d.cantidad_maxima
		FROM detalle_estructura_paquete d
		JOIN tipo_actividad t USING (id_tipo_actividad)
		WHERE d.id_paquete = $1`, idPaquete)
	if err != nil {
		return nil, fmt.Errorf("estructura del paquete: %w", err)
	}
	defer rows.Close()

	var out []paquetemodels.DetalleEstructura
	for rows.Next() {
		var d paquetemodels.DetalleEstructura
		if err := rows.Scan(&d.IDTipoActividad, &d.TipoDescripcion, &d.CantidadMaxima); err != nil {
			return nil, fmt.Errorf("scan detalle: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ConteoPorTipo counts the participant's enrollments of one activity type
// under the package.
func (s *PostgresTx) ConteoPorTipo(ctx context.Context, idPersona, idPaquete, idTipoActividad int64) (int, error) {
	var n int
	err := s.tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM inscripciones i
		JOIN actividad a USING (id_actividad)
		WHERE i.id_persona = $1 AND i.id_paquete = $2 AND a.id_tipo_actividad = $3`,
		idPersona, idPaquete, idTipoActividad,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("conteo por tipo: %w", err)
	}
	return n, nil
}

// ExisteInscripcion reports whether the participant already holds a seat in
// the activity.
func (s *PostgresTx) ExisteInscripcion(ctx context.Context, idPersona, idActividad int64) (bool, error) {
	var existe bool
	err := s.tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM inscripciones
			WHERE id_persona = $1 AND id_actividad = $2
		)`, idPersona, idActividad,
	).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("verificar inscripción: %w", err)
	}
	return existe, nil
}

// Insertar records the enrollment; a duplicated (persona, actividad) pair
// maps to ErrConflict.
func (s *PostgresTx) Insertar(ctx context.Context, i *models.Inscripcion) error {
	err := s.tx.QueryRowContext(ctx, `
		INSERT INTO inscripciones
			(id_persona, id_actividad, id_paquete, id_usuario,
			 fecha_inscripcion, hora_inscripcion, observacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_inscripcion`,
		i.IDPersona, i.IDActividad, i.IDPaquete, i.IDUsuarioRegistro,
		i.FechaInscripcion, i.HoraInscripcion, nullString(i.Observacion),
	).Scan(&i.ID)
	if err != nil {
		if pgerr.IsUniqueViolation(err, "uq_inscripcion_persona_actividad") {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert inscripcion: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
