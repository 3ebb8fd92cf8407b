package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coicit/internal/actividad/models"
	"coicit/pkg/platform/pgerr"
	"coicit/pkg/platform/sentinel"
)

// Postgres persists activities and their reference entities in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed activity store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Listar returns joined catalog rows matching the filter, ordered by start
// date then start time. Enrollment counts are filled in by the service.
func (s *Postgres) Listar(ctx context.Context, filtro models.Filtro) ([]models.Detalle, error) {
	estado := filtro.Estado
	if estado == "" {
		estado = models.EstadoDisponible
	}

	query := `
		SELECT a.id_actividad, a.id_tipo_actividad, a.id_espacio, a.id_unidad,
		       a.id_expositor, a.codigo_matricula, a.descripcion_actividad,
		       a.fecha_inicio, a.fecha_final, a.hora_inicio, a.hora_final,
		       a.capacidad_personas, a.precio_actividad_individual, a.estado,
		       ta.descripcion_tipo_actividad,
		       u.descripcion_unidad,
		       e.id_espacio, e.descripcion_espacio, e.capacidad_espacio, e.ubicacion,
		       p.primer_nombre, p.primer_apellido, ex.especialidad, ex.procedencia
		FROM actividad a
		JOIN tipo_actividad ta ON ta.id_tipo_actividad = a.id_tipo_actividad
		JOIN unidad u ON u.id_unidad = a.id_unidad
		JOIN espacio e ON e.id_espacio = a.id_espacio
		LEFT JOIN expositor ex ON ex.id_expositor = a.id_expositor
		LEFT JOIN persona p ON p.id_persona = ex.id_persona
		WHERE a.estado = $1
		  AND ($2 = '' OR ta.descripcion_tipo_actividad = $2)
		  AND ($3 = '' OR u.descripcion_unidad ILIKE '%' || $3 || '%')
		ORDER BY a.fecha_inicio ASC, a.hora_inicio ASC
	`
	rows, err := s.db.QueryContext(ctx, query, string(estado), filtro.Tipo, filtro.Unidad)
	if err != nil {
		return nil, fmt.Errorf("list actividades: %w", err)
	}
	defer rows.Close()

	var out []models.Detalle
	for rows.Next() {
		var d models.Detalle
		var idExpositor sql.NullInt64
		var primerNombre, primerApellido, especialidad, procedencia sql.NullString
		err := rows.Scan(
			&d.ID, &d.IDTipoActividad, &d.IDEspacio, &d.IDUnidad,
			&idExpositor, &d.CodigoMatricula, &d.Descripcion,
			&d.FechaInicio, &d.FechaFinal, &d.HoraInicio, &d.HoraFinal,
			&d.Capacidad, &d.Precio, &d.Estado,
			&d.TipoActividad,
			&d.Unidad,
			&d.Espacio.ID, &d.Espacio.Descripcion, &d.Espacio.Capacidad, &d.Espacio.Ubicacion,
			&primerNombre, &primerApellido, &especialidad, &procedencia,
		)
		if err != nil {
			return nil, fmt.Errorf("scan actividad detalle: %w", err)
		}
		if idExpositor.Valid {
			id := idExpositor.Int64
			d.IDExpositor = &id
			d.Expositor = &models.ExpositorDetalle{
				Nombre:       primerNombre.String + " " + primerApellido.String,
				Especialidad: especialidad.String,
				Procedencia:  procedencia.String,
			}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// BuscarPorID finds an activity by primary key.
func (s *Postgres) BuscarPorID(ctx context.Context, id int64) (*models.Actividad, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id_actividad, id_tipo_actividad, id_espacio, id_unidad,
		       id_expositor, codigo_matricula, descripcion_actividad,
		       fecha_inicio, fecha_final, hora_inicio, hora_final,
		       capacidad_personas, precio_actividad_individual, estado
		FROM actividad WHERE id_actividad = $1`, id)
	return scanActividad(row)
}

// BuscarPorCodigo finds an activity by its external enrollment code.
func (s *Postgres) BuscarPorCodigo(ctx context.Context, codigo string) (*models.Actividad, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id_actividad, id_tipo_actividad, id_espacio, id_unidad,
		       id_expositor, codigo_matricula, descripcion_actividad,
		       fecha_inicio, fecha_final, hora_inicio, hora_final,
		       capacidad_personas, precio_actividad_individual, estado
		FROM actividad WHERE codigo_matricula = $1`, codigo)
	return scanActividad(row)
}

// Crear inserts an activity and fills in its generated ID.
func (s *Postgres) Crear(ctx context.Context, a *models.Actividad) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO actividad (id_tipo_actividad, id_espacio, id_unidad,
			id_expositor, codigo_matricula, descripcion_actividad,
			fecha_inicio, fecha_final, hora_inicio, hora_final,
			capacidad_personas, precio_actividad_individual, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id_actividad`,
		a.IDTipoActividad, a.IDEspacio, a.IDUnidad, nullInt64(a.IDExpositor),
		a.CodigoMatricula, a.Descripcion, a.FechaInicio, a.FechaFinal,
		a.HoraInicio, a.HoraFinal, a.Capacidad, a.Precio, string(a.Estado),
	).Scan(&a.ID)
	if err != nil {
		if pgerr.IsUniqueViolation(err, "uq_actividad_codigo_matricula") {
			return sentinel.ErrConflict
		}
		if pgerr.IsForeignKeyViolation(err) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("insert actividad: %w", err)
	}
	return nil
}

// Actualizar replaces the mutable fields of an existing activity.
func (s *Postgres) Actualizar(ctx context.Context, a *models.Actividad) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE actividad SET
			id_tipo_actividad = $2, id_espacio = $3, id_unidad = $4,
			id_expositor = $5, descripcion_actividad = $6,
			fecha_inicio = $7, fecha_final = $8, hora_inicio = $9,
			hora_final = $10, capacidad_personas = $11,
			precio_actividad_individual = $12, estado = $13
		WHERE id_actividad = $1`,
		a.ID, a.IDTipoActividad, a.IDEspacio, a.IDUnidad,
		nullInt64(a.IDExpositor), a.Descripcion, a.FechaInicio, a.FechaFinal,
		a.HoraInicio, a.HoraFinal, a.Capacidad, a.Precio, string(a.Estado))
	if err != nil {
		return fmt.Errorf("update actividad: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update actividad: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// TipoDeActividad returns the type descriptor of an activity.
func (s *Postgres) TipoDeActividad(ctx context.Context, idActividad int64) (*models.TipoActividad, error) {
	var t models.TipoActividad
	err := s.db.QueryRowContext(ctx, `
		SELECT ta.id_tipo_actividad, ta.descripcion_tipo_actividad
		FROM actividad a
		JOIN tipo_actividad ta ON ta.id_tipo_actividad = a.id_tipo_actividad
		WHERE a.id_actividad = $1`, idActividad).Scan(&t.ID, &t.Descripcion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("tipo de actividad: %w", err)
	}
	return &t, nil
}

// ListarTipos returns every activity type.
func (s *Postgres) ListarTipos(ctx context.Context) ([]models.TipoActividad, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id_tipo_actividad, descripcion_tipo_actividad FROM tipo_actividad ORDER BY id_tipo_actividad`)
	if err != nil {
		return nil, fmt.Errorf("list tipos: %w", err)
	}
	defer rows.Close()
	var out []models.TipoActividad
	for rows.Next() {
		var t models.TipoActividad
		if err := rows.Scan(&t.ID, &t.Descripcion); err != nil {
			return nil, fmt.Errorf("scan tipo: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListarEspacios returns every venue.
func (s *Postgres) ListarEspacios(ctx context.Context) ([]models.Espacio, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id_espacio, descripcion_espacio, capacidad_espacio, ubicacion FROM espacio ORDER BY id_espacio`)
	if err != nil {
		return nil, fmt.Errorf("list espacios: %w", err)
	}
	defer rows.Close()
	var out []models.Espacio
	for rows.Next() {
		var e models.Espacio
		if err := rows.Scan(&e.ID, &e.Descripcion, &e.Capacidad, &e.Ubicacion); err != nil {
			return nil, fmt.Errorf("scan espacio: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListarUnidades returns every organizational unit.
func (s *Postgres) ListarUnidades(ctx context.Context) ([]models.Unidad, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id_unidad, descripcion_unidad FROM unidad ORDER BY id_unidad`)
	if err != nil {
		return nil, fmt.Errorf("list unidades: %w", err)
	}
	defer rows.Close()
	var out []models.Unidad
	for rows.Next() {
		var u models.Unidad
		if err := rows.Scan(&u.ID, &u.Descripcion); err != nil {
			return nil, fmt.Errorf("scan unidad: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// CrearEspacio inserts a venue and fills in its generated ID.
func (s *Postgres) CrearEspacio(ctx context.Context, e *models.Espacio) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO espacio (descripcion_espacio, capacidad_espacio, ubicacion)
		VALUES ($1, $2, $3) RETURNING id_espacio`,
		e.Descripcion, e.Capacidad, e.Ubicacion).Scan(&e.ID)
	if err != nil {
		if pgerr.IsUniqueViolation(err, "uq_espacio_descripcion") {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert espacio: %w", err)
	}
	return nil
}

// BuscarExpositorPorPersona finds the speaker record for a persona.
func (s *Postgres) BuscarExpositorPorPersona(ctx context.Context, idPersona int64) (*models.Expositor, error) {
	var e models.Expositor
	err := s.db.QueryRowContext(ctx, `
		SELECT id_expositor, id_persona, especialidad, procedencia
		FROM expositor WHERE id_persona = $1`, idPersona).
		Scan(&e.ID, &e.IDPersona, &e.Especialidad, &e.Procedencia)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("buscar expositor: %w", err)
	}
	return &e, nil
}

// CrearExpositor inserts a speaker record. The nombre argument only exists
// for parity with the in-memory store; Postgres joins the persona row.
func (s *Postgres) CrearExpositor(ctx context.Context, e *models.Expositor, nombre string) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO expositor (id_persona, especialidad, procedencia)
		VALUES ($1, $2, $3) RETURNING id_expositor`,
		e.IDPersona, e.Especialidad, e.Procedencia).Scan(&e.ID)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("insert expositor: %w", err)
	}
	return nil
}

func scanActividad(row *sql.Row) (*models.Actividad, error) {
	var a models.Actividad
	var idExpositor sql.NullInt64
	err := row.Scan(&a.ID, &a.IDTipoActividad, &a.IDEspacio, &a.IDUnidad,
		&idExpositor, &a.CodigoMatricula, &a.Descripcion,
		&a.FechaInicio, &a.FechaFinal, &a.HoraInicio, &a.HoraFinal,
		&a.Capacidad, &a.Precio, &a.Estado)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan actividad: %w", err)
	}
	if idExpositor.Valid {
		id := idExpositor.Int64
		a.IDExpositor = &id
	}
	return &a, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
