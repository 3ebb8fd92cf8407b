// Package store computes the dashboard aggregates.
package store

import (
	"context"
	"database/sql"
	"fmt"

	actmodels "coicit/internal/actividad/models"
	"coicit/internal/admin/service"
	personamodels "coicit/internal/persona/models"
)

// Postgres runs the dashboard aggregates in SQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a Postgres-backed dashboard store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// TotalInscripciones counts every enrollment.
func (s *Postgres) TotalInscripciones(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM inscripciones").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("total inscripciones: %w", err)
	}
	return n, nil
}

// TotalRecaudado sums, per enrollment, the package tariff in effect for the
// participant's segment on the enrollment date.
func (s *Postgres) TotalRecaudado(ctx context.Context) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(tarifa.costo), 0)
		FROM inscripciones i
		JOIN persona p USING (id_persona)
		LEFT JOIN LATERAL (
			SELECT costo
			FROM paquete_tarifa pt
			WHERE pt.id_paquete = i.id_paquete
			  AND pt.segmento = p.tipo_persona
			  AND pt.vigencia_desde <= i.fecha_inscripcion
			ORDER BY pt.vigencia_desde DESC
			LIMIT 1
		) tarifa ON TRUE`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total recaudado: %w", err)
	}
	return total, nil
}

// ContarPersonasPorTipo groups the registered participants by segment.
func (s *Postgres) ContarPersonasPorTipo(ctx context.Context) (map[personamodels.TipoPersona]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tipo_persona, COUNT(*)
		FROM persona
		GROUP BY tipo_persona`)
	if err != nil {
		return nil, fmt.Errorf("personas por tipo: %w", err)
	}
	defer rows.Close()

	conteos := make(map[personamodels.TipoPersona]int)
	for rows.Next() {
		var tipo personamodels.TipoPersona
		var n int
		if err := rows.Scan(&tipo, &n); err != nil {
			return nil, fmt.Errorf("scan personas por tipo: %w", err)
		}
		conteos[tipo] = n
	}
	return conteos, rows.Err()
}

// ContarActividadesPorEstado groups the catalog by state.
func (s *Postgres) ContarActividadesPorEstado(ctx context.Context) (map[actmodels.Estado]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT estado, COUNT(*)
		FROM actividad
		GROUP BY estado`)
	if err != nil {
		return nil, fmt.Errorf("actividades por estado: %w", err)
	}
	defer rows.Close()

	conteos := make(map[actmodels.Estado]int)
	for rows.Next() {
		var estado actmodels.Estado
		var n int
		if err := rows.Scan(&estado, &n); err != nil {
			return nil, fmt.Errorf("scan actividades por estado: %w", err)
		}
		conteos[estado] = n
	}
	return conteos, rows.Err()
}

// InscripcionesRecientes returns the latest enrollments with display names
// joined in.
func (s *Postgres) InscripcionesRecientes(ctx context.Context, limite int) ([]service.Reciente, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id_inscripcion,
		       TRIM(p.primer_nombre || ' ' || p.primer_apellido),
		       a.descripcion_actividad,
		       pa.descripcion_paquete,
		       i.fecha_inscripcion
		FROM inscripciones i
		JOIN persona p USING (id_persona)
		JOIN actividad a USING (id_actividad)
		JOIN paquetes pa USING (id_paquete)
		ORDER BY i.id_inscripcion DESC
		LIMIT $1`, limite)
	if err != nil {
		return nil, fmt.Errorf("inscripciones recientes: %w", err)
	}
	defer rows.Close()

	var out []service.Reciente
	for rows.Next() {
		var r service.Reciente
		var fecha sql.NullTime
		if err := rows.Scan(&r.ID, &r.Persona, &r.Actividad, &r.Paquete, &fecha); err != nil {
			return nil, fmt.Errorf("scan reciente: %w", err)
		}
		if fecha.Valid {
			r.Fecha = fecha.Time.Format("2006-01-02")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
