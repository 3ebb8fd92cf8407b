package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coicit/internal/paquete/models"
	"coicit/pkg/platform/sentinel"
)

// Postgres persists packages in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed package store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// ListarCompletos returns every package with its structure and full tariff
// history, assembled from three queries to keep each one trivial.
func (s *Postgres) ListarCompletos(ctx context.Context) ([]models.Completo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id_paquete, descripcion_paquete, observacion, costo_paquete
		FROM paquetes ORDER BY id_paquete`)
	if err != nil {
		return nil, fmt.Errorf("list paquetes: %w", err)
	}
	defer rows.Close()

	porID := make(map[int64]*models.Completo)
	var orden []int64
	for rows.Next() {
		var p models.Completo
		var observacion sql.NullString
		if err := rows.Scan(&p.ID, &p.Descripcion, &observacion, &p.CostoBase); err != nil {
			return nil, fmt.Errorf("scan paquete: %w", err)
		}
		p.Observacion = observacion.String
		porID[p.ID] = &p
		orden = append(orden, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	estructuras, err := s.db.QueryContext(ctx, `
		SELECT d.id_paquete, d.id_tipo_actividad, ta.descripcion_tipo_actividad, d.cantidad_maxima
		FROM detalle_estructura_paquete d
		JOIN tipo_actividad ta ON ta.id_tipo_actividad = d.id_tipo_actividad
		ORDER BY d.id_paquete, d.id_tipo_actividad`)
	if err != nil {
		return nil, fmt.Errorf("list estructura: %w", err)
	}
	defer estructuras.Close()
	for estructuras.Next() {
		var idPaquete int64
		var d models.DetalleEstructura
		if err := estructuras.Scan(&idPaquete, &d.IDTipoActividad, &d.TipoDescripcion, &d.CantidadMaxima); err != nil {
			return nil, fmt.Errorf("scan estructura: %w", err)
		}
		if p, ok := porID[idPaquete]; ok {
			p.Estructura = append(p.Estructura, d)
		}
	}
	if err := estructuras.Err(); err != nil {
		return nil, err
	}

	tarifas, err := s.db.QueryContext(ctx, `
		SELECT id_tarifa, id_paquete, segmento, costo, vigencia_desde
		FROM paquete_tarifa ORDER BY id_paquete, vigencia_desde`)
	if err != nil {
		return nil, fmt.Errorf("list tarifas: %w", err)
	}
	defer tarifas.Close()
	for tarifas.Next() {
		var t models.Tarifa
		if err := tarifas.Scan(&t.ID, &t.IDPaquete, &t.Segmento, &t.Costo, &t.VigenciaDesde); err != nil {
			return nil, fmt.Errorf("scan tarifa: %w", err)
		}
		if p, ok := porID[t.IDPaquete]; ok {
			p.Tarifas = append(p.Tarifas, t)
		}
	}
	if err := tarifas.Err(); err != nil {
		return nil, err
	}

	out := make([]models.Completo, 0, len(orden))
	for _, id := range orden {
		out = append(out, *porID[id])
	}
	return out, nil
}

// BuscarPorID finds a package by primary key.
func (s *Postgres) BuscarPorID(ctx context.Context, id int64) (*models.Paquete, error) {
	var p models.Paquete
	var observacion sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id_paquete, descripcion_paquete, observacion, costo_paquete
		FROM paquetes WHERE id_paquete = $1`, id).
		Scan(&p.ID, &p.Descripcion, &observacion, &p.CostoBase)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("buscar paquete: %w", err)
	}
	p.Observacion = observacion.String
	return &p, nil
}

// EstructuraPorPaquete returns the included types and ceilings of a package.
func (s *Postgres) EstructuraPorPaquete(ctx context.Context, id int64) ([]models.DetalleEstructura, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id_tipo_actividad, ta.descripcion_tipo_actividad, d.cantidad_maxima
		FROM detalle_estructura_paquete d
		JOIN tipo_actividad ta ON ta.id_tipo_actividad = d.id_tipo_actividad
		WHERE d.id_paquete = $1
		ORDER BY d.id_tipo_actividad`, id)
	if err != nil {
		return nil, fmt.Errorf("estructura paquete: %w", err)
	}
	defer rows.Close()
	var out []models.DetalleEstructura
	for rows.Next() {
		var d models.DetalleEstructura
		if err := rows.Scan(&d.IDTipoActividad, &d.TipoDescripcion, &d.CantidadMaxima); err != nil {
			return nil, fmt.Errorf("scan estructura: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
