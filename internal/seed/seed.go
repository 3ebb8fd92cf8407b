// Package seed loads the base catalog and the well-known test accounts. Every
// statement is an upsert, so re-running the command is safe.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

type persona struct {
	cedula, primerNombre, primerApellido, telefono, correo, tipo string
}

// Participants used by the manual test plan.
var personasPrueba = []persona{
	{"8-1001-1001", "María", "González", "6234-5678", "maria.gonzalez@estudiante.utp.ac.pa", "estudiante_activo"},
	{"8-1002-1002", "Carlos", "Rodríguez", "6345-6789", "carlos.rodriguez@estudiante.utp.ac.pa", "estudiante_activo"},
	{"8-1003-1003", "Ana", "Martínez", "6456-7890", "ana.martinez@estudiante.utp.ac.pa", "estudiante_egresado"},
	{"8-1004-1004", "Roberto", "Fernández", "6567-8901", "roberto.fernandez@utp.ac.pa", "docente_tc"},
	{"8-1005-1005", "Patricia", "Morales", "6578-9012", "patricia.morales@utp.ac.pa", "docente_tp"},
	{"8-1006-1006", "Lucía", "Herrera", "6678-9012", "lucia.herrera@utp.ac.pa", "administrativo"},
	{"8-1007-1007", "Miguel", "Torres", "6789-0123", "miguel.torres@empresa.com", "externo"},
}

type cuenta struct {
	persona persona
	apodo   string
	rol     string
}

var cuentasSistema = []cuenta{
	{persona{"8-0001-0001", "Administrador", "Sistema", "6000-0001", "admin@coicit.utp.ac.pa", "administrativo"}, "admin", "admin"},
	{persona{"8-0002-0002", "María Elena", "Captador", "6000-0002", "captador@coicit.utp.ac.pa", "administrativo"}, "captador", "captador"},
}

var tiposActividad = []string{"ponencia", "sesion_interactiva", "sesion_experto", "tour"}

var unidades = []string{
	"Facultad de Ingeniería de Sistemas Computacionales",
	"Facultad de Ingeniería Eléctrica",
	"Facultad de Ingeniería Industrial",
	"Facultad de Ingeniería Civil",
	"Facultad de Ingeniería Mecánica",
	"Facultad de Ciencias y Tecnología",
}

type espacio struct {
	descripcion string
	capacidad   int
	ubicacion   string
}

var espacios = []espacio{
	{"Auditorio Principal", 200, "Edificio de Postgrado"},
	{"Salón 205", 40, "Edificio 1"},
	{"Laboratorio de Redes", 25, "Edificio 3"},
}

type paquete struct {
	descripcion string
	observacion string
	costoBase   float64
	// tipo -> per-type enrollment ceiling
	estructura map[string]int
	// segmento -> costo, effective from the congress opening
	tarifas map[string]float64
}

var paquetes = []paquete{
	{
		descripcion: "Paquete Completo",
		observacion: "Acceso a todas las actividades del congreso",
		costoBase:   50,
		estructura:  map[string]int{"ponencia": 5, "sesion_interactiva": 2, "sesion_experto": 2, "tour": 1},
		tarifas: map[string]float64{
			"estudiante_activo": 15, "estudiante_egresado": 20,
			"docente_tc": 25, "docente_tp": 25,
			"administrativo": 25, "externo": 50,
		},
	},
	{
		descripcion: "Paquete Ponencias",
		observacion: "Solo ponencias",
		costoBase:   25,
		estructura:  map[string]int{"ponencia": 3},
		tarifas: map[string]float64{
			"estudiante_activo": 10, "estudiante_egresado": 12,
			"docente_tc": 15, "docente_tp": 15,
			"administrativo": 15, "externo": 25,
		},
	},
	{
		descripcion: "Paquete Tour",
		observacion: "Recorridos técnicos",
		costoBase:   10,
		estructura:  map[string]int{"tour": 1},
		tarifas: map[string]float64{
			"estudiante_activo": 5, "estudiante_egresado": 5,
			"docente_tc": 8, "docente_tp": 8,
			"administrativo": 8, "externo": 10,
		},
	},
}

// FechaVigenciaBase is the effective date of the seeded tariffs.
const FechaVigenciaBase = "2025-01-01"

// Contrasena is the password both seeded system accounts share.
const Contrasena = "coicit2025"

// Run upserts the whole base data set.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if err := upsertPersonas(ctx, db, logger); err != nil {
		return err
	}
	if err := upsertCuentas(ctx, db, logger); err != nil {
		return err
	}
	if err := upsertCatalogo(ctx, db, logger); err != nil {
		return err
	}
	return nil
}

func upsertPersona(ctx context.Context, db *sql.DB, p persona) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO persona (cedula, primer_nombre, primer_apellido, telefono, correo, tipo_persona)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT uq_persona_cedula DO UPDATE SET
			primer_nombre = EXCLUDED.primer_nombre,
			primer_apellido = EXCLUDED.primer_apellido,
			telefono = EXCLUDED.telefono,
			correo = EXCLUDED.correo,
			tipo_persona = EXCLUDED.tipo_persona
		RETURNING id_persona`,
		p.cedula, p.primerNombre, p.primerApellido, p.telefono, p.correo, p.tipo,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert persona %s: %w", p.cedula, err)
	}
	return id, nil
}

func upsertPersonas(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	for _, p := range personasPrueba {
		if _, err := upsertPersona(ctx, db, p); err != nil {
			return err
		}
	}
	logger.InfoContext(ctx, "personas de prueba listas", "total", len(personasPrueba))
	return nil
}

func upsertCuentas(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(Contrasena), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash contraseña: %w", err)
	}

	for _, c := range cuentasSistema {
		idPersona, err := upsertPersona(ctx, db, c.persona)
		if err != nil {
			return err
		}
		_, err = db.ExecContext(ctx, `
			INSERT INTO usuarios (apodo_usuario, contrasena_usuario, rol, id_persona)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT ON CONSTRAINT uq_usuarios_apodo DO UPDATE SET
				contrasena_usuario = EXCLUDED.contrasena_usuario,
				rol = EXCLUDED.rol,
				id_persona = EXCLUDED.id_persona,
				updated_at = now()`,
			c.apodo, string(hash), c.rol, idPersona)
		if err != nil {
			return fmt.Errorf("upsert usuario %s: %w", c.apodo, err)
		}
		logger.InfoContext(ctx, "cuenta del sistema lista", "apodo", c.apodo, "rol", c.rol)
	}
	return nil
}

func upsertCatalogo(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	tipoIDs := make(map[string]int64, len(tiposActividad))
	for _, descripcion := range tiposActividad {
		var id int64
		err := db.QueryRowContext(ctx, `
			INSERT INTO tipo_actividad (descripcion_tipo_actividad)
			VALUES ($1)
			ON CONFLICT ON CONSTRAINT uq_tipo_actividad_descripcion
				DO UPDATE SET descripcion_tipo_actividad = EXCLUDED.descripcion_tipo_actividad
			RETURNING id_tipo_actividad`, descripcion,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("upsert tipo %s: %w", descripcion, err)
		}
		tipoIDs[descripcion] = id
	}

	for _, descripcion := range unidades {
		_, err := db.ExecContext(ctx, `
			INSERT INTO unidad (descripcion_unidad)
			VALUES ($1)
			ON CONFLICT ON CONSTRAINT uq_unidad_descripcion DO NOTHING`, descripcion)
		if err != nil {
			return fmt.Errorf("upsert unidad %s: %w", descripcion, err)
		}
	}

	for _, e := range espacios {
		_, err := db.ExecContext(ctx, `
			INSERT INTO espacio (descripcion_espacio, capacidad_espacio, ubicacion)
			VALUES ($1, $2, $3)
			ON CONFLICT ON CONSTRAINT uq_espacio_descripcion DO UPDATE SET
				capacidad_espacio = EXCLUDED.capacidad_espacio,
				ubicacion = EXCLUDED.ubicacion`,
			e.descripcion, e.capacidad, e.ubicacion)
		if err != nil {
			return fmt.Errorf("upsert espacio %s: %w", e.descripcion, err)
		}
	}

	for _, p := range paquetes {
		var idPaquete int64
		err := db.QueryRowContext(ctx, `
			INSERT INTO paquetes (descripcion_paquete, observacion, costo_paquete)
			VALUES ($1, $2, $3)
			ON CONFLICT ON CONSTRAINT uq_paquetes_descripcion DO UPDATE SET
				observacion = EXCLUDED.observacion,
				costo_paquete = EXCLUDED.costo_paquete
			RETURNING id_paquete`,
			p.descripcion, p.observacion, p.costoBase,
		).Scan(&idPaquete)
		if err != nil {
			return fmt.Errorf("upsert paquete %s: %w", p.descripcion, err)
		}

		for tipo, maximo := range p.estructura {
			_, err := db.ExecContext(ctx, `
				INSERT INTO detalle_estructura_paquete (id_paquete, id_tipo_actividad, cantidad_maxima)
				VALUES ($1, $2, $3)
				ON CONFLICT ON CONSTRAINT uq_detalle_paquete_tipo
					DO UPDATE SET cantidad_maxima = EXCLUDED.cantidad_maxima`,
				idPaquete, tipoIDs[tipo], maximo)
			if err != nil {
				return fmt.Errorf("upsert estructura %s/%s: %w", p.descripcion, tipo, err)
			}
		}

		for segmento, costo := range p.tarifas {
			// paquete_tarifa keeps history, so only insert the base tariff
			// once.
			_, err := db.ExecContext(ctx, `
				INSERT INTO paquete_tarifa (id_paquete, segmento, costo, vigencia_desde)
				SELECT $1, $2, $3, $4::date
				WHERE NOT EXISTS (
					SELECT 1 FROM paquete_tarifa
					WHERE id_paquete = $1 AND segmento = $2 AND vigencia_desde = $4::date
				)`,
				idPaquete, segmento, costo, FechaVigenciaBase)
			if err != nil {
				return fmt.Errorf("upsert tarifa %s/%s: %w", p.descripcion, segmento, err)
			}
		}
	}
	logger.InfoContext(ctx, "catálogo base listo",
		"tipos", len(tiposActividad), "unidades", len(unidades),
		"espacios", len(espacios), "paquetes", len(paquetes))
	return nil
}
