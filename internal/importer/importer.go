// Package importer loads the published events feed into the catalog: it
// resolves reference data, creates missing venues and speakers, and upserts
// activities by their external code.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	actmodels "coicit/internal/actividad/models"
	"coicit/internal/eventos"
	personamodels "coicit/internal/persona/models"
	"coicit/pkg/platform/sentinel"
)

var tracer = otel.Tracer("coicit/importer")

// Activities over the feed's venue capacity cap their seats here.
const capacidadMaxImportada = 50

const (
	capacidadEspacioNuevo = 30
	precioPorDefecto      = 10.00
)

// Actividades is the catalog surface the importer writes to.
type Actividades interface {
	ListarTipos(ctx context.Context) ([]actmodels.TipoActividad, error)
	ListarEspacios(ctx context.Context) ([]actmodels.Espacio, error)
	ListarUnidades(ctx context.Context) ([]actmodels.Unidad, error)
	CrearEspacio(ctx context.Context, e *actmodels.Espacio) error
	BuscarPorCodigo(ctx context.Context, codigo string) (*actmodels.Actividad, error)
	Crear(ctx context.Context, a *actmodels.Actividad) error
	Actualizar(ctx context.Context, a *actmodels.Actividad) error
	BuscarExpositorPorPersona(ctx context.Context, idPersona int64) (*actmodels.Expositor, error)
	CrearExpositor(ctx context.Context, e *actmodels.Expositor, nombre string) error
}

// Personas resolves and creates speaker records.
type Personas interface {
	BuscarPorNombre(ctx context.Context, primerNombre, primerApellido string) (*personamodels.Persona, error)
	Crear(ctx context.Context, p *personamodels.Persona) error
}

// Resumen is the outcome of one import run.
type Resumen struct {
	Creadas      int
	Actualizadas int
	Errores      []string
}

// Importer runs the batch import.
type Importer struct {
	actividades Actividades
	personas    Personas
	logger      *slog.Logger
	anio        int

	tipos    map[string]int64
	espacios []actmodels.Espacio
	unidades []actmodels.Unidad
}

// New constructs an importer anchored on the given year.
func New(actividades Actividades, personas Personas, logger *slog.Logger, anio int) *Importer {
	return &Importer{actividades: actividades, personas: personas, logger: logger, anio: anio}
}

// Run imports every record, collecting per-record errors instead of
// aborting: one bad row must not sink the batch.
func (imp *Importer) Run(ctx context.Context, registros []eventos.Registro) (*Resumen, error) {
	ctx, span := tracer.Start(ctx, "importer.Run")
	defer span.End()
	span.SetAttributes(attribute.Int("registros", len(registros)))

	if err := imp.cargarReferencias(ctx); err != nil {
		return nil, err
	}

	resumen := &Resumen{}
	for _, registro := range registros {
		if err := imp.importar(ctx, registro, resumen); err != nil {
			resumen.Errores = append(resumen.Errores,
				fmt.Sprintf("evento %s: %v", registro.Code, err))
			imp.logger.WarnContext(ctx, "evento no importado",
				"codigo", registro.Code, "error", err)
		}
	}
	span.SetAttributes(
		attribute.Int("creadas", resumen.Creadas),
		attribute.Int("actualizadas", resumen.Actualizadas),
		attribute.Int("errores", len(resumen.Errores)),
	)
	return resumen, nil
}

// cargarReferencias prefetches the reference tables concurrently.
func (imp *Importer) cargarReferencias(ctx context.Context) error {
	var tipos []actmodels.TipoActividad
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tipos, err = imp.actividades.ListarTipos(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		imp.espacios, err = imp.actividades.ListarEspacios(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		imp.unidades, err = imp.actividades.ListarUnidades(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("cargar datos de referencia: %w", err)
	}

	imp.tipos = make(map[string]int64, len(tipos))
	for _, t := range tipos {
		imp.tipos[t.Descripcion] = t.ID
	}
	return nil
}

func (imp *Importer) importar(ctx context.Context, registro eventos.Registro, resumen *Resumen) error {
	unidad, err := imp.buscarUnidad(registro.Faculty)
	if err != nil {
		return err
	}
	espacio, err := imp.buscarOCrearEspacio(ctx, registro.Location)
	if err != nil {
		return err
	}

	tipoNormalizado, ok := eventos.MapearTipo(registro.Type)
	if !ok {
		return fmt.Errorf("tipo de actividad no reconocido: %q", registro.Type)
	}
	idTipo, ok := imp.tipos[tipoNormalizado]
	if !ok {
		return fmt.Errorf("tipo de actividad no registrado: %q", tipoNormalizado)
	}

	fecha, err := eventos.ParseFecha(registro.Date, imp.anio)
	if err != nil {
		return err
	}
	inicio, fin, err := eventos.ParseRangoHoras(registro.Time)
	if err != nil {
		return err
	}

	idExpositor, err := imp.buscarOCrearExpositor(ctx, registro.Speaker)
	if err != nil {
		return err
	}

	capacidad := espacio.Capacidad
	if capacidad > capacidadMaxImportada {
		capacidad = capacidadMaxImportada
	}
	actividad := actmodels.Actividad{
		IDTipoActividad: idTipo,
		IDEspacio:       espacio.ID,
		IDUnidad:        unidad.ID,
		IDExpositor:     idExpositor,
		CodigoMatricula: registro.Code,
		Descripcion:     registro.Title,
		FechaInicio:     fecha,
		FechaFinal:      fecha,
		HoraInicio:      inicio.Sobre(fecha),
		HoraFinal:       fin.Sobre(fecha),
		Capacidad:       capacidad,
		Precio:          precioPorDefecto,
		Estado:          actmodels.Estado(eventos.MapearEstado(registro.Status)),
	}

	existente, err := imp.actividades.BuscarPorCodigo(ctx, registro.Code)
	switch {
	case err == nil:
		actividad.ID = existente.ID
		if err := imp.actividades.Actualizar(ctx, &actividad); err != nil {
			return fmt.Errorf("actualizar actividad: %w", err)
		}
		resumen.Actualizadas++
	case errors.Is(err, sentinel.ErrNotFound):
		if err := imp.actividades.Crear(ctx, &actividad); err != nil {
			return fmt.Errorf("crear actividad: %w", err)
		}
		resumen.Creadas++
	default:
		return fmt.Errorf("buscar actividad %s: %w", registro.Code, err)
	}
	return nil
}

// buscarUnidad matches the feed's faculty against registered units in either
// containment direction, following how the feed abbreviates names.
func (imp *Importer) buscarUnidad(faculty string) (*actmodels.Unidad, error) {
	buscada := strings.ToLower(strings.TrimSpace(faculty))
	for i := range imp.unidades {
		registrada := strings.ToLower(imp.unidades[i].Descripcion)
		if strings.Contains(registrada, buscada) || strings.Contains(buscada, registrada) {
			return &imp.unidades[i], nil
		}
	}
	return nil, fmt.Errorf("unidad no encontrada para: %q", faculty)
}

func (imp *Importer) buscarOCrearEspacio(ctx context.Context, location string) (*actmodels.Espacio, error) {
	for i := range imp.espacios {
		if strings.EqualFold(imp.espacios[i].Descripcion, location) {
			return &imp.espacios[i], nil
		}
	}

	nuevo := actmodels.Espacio{
		Descripcion: location,
		Capacidad:   capacidadEspacioNuevo,
		Ubicacion:   "Por definir",
	}
	if err := imp.actividades.CrearEspacio(ctx, &nuevo); err != nil {
		return nil, fmt.Errorf("crear espacio %q: %w", location, err)
	}
	imp.logger.InfoContext(ctx, "espacio creado", "descripcion", location)
	imp.espacios = append(imp.espacios, nuevo)
	return &imp.espacios[len(imp.espacios)-1], nil
}

// buscarOCrearExpositor resolves the speaker to an expositor id, creating
// the persona (with a synthetic cedula) and expositor rows when missing.
func (imp *Importer) buscarOCrearExpositor(ctx context.Context, speaker string) (*int64, error) {
	nombre, apellido, ok := eventos.NombreExpositor(speaker)
	if !ok {
		return nil, nil
	}

	persona, err := imp.personas.BuscarPorNombre(ctx, nombre, apellido)
	if errors.Is(err, sentinel.ErrNotFound) {
		persona = &personamodels.Persona{
			Cedula:         "EXP-" + uuid.NewString(),
			PrimerNombre:   nombre,
			PrimerApellido: apellido,
			TipoPersona:    personamodels.TipoExterno,
		}
		if err := imp.personas.Crear(ctx, persona); err != nil {
			return nil, fmt.Errorf("crear persona del expositor: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("buscar persona del expositor: %w", err)
	}

	expositor, err := imp.actividades.BuscarExpositorPorPersona(ctx, persona.ID)
	if errors.Is(err, sentinel.ErrNotFound) {
		expositor = &actmodels.Expositor{
			IDPersona:    persona.ID,
			Especialidad: "Por definir",
			Procedencia:  "Por definir",
		}
		if err := imp.actividades.CrearExpositor(ctx, expositor, persona.NombreCorto()); err != nil {
			return nil, fmt.Errorf("crear expositor: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("buscar expositor: %w", err)
	}
	return &expositor.ID, nil
}
