// Package service enforces the enrollment rules: capacity, package
// eligibility, per-type ceilings and one enrollment per activity.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	actmodels "coicit/internal/actividad/models"
	usuariomodels "coicit/internal/auth/models"
	"coicit/internal/inscripcion/models"
	paquetemodels "coicit/internal/paquete/models"
	personamodels "coicit/internal/persona/models"
	dErrors "coicit/pkg/domain-errors"
	"coicit/pkg/platform/sentinel"
	"coicit/pkg/requestcontext"
)

var tracer = otel.Tracer("coicit/inscripcion")

// Personas resolves participants.
type Personas interface {
	BuscarPorID(ctx context.Context, id int64) (*personamodels.Persona, error)
}

// Actividades resolves activities and their joined catalog details.
type Actividades interface {
	BuscarPorID(ctx context.Context, id int64) (*actmodels.Actividad, error)
}

// Paquetes resolves packages and their included activity types.
type Paquetes interface {
	BuscarPorID(ctx context.Context, id int64) (*paquetemodels.Paquete, error)
}

// Usuarios resolves the staff account recording the enrollment.
type Usuarios interface {
	BuscarPorID(ctx context.Context, id int64) (*usuariomodels.Usuario, error)
}

// Store is the transaction-scoped surface the rule checks run against. All
// reads observe the locked activity row, so concurrent enrollments for the
// same activity serialize.
type Store interface {
	// ActividadParaInscribir locks the activity row and returns it together
	// with its current enrollment count.
	ActividadParaInscribir(ctx context.Context, id int64) (*actmodels.Actividad, int, error)
	EstructuraPorPaquete(ctx context.Context, idPaquete int64) ([]paquetemodels.DetalleEstructura, error)
	ConteoPorTipo(ctx context.Context, idPersona, idPaquete, idTipoActividad int64) (int, error)
	ExisteInscripcion(ctx context.Context, idPersona, idActividad int64) (bool, error)
	Insertar(ctx context.Context, i *models.Inscripcion) error
}

// Tx runs fn against a transaction-scoped Store, committing only when fn
// returns nil.
type Tx interface {
	RunInTx(ctx context.Context, fn func(store Store) error) error
}

// Metrics records enrollment outcomes.
type Metrics interface {
	IncInscripcionCreada()
	IncInscripcionRechazada(motivo string)
}

// Solicitud is one enrollment request.
type Solicitud struct {
	IDPersona         int64
	IDActividad       int64
	IDPaquete         int64
	IDUsuarioRegistro int64
	Observacion       string
}

// Recibo is the confirmation returned after a successful enrollment.
type Recibo struct {
	Inscripcion models.Inscripcion
	Persona     personamodels.Persona
	Actividad   actmodels.Actividad
	Paquete     paquetemodels.Paquete
	Usuario     usuariomodels.Usuario
}

// Service coordinates enrollment creation.
type Service struct {
	personas    Personas
	actividades Actividades
	paquetes    Paquetes
	usuarios    Usuarios
	tx          Tx
	metrics     Metrics
}

// New constructs an inscripcion service.
func New(personas Personas, actividades Actividades, paquetes Paquetes, usuarios Usuarios, tx Tx, metrics Metrics) *Service {
	return &Service{
		personas:    personas,
		actividades: actividades,
		paquetes:    paquetes,
		usuarios:    usuarios,
		tx:          tx,
		metrics:     metrics,
	}
}

func (s *Service) rechazar(motivo string, err error) error {
	if s.metrics != nil {
		s.metrics.IncInscripcionRechazada(motivo)
	}
	return err
}

// Crear validates and records one enrollment. Existence checks run in
// parallel; the business rules run inside one transaction against the locked
// activity row.
func (s *Service) Crear(ctx context.Context, sol Solicitud) (*Recibo, error) {
	ctx, span := tracer.Start(ctx, "inscripcion.Crear")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("persona.id", sol.IDPersona),
		attribute.Int64("actividad.id", sol.IDActividad),
		attribute.Int64("paquete.id", sol.IDPaquete),
	)

	var (
		persona   *personamodels.Persona
		actividad *actmodels.Actividad
		paquete   *paquetemodels.Paquete
		usuario   *usuariomodels.Usuario
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		persona, err = s.personas.BuscarPorID(gctx, sol.IDPersona)
		return noEncontrado(err, "Persona no encontrada")
	})
	g.Go(func() error {
		var err error
		actividad, err = s.actividades.BuscarPorID(gctx, sol.IDActividad)
		return noEncontrado(err, "Actividad no encontrada")
	})
	g.Go(func() error {
		var err error
		paquete, err = s.paquetes.BuscarPorID(gctx, sol.IDPaquete)
		return noEncontrado(err, "Paquete no encontrado")
	})
	g.Go(func() error {
		var err error
		usuario, err = s.usuarios.BuscarPorID(gctx, sol.IDUsuarioRegistro)
		return noEncontrado(err, "Usuario no encontrado")
	})
	if err := g.Wait(); err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, s.rechazar("no_encontrado", err)
		}
		return nil, err
	}

	if actividad.Estado != actmodels.EstadoDisponible {
		return nil, s.rechazar("estado", dErrors.New(dErrors.CodeRuleViolation,
			fmt.Sprintf("La actividad está %s", actividad.Estado)))
	}

	ahora := requestcontext.Now(ctx)
	inscripcion := models.Inscripcion{
		IDPersona:         sol.IDPersona,
		IDActividad:       sol.IDActividad,
		IDPaquete:         sol.IDPaquete,
		IDUsuarioRegistro: sol.IDUsuarioRegistro,
		FechaInscripcion:  ahora,
		HoraInscripcion:   ahora,
		Observacion:       sol.Observacion,
	}

	err := s.tx.RunInTx(ctx, func(store Store) error {
		bloqueada, inscritos, err := store.ActividadParaInscribir(ctx, sol.IDActividad)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "bloquear actividad")
		}

		// The state may have flipped between the pre-check and the lock.
		if bloqueada.Estado != actmodels.EstadoDisponible {
			return s.rechazar("estado", dErrors.New(dErrors.CodeRuleViolation,
				fmt.Sprintf("La actividad está %s", bloqueada.Estado)))
		}

		yaInscrito, err := store.ExisteInscripcion(ctx, sol.IDPersona, sol.IDActividad)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "verificar inscripción previa")
		}
		if yaInscrito {
			return s.rechazar("duplicada", dErrors.New(dErrors.CodeConflict,
				"Ya estás inscrito en esta actividad"))
		}

		if inscritos >= bloqueada.Capacidad {
			return s.rechazar("sin_cupo", dErrors.New(dErrors.CodeRuleViolation,
				"No hay cupos disponibles para esta actividad"))
		}

		estructura, err := store.EstructuraPorPaquete(ctx, sol.IDPaquete)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "cargar estructura del paquete")
		}
		var detalle *paquetemodels.DetalleEstructura
		for i := range estructura {
			if estructura[i].IDTipoActividad == bloqueada.IDTipoActividad {
				detalle = &estructura[i]
				break
			}
		}
		if detalle == nil {
			return s.rechazar("tipo_no_incluido", dErrors.New(dErrors.CodeRuleViolation,
				"El paquete seleccionado no incluye este tipo de actividad"))
		}

		usados, err := store.ConteoPorTipo(ctx, sol.IDPersona, sol.IDPaquete, bloqueada.IDTipoActividad)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "contar inscripciones por tipo")
		}
		if usados >= detalle.CantidadMaxima {
			return s.rechazar("limite_tipo", dErrors.New(dErrors.CodeRuleViolation,
				"Ya alcanzaste el límite de inscripciones para este tipo de actividad en el paquete"))
		}

		if err := store.Insertar(ctx, &inscripcion); err != nil {
			// The unique constraint backs up the in-transaction check.
			if errors.Is(err, sentinel.ErrConflict) {
				return s.rechazar("duplicada", dErrors.New(dErrors.CodeConflict,
					"Ya estás inscrito en esta actividad"))
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "insertar inscripción")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncInscripcionCreada()
	}
	span.SetAttributes(attribute.Int64("inscripcion.id", inscripcion.ID))
	return &Recibo{
		Inscripcion: inscripcion,
		Persona:     *persona,
		Actividad:   *actividad,
		Paquete:     *paquete,
		Usuario:     *usuario,
	}, nil
}

func noEncontrado(err error, mensaje string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, mensaje)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "consultar referencia")
}
