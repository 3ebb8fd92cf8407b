package handler

import (
	"time"

	"coicit/internal/actividad/models"
)

type espacioRow struct {
	Nombre          string `json:"nombre"`
	CapacidadMaxima int    `json:"capacidad_maxima"`
	Ubicacion       string `json:"ubicacion"`
}

// actividadRow is the catalog row shape the registration page renders.
type actividadRow struct {
	ID               int64                    `json:"id_actividad"`
	CodigoMatricula  string                   `json:"codigo_matricula"`
	Descripcion      string                   `json:"descripcion_actividad"`
	TipoActividad    string                   `json:"tipo_actividad"`
	Unidad           string                   `json:"unidad"`
	Espacio          espacioRow               `json:"espacio"`
	Expositor        *models.ExpositorDetalle `json:"expositor"`
	FechaInicio      time.Time                `json:"fecha_inicio"`
	FechaFinal       time.Time                `json:"fecha_final"`
	HoraInicio       time.Time                `json:"hora_inicio"`
	HoraFinal        time.Time                `json:"hora_final"`
	Capacidad        int                      `json:"capacidad_personas"`
	Inscritos        int                      `json:"inscritos"`
	CuposDisponibles int                      `json:"cupos_disponibles"`
	PrecioIndividual float64                  `json:"precio_individual"`
	Estado           models.Estado            `json:"estado"`
}

func newActividadRow(d models.Detalle) actividadRow {
	return actividadRow{
		ID:               d.ID,
		CodigoMatricula:  d.CodigoMatricula,
		Descripcion:      d.Descripcion,
		TipoActividad:    d.TipoActividad,
		Unidad:           d.Unidad,
		Espacio: espacioRow{
			Nombre:          d.Espacio.Descripcion,
			CapacidadMaxima: d.Espacio.Capacidad,
			Ubicacion:       d.Espacio.Ubicacion,
		},
		Expositor:        d.Expositor,
		FechaInicio:      d.FechaInicio,
		FechaFinal:       d.FechaFinal,
		HoraInicio:       d.HoraInicio,
		HoraFinal:        d.HoraFinal,
		Capacidad:        d.Capacidad,
		Inscritos:        d.Inscritos,
		CuposDisponibles: d.Capacidad - d.Inscritos,
		PrecioIndividual: d.Precio,
		Estado:           d.Estado,
	}
}
