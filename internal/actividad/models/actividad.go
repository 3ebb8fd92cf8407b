// Package models defines scheduled activities and their reference entities.
package models

import "time"

// Estado gates whether an activity accepts new enrollments.
type Estado string

const (
	EstadoDisponible Estado = "disponible"
	EstadoCerrada    Estado = "cerrada"
	EstadoCancelada  Estado = "cancelada"
)

// Valido reports whether e is a known state.
func (e Estado) Valido() bool {
	switch e {
	case EstadoDisponible, EstadoCerrada, EstadoCancelada:
		return true
	}
	return false
}

// TipoActividad classifies activities (ponencia, taller, tour...). Packages
// grant access per type.
type TipoActividad struct {
	ID          int64  `json:"id_tipo_actividad"`
	Descripcion string `json:"descripcion_tipo_actividad"`
}

// Espacio is a venue with its own maximum capacity.
type Espacio struct {
	ID          int64  `json:"id_espacio"`
	Descripcion string `json:"descripcion_espacio"`
	Capacidad   int    `json:"capacidad_espacio"`
	Ubicacion   string `json:"ubicacion"`
}

// Unidad is the organizational unit (faculty) hosting an activity.
type Unidad struct {
	ID          int64  `json:"id_unidad"`
	Descripcion string `json:"descripcion_unidad"`
}

// Expositor links a persona acting as speaker to their specialty.
type Expositor struct {
	ID           int64  `json:"id_expositor"`
	IDPersona    int64  `json:"id_persona"`
	Especialidad string `json:"especialidad"`
	Procedencia  string `json:"procedencia"`
}

// Actividad is a scheduled conference session with fixed capacity.
type Actividad struct {
	ID              int64     `json:"id_actividad"`
	IDTipoActividad int64     `json:"id_tipo_actividad"`
	IDEspacio       int64     `json:"id_espacio"`
	IDUnidad        int64     `json:"id_unidad"`
	IDExpositor     *int64    `json:"id_expositor,omitempty"`
	CodigoMatricula string    `json:"codigo_matricula"`
	Descripcion     string    `json:"descripcion_actividad"`
	FechaInicio     time.Time `json:"fecha_inicio"`
	FechaFinal      time.Time `json:"fecha_final"`
	HoraInicio      time.Time `json:"hora_inicio"`
	HoraFinal       time.Time `json:"hora_final"`
	Capacidad       int       `json:"capacidad_personas"`
	Precio          float64   `json:"precio_actividad_individual"`
	Estado          Estado    `json:"estado"`
}

// ExpositorDetalle is the speaker block shown in catalog rows.
type ExpositorDetalle struct {
	Nombre       string `json:"nombre"`
	Especialidad string `json:"especialidad"`
	Procedencia  string `json:"procedencia"`
}

// Detalle is a catalog row: the activity joined with its reference entities.
// Inscritos is the current enrollment count.
type Detalle struct {
	Actividad
	TipoActividad string
	Unidad        string
	Espacio       Espacio
	Expositor     *ExpositorDetalle
	Inscritos     int
}

// Filtro narrows the catalog listing. An empty Estado means disponible.
type Filtro struct {
	Tipo   string
	Unidad string
	Estado Estado
}
