// Package models defines enrollment records.
package models

import "time"

// Inscripcion ties a participant to one activity under a package, recorded
// by the staff account at the registration desk.
type Inscripcion struct {
	ID                int64     `json:"id_inscripcion"`
	IDPersona         int64     `json:"id_persona"`
	IDActividad       int64     `json:"id_actividad"`
	IDPaquete         int64     `json:"id_paquete"`
	IDUsuarioRegistro int64     `json:"id_usuario_registro"`
	FechaInscripcion  time.Time `json:"fecha_inscripcion"`
	HoraInscripcion   time.Time `json:"hora_inscripcion"`
	Observacion       string    `json:"observacion,omitempty"`
}
