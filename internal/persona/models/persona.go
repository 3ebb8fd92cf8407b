// Package models defines the participant entity and its segment enum.
package models

import "strings"

// TipoPersona is the participant segment. It doubles as the tariff segment
// key, so registration and pricing share one canonical value set.
type TipoPersona string

const (
	TipoEstudianteActivo   TipoPersona = "estudiante_activo"
	TipoEstudianteEgresado TipoPersona = "estudiante_egresado"
	TipoDocenteTC          TipoPersona = "docente_tc"
	TipoDocenteTP          TipoPersona = "docente_tp"
	TipoAdministrativo     TipoPersona = "administrativo"
	TipoExterno            TipoPersona = "externo"
)

var descripcionesTipoPersona = map[TipoPersona]string{
	TipoEstudianteActivo:   "Estudiante Activo",
	TipoEstudianteEgresado: "Estudiante Egresado",
	TipoDocenteTC:          "Docente Tiempo Completo",
	TipoDocenteTP:          "Docente Tiempo Parcial",
	TipoAdministrativo:     "Personal Administrativo",
	TipoExterno:            "Participante Externo",
}

// Valido reports whether t is one of the known segments.
func (t TipoPersona) Valido() bool {
	_, ok := descripcionesTipoPersona[t]
	return ok
}

// Descripcion returns the human-readable segment name, falling back to the
// raw value for unknown segments.
func (t TipoPersona) Descripcion() string {
	if d, ok := descripcionesTipoPersona[t]; ok {
		return d
	}
	return string(t)
}

// Tipos lists every valid segment.
func Tipos() []TipoPersona {
	return []TipoPersona{
		TipoEstudianteActivo, TipoEstudianteEgresado,
		TipoDocenteTC, TipoDocenteTP,
		TipoAdministrativo, TipoExterno,
	}
}

// Persona is a registered participant, identified by national ID (cedula).
type Persona struct {
	ID              int64       `json:"id_persona"`
	Cedula          string      `json:"cedula"`
	PrimerNombre    string      `json:"primer_nombre"`
	SegundoNombre   string      `json:"segundo_nombre,omitempty"`
	PrimerApellido  string      `json:"primer_apellido"`
	SegundoApellido string      `json:"segundo_apellido,omitempty"`
	Correo          string      `json:"correo,omitempty"`
	Telefono        string      `json:"telefono,omitempty"`
	TipoPersona     TipoPersona `json:"tipo_persona"`
}

// NombreCompleto joins the non-empty name parts with single spaces.
func (p *Persona) NombreCompleto() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.PrimerNombre, p.SegundoNombre, p.PrimerApellido, p.SegundoApellido} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// NombreCorto is first name plus first surname, the display form used in
// enrollment receipts and login responses.
func (p *Persona) NombreCorto() string {
	return p.PrimerNombre + " " + p.PrimerApellido
}
