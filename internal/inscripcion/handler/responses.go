package handler

import (
	"time"

	"coicit/internal/inscripcion/service"
	personamodels "coicit/internal/persona/models"
)

type personaRecibo struct {
	ID             int64                     `json:"id_persona"`
	NombreCompleto string                    `json:"nombre_completo"`
	Cedula         string                    `json:"cedula"`
	TipoPersona    personamodels.TipoPersona `json:"tipo_persona"`
}

type actividadRecibo struct {
	ID              int64  `json:"id_actividad"`
	Descripcion     string `json:"descripcion_actividad"`
	CodigoMatricula string `json:"codigo_matricula"`
	FechaInicio     string `json:"fecha_inicio"`
	HoraInicio      string `json:"hora_inicio"`
}

type paqueteRecibo struct {
	ID     int64  `json:"id_paquete"`
	Nombre string `json:"nombre"`
}

type usuarioRecibo struct {
	ID    int64  `json:"id_usuario"`
	Apodo string `json:"apodo_usuario"`
}

type reciboData struct {
	ID               int64           `json:"id_inscripcion"`
	FechaInscripcion string          `json:"fecha_inscripcion"`
	HoraInscripcion  string          `json:"hora_inscripcion"`
	Persona          personaRecibo   `json:"persona"`
	Actividad        actividadRecibo `json:"actividad"`
	Paquete          paqueteRecibo   `json:"paquete"`
	UsuarioRegistro  usuarioRecibo   `json:"usuario_registro"`
	Observacion      string          `json:"observacion,omitempty"`
}

func newReciboData(r *service.Recibo) reciboData {
	return reciboData{
		ID:               r.Inscripcion.ID,
		FechaInscripcion: r.Inscripcion.FechaInscripcion.Format("2006-01-02"),
		HoraInscripcion:  r.Inscripcion.HoraInscripcion.Format(time.RFC3339),
		Persona: personaRecibo{
			ID:             r.Persona.ID,
			NombreCompleto: r.Persona.NombreCompleto(),
			Cedula:         r.Persona.Cedula,
			TipoPersona:    r.Persona.TipoPersona,
		},
		Actividad: actividadRecibo{
			ID:              r.Actividad.ID,
			Descripcion:     r.Actividad.Descripcion,
			CodigoMatricula: r.Actividad.CodigoMatricula,
			FechaInicio:     r.Actividad.FechaInicio.Format("2006-01-02"),
			HoraInicio:      r.Actividad.HoraInicio.Format("15:04"),
		},
		Paquete: paqueteRecibo{
			ID:     r.Paquete.ID,
			Nombre: r.Paquete.Descripcion,
		},
		UsuarioRegistro: usuarioRecibo{
			ID:    r.Usuario.ID,
			Apodo: r.Usuario.Apodo,
		},
		Observacion: r.Inscripcion.Observacion,
	}
}
