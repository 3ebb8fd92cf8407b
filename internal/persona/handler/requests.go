package handler

import "coicit/internal/persona/models"

type registrarRequest struct {
	Cedula          string `json:"cedula" validate:"required"`
	PrimerNombre    string `json:"primer_nombre" validate:"required"`
	SegundoNombre   string `json:"segundo_nombre"`
	PrimerApellido  string `json:"primer_apellido" validate:"required"`
	SegundoApellido string `json:"segundo_apellido"`
	Correo          string `json:"correo" validate:"omitempty,email"`
	Telefono        string `json:"telefono"`
	TipoPersona     string `json:"tipo_persona" validate:"required"`
}

func (r registrarRequest) toPersona() models.Persona {
	return models.Persona{
		Cedula:          r.Cedula,
		PrimerNombre:    r.PrimerNombre,
		SegundoNombre:   r.SegundoNombre,
		PrimerApellido:  r.PrimerApellido,
		SegundoApellido: r.SegundoApellido,
		Correo:          r.Correo,
		Telefono:        r.Telefono,
		TipoPersona:     models.TipoPersona(r.TipoPersona),
	}
}
