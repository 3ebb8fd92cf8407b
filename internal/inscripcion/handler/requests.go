package handler

import "coicit/internal/inscripcion/service"

type crearRequest struct {
	IDPersona         int64  `json:"id_persona" validate:"required,gt=0"`
	IDActividad       int64  `json:"id_actividad" validate:"required,gt=0"`
	IDPaquete         int64  `json:"id_paquete" validate:"required,gt=0"`
	IDUsuarioRegistro int64  `json:"id_usuario_registro" validate:"required,gt=0"`
	Observacion       string `json:"observacion" validate:"max=500"`
}

func (r crearRequest) toSolicitud() service.Solicitud {
	return service.Solicitud{
		IDPersona:         r.IDPersona,
		IDActividad:       r.IDActividad,
		IDPaquete:         r.IDPaquete,
		IDUsuarioRegistro: r.IDUsuarioRegistro,
		Observacion:       r.Observacion,
	}
}
