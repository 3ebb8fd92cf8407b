package handler

import (
	"coicit/internal/auth/models"
	"coicit/internal/auth/service"
	personamodels "coicit/internal/persona/models"
)

type personaSesion struct {
	ID             int64                     `json:"id_persona"`
	Cedula         string                    `json:"cedula"`
	NombreCompleto string                    `json:"nombre_completo"`
	TipoPersona    personamodels.TipoPersona `json:"tipo_persona"`
}

type usuarioSesion struct {
	ID      int64         `json:"id_usuario"`
	Apodo   string        `json:"apodo_usuario"`
	Rol     models.Rol    `json:"rol"`
	Persona personaSesion `json:"persona"`
}

type sesionData struct {
	Usuario usuarioSesion `json:"usuario"`
	Token   string        `json:"token"`
}

func newSesionData(s *service.Sesion) sesionData {
	return sesionData{
		Usuario: usuarioSesion{
			ID:    s.Usuario.ID,
			Apodo: s.Usuario.Apodo,
			Rol:   s.Usuario.Rol,
			Persona: personaSesion{
				ID:             s.Persona.ID,
				Cedula:         s.Persona.Cedula,
				NombreCompleto: s.Persona.NombreCompleto(),
				TipoPersona:    s.Persona.TipoPersona,
			},
		},
		Token: s.Token,
	}
}
