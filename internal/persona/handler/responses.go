package handler

import "coicit/internal/persona/models"

// buscarResponse keeps the found flag the registration page relies on.
type buscarResponse struct {
	Success bool         `json:"success"`
	Found   bool         `json:"found"`
	Data    *personaData `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
}

type personaData struct {
	models.Persona
	NombreCompleto string `json:"nombre_completo"`
}

func newPersonaData(p *models.Persona) *personaData {
	return &personaData{Persona: *p, NombreCompleto: p.NombreCompleto()}
}
