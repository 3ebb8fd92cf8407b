package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	personamodels "coicit/internal/persona/models"
)

func fecha(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestResolverTarifas(t *testing.T) {
	historia := []Tarifa{
		{Segmento: personamodels.TipoEstudianteActivo, Costo: 10, VigenciaDesde: fecha(2025, 1, 1)},
		{Segmento: personamodels.TipoEstudianteActivo, Costo: 15, VigenciaDesde: fecha(2025, 6, 1)},
		{Segmento: personamodels.TipoEstudianteActivo, Costo: 20, VigenciaDesde: fecha(2025, 10, 1)},
		{Segmento: personamodels.TipoExterno, Costo: 40, VigenciaDesde: fecha(2025, 6, 1)},
	}

	casos := []struct {
		nombre   string
		fecha    time.Time
		segmento personamodels.TipoPersona
		espera   float64
		presente bool
	}{
		{"before any tariff", fecha(2024, 12, 31), personamodels.TipoEstudianteActivo, 0, false},
		{"first tariff in effect", fecha(2025, 3, 1), personamodels.TipoEstudianteActivo, 10, true},
		{"exact effective date", fecha(2025, 6, 1), personamodels.TipoEstudianteActivo, 15, true},
		{"latest of several", fecha(2025, 12, 1), personamodels.TipoEstudianteActivo, 20, true},
		{"other segment unaffected", fecha(2025, 12, 1), personamodels.TipoExterno, 40, true},
		{"segment without history", fecha(2025, 12, 1), personamodels.TipoDocenteTC, 0, false},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			resueltas := ResolverTarifas(historia, c.fecha)
			costo, ok := resueltas[c.segmento]
			assert.Equal(t, c.presente, ok)
			if c.presente {
				assert.Equal(t, c.espera, costo)
			}
		})
	}
}

func TestResolverTarifasOrdenIndependiente(t *testing.T) {
	// Resolution must not depend on the order tariff rows arrive in.
	desordenada := []Tarifa{
		{Segmento: personamodels.TipoExterno, Costo: 50, VigenciaDesde: fecha(2025, 9, 1)},
		{Segmento: personamodels.TipoExterno, Costo: 40, VigenciaDesde: fecha(2025, 1, 1)},
		{Segmento: personamodels.TipoExterno, Costo: 45, VigenciaDesde: fecha(2025, 5, 1)},
	}
	resueltas := ResolverTarifas(desordenada, fecha(2025, 7, 1))
	assert.Equal(t, 45.0, resueltas[personamodels.TipoExterno])
}
