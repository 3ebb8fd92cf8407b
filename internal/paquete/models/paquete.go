// Package models defines packages, their included activity types and their
// time-versioned tariffs.
package models

import (
	"time"

	personamodels "coicit/internal/persona/models"
)

// Paquete is a bundle granting access to a set of activity types.
type Paquete struct {
	ID          int64   `json:"id_paquete"`
	Descripcion string  `json:"descripcion_paquete"`
	Observacion string  `json:"observacion,omitempty"`
	CostoBase   float64 `json:"costo_paquete"`
}

// DetalleEstructura is one included activity type with its per-type
// enrollment ceiling.
type DetalleEstructura struct {
	IDTipoActividad int64  `json:"id"`
	TipoDescripcion string `json:"nombre"`
	CantidadMaxima  int    `json:"cantidad_maxima"`
}

// Tarifa is one price point: segment, amount and the date it takes effect.
type Tarifa struct {
	ID            int64                    `json:"id_tarifa"`
	IDPaquete     int64                    `json:"id_paquete"`
	Segmento      personamodels.TipoPersona `json:"segmento"`
	Costo         float64                  `json:"costo"`
	VigenciaDesde time.Time                `json:"vigencia_desde"`
}

// Completo is a package with its full structure and tariff history.
type Completo struct {
	Paquete
	Estructura []DetalleEstructura
	Tarifas    []Tarifa
}

// ResolverTarifas picks, per segment, the tariff with the latest effective
// date not after fecha. Segments with no tariff in effect are absent from the
// result.
func ResolverTarifas(tarifas []Tarifa, fecha time.Time) map[personamodels.TipoPersona]float64 {
	vigentes := make(map[personamodels.TipoPersona]Tarifa)
	for _, t := range tarifas {
		if t.VigenciaDesde.After(fecha) {
			continue
		}
		actual, ok := vigentes[t.Segmento]
		if !ok || t.VigenciaDesde.After(actual.VigenciaDesde) {
			vigentes[t.Segmento] = t
		}
	}
	out := make(map[personamodels.TipoPersona]float64, len(vigentes))
	for seg, t := range vigentes {
		out[seg] = t.Costo
	}
	return out
}
