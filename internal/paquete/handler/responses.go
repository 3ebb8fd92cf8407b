package handler

import (
	"coicit/internal/paquete/service"
	personamodels "coicit/internal/persona/models"
)

type listarResponse struct {
	Success       bool                  `json:"success"`
	Data          []paqueteRow          `json:"data"`
	SegmentoInfo  *service.SegmentoInfo `json:"segmento_info,omitempty"`
	FechaConsulta string                `json:"fecha_consulta"`
}

type tipoIncluidoRow struct {
	ID             int64  `json:"id"`
	Nombre         string `json:"nombre"`
	CantidadMaxima int    `json:"cantidad_maxima"`
}

type paqueteRow struct {
	ID             int64                                 `json:"id_paquete"`
	Nombre         string                                `json:"nombre"`
	Observacion    string                                `json:"observacion,omitempty"`
	TiposIncluidos []tipoIncluidoRow                     `json:"tipos_actividad_incluidos"`
	Tarifas        map[personamodels.TipoPersona]float64 `json:"tarifas"`
	CostoBase      float64                               `json:"costo_base"`
}

func newPaqueteRow(p service.Resuelto) paqueteRow {
	tipos := make([]tipoIncluidoRow, 0, len(p.Estructura))
	for _, d := range p.Estructura {
		tipos = append(tipos, tipoIncluidoRow{
			ID:             d.IDTipoActividad,
			Nombre:         d.TipoDescripcion,
			CantidadMaxima: d.CantidadMaxima,
		})
	}
	return paqueteRow{
		ID:             p.ID,
		Nombre:         p.Descripcion,
		Observacion:    p.Observacion,
		TiposIncluidos: tipos,
		Tarifas:        p.Tarifas,
		CostoBase:      p.CostoBase,
	}
}
