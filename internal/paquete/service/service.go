// Package service resolves package pricing by segment and effective date.
package service

import (
	"context"
	"time"

	"coicit/internal/paquete/models"
	personamodels "coicit/internal/persona/models"
	dErrors "coicit/pkg/domain-errors"
)

// Store is the persistence surface pricing needs.
type Store interface {
	ListarCompletos(ctx context.Context) ([]models.Completo, error)
}

// Resuelto is a package with its tariffs resolved for one as-of date.
type Resuelto struct {
	models.Paquete
	Estructura []models.DetalleEstructura
	Tarifas    map[personamodels.TipoPersona]float64
}

// SegmentoInfo describes the requested segment filter.
type SegmentoInfo struct {
	Segmento      personamodels.TipoPersona `json:"segmento"`
	Descripcion   string                    `json:"descripcion"`
	FechaVigencia string                    `json:"fecha_vigencia"`
}

// Service computes segment pricing for packages.
type Service struct {
	paquetes Store
}

// New constructs a paquete service.
func New(paquetes Store) *Service {
	return &Service{paquetes: paquetes}
}

// Listar returns every package with, per segment, the tariff in effect on
// fecha. When segmento is non-empty the tariff map is narrowed to it and a
// SegmentoInfo block is returned.
func (s *Service) Listar(ctx context.Context, segmento personamodels.TipoPersona, fecha time.Time) ([]Resuelto, *SegmentoInfo, error) {
	if segmento != "" && !segmento.Valido() {
		return nil, nil, dErrors.New(dErrors.CodeBadRequest, "Segmento inválido")
	}

	completos, err := s.paquetes.ListarCompletos(ctx)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "listar paquetes")
	}

	out := make([]Resuelto, 0, len(completos))
	for _, p := range completos {
		tarifas := models.ResolverTarifas(p.Tarifas, fecha)
		if segmento != "" {
			if costo, ok := tarifas[segmento]; ok {
				tarifas = map[personamodels.TipoPersona]float64{segmento: costo}
			} else {
				tarifas = map[personamodels.TipoPersona]float64{}
			}
		}
		out = append(out, Resuelto{
			Paquete:    p.Paquete,
			Estructura: p.Estructura,
			Tarifas:    tarifas,
		})
	}

	var info *SegmentoInfo
	if segmento != "" {
		info = &SegmentoInfo{
			Segmento:      segmento,
			Descripcion:   segmento.Descripcion(),
			FechaVigencia: fecha.Format("2006-01-02"),
		}
	}
	return out, info, nil
}
