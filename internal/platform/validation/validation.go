// Package validation wraps go-playground/validator so handlers translate
// struct-tag failures into the envelope's details list in one place.
package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"

	dErrors "coicit/pkg/domain-errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Detail is one per-field validation failure.
type Detail struct {
	Campo string `json:"campo"`
	Regla string `json:"regla"`
}

// Struct validates v by its struct tags. On failure it returns a bad-request
// domain error carrying one Detail per offending field.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "Datos de entrada inválidos")
	}
	details := make([]Detail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, Detail{Campo: fe.Field(), Regla: fe.Tag()})
	}
	return dErrors.New(dErrors.CodeBadRequest, "Datos de entrada inválidos").WithDetails(details)
}
