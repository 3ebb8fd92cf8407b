// Package models defines staff accounts for the registration desk.
package models

// Rol gates what a staff account may do. Captadores only register
// enrollments; admins also see the statistics dashboard.
type Rol string

const (
	RolAdmin    Rol = "admin"
	RolCaptador Rol = "captador"
)

// Valido reports whether r is a known role.
func (r Rol) Valido() bool {
	return r == RolAdmin || r == RolCaptador
}

// Usuario is a staff account, always backed by a persona record.
type Usuario struct {
	ID         int64  `json:"id_usuario"`
	Apodo      string `json:"apodo_usuario"`
	Contrasena string `json:"-"`
	Rol        Rol    `json:"rol"`
	IDPersona  int64  `json:"id_persona"`
}
