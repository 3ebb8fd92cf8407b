package handler

type loginRequest struct {
	Apodo      string `json:"apodo_usuario" validate:"required"`
	Contrasena string `json:"contrasena" validate:"required"`
}
