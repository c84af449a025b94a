package dto

// CrearUsuarioRequest alta de usuario.
type CrearUsuarioRequest struct {
	Nombre    string  `json:"nombre"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Rol       string  `json:"rol"`
	Telefono  *string `json:"telefono,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
}

// UsuarioResponse representación de lectura de un usuario (sin password).
type UsuarioResponse struct {
	ID        int64   `json:"id"`
	Nombre    string  `json:"nombre"`
	Email     string  `json:"email"`
	Rol       string  `json:"rol"`
	Telefono  *string `json:"telefono,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
}
