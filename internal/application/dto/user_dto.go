package dto

// LoginRequest entrada para login. Acepta formulario (vista de login) y JSON
// (clientes de API).
type LoginRequest struct {
	Name     string `json:"nombre" form:"nombre"`
	Password string `json:"password" form:"password"`
}

// LoginResponse salida del login JSON: token Bearer para la API más el usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"usuario"`
}

// CreateUserRequest entrada para crear un usuario (solo admin). El password
// llega en texto y se hashea en el caso de uso; nunca se persiste plano.
type CreateUserRequest struct {
	Name     string `json:"nombre"`
	Password string `json:"password"`
	Role     string `json:"rol"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
	Role string `json:"rol"`
}
