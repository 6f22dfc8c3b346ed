package entity

// Roles válidos para User. Conjunto cerrado: el resto de valores se rechaza al crear.
const (
	RoleAdmin     = "admin"
	RoleProductos = "productos"
	RoleAlmacenes = "almacenes"
)

// ValidRole indica si el rol pertenece al conjunto cerrado.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleProductos, RoleAlmacenes:
		return true
	}
	return false
}

// User representa un usuario del sistema. Solo un admin puede crearlos;
// no existe endpoint de actualización ni borrado.
type User struct {
	ID           int64
	Name         string // único en toda la tabla
	PasswordHash string // bcrypt hash, nunca plano después de persistir
	Role         string // admin, productos, almacenes
}
