// Package authz define la política de autorización: mapea (rol, acción) a
// permitido/denegado. Es una función pura de pertenencia a rol; no hay
// verificación de propiedad por recurso (cualquier usuario con rol
// "productos" puede editar cualquier producto).
package authz

import "github.com/jmcasillas/inventario-web/internal/domain/entity"

// Action identifica una operación protegida de la aplicación.
type Action string

const (
	ActionViewInventory    Action = "inventario.ver"
	ActionManageProducts   Action = "productos.gestionar"
	ActionManageWarehouses Action = "almacenes.gestionar"
	ActionManageUsers      Action = "usuarios.gestionar"
	ActionViewAdminPanel   Action = "admin.panel"
)

// policy tabla de roles permitidos por acción. Una entrada vacía significa
// "cualquier identidad autenticada".
var policy = map[Action][]string{
	ActionViewInventory:    {},
	ActionManageProducts:   {entity.RoleAdmin, entity.RoleProductos},
	ActionManageWarehouses: {entity.RoleAdmin, entity.RoleAlmacenes},
	ActionManageUsers:      {entity.RoleAdmin},
	ActionViewAdminPanel:   {entity.RoleAdmin},
}

// Allow indica si el rol puede ejecutar la acción. Acciones desconocidas se
// deniegan siempre.
func Allow(role string, action Action) bool {
	roles, ok := policy[action]
	if !ok {
		return false
	}
	if len(roles) == 0 {
		return role != ""
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
