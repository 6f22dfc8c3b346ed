package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jmcasillas/inventario-web/internal/application/auth"
	"github.com/jmcasillas/inventario-web/internal/application/usecase"
	"github.com/jmcasillas/inventario-web/internal/domain/authz"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	Sessions    *session.Store
	JWTSecret   string
}

// Router registra las rutas de la aplicación. Las vistas HTML las sirve la
// capa de presentación; aquí solo viven el flujo de sesión y la API JSON.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC, deps.Sessions)

	// Flujo de sesión del navegador
	app.Post("/", authHandler.LoginForm)
	app.Get("/logout", authHandler.Logout)

	api := app.Group("/api")

	// Auth API (público)
	api.Post("/auth/login", authHandler.LoginAPI)

	// Rutas protegidas: toda petición re-resuelve la identidad contra la DB
	protected := api.Group("", AuthMiddleware(deps.Sessions, deps.JWTSecret, deps.AuthUC))

	productos := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	productos.Get("/", RequirePermission(authz.ActionViewInventory), productHandler.List)
	productos.Post("/", RequirePermission(authz.ActionManageProducts), productHandler.Create)
	productos.Put("/:id", RequirePermission(authz.ActionManageProducts), productHandler.Update)
	productos.Delete("/:id", RequirePermission(authz.ActionManageProducts), productHandler.Delete)

	almacenes := protected.Group("/almacenes")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	almacenes.Get("/", RequirePermission(authz.ActionViewInventory), warehouseHandler.List)
	almacenes.Post("/", RequirePermission(authz.ActionManageWarehouses), warehouseHandler.Create)
	almacenes.Put("/:id", RequirePermission(authz.ActionManageWarehouses), warehouseHandler.Update)
	almacenes.Delete("/:id", RequirePermission(authz.ActionManageWarehouses), warehouseHandler.Delete)

	usuarios := protected.Group("/usuarios")
	userHandler := NewUserHandler(deps.AuthUC)
	usuarios.Post("/", RequirePermission(authz.ActionManageUsers), userHandler.Create)
	usuarios.Get("/", RequirePermission(authz.ActionViewAdminPanel), userHandler.List)
}
