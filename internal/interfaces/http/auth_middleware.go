package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog/log"

	"github.com/jmcasillas/inventario-web/internal/application/dto"
	"github.com/jmcasillas/inventario-web/internal/domain/authz"
	"github.com/jmcasillas/inventario-web/internal/domain/entity"
	"github.com/jmcasillas/inventario-web/pkg/jwt"
)

// Keys para la sesión de navegador y para los locals de Fiber.
const (
	SessionUserKey = "user_id"
	localIdentity  = "identidad"
)

// Identity es el contexto autenticado de la petición. Se resuelve en cada
// request re-cargando la fila del usuario; nunca se lee de estado global.
type Identity struct {
	ID   int64
	Name string
	Role string
}

// identityResolver es el contrato mínimo que necesita el middleware para
// re-cargar el usuario de una sesión. Lo implementa *auth.AuthUseCase; el uso
// de interfaz evita el import circular y simplifica los tests.
type identityResolver interface {
	Identify(ctx context.Context, id int64) (*entity.User, error)
}

// AuthMiddleware resuelve la identidad del llamador. Acepta dos credenciales:
// la cookie de sesión del navegador o un Bearer Token JWT (clientes de API).
// En ambos casos re-carga la fila del usuario; si ya no existe, la sesión se
// trata como inválida y se exige re-autenticación.
func AuthMiddleware(store *session.Store, jwtSecret string, resolver identityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, hasSession := sessionUserID(store, c)
		if !hasSession {
			var ok bool
			userID, ok = bearerUserID(jwtSecret, c)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(
					dto.Error("NO_AUTENTICADO", "inicie sesión para continuar"))
			}
		}

		user, err := resolver.Identify(c.Context(), userID)
		if err != nil {
			log.Error().Err(err).Int64("user_id", userID).Msg("resolver identidad")
			return c.Status(fiber.StatusServiceUnavailable).JSON(
				dto.Error("IDENTIDAD_NO_DISPONIBLE", "no se pudo verificar la sesión, intente más tarde"))
		}
		if user == nil {
			// El usuario fue eliminado después de establecer la sesión.
			if hasSession {
				if sess, serr := store.Get(c); serr == nil {
					_ = sess.Destroy()
				}
			}
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.Error("SESION_INVALIDA", "la sesión ya no es válida, inicie sesión de nuevo"))
		}

		c.Locals(localIdentity, Identity{ID: user.ID, Name: user.Name, Role: user.Role})
		return c.Next()
	}
}

// RequirePermission autoriza la acción contra la política de roles. Debe usarse
// DESPUÉS de AuthMiddleware. La denegación corta antes de tocar el almacén.
func RequirePermission(action authz.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.Error("NO_AUTENTICADO", "inicie sesión para continuar"))
		}
		if !authz.Allow(identity.Role, action) {
			return c.Status(fiber.StatusForbidden).JSON(
				dto.Error("ROL_INSUFICIENTE", "su rol no permite esta operación"))
		}
		return c.Next()
	}
}

// GetIdentity devuelve la identidad resuelta por AuthMiddleware.
func GetIdentity(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(localIdentity).(Identity)
	return identity, ok
}

func sessionUserID(store *session.Store, c *fiber.Ctx) (int64, bool) {
	sess, err := store.Get(c)
	if err != nil {
		return 0, false
	}
	id, ok := sess.Get(SessionUserKey).(int64)
	return id, ok
}

func bearerUserID(jwtSecret string, c *fiber.Ctx) (int64, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, false
	}
	userID, _, err := jwt.Parse(jwtSecret, strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return userID, true
}
