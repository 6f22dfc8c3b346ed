package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog/log"

	"github.com/jmcasillas/inventario-web/internal/application/auth"
	"github.com/jmcasillas/inventario-web/internal/application/dto"
	"github.com/jmcasillas/inventario-web/internal/domain"
)

// AuthHandler maneja login (formulario y JSON) y logout.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	store *session.Store
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, store *session.Store) *AuthHandler {
	return &AuthHandler{uc: uc, store: store}
}

// LoginForm procesa el formulario de login de la vista de entrada.
// Éxito: sesión atada al id del usuario y redirección a la vista de productos.
// Fallo: redirección de vuelta al login con indicador de error, sin sesión.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Redirect("/?error=credenciales", fiber.StatusSeeOther)
	}
	user, err := h.uc.Login(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Redirect("/?error=credenciales", fiber.StatusSeeOther)
		}
		log.Error().Err(err).Msg("login")
		return c.Redirect("/?error=interno", fiber.StatusSeeOther)
	}
	sess, err := h.store.Get(c)
	if err != nil {
		log.Error().Err(err).Msg("abrir sesión")
		return c.Redirect("/?error=interno", fiber.StatusSeeOther)
	}
	sess.Set(SessionUserKey, user.ID)
	if err := sess.Save(); err != nil {
		log.Error().Err(err).Msg("guardar sesión")
		return c.Redirect("/?error=interno", fiber.StatusSeeOther)
	}
	return c.Redirect("/productos", fiber.StatusSeeOther)
}

// LoginAPI godoc
// @Summary      Iniciar sesión (API)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "nombre, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) LoginAPI(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("CUERPO_INVALIDO", "cuerpo inválido"))
	}
	out, err := h.uc.LoginToken(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("CREDENCIALES", "nombre o password incorrectos"))
		}
		log.Error().Err(err).Msg("login api")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("INTERNO", "error interno"))
	}
	return c.JSON(out)
}

// Logout invalida la sesión actual y redirige al login. Es idempotente:
// llamarlo sin sesión activa no es un error.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, err := h.store.Get(c); err == nil {
		_ = sess.Destroy()
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}
