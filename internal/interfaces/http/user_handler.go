package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jmcasillas/inventario-web/internal/application/auth"
	"github.com/jmcasillas/inventario-web/internal/application/dto"
	"github.com/jmcasillas/inventario-web/internal/domain"
)

// UserHandler maneja las peticiones HTTP para usuarios (solo admin).
// No hay update ni delete: el sistema original no los expone y se preserva
// ese contrato.
type UserHandler struct {
	uc *auth.AuthUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *auth.AuthUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Crear usuario
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "nombre, password, rol"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("CUERPO_INVALIDO", "cuerpo inválido"))
	}
	out, err := h.uc.CreateUser(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error("VALIDACION", err.Error()))
		case errors.Is(err, domain.ErrDuplicateUser):
			return c.Status(fiber.StatusConflict).JSON(dto.Error("USUARIO_DUPLICADO", "el nombre de usuario ya está registrado"))
		}
		log.Error().Err(err).Msg("crear usuario")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("INTERNO", "error interno"))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar usuarios (panel de administración)
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/usuarios [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("listar usuarios")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("INTERNO", "error interno"))
	}
	return c.JSON(out)
}
