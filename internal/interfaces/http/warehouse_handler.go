package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jmcasillas/inventario-web/internal/application/dto"
	"github.com/jmcasillas/inventario-web/internal/application/usecase"
	"github.com/jmcasillas/inventario-web/internal/domain"
)

// WarehouseHandler maneja las peticiones HTTP para almacenes (protegido).
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// List godoc
// @Summary      Listar almacenes
// @Tags         almacenes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/almacenes [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("listar almacenes")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("INTERNO", "error interno"))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear almacén
// @Tags         almacenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveWarehouseRequest  true  "nombre"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/almacenes [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	identity, _ := GetIdentity(c)
	var in dto.SaveWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("CUERPO_INVALIDO", "cuerpo inválido"))
	}
	out, err := h.uc.Create(c.Context(), identity.Name, in)
	if err != nil {
		return warehouseError(c, err, "crear almacén")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar almacén
// @Tags         almacenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del almacén"
// @Param        body  body  dto.SaveWarehouseRequest  true  "nombre"
// @Success      200   {object}  dto.WarehouseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/almacenes/{id} [put]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	identity, _ := GetIdentity(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("ID_INVALIDO", "id inválido"))
	}
	var in dto.SaveWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("CUERPO_INVALIDO", "cuerpo inválido"))
	}
	out, err := h.uc.Update(c.Context(), int64(id), identity.Name, in)
	if err != nil {
		return warehouseError(c, err, "actualizar almacén")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar almacén
// @Tags         almacenes
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del almacén"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      400  {object}  dto.ErrorResponse  "almacén en uso por productos"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/almacenes/{id} [delete]
func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("ID_INVALIDO", "id inválido"))
	}
	if err := h.uc.Delete(c.Context(), int64(id)); err != nil {
		return warehouseError(c, err, "eliminar almacén")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func warehouseError(c *fiber.Ctx, err error, op string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("VALIDACION", err.Error()))
	case errors.Is(err, domain.ErrWarehouseInUse):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("ALMACEN_EN_USO",
			"no se puede eliminar: el almacén está siendo usado por uno o más productos"))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Error("NO_ENCONTRADO", "almacén no encontrado"))
	}
	log.Error().Err(err).Msg(op)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("INTERNO", "error interno"))
}
