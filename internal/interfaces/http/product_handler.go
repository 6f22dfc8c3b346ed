package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jmcasillas/inventario-web/internal/application/dto"
	"github.com/jmcasillas/inventario-web/internal/application/usecase"
	"github.com/jmcasillas/inventario-web/internal/domain"
)

// ProductHandler maneja las peticiones HTTP para productos (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Filtro por nombre o departamento (sin tildes)"
// @Success      200  {array}  dto.ProductResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("q"))
	if err != nil {
		log.Error().Err(err).Msg("listar productos")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("INTERNO", "error interno"))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	identity, _ := GetIdentity(c)
	var in dto.SaveProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("CUERPO_INVALIDO", "cuerpo inválido"))
	}
	out, err := h.uc.Create(c.Context(), identity.Name, in)
	if err != nil {
		return productError(c, err, "crear producto")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.SaveProductRequest  true  "Datos a sobrescribir"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	identity, _ := GetIdentity(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("ID_INVALIDO", "id inválido"))
	}
	var in dto.SaveProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("CUERPO_INVALIDO", "cuerpo inválido"))
	}
	out, err := h.uc.Update(c.Context(), int64(id), identity.Name, in)
	if err != nil {
		return productError(c, err, "actualizar producto")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("ID_INVALIDO", "id inválido"))
	}
	if err := h.uc.Delete(c.Context(), int64(id)); err != nil {
		return productError(c, err, "eliminar producto")
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// productError mapea errores de dominio a respuestas HTTP. Los errores no
// clasificados se registran y devuelven un mensaje genérico: el texto crudo
// del almacén nunca llega al cliente.
func productError(c *fiber.Ctx, err error, op string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("VALIDACION", err.Error()))
	case errors.Is(err, domain.ErrWarehouseNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("ALMACEN_INVALIDO", "el almacén referenciado no existe"))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Error("NO_ENCONTRADO", "producto no encontrado"))
	}
	log.Error().Err(err).Msg(op)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("INTERNO", "error interno"))
}
