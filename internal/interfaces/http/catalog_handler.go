package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/joachez17/bodega-api/internal/application/dto"
	"github.com/joachez17/bodega-api/internal/application/usecase"
)

// CatalogHandler CRUD de proveedores, áreas y racks (protegido).
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func listJSON(c *fiber.Ctx, items interface{}, page dto.PageResponse) error {
	return c.JSON(fiber.Map{"items": items, "page": page})
}

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateSupplier(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetSupplier godoc
// @Summary      Obtener proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *CatalogHandler) GetSupplier(c *fiber.Ctx) error {
	out, err := h.uc.GetSupplier(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Router       /api/suppliers [get]
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	p := pageParams(c)
	items, page, err := h.uc.ListSuppliers(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return listJSON(c, items, page)
}

// UpdateSupplier godoc
// @Summary      Actualizar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proveedor"
// @Param        body  body  dto.SupplierRequest  true  "Datos del proveedor"
// @Success      200   {object}  dto.SupplierResponse
// @Router       /api/suppliers/{id} [put]
func (h *CatalogHandler) UpdateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateSupplier(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteSupplier godoc
// @Summary      Eliminar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Param        id   path  string  true  "ID del proveedor"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [delete]
func (h *CatalogHandler) DeleteSupplier(c *fiber.Ctx) error {
	if err := h.uc.DeleteSupplier(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateArea godoc
// @Summary      Crear área
// @Tags         areas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AreaRequest  true  "Datos del área"
// @Success      201   {object}  dto.AreaResponse
// @Router       /api/areas [post]
func (h *CatalogHandler) CreateArea(c *fiber.Ctx) error {
	var in dto.AreaRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateArea(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetArea godoc
// @Summary      Obtener área
// @Tags         areas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del área"
// @Success      200  {object}  dto.AreaResponse
// @Router       /api/areas/{id} [get]
func (h *CatalogHandler) GetArea(c *fiber.Ctx) error {
	out, err := h.uc.GetArea(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListAreas godoc
// @Summary      Listar áreas
// @Tags         areas
// @Security     Bearer
// @Produce      json
// @Router       /api/areas [get]
func (h *CatalogHandler) ListAreas(c *fiber.Ctx) error {
	p := pageParams(c)
	items, page, err := h.uc.ListAreas(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return listJSON(c, items, page)
}

// UpdateArea godoc
// @Summary      Actualizar área
// @Tags         areas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del área"
// @Param        body  body  dto.AreaRequest  true  "Datos del área"
// @Success      200   {object}  dto.AreaResponse
// @Router       /api/areas/{id} [put]
func (h *CatalogHandler) UpdateArea(c *fiber.Ctx) error {
	var in dto.AreaRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateArea(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteArea godoc
// @Summary      Eliminar área
// @Tags         areas
// @Security     Bearer
// @Param        id   path  string  true  "ID del área"
// @Success      204
// @Router       /api/areas/{id} [delete]
func (h *CatalogHandler) DeleteArea(c *fiber.Ctx) error {
	if err := h.uc.DeleteArea(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateRack godoc
// @Summary      Crear rack
// @Tags         racks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RackRequest  true  "Código y descripción"
// @Success      201   {object}  dto.RackResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/racks [post]
func (h *CatalogHandler) CreateRack(c *fiber.Ctx) error {
	var in dto.RackRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateRack(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetRack godoc
// @Summary      Obtener rack
// @Tags         racks
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del rack"
// @Success      200   {object}  dto.RackResponse
// @Router       /api/racks/{code} [get]
func (h *CatalogHandler) GetRack(c *fiber.Ctx) error {
	out, err := h.uc.GetRack(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListRacks godoc
// @Summary      Listar racks
// @Tags         racks
// @Security     Bearer
// @Produce      json
// @Router       /api/racks [get]
func (h *CatalogHandler) ListRacks(c *fiber.Ctx) error {
	p := pageParams(c)
	items, page, err := h.uc.ListRacks(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return listJSON(c, items, page)
}

// UpdateRack godoc
// @Summary      Actualizar rack
// @Tags         racks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código del rack"
// @Param        body  body  dto.RackRequest  true  "Descripción"
// @Success      200   {object}  dto.RackResponse
// @Router       /api/racks/{code} [put]
func (h *CatalogHandler) UpdateRack(c *fiber.Ctx) error {
	var in dto.RackRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	// el código viene de la ruta y no se puede cambiar
	in.Code = c.Params("code")
	if ok, err := validateDTO(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateRack(c.UserContext(), GetUserID(c), in.Code, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteRack godoc
// @Summary      Eliminar rack
// @Tags         racks
// @Security     Bearer
// @Param        code  path  string  true  "Código del rack"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/racks/{code} [delete]
func (h *CatalogHandler) DeleteRack(c *fiber.Ctx) error {
	if err := h.uc.DeleteRack(c.UserContext(), GetUserID(c), c.Params("code")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
