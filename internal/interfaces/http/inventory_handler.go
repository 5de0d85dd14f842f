package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/joachez17/bodega-api/internal/application/dto"
	"github.com/joachez17/bodega-api/internal/application/inventory"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/domain/repository"
)

// InventoryHandler maneja recepciones, despachos, Kardex y reposición (protegido).
type InventoryHandler struct {
	uc            *inventory.MovementUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.MovementUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, replenishment: replenishment}
}

// SubmitReception godoc
// @Summary      Registrar recepción
// @Description  Entrada de stock desde un proveedor. Todas las líneas se aplican o ninguna.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterReceptionRequest  true  "supplier_id, document_ref, lines"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/receptions [post]
func (h *InventoryHandler) SubmitReception(c *fiber.Ctx) error {
	var in dto.RegisterReceptionRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.SubmitReceptionFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SubmitDispatch godoc
// @Summary      Registrar despacho
// @Description  Salida de stock hacia un área. Si alguna línea no tiene stock suficiente se rechaza el despacho completo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterDispatchRequest  true  "requester_name, area_id, reason, lines"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/dispatches [post]
func (h *InventoryHandler) SubmitDispatch(c *fiber.Ctx) error {
	var in dto.RegisterDispatchRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.SubmitDispatchFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Reporte de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        kind    query  string  false  "Reception | Dispatch"
// @Param        since   query  string  false  "RFC3339"
// @Param        until   query  string  false  "RFC3339"
// @Param        limit   query  int     false  "default 20, max 100"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	since, err := timeParam(c, "since")
	if err != nil {
		return writeError(c, err)
	}
	until, err := timeParam(c, "until")
	if err != nil {
		return writeError(c, err)
	}
	page := pageParams(c)
	list, total, err := h.uc.ListMovements(c.UserContext(), repository.MovementFilter{
		Kind:   entity.MovementKind(c.Query("kind")),
		Since:  since,
		Until:  until,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *inventory.ToMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// GetMovement godoc
// @Summary      Detalle de un movimiento
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	m, err := h.uc.GetMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToMovementResponse(m))
}

// GetKardex godoc
// @Summary      Kardex de un producto
// @Description  Historial de cambios de stock en orden cronológico.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Success      200   {object}  dto.KardexResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{code}/kardex [get]
func (h *InventoryHandler) GetKardex(c *fiber.Ctx) error {
	p, entries, err := h.uc.GetLedgerHistory(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToKardexResponse(p, entries))
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo su stock mínimo con la cantidad sugerida de pedido, mayor déficit primero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "total, replenishments []dto.ReplenishmentSuggestionDTO"
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
