package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/joachez17/bodega-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del panel de inicio.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del panel de inicio
// @Description  Conteo de productos, stock bajo (top 5), recepciones y despachos de hoy y del mes, últimos movimientos.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        since  query  string  false  "RFC3339, filtra actividad reciente"
// @Param        until  query  string  false  "RFC3339, filtra actividad reciente"
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	since, err := timeParam(c, "since")
	if err != nil {
		return writeError(c, err)
	}
	until, err := timeParam(c, "until")
	if err != nil {
		return writeError(c, err)
	}
	summary, err := h.uc.GetSummary(c.UserContext(), since, until)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
