package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/joachez17/bodega-api/internal/application/audit"
	"github.com/joachez17/bodega-api/internal/application/dto"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/domain/repository"
)

// AuditHandler consulta de la bitácora (solo admin).
type AuditHandler struct {
	recorder *audit.Recorder
}

// NewAuditHandler construye el handler.
func NewAuditHandler(recorder *audit.Recorder) *AuditHandler {
	return &AuditHandler{recorder: recorder}
}

// List godoc
// @Summary      Bitácora de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        actor         query  string  false  "ID del usuario"
// @Param        action        query  string  false  "CREATED | MODIFIED | DELETED | REGISTERED"
// @Param        subject_type  query  string  false  "Product, Supplier, Reception, ..."
// @Param        since         query  string  false  "RFC3339"
// @Param        until         query  string  false  "RFC3339"
// @Param        limit         query  int     false  "default 20, max 100"
// @Param        offset        query  int     false  "default 0"
// @Success      200  {object}  dto.AuditLogResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	since, err := timeParam(c, "since")
	if err != nil {
		return writeError(c, err)
	}
	until, err := timeParam(c, "until")
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.recorder.List(c.UserContext(), repository.AuditFilter{
		ActorID:     c.Query("actor"),
		Action:      entity.AuditAction(c.Query("action")),
		SubjectType: c.Query("subject_type"),
		Since:       since,
		Until:       until,
		Limit:       c.QueryInt("limit", 20),
		Offset:      c.QueryInt("offset", 0),
	})
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.AuditEntryResponse, 0, len(page.Items))
	for _, e := range page.Items {
		items = append(items, dto.AuditEntryResponse{
			ID:          e.ID,
			Actor:       e.ActorName(),
			Action:      string(e.Action),
			SubjectType: e.SubjectType,
			Detail:      e.Detail,
			CreatedAt:   e.CreatedAt,
		})
	}
	return c.JSON(dto.AuditLogResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: page.Total},
	})
}
