package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joachez17/bodega-api/internal/application/dto"
	"github.com/joachez17/bodega-api/internal/domain"
	"github.com/joachez17/bodega-api/pkg/validator"
)

// pageParams lee limit/offset de la query.
func pageParams(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	p.Normalize()
	return p
}

// timeParam lee un parámetro RFC3339 opcional.
func timeParam(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe ser RFC3339", domain.ErrInvalidInput, key)
	}
	return &t, nil
}

// parseAndValidate lee el cuerpo JSON y aplica los tags `validate` del DTO.
// Devuelve false si ya respondió con error.
func parseAndValidate(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badBody(c)
	}
	return validateDTO(c, out)
}

// validateDTO aplica los tags `validate` a un DTO ya poblado.
func validateDTO(c *fiber.Ctx, out interface{}) (bool, error) {
	if errs := validator.ValidateStruct(out); len(errs) > 0 {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: validator.Message(errs),
			Details: errs,
		})
	}
	return true, nil
}
