package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/joachez17/bodega-api/internal/application/dto"
	"github.com/joachez17/bodega-api/pkg/jwt"
)

// Locals donde queda el actor autenticado.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// AuthMiddleware exige `Authorization: Bearer <token>` y deja el actor en c.Locals.
// Los handlers lo leen con GetUserID y lo pasan explícito a los casos de uso.
func AuthMiddleware(verifier *jwt.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "MISSING_TOKEN", "Authorization header requerido")
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return unauthorized(c, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		return authenticate(c, verifier, strings.TrimSpace(token))
	}
}

// authenticate verifica el token y continúa la cadena con el actor cargado.
func authenticate(c *fiber.Ctx, verifier *jwt.Verifier, token string) error {
	if token == "" {
		return unauthorized(c, "MISSING_TOKEN", "token vacío")
	}
	actor, err := verifier.Verify(token)
	if err != nil {
		return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
	}
	c.Locals(LocalUserID, actor.UserID)
	c.Locals(LocalRole, actor.Role)
	return c.Next()
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// GetUserID actor de la petición; vacío fuera de las rutas protegidas.
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetRole rol del actor.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}
