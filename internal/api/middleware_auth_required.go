package api

import (
	"github.com/gofiber/fiber/v2"
)

// AuthRequired gates a route behind a valid auth cookie. The handler only
// ever sees an authenticated email; everything else is rejected here.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	token := c.Cookies(authCookieName)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	email, err := handler.parseAuthToken(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	c.Locals(contextEmailKey, email)
	return c.Next()
}
