package api

import (
	"github.com/gofiber/fiber/v2"
)

const (
	authCookieName  = "attendly_auth"
	contextEmailKey = "current_email"
)

// currentEmail returns the authenticated email set by AuthRequired.
func currentEmail(c *fiber.Ctx) (string, bool) {
	email, ok := c.Locals(contextEmailKey).(string)
	return email, ok && email != ""
}
