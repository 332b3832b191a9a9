package api

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lunover/attendly/internal/services"
)

type sendLinkInput struct {
	Email string `json:"email" form:"email"`
}

// SendLink emails a sign-in link to an authorized address.
func (handler *Handler) SendLink(c *fiber.Ctx) error {
	input := sendLinkInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		return apiError(c, fiber.StatusBadRequest, "email is required")
	}
	if !validEmailShape(email) {
		return apiError(c, fiber.StatusBadRequest, "invalid email format")
	}
	if !handler.emailAllowed(email) {
		return apiError(c, fiber.StatusForbidden, "this email is not authorized to access this application")
	}

	token, err := handler.buildAuthToken(email, time.Now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to issue sign-in token")
	}

	link := services.BuildMagicLink(handler.baseURL, token, email)
	if err := handler.mailer.SendMagicLink(c.Context(), email, link); err != nil {
		log.Printf("send magic link to %s failed: %v", email, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to send email")
	}

	return apiSuccess(c, fiber.Map{"message": "magic link sent to your email"})
}

// Verify checks an emailed token, starts the session and redirects to the
// dashboard.
func (handler *Handler) Verify(c *fiber.Ctx) error {
	token := c.Query("token")
	email := c.Query("email")
	if token == "" || email == "" {
		return c.Redirect("/login?error=missing_token", fiber.StatusSeeOther)
	}

	tokenEmail, err := handler.parseAuthToken(token)
	if err != nil {
		return c.Redirect("/login?error=invalid_token", fiber.StatusSeeOther)
	}
	if tokenEmail != email {
		return c.Redirect("/login?error=email_mismatch", fiber.StatusSeeOther)
	}

	handler.setAuthCookie(c, token)
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return apiSuccess(c, nil)
}

// Me reports who the current session belongs to.
func (handler *Handler) Me(c *fiber.Ctx) error {
	email, ok := currentEmail(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{"email": email})
}
