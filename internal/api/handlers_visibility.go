package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lunover/attendly/internal/db"
)

type visibilityInput struct {
	Settings []visibilitySettingInput `json:"settings"`
}

type visibilitySettingInput struct {
	Email   string `json:"email"`
	Visible bool   `json:"visible"`
}

func (handler *Handler) ListVisibility(c *fiber.Ctx) error {
	visibility, err := handler.repositories.Visibility.ListAll()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load visibility settings")
	}
	return c.JSON(fiber.Map{"visibility": visibility})
}

// UpdateVisibility bulk-upserts visibility settings in one transaction.
func (handler *Handler) UpdateVisibility(c *fiber.Ctx) error {
	input := visibilityInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(input.Settings) == 0 {
		return apiError(c, fiber.StatusBadRequest, "settings are required")
	}

	settings := make([]db.VisibilitySetting, 0, len(input.Settings))
	for _, setting := range input.Settings {
		if !validEmailShape(setting.Email) {
			return apiError(c, fiber.StatusBadRequest, "invalid email: "+setting.Email)
		}
		settings = append(settings, db.VisibilitySetting{
			Email:   setting.Email,
			Visible: setting.Visible,
		})
	}

	if err := handler.repositories.Visibility.SetMany(settings); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update visibility settings")
	}
	return apiSuccess(c, nil)
}
