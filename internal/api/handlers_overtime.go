package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type overtimeInput struct {
	RangeStart string `json:"range_start" form:"range_start"`
	RangeEnd   string `json:"range_end" form:"range_end"`
	Overtime   bool   `json:"overtime" form:"overtime"`
}

// SetOvertime toggles the overtime annotation on one cached entry under one
// exact range key. An entry cached under a different key than the one
// displayed is left untouched, and that is reported as success.
func (handler *Handler) SetOvertime(c *fiber.Ctx) error {
	entryID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid entry id")
	}

	input := overtimeInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if input.RangeStart == "" || input.RangeEnd == "" {
		return apiError(c, fiber.StatusBadRequest, "range_start and range_end are required")
	}

	if err := handler.entryCache.SetOvertime(entryID, input.RangeStart, input.RangeEnd, input.Overtime); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update overtime")
	}
	return apiSuccess(c, nil)
}
