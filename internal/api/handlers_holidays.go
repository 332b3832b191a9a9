package api

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type holidayInput struct {
	Date string `json:"date" form:"date"`
	Name string `json:"name" form:"name"`
}

func (handler *Handler) ListHolidays(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")
	if from != "" || to != "" {
		if !isoDatePattern.MatchString(from) || !isoDatePattern.MatchString(to) {
			return apiError(c, fiber.StatusBadRequest, "from and to must be YYYY-MM-DD dates")
		}
		dates, err := handler.repositories.Holidays.ListRangeDates(from, to)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load holidays")
		}
		return c.JSON(fiber.Map{"holidays": dates})
	}

	holidays, err := handler.repositories.Holidays.ListAll()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load holidays")
	}
	return c.JSON(fiber.Map{"holidays": holidays})
}

func (handler *Handler) AddHoliday(c *fiber.Ctx) error {
	input := holidayInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !isoDatePattern.MatchString(input.Date) {
		return apiError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	if err := handler.repositories.Holidays.Upsert(input.Date, strings.TrimSpace(input.Name)); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to add holiday")
	}
	return apiSuccess(c, nil)
}

func (handler *Handler) RemoveHoliday(c *fiber.Ctx) error {
	date := c.Params("date")
	if !isoDatePattern.MatchString(date) {
		return apiError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	if err := handler.repositories.Holidays.Remove(date); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to remove holiday")
	}
	return apiSuccess(c, nil)
}

// ToggleHoliday flips a date's holiday state and reports the new one.
func (handler *Handler) ToggleHoliday(c *fiber.Ctx) error {
	date := c.Params("date")
	if !isoDatePattern.MatchString(date) {
		return apiError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	input := holidayInput{}
	_ = c.BodyParser(&input)

	isHoliday, err := handler.repositories.Holidays.Toggle(date, strings.TrimSpace(input.Name))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to toggle holiday")
	}
	return apiSuccess(c, fiber.Map{"is_holiday": isHoliday})
}
