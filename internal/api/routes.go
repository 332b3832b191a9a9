package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/send-link", handler.SendLink)
	auth.Get("/verify", handler.Verify)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	api.Get("/attendance", handler.AuthRequired, handler.Attendance)

	entries := api.Group("/entries", handler.AuthRequired)
	entries.Post("/:id/overtime", handler.SetOvertime)

	holidays := api.Group("/holidays", handler.AuthRequired)
	holidays.Get("", handler.ListHolidays)
	holidays.Post("", handler.AddHoliday)
	holidays.Delete("/:date", handler.RemoveHoliday)
	holidays.Post("/:date/toggle", handler.ToggleHoliday)

	visibility := api.Group("/visibility", handler.AuthRequired)
	visibility.Get("", handler.ListVisibility)
	visibility.Put("", handler.UpdateVisibility)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/csv", handler.ExportCSV)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
