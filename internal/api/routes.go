package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")
	api.Get("/health", handler.Health)

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Put("/update", handler.AuthRequired, handler.UpdateProfile)

	tasks := api.Group("/tasks", handler.AuthRequired)
	tasks.Get("", handler.ListTasks)
	tasks.Get("/all", handler.ListAllTasks)
	tasks.Post("", handler.CreateTask)
	tasks.Put("/:id", handler.UpdateTask)
	tasks.Delete("/:id", handler.DeleteTask)

	checks := api.Group("/checks", handler.AuthRequired)
	checks.Post("/toggle", handler.ToggleCheck)
	checks.Get("/:date", handler.ListChecks)

	history := api.Group("/history", handler.AuthRequired)
	history.Get("", handler.ListHistory)
	history.Post("", handler.SaveHistory)

	journals := api.Group("/journals", handler.AuthRequired)
	journals.Get("", handler.ListJournals)
	journals.Get("/current", handler.CurrentJournal)
	journals.Post("", handler.SaveJournal)

	api.Use(handler.NotFound)
}
