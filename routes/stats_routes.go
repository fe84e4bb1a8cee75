package routes

import (
	"github.com/gofiber/fiber/v2"

	"markify/handlers"
	"markify/middleware"
)

func StatsRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected())

	stats := api.Group("/stats")
	stats.Get("/progress", handlers.GetProgress)
	stats.Get("/subjects", handlers.GetSubjectProgress)

	api.Post("/reports/progress", handlers.GenerateProgressReport)
}
