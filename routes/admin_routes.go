package routes

import (
	"github.com/gofiber/fiber/v2"

	"markify/handlers"
	"markify/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Post("/subjects", handlers.CreateSubject)
	admin.Get("/users", handlers.GetAllUsers)
	admin.Get("/exams/:examId/marks", handlers.GetExamMarks)
	admin.Get("/backup", handlers.ExportBackup)
}
