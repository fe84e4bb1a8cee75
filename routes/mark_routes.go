package routes

import (
	"github.com/gofiber/fiber/v2"

	"markify/handlers"
	"markify/middleware"
)

func MarkRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected())

	api.Get("/subjects", handlers.ListSubjects)

	api.Post("/marks", handlers.SubmitMark)

	exams := api.Group("/exams")
	exams.Get("/me", handlers.ListMyExams)
	exams.Get("/me/dashboard", handlers.GetMyDashboard)
	exams.Get("/:examId/marks/me", handlers.GetMyExamMarks)
}
