package routes

import (
	"github.com/gofiber/fiber/v2"

	"markify/handlers"
	"markify/middleware"
)

func LeaderboardRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected())

	api.Get("/leaderboard/groups", handlers.GetLeaderboardGroups)
	api.Get("/leaderboard", handlers.GetLeaderboard)
}
