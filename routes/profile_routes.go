package routes

import (
	"github.com/gofiber/fiber/v2"

	"markify/handlers"
	"markify/middleware"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile/me", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Put("/name", handlers.UpdateName)
	profile.Put("/password", handlers.ChangePassword)
}
