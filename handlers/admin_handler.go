package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"markify/database"
	"markify/services"
)

func GetAllUsers(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	users, err := database.AllUsers(ctx)
	if err != nil {
		log.Printf("🔥 Failed to list users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list users"})
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, userResponse(u))
	}
	return c.JSON(fiber.Map{"users": responses})
}

// ExportBackup streams the full-database backup file.
func ExportBackup(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	data, err := services.FetchBackupData(ctx)
	if err != nil {
		log.Printf("🔥 Failed to fetch backup data: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export backup"})
	}

	out, err := services.WriteBackup(data)
	if err != nil {
		log.Printf("🔥 Failed to write backup: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export backup"})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="markify_backup.csv"`)
	return c.Send(out)
}
