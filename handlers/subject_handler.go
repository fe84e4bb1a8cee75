package handlers

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"markify/database"
	"markify/models"
)

type SubjectRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateSubject appends to the global catalog. Duplicate names are allowed;
// the catalog is append-only with no update or delete path.
func CreateSubject(c *fiber.Ctx) error {
	var req SubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Enter a valid subject name"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	subject := models.Subject{ID: database.NewDocID(), Name: name}
	if _, err := database.Subjects().InsertOne(ctx, subject); err != nil {
		log.Printf("🔥 Failed to add subject: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add subject"})
	}

	return c.Status(fiber.StatusCreated).JSON(subject)
}

func ListSubjects(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	names, err := database.SubjectNames(ctx)
	if err != nil {
		log.Printf("🔥 Failed to list subjects: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list subjects"})
	}
	return c.JSON(fiber.Map{"subjects": names})
}
