package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"markify/services"
)

// GenerateProgressReport renders the caller's progress as a hosted PDF and
// returns its URL.
func GenerateProgressReport(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	groups, err := progressGroups(ctx, identity.UID)
	if err != nil {
		log.Printf("🔥 Failed to build progress for %s: %v", identity.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	report := services.ProgressReport{
		StudentName: identity.Name,
		GeneratedAt: time.Now().Format("January 2, 2006 15:04"),
	}
	for _, g := range groups {
		subjects, err := subjectAveragesForGroup(ctx, identity.UID, g.Name, g.Type)
		if err != nil {
			log.Printf("🔥 Failed to build subject averages for %s: %v", identity.UID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
		}
		report.Groups = append(report.Groups, services.ReportGroup{
			ExamName: g.Name,
			ExamType: g.Type,
			Summary:  g.Summary,
			Subjects: subjects,
		})
	}

	url, err := services.GenerateProgressReport(report)
	if err != nil {
		log.Printf("🔥 Failed to generate report PDF for %s: %v", identity.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	return c.JSON(fiber.Map{"report_url": url})
}
