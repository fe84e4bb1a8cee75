package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"markify/database"
	"markify/models"
	"markify/services"
)

type ProgressGroup struct {
	Name    string                   `json:"name"`
	Type    string                   `json:"type"`
	Points  []services.ProgressPoint `json:"points"`
	Summary services.ProgressSummary `json:"summary"`
}

// GetProgress charts the caller's totals and percentages over time, one
// series per (name, type) group, sittings ascending by date.
func GetProgress(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	groups, err := progressGroups(ctx, identity.UID)
	if err != nil {
		log.Printf("🔥 Failed to build progress for %s: %v", identity.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load progress"})
	}
	return c.JSON(fiber.Map{"groups": groups})
}

type SubjectProgressGroup struct {
	Name     string                    `json:"name"`
	Type     string                    `json:"type"`
	Subjects []services.SubjectAverage `json:"subjects"`
}

// GetSubjectProgress averages the caller's marks per subject within each
// (name, type) group, best subject first.
func GetSubjectProgress(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	exams, err := database.ExamsForStudent(ctx, identity.UID, "")
	if err != nil {
		log.Printf("🔥 Failed to list exams for %s: %v", identity.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load subject progress"})
	}

	groups := []SubjectProgressGroup{}
	for _, group := range services.GroupExamsByNameType(exams) {
		var instances []map[string]models.Mark
		for _, exam := range group.Exams {
			marks, err := database.MarksForStudentExam(ctx, exam.ID, identity.UID)
			if err != nil {
				log.Printf("🔥 Failed to load marks for exam %s: %v", exam.ID, err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load subject progress"})
			}
			if len(marks) > 0 {
				instances = append(instances, marks)
			}
		}
		groups = append(groups, SubjectProgressGroup{
			Name:     group.Name,
			Type:     group.Type,
			Subjects: services.AverageBySubject(instances),
		})
	}

	return c.JSON(fiber.Map{"groups": groups})
}

func subjectAveragesForGroup(ctx context.Context, uid, name, examType string) ([]services.SubjectAverage, error) {
	exams, err := database.ExamsForStudent(ctx, uid, examType)
	if err != nil {
		return nil, err
	}

	var instances []map[string]models.Mark
	for _, exam := range exams {
		if exam.Name != name {
			continue
		}
		marks, err := database.MarksForStudentExam(ctx, exam.ID, uid)
		if err != nil {
			return nil, err
		}
		if len(marks) > 0 {
			instances = append(instances, marks)
		}
	}
	return services.AverageBySubject(instances), nil
}

// progressGroups is shared with the PDF report generator.
func progressGroups(ctx context.Context, uid string) ([]ProgressGroup, error) {
	exams, err := database.ExamsForStudent(ctx, uid, "")
	if err != nil {
		return nil, err
	}

	groups := []ProgressGroup{}
	for _, group := range services.GroupExamsByNameType(exams) {
		pg := ProgressGroup{Name: group.Name, Type: group.Type, Points: []services.ProgressPoint{}}
		for _, exam := range group.Exams {
			marks, err := database.MarksForStudentExam(ctx, exam.ID, uid)
			if err != nil {
				return nil, err
			}
			if len(marks) == 0 {
				continue
			}
			summary := services.Summarize(marks)
			pg.Points = append(pg.Points, services.ProgressPoint{
				ExamID:     exam.ID,
				Date:       exam.Date,
				Total:      summary.TotalObtained,
				Percentage: summary.Percentage,
			})
		}
		pg.Summary = services.SummarizeProgress(pg.Points)
		groups = append(groups, pg)
	}
	return groups, nil
}
