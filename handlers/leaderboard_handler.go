package handlers

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"markify/database"
	"markify/models"
	"markify/services"
)

// GetLeaderboardGroups enumerates the (name, type) exam groups available for
// ranking, optionally filtered by type.
func GetLeaderboardGroups(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	exams, err := database.AllExams(ctx, c.Query("type"))
	if err != nil {
		log.Printf("🔥 Failed to list exams: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list exam groups"})
	}

	groups := []fiber.Map{}
	for _, g := range services.GroupExamsByNameType(exams) {
		groups = append(groups, fiber.Map{"name": g.Name, "type": g.Type, "instances": len(g.Exams)})
	}
	return c.JSON(fiber.Map{"groups": groups})
}

type LeaderboardInstance struct {
	ExamID string                    `json:"exam_id"`
	Date   time.Time                 `json:"date"`
	Rows   []services.LeaderboardRow `json:"rows"`
}

// GetLeaderboard ranks every sitting of one (name, type) group, most recent
// sitting first. Rows cover all students who entered marks for the sitting.
func GetLeaderboard(c *fiber.Ctx) error {
	examName := c.Query("name")
	examType := c.Query("type")
	if examName == "" || examType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and type query parameters are required"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	exams, err := database.AllExams(ctx, examType)
	if err != nil {
		log.Printf("🔥 Failed to list exams: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load leaderboard"})
	}

	var group *services.ExamGroup
	for _, g := range services.GroupExamsByNameType(exams) {
		if g.Name == examName && g.Type == examType {
			group = &g
			break
		}
	}
	if group == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam group not found"})
	}

	sort.SliceStable(group.Exams, func(i, j int) bool { return group.Exams[i].Date.After(group.Exams[j].Date) })

	marksByExam := make(map[string]map[string]map[string]models.Mark, len(group.Exams))
	uidSet := map[string]struct{}{}
	for _, exam := range group.Exams {
		marks, err := database.MarksForExam(ctx, exam.ID)
		if err != nil {
			log.Printf("🔥 Failed to load marks for exam %s: %v", exam.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load leaderboard"})
		}
		marksByExam[exam.ID] = marks
		for uid := range marks {
			uidSet[uid] = struct{}{}
		}
	}

	uids := make([]string, 0, len(uidSet))
	for uid := range uidSet {
		uids = append(uids, uid)
	}
	names, err := database.UserNames(ctx, uids)
	if err != nil {
		log.Printf("🔥 Failed to resolve student names: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load leaderboard"})
	}

	return c.JSON(fiber.Map{
		"name":      examName,
		"type":      examType,
		"instances": buildLeaderboardInstances(group.Exams, marksByExam, names),
	})
}

// buildLeaderboardInstances ranks each sitting in the order given, skipping
// sittings with no marks entered yet.
func buildLeaderboardInstances(exams []models.Exam, marksByExam map[string]map[string]map[string]models.Mark, names map[string]string) []LeaderboardInstance {
	instances := []LeaderboardInstance{}
	for _, exam := range exams {
		marks := marksByExam[exam.ID]
		if len(marks) == 0 {
			continue
		}
		rows := services.RankLeaderboard(services.BuildLeaderboardRows(marks, names))
		instances = append(instances, LeaderboardInstance{ExamID: exam.ID, Date: exam.Date, Rows: rows})
	}
	return instances
}
