package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"markify/database"
	"markify/models"
	"markify/services"
)

type SubmitMarkRequest struct {
	ExamName   string   `json:"exam_name" validate:"required"`
	ExamType   string   `json:"exam_type" validate:"omitempty,oneof='Exam' 'Class Test' 'Others'"`
	Subject    string   `json:"subject" validate:"required"`
	Mark       float64  `json:"mark" validate:"gte=0"`
	TotalMark  *float64 `json:"total_mark" validate:"omitempty,gt=0"`
	StudentUID string   `json:"student_uid"`
}

// canSubmitFor decides whether actingUID may record marks for targetUID:
// students submit for themselves, admins for anyone.
func canSubmitFor(actingUID, targetUID string, actingIsAdmin bool) bool {
	return actingUID == targetUID || actingIsAdmin
}

// SubmitMark records one subject's score. The exam document is created lazily
// the first time its derived id is seen; the mark is an upsert keyed by
// (exam, student, subject), so a re-submission overwrites in place. The two
// writes are not transactional; an exam with no marks yet is a valid state.
func SubmitMark(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	var req SubmitMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if strings.TrimSpace(req.ExamName) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Exam/Test name cannot be empty"})
	}

	examType := req.ExamType
	if examType == "" {
		examType = models.DefaultExamType
	}
	totalMark := models.DefaultTotalMark
	if req.TotalMark != nil {
		totalMark = *req.TotalMark
	}
	studentUID := req.StudentUID
	if studentUID == "" {
		studentUID = identity.UID
	}

	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	// The admin check re-reads the stored role rather than trusting the
	// token, so a demoted admin loses the ability immediately.
	actingIsAdmin := false
	if studentUID != identity.UID {
		var err error
		actingIsAdmin, err = database.IsAdmin(ctx, identity.UID)
		if err != nil {
			log.Printf("🔥 Failed to check admin role for %s: %v", identity.UID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit mark"})
		}
	}
	if !canSubmitFor(identity.UID, studentUID, actingIsAdmin) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only submit marks for yourself unless you are admin",
		})
	}

	now := time.Now()
	examID := models.ExamIDFromFields(req.ExamName, examType, studentUID, now)

	err := database.Exams().FindOne(ctx, bson.M{"_id": examID}).Err()
	if err == mongo.ErrNoDocuments {
		exam := models.Exam{
			ID:         examID,
			Name:       strings.TrimSpace(req.ExamName),
			Type:       examType,
			Date:       now,
			StudentUID: studentUID,
		}
		if _, err := database.Exams().InsertOne(ctx, exam); err != nil {
			log.Printf("🔥 Failed to create exam %s: %v", examID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit mark"})
		}
	} else if err != nil {
		log.Printf("🔥 Failed to look up exam %s: %v", examID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit mark"})
	}

	mark := models.Mark{
		ID:        models.MarkIDFromFields(examID, studentUID, req.Subject),
		ExamID:    examID,
		UID:       studentUID,
		Subject:   req.Subject,
		Mark:      req.Mark,
		TotalMark: totalMark,
	}
	_, err = database.Marks().ReplaceOne(ctx, bson.M{"_id": mark.ID}, mark, options.Replace().SetUpsert(true))
	if err != nil {
		log.Printf("🔥 Failed to upsert mark %s: %v", mark.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit mark"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Marks for %s in '%s' (%s) submitted/updated successfully", req.Subject, strings.TrimSpace(req.ExamName), examType),
		"exam_id": examID,
		"mark":    mark,
	})
}

func ListMyExams(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	exams, err := database.ExamsForStudent(ctx, identity.UID, c.Query("type"))
	if err != nil {
		log.Printf("🔥 Failed to list exams for %s: %v", identity.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list exams"})
	}
	return c.JSON(fiber.Map{"exams": exams})
}

type DashboardInstance struct {
	ExamID  string               `json:"exam_id"`
	Date    time.Time            `json:"date"`
	Summary services.ExamSummary `json:"summary"`
}

type DashboardGroup struct {
	Name      string              `json:"name"`
	Type      string              `json:"type"`
	Instances []DashboardInstance `json:"instances"`
}

// GetMyDashboard groups the caller's exams by (name, type) and summarizes
// each sitting: totals, percentage, per-subject pass/fail.
func GetMyDashboard(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	exams, err := database.ExamsForStudent(ctx, identity.UID, "")
	if err != nil {
		log.Printf("🔥 Failed to list exams for %s: %v", identity.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load dashboard"})
	}

	groups := []DashboardGroup{}
	for _, group := range services.GroupExamsByNameType(exams) {
		dg := DashboardGroup{Name: group.Name, Type: group.Type, Instances: []DashboardInstance{}}
		for _, exam := range group.Exams {
			marks, err := database.MarksForStudentExam(ctx, exam.ID, identity.UID)
			if err != nil {
				log.Printf("🔥 Failed to load marks for exam %s: %v", exam.ID, err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load dashboard"})
			}
			dg.Instances = append(dg.Instances, DashboardInstance{
				ExamID:  exam.ID,
				Date:    exam.Date,
				Summary: services.Summarize(marks),
			})
		}
		groups = append(groups, dg)
	}

	return c.JSON(fiber.Map{"groups": groups})
}

// GetMyExamMarks returns the caller's marks and summary for one exam sitting.
func GetMyExamMarks(c *fiber.Ctx) error {
	identity := currentIdentity(c)
	examID := c.Params("examId")

	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	if err := database.Exams().FindOne(ctx, bson.M{"_id": examID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exam not found"})
		}
		log.Printf("🔥 Failed to look up exam %s: %v", examID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load marks"})
	}

	marks, err := database.MarksForStudentExam(ctx, examID, identity.UID)
	if err != nil {
		log.Printf("🔥 Failed to load marks for exam %s: %v", examID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load marks"})
	}

	return c.JSON(fiber.Map{
		"exam_id": examID,
		"summary": services.Summarize(marks),
	})
}

// GetExamMarks returns every student's marks for one exam sitting (admin).
func GetExamMarks(c *fiber.Ctx) error {
	examID := c.Params("examId")

	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	marks, err := database.MarksForExam(ctx, examID)
	if err != nil {
		log.Printf("🔥 Failed to load marks for exam %s: %v", examID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load marks"})
	}
	return c.JSON(fiber.Map{"exam_id": examID, "marks": marks})
}
