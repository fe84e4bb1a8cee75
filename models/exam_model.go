package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const (
	ExamTypeExam      = "Exam"
	ExamTypeClassTest = "Class Test"
	ExamTypeOthers    = "Others"

	DefaultExamType = ExamTypeExam
)

type Exam struct {
	ID         string    `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Type       string    `bson:"type" json:"type"`
	Date       time.Time `bson:"date" json:"date"`
	StudentUID string    `bson:"student_uid" json:"student_uid"`
}

// ExamIDFromFields derives the exam document id from the identifying tuple.
// The submission instant is part of the identity: the same student entering
// the same exam name and type at two different instants creates two exam
// documents, grouped only by (name, type) for display.
func ExamIDFromFields(name, examType, studentUID string, date time.Time) string {
	unique := fmt.Sprintf("%s_%s_%s_%s", strings.TrimSpace(name), examType, studentUID, date.Format(time.RFC3339Nano))
	sum := sha256.Sum256([]byte(unique))
	return hex.EncodeToString(sum[:])[:16]
}
