package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExamIDFromFieldsDeterministic(t *testing.T) {
	date := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	id := ExamIDFromFields("Midterm", ExamTypeExam, "uid-1", date)
	assert.Len(t, id, 16)
	assert.Equal(t, id, ExamIDFromFields("Midterm", ExamTypeExam, "uid-1", date))

	// Leading/trailing whitespace in the name does not change the identity.
	assert.Equal(t, id, ExamIDFromFields("  Midterm  ", ExamTypeExam, "uid-1", date))
}

func TestExamIDFromFieldsSensitiveToEachField(t *testing.T) {
	date := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	base := ExamIDFromFields("Midterm", ExamTypeExam, "uid-1", date)

	assert.NotEqual(t, base, ExamIDFromFields("Final", ExamTypeExam, "uid-1", date))
	assert.NotEqual(t, base, ExamIDFromFields("Midterm", ExamTypeClassTest, "uid-1", date))
	assert.NotEqual(t, base, ExamIDFromFields("Midterm", ExamTypeExam, "uid-2", date))
	assert.NotEqual(t, base, ExamIDFromFields("Midterm", ExamTypeExam, "uid-1", date.Add(time.Second)))
}

func TestMarkIDFromFields(t *testing.T) {
	id := MarkIDFromFields("exam-1", "uid-1", "Math")
	assert.Equal(t, "exam-1_uid-1_Math", id)

	// The composite key is what makes a re-submission overwrite in place.
	assert.Equal(t, id, MarkIDFromFields("exam-1", "uid-1", "Math"))
	assert.NotEqual(t, id, MarkIDFromFields("exam-1", "uid-1", "Science"))
}
