package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markify/models"
)

func TestWriteBackup(t *testing.T) {
	date := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	data := BackupData{
		Exams: []models.Exam{
			{ID: "e1", Name: "Midterm", Type: models.ExamTypeExam, Date: date, StudentUID: "u1"},
		},
		Marks: []models.Mark{
			{ExamID: "e1", UID: "u1", Subject: "Math", Mark: 80, TotalMark: 100},
		},
		Subjects: []models.Subject{{ID: "s1", Name: "Math"}},
		Users: []models.User{
			{ID: "u1", Name: "Alice", PasswordHash: "hash", Role: models.RoleUser},
		},
	}

	out, err := WriteBackup(data)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	assert.Equal(t, []string{
		"-- Exams --",
		"id,name,type,date,student_uid",
		"e1,Midterm,Exam,2024-03-01T10:00:00Z,u1",
		"",
		"-- Marks --",
		"exam_id,uid,subject,mark,total_mark",
		"e1,u1,Math,80,100",
		"",
		"-- Subjects --",
		"name",
		"Math",
		"",
		"-- Students --",
		"uid,name,password_hash,role",
		"u1,Alice,hash,user",
	}, lines)
}

func TestWriteBackupEmptySectionsEmitOnlyMarkers(t *testing.T) {
	out, err := WriteBackup(BackupData{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	assert.Equal(t, []string{
		"-- Exams --",
		"",
		"-- Marks --",
		"",
		"-- Subjects --",
		"",
		"-- Students --",
	}, lines)
}

func TestWriteBackupQuotesSeparatorInType(t *testing.T) {
	data := BackupData{
		Exams: []models.Exam{
			{ID: "e1", Name: "Weekly, Round 2", Type: models.ExamTypeClassTest, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), StudentUID: "u1"},
		},
	}

	out, err := WriteBackup(data)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Weekly, Round 2",Class Test`)
}
