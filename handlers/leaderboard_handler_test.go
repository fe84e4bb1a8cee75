package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markify/models"
)

func TestBuildLeaderboardInstancesSkipsMarklessSittings(t *testing.T) {
	newer := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	older := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	exams := []models.Exam{
		{ID: "e2", Name: "Midterm", Type: models.ExamTypeExam, Date: newer},
		{ID: "e1", Name: "Midterm", Type: models.ExamTypeExam, Date: older},
	}
	marksByExam := map[string]map[string]map[string]models.Mark{
		"e1": {
			"u1": {"Math": {Mark: 80, TotalMark: 100}},
		},
		// e2 exists but nobody has entered marks yet.
		"e2": {},
	}
	names := map[string]string{"u1": "Alice"}

	instances := buildLeaderboardInstances(exams, marksByExam, names)
	require.Len(t, instances, 1)

	assert.Equal(t, "e1", instances[0].ExamID)
	require.Len(t, instances[0].Rows, 1)
	assert.Equal(t, "Alice", instances[0].Rows[0].Name)
	assert.Equal(t, 1, instances[0].Rows[0].Rank)
	assert.Equal(t, 80.0, instances[0].Rows[0].Total)
}
