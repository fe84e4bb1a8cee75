package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markify/models"
)

func TestIsPassBoundary(t *testing.T) {
	assert.True(t, IsPass(35, 100), "exactly 35%% passes")
	assert.False(t, IsPass(34.9, 100))
	assert.True(t, IsPass(7, 20)) // 35% of a non-default total
	assert.False(t, IsPass(30, 100))
	assert.False(t, IsPass(10, 0), "zero total never passes")
}

func TestPercentageZeroPossible(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(50, 0))
	assert.Equal(t, 70.0, Percentage(140, 200))
}

func TestSummarize(t *testing.T) {
	marks := map[string]models.Mark{
		"Math":    {Subject: "Math", Mark: 80, TotalMark: 100},
		"Science": {Subject: "Science", Mark: 30, TotalMark: 100},
	}

	summary := Summarize(marks)
	assert.Equal(t, 110.0, summary.TotalObtained)
	assert.Equal(t, 200.0, summary.TotalPossible)
	assert.Equal(t, 55.0, summary.Percentage)

	require.Len(t, summary.Subjects, 2)
	assert.Equal(t, "Math", summary.Subjects[0].Subject)
	assert.True(t, summary.Subjects[0].Passed)
	assert.Equal(t, "Science", summary.Subjects[1].Subject)
	assert.False(t, summary.Subjects[1].Passed)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(map[string]models.Mark{})
	assert.Equal(t, 0.0, summary.Percentage)
	assert.Empty(t, summary.Subjects)
}

func TestRankLeaderboard(t *testing.T) {
	rows := []LeaderboardRow{
		{UID: "a", Total: 90},
		{UID: "b", Total: 90},
		{UID: "c", Total: 70},
		{UID: "d", Total: 50},
	}

	ranked := RankLeaderboard(rows)
	require.Len(t, ranked, 4)

	// Ties keep their original order under the stable sort.
	assert.Equal(t, []string{"a", "b", "c", "d"}, []string{ranked[0].UID, ranked[1].UID, ranked[2].UID, ranked[3].UID})
	for i, row := range ranked {
		assert.Equal(t, i+1, row.Rank)
	}

	assert.Equal(t, "🥇", ranked[0].Medal)
	assert.Equal(t, "🥈", ranked[1].Medal)
	assert.Equal(t, "🥉", ranked[2].Medal)
	assert.Empty(t, ranked[3].Medal)

	// Gold floor is three rows; the silver band [0, 0) is empty for n=4.
	assert.Equal(t, TierGold, ranked[0].Tier)
	assert.Equal(t, TierGold, ranked[1].Tier)
	assert.Equal(t, TierGold, ranked[2].Tier)
	assert.Empty(t, ranked[3].Tier)
}

func TestRankLeaderboardTiers(t *testing.T) {
	rows := make([]LeaderboardRow, 30)
	for i := range rows {
		rows[i].Total = float64(300 - i)
	}

	ranked := RankLeaderboard(rows)

	// ceil(0.1*30) = 3 gold rows, silver covers indices [3, 6).
	for i := 0; i < 3; i++ {
		assert.Equal(t, TierGold, ranked[i].Tier, "row %d", i)
	}
	for i := 3; i < 6; i++ {
		assert.Equal(t, TierSilver, ranked[i].Tier, "row %d", i)
	}
	for i := 6; i < 30; i++ {
		assert.Empty(t, ranked[i].Tier, "row %d", i)
	}
}

func TestBuildLeaderboardRows(t *testing.T) {
	marks := map[string]map[string]models.Mark{
		"u1": {
			"Math":    {Mark: 80, TotalMark: 100},
			"Science": {Mark: 60, TotalMark: 100},
		},
		"u2": {
			"Math": {Mark: 45, TotalMark: 50},
		},
	}
	names := map[string]string{"u1": "Alice", "u2": "Bob"}

	rows := BuildLeaderboardRows(marks, names)
	require.Len(t, rows, 2)

	assert.Equal(t, "Alice", rows[0].Name)
	assert.Equal(t, 140.0, rows[0].Total)
	assert.Equal(t, 70.0, rows[0].Percentage)
	assert.Equal(t, 80.0, rows[0].Subjects["Math"])

	assert.Equal(t, "Bob", rows[1].Name)
	assert.Equal(t, 45.0, rows[1].Total)
	assert.Equal(t, 90.0, rows[1].Percentage)
}

func TestGroupExamsByNameType(t *testing.T) {
	exams := []models.Exam{
		{ID: "1", Name: "Midterm", Type: models.ExamTypeExam},
		{ID: "2", Name: "Quiz", Type: models.ExamTypeClassTest},
		{ID: "3", Name: "Midterm", Type: models.ExamTypeExam},
		{ID: "4", Name: "Midterm", Type: models.ExamTypeClassTest},
	}

	groups := GroupExamsByNameType(exams)
	require.Len(t, groups, 3)

	assert.Equal(t, "Midterm", groups[0].Name)
	assert.Equal(t, models.ExamTypeExam, groups[0].Type)
	assert.Len(t, groups[0].Exams, 2)

	assert.Equal(t, "Quiz", groups[1].Name)
	assert.Equal(t, "Midterm", groups[2].Name)
	assert.Equal(t, models.ExamTypeClassTest, groups[2].Type)
}

func TestSummarizeProgress(t *testing.T) {
	points := []ProgressPoint{
		{Date: time.Now(), Total: 100, Percentage: 50},
		{Date: time.Now(), Total: 140, Percentage: 70},
	}

	summary := SummarizeProgress(points)
	assert.Equal(t, 120.0, summary.Average)
	assert.Equal(t, 140.0, summary.Best)
	assert.Equal(t, 60.0, summary.AveragePercentage)
	assert.Equal(t, 70.0, summary.BestPercentage)
	assert.Equal(t, 2, summary.Count)
}

func TestSummarizeProgressEmpty(t *testing.T) {
	summary := SummarizeProgress(nil)
	assert.Equal(t, 0.0, summary.Average)
	assert.Equal(t, 0, summary.Count)
}

func TestAverageBySubject(t *testing.T) {
	instances := []map[string]models.Mark{
		{
			"Math":    {Mark: 80, TotalMark: 100},
			"Science": {Mark: 40, TotalMark: 50},
		},
		{
			"Math": {Mark: 60, TotalMark: 100},
		},
	}

	averages := AverageBySubject(instances)
	require.Len(t, averages, 2)

	// Sorted descending by average mark.
	assert.Equal(t, "Math", averages[0].Subject)
	assert.Equal(t, 70.0, averages[0].AverageMark)
	assert.Equal(t, 70.0, averages[0].AveragePercentage)
	assert.Equal(t, 2, averages[0].Count)

	assert.Equal(t, "Science", averages[1].Subject)
	assert.Equal(t, 40.0, averages[1].AverageMark)
	assert.Equal(t, 80.0, averages[1].AveragePercentage)
	assert.Equal(t, 1, averages[1].Count)
}
