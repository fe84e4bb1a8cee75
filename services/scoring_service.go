package services

import (
	"math"
	"sort"
	"time"

	"markify/models"
)

// PassThresholdPercent is the fixed per-subject pass mark.
const PassThresholdPercent = 35.0

const (
	TierGold   = "gold"
	TierSilver = "silver"
)

type SubjectResult struct {
	Subject    string  `json:"subject"`
	Mark       float64 `json:"mark"`
	TotalMark  float64 `json:"total_mark"`
	Percentage float64 `json:"percentage"`
	Passed     bool    `json:"passed"`
}

type ExamSummary struct {
	TotalObtained float64         `json:"total_obtained"`
	TotalPossible float64         `json:"total_possible"`
	Percentage    float64         `json:"percentage"`
	Subjects      []SubjectResult `json:"subjects"`
}

// IsPass reports whether a mark clears the threshold; exactly 35% passes.
func IsPass(mark, totalMark float64) bool {
	return Percentage(mark, totalMark) >= PassThresholdPercent
}

// Percentage guards the zero-possible case instead of dividing by zero.
func Percentage(obtained, possible float64) float64 {
	if possible <= 0 {
		return 0
	}
	return obtained / possible * 100
}

// Summarize folds one student's marks for one exam instance into totals,
// overall percentage and per-subject pass/fail. Subjects come back sorted by
// name so responses are stable.
func Summarize(marks map[string]models.Mark) ExamSummary {
	summary := ExamSummary{Subjects: []SubjectResult{}}
	for subject, m := range marks {
		summary.TotalObtained += m.Mark
		summary.TotalPossible += m.TotalMark
		summary.Subjects = append(summary.Subjects, SubjectResult{
			Subject:    subject,
			Mark:       m.Mark,
			TotalMark:  m.TotalMark,
			Percentage: Percentage(m.Mark, m.TotalMark),
			Passed:     IsPass(m.Mark, m.TotalMark),
		})
	}
	sort.Slice(summary.Subjects, func(i, j int) bool {
		return summary.Subjects[i].Subject < summary.Subjects[j].Subject
	})
	summary.Percentage = Percentage(summary.TotalObtained, summary.TotalPossible)
	return summary
}

type LeaderboardRow struct {
	UID        string             `json:"uid"`
	Name       string             `json:"name"`
	Total      float64            `json:"total"`
	Percentage float64            `json:"percentage"`
	Subjects   map[string]float64 `json:"subjects"`
	Rank       int                `json:"rank"`
	Medal      string             `json:"medal,omitempty"`
	Tier       string             `json:"tier,omitempty"`
}

// RankLeaderboard sorts rows descending by total (stable, so fetch order
// breaks ties), assigns 1-based ranks, medals for the first three places and
// the gold/silver highlight tiers. Gold covers max(3, ceil(10% of n)) rows;
// silver covers the index band [trunc(10% of n), trunc(20% of n)).
func RankLeaderboard(rows []LeaderboardRow) []LeaderboardRow {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })

	n := len(rows)
	goldCount := int(math.Ceil(float64(n) * 0.1))
	if goldCount < 3 {
		goldCount = 3
	}
	silverFrom := n / 10
	silverTo := n / 5

	medals := []string{"🥇", "🥈", "🥉"}
	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].Medal = ""
		rows[i].Tier = ""
		if i < len(medals) {
			rows[i].Medal = medals[i]
		}
		switch {
		case i < goldCount:
			rows[i].Tier = TierGold
		case i >= silverFrom && i < silverTo:
			rows[i].Tier = TierSilver
		}
	}
	return rows
}

// BuildLeaderboardRows turns one exam instance's marks into unranked rows,
// one per student.
func BuildLeaderboardRows(marks map[string]map[string]models.Mark, names map[string]string) []LeaderboardRow {
	rows := make([]LeaderboardRow, 0, len(marks))
	uids := make([]string, 0, len(marks))
	for uid := range marks {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	for _, uid := range uids {
		var total, possible float64
		subjects := make(map[string]float64, len(marks[uid]))
		for subject, m := range marks[uid] {
			total += m.Mark
			possible += m.TotalMark
			subjects[subject] = m.Mark
		}
		rows = append(rows, LeaderboardRow{
			UID:        uid,
			Name:       names[uid],
			Total:      total,
			Percentage: Percentage(total, possible),
			Subjects:   subjects,
		})
	}
	return rows
}

// ExamGroup collects the sittings that share a display identity. Exam ids
// embed the submission instant, so (name, type) is the only grouping key.
type ExamGroup struct {
	Name  string        `json:"name"`
	Type  string        `json:"type"`
	Exams []models.Exam `json:"-"`
}

// GroupExamsByNameType buckets exams by (name, type), preserving the order
// in which groups first appear.
func GroupExamsByNameType(exams []models.Exam) []ExamGroup {
	type key struct{ name, typ string }
	index := map[key]int{}
	var groups []ExamGroup
	for _, e := range exams {
		k := key{e.Name, e.Type}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, ExamGroup{Name: e.Name, Type: e.Type})
		}
		groups[i].Exams = append(groups[i].Exams, e)
	}
	return groups
}

type ProgressPoint struct {
	ExamID     string    `json:"exam_id"`
	Date       time.Time `json:"date"`
	Total      float64   `json:"total"`
	Percentage float64   `json:"percentage"`
}

type ProgressSummary struct {
	Average           float64 `json:"average"`
	Best              float64 `json:"best"`
	AveragePercentage float64 `json:"average_percentage"`
	BestPercentage    float64 `json:"best_percentage"`
	Count             int     `json:"count"`
}

// SummarizeProgress computes mean and maximum of totals and percentages
// across a group's instances.
func SummarizeProgress(points []ProgressPoint) ProgressSummary {
	summary := ProgressSummary{Count: len(points)}
	if len(points) == 0 {
		return summary
	}
	for _, p := range points {
		summary.Average += p.Total
		summary.AveragePercentage += p.Percentage
		if p.Total > summary.Best {
			summary.Best = p.Total
		}
		if p.Percentage > summary.BestPercentage {
			summary.BestPercentage = p.Percentage
		}
	}
	summary.Average /= float64(len(points))
	summary.AveragePercentage /= float64(len(points))
	return summary
}

type SubjectAverage struct {
	Subject           string  `json:"subject"`
	AverageMark       float64 `json:"average_mark"`
	AveragePercentage float64 `json:"average_percentage"`
	Count             int     `json:"count"`
}

// AverageBySubject averages each subject's marks and percentages across a
// group's instances, best subject first.
func AverageBySubject(instances []map[string]models.Mark) []SubjectAverage {
	totals := map[string]float64{}
	percentages := map[string]float64{}
	counts := map[string]int{}
	for _, marks := range instances {
		for subject, m := range marks {
			totals[subject] += m.Mark
			percentages[subject] += Percentage(m.Mark, m.TotalMark)
			counts[subject]++
		}
	}

	averages := make([]SubjectAverage, 0, len(totals))
	for subject, total := range totals {
		averages = append(averages, SubjectAverage{
			Subject:           subject,
			AverageMark:       total / float64(counts[subject]),
			AveragePercentage: percentages[subject] / float64(counts[subject]),
			Count:             counts[subject],
		})
	}
	sort.SliceStable(averages, func(i, j int) bool {
		if averages[i].AverageMark != averages[j].AverageMark {
			return averages[i].AverageMark > averages[j].AverageMark
		}
		return averages[i].Subject < averages[j].Subject
	})
	return averages
}
