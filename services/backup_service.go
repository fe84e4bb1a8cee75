package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"time"

	"markify/database"
	"markify/models"
)

// BackupData is a full snapshot of the store, fetched wholesale before the
// export is written.
type BackupData struct {
	Exams    []models.Exam
	Marks    []models.Mark
	Subjects []models.Subject
	Users    []models.User
}

// FetchBackupData reads every collection wholesale.
func FetchBackupData(ctx context.Context) (BackupData, error) {
	var data BackupData
	var err error

	if data.Exams, err = database.AllExams(ctx, ""); err != nil {
		return data, err
	}
	if data.Marks, err = database.AllMarks(ctx); err != nil {
		return data, err
	}
	if data.Subjects, err = database.AllSubjects(ctx); err != nil {
		return data, err
	}
	if data.Users, err = database.AllUsers(ctx); err != nil {
		return data, err
	}
	return data, nil
}

// WriteBackup renders the snapshot as a single CSV with four sections in
// fixed order, each introduced by a "-- <Section> --" marker row. Non-empty
// sections carry a header row and one row per record; empty sections emit
// only the marker. A blank line separates sections.
func WriteBackup(data BackupData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	examRows := make([][]string, 0, len(data.Exams))
	for _, e := range data.Exams {
		examRows = append(examRows, []string{e.ID, e.Name, e.Type, e.Date.Format(time.RFC3339), e.StudentUID})
	}
	if err := writeSection(w, "Exams", []string{"id", "name", "type", "date", "student_uid"}, examRows); err != nil {
		return nil, err
	}

	markRows := make([][]string, 0, len(data.Marks))
	for _, m := range data.Marks {
		markRows = append(markRows, []string{m.ExamID, m.UID, m.Subject, formatMark(m.Mark), formatMark(m.TotalMark)})
	}
	if err := writeSection(w, "Marks", []string{"exam_id", "uid", "subject", "mark", "total_mark"}, markRows); err != nil {
		return nil, err
	}

	subjectRows := make([][]string, 0, len(data.Subjects))
	for _, s := range data.Subjects {
		subjectRows = append(subjectRows, []string{s.Name})
	}
	if err := writeSection(w, "Subjects", []string{"name"}, subjectRows); err != nil {
		return nil, err
	}

	userRows := make([][]string, 0, len(data.Users))
	for _, u := range data.Users {
		userRows = append(userRows, []string{u.ID, u.Name, u.PasswordHash, u.Role})
	}
	if err := writeSection(w, "Students", []string{"uid", "name", "password_hash", "role"}, userRows); err != nil {
		return nil, err
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func writeSection(w *csv.Writer, section string, header []string, rows [][]string) error {
	// Sections after the first are preceded by a blank separator line.
	if section != "Exams" {
		if err := w.Write([]string{""}); err != nil {
			return err
		}
	}
	if err := w.Write([]string{"-- " + section + " --"}); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func formatMark(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
