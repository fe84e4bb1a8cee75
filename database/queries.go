package database

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"markify/models"
)

func GetUser(ctx context.Context, uid string) (models.User, error) {
	var user models.User
	err := Users().FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	return user, err
}

func GetUserByName(ctx context.Context, name string) (models.User, error) {
	var user models.User
	err := Users().FindOne(ctx, bson.M{"name": name}).Decode(&user)
	return user, err
}

// IsAdmin re-reads the stored role on every call. A missing account is a
// plain "not admin"; a store failure is returned so callers can report it
// instead of denying authorization.
func IsAdmin(ctx context.Context, uid string) (bool, error) {
	user, err := GetUser(ctx, uid)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

// UserNames resolves display names for leaderboard rows; unknown ids map to
// "Unknown" the same way the dashboard renders orphaned marks.
func UserNames(ctx context.Context, uids []string) (map[string]string, error) {
	cursor, err := Users().Find(ctx, bson.M{"_id": bson.M{"$in": uids}})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(uids))
	for _, uid := range uids {
		names[uid] = "Unknown"
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

func AllUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := Users().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []models.User
	err = cursor.All(ctx, &users)
	return users, err
}

func AllSubjects(ctx context.Context) ([]models.Subject, error) {
	cursor, err := Subjects().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var subjects []models.Subject
	err = cursor.All(ctx, &subjects)
	return subjects, err
}

// SubjectNames returns every catalog name sorted lexicographically. Each call
// re-fetches the full collection; the catalog is small and uncached.
func SubjectNames(ctx context.Context) ([]string, error) {
	subjects, err := AllSubjects(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(subjects))
	for _, s := range subjects {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names, nil
}

// ExamsForStudent returns the student's exams ascending by date; zero dates
// sort first. An empty examType matches every type.
func ExamsForStudent(ctx context.Context, uid, examType string) ([]models.Exam, error) {
	filter := bson.M{"student_uid": uid}
	if examType != "" {
		filter["type"] = examType
	}
	cursor, err := Exams().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var exams []models.Exam
	if err := cursor.All(ctx, &exams); err != nil {
		return nil, err
	}
	sort.SliceStable(exams, func(i, j int) bool { return exams[i].Date.Before(exams[j].Date) })
	return exams, nil
}

func AllExams(ctx context.Context, examType string) ([]models.Exam, error) {
	filter := bson.M{}
	if examType != "" {
		filter["type"] = examType
	}
	cursor, err := Exams().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var exams []models.Exam
	err = cursor.All(ctx, &exams)
	return exams, err
}

func AllMarks(ctx context.Context) ([]models.Mark, error) {
	cursor, err := Marks().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var marks []models.Mark
	err = cursor.All(ctx, &marks)
	return marks, err
}

// MarksForExam maps student uid -> subject -> mark for one exam instance.
func MarksForExam(ctx context.Context, examID string) (map[string]map[string]models.Mark, error) {
	cursor, err := Marks().Find(ctx, bson.M{"exam_id": examID})
	if err != nil {
		return nil, err
	}
	var marks []models.Mark
	if err := cursor.All(ctx, &marks); err != nil {
		return nil, err
	}

	byStudent := make(map[string]map[string]models.Mark)
	for _, m := range marks {
		if byStudent[m.UID] == nil {
			byStudent[m.UID] = make(map[string]models.Mark)
		}
		byStudent[m.UID][m.Subject] = m
	}
	return byStudent, nil
}

// MarksForStudentExam maps subject -> mark for one student in one exam instance.
func MarksForStudentExam(ctx context.Context, examID, uid string) (map[string]models.Mark, error) {
	cursor, err := Marks().Find(ctx, bson.M{"exam_id": examID, "uid": uid})
	if err != nil {
		return nil, err
	}
	var marks []models.Mark
	if err := cursor.All(ctx, &marks); err != nil {
		return nil, err
	}

	bySubject := make(map[string]models.Mark, len(marks))
	for _, m := range marks {
		bySubject[m.Subject] = m
	}
	return bySubject, nil
}
