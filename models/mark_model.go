package models

import "fmt"

const DefaultTotalMark = 100.0

type Mark struct {
	ID        string  `bson:"_id" json:"-"`
	ExamID    string  `bson:"exam_id" json:"exam_id"`
	UID       string  `bson:"uid" json:"uid"`
	Subject   string  `bson:"subject" json:"subject"`
	Mark      float64 `bson:"mark" json:"mark"`
	TotalMark float64 `bson:"total_mark" json:"total_mark"`
}

// MarkIDFromFields keys a mark by (exam, student, subject) so a re-submission
// overwrites in place.
func MarkIDFromFields(examID, uid, subject string) string {
	return fmt.Sprintf("%s_%s_%s", examID, uid, subject)
}
