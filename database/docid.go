package database

import "github.com/google/uuid"

// NewDocID mints an id for documents addressed by random identity
// (users, subjects). Exams and marks derive their ids from content.
func NewDocID() string {
	return uuid.New().String()
}
