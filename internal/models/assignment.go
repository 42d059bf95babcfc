package models

import "time"

// TeacherAssignment states that a teacher teaches a subject in a semester for
// a career. The (teacher, subject, semester) triple is unique.
type TeacherAssignment struct {
	ID         string    `json:"id"`
	TeacherID  string    `json:"teacher_id"`
	SubjectID  string    `json:"subject_id"`
	SemesterID string    `json:"semester_id"`
	CareerID   string    `json:"career_id"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// Key returns the collection key for the record.
func (a TeacherAssignment) Key() string { return a.ID }
