package models

import "time"

// SubjectState is the curriculum approval state of a subject.
type SubjectState string

const (
	SubjectPending  SubjectState = "pending"
	SubjectApproved SubjectState = "approved"
	SubjectRejected SubjectState = "rejected"
)

// AcademicUnit classifies a subject inside the curriculum.
type AcademicUnit string

const (
	UnitBasic        AcademicUnit = "basic"
	UnitProfessional AcademicUnit = "professional"
	UnitDegree       AcademicUnit = "degree"
)

// Subject is a curriculum course belonging to one career and semester.
// Coordinator-created subjects start pending and inactive until an admin
// approves them; admin-created and bulk-imported subjects are approved and
// active from the start.
type Subject struct {
	ID            string       `json:"id"`
	Code          string       `json:"code"`
	Name          string       `json:"name"`
	CareerID      string       `json:"career_id"`
	SemesterID    string       `json:"semester_id"`
	Credits       *float64     `json:"credits,omitempty"`
	Hours         *float64     `json:"hours,omitempty"`
	Unit          AcademicUnit `json:"unit"`
	Prerequisites []string     `json:"prerequisites,omitempty"`
	State         SubjectState `json:"state"`
	CreatedBy     string       `json:"created_by,omitempty"`
	Active        bool         `json:"active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Key returns the collection key for the record.
func (s Subject) Key() string { return s.ID }
