package models

import (
	"strings"
	"time"
)

// FinalSemesterOrdinal is the sentinel ordinal for the "Final" term, which
// sits after the ten numbered semesters.
const FinalSemesterOrdinal = 99

// Semester is an academic term label within a curriculum sequence.
type Semester struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Ordinal   int       `json:"ordinal"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Key returns the collection key for the record.
func (s Semester) Key() string { return s.ID }

// NormalizeSemesterName collapses whitespace so lookups by name treat
// "1er  Semestre" and "1er Semestre" as the same label.
func NormalizeSemesterName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
