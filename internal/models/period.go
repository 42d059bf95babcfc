package models

import "time"

// AcademicPeriod is an admin-managed calendar window. At most one is
// conceptually current; this is not strictly enforced.
type AcademicPeriod struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Year      int       `json:"year"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Key returns the collection key for the record.
func (p AcademicPeriod) Key() string { return p.ID }
