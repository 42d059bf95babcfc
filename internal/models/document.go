package models

import "time"

// Document is a PDF document published for a career. Admins manage all
// documents, coordinators only those of their own career; students read.
type Document struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Career       string    `json:"career"`
	UploaderRole Role      `json:"uploader_role"`
	UploaderID   string    `json:"uploader_id"`
	StoredName   string    `json:"stored_name"`
	Size         int64     `json:"size"`
	Description  string    `json:"description,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Key returns the collection key for the record.
func (d Document) Key() string { return d.ID }
