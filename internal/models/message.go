package models

import "time"

// Message is an append-only chat entry scoped to one tutoring request.
// Messages are never edited; they disappear only when the parent request is
// deleted.
type Message struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Key returns the collection key for the record.
func (m Message) Key() string { return m.ID }
