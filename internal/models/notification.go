package models

import "time"

// NotificationType tags the event that produced a notification.
type NotificationType string

const (
	NotificationRequest     NotificationType = "request"
	NotificationAccepted    NotificationType = "accepted"
	NotificationRejected    NotificationType = "rejected"
	NotificationRescheduled NotificationType = "rescheduled"
	NotificationRating      NotificationType = "rating"
	NotificationPDF         NotificationType = "pdf"
	NotificationUsers       NotificationType = "users"
	NotificationMessage     NotificationType = "message"
)

// Notification is a per-user message record. Fan-out events produce one
// Notification per targeted user.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	RequestID string           `json:"request_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// Key returns the collection key for the record.
func (n Notification) Key() string { return n.ID }
