package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/store"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
)

// NotificationRepository manages per-user notification records.
type NotificationRepository struct {
	notifications *store.Collection[models.Notification]
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(s *store.Store) *NotificationRepository {
	return &NotificationRepository{notifications: s.Notifications}
}

// NotificationDraft carries the fields for a single notification.
type NotificationDraft struct {
	UserID    string
	Message   string
	Type      models.NotificationType
	RequestID string
}

// Create inserts one unread notification.
func (r *NotificationRepository) Create(ctx context.Context, draft NotificationDraft) (*models.Notification, error) {
	notification := build(draft)
	if err := r.notifications.Insert(ctx, notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// CreateBatch inserts one notification per draft in a single write. The batch
// is atomic: either every record is persisted or none is.
func (r *NotificationRepository) CreateBatch(ctx context.Context, drafts []NotificationDraft) ([]models.Notification, error) {
	if len(drafts) == 0 {
		return nil, nil
	}
	batch := make([]models.Notification, 0, len(drafts))
	for _, draft := range drafts {
		batch = append(batch, build(draft))
	}
	if err := r.notifications.InsertMany(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func build(draft NotificationDraft) models.Notification {
	return models.Notification{
		ID:        uuid.NewString(),
		UserID:    draft.UserID,
		Message:   draft.Message,
		Type:      draft.Type,
		RequestID: draft.RequestID,
		CreatedAt: time.Now().UTC(),
	}
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	list, err := r.notifications.Filter(ctx, func(n models.Notification) bool {
		return n.UserID == userID
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// UnreadCount returns the number of unread notifications for the user.
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	return r.notifications.Count(ctx, func(n models.Notification) bool {
		return n.UserID == userID && !n.Read
	})
}

// MarkRead flags one notification as read. Only the owner may do so.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	notification, found, err := r.notifications.Get(ctx, id)
	if err != nil {
		return err
	}
	if !found || notification.UserID != userID {
		return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
	}
	_, _, err = r.notifications.Update(ctx, id, func(n *models.Notification) {
		n.Read = true
	})
	return err
}

// MarkAllRead flags every unread notification of the user as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	unread, err := r.notifications.Filter(ctx, func(n models.Notification) bool {
		return n.UserID == userID && !n.Read
	})
	if err != nil {
		return 0, err
	}
	for _, n := range unread {
		if _, _, err := r.notifications.Update(ctx, n.ID, func(n *models.Notification) {
			n.Read = true
		}); err != nil {
			return 0, err
		}
	}
	return len(unread), nil
}

// Delete removes one notification owned by the user.
func (r *NotificationRepository) Delete(ctx context.Context, id, userID string) error {
	notification, found, err := r.notifications.Get(ctx, id)
	if err != nil {
		return err
	}
	if !found || notification.UserID != userID {
		return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
	}
	_, err = r.notifications.Delete(ctx, id)
	return err
}
