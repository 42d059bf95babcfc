package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/repository"
)

type notificationRepository interface {
	Create(ctx context.Context, draft repository.NotificationDraft) (*models.Notification, error)
	CreateBatch(ctx context.Context, drafts []repository.NotificationDraft) ([]models.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, id, userID string) error
}

type notificationUserLister interface {
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	ListByCareer(ctx context.Context, career string) ([]models.User, error)
}

// NotificationService dispatches per-user notifications and the fan-out
// variants targeting a whole role or career. Fan-out writes are atomic: one
// batch insert produces all records or none.
type NotificationService struct {
	notifications notificationRepository
	users         notificationUserLister
	logger        *zap.Logger
}

// NewNotificationService constructs a NotificationService instance.
func NewNotificationService(notifications notificationRepository, users notificationUserLister, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{notifications: notifications, users: users, logger: logger}
}

// Notify creates one notification for one user.
func (s *NotificationService) Notify(ctx context.Context, userID, message string, kind models.NotificationType, requestID string) error {
	_, err := s.notifications.Create(ctx, repository.NotificationDraft{
		UserID:    userID,
		Message:   message,
		Type:      kind,
		RequestID: requestID,
	})
	return err
}

// NotifyRole fans one message out to every active user holding the role.
// Returns how many notifications were created.
func (s *NotificationService) NotifyRole(ctx context.Context, role models.Role, message string, kind models.NotificationType) (int, error) {
	targets, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return 0, err
	}
	return s.fanOut(ctx, targets, message, kind, "")
}

// NotifyCareer fans one message out to every active user whose career matches,
// regardless of role. The career match is case-insensitive. relatedID is
// carried on every created record and may be empty.
func (s *NotificationService) NotifyCareer(ctx context.Context, career, message string, kind models.NotificationType, relatedID string) (int, error) {
	targets, err := s.users.ListByCareer(ctx, career)
	if err != nil {
		return 0, err
	}
	return s.fanOut(ctx, targets, message, kind, relatedID)
}

// fanOut skips deactivated accounts.
func (s *NotificationService) fanOut(ctx context.Context, targets []models.User, message string, kind models.NotificationType, relatedID string) (int, error) {
	drafts := make([]repository.NotificationDraft, 0, len(targets))
	for _, u := range targets {
		if !u.Active {
			continue
		}
		drafts = append(drafts, repository.NotificationDraft{
			UserID:    u.ID,
			Message:   message,
			Type:      kind,
			RequestID: relatedID,
		})
	}
	if len(drafts) == 0 {
		return 0, nil
	}
	created, err := s.notifications.CreateBatch(ctx, drafts)
	if err != nil {
		return 0, err
	}
	s.logger.Info("notification fan-out", zap.String("type", string(kind)), zap.Int("recipients", len(created)))
	return len(created), nil
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

// UnreadCount returns the user's unread notification count.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.notifications.UnreadCount(ctx, userID)
}

// MarkRead flags one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.notifications.MarkRead(ctx, id, userID)
}

// MarkAllRead flags every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

// Delete removes one notification owned by the user.
func (s *NotificationService) Delete(ctx context.Context, id, userID string) error {
	return s.notifications.Delete(ctx, id, userID)
}
