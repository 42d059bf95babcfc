package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/repository"
)

func seedUser(t *testing.T, users *repository.UserRepository, nationalID, email, career string, active bool, roles ...models.Role) *models.User {
	t.Helper()
	user, err := users.Create(context.Background(), repository.UserDraft{
		NationalID:   nationalID,
		FirstName:    "Test",
		LastName:     nationalID,
		Email:        email,
		PasswordHash: "digest",
		Roles:        roles,
		Career:       career,
	})
	require.NoError(t, err)
	if !active {
		off := false
		user, err = users.Update(context.Background(), user.ID, repository.UserUpdate{Active: &off})
		require.NoError(t, err)
	}
	return user
}

func TestNotifyCareerFansOutToEveryCareerMember(t *testing.T) {
	ctx := context.Background()
	st := newServiceStore(t)
	users := repository.NewUserRepository(st)
	notifications := repository.NewNotificationRepository(st)
	svc := NewNotificationService(notifications, users, nil)

	a := seedUser(t, users, "1000000001", "a@uta.edu.ec", "Sistemas", true, models.RoleStudent)
	b := seedUser(t, users, "1000000002", "b@uta.edu.ec", "sistemas", true, models.RoleStudent)
	teacher := seedUser(t, users, "1000000003", "c@uta.edu.ec", "SISTEMAS", true, models.RoleTeacher)
	inactive := seedUser(t, users, "1000000004", "d@uta.edu.ec", "Sistemas", false, models.RoleStudent)
	otherCareer := seedUser(t, users, "1000000005", "e@uta.edu.ec", "Civil", true, models.RoleStudent)

	sent, err := svc.NotifyCareer(ctx, "Sistemas", "New document available", models.NotificationPDF, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 3, sent)

	// Career membership alone decides the audience, so the teacher is
	// included alongside the students.
	for _, target := range []*models.User{a, b, teacher} {
		list, err := svc.ListForUser(ctx, target.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, models.NotificationPDF, list[0].Type)
		assert.Equal(t, "doc-1", list[0].RequestID)
		assert.False(t, list[0].Read)
	}
	for _, skipped := range []*models.User{inactive, otherCareer} {
		list, err := svc.ListForUser(ctx, skipped.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	}
}

func TestNotifyRoleSkipsInactiveUsers(t *testing.T) {
	ctx := context.Background()
	st := newServiceStore(t)
	users := repository.NewUserRepository(st)
	svc := NewNotificationService(repository.NewNotificationRepository(st), users, nil)

	admin := seedUser(t, users, "1000000001", "admin@uta.edu.ec", "", true, models.RoleAdmin)
	seedUser(t, users, "1000000002", "gone@uta.edu.ec", "", false, models.RoleAdmin)

	sent, err := svc.NotifyRole(ctx, models.RoleAdmin, "New registration", models.NotificationUsers)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	list, err := svc.ListForUser(ctx, admin.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNotifyCareerWithNoTargets(t *testing.T) {
	ctx := context.Background()
	st := newServiceStore(t)
	svc := NewNotificationService(repository.NewNotificationRepository(st), repository.NewUserRepository(st), nil)

	sent, err := svc.NotifyCareer(ctx, "Empty", "hello", models.NotificationUsers, "")
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestNotificationReadLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newServiceStore(t)
	users := repository.NewUserRepository(st)
	svc := NewNotificationService(repository.NewNotificationRepository(st), users, nil)

	student := seedUser(t, users, "1000000001", "s@uta.edu.ec", "Sistemas", true, models.RoleStudent)

	require.NoError(t, svc.Notify(ctx, student.ID, "first", models.NotificationRequest, "req1"))
	require.NoError(t, svc.Notify(ctx, student.ID, "second", models.NotificationMessage, "req1"))

	unread, err := svc.UnreadCount(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	list, err := svc.ListForUser(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, svc.MarkRead(ctx, list[0].ID, student.ID))
	unread, err = svc.UnreadCount(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	updated, err := svc.MarkAllRead(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	unread, err = svc.UnreadCount(ctx, student.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
