package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/repository"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
)

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

type notifierRecorder struct {
	calls []struct {
		UserID    string
		Kind      models.NotificationType
		RequestID string
	}
}

func (r *notifierRecorder) Notify(_ context.Context, userID, _ string, kind models.NotificationType, requestID string) error {
	r.calls = append(r.calls, struct {
		UserID    string
		Kind      models.NotificationType
		RequestID string
	}{userID, kind, requestID})
	return nil
}

func (r *notifierRecorder) last(t *testing.T) (string, models.NotificationType) {
	t.Helper()
	require.NotEmpty(t, r.calls)
	call := r.calls[len(r.calls)-1]
	return call.UserID, call.Kind
}

func newTutoringFixture(t *testing.T) (*TutoringService, *repository.TutoringRepository, *notifierRecorder) {
	t.Helper()
	st := newServiceStore(t)
	requests := repository.NewTutoringRepository(st)
	messages := repository.NewMessageRepository(st)
	recorder := &notifierRecorder{}
	return NewTutoringService(requests, messages, recorder, nil, nil), requests, recorder
}

func pendingRequest(t *testing.T, svc *TutoringService) *models.TutoringRequest {
	t.Helper()
	request, err := svc.Create(context.Background(), "student-1", models.CreateTutoringRequestPayload{
		TeacherID: "teacher-1",
		Topic:     "Derivatives",
		Date:      futureDate(2),
		Time:      "10:00",
	})
	require.NoError(t, err)
	return request
}

func TestTutoringCreateRejectsPastDate(t *testing.T) {
	svc, _, _ := newTutoringFixture(t)

	_, err := svc.Create(context.Background(), "student-1", models.CreateTutoringRequestPayload{
		TeacherID: "teacher-1",
		Topic:     "Derivatives",
		Date:      time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
		Time:      "10:00",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestTutoringCreateStartsPendingAndNotifiesTeacher(t *testing.T) {
	svc, _, recorder := newTutoringFixture(t)

	request := pendingRequest(t, svc)
	assert.Equal(t, models.RequestPending, request.Status)

	userID, kind := recorder.last(t)
	assert.Equal(t, "teacher-1", userID)
	assert.Equal(t, models.NotificationRequest, kind)
}

func TestTutoringAcceptOnlyByAddressedTeacher(t *testing.T) {
	ctx := context.Background()
	svc, _, recorder := newTutoringFixture(t)
	request := pendingRequest(t, svc)

	_, err := svc.Accept(ctx, request.ID, "someone-else")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	accepted, err := svc.Accept(ctx, request.ID, "teacher-1")
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, accepted.Status)

	userID, kind := recorder.last(t)
	assert.Equal(t, "student-1", userID)
	assert.Equal(t, models.NotificationAccepted, kind)

	// Accepting twice is invalid.
	_, err = svc.Accept(ctx, request.ID, "teacher-1")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestTutoringRejectNotifiesStudent(t *testing.T) {
	ctx := context.Background()
	svc, _, recorder := newTutoringFixture(t)
	request := pendingRequest(t, svc)

	rejected, err := svc.Reject(ctx, request.ID, "teacher-1")
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, rejected.Status)

	userID, kind := recorder.last(t)
	assert.Equal(t, "student-1", userID)
	assert.Equal(t, models.NotificationRejected, kind)
}

func TestTutoringRescheduleRequiresAcceptedState(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTutoringFixture(t)
	request := pendingRequest(t, svc)

	newDate := futureDate(4)
	_, err := svc.Reschedule(ctx, request.ID, "teacher-1", models.RescheduleRequest{Date: newDate, Time: "14:00"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.Accept(ctx, request.ID, "teacher-1")
	require.NoError(t, err)

	moved, err := svc.Reschedule(ctx, request.ID, "teacher-1", models.RescheduleRequest{Date: newDate, Time: "14:00"})
	require.NoError(t, err)
	assert.Equal(t, newDate, moved.Date)
	assert.Equal(t, "14:00", moved.Time)
}

func TestTutoringRateFinalizesInOneUpdate(t *testing.T) {
	ctx := context.Background()
	svc, requests, recorder := newTutoringFixture(t)
	request := pendingRequest(t, svc)

	// Rating before acceptance is invalid.
	_, err := svc.Rate(ctx, request.ID, "student-1", models.RateRequest{Rating: 5})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.Accept(ctx, request.ID, "teacher-1")
	require.NoError(t, err)

	// Only the requesting student may rate.
	_, err = svc.Rate(ctx, request.ID, "intruder", models.RateRequest{Rating: 5})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	rated, err := svc.Rate(ctx, request.ID, "student-1", models.RateRequest{Rating: 4, Comment: "Great session"})
	require.NoError(t, err)
	assert.Equal(t, models.RequestFinalized, rated.Status)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 4, *rated.Rating)
	assert.Equal(t, "Great session", rated.Comment)

	userID, kind := recorder.last(t)
	assert.Equal(t, "teacher-1", userID)
	assert.Equal(t, models.NotificationRating, kind)

	// The stored record holds both the rating and the final status.
	stored, err := requests.FindByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestFinalized, stored.Status)
	require.NotNil(t, stored.Rating)
	assert.Equal(t, 4, *stored.Rating)
}

func TestTutoringMessagesAreParticipantOnly(t *testing.T) {
	ctx := context.Background()
	svc, _, recorder := newTutoringFixture(t)
	request := pendingRequest(t, svc)

	_, err := svc.SendMessage(ctx, request.ID, "outsider", models.SendMessageRequest{Content: "hi"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	_, err = svc.SendMessage(ctx, request.ID, "student-1", models.SendMessageRequest{Content: "hello teacher"})
	require.NoError(t, err)
	userID, kind := recorder.last(t)
	assert.Equal(t, "teacher-1", userID)
	assert.Equal(t, models.NotificationMessage, kind)

	_, err = svc.SendMessage(ctx, request.ID, "teacher-1", models.SendMessageRequest{Content: "hello student"})
	require.NoError(t, err)
	userID, _ = recorder.last(t)
	assert.Equal(t, "student-1", userID)

	messages, err := svc.ListMessages(ctx, request.ID, "student-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "hello teacher", messages[0].Content)
	assert.Equal(t, "hello student", messages[1].Content)

	_, err = svc.ListMessages(ctx, request.ID, "outsider")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestTutoringDeleteCascadesMessages(t *testing.T) {
	ctx := context.Background()
	st := newServiceStore(t)
	requests := repository.NewTutoringRepository(st)
	messages := repository.NewMessageRepository(st)
	svc := NewTutoringService(requests, messages, &notifierRecorder{}, nil, nil)

	request, err := svc.Create(ctx, "student-1", models.CreateTutoringRequestPayload{
		TeacherID: "teacher-1",
		Topic:     "Integrals",
		Date:      futureDate(2),
		Time:      "10:00",
	})
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, request.ID, "student-1", models.SendMessageRequest{Content: "hi"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, request.ID))

	_, err = requests.FindByID(ctx, request.ID)
	assert.True(t, appErrors.IsNotFound(err))

	thread, err := messages.ListByRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Empty(t, thread)
}
