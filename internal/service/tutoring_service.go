package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/repository"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
	"github.com/uta-tic/tutoring-api/pkg/secure"
)

type tutoringRepository interface {
	Create(ctx context.Context, draft repository.TutoringDraft) (*models.TutoringRequest, error)
	FindByID(ctx context.Context, id string) (*models.TutoringRequest, error)
	List(ctx context.Context) ([]models.TutoringRequest, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.TutoringRequest, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.TutoringRequest, error)
	Update(ctx context.Context, id string, partial models.TutoringRequestUpdate) (*models.TutoringRequest, error)
	Delete(ctx context.Context, id string) error
	Detail(ctx context.Context, id string) (*models.TutoringRequestDetail, error)
	Enrich(ctx context.Context, requests []models.TutoringRequest) ([]models.TutoringRequestDetail, error)
}

type messageRepository interface {
	Create(ctx context.Context, requestID, senderID, content string) (*models.Message, error)
	ListByRequest(ctx context.Context, requestID string) ([]models.Message, error)
}

type tutoringNotifier interface {
	Notify(ctx context.Context, userID, message string, kind models.NotificationType, requestID string) error
}

// TutoringService drives the session request lifecycle. Every state change
// notifies the counterpart so both sides see the request move.
type TutoringService struct {
	requests  tutoringRepository
	messages  messageRepository
	notifier  tutoringNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTutoringService constructs a TutoringService instance.
func NewTutoringService(requests tutoringRepository, messages messageRepository, notifier tutoringNotifier, validate *validator.Validate, logger *zap.Logger) *TutoringService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TutoringService{requests: requests, messages: messages, notifier: notifier, validator: validate, logger: logger}
}

// Create registers a pending session request from a student and notifies the
// teacher.
func (s *TutoringService) Create(ctx context.Context, studentID string, req models.CreateTutoringRequestPayload) (*models.TutoringRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tutoring payload")
	}
	if !secure.IsFutureDateTime(req.Date, req.Time) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "session date must be in the future")
	}

	request, err := s.requests.Create(ctx, repository.TutoringDraft{
		StudentID:   studentID,
		TeacherID:   req.TeacherID,
		SubjectID:   req.SubjectID,
		SemesterID:  req.SemesterID,
		Topic:       secure.SanitizeInput(req.Topic),
		Description: secure.SanitizeInput(req.Description),
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, request.TeacherID, "New tutoring request: "+request.Topic, models.NotificationRequest, request.ID)
	return request, nil
}

// Accept moves a pending request to accepted. Only the addressed teacher may
// do so.
func (s *TutoringService) Accept(ctx context.Context, id, teacherID string) (*models.TutoringRequest, error) {
	request, err := s.ownedByTeacher(ctx, id, teacherID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestPending {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only pending requests can be accepted")
	}

	status := models.RequestAccepted
	updated, err := s.requests.Update(ctx, id, models.TutoringRequestUpdate{Status: &status})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, updated.StudentID, "Your tutoring request was accepted: "+updated.Topic, models.NotificationAccepted, updated.ID)
	return updated, nil
}

// Reject moves a pending request to rejected. Only the addressed teacher may
// do so.
func (s *TutoringService) Reject(ctx context.Context, id, teacherID string) (*models.TutoringRequest, error) {
	request, err := s.ownedByTeacher(ctx, id, teacherID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestPending {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only pending requests can be rejected")
	}

	status := models.RequestRejected
	updated, err := s.requests.Update(ctx, id, models.TutoringRequestUpdate{Status: &status})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, updated.StudentID, "Your tutoring request was rejected: "+updated.Topic, models.NotificationRejected, updated.ID)
	return updated, nil
}

// Reschedule changes the date and time of an accepted session and notifies
// the student.
func (s *TutoringService) Reschedule(ctx context.Context, id, teacherID string, req models.RescheduleRequest) (*models.TutoringRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reschedule payload")
	}
	request, err := s.ownedByTeacher(ctx, id, teacherID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestAccepted {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only accepted requests can be rescheduled")
	}

	updated, err := s.requests.Update(ctx, id, models.TutoringRequestUpdate{Date: &req.Date, Time: &req.Time})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, updated.StudentID, "Your tutoring session was rescheduled: "+updated.Topic, models.NotificationRescheduled, updated.ID)
	return updated, nil
}

// Rate records the student's score for an accepted session and finalizes it
// in the same update. Only the requesting student may rate.
func (s *TutoringService) Rate(ctx context.Context, id, studentID string, req models.RateRequest) (*models.TutoringRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid rating payload")
	}

	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.StudentID != studentID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "request does not belong to student")
	}
	if request.Status != models.RequestAccepted {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only accepted sessions can be rated")
	}

	status := models.RequestFinalized
	comment := secure.SanitizeInput(req.Comment)
	updated, err := s.requests.Update(ctx, id, models.TutoringRequestUpdate{
		Status:  &status,
		Rating:  &req.Rating,
		Comment: &comment,
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, updated.TeacherID, "A tutoring session was rated: "+updated.Topic, models.NotificationRating, updated.ID)
	return updated, nil
}

// Delete removes the request along with its chat thread.
func (s *TutoringService) Delete(ctx context.Context, id string) error {
	return s.requests.Delete(ctx, id)
}

// Get returns the enriched view of one request.
func (s *TutoringService) Get(ctx context.Context, id string) (*models.TutoringRequestDetail, error) {
	return s.requests.Detail(ctx, id)
}

// ListAll returns every request enriched with display names.
func (s *TutoringService) ListAll(ctx context.Context) ([]models.TutoringRequestDetail, error) {
	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.requests.Enrich(ctx, requests)
}

// ListForStudent returns the student's requests enriched with display names.
func (s *TutoringService) ListForStudent(ctx context.Context, studentID string) ([]models.TutoringRequestDetail, error) {
	requests, err := s.requests.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.requests.Enrich(ctx, requests)
}

// ListForTeacher returns the teacher's requests enriched with display names.
func (s *TutoringService) ListForTeacher(ctx context.Context, teacherID string) ([]models.TutoringRequestDetail, error) {
	requests, err := s.requests.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return s.requests.Enrich(ctx, requests)
}

// SendMessage appends a chat message to the request and notifies the other
// participant. Only the student or the teacher of the request may post.
func (s *TutoringService) SendMessage(ctx context.Context, requestID, senderID string, req models.SendMessageRequest) (*models.Message, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid message payload")
	}

	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if senderID != request.StudentID && senderID != request.TeacherID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "sender is not part of this request")
	}

	message, err := s.messages.Create(ctx, requestID, senderID, secure.SanitizeInput(req.Content))
	if err != nil {
		return nil, err
	}

	recipient := request.TeacherID
	if senderID == request.TeacherID {
		recipient = request.StudentID
	}
	s.notify(ctx, recipient, "New message on tutoring request: "+request.Topic, models.NotificationMessage, request.ID)
	return message, nil
}

// ListMessages returns the chat thread of a request in chronological order.
// Only participants may read it.
func (s *TutoringService) ListMessages(ctx context.Context, requestID, readerID string) ([]models.Message, error) {
	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if readerID != request.StudentID && readerID != request.TeacherID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "reader is not part of this request")
	}
	return s.messages.ListByRequest(ctx, requestID)
}

func (s *TutoringService) ownedByTeacher(ctx context.Context, id, teacherID string) (*models.TutoringRequest, error) {
	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.TeacherID != teacherID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "request is not addressed to teacher")
	}
	return request, nil
}

func (s *TutoringService) notify(ctx context.Context, userID, message string, kind models.NotificationType, requestID string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, message, kind, requestID); err != nil {
		s.logger.Warn("failed to deliver notification", zap.String("user_id", userID), zap.Error(err))
	}
}
