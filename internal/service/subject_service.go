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

type subjectRepository interface {
	Create(ctx context.Context, draft repository.SubjectDraft) (*models.Subject, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	FindByCode(ctx context.Context, code string) (*models.Subject, error)
	List(ctx context.Context) ([]models.Subject, error)
	ListByCareer(ctx context.Context, careerID string) ([]models.Subject, error)
	ListPending(ctx context.Context) ([]models.Subject, error)
	SetApproval(ctx context.Context, id string, state models.SubjectState, active bool) (*models.Subject, error)
	Update(ctx context.Context, id string, partial repository.SubjectUpdate) (*models.Subject, error)
	Delete(ctx context.Context, id string) error
}

type subjectNotifier interface {
	Notify(ctx context.Context, userID, message string, kind models.NotificationType, requestID string) error
	NotifyRole(ctx context.Context, role models.Role, message string, kind models.NotificationType) (int, error)
}

// SubjectService manages the curriculum catalog. Coordinator proposals stay
// pending until an admin reviews them; the decision notifies the proposer.
type SubjectService struct {
	subjects  subjectRepository
	notifier  subjectNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs a SubjectService instance.
func NewSubjectService(subjects subjectRepository, notifier subjectNotifier, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SubjectService{subjects: subjects, notifier: notifier, validator: validate, logger: logger}
}

// Create registers a subject. An empty proposerID marks an admin origin, so
// the subject is approved and active immediately; coordinator proposals start
// pending and alert the admins.
func (s *SubjectService) Create(ctx context.Context, req models.CreateSubjectRequest, proposerID string) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	subject, err := s.subjects.Create(ctx, repository.SubjectDraft{
		Code:          secure.SanitizeInput(req.Code),
		Name:          secure.SanitizeInput(req.Name),
		CareerID:      req.CareerID,
		SemesterID:    req.SemesterID,
		Credits:       req.Credits,
		Hours:         req.Hours,
		Unit:          req.Unit,
		Prerequisites: req.Prerequisites,
		CreatedBy:     proposerID,
	})
	if err != nil {
		return nil, err
	}

	if proposerID != "" && s.notifier != nil {
		if _, err := s.notifier.NotifyRole(ctx, models.RoleAdmin, "Subject proposal awaiting review: "+subject.Name, models.NotificationUsers); err != nil {
			s.logger.Warn("failed to notify admins about subject proposal", zap.Error(err))
		}
	}
	return subject, nil
}

// Review applies the admin decision on a pending subject and notifies the
// coordinator who proposed it.
func (s *SubjectService) Review(ctx context.Context, id string, approve bool) (*models.Subject, error) {
	state := models.SubjectApproved
	if !approve {
		state = models.SubjectRejected
	}
	subject, err := s.subjects.SetApproval(ctx, id, state, approve)
	if err != nil {
		return nil, err
	}

	if subject.CreatedBy != "" && s.notifier != nil {
		message := "Subject approved: " + subject.Name
		if !approve {
			message = "Subject rejected: " + subject.Name
		}
		if err := s.notifier.Notify(ctx, subject.CreatedBy, message, models.NotificationUsers, ""); err != nil {
			s.logger.Warn("failed to notify proposer about review", zap.Error(err))
		}
	}
	return subject, nil
}

// Get returns one subject.
func (s *SubjectService) Get(ctx context.Context, id string) (*models.Subject, error) {
	return s.subjects.FindByID(ctx, id)
}

// GetByCode returns one subject by code.
func (s *SubjectService) GetByCode(ctx context.Context, code string) (*models.Subject, error) {
	return s.subjects.FindByCode(ctx, code)
}

// List returns every subject.
func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	return s.subjects.List(ctx)
}

// ListByCareer returns subjects of a career.
func (s *SubjectService) ListByCareer(ctx context.Context, careerID string) ([]models.Subject, error) {
	return s.subjects.ListByCareer(ctx, careerID)
}

// ListPending returns subjects awaiting review.
func (s *SubjectService) ListPending(ctx context.Context) ([]models.Subject, error) {
	return s.subjects.ListPending(ctx)
}

// Update applies a partial subject update.
func (s *SubjectService) Update(ctx context.Context, id string, req models.UpdateSubjectRequest) (*models.Subject, error) {
	return s.subjects.Update(ctx, id, repository.SubjectUpdate{
		Name:          sanitizePtr(req.Name),
		SemesterID:    req.SemesterID,
		Credits:       req.Credits,
		Hours:         req.Hours,
		Unit:          req.Unit,
		Prerequisites: req.Prerequisites,
		Active:        req.Active,
	})
}

// Delete removes the subject.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	return s.subjects.Delete(ctx, id)
}
