package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/repository"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
)

type semesterRepository interface {
	Create(ctx context.Context, draft repository.SemesterDraft) (*models.Semester, error)
	FindByID(ctx context.Context, id string) (*models.Semester, error)
	FindByName(ctx context.Context, name string) (*models.Semester, error)
	List(ctx context.Context) ([]models.Semester, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// SemesterService manages academic term labels.
type SemesterService struct {
	semesters semesterRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSemesterService constructs a SemesterService instance.
func NewSemesterService(semesters semesterRepository, validate *validator.Validate, logger *zap.Logger) *SemesterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SemesterService{semesters: semesters, validator: validate, logger: logger}
}

// Create registers a semester label.
func (s *SemesterService) Create(ctx context.Context, req models.CreateSemesterRequest) (*models.Semester, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid semester payload")
	}
	return s.semesters.Create(ctx, repository.SemesterDraft{Name: req.Name, Ordinal: req.Ordinal})
}

// Ensure returns the semester with the given name, creating it when absent.
// Concurrent callers racing on the same label both end up with the one stored
// record.
func (s *SemesterService) Ensure(ctx context.Context, name string, ordinal int) (*models.Semester, error) {
	sem, err := s.semesters.Create(ctx, repository.SemesterDraft{Name: name, Ordinal: ordinal})
	if err == nil {
		return sem, nil
	}
	if appErrors.IsDuplicate(err) {
		return s.semesters.FindByName(ctx, name)
	}
	return nil, err
}

// Get returns one semester.
func (s *SemesterService) Get(ctx context.Context, id string) (*models.Semester, error) {
	return s.semesters.FindByID(ctx, id)
}

// List returns every semester.
func (s *SemesterService) List(ctx context.Context) ([]models.Semester, error) {
	return s.semesters.List(ctx)
}

// SetActive toggles the active flag.
func (s *SemesterService) SetActive(ctx context.Context, id string, active bool) error {
	return s.semesters.SetActive(ctx, id, active)
}

// Delete removes the semester.
func (s *SemesterService) Delete(ctx context.Context, id string) error {
	return s.semesters.Delete(ctx, id)
}
