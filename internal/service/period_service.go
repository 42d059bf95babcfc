package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/repository"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
	"github.com/uta-tic/tutoring-api/pkg/secure"
)

type periodRepository interface {
	Create(ctx context.Context, draft repository.PeriodDraft) (*models.AcademicPeriod, error)
	FindByID(ctx context.Context, id string) (*models.AcademicPeriod, error)
	List(ctx context.Context) ([]models.AcademicPeriod, error)
	Update(ctx context.Context, id string, partial repository.PeriodUpdate) (*models.AcademicPeriod, error)
	Delete(ctx context.Context, id string) error
}

// PeriodService manages academic calendar windows.
type PeriodService struct {
	periods   periodRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPeriodService constructs a PeriodService instance.
func NewPeriodService(periods periodRepository, validate *validator.Validate, logger *zap.Logger) *PeriodService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &PeriodService{periods: periods, validator: validate, logger: logger}
}

// Create registers an academic period. Dates arrive as YYYY-MM-DD.
func (s *PeriodService) Create(ctx context.Context, req models.CreatePeriodRequest) (*models.AcademicPeriod, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid period payload")
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid start date")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid end date")
	}
	if end.Before(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date precedes start date")
	}

	return s.periods.Create(ctx, repository.PeriodDraft{
		Name:      secure.SanitizeInput(req.Name),
		StartDate: start,
		EndDate:   end,
		Year:      req.Year,
	})
}

// Get returns one period.
func (s *PeriodService) Get(ctx context.Context, id string) (*models.AcademicPeriod, error) {
	return s.periods.FindByID(ctx, id)
}

// List returns every period.
func (s *PeriodService) List(ctx context.Context) ([]models.AcademicPeriod, error) {
	return s.periods.List(ctx)
}

// SetActive toggles the active flag.
func (s *PeriodService) SetActive(ctx context.Context, id string, active bool) (*models.AcademicPeriod, error) {
	return s.periods.Update(ctx, id, repository.PeriodUpdate{Active: &active})
}

// Delete removes the period.
func (s *PeriodService) Delete(ctx context.Context, id string) error {
	return s.periods.Delete(ctx, id)
}
