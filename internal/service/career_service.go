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

type careerRepository interface {
	Create(ctx context.Context, draft repository.CareerDraft) (*models.Career, error)
	FindByID(ctx context.Context, id string) (*models.Career, error)
	FindByCode(ctx context.Context, code string) (*models.Career, error)
	List(ctx context.Context) ([]models.Career, error)
	Update(ctx context.Context, id string, partial repository.CareerUpdate) (*models.Career, error)
	Delete(ctx context.Context, id string) error
}

// CareerService provides academic program management.
type CareerService struct {
	careers   careerRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCareerService constructs a CareerService instance.
func NewCareerService(careers careerRepository, validate *validator.Validate, logger *zap.Logger) *CareerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CareerService{careers: careers, validator: validate, logger: logger}
}

// Create registers a new career.
func (s *CareerService) Create(ctx context.Context, req models.CreateCareerRequest) (*models.Career, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid career payload")
	}
	return s.careers.Create(ctx, repository.CareerDraft{
		Name:        secure.SanitizeInput(req.Name),
		Code:        secure.SanitizeInput(req.Code),
		Description: secure.SanitizeInput(req.Description),
	})
}

// Get returns one career.
func (s *CareerService) Get(ctx context.Context, id string) (*models.Career, error) {
	return s.careers.FindByID(ctx, id)
}

// GetByCode returns one career by code.
func (s *CareerService) GetByCode(ctx context.Context, code string) (*models.Career, error) {
	return s.careers.FindByCode(ctx, code)
}

// List returns every career.
func (s *CareerService) List(ctx context.Context) ([]models.Career, error) {
	return s.careers.List(ctx)
}

// Update applies a partial career update.
func (s *CareerService) Update(ctx context.Context, id string, req models.UpdateCareerRequest) (*models.Career, error) {
	return s.careers.Update(ctx, id, repository.CareerUpdate{
		Name:        sanitizePtr(req.Name),
		Description: sanitizePtr(req.Description),
		Active:      req.Active,
	})
}

// Delete removes the career.
func (s *CareerService) Delete(ctx context.Context, id string) error {
	return s.careers.Delete(ctx, id)
}
