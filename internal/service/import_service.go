package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/repository"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
	"github.com/uta-tic/tutoring-api/pkg/secure"
)

type importCareerResolver interface {
	FindByCode(ctx context.Context, code string) (*models.Career, error)
}

type importSemesterEnsurer interface {
	Ensure(ctx context.Context, name string, ordinal int) (*models.Semester, error)
}

type importSubjectCreator interface {
	Create(ctx context.Context, draft repository.SubjectDraft) (*models.Subject, error)
}

type importUserCreator interface {
	Create(ctx context.Context, draft repository.UserDraft) (*models.User, error)
}

// ImportService handles bulk loads. Each row is processed independently: a
// failing row is reported in the summary and never aborts the rest.
type ImportService struct {
	users     importUserCreator
	subjects  importSubjectCreator
	careers   importCareerResolver
	semesters importSemesterEnsurer
	notifier  userNotifier
	hasher    *secure.Hasher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewImportService constructs an ImportService instance.
func NewImportService(users importUserCreator, subjects importSubjectCreator, careers importCareerResolver, semesters importSemesterEnsurer, notifier userNotifier, hasher *secure.Hasher, validate *validator.Validate, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ImportService{
		users:     users,
		subjects:  subjects,
		careers:   careers,
		semesters: semesters,
		notifier:  notifier,
		hasher:    hasher,
		validator: validate,
		logger:    logger,
	}
}

// ImportUsers creates accounts row by row. Every imported account starts with
// the national id as password and a forced change on first login.
func (s *ImportService) ImportUsers(ctx context.Context, req models.ImportUsersRequest) (*models.ImportSummary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid import payload")
	}

	summary := &models.ImportSummary{Total: len(req.Users)}
	for i, row := range req.Users {
		outcome := models.ImportOutcome{Row: i + 1, Key: row.Email}
		if err := s.importUserRow(ctx, row); err != nil {
			outcome.Error = err.Error()
			summary.Failed++
		} else {
			outcome.Created = true
			summary.Created++
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	if summary.Created > 0 && s.notifier != nil {
		message := fmt.Sprintf("Bulk import finished: %d of %d accounts created", summary.Created, summary.Total)
		if _, err := s.notifier.NotifyRole(ctx, models.RoleAdmin, message, models.NotificationUsers); err != nil {
			s.logger.Warn("failed to notify admins about import", zap.Error(err))
		}
	}
	return summary, nil
}

func (s *ImportService) importUserRow(ctx context.Context, row models.ImportUserRow) error {
	if !secure.IsValidNationalID(row.NationalID) {
		return appErrors.Clone(appErrors.ErrValidation, "national id must be exactly 10 digits")
	}
	if !secure.IsValidEmail(row.Email) {
		return appErrors.Clone(appErrors.ErrValidation, "invalid email address")
	}
	roles := row.Roles
	if len(roles) == 0 {
		roles = []models.Role{models.RoleStudent}
	}

	hash, err := s.hasher.HashPassword(row.NationalID)
	if err != nil {
		return err
	}
	_, err = s.users.Create(ctx, repository.UserDraft{
		NationalID:          row.NationalID,
		FirstName:           secure.SanitizeInput(row.FirstName),
		LastName:            secure.SanitizeInput(row.LastName),
		Email:               row.Email,
		PasswordHash:        hash,
		Roles:               roles,
		Career:              secure.SanitizeInput(row.Career),
		Semester:            secure.SanitizeInput(row.Semester),
		Phone:               secure.SanitizeInput(row.Phone),
		ForcePasswordChange: true,
	})
	return err
}

// ImportSubjects loads a curriculum row by row. Career codes must already
// exist; semester labels are created on demand. Imported subjects are approved
// and active immediately.
func (s *ImportService) ImportSubjects(ctx context.Context, req models.ImportSubjectsRequest) (*models.ImportSummary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid import payload")
	}

	summary := &models.ImportSummary{Total: len(req.Subjects)}
	for i, row := range req.Subjects {
		outcome := models.ImportOutcome{Row: i + 1, Key: row.Code}
		if err := s.importSubjectRow(ctx, row); err != nil {
			outcome.Error = err.Error()
			summary.Failed++
		} else {
			outcome.Created = true
			summary.Created++
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}
	return summary, nil
}

func (s *ImportService) importSubjectRow(ctx context.Context, row models.ImportSubjectRow) error {
	if row.Code == "" || row.Name == "" {
		return appErrors.Clone(appErrors.ErrValidation, "code and name are required")
	}

	career, err := s.careers.FindByCode(ctx, row.CareerCode)
	if err != nil {
		return err
	}
	semester, err := s.semesters.Ensure(ctx, row.Semester, 0)
	if err != nil {
		return err
	}

	_, err = s.subjects.Create(ctx, repository.SubjectDraft{
		Code:          secure.SanitizeInput(row.Code),
		Name:          secure.SanitizeInput(row.Name),
		CareerID:      career.ID,
		SemesterID:    semester.ID,
		Credits:       row.Credits,
		Hours:         row.Hours,
		Unit:          models.AcademicUnit(row.Unit),
		Prerequisites: row.Prerequisites,
	})
	return err
}
