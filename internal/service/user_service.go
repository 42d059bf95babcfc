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

type userRepository interface {
	Create(ctx context.Context, draft repository.UserDraft) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListByCareer(ctx context.Context, career string) ([]models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	Update(ctx context.Context, id string, partial repository.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type userNotifier interface {
	NotifyRole(ctx context.Context, role models.Role, message string, kind models.NotificationType) (int, error)
}

// UserService provides account management use cases.
type UserService struct {
	users     userRepository
	notifier  userNotifier
	hasher    *secure.Hasher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(users userRepository, notifier userNotifier, hasher *secure.Hasher, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{users: users, notifier: notifier, hasher: hasher, validator: validate, logger: logger}
}

// RegisterStudent handles public self-registration. The account always gets
// the student role only.
func (s *UserService) RegisterStudent(ctx context.Context, req models.RegisterStudentRequest) (*models.PublicUser, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}
	if !secure.IsValidNationalID(req.NationalID) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "national id must be exactly 10 digits")
	}
	if !secure.IsValidEmail(req.Email) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid email address")
	}
	if !secure.IsValidRegisterPassword(req.Password) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "password is too short")
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user, err := s.users.Create(ctx, repository.UserDraft{
		NationalID:   req.NationalID,
		FirstName:    secure.SanitizeInput(req.FirstName),
		LastName:     secure.SanitizeInput(req.LastName),
		Email:        req.Email,
		PasswordHash: hash,
		Roles:        []models.Role{models.RoleStudent},
		Career:       secure.SanitizeInput(req.Career),
		Semester:     secure.SanitizeInput(req.Semester),
		Phone:        secure.SanitizeInput(req.Phone),
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if _, err := s.notifier.NotifyRole(ctx, models.RoleAdmin, "New student registered: "+user.FullName(), models.NotificationUsers); err != nil {
			s.logger.Warn("failed to notify admins about registration", zap.Error(err))
		}
	}

	public := user.Public()
	return &public, nil
}

// CreateUser handles admin-side account creation with arbitrary roles. An
// empty password defaults to the national id and flags the account for a
// forced change on first login.
func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.PublicUser, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}
	if !secure.IsValidNationalID(req.NationalID) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "national id must be exactly 10 digits")
	}
	if !secure.IsValidEmail(req.Email) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid email address")
	}

	password := req.Password
	forceChange := false
	if password == "" {
		password = req.NationalID
		forceChange = true
	}
	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user, err := s.users.Create(ctx, repository.UserDraft{
		NationalID:          req.NationalID,
		FirstName:           secure.SanitizeInput(req.FirstName),
		LastName:            secure.SanitizeInput(req.LastName),
		Email:               req.Email,
		PasswordHash:        hash,
		Roles:               req.Roles,
		Career:              secure.SanitizeInput(req.Career),
		Semester:            secure.SanitizeInput(req.Semester),
		Phone:               secure.SanitizeInput(req.Phone),
		ForcePasswordChange: forceChange,
	})
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

// CreateStudentForCareer is the coordinator path: the created account is
// always a student pinned to the coordinator's own career.
func (s *UserService) CreateStudentForCareer(ctx context.Context, career string, req models.CreateUserRequest) (*models.PublicUser, error) {
	if career == "" {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "coordinator has no career assigned")
	}
	req.Roles = []models.Role{models.RoleStudent}
	req.Career = career
	return s.CreateUser(ctx, req)
}

// Get returns the public shape of one user.
func (s *UserService) Get(ctx context.Context, id string) (*models.PublicUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

// List returns every user in public shape.
func (s *UserService) List(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

// ListByRole returns users holding the role in public shape.
func (s *UserService) ListByRole(ctx context.Context, role models.Role) ([]models.PublicUser, error) {
	if !models.ValidRole(role) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	users, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

// ListByCareer returns users of the career in public shape.
func (s *UserService) ListByCareer(ctx context.Context, career string) ([]models.PublicUser, error) {
	users, err := s.users.ListByCareer(ctx, career)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

// Update applies a partial profile update.
func (s *UserService) Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.PublicUser, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update payload")
	}
	partial := repository.UserUpdate{
		FirstName: sanitizePtr(req.FirstName),
		LastName:  sanitizePtr(req.LastName),
		Email:     req.Email,
		Roles:     req.Roles,
		Career:    sanitizePtr(req.Career),
		Semester:  sanitizePtr(req.Semester),
		Phone:     sanitizePtr(req.Phone),
		Active:    req.Active,
	}
	user, err := s.users.Update(ctx, id, partial)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

// Delete removes the account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func publicUsers(users []models.User) []models.PublicUser {
	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}

func sanitizePtr(text *string) *string {
	if text == nil {
		return nil
	}
	clean := secure.SanitizeInput(*text)
	return &clean
}
