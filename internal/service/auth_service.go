package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/uta-tic/tutoring-api/internal/models"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
	"github.com/uta-tic/tutoring-api/pkg/secure"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type sessionRepository interface {
	Save(ctx context.Context, user models.User, activeRole models.Role) (*models.Session, error)
	Current(ctx context.Context) (*models.Session, error)
	Clear(ctx context.Context) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	TokenSecret    string
	TokenExpiry    time.Duration
	Issuer         string
	PendingRoleTTL time.Duration
}

// AuthService provides authentication use cases. Multi-role principals go
// through a two-step login: credentials first, then role selection; a token is
// only issued once a single active role is known.
type AuthService struct {
	users     authUserRepository
	sessions  sessionRepository
	hasher    *secure.Hasher
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig

	mu      sync.Mutex
	pending map[string]time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserRepository, sessions sessionRepository, hasher *secure.Hasher, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.TokenExpiry <= 0 {
		config.TokenExpiry = 24 * time.Hour
	}
	if config.PendingRoleTTL <= 0 {
		config.PendingRoleTTL = 5 * time.Minute
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		hasher:    hasher,
		validator: validate,
		logger:    logger,
		config:    config,
		pending:   make(map[string]time.Time),
	}
}

// Login authenticates a user. Single-role principals get a token immediately;
// multi-role principals get RoleOptions and must call SelectRole to finish.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if appErrors.IsNotFound(err) {
			s.logger.Info("login rejected, unknown email", zap.String("email", req.Email))
			return nil, appErrors.Clone(appErrors.ErrUserNotFound, "")
		}
		return nil, err
	}

	if !user.Active {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "account is inactive")
	}

	if !s.hasher.VerifyPassword(req.Password, user.PasswordHash) {
		s.logger.Info("login rejected, wrong password", zap.String("user_id", user.ID))
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	if len(user.Roles) > 1 {
		s.markPending(user.ID)
		return &models.LoginResponse{
			User:                user.Public(),
			RoleOptions:         user.Roles,
			ForcePasswordChange: user.ForcePasswordChange,
			IssuedAt:            time.Now().UTC(),
		}, nil
	}

	return s.completeLogin(ctx, user, user.Roles[0])
}

// SelectRole finishes a multi-role login by fixing the active role. It only
// succeeds while a pending credential check from Login is still fresh.
func (s *AuthService) SelectRole(ctx context.Context, req models.SelectRoleRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role selection payload")
	}

	if !s.consumePending(req.UserID) {
		return nil, appErrors.Clone(appErrors.ErrRoleSelection, "no login awaiting role selection")
	}

	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !user.HasRole(req.Role) {
		s.markPending(user.ID)
		return nil, appErrors.Clone(appErrors.ErrForbidden, "role not held by user")
	}

	return s.completeLogin(ctx, user, req.Role)
}

func (s *AuthService) completeLogin(ctx context.Context, user *models.User, role models.Role) (*models.LoginResponse, error) {
	token, err := s.generateToken(user, role)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	if _, err := s.sessions.Save(ctx, *user, role); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
	}

	return &models.LoginResponse{
		AccessToken:         token,
		ExpiresIn:           int64(s.config.TokenExpiry.Seconds()),
		User:                user.Public(),
		ActiveRole:          role,
		ForcePasswordChange: user.ForcePasswordChange,
		IssuedAt:            time.Now().UTC(),
	}, nil
}

// Logout clears the persisted session snapshot.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// CurrentSession returns the persisted session snapshot.
func (s *AuthService) CurrentSession(ctx context.Context) (*models.Session, error) {
	return s.sessions.Current(ctx)
}

// ChangePassword verifies the old password and stores a new digest. The
// force-password-change flag is cleared by the repository.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid change password payload")
	}
	if !secure.IsValidPassword(req.NewPassword) {
		return appErrors.Clone(appErrors.ErrValidation, "new password is too short")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.VerifyPassword(req.OldPassword, user.PasswordHash) {
		return appErrors.Clone(appErrors.ErrForbidden, "old password does not match")
	}

	newHash, err := s.hasher.HashPassword(req.NewPassword)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	return s.users.UpdatePassword(ctx, userID, newHash)
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) generateToken(user *models.User, role models.Role) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.JWTClaims{
		UserID:     user.ID,
		ActiveRole: role,
		Email:      user.Email,
		FullName:   user.FullName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.TokenSecret))
}

func (s *AuthService) markPending(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[userID] = time.Now().Add(s.config.PendingRoleTTL)
}

func (s *AuthService) consumePending(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline, ok := s.pending[userID]
	if !ok {
		return false
	}
	delete(s.pending, userID)
	return time.Now().Before(deadline)
}
