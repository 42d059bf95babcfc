package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"

	"github.com/uta-tic/tutoring-api/internal/models"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
	"github.com/uta-tic/tutoring-api/pkg/secure"
)

type userRepoStub struct {
	users map[string]*models.User

	passwordUpdates map[string]string
}

func (s *userRepoStub) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
}

func (s *userRepoStub) FindByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
}

func (s *userRepoStub) UpdatePassword(_ context.Context, id, hash string) error {
	if s.passwordUpdates == nil {
		s.passwordUpdates = make(map[string]string)
	}
	s.passwordUpdates[id] = hash
	return nil
}

type sessionRepoStub struct {
	saved   *models.Session
	cleared bool
}

func (s *sessionRepoStub) Save(_ context.Context, user models.User, role models.Role) (*models.Session, error) {
	session := &models.Session{User: user.Public(), ActiveRole: role, LoginAt: time.Now().UTC()}
	s.saved = session
	return session, nil
}

func (s *sessionRepoStub) Current(_ context.Context) (*models.Session, error) {
	if s.saved == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no session")
	}
	return s.saved, nil
}

func (s *sessionRepoStub) Clear(_ context.Context) error {
	s.saved = nil
	s.cleared = true
	return nil
}

func newAuthFixture(t *testing.T, users ...*models.User) (*AuthService, *userRepoStub, *sessionRepoStub, *secure.Hasher) {
	t.Helper()
	hasher := secure.NewHasher("unit-secret", bcrypt.MinCost)
	repo := &userRepoStub{users: make(map[string]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	sessions := &sessionRepoStub{}
	svc := NewAuthService(repo, sessions, hasher, nil, nil, AuthConfig{
		TokenSecret: "token-secret",
		TokenExpiry: time.Hour,
		Issuer:      "test",
	})
	return svc, repo, sessions, hasher
}

func activeUser(t *testing.T, hasher *secure.Hasher, roles ...models.Role) *models.User {
	t.Helper()
	hash, err := hasher.HashPassword("password123")
	require.NoError(t, err)
	return &models.User{
		ID:           "u1",
		NationalID:   "1804567890",
		FirstName:    "Ana",
		LastName:     "Lopez",
		Email:        "ana@uta.edu.ec",
		PasswordHash: hash,
		Roles:        roles,
		Active:       true,
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@uta.edu.ec", Password: "whatever1"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUserNotFound))
	// Same outward message as a bad password so callers cannot probe accounts.
	assert.Equal(t, appErrors.ErrInvalidCredentials.Message, appErrors.FromError(err).Message)
}

func TestLoginWrongPassword(t *testing.T) {
	hasher := secure.NewHasher("unit-secret", bcrypt.MinCost)
	user := activeUser(t, hasher, models.RoleStudent)
	svc, _, _, _ := newAuthFixture(t, user)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "not-the-password"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestLoginInactiveAccount(t *testing.T) {
	hasher := secure.NewHasher("unit-secret", bcrypt.MinCost)
	user := activeUser(t, hasher, models.RoleStudent)
	user.Active = false
	svc, _, _, _ := newAuthFixture(t, user)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "password123"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInactiveAccount))
}

func TestLoginSingleRoleIssuesToken(t *testing.T) {
	hasher := secure.NewHasher("unit-secret", bcrypt.MinCost)
	user := activeUser(t, hasher, models.RoleStudent)
	svc, _, sessions, _ := newAuthFixture(t, user)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "password123"})
	require.NoError(t, err)

	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, models.RoleStudent, res.ActiveRole)
	assert.Empty(t, res.RoleOptions)
	require.NotNil(t, sessions.saved)
	assert.Equal(t, models.RoleStudent, sessions.saved.ActiveRole)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.ActiveRole)
}

func TestLoginMultiRoleRequiresSelection(t *testing.T) {
	hasher := secure.NewHasher("unit-secret", bcrypt.MinCost)
	user := activeUser(t, hasher, models.RoleCoordinator, models.RoleTeacher)
	svc, _, sessions, _ := newAuthFixture(t, user)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "password123"})
	require.NoError(t, err)

	assert.Empty(t, res.AccessToken, "no token before a role is fixed")
	assert.ElementsMatch(t, user.Roles, res.RoleOptions)
	assert.Nil(t, sessions.saved)

	selected, err := svc.SelectRole(context.Background(), models.SelectRoleRequest{UserID: user.ID, Role: models.RoleTeacher})
	require.NoError(t, err)
	assert.NotEmpty(t, selected.AccessToken)
	assert.Equal(t, models.RoleTeacher, selected.ActiveRole)
}

func TestSelectRoleWithoutPendingLogin(t *testing.T) {
	hasher := secure.NewHasher("unit-secret", bcrypt.MinCost)
	user := activeUser(t, hasher, models.RoleCoordinator, models.RoleTeacher)
	svc, _, _, _ := newAuthFixture(t, user)

	_, err := svc.SelectRole(context.Background(), models.SelectRoleRequest{UserID: user.ID, Role: models.RoleTeacher})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrRoleSelection))
}

func TestSelectRoleNotHeld(t *testing.T) {
	hasher := secure.NewHasher("unit-secret", bcrypt.MinCost)
	user := activeUser(t, hasher, models.RoleCoordinator, models.RoleTeacher)
	svc, _, _, _ := newAuthFixture(t, user)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "password123"})
	require.NoError(t, err)

	_, err = svc.SelectRole(context.Background(), models.SelectRoleRequest{UserID: user.ID, Role: models.RoleAdmin})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	// The failed pick keeps the pending window open for a second attempt.
	selected, err := svc.SelectRole(context.Background(), models.SelectRoleRequest{UserID: user.ID, Role: models.RoleCoordinator})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCoordinator, selected.ActiveRole)
}

func TestChangePassword(t *testing.T) {
	hasher := secure.NewHasher("unit-secret", bcrypt.MinCost)
	user := activeUser(t, hasher, models.RoleStudent)
	svc, repo, _, _ := newAuthFixture(t, user)

	err := svc.ChangePassword(context.Background(), user.ID, models.ChangePasswordRequest{
		OldPassword: "wrong-old-pass",
		NewPassword: "newpassword",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	err = svc.ChangePassword(context.Background(), user.ID, models.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpassword",
	})
	require.NoError(t, err)

	newHash, ok := repo.passwordUpdates[user.ID]
	require.True(t, ok)
	assert.True(t, hasher.VerifyPassword("newpassword", newHash))
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	hasher := secure.NewHasher("unit-secret", bcrypt.MinCost)
	user := activeUser(t, hasher, models.RoleStudent)
	svc, _, _, _ := newAuthFixture(t, user)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "password123"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(res.AccessToken + "x")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestLogoutClearsSession(t *testing.T) {
	hasher := secure.NewHasher("unit-secret", bcrypt.MinCost)
	user := activeUser(t, hasher, models.RoleStudent)
	svc, _, sessions, _ := newAuthFixture(t, user)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "password123"})
	require.NoError(t, err)
	require.NotNil(t, sessions.saved)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Nil(t, sessions.saved)
	assert.True(t, sessions.cleared)
}
