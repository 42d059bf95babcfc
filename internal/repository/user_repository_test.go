package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uta-tic/tutoring-api/internal/models"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
)

func studentDraft(nationalID, email string) UserDraft {
	return UserDraft{
		NationalID:   nationalID,
		FirstName:    "Ana",
		LastName:     "Lopez",
		Email:        email,
		PasswordHash: "digest",
		Roles:        []models.Role{models.RoleStudent},
	}
}

func TestUserRepositoryCreateRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestStore(t))

	_, err := repo.Create(ctx, studentDraft("1804567890", "ana@uta.edu.ec"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, studentDraft("1804567890", "other@uta.edu.ec"))
	require.Error(t, err)
	assert.True(t, appErrors.IsDuplicate(err))

	_, err = repo.Create(ctx, studentDraft("0904567890", "ANA@uta.edu.ec"))
	require.Error(t, err)
	assert.True(t, appErrors.IsDuplicate(err))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepositoryCreateNormalizesRoles(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestStore(t))

	draft := studentDraft("1804567890", "coord@uta.edu.ec")
	draft.Roles = []models.Role{models.RoleCoordinator, models.RoleCoordinator}

	user, err := repo.Create(ctx, draft)
	require.NoError(t, err)

	assert.True(t, user.HasRole(models.RoleCoordinator))
	assert.True(t, user.HasRole(models.RoleTeacher), "coordinator must imply teacher")
	assert.Len(t, user.Roles, 2)
}

func TestUserRepositoryCreateRequiresValidRole(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestStore(t))

	draft := studentDraft("1804567890", "x@uta.edu.ec")
	draft.Roles = []models.Role{"superuser"}

	_, err := repo.Create(ctx, draft)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestUserRepositoryFindByEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestStore(t))

	created, err := repo.Create(ctx, studentDraft("1804567890", "Ana.Lopez@uta.edu.ec"))
	require.NoError(t, err)

	found, err := repo.FindByEmail(ctx, "ana.lopez@UTA.edu.ec")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestUserRepositoryUpdateRejectsEmailCollision(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestStore(t))

	_, err := repo.Create(ctx, studentDraft("1804567890", "first@uta.edu.ec"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, studentDraft("0904567890", "second@uta.edu.ec"))
	require.NoError(t, err)

	email := "first@uta.edu.ec"
	_, err = repo.Update(ctx, second.ID, UserUpdate{Email: &email})
	require.Error(t, err)
	assert.True(t, appErrors.IsDuplicate(err))
}

func TestUserRepositoryUpdatePasswordClearsForceFlag(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestStore(t))

	draft := studentDraft("1804567890", "ana@uta.edu.ec")
	draft.ForcePasswordChange = true
	user, err := repo.Create(ctx, draft)
	require.NoError(t, err)
	require.True(t, user.ForcePasswordChange)

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new-digest"))

	reloaded, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-digest", reloaded.PasswordHash)
	assert.False(t, reloaded.ForcePasswordChange)
}

func TestUserRepositoryDeleteMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestStore(t))

	err := repo.Delete(ctx, "nope")
	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
}
