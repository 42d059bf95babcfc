package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/store"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
)

// UserRepository provides collection access for user management, enforcing
// national-id and email uniqueness.
type UserRepository struct {
	users *store.Collection[models.User]
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{users: s.Users}
}

// UserDraft carries the fields for a new user. The password arrives already
// hashed; plaintext never reaches the repository layer.
type UserDraft struct {
	NationalID          string
	FirstName           string
	LastName            string
	Email               string
	PasswordHash        string
	Roles               []models.Role
	Career              string
	Semester            string
	Phone               string
	ForcePasswordChange bool
}

// Create inserts a new user. The stored role set is normalized so that
// coordinator always implies teacher. Fails with the duplicate-key kind when
// the national id or email (case-insensitive) is already registered.
func (r *UserRepository) Create(ctx context.Context, draft UserDraft) (*models.User, error) {
	roles := models.NormalizeRoles(draft.Roles)
	if len(roles) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one role is required")
	}

	existing, found, err := r.users.Find(ctx, func(u models.User) bool {
		return u.NationalID == draft.NationalID || strings.EqualFold(u.Email, draft.Email)
	})
	if err != nil {
		return nil, err
	}
	if found {
		if existing.NationalID == draft.NationalID {
			return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "national id already registered")
		}
		return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "email already registered")
	}

	now := time.Now().UTC()
	user := models.User{
		ID:                  uuid.NewString(),
		NationalID:          draft.NationalID,
		FirstName:           draft.FirstName,
		LastName:            draft.LastName,
		Email:               draft.Email,
		PasswordHash:        draft.PasswordHash,
		Roles:               roles,
		Career:              draft.Career,
		Semester:            draft.Semester,
		Phone:               draft.Phone,
		Active:              true,
		ForcePasswordChange: draft.ForcePasswordChange,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := r.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, found, err := r.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return &user, nil
}

// FindByEmail returns a user by email address, compared case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, found, err := r.users.Find(ctx, func(u models.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return &user, nil
}

// FindByNationalID returns a user by national id.
func (r *UserRepository) FindByNationalID(ctx context.Context, nationalID string) (*models.User, error) {
	user, found, err := r.users.Find(ctx, func(u models.User) bool {
		return u.NationalID == nationalID
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return &user, nil
}

// List returns every user.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.users.All(ctx)
}

// ListByCareer returns users whose career matches, case-insensitively.
func (r *UserRepository) ListByCareer(ctx context.Context, career string) ([]models.User, error) {
	return r.users.Filter(ctx, func(u models.User) bool {
		return strings.EqualFold(u.Career, career)
	})
}

// ListByRole returns users currently holding the given role.
func (r *UserRepository) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return r.users.Filter(ctx, func(u models.User) bool {
		return u.HasRole(role)
	})
}

// UserUpdate carries a partial profile merge. Nil fields stay untouched.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Roles     []models.Role
	Career    *string
	Semester  *string
	Phone     *string
	Active    *bool
}

// Update merges the partial into the stored user. Fails with the
// duplicate-key kind when the new email collides with a different user.
func (r *UserRepository) Update(ctx context.Context, id string, partial UserUpdate) (*models.User, error) {
	if partial.Email != nil {
		other, found, err := r.users.Find(ctx, func(u models.User) bool {
			return strings.EqualFold(u.Email, *partial.Email)
		})
		if err != nil {
			return nil, err
		}
		if found && other.ID != id {
			return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "email already registered")
		}
	}

	user, found, err := r.users.Update(ctx, id, func(u *models.User) {
		if partial.FirstName != nil {
			u.FirstName = *partial.FirstName
		}
		if partial.LastName != nil {
			u.LastName = *partial.LastName
		}
		if partial.Email != nil {
			u.Email = *partial.Email
		}
		if partial.Roles != nil {
			u.Roles = models.NormalizeRoles(partial.Roles)
		}
		if partial.Career != nil {
			u.Career = *partial.Career
		}
		if partial.Semester != nil {
			u.Semester = *partial.Semester
		}
		if partial.Phone != nil {
			u.Phone = *partial.Phone
		}
		if partial.Active != nil {
			u.Active = *partial.Active
		}
		u.UpdatedAt = time.Now().UTC()
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return &user, nil
}

// UpdatePassword replaces the stored password hash and clears the
// force-password-change flag.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	_, found, err := r.users.Update(ctx, id, func(u *models.User) {
		u.PasswordHash = passwordHash
		u.ForcePasswordChange = false
		u.UpdatedAt = time.Now().UTC()
	})
	if err != nil {
		return err
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return nil
}

// Delete removes the user record. Tutoring requests referencing the id are
// left dangling; display queries resolve them to "Unknown".
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return nil
}
