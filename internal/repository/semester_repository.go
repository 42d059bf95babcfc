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

// SemesterRepository manages academic term labels. Creation is idempotent by
// normalized name: a second create for the same label fails with the
// duplicate-key kind and the caller re-fetches by name.
type SemesterRepository struct {
	semesters *store.Collection[models.Semester]
}

// NewSemesterRepository creates a new instance of SemesterRepository.
func NewSemesterRepository(s *store.Store) *SemesterRepository {
	return &SemesterRepository{semesters: s.Semesters}
}

// SemesterDraft carries the fields for a new semester.
type SemesterDraft struct {
	Name    string
	Ordinal int
}

// Create inserts a semester. Fails with the duplicate-key kind when a
// semester with the same normalized name already exists.
func (r *SemesterRepository) Create(ctx context.Context, draft SemesterDraft) (*models.Semester, error) {
	name := models.NormalizeSemesterName(draft.Name)
	_, found, err := r.semesters.Find(ctx, func(s models.Semester) bool {
		return strings.EqualFold(s.Name, name)
	})
	if err != nil {
		return nil, err
	}
	if found {
		return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "semester already exists")
	}

	sem := models.Semester{
		ID:        uuid.NewString(),
		Name:      name,
		Ordinal:   draft.Ordinal,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.semesters.Insert(ctx, sem); err != nil {
		return nil, err
	}
	return &sem, nil
}

// FindByID returns a semester by identifier.
func (r *SemesterRepository) FindByID(ctx context.Context, id string) (*models.Semester, error) {
	sem, found, err := r.semesters.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "semester not found")
	}
	return &sem, nil
}

// FindByName returns a semester by normalized name.
func (r *SemesterRepository) FindByName(ctx context.Context, name string) (*models.Semester, error) {
	normalized := models.NormalizeSemesterName(name)
	sem, found, err := r.semesters.Find(ctx, func(s models.Semester) bool {
		return strings.EqualFold(s.Name, normalized)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "semester not found")
	}
	return &sem, nil
}

// List returns every semester.
func (r *SemesterRepository) List(ctx context.Context) ([]models.Semester, error) {
	return r.semesters.All(ctx)
}

// SetActive toggles the active flag.
func (r *SemesterRepository) SetActive(ctx context.Context, id string, active bool) error {
	_, found, err := r.semesters.Update(ctx, id, func(s *models.Semester) {
		s.Active = active
	})
	if err != nil {
		return err
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "semester not found")
	}
	return nil
}

// Delete removes the semester record.
func (r *SemesterRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.semesters.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "semester not found")
	}
	return nil
}
