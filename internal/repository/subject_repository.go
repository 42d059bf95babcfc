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

// SubjectRepository manages curriculum subjects. Subject codes are unique
// across all careers, matching the platform's single shared code namespace.
type SubjectRepository struct {
	subjects *store.Collection[models.Subject]
}

// NewSubjectRepository creates a new instance of SubjectRepository.
func NewSubjectRepository(s *store.Store) *SubjectRepository {
	return &SubjectRepository{subjects: s.Subjects}
}

// SubjectDraft carries the fields for a new subject. CreatedBy holds the
// coordinator id for coordinator-created subjects and is empty for admin or
// bulk-import origins; the origin decides the initial approval state.
type SubjectDraft struct {
	Code          string
	Name          string
	CareerID      string
	SemesterID    string
	Credits       *float64
	Hours         *float64
	Unit          models.AcademicUnit
	Prerequisites []string
	CreatedBy     string
}

// Create inserts a subject. Fails with the duplicate-key kind when the code
// already exists anywhere in the system.
func (r *SubjectRepository) Create(ctx context.Context, draft SubjectDraft) (*models.Subject, error) {
	_, found, err := r.subjects.Find(ctx, func(s models.Subject) bool {
		return strings.EqualFold(s.Code, draft.Code)
	})
	if err != nil {
		return nil, err
	}
	if found {
		return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "subject code already registered")
	}

	now := time.Now().UTC()
	subject := models.Subject{
		ID:            uuid.NewString(),
		Code:          draft.Code,
		Name:          draft.Name,
		CareerID:      draft.CareerID,
		SemesterID:    draft.SemesterID,
		Credits:       draft.Credits,
		Hours:         draft.Hours,
		Unit:          draft.Unit,
		Prerequisites: draft.Prerequisites,
		CreatedBy:     draft.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if draft.CreatedBy != "" {
		subject.State = models.SubjectPending
		subject.Active = false
	} else {
		subject.State = models.SubjectApproved
		subject.Active = true
	}
	if err := r.subjects.Insert(ctx, subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// FindByID returns a subject by identifier.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	subject, found, err := r.subjects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	return &subject, nil
}

// FindByCode returns a subject by code, compared case-insensitively.
func (r *SubjectRepository) FindByCode(ctx context.Context, code string) (*models.Subject, error) {
	subject, found, err := r.subjects.Find(ctx, func(s models.Subject) bool {
		return strings.EqualFold(s.Code, code)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	return &subject, nil
}

// List returns every subject.
func (r *SubjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	return r.subjects.All(ctx)
}

// ListByCareer returns every subject belonging to the career.
func (r *SubjectRepository) ListByCareer(ctx context.Context, careerID string) ([]models.Subject, error) {
	return r.subjects.Filter(ctx, func(s models.Subject) bool {
		return s.CareerID == careerID
	})
}

// ListPending returns subjects awaiting admin approval.
func (r *SubjectRepository) ListPending(ctx context.Context) ([]models.Subject, error) {
	return r.subjects.Filter(ctx, func(s models.Subject) bool {
		return s.State == models.SubjectPending
	})
}

// SetApproval applies the admin approval or rejection transition. Rejection
// always forces the subject inactive.
func (r *SubjectRepository) SetApproval(ctx context.Context, id string, state models.SubjectState, active bool) (*models.Subject, error) {
	if state == models.SubjectRejected {
		active = false
	}
	subject, found, err := r.subjects.Update(ctx, id, func(s *models.Subject) {
		s.State = state
		s.Active = active
		s.UpdatedAt = time.Now().UTC()
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	return &subject, nil
}

// SubjectUpdate carries a partial merge for a subject.
type SubjectUpdate struct {
	Name          *string
	SemesterID    *string
	Credits       *float64
	Hours         *float64
	Unit          *models.AcademicUnit
	Prerequisites []string
	Active        *bool
}

// Update merges the partial into the stored subject.
func (r *SubjectRepository) Update(ctx context.Context, id string, partial SubjectUpdate) (*models.Subject, error) {
	subject, found, err := r.subjects.Update(ctx, id, func(s *models.Subject) {
		if partial.Name != nil {
			s.Name = *partial.Name
		}
		if partial.SemesterID != nil {
			s.SemesterID = *partial.SemesterID
		}
		if partial.Credits != nil {
			s.Credits = partial.Credits
		}
		if partial.Hours != nil {
			s.Hours = partial.Hours
		}
		if partial.Unit != nil {
			s.Unit = *partial.Unit
		}
		if partial.Prerequisites != nil {
			s.Prerequisites = partial.Prerequisites
		}
		if partial.Active != nil {
			s.Active = *partial.Active
		}
		s.UpdatedAt = time.Now().UTC()
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	return &subject, nil
}

// Delete removes the subject record.
func (r *SubjectRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.subjects.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	return nil
}
