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

// CareerRepository manages academic programs.
type CareerRepository struct {
	careers *store.Collection[models.Career]
}

// NewCareerRepository creates a new instance of CareerRepository.
func NewCareerRepository(s *store.Store) *CareerRepository {
	return &CareerRepository{careers: s.Careers}
}

// CareerDraft carries the fields for a new career.
type CareerDraft struct {
	Name        string
	Code        string
	Description string
}

// Create inserts a career. Fails with the duplicate-key kind when the code is
// already registered, compared case-insensitively.
func (r *CareerRepository) Create(ctx context.Context, draft CareerDraft) (*models.Career, error) {
	_, found, err := r.careers.Find(ctx, func(c models.Career) bool {
		return strings.EqualFold(c.Code, draft.Code)
	})
	if err != nil {
		return nil, err
	}
	if found {
		return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "career code already registered")
	}

	now := time.Now().UTC()
	career := models.Career{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Code:        draft.Code,
		Description: draft.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.careers.Insert(ctx, career); err != nil {
		return nil, err
	}
	return &career, nil
}

// FindByID returns a career by identifier.
func (r *CareerRepository) FindByID(ctx context.Context, id string) (*models.Career, error) {
	career, found, err := r.careers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "career not found")
	}
	return &career, nil
}

// FindByCode returns a career by code, compared case-insensitively.
func (r *CareerRepository) FindByCode(ctx context.Context, code string) (*models.Career, error) {
	career, found, err := r.careers.Find(ctx, func(c models.Career) bool {
		return strings.EqualFold(c.Code, code)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "career not found")
	}
	return &career, nil
}

// List returns every career.
func (r *CareerRepository) List(ctx context.Context) ([]models.Career, error) {
	return r.careers.All(ctx)
}

// CareerUpdate carries a partial merge for a career.
type CareerUpdate struct {
	Name        *string
	Description *string
	Active      *bool
}

// Update merges the partial into the stored career.
func (r *CareerRepository) Update(ctx context.Context, id string, partial CareerUpdate) (*models.Career, error) {
	career, found, err := r.careers.Update(ctx, id, func(c *models.Career) {
		if partial.Name != nil {
			c.Name = *partial.Name
		}
		if partial.Description != nil {
			c.Description = *partial.Description
		}
		if partial.Active != nil {
			c.Active = *partial.Active
		}
		c.UpdatedAt = time.Now().UTC()
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "career not found")
	}
	return &career, nil
}

// Delete removes the career record.
func (r *CareerRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.careers.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "career not found")
	}
	return nil
}
