package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/store"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
)

// PeriodRepository manages academic calendar windows.
type PeriodRepository struct {
	periods *store.Collection[models.AcademicPeriod]
}

// NewPeriodRepository creates a new instance of PeriodRepository.
func NewPeriodRepository(s *store.Store) *PeriodRepository {
	return &PeriodRepository{periods: s.Periods}
}

// PeriodDraft carries the fields for a new period.
type PeriodDraft struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Year      int
}

// Create inserts an academic period.
func (r *PeriodRepository) Create(ctx context.Context, draft PeriodDraft) (*models.AcademicPeriod, error) {
	period := models.AcademicPeriod{
		ID:        uuid.NewString(),
		Name:      draft.Name,
		StartDate: draft.StartDate,
		EndDate:   draft.EndDate,
		Year:      draft.Year,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.periods.Insert(ctx, period); err != nil {
		return nil, err
	}
	return &period, nil
}

// FindByID returns a period by identifier.
func (r *PeriodRepository) FindByID(ctx context.Context, id string) (*models.AcademicPeriod, error) {
	period, found, err := r.periods.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "academic period not found")
	}
	return &period, nil
}

// List returns every period.
func (r *PeriodRepository) List(ctx context.Context) ([]models.AcademicPeriod, error) {
	return r.periods.All(ctx)
}

// PeriodUpdate carries a partial merge for a period.
type PeriodUpdate struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
	Year      *int
	Active    *bool
}

// Update merges the partial into the stored period.
func (r *PeriodRepository) Update(ctx context.Context, id string, partial PeriodUpdate) (*models.AcademicPeriod, error) {
	period, found, err := r.periods.Update(ctx, id, func(p *models.AcademicPeriod) {
		if partial.Name != nil {
			p.Name = *partial.Name
		}
		if partial.StartDate != nil {
			p.StartDate = *partial.StartDate
		}
		if partial.EndDate != nil {
			p.EndDate = *partial.EndDate
		}
		if partial.Year != nil {
			p.Year = *partial.Year
		}
		if partial.Active != nil {
			p.Active = *partial.Active
		}
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "academic period not found")
	}
	return &period, nil
}

// Delete removes the period record.
func (r *PeriodRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.periods.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "academic period not found")
	}
	return nil
}
