package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/store"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
)

// ReportRepository persists background report job metadata.
type ReportRepository struct {
	reports *store.Collection[models.ReportJob]
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(s *store.Store) *ReportRepository {
	return &ReportRepository{reports: s.Reports}
}

// Create inserts a queued report job.
func (r *ReportRepository) Create(ctx context.Context, reportType models.ReportType, params models.ReportJobParams, createdBy string) (*models.ReportJob, error) {
	job := models.ReportJob{
		ID:        uuid.NewString(),
		Type:      reportType,
		Params:    params,
		Status:    models.ReportStatusQueued,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.reports.Insert(ctx, job); err != nil {
		return nil, err
	}
	return &job, nil
}

// FindByID returns a report job by identifier.
func (r *ReportRepository) FindByID(ctx context.Context, id string) (*models.ReportJob, error) {
	job, found, err := r.reports.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report job not found")
	}
	return &job, nil
}

// ListByUser returns the user's report jobs, newest first.
func (r *ReportRepository) ListByUser(ctx context.Context, userID string) ([]models.ReportJob, error) {
	jobs, err := r.reports.Filter(ctx, func(j models.ReportJob) bool {
		return j.CreatedBy == userID
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

// MarkProcessing transitions the job to the processing state.
func (r *ReportRepository) MarkProcessing(ctx context.Context, id string) error {
	return r.transition(ctx, id, func(j *models.ReportJob) {
		j.Status = models.ReportStatusProcessing
	})
}

// MarkFinished records the signed result URL and finish time.
func (r *ReportRepository) MarkFinished(ctx context.Context, id, resultURL string) error {
	now := time.Now().UTC()
	return r.transition(ctx, id, func(j *models.ReportJob) {
		j.Status = models.ReportStatusFinished
		j.ResultURL = &resultURL
		j.FinishedAt = &now
	})
}

// MarkFailed records the failure message and finish time.
func (r *ReportRepository) MarkFailed(ctx context.Context, id, message string) error {
	now := time.Now().UTC()
	return r.transition(ctx, id, func(j *models.ReportJob) {
		j.Status = models.ReportStatusFailed
		j.ErrorMessage = &message
		j.FinishedAt = &now
	})
}

func (r *ReportRepository) transition(ctx context.Context, id string, mutate func(*models.ReportJob)) error {
	_, found, err := r.reports.Update(ctx, id, mutate)
	if err != nil {
		return err
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "report job not found")
	}
	return nil
}
