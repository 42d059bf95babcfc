package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/uta-tic/tutoring-api/internal/models"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
	"github.com/uta-tic/tutoring-api/pkg/export"
	"github.com/uta-tic/tutoring-api/pkg/jobs"
	"github.com/uta-tic/tutoring-api/pkg/storage"
)

type reportRepository interface {
	Create(ctx context.Context, reportType models.ReportType, params models.ReportJobParams, createdBy string) (*models.ReportJob, error)
	FindByID(ctx context.Context, id string) (*models.ReportJob, error)
	ListByUser(ctx context.Context, userID string) ([]models.ReportJob, error)
	MarkProcessing(ctx context.Context, id string) error
	MarkFinished(ctx context.Context, id, resultURL string) error
	MarkFailed(ctx context.Context, id, message string) error
}

// ReportConfig configures the asynchronous export pipeline.
type ReportConfig struct {
	Workers         int
	Retries         int
	CleanupInterval time.Duration
	FileTTL         time.Duration
}

// ReportService generates CSV and PDF exports in the background. Jobs are
// persisted, files land in local storage and downloads go through signed
// tokens.
type ReportService struct {
	reports   reportRepository
	users     statsUserLister
	requests  statsTutoringLister
	files     *storage.LocalStorage
	signer    *storage.SignedURLSigner
	notifier  tutoringNotifier
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	queue     *jobs.Queue
	validator *validator.Validate
	logger    *zap.Logger
	config    ReportConfig
}

// NewReportService constructs a ReportService instance. Start must be called
// before jobs can be queued.
func NewReportService(reports reportRepository, users statsUserLister, requests statsTutoringLister, files *storage.LocalStorage, signer *storage.SignedURLSigner, notifier tutoringNotifier, validate *validator.Validate, logger *zap.Logger, config ReportConfig) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = time.Hour
	}
	if config.FileTTL <= 0 {
		config.FileTTL = 24 * time.Hour
	}

	s := &ReportService{
		reports:   reports,
		users:     users,
		requests:  requests,
		files:     files,
		signer:    signer,
		notifier:  notifier,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
		config:    config,
	}
	s.queue = jobs.NewQueue("reports", s.process, jobs.QueueConfig{
		Workers:    config.Workers,
		MaxRetries: config.Retries,
		Logger:     logger,
	})
	return s
}

// Start launches the worker pool and the retention loop.
func (s *ReportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
	go s.cleanupLoop(ctx)
}

// Stop drains the worker pool.
func (s *ReportService) Stop() {
	s.queue.Stop()
}

// Enqueue persists a queued job and hands it to the workers.
func (s *ReportService) Enqueue(ctx context.Context, userID string, req models.CreateReportRequest) (*models.ReportJob, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report payload")
	}
	switch req.Type {
	case models.ReportTypeUserRoster, models.ReportTypeTutoringSummary:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown report type")
	}
	switch req.Format {
	case models.ReportFormatCSV, models.ReportFormatPDF:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown report format")
	}

	job, err := s.reports.Create(ctx, req.Type, models.ReportJobParams{
		Career: req.Career,
		Role:   req.Role,
		Format: req.Format,
	}, userID)
	if err != nil {
		return nil, err
	}

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: string(job.Type)}); err != nil {
		if markErr := s.reports.MarkFailed(ctx, job.ID, "queue unavailable"); markErr != nil {
			s.logger.Warn("failed to mark report job failed", zap.Error(markErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue report")
	}
	return job, nil
}

// Get returns one report job. Only its creator may read it.
func (s *ReportService) Get(ctx context.Context, id, userID string) (*models.ReportJob, error) {
	job, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.CreatedBy != userID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report job not found")
	}
	return job, nil
}

// ListForUser returns the user's report jobs, newest first.
func (s *ReportService) ListForUser(ctx context.Context, userID string) ([]models.ReportJob, error) {
	return s.reports.ListByUser(ctx, userID)
}

// ResolveDownload validates a signed token and returns the stored file path.
func (s *ReportService) ResolveDownload(token string) (string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid download token")
	}
	return s.files.Path(relPath), nil
}

func (s *ReportService) process(ctx context.Context, job jobs.Job) error {
	record, err := s.reports.FindByID(ctx, job.ID)
	if err != nil {
		return err
	}
	if err := s.reports.MarkProcessing(ctx, record.ID); err != nil {
		return err
	}

	dataset, title, err := s.buildDataset(ctx, record)
	if err != nil {
		return s.fail(ctx, record.ID, err)
	}

	var payload []byte
	ext := "csv"
	if record.Params.Format == models.ReportFormatPDF {
		payload, err = s.pdf.Render(dataset, title)
		ext = "pdf"
	} else {
		payload, err = s.csv.Render(dataset)
	}
	if err != nil {
		return s.fail(ctx, record.ID, err)
	}

	filename := fmt.Sprintf("%s_%s.%s", record.Type, record.ID, ext)
	if _, err := s.files.Save(filename, payload); err != nil {
		return s.fail(ctx, record.ID, err)
	}

	token, _, err := s.signer.Generate(record.ID, filename)
	if err != nil {
		return s.fail(ctx, record.ID, err)
	}
	if err := s.reports.MarkFinished(ctx, record.ID, token); err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, record.CreatedBy, "Your report is ready for download", models.NotificationPDF, ""); err != nil {
			s.logger.Warn("failed to notify report requester", zap.Error(err))
		}
	}
	return nil
}

func (s *ReportService) fail(ctx context.Context, id string, cause error) error {
	if err := s.reports.MarkFailed(ctx, id, cause.Error()); err != nil {
		s.logger.Warn("failed to mark report job failed", zap.Error(err))
	}
	return cause
}

func (s *ReportService) buildDataset(ctx context.Context, job *models.ReportJob) (export.Dataset, string, error) {
	switch job.Type {
	case models.ReportTypeUserRoster:
		return s.userRoster(ctx, job.Params)
	case models.ReportTypeTutoringSummary:
		return s.tutoringSummary(ctx)
	default:
		return export.Dataset{}, "", fmt.Errorf("unknown report type %q", job.Type)
	}
}

func (s *ReportService) userRoster(ctx context.Context, params models.ReportJobParams) (export.Dataset, string, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}

	dataset := export.Dataset{Headers: []string{"National ID", "Name", "Email", "Roles", "Career", "Active"}}
	for _, u := range users {
		if params.Role != "" && !u.HasRole(params.Role) {
			continue
		}
		if params.Career != "" && u.Career != params.Career {
			continue
		}
		active := "no"
		if u.Active {
			active = "yes"
		}
		roles := ""
		for i, r := range u.Roles {
			if i > 0 {
				roles += ", "
			}
			roles += string(r)
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"National ID": u.NationalID,
			"Name":        u.FullName(),
			"Email":       u.Email,
			"Roles":       roles,
			"Career":      u.Career,
			"Active":      active,
		})
	}
	return dataset, "User Roster", nil
}

func (s *ReportService) tutoringSummary(ctx context.Context) (export.Dataset, string, error) {
	requests, err := s.requests.List(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}

	dataset := export.Dataset{Headers: []string{"Topic", "Status", "Date", "Time", "Rating"}}
	for _, r := range requests {
		rating := ""
		if r.Rating != nil {
			rating = fmt.Sprintf("%d", *r.Rating)
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Topic":  r.Topic,
			"Status": string(r.Status),
			"Date":   r.Date,
			"Time":   r.Time,
			"Rating": rating,
		})
	}
	return dataset, "Tutoring Summary", nil
}

func (s *ReportService) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(s.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.files.CleanupOlderThan(s.config.FileTTL)
			if err != nil {
				s.logger.Warn("report cleanup failed", zap.Error(err))
				continue
			}
			if len(deleted) > 0 {
				s.logger.Info("expired report files removed", zap.Int("count", len(deleted)))
			}
		}
	}
}
