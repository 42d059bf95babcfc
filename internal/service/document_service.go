package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/repository"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
	"github.com/uta-tic/tutoring-api/pkg/secure"
	"github.com/uta-tic/tutoring-api/pkg/storage"
)

type documentRepository interface {
	Create(ctx context.Context, draft repository.DocumentDraft) (*models.Document, error)
	FindByID(ctx context.Context, id string) (*models.Document, error)
	List(ctx context.Context) ([]models.Document, error)
	ListByCareer(ctx context.Context, career string) ([]models.Document, error)
	Delete(ctx context.Context, id string) (*models.Document, error)
}

// DocumentService manages the career document registry. Admins manage every
// document; coordinators only those of their own career.
type DocumentService struct {
	documents documentRepository
	files     *storage.LocalStorage
	notifier  *NotificationService
	maxSize   int64
	logger    *zap.Logger
}

// NewDocumentService constructs a DocumentService instance.
func NewDocumentService(documents documentRepository, files *storage.LocalStorage, notifier *NotificationService, maxSize int64, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxSize <= 0 {
		maxSize = 10 * 1024 * 1024
	}
	return &DocumentService{documents: documents, files: files, notifier: notifier, maxSize: maxSize, logger: logger}
}

// Upload stores a PDF and registers its metadata. Members of the career are
// notified about the new material.
func (s *DocumentService) Upload(ctx context.Context, uploader models.JWTClaims, career, name, description, filename string, size int64, content io.Reader) (*models.Document, error) {
	if uploader.ActiveRole != models.RoleAdmin && uploader.ActiveRole != models.RoleCoordinator {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only admins and coordinators can publish documents")
	}
	if size > s.maxSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds the %d byte limit", s.maxSize))
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only PDF documents are accepted")
	}

	storedName := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), uuid.NewString(), filepath.Ext(filename))
	if _, err := s.files.SaveStream(storedName, content); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store document")
	}

	document, err := s.documents.Create(ctx, repository.DocumentDraft{
		Name:         secure.SanitizeInput(name),
		Career:       secure.SanitizeInput(career),
		UploaderRole: uploader.ActiveRole,
		UploaderID:   uploader.UserID,
		StoredName:   storedName,
		Size:         size,
		Description:  secure.SanitizeInput(description),
	})
	if err != nil {
		if removeErr := s.files.Delete(storedName); removeErr != nil {
			s.logger.Warn("failed to remove orphaned document file", zap.Error(removeErr))
		}
		return nil, err
	}

	if s.notifier != nil {
		if _, err := s.notifier.NotifyCareer(ctx, document.Career, "New document available: "+document.Name, models.NotificationPDF, document.ID); err != nil {
			s.logger.Warn("failed to notify career about document", zap.Error(err))
		}
	}
	return document, nil
}

// Get returns one document's metadata. Students may only read documents of
// their own career.
func (s *DocumentService) Get(ctx context.Context, id string, actor models.JWTClaims, actorCareer string) (*models.Document, error) {
	document, err := s.documents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(document, actor, actorCareer); err != nil {
		return nil, err
	}
	return document, nil
}

// Open returns a reader over the stored file plus its metadata, under the same
// career scoping as Get.
func (s *DocumentService) Open(ctx context.Context, id string, actor models.JWTClaims, actorCareer string) (*models.Document, io.ReadCloser, error) {
	document, err := s.Get(ctx, id, actor, actorCareer)
	if err != nil {
		return nil, nil, err
	}
	file, err := s.files.Open(document.StoredName)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open document")
	}
	return document, file, nil
}

// List returns documents visible to the actor. Students always get their own
// career's documents and the career filter is ignored for them; other roles
// may filter by career or list everything.
func (s *DocumentService) List(ctx context.Context, actor models.JWTClaims, actorCareer, careerFilter string) ([]models.Document, error) {
	if actor.ActiveRole == models.RoleStudent {
		return s.documents.ListByCareer(ctx, actorCareer)
	}
	if careerFilter != "" {
		return s.documents.ListByCareer(ctx, careerFilter)
	}
	return s.documents.List(ctx)
}

func (s *DocumentService) authorizeRead(document *models.Document, actor models.JWTClaims, actorCareer string) error {
	if actor.ActiveRole == models.RoleStudent && !strings.EqualFold(document.Career, actorCareer) {
		return appErrors.Clone(appErrors.ErrForbidden, "document belongs to another career")
	}
	return nil
}

// Delete removes a document. Coordinators may only delete documents of their
// own career.
func (s *DocumentService) Delete(ctx context.Context, id string, actor models.JWTClaims, actorCareer string) error {
	document, err := s.documents.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.ActiveRole == models.RoleCoordinator && !strings.EqualFold(document.Career, actorCareer) {
		return appErrors.Clone(appErrors.ErrForbidden, "document belongs to another career")
	}
	if actor.ActiveRole != models.RoleAdmin && actor.ActiveRole != models.RoleCoordinator {
		return appErrors.Clone(appErrors.ErrForbidden, "only admins and coordinators can delete documents")
	}

	removed, err := s.documents.Delete(ctx, id)
	if err != nil {
		return err
	}
	if err := s.files.Delete(removed.StoredName); err != nil {
		s.logger.Warn("failed to remove stored document file", zap.Error(err))
	}
	return nil
}
