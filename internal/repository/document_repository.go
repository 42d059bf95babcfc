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

// DocumentRepository manages published PDF document metadata. The binary
// content lives in local storage under StoredName.
type DocumentRepository struct {
	documents *store.Collection[models.Document]
}

// NewDocumentRepository creates a new instance of DocumentRepository.
func NewDocumentRepository(s *store.Store) *DocumentRepository {
	return &DocumentRepository{documents: s.Documents}
}

// DocumentDraft carries the fields for a new document record.
type DocumentDraft struct {
	Name         string
	Career       string
	UploaderRole models.Role
	UploaderID   string
	StoredName   string
	Size         int64
	Description  string
}

// Create inserts a document record.
func (r *DocumentRepository) Create(ctx context.Context, draft DocumentDraft) (*models.Document, error) {
	document := models.Document{
		ID:           uuid.NewString(),
		Name:         draft.Name,
		Career:       draft.Career,
		UploaderRole: draft.UploaderRole,
		UploaderID:   draft.UploaderID,
		StoredName:   draft.StoredName,
		Size:         draft.Size,
		Description:  draft.Description,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.documents.Insert(ctx, document); err != nil {
		return nil, err
	}
	return &document, nil
}

// FindByID returns a document by identifier.
func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*models.Document, error) {
	document, found, err := r.documents.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
	}
	return &document, nil
}

// List returns every active document.
func (r *DocumentRepository) List(ctx context.Context) ([]models.Document, error) {
	return r.documents.Filter(ctx, func(d models.Document) bool {
		return d.Active
	})
}

// ListByCareer returns active documents for a career, compared
// case-insensitively.
func (r *DocumentRepository) ListByCareer(ctx context.Context, career string) ([]models.Document, error) {
	return r.documents.Filter(ctx, func(d models.Document) bool {
		return d.Active && strings.EqualFold(d.Career, career)
	})
}

// Delete removes the document record and returns it so the caller can remove
// the stored file.
func (r *DocumentRepository) Delete(ctx context.Context, id string) (*models.Document, error) {
	document, found, err := r.documents.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
	}
	if _, err := r.documents.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &document, nil
}
