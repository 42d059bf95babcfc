package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/store"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
)

const unknownName = "Unknown"

// TutoringRepository manages the tutoring request lifecycle and the enriched
// views that resolve participant names for display.
type TutoringRepository struct {
	requests *store.Collection[models.TutoringRequest]
	messages *store.Collection[models.Message]
	users    *store.Collection[models.User]
	subjects *store.Collection[models.Subject]
}

// NewTutoringRepository creates a new instance of TutoringRepository.
func NewTutoringRepository(s *store.Store) *TutoringRepository {
	return &TutoringRepository{
		requests: s.Requests,
		messages: s.Messages,
		users:    s.Users,
		subjects: s.Subjects,
	}
}

// TutoringDraft carries the fields for a new tutoring request.
type TutoringDraft struct {
	StudentID   string
	TeacherID   string
	SubjectID   string
	SemesterID  string
	Topic       string
	Description string
	Date        string
	Time        string
}

// Create inserts a tutoring request in the pending state. There is no
// uniqueness constraint: a student may hold any number of open requests.
func (r *TutoringRepository) Create(ctx context.Context, draft TutoringDraft) (*models.TutoringRequest, error) {
	now := time.Now().UTC()
	request := models.TutoringRequest{
		ID:          uuid.NewString(),
		StudentID:   draft.StudentID,
		TeacherID:   draft.TeacherID,
		SubjectID:   draft.SubjectID,
		SemesterID:  draft.SemesterID,
		Topic:       draft.Topic,
		Description: draft.Description,
		Date:        draft.Date,
		Time:        draft.Time,
		Status:      models.RequestPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.requests.Insert(ctx, request); err != nil {
		return nil, err
	}
	return &request, nil
}

// FindByID returns a tutoring request by identifier.
func (r *TutoringRepository) FindByID(ctx context.Context, id string) (*models.TutoringRequest, error) {
	request, found, err := r.requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "tutoring request not found")
	}
	return &request, nil
}

// List returns every tutoring request.
func (r *TutoringRepository) List(ctx context.Context) ([]models.TutoringRequest, error) {
	return r.requests.All(ctx)
}

// ListByStudent returns requests created by the student.
func (r *TutoringRepository) ListByStudent(ctx context.Context, studentID string) ([]models.TutoringRequest, error) {
	return r.requests.Filter(ctx, func(t models.TutoringRequest) bool {
		return t.StudentID == studentID
	})
}

// ListByTeacher returns requests addressed to the teacher.
func (r *TutoringRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.TutoringRequest, error) {
	return r.requests.Filter(ctx, func(t models.TutoringRequest) bool {
		return t.TeacherID == teacherID
	})
}

// Update merges the partial into the stored request.
func (r *TutoringRepository) Update(ctx context.Context, id string, partial models.TutoringRequestUpdate) (*models.TutoringRequest, error) {
	request, found, err := r.requests.Update(ctx, id, func(t *models.TutoringRequest) {
		if partial.TeacherID != nil {
			t.TeacherID = *partial.TeacherID
		}
		if partial.SubjectID != nil {
			t.SubjectID = *partial.SubjectID
		}
		if partial.SemesterID != nil {
			t.SemesterID = *partial.SemesterID
		}
		if partial.Topic != nil {
			t.Topic = *partial.Topic
		}
		if partial.Description != nil {
			t.Description = *partial.Description
		}
		if partial.Date != nil {
			t.Date = *partial.Date
		}
		if partial.Time != nil {
			t.Time = *partial.Time
		}
		if partial.Status != nil {
			t.Status = *partial.Status
		}
		if partial.Rating != nil {
			t.Rating = partial.Rating
		}
		if partial.Comment != nil {
			t.Comment = *partial.Comment
		}
		t.UpdatedAt = time.Now().UTC()
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "tutoring request not found")
	}
	return &request, nil
}

// Delete removes the request and cascades to its chat messages.
func (r *TutoringRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.requests.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "tutoring request not found")
	}
	_, err = r.messages.DeleteWhere(ctx, func(m models.Message) bool {
		return m.RequestID == id
	})
	return err
}

// Detail resolves the display names for one request.
func (r *TutoringRepository) Detail(ctx context.Context, id string) (*models.TutoringRequestDetail, error) {
	request, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail, err := r.enrich(ctx, []models.TutoringRequest{*request})
	if err != nil {
		return nil, err
	}
	return &detail[0], nil
}

// Enrich resolves display names for a batch of requests. Deleted users or
// subjects resolve to "Unknown" rather than failing the whole listing.
func (r *TutoringRepository) Enrich(ctx context.Context, requests []models.TutoringRequest) ([]models.TutoringRequestDetail, error) {
	return r.enrich(ctx, requests)
}

func (r *TutoringRepository) enrich(ctx context.Context, requests []models.TutoringRequest) ([]models.TutoringRequestDetail, error) {
	details := make([]models.TutoringRequestDetail, 0, len(requests))
	for _, req := range requests {
		detail := models.TutoringRequestDetail{
			TutoringRequest: req,
			StudentName:     unknownName,
			TeacherName:     unknownName,
		}
		if student, found, err := r.users.Get(ctx, req.StudentID); err != nil {
			return nil, err
		} else if found {
			detail.StudentName = student.FullName()
		}
		if teacher, found, err := r.users.Get(ctx, req.TeacherID); err != nil {
			return nil, err
		} else if found {
			detail.TeacherName = teacher.FullName()
		}
		if req.SubjectID != "" {
			if subject, found, err := r.subjects.Get(ctx, req.SubjectID); err != nil {
				return nil, err
			} else if found {
				detail.SubjectName = subject.Name
			}
		}
		details = append(details, detail)
	}
	return details, nil
}
