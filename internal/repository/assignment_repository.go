package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/store"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
)

// AssignmentRepository manages teacher-subject-semester assignments and the
// join that decides which teachers a student may request.
type AssignmentRepository struct {
	assignments *store.Collection[models.TeacherAssignment]
	users       *store.Collection[models.User]
}

// NewAssignmentRepository creates a new instance of AssignmentRepository.
func NewAssignmentRepository(s *store.Store) *AssignmentRepository {
	return &AssignmentRepository{assignments: s.Assignments, users: s.Users}
}

// AssignmentDraft carries the fields for a new assignment.
type AssignmentDraft struct {
	TeacherID  string
	SubjectID  string
	SemesterID string
	CareerID   string
}

// Create inserts an assignment. Fails with the duplicate-key kind when the
// (teacher, subject, semester) triple already exists.
func (r *AssignmentRepository) Create(ctx context.Context, draft AssignmentDraft) (*models.TeacherAssignment, error) {
	_, found, err := r.assignments.Find(ctx, func(a models.TeacherAssignment) bool {
		return a.TeacherID == draft.TeacherID && a.SubjectID == draft.SubjectID && a.SemesterID == draft.SemesterID
	})
	if err != nil {
		return nil, err
	}
	if found {
		return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "assignment already exists")
	}

	assignment := models.TeacherAssignment{
		ID:         uuid.NewString(),
		TeacherID:  draft.TeacherID,
		SubjectID:  draft.SubjectID,
		SemesterID: draft.SemesterID,
		CareerID:   draft.CareerID,
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}
	if err := r.assignments.Insert(ctx, assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindByID returns an assignment by identifier.
func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*models.TeacherAssignment, error) {
	assignment, found, err := r.assignments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	return &assignment, nil
}

// List returns every assignment.
func (r *AssignmentRepository) List(ctx context.Context) ([]models.TeacherAssignment, error) {
	return r.assignments.All(ctx)
}

// ListByTeacher returns assignments for the given teacher.
func (r *AssignmentRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherAssignment, error) {
	return r.assignments.Filter(ctx, func(a models.TeacherAssignment) bool {
		return a.TeacherID == teacherID
	})
}

// ListByCareer returns assignments scoped to the given career.
func (r *AssignmentRepository) ListByCareer(ctx context.Context, careerID string) ([]models.TeacherAssignment, error) {
	return r.assignments.Filter(ctx, func(a models.TeacherAssignment) bool {
		return a.CareerID == careerID
	})
}

// TeachersForSubjectSemester resolves the teachers holding an active
// assignment matching all three keys. This is the sole mechanism constraining
// which teachers a student may request for a subject/semester; it returns an
// empty slice, never an error, when nothing matches.
func (r *AssignmentRepository) TeachersForSubjectSemester(ctx context.Context, subjectID, semesterID, careerID string) ([]models.User, error) {
	matches, err := r.assignments.Filter(ctx, func(a models.TeacherAssignment) bool {
		return a.Active && a.SubjectID == subjectID && a.SemesterID == semesterID && a.CareerID == careerID
	})
	if err != nil {
		return nil, err
	}

	teachers := make([]models.User, 0, len(matches))
	for _, a := range matches {
		teacher, found, err := r.users.Get(ctx, a.TeacherID)
		if err != nil {
			return nil, err
		}
		if found && teacher.Active {
			teachers = append(teachers, teacher)
		}
	}
	return teachers, nil
}

// SetActive toggles the active flag.
func (r *AssignmentRepository) SetActive(ctx context.Context, id string, active bool) error {
	_, found, err := r.assignments.Update(ctx, id, func(a *models.TeacherAssignment) {
		a.Active = active
	})
	if err != nil {
		return err
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	return nil
}

// Delete removes the assignment record.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.assignments.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	return nil
}
