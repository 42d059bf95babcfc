package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/repository"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
)

type assignmentRepository interface {
	Create(ctx context.Context, draft repository.AssignmentDraft) (*models.TeacherAssignment, error)
	FindByID(ctx context.Context, id string) (*models.TeacherAssignment, error)
	List(ctx context.Context) ([]models.TeacherAssignment, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherAssignment, error)
	ListByCareer(ctx context.Context, careerID string) ([]models.TeacherAssignment, error)
	TeachersForSubjectSemester(ctx context.Context, subjectID, semesterID, careerID string) ([]models.User, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type assignmentUserReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// AssignmentService links teachers to the subjects they tutor. The resulting
// assignments drive which teachers a student can request.
type AssignmentService struct {
	assignments assignmentRepository
	users       assignmentUserReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(assignments assignmentRepository, users assignmentUserReader, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AssignmentService{assignments: assignments, users: users, validator: validate, logger: logger}
}

// Create registers an assignment. The target user must hold the teacher role.
func (s *AssignmentService) Create(ctx context.Context, req models.CreateAssignmentRequest) (*models.TeacherAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	teacher, err := s.users.FindByID(ctx, req.TeacherID)
	if err != nil {
		return nil, err
	}
	if !teacher.HasRole(models.RoleTeacher) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "user is not a teacher")
	}

	return s.assignments.Create(ctx, repository.AssignmentDraft{
		TeacherID:  req.TeacherID,
		SubjectID:  req.SubjectID,
		SemesterID: req.SemesterID,
		CareerID:   req.CareerID,
	})
}

// Get returns one assignment.
func (s *AssignmentService) Get(ctx context.Context, id string) (*models.TeacherAssignment, error) {
	return s.assignments.FindByID(ctx, id)
}

// List returns every assignment.
func (s *AssignmentService) List(ctx context.Context) ([]models.TeacherAssignment, error) {
	return s.assignments.List(ctx)
}

// ListByTeacher returns assignments for a teacher.
func (s *AssignmentService) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherAssignment, error) {
	return s.assignments.ListByTeacher(ctx, teacherID)
}

// ListByCareer returns assignments scoped to a career.
func (s *AssignmentService) ListByCareer(ctx context.Context, careerID string) ([]models.TeacherAssignment, error) {
	return s.assignments.ListByCareer(ctx, careerID)
}

// AvailableTeachers lists the teachers a student may request for the subject
// and semester within their career. An empty list is a valid answer.
func (s *AssignmentService) AvailableTeachers(ctx context.Context, subjectID, semesterID, careerID string) ([]models.PublicUser, error) {
	teachers, err := s.assignments.TeachersForSubjectSemester(ctx, subjectID, semesterID, careerID)
	if err != nil {
		return nil, err
	}
	return publicUsers(teachers), nil
}

// SetActive toggles the assignment's active flag.
func (s *AssignmentService) SetActive(ctx context.Context, id string, active bool) error {
	return s.assignments.SetActive(ctx, id, active)
}

// Delete removes the assignment.
func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	return s.assignments.Delete(ctx, id)
}
