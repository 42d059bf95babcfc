package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uta-tic/tutoring-api/internal/models"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
)

func TestAssignmentRepositoryCreateRejectsDuplicateTriple(t *testing.T) {
	ctx := context.Background()
	repo := NewAssignmentRepository(newTestStore(t))

	draft := AssignmentDraft{TeacherID: "t1", SubjectID: "s1", SemesterID: "sem1", CareerID: "c1"}
	_, err := repo.Create(ctx, draft)
	require.NoError(t, err)

	_, err = repo.Create(ctx, draft)
	require.Error(t, err)
	assert.True(t, appErrors.IsDuplicate(err))

	// A different semester is a different assignment.
	draft.SemesterID = "sem2"
	_, err = repo.Create(ctx, draft)
	assert.NoError(t, err)
}

func TestTeachersForSubjectSemester(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := NewUserRepository(st)
	repo := NewAssignmentRepository(st)

	teacherDraft := func(nationalID, email string) UserDraft {
		return UserDraft{
			NationalID:   nationalID,
			FirstName:    "Luis",
			LastName:     "Mora",
			Email:        email,
			PasswordHash: "digest",
			Roles:        []models.Role{models.RoleTeacher},
		}
	}

	assigned, err := users.Create(ctx, teacherDraft("1804567890", "assigned@uta.edu.ec"))
	require.NoError(t, err)
	inactive, err := users.Create(ctx, teacherDraft("0904567890", "inactive@uta.edu.ec"))
	require.NoError(t, err)
	other, err := users.Create(ctx, teacherDraft("1104567890", "other@uta.edu.ec"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, AssignmentDraft{TeacherID: assigned.ID, SubjectID: "calc", SemesterID: "sem1", CareerID: "sys"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, AssignmentDraft{TeacherID: inactive.ID, SubjectID: "calc", SemesterID: "sem1", CareerID: "sys"})
	require.NoError(t, err)
	// Assigned to another subject, must not surface.
	_, err = repo.Create(ctx, AssignmentDraft{TeacherID: other.ID, SubjectID: "physics", SemesterID: "sem1", CareerID: "sys"})
	require.NoError(t, err)

	off := false
	_, err = users.Update(ctx, inactive.ID, UserUpdate{Active: &off})
	require.NoError(t, err)

	teachers, err := repo.TeachersForSubjectSemester(ctx, "calc", "sem1", "sys")
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, assigned.ID, teachers[0].ID)
}

func TestTeachersForSubjectSemesterEmptyIsNotAnError(t *testing.T) {
	ctx := context.Background()
	repo := NewAssignmentRepository(newTestStore(t))

	teachers, err := repo.TeachersForSubjectSemester(ctx, "calc", "sem1", "sys")
	require.NoError(t, err)
	assert.Empty(t, teachers)
}

func TestTeachersForSubjectSemesterSkipsInactiveAssignment(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := NewUserRepository(st)
	repo := NewAssignmentRepository(st)

	teacher, err := users.Create(ctx, UserDraft{
		NationalID:   "1804567890",
		FirstName:    "Luis",
		LastName:     "Mora",
		Email:        "luis@uta.edu.ec",
		PasswordHash: "digest",
		Roles:        []models.Role{models.RoleTeacher},
	})
	require.NoError(t, err)

	created, err := repo.Create(ctx, AssignmentDraft{TeacherID: teacher.ID, SubjectID: "calc", SemesterID: "sem1", CareerID: "sys"})
	require.NoError(t, err)
	require.NoError(t, repo.SetActive(ctx, created.ID, false))

	teachers, err := repo.TeachersForSubjectSemester(ctx, "calc", "sem1", "sys")
	require.NoError(t, err)
	assert.Empty(t, teachers)
}
