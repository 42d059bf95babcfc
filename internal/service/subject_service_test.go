package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/repository"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
)

type subjectNotifierStub struct {
	direct []struct {
		UserID string
		Kind   models.NotificationType
	}
	roleCalls []models.Role
}

func (s *subjectNotifierStub) Notify(_ context.Context, userID, _ string, kind models.NotificationType, _ string) error {
	s.direct = append(s.direct, struct {
		UserID string
		Kind   models.NotificationType
	}{userID, kind})
	return nil
}

func (s *subjectNotifierStub) NotifyRole(_ context.Context, role models.Role, _ string, _ models.NotificationType) (int, error) {
	s.roleCalls = append(s.roleCalls, role)
	return 1, nil
}

func TestSubjectAdminCreateIsApprovedImmediately(t *testing.T) {
	ctx := context.Background()
	stub := &subjectNotifierStub{}
	svc := NewSubjectService(repository.NewSubjectRepository(newServiceStore(t)), stub, nil, nil)

	subject, err := svc.Create(ctx, models.CreateSubjectRequest{
		Code:       "SE01",
		Name:       "Software Design",
		CareerID:   "career-1",
		SemesterID: "sem-1",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, models.SubjectApproved, subject.State)
	assert.True(t, subject.Active)
	assert.Empty(t, stub.roleCalls)
}

func TestSubjectProposalReviewLifecycle(t *testing.T) {
	ctx := context.Background()
	stub := &subjectNotifierStub{}
	svc := NewSubjectService(repository.NewSubjectRepository(newServiceStore(t)), stub, nil, nil)

	proposed, err := svc.Create(ctx, models.CreateSubjectRequest{
		Code:       "SE02",
		Name:       "Compilers",
		CareerID:   "career-1",
		SemesterID: "sem-1",
	}, "coordinator-1")
	require.NoError(t, err)
	assert.Equal(t, models.SubjectPending, proposed.State)
	assert.False(t, proposed.Active)

	// Admins are alerted about the proposal.
	require.Len(t, stub.roleCalls, 1)
	assert.Equal(t, models.RoleAdmin, stub.roleCalls[0])

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := svc.Review(ctx, proposed.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.SubjectApproved, approved.State)
	assert.True(t, approved.Active)

	// The proposing coordinator hears about the decision.
	require.Len(t, stub.direct, 1)
	assert.Equal(t, "coordinator-1", stub.direct[0].UserID)

	pending, err = svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSubjectRejectionForcesInactive(t *testing.T) {
	ctx := context.Background()
	stub := &subjectNotifierStub{}
	svc := NewSubjectService(repository.NewSubjectRepository(newServiceStore(t)), stub, nil, nil)

	proposed, err := svc.Create(ctx, models.CreateSubjectRequest{
		Code:       "SE03",
		Name:       "Networks",
		CareerID:   "career-1",
		SemesterID: "sem-1",
	}, "coordinator-1")
	require.NoError(t, err)

	rejected, err := svc.Review(ctx, proposed.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.SubjectRejected, rejected.State)
	assert.False(t, rejected.Active)
}

func TestSubjectCodeIsUniqueAcrossCareers(t *testing.T) {
	ctx := context.Background()
	svc := NewSubjectService(repository.NewSubjectRepository(newServiceStore(t)), &subjectNotifierStub{}, nil, nil)

	_, err := svc.Create(ctx, models.CreateSubjectRequest{
		Code:       "SE01",
		Name:       "Software Design",
		CareerID:   "career-1",
		SemesterID: "sem-1",
	}, "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, models.CreateSubjectRequest{
		Code:       "se01",
		Name:       "Another Course",
		CareerID:   "career-2",
		SemesterID: "sem-1",
	}, "")
	require.Error(t, err)
	assert.True(t, appErrors.IsDuplicate(err))
}
