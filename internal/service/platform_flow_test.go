package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/repository"
	"github.com/uta-tic/tutoring-api/pkg/secure"
)

// TestPlatformFlow walks the whole happy path over real repositories: the
// catalog is set up, a student registers, requests a session from an assigned
// teacher, the teacher accepts, the student rates, and the rating surfaces in
// the teacher leaderboard.
func TestPlatformFlow(t *testing.T) {
	ctx := context.Background()
	st := newServiceStore(t)

	users := repository.NewUserRepository(st)
	sessions := repository.NewSessionRepository(st)
	careers := repository.NewCareerRepository(st)
	semesters := repository.NewSemesterRepository(st)
	subjects := repository.NewSubjectRepository(st)
	assignments := repository.NewAssignmentRepository(st)
	requests := repository.NewTutoringRepository(st)
	messages := repository.NewMessageRepository(st)
	notifications := repository.NewNotificationRepository(st)

	hasher := secure.NewHasher("flow-secret", bcrypt.MinCost)
	notificationSvc := NewNotificationService(notifications, users, nil)
	userSvc := NewUserService(users, notificationSvc, hasher, nil, nil)
	authSvc := NewAuthService(users, sessions, hasher, nil, nil, AuthConfig{
		TokenSecret: "token-secret",
		TokenExpiry: time.Hour,
		Issuer:      "test",
	})
	careerSvc := NewCareerService(careers, nil, nil)
	semesterSvc := NewSemesterService(semesters, nil, nil)
	subjectSvc := NewSubjectService(subjects, notificationSvc, nil, nil)
	assignmentSvc := NewAssignmentService(assignments, users, nil, nil)
	tutoringSvc := NewTutoringService(requests, messages, notificationSvc, nil, nil)
	statsSvc := NewStatsService(users, requests, nil, time.Second, nil)

	// Catalog setup.
	career, err := careerSvc.Create(ctx, models.CreateCareerRequest{Name: "Software", Code: "SW"})
	require.NoError(t, err)
	semester, err := semesterSvc.Ensure(ctx, "Tercer Semestre", 3)
	require.NoError(t, err)
	subject, err := subjectSvc.Create(ctx, models.CreateSubjectRequest{
		Code:       "SW-301",
		Name:       "Data Structures",
		CareerID:   career.ID,
		SemesterID: semester.ID,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, models.SubjectApproved, subject.State)

	teacher, err := userSvc.CreateUser(ctx, models.CreateUserRequest{
		NationalID: "1804567890",
		FirstName:  "Luis",
		LastName:   "Mora",
		Email:      "luis@uta.edu.ec",
		Roles:      []models.Role{models.RoleTeacher},
	})
	require.NoError(t, err)

	_, err = assignmentSvc.Create(ctx, models.CreateAssignmentRequest{
		TeacherID:  teacher.ID,
		SubjectID:  subject.ID,
		SemesterID: semester.ID,
		CareerID:   career.ID,
	})
	require.NoError(t, err)

	// Student self-registers and logs in.
	student, err := userSvc.RegisterStudent(ctx, models.RegisterStudentRequest{
		NationalID: "0504567890",
		FirstName:  "Ana",
		LastName:   "Lopez",
		Email:      "ana@uta.edu.ec",
		Password:   "secret1",
		Career:     "Software",
		Semester:   "Tercer Semestre",
	})
	require.NoError(t, err)

	login, err := authSvc.Login(ctx, models.LoginRequest{Email: "ana@uta.edu.ec", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, login.AccessToken)
	claims, err := authSvc.ValidateToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, claims.ActiveRole)

	// The assignment makes the teacher visible for the subject and semester.
	available, err := assignmentSvc.AvailableTeachers(ctx, subject.ID, semester.ID, career.ID)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, teacher.ID, available[0].ID)

	// Session lifecycle: request, accept, rate.
	request, err := tutoringSvc.Create(ctx, student.ID, models.CreateTutoringRequestPayload{
		TeacherID:  teacher.ID,
		SubjectID:  subject.ID,
		SemesterID: semester.ID,
		Topic:      "Balanced trees",
		Date:       futureDate(3),
		Time:       "11:00",
	})
	require.NoError(t, err)

	unread, err := notificationSvc.UnreadCount(ctx, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	_, err = tutoringSvc.Accept(ctx, request.ID, teacher.ID)
	require.NoError(t, err)
	rated, err := tutoringSvc.Rate(ctx, request.ID, student.ID, models.RateRequest{Rating: 5, Comment: "Very clear"})
	require.NoError(t, err)
	assert.Equal(t, models.RequestFinalized, rated.Status)

	// The finalized rating surfaces in the aggregates.
	ratings, err := statsSvc.TeacherRatings(ctx)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, teacher.ID, ratings[0].TeacherID)
	assert.Equal(t, "Luis Mora", ratings[0].TeacherName)
	assert.Equal(t, 1, ratings[0].RatedCount)
	assert.Equal(t, 5.0, ratings[0].AverageScore)

	metrics, err := statsSvc.TutoringMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.Total)
	assert.Equal(t, 1, metrics.ByStatus[models.RequestFinalized])
	assert.Equal(t, 1, metrics.Rated)
}
