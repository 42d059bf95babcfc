package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/repository"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
	"github.com/uta-tic/tutoring-api/pkg/storage"
)

func newDocumentFixture(t *testing.T) *DocumentService {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewDocumentService(repository.NewDocumentRepository(newServiceStore(t)), files, nil, 0, nil)
}

func uploadDocument(t *testing.T, svc *DocumentService, career, name string) *models.Document {
	t.Helper()
	admin := models.JWTClaims{UserID: "admin-1", ActiveRole: models.RoleAdmin}
	document, err := svc.Upload(context.Background(), admin, career, name, "", "guide.pdf", 16, strings.NewReader("%PDF-1.4 content"))
	require.NoError(t, err)
	return document
}

func TestDocumentUploadRejectsNonPDF(t *testing.T) {
	svc := newDocumentFixture(t)
	admin := models.JWTClaims{UserID: "admin-1", ActiveRole: models.RoleAdmin}

	_, err := svc.Upload(context.Background(), admin, "Sistemas", "Notes", "", "notes.docx", 16, strings.NewReader("payload"))
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestDocumentStudentReadsAreCareerScoped(t *testing.T) {
	ctx := context.Background()
	svc := newDocumentFixture(t)
	document := uploadDocument(t, svc, "Sistemas", "Enrollment Guide")

	ownCareer := models.JWTClaims{UserID: "student-1", ActiveRole: models.RoleStudent}
	got, err := svc.Get(ctx, document.ID, ownCareer, "sistemas")
	require.NoError(t, err)
	assert.Equal(t, document.ID, got.ID)

	intruder := models.JWTClaims{UserID: "student-2", ActiveRole: models.RoleStudent}
	_, err = svc.Get(ctx, document.ID, intruder, "Civil")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	_, _, err = svc.Open(ctx, document.ID, intruder, "Civil")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestDocumentStudentListIgnoresCareerFilter(t *testing.T) {
	ctx := context.Background()
	svc := newDocumentFixture(t)
	uploadDocument(t, svc, "Sistemas", "Enrollment Guide")
	uploadDocument(t, svc, "Civil", "Structures Handbook")

	student := models.JWTClaims{UserID: "student-1", ActiveRole: models.RoleStudent}
	visible, err := svc.List(ctx, student, "Civil", "Sistemas")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Structures Handbook", visible[0].Name)

	admin := models.JWTClaims{UserID: "admin-1", ActiveRole: models.RoleAdmin}
	all, err := svc.List(ctx, admin, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.List(ctx, admin, "", "Sistemas")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Enrollment Guide", filtered[0].Name)
}
