package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockMedium(t *testing.T) (*PostgresMedium, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresMedium(sqlx.NewDb(db, "sqlmock")), mock
}

func TestPostgresMediumReadAbsentKey(t *testing.T) {
	medium, mock := newMockMedium(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc FROM collections WHERE key = $1 LIMIT 1`)).
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	data, err := medium.Read(context.Background(), "users")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMediumReadReturnsDocument(t *testing.T) {
	medium, mock := newMockMedium(t)

	doc := []byte(`{"version":1,"records":[]}`)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc FROM collections WHERE key = $1 LIMIT 1`)).
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow(doc))

	data, err := medium.Read(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, doc, data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMediumWriteUpserts(t *testing.T) {
	medium, mock := newMockMedium(t)

	doc := []byte(`{"version":1,"records":[]}`)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO collections (key, doc, updated_at) VALUES ($1, $2, $3) ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`)).
		WithArgs("users", doc, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, medium.Write(context.Background(), "users", doc))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMediumEnsureSchema(t *testing.T) {
	medium, mock := newMockMedium(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS collections").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, medium.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
