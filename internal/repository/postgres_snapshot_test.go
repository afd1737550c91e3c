package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnapshotMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestPostgresSnapshotRepositoryLoad(t *testing.T) {
	db, mock, cleanup := newSnapshotMock(t)
	defer cleanup()
	repo := NewPostgresSnapshotRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM collection_snapshots WHERE key = $1")).
		WithArgs(KeyQuestions).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(`[{"id":"q1"}]`)))

	payload, ok, err := repo.Load(context.Background(), KeyQuestions)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"q1"}]`, string(payload))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotRepositoryLoadAbsent(t *testing.T) {
	db, mock, cleanup := newSnapshotMock(t)
	defer cleanup()
	repo := NewPostgresSnapshotRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM collection_snapshots WHERE key = $1")).
		WithArgs(KeyParents).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	payload, ok, err := repo.Load(context.Background(), KeyParents)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, payload)
}

func TestPostgresSnapshotRepositorySave(t *testing.T) {
	db, mock, cleanup := newSnapshotMock(t)
	defer cleanup()
	repo := NewPostgresSnapshotRepository(db)

	mock.ExpectExec("INSERT INTO collection_snapshots").
		WithArgs(KeySubmissions, []byte(`[]`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), KeySubmissions, []byte(`[]`))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotRepositoryEnsureSchema(t *testing.T) {
	db, mock, cleanup := newSnapshotMock(t)
	defer cleanup()
	repo := NewPostgresSnapshotRepository(db)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS collection_snapshots").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
