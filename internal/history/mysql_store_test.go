package history

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpr/internal/domain"
)

const (
	insertSession = "INSERT INTO cpr_sessions"
	insertRun     = "INSERT INTO cpr_runs"
)

func newMockStore(t *testing.T) (*MySQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMySQLStore(db), mock
}

func sessionMeta() domain.TestResultsMeta {
	return domain.TestResultsMeta{
		RunID:           "6f1c7b9e-0000-4000-8000-000000000001",
		Executable:      "./unit_tests",
		Filter:          "[math]",
		TotalRuns:       2,
		PassedRuns:      1,
		FailedRuns:      1,
		Jobs:            4,
		Repeat:          1,
		DurationSeconds: 1.5,
		Timestamp:       "2026-01-02T03:04:05Z",
	}
}

func sessionRuns() []domain.RunRecord {
	return []domain.RunRecord{
		{
			Occurrence: domain.Occurrence{Case: domain.TestCase{Name: "adds", Tags: "[math]"}, Index: 0},
			ExitCode:   0,
			Passed:     true,
			Duration:   0.125,
		},
		{
			Occurrence: domain.Occurrence{Case: domain.TestCase{Name: "divides", Tags: "[math]"}, Index: 1},
			ExitCode:   1,
			Passed:     false,
			Duration:   domain.NoDuration,
		},
	}
}

func TestMySQLStore_EnsureSchema(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS cpr_sessions")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS cpr_runs")).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStore_EnsureSchemaError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS cpr_sessions")).WillReturnError(errors.New("access denied"))

	err := store.EnsureSchema(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStore_RecordSession(t *testing.T) {
	store, mock := newMockStore(t)
	meta := sessionMeta()

	mock.ExpectBegin()
	mock.ExpectExec(insertSession).
		WithArgs(meta.RunID, "./unit_tests", "[math]", 2, 1, 1, 4, 1, 1.5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	prep := mock.ExpectPrepare(insertRun)
	prep.ExpectExec().
		WithArgs(meta.RunID, 0, "adds", "[math]", 0, true, 0.125).
		WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().
		WithArgs(meta.RunID, 1, "divides", "[math]", 1, false, nil).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, store.RecordSession(context.Background(), meta, sessionRuns()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStore_RecordSessionRollsBackOnRunError(t *testing.T) {
	store, mock := newMockStore(t)
	meta := sessionMeta()

	mock.ExpectBegin()
	mock.ExpectExec(insertSession).WillReturnResult(sqlmock.NewResult(1, 1))
	prep := mock.ExpectPrepare(insertRun)
	prep.ExpectExec().
		WithArgs(meta.RunID, 0, "adds", "[math]", 0, true, 0.125).
		WillReturnError(errors.New("duplicate entry"))
	mock.ExpectRollback()

	err := store.RecordSession(context.Background(), meta, sessionRuns())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert run 0")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStore_RecordSessionRollsBackOnSessionError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertSession).WillReturnError(errors.New("table missing"))
	mock.ExpectRollback()

	err := store.RecordSession(context.Background(), sessionMeta(), sessionRuns())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert session")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStore_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	require.NoError(t, NewMySQLStore(db).Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
