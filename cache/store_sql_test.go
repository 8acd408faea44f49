package cache

import (
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"neuralife-notes/neuralife/testutils"
)

// SQL-expectation tests for behavior the in-memory database cannot
// simulate: transient driver failures and the exact statements issued.

func TestMarkNoteSyncedIssuesSingleUpdate(t *testing.T) {
	db, mock, cleanup := testutils.SetupMockDB()
	defer cleanup()
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "notes" SET "synced"=\$1 WHERE id = \$2`).
		WithArgs(true, "srv-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, store.MarkNoteSynced("srv-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkNoteSyncedZeroRows(t *testing.T) {
	db, mock, cleanup := testutils.SetupMockDB()
	defer cleanup()
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "notes"`).
		WithArgs(true, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.ErrorIs(t, store.MarkNoteSynced("missing"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteRetriesOnceOnTransientFailure(t *testing.T) {
	db, mock, cleanup := testutils.SetupMockDB()
	defer cleanup()
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "notes"`).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "notes"`).
		WithArgs("srv-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, store.DeleteNote("srv-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteSurfacesStorageErrorAfterRetry(t *testing.T) {
	db, mock, cleanup := testutils.SetupMockDB()
	defer cleanup()
	store := NewStore(db)

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "notes"`).
			WillReturnError(errors.New("disk I/O error"))
		mock.ExpectRollback()
	}

	assert.ErrorIs(t, store.DeleteNote("srv-1"), ErrStorage)
	assert.NoError(t, mock.ExpectationsWereMet())
}
