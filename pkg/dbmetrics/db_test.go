package dbmetrics

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedQuery struct {
	operation string
	err       error
}

type fakeRecorder struct {
	mu      sync.Mutex
	queries []recordedQuery
	stats   []sql.DBStats
}

func (r *fakeRecorder) ObserveDBQuery(operation string, err error, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, recordedQuery{operation: operation, err: err})
}

func (r *fakeRecorder) SetDBPoolStats(stats sql.DBStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = append(r.stats, stats)
}

func TestDB_RecordsOperations(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	rec := &fakeRecorder{}
	db := Wrap(sqlDB, rec)

	mock.ExpectExec("UPDATE appointments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM appointments").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	ctx := context.Background()
	_, err = db.ExecContext(ctx, "UPDATE appointments SET status = $1", "cancelled")
	require.NoError(t, err)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	var id int64
	require.NoError(t, tx.QueryRowContext(ctx, "SELECT id FROM appointments").Scan(&id))
	require.NoError(t, tx.Commit())

	require.NoError(t, mock.ExpectationsWereMet())
	require.Len(t, rec.queries, 3)
	assert.Equal(t, "update", rec.queries[0].operation)
	assert.Equal(t, "select", rec.queries[1].operation)
	assert.Equal(t, "commit", rec.queries[2].operation)
}

func TestDB_NilRecorder(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, nil)
	mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = db.ExecContext(context.Background(), "DELETE FROM appointments")
	assert.NoError(t, err)
	assert.Same(t, sqlDB, db.Unwrap())
}

func TestGetExecutor(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := sqlDB.Begin()
	require.NoError(t, err)

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Equal(t, DBExecutor(sqlDB), GetExecutor(ctx, sqlDB))

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, DBExecutor(tx), GetExecutor(txCtx, sqlDB))

	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("  SELECT pg_advisory_xact_lock(hashtext($1))"))
	assert.Equal(t, "insert", operation("INSERT INTO appointments"))
	assert.Equal(t, "unknown", operation(""))
}
