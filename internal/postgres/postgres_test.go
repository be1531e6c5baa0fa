package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	ierr "github.com/flexprice/budgetpdf/internal/errors"
	"github.com/flexprice/budgetpdf/internal/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewFromSqlx(sqlx.NewDb(conn, "postgres"), logger.NewNoop()), mock
}

func TestApplySchema(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, db.ApplySchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplySchema_RollsBack(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied for schema public"))
	mock.ExpectRollback()

	err := db.ApplySchema(context.Background())
	require.Error(t, err)
	assert.True(t, ierr.IsDatabase(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaCoversRepositoryTables(t *testing.T) {
	for _, table := range []string{"users", "clients", "budgets", "budget_items"} {
		assert.Contains(t, Schema, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}

func TestTracedQuerier(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	var n int
	require.NoError(t, db.GetQuerier(context.Background()).GetContext(context.Background(), &n, "SELECT 1"))
	assert.Equal(t, 1, n)

	mock.ExpectQuery("SELECT n").WillReturnError(errors.New("boom"))
	var rows []int
	assert.Error(t, db.GetQuerier(context.Background()).SelectContext(context.Background(), &rows, "SELECT n FROM t"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
