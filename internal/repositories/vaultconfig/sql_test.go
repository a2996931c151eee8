package vaultconfig

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE vault_config (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestInsertAndGet(t *testing.T) {
	r := NewSQLRepository(setupDB(t), dbx.DialectSQLite)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, "salt", "c2FsdA=="))

	v, err := r.Get(ctx, "salt")
	require.NoError(t, err)
	assert.Equal(t, "c2FsdA==", v)
}

func TestGet_Missing(t *testing.T) {
	r := NewSQLRepository(setupDB(t), dbx.DialectSQLite)

	_, err := r.Get(context.Background(), "verifier")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInsert_IsWriteOnce(t *testing.T) {
	r := NewSQLRepository(setupDB(t), dbx.DialectSQLite)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, "salt", "first"))
	err := r.Insert(ctx, "salt", "second")
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	v, err := r.Get(ctx, "salt")
	require.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestList(t *testing.T) {
	r := NewSQLRepository(setupDB(t), dbx.DialectSQLite)
	ctx := context.Background()

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)

	require.NoError(t, r.Insert(ctx, "salt", "s"))
	require.NoError(t, r.Insert(ctx, "verifier", "v"))

	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"salt": "s", "verifier": "v"}, m)
}

func TestPostgres_UsesNumberedPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewSQLRepository(db, dbx.DialectPostgres)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO vault_config (key, value) VALUES ($1, $2)`)).
		WithArgs("salt", "abc").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM vault_config WHERE key = $1`)).
		WithArgs("salt").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("abc"))

	require.NoError(t, r.Insert(context.Background(), "salt", "abc"))
	v, err := r.Get(context.Background(), "salt")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ErrorsAreWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewSQLRepository(db, dbx.DialectPostgres)
	boom := errors.New("connection refused")

	mock.ExpectQuery(`SELECT value FROM vault_config`).WillReturnError(boom)
	_, err = r.Get(context.Background(), "salt")
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, common.ErrorNotFound)

	mock.ExpectExec(`INSERT INTO vault_config`).WillReturnResult(sqlmock.NewErrorResult(boom))
	err = r.Insert(context.Background(), "salt", "x")
	require.ErrorIs(t, err, boom)

	require.NoError(t, mock.ExpectationsWereMet())
}
