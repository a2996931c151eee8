// Package repomanager opens the vault database, applies the embedded goose
// migrations and vends repositories bound to a DBTX (the *sql.DB itself or a
// transaction).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/filex"
	"github.com/dmitrijs2005/passvault/internal/migrations"
	"github.com/dmitrijs2005/passvault/internal/repositories/records"
	"github.com/dmitrijs2005/passvault/internal/repositories/vaultconfig"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	VaultConfig(db dbx.DBTX) vaultconfig.Repository
	Records(db dbx.DBTX) records.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}

// SQLRepositoryManager serves both dialects; only placeholders and
// migrations differ between them.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func NewSQLRepositoryManager(dialect dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

func (m *SQLRepositoryManager) VaultConfig(db dbx.DBTX) vaultconfig.Repository {
	return vaultconfig.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Records(db dbx.DBTX) records.Repository {
	return records.NewSQLRepository(db, m.dialect)
}

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	fsys, err := migrations.For(m.dialect)
	if err != nil {
		return err
	}

	dialect := goose.DialectSQLite3
	if m.dialect == dbx.DialectPostgres {
		dialect = goose.DialectPostgres
	}

	if err := gooseUp(ctx, dialect, db, fsys); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// Open connects to the configured database, migrates it and returns the
// handle with a manager for its dialect.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, *SQLRepositoryManager, error) {
	dialect, err := dbx.ParseDialect(driver)
	if err != nil {
		return nil, nil, err
	}

	if dialect == dbx.DialectSQLite && isSQLiteFile(dsn) {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, nil, err
		}
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if dialect == dbx.DialectSQLite {
		// one writer keeps SQLite away from SQLITE_BUSY and keeps
		// in-memory databases on a single connection
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	m := NewSQLRepositoryManager(dialect)
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return db, m, nil
}

func isSQLiteFile(dsn string) bool {
	if dsn == "" || dsn == ":memory:" {
		return false
	}
	if strings.HasPrefix(dsn, "file:") {
		return false
	}
	return true
}
