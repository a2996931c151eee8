// Package migrations embeds the goose SQL migrations for every supported
// dialect.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/passvault/internal/dbx"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// For returns the migration directory of the given dialect, rooted so goose
// sees the .sql files at its top level.
func For(d dbx.Dialect) (fs.FS, error) {
	switch d {
	case dbx.DialectSQLite:
		return fs.Sub(Migrations, "sqlite")
	case dbx.DialectPostgres:
		return fs.Sub(Migrations, "postgres")
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", d)
	}
}
