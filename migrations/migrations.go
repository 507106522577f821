// Package migrations embeds the audit trail schema for every supported database.
package migrations

import (
	"embed"
	"io/fs"

	"github.com/allisson/redactor/internal/database"
)

//go:embed mysql/*.sql postgresql/*.sql
var files embed.FS

// For returns the migration files of driver, one of the database.Driver* names.
func For(driver string) (fs.FS, bool) {
	var dir string
	switch driver {
	case database.DriverMySQL:
		dir = "mysql"
	case database.DriverPostgres:
		dir = "postgresql"
	default:
		return nil, false
	}
	sub, err := fs.Sub(files, dir)
	if err != nil {
		return nil, false
	}
	return sub, true
}
