package sections

import (
	"embed"
	"io/fs"
)

//go:embed data/sql/migrations
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded SQL migrations. Files are grouped by
// dialect under data/sql/migrations/{sqlite,postgres}.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// DialectMigrations returns the migrations of one dialect rooted at its
// directory.
func DialectMigrations(dialect string) (fs.FS, error) {
	return fs.Sub(migrationsFS, "data/sql/migrations/"+dialect)
}
