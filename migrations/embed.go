// Package migrations embeds the SQL migration files into the binary.
//
// Importing this package (typically with a blank import from main) wires the
// embedded filesystem into the database package's migration runner.
package migrations

import (
	"embed"

	"github.com/umuthan/devreg/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
