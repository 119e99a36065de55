// Package migrations embeds the entity store's SQL migrations into the binary.
package migrations

import (
	"embed"

	"github.com/nerrad567/gray-logic-components/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
