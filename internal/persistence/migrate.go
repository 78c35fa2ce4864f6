package persistence

import (
	"context"
	"database/sql"

	"github.com/paypost/go-paypost/migrations"
	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	dialect        = "postgres"
	migrationTable = "migrations"
)

// Source returns the embedded migration set.
func Source() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations.FS,
		Root:       ".",
	}
}

// Migrate applies all pending up migrations and returns how many ran.
func Migrate(ctx context.Context, db *sql.DB) (int, error) {
	migrate.SetTable(migrationTable)

	n, err := migrate.ExecContext(ctx, db, dialect, Source(), migrate.Up)
	if err != nil {
		return n, errors.Wrap(err, "failed to apply migrations")
	}

	return n, nil
}

// Pending lists migrations that have not been applied yet.
func Pending(db *sql.DB) ([]string, error) {
	migrate.SetTable(migrationTable)

	planned, _, err := migrate.PlanMigration(db, dialect, Source(), migrate.Up, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to plan migrations")
	}

	ids := make([]string, 0, len(planned))
	for _, m := range planned {
		ids = append(ids, m.Id)
	}

	return ids, nil
}
