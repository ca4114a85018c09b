package data

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"eduresource-api/pkg/database"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate creates any missing tables and indexes for the dialect.
// Every statement is idempotent, so it is safe to run on each start.
func Migrate(ctx context.Context, db *sqlx.DB, dialect database.Dialect) error {
	file := "migrations/postgres.sql"
	if _, ok := dialect.(database.SQLiteDialect); ok {
		file = "migrations/sqlite.sql"
	}

	ddl, err := migrations.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	statements := splitStatements(string(ddl))
	err = database.WithTransaction(ctx, db, func(tx *sqlx.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("apply %q: %w", firstLine(stmt), err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("file", file).Int("statements", len(statements)).Msg("[DATABASE] Schema up to date")
	return nil
}

func splitStatements(ddl string) []string {
	var out []string
	for _, stmt := range strings.Split(ddl, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
