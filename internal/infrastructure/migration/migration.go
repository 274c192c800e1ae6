package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Migration is one idempotent schema change.
type Migration struct {
	Name string
	SQL  string
}

// Migrations lists every schema change in the order it is applied.
var Migrations = []Migration{
	{
		Name: "create_generated_resumes",
		SQL: `CREATE TABLE IF NOT EXISTS generated_resumes (
			id UUID PRIMARY KEY,
			session_id UUID,
			style TEXT NOT NULL,
			file_name TEXT NOT NULL,
			file_path TEXT NOT NULL,
			file_size INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		Name: "index_generated_resumes_session",
		SQL:  `CREATE INDEX IF NOT EXISTS generated_resumes_session_idx ON generated_resumes (session_id, created_at DESC)`,
	},
}

// RunMigrations applies Migrations on startup.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	log.Info().Msg("starting database migrations")

	for _, m := range Migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			log.Error().Err(err).Str("name", m.Name).Msg("migration failed")
			return errors.Wrapf(err, "migration %s", m.Name)
		}
		log.Info().Str("name", m.Name).Msg("migration completed")
	}

	log.Info().Msg("all migrations completed")
	return nil
}
