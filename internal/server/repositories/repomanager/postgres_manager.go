// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lovelab/internal/dbx"
	"github.com/dmitrijs2005/lovelab/internal/server/migrations"
	"github.com/dmitrijs2005/lovelab/internal/server/repositories/confessions"
	"github.com/dmitrijs2005/lovelab/internal/server/repositories/practice"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Confessions returns a confessions.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Confessions(db dbx.DBTX) confessions.Repository {
	return confessions.NewPostgresRepository(db)
}

// Practice returns a practice.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Practice(db dbx.DBTX) practice.Repository {
	return practice.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations, including the trigger that
// feeds the confessions_changed notification channel.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
