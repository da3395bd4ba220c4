package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/lovelab/internal/client/migrations"
	"github.com/dmitrijs2005/lovelab/internal/client/repositories/confessions"
	"github.com/dmitrijs2005/lovelab/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/lovelab/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	Prefs       prefs.Repository
	Confessions confessions.Repository
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Prefs:       prefs.NewSQLiteRepository(db),
		Confessions: confessions.NewSQLiteRepository(db),
	}
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local SQLite file at dsn and
// brings its schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	path, err := filex.EnsureParentDir(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection keeps :memory: databases coherent and serializes writers
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
