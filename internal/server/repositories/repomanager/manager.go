package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lovelab/internal/dbx"
	"github.com/dmitrijs2005/lovelab/internal/server/repositories/confessions"
	"github.com/dmitrijs2005/lovelab/internal/server/repositories/practice"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Confessions(db dbx.DBTX) confessions.Repository
	Practice(db dbx.DBTX) practice.Repository
}
