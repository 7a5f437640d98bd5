package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a specific handle (pool,
// connection or transaction) and owns the schema.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Jobs(db dbx.DBTX) jobs.Repository
}
