package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/alumniauth/internal/dbx"
	"github.com/dmitrijs2005/alumniauth/internal/server/repositories/status"
	"github.com/dmitrijs2005/alumniauth/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX and owns schema
// migrations for its backend.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Status(db dbx.DBTX) status.Repository
}
