package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/alumniauth/internal/dbx"
	"github.com/dmitrijs2005/alumniauth/internal/server/repositories/status"
	"github.com/dmitrijs2005/alumniauth/internal/server/repositories/users"
)

// InMemoryRepositoryManager ignores the DBTX it is handed and always returns
// the same process-local repositories.
type InMemoryRepositoryManager struct {
	users  *users.InMemoryRepository
	status *status.ClockRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:  users.NewInMemoryRepository(),
		status: status.NewClockRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Status(dbx.DBTX) status.Repository {
	return m.status
}
