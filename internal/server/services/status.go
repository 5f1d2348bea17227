package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/alumniauth/internal/common"
	"github.com/dmitrijs2005/alumniauth/internal/server/repositories/repomanager"
)

// StatusService answers the database connectivity check.
type StatusService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStatusService(db *sql.DB, m repomanager.RepositoryManager) *StatusService {
	return &StatusService{db: db, repomanager: m}
}

// DatabaseTime returns the store's current time, proving it is reachable.
func (s *StatusService) DatabaseTime(ctx context.Context) (time.Time, error) {
	now, err := s.repomanager.Status(s.db).Now(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("services.DatabaseTime: %w: %v", common.ErrorInternal, err)
	}
	return now, nil
}
