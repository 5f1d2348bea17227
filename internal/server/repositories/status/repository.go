// Package status answers the database liveness check.
package status

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/alumniauth/internal/dbx"
)

// Repository reports the current time as seen by the store.
type Repository interface {
	Now(ctx context.Context) (time.Time, error)
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := r.db.QueryRowContext(ctx, `SELECT NOW()`).Scan(&now); err != nil {
		return time.Time{}, fmt.Errorf("db error: %w", err)
	}
	return now, nil
}

// ClockRepository backs the in-memory store, which has no server clock.
type ClockRepository struct {
	now func() time.Time
}

func NewClockRepository() *ClockRepository {
	return &ClockRepository{now: time.Now}
}

func (r *ClockRepository) Now(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	return r.now(), nil
}
