package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/alumniauth/internal/common"
	"github.com/dmitrijs2005/alumniauth/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseTime_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT NOW()`)).
		WillReturnRows(sqlmock.NewRows([]string{"now"}).AddRow(want))

	svc := NewStatusService(db, repomanager.NewPostgresRepositoryManager())
	got, err := svc.DatabaseTime(context.Background())
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseTime_Failure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT NOW()`)).WillReturnError(assert.AnError)

	svc := NewStatusService(db, repomanager.NewPostgresRepositoryManager())
	_, err = svc.DatabaseTime(context.Background())
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestDatabaseTime_InMemory(t *testing.T) {
	svc := NewStatusService(nil, repomanager.NewInMemoryRepositoryManager())
	got, err := svc.DatabaseTime(context.Background())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), got, time.Minute)
}
