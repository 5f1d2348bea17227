package dbx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "any constraint", err: dup, want: true},
		{name: "named constraint", err: dup, constraint: "users_email_key", want: true},
		{name: "other constraint", err: dup, constraint: "users_pkey", want: false},
		{name: "wrapped", err: fmt.Errorf("db error: %w", dup), constraint: "users_email_key", want: true},
		{name: "other sqlstate", err: &pgconn.PgError{Code: "23503"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}
