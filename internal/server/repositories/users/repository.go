// Package users declares the credential store contract and its PostgreSQL and
// in-memory implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/alumniauth/internal/server/models"
)

// Repository stores user accounts. Email is unique: Create returns
// common.ErrorAlreadyExists when it is taken, and lookups return
// common.ErrorNotFound for missing users.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}
