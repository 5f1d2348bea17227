// Package services contains server-side business logic. UserService handles
// signup, login, access token refresh and profile lookup.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/alumniauth/internal/common"
	"github.com/dmitrijs2005/alumniauth/internal/server/auth"
	"github.com/dmitrijs2005/alumniauth/internal/server/models"
	"github.com/dmitrijs2005/alumniauth/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hash string) (bool, error)
}

// TokenIssuer mints and verifies access and refresh tokens.
type TokenIssuer interface {
	IssueAccess(userID int64) (string, error)
	IssueRefresh(userID int64) (string, error)
	VerifyRefresh(token string) (*auth.Claims, error)
}

// UserService provides authentication-related operations.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	dummyHash   string
}

// NewUserService constructs a UserService. db may be nil for managers that
// do not use it.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, h PasswordHasher, t TokenIssuer) (*UserService, error) {
	// Unknown emails are compared against this hash so a failed login costs
	// the same whether or not the account exists.
	pw, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("generate dummy password: %w", err)
	}
	dummy, err := h.Hash(pw)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}

	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      h,
		tokens:      t,
		dummyHash:   dummy,
	}, nil
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates a user and returns an access token for it. It returns
// common.ErrorAlreadyExists when the email is taken. No refresh token is
// issued here; clients get one by logging in.
func (s *UserService) Signup(ctx context.Context, fullName, email, password string) (string, error) {
	const op = "services.Signup"

	if len(password) > auth.MaxPasswordBytes {
		return "", fmt.Errorf("%w: password must be at most %d bytes", common.ErrorValidation, auth.MaxPasswordBytes)
	}

	repo := s.repomanager.Users(s.db)
	email = NormalizeEmail(email)

	// Advisory only: the store's unique index is what actually guarantees
	// uniqueness under concurrent signups.
	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return "", common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return "", fmt.Errorf("%s: %w: %v", op, common.ErrorInternal, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, common.ErrorInternal, err)
	}

	user, err := repo.Create(ctx, &models.User{
		FullName:     strings.TrimSpace(fullName),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorAlreadyExists
		}
		return "", fmt.Errorf("%s: %w: %v", op, common.ErrorInternal, err)
	}

	token, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, common.ErrorInternal, err)
	}

	return token, nil
}

// Login checks the credentials and returns a fresh token pair. An unknown
// email, a wrong password and a password longer than bcrypt can check all
// yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	const op = "services.Login"

	if len(password) > auth.MaxPasswordBytes {
		_, _ = s.hasher.Compare(password[:auth.MaxPasswordBytes], s.dummyHash)
		return nil, common.ErrInvalidCredentials
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = s.hasher.Compare(password, s.dummyHash)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w: %v", op, common.ErrorInternal, err)
	}

	ok, err := s.hasher.Compare(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, common.ErrorInternal, err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	return s.generateTokenPair(op, user.ID)
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated. Errors are common.ErrTokenExpired or
// common.ErrInvalidToken, exactly as returned by the issuer.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	const op = "services.Refresh"

	if refreshToken == "" {
		return "", common.ErrorUnauthorized
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.IssueAccess(claims.UserID)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, common.ErrorInternal, err)
	}

	return token, nil
}

// Profile returns the user with the given id, or common.ErrorNotFound.
func (s *UserService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	const op = "services.Profile"

	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%s: %w: %v", op, common.ErrorInternal, err)
	}

	return user, nil
}

func (s *UserService) generateTokenPair(op string, userID int64) (*TokenPair, error) {
	access, err := s.tokens.IssueAccess(userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, common.ErrorInternal, err)
	}
	refresh, err := s.tokens.IssueRefresh(userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, common.ErrorInternal, err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
