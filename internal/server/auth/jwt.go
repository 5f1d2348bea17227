// Package auth issues and verifies the JWT access and refresh tokens and
// hashes user passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/alumniauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload. Both token kinds carry the same claims and
// differ only in signing secret and lifetime.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

var signingMethod = jwt.SigningMethodHS256

// IssuerConfig carries the immutable settings of an Issuer.
type IssuerConfig struct {
	AccessSecret    []byte
	RefreshSecret   []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Issuer creates and validates access and refresh tokens.
type Issuer struct {
	accessSecret    []byte
	refreshSecret   []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	now             func() time.Time
}

// IssuerOption customizes an Issuer.
type IssuerOption func(*Issuer)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.now = now
	}
}

// NewIssuer validates cfg and returns an Issuer. The two secrets must be
// non-empty and different.
func NewIssuer(cfg IssuerConfig, opts ...IssuerOption) (*Issuer, error) {
	switch {
	case len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0:
		return nil, errors.New("token secrets must not be empty")
	case string(cfg.AccessSecret) == string(cfg.RefreshSecret):
		return nil, errors.New("access and refresh token secrets must differ")
	case cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0:
		return nil, errors.New("token lifetimes must be positive")
	}

	i := &Issuer{
		accessSecret:    cfg.AccessSecret,
		refreshSecret:   cfg.RefreshSecret,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// IssueAccess signs a short-lived access token for userID.
func (i *Issuer) IssueAccess(userID int64) (string, error) {
	return GenerateToken(userID, i.accessSecret, i.now(), i.accessTokenTTL)
}

// IssueRefresh signs a long-lived refresh token for userID.
func (i *Issuer) IssueRefresh(userID int64) (string, error) {
	return GenerateToken(userID, i.refreshSecret, i.now(), i.refreshTokenTTL)
}

// VerifyAccess checks a token against the access secret.
func (i *Issuer) VerifyAccess(token string) (*Claims, error) {
	return Verify(token, i.accessSecret, i.now())
}

// VerifyRefresh checks a token against the refresh secret.
func (i *Issuer) VerifyRefresh(token string) (*Claims, error) {
	return Verify(token, i.refreshSecret, i.now())
}

// GenerateToken signs {user_id, iat: issuedAt, exp: issuedAt+ttl} with secret.
// issuedAt is truncated to whole seconds first, so exp-iat is exactly ttl.
func GenerateToken(userID int64, secret []byte, issuedAt time.Time, ttl time.Duration) (string, error) {
	issuedAt = issuedAt.Truncate(time.Second)
	token := jwt.NewWithClaims(signingMethod, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		UserID: userID,
	})

	s, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Verify parses token and checks its signature against secret and its expiry
// against now. It returns common.ErrTokenExpired when now >= exp and the
// signature is good, and common.ErrInvalidToken for everything else.
func Verify(token string, secret []byte, now time.Time) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !parsed.Valid || claims.UserID <= 0 {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
