package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/alumniauth/internal/common"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/singleflight"
)

// Profile is the public part of a user account.
type Profile struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// DBStatus is the answer of the database check.
type DBStatus struct {
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

type credentials struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPClient is safe for concurrent use.
type HTTPClient struct {
	serverURL string
	authURL   string
	timeout   time.Duration

	mu           sync.Mutex
	accessToken  string
	refreshToken string

	// refreshes collapses concurrent refreshes of the same expired session.
	refreshes singleflight.Group
}

// NewHTTPClient returns a client for the API at serverURL whose auth routes
// live under routePrefix.
func NewHTTPClient(serverURL, routePrefix string, timeout time.Duration) *HTTPClient {
	serverURL = strings.TrimRight(serverURL, "/")
	return &HTTPClient{
		serverURL: serverURL,
		authURL:   serverURL + strings.TrimRight(routePrefix, "/"),
		timeout:   timeout,
	}
}

// LoggedIn reports whether the client holds an access token.
func (c *HTTPClient) LoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken != ""
}

// Logout forgets both tokens. Tokens are stateless, so there is nothing to
// tell the server.
func (c *HTTPClient) Logout() {
	c.setTokens("", "")
}

func (c *HTTPClient) tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *HTTPClient) setTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
}

// Signup creates an account. The server only returns an access token, so
// the session cannot be refreshed until the user logs in.
func (c *HTTPClient) Signup(ctx context.Context, fullName, email, password string) error {
	var resp tokenResponse
	a := fiber.Post(c.authURL + "/signup").JSON(credentials{FullName: fullName, Email: email, Password: password})
	if err := c.do(ctx, a, &resp); err != nil {
		return err
	}
	c.setTokens(resp.Token, "")
	return nil
}

// Login authenticates and keeps the returned token pair.
func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	var resp tokenResponse
	a := fiber.Post(c.authURL + "/login").JSON(credentials{Email: email, Password: password})
	if err := c.do(ctx, a, &resp); err != nil {
		return err
	}
	c.setTokens(resp.Token, resp.RefreshToken)
	return nil
}

// Refresh swaps the refresh token for a new access token. A rejected refresh
// token ends the session and yields ErrSessionExpired.
func (c *HTTPClient) Refresh(ctx context.Context) error {
	_, refresh := c.tokens()
	if refresh == "" {
		return ErrUnauthorized
	}

	var resp tokenResponse
	a := fiber.Post(c.authURL+"/refresh-token").Set(common.RefreshTokenHeaderName, refresh)
	if err := c.do(ctx, a, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			c.Logout()
			return fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}
		return err
	}

	c.mu.Lock()
	c.accessToken = resp.Token
	c.mu.Unlock()
	return nil
}

// Profile fetches the current user. An expired access token is refreshed
// once and the request retried.
func (c *HTTPClient) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.withAccessToken(ctx, func(token string) error {
		a := fiber.Get(c.authURL+"/profile").Set(common.AccessTokenHeaderName, token)
		return c.do(ctx, a, &p)
	}); err != nil {
		return nil, err
	}
	return &p, nil
}

// Ping checks that the server answers on its root route.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, fiber.Get(c.serverURL+"/"), nil)
}

// DatabaseStatus asks the server to check its database.
func (c *HTTPClient) DatabaseStatus(ctx context.Context) (*DBStatus, error) {
	var s DBStatus
	if err := c.do(ctx, fiber.Get(c.serverURL+"/test-db"), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) withAccessToken(ctx context.Context, call func(token string) error) error {
	access, refresh := c.tokens()
	if access == "" {
		return ErrUnauthorized
	}

	err := call(access)
	if !isTokenExpired(err) || refresh == "" {
		return err
	}

	_, err, _ = c.refreshes.Do(refresh, func() (any, error) {
		return nil, c.Refresh(ctx)
	})
	if err != nil {
		return err
	}

	access, _ = c.tokens()
	return call(access)
}

func isTokenExpired(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		apiErr.Status == http.StatusUnauthorized &&
		apiErr.Message == common.TokenExpiredMessage
}

// do sends the request prepared in a and decodes a 2xx JSON body into out.
func (c *HTTPClient) do(ctx context.Context, a *fiber.Agent, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); timeout <= 0 || d < timeout {
			timeout = d
		}
	}
	if timeout > 0 {
		a.Timeout(timeout)
	}

	if err := a.Parse(); err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	status, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return newAPIError(status, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(status int, body []byte) *APIError {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return &APIError{Status: status, Message: e.Error}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, Message: msg}
}
