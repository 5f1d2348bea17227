// Package httpapi exposes the auth services over HTTP with fiber.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/dmitrijs2005/alumniauth/internal/logging"
	"github.com/dmitrijs2005/alumniauth/internal/server/auth"
	"github.com/dmitrijs2005/alumniauth/internal/server/models"
	"github.com/dmitrijs2005/alumniauth/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

// UserService is the subset of services.UserService the handlers need.
type UserService interface {
	Signup(ctx context.Context, fullName, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Profile(ctx context.Context, userID int64) (*models.User, error)
}

type StatusService interface {
	DatabaseTime(ctx context.Context) (time.Time, error)
}

// AccessVerifier validates access tokens for the auth middleware.
type AccessVerifier interface {
	VerifyAccess(token string) (*auth.Claims, error)
}

type Config struct {
	Address         string
	RoutePrefix     string
	ShutdownTimeout time.Duration
}

type Server struct {
	config Config
	app    *fiber.App
	users  UserService
	status StatusService
	tokens AccessVerifier
	logger logging.Logger
}

func NewServer(cfg Config, l logging.Logger, us UserService, ss StatusService, tv AccessVerifier) *Server {
	s := &Server{
		config: cfg,
		users:  us,
		status: ss,
		tokens: tv,
		logger: l.With("module", "http_server"),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "alumniauth",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Use(requestIDMiddleware)

	s.app.Get("/", s.index)
	s.app.Get("/test-db", s.testDB)

	var r fiber.Router = s.app
	if s.config.RoutePrefix != "" {
		r = s.app.Group(s.config.RoutePrefix)
	}

	r.Post("/signup", s.signup)
	r.Post("/login", s.login)
	r.Post("/refresh-token", s.refreshToken)
	r.Get("/profile", s.accessTokenMiddleware, s.profile)
}

// Run serves until ctx is cancelled, then shuts down gracefully. The
// listener is bound before Run waits on ctx, so a context cancelled during
// startup still stops the server.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Address, err)
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", ln.Addr().String())
		errCh <- s.app.Listener(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownErr := s.app.ShutdownWithTimeout(timeout)

	// Serving may not have registered ln yet; closing it ends Accept either way.
	_ = ln.Close()

	if err := <-errCh; err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return shutdownErr
}
