package httpapi

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/alumniauth/internal/common"
	"github.com/dmitrijs2005/alumniauth/internal/server/auth"
	"github.com/dmitrijs2005/alumniauth/internal/server/services"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
)

// validationError marks request payload problems. Its message is returned to
// the client as is.
type validationError struct {
	err error
}

func (e validationError) Error() string { return e.err.Error() }
func (e validationError) Unwrap() error { return common.ErrorValidation }

type signupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// normalize trims the name and normalizes the email so validation sees the
// values that will be stored.
func (r *signupRequest) normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = services.NormalizeEmail(r.Email)
}

// Validate checks the signup payload. bcrypt only looks at the first 72
// bytes of a password, so longer ones are refused.
func (r signupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 255), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(1, auth.MaxPasswordBytes)),
	)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *loginRequest) normalize() {
	r.Email = services.NormalizeEmail(r.Email)
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type tokenResponse struct {
	Token string `json:"token"`
}

type loginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type profileResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type dbStatusResponse struct {
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

func (s *Server) index(c *fiber.Ctx) error {
	return c.SendString("Alumni App API is running...")
}

func (s *Server) testDB(c *fiber.Ctx) error {
	now, err := s.status.DatabaseTime(c.UserContext())
	if err != nil {
		s.logger.Error(c.UserContext(), "database check failed", "error", err,
			"request_id", RequestIDFromContext(c.UserContext()))
		return errorResponse(c, fiber.StatusInternalServerError, msgDatabaseFailed)
	}
	return c.JSON(dbStatusResponse{Message: "Database connection successful", Time: now})
}

func (s *Server) signup(c *fiber.Ctx) error {
	req := new(signupRequest)
	if err := c.BodyParser(req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	req.normalize()
	if err := req.Validate(); err != nil {
		return s.fail(c, "signup", validationError{err}, statusFor)
	}

	token, err := s.users.Signup(c.UserContext(), req.FullName, req.Email, req.Password)
	if err != nil {
		return s.fail(c, "signup", err, statusFor)
	}

	s.logger.Info(c.UserContext(), "User registered",
		"request_id", RequestIDFromContext(c.UserContext()))
	return c.Status(fiber.StatusCreated).JSON(tokenResponse{Token: token})
}

func (s *Server) login(c *fiber.Ctx) error {
	req := new(loginRequest)
	if err := c.BodyParser(req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	req.normalize()
	if err := req.Validate(); err != nil {
		return s.fail(c, "login", validationError{err}, statusFor)
	}

	tokens, err := s.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.fail(c, "login", err, statusFor)
	}

	return c.JSON(loginResponse{Token: tokens.AccessToken, RefreshToken: tokens.RefreshToken})
}

func (s *Server) refreshToken(c *fiber.Ctx) error {
	token, err := s.users.Refresh(c.UserContext(), c.Get(common.RefreshTokenHeaderName))
	if err != nil {
		return s.fail(c, "refresh", err, refreshStatusFor)
	}
	return c.JSON(tokenResponse{Token: token})
}

func (s *Server) profile(c *fiber.Ctx) error {
	userID, ok := UserIDFromContext(c.UserContext())
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, msgNoToken)
	}

	u, err := s.users.Profile(c.UserContext(), userID)
	if err != nil {
		return s.fail(c, "profile", err, statusFor)
	}

	return c.JSON(profileResponse{ID: u.ID, FullName: u.FullName, Email: u.Email})
}
