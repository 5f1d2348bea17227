package httpapi

import (
	"errors"

	"github.com/dmitrijs2005/alumniauth/internal/common"
	"github.com/gofiber/fiber/v2"
)

const (
	msgNoToken             = "Access denied. No token provided."
	msgTokenExpired        = common.TokenExpiredMessage
	msgInvalidToken        = "Invalid token"
	msgNoRefreshToken      = "Access denied. No refresh token provided."
	msgRefreshTokenExpired = "Refresh token expired. Please log in again."
	msgInvalidRefreshToken = "Invalid refresh token"
	msgUserExists          = "User already exists"
	msgInvalidCredentials  = "Invalid credentials"
	msgUserNotFound        = "User not found"
	msgInvalidBody         = "Invalid request body"
	msgServerError         = "Server error"
	msgDatabaseFailed      = "Database connection failed"
)

type errorBody struct {
	Error string `json:"error"`
}

func errorResponse(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorBody{Error: msg})
}

// statusFor maps a service error to a response status and message.
func statusFor(err error) (int, string) {
	var ve validationError
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, ve.Error()
	case errors.Is(err, common.ErrorValidation):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorAlreadyExists):
		return fiber.StatusBadRequest, msgUserExists
	case errors.Is(err, common.ErrInvalidCredentials):
		return fiber.StatusBadRequest, msgInvalidCredentials
	case errors.Is(err, common.ErrorNotFound):
		return fiber.StatusNotFound, msgUserNotFound
	case errors.Is(err, common.ErrorUnauthorized):
		return fiber.StatusUnauthorized, msgNoToken
	case errors.Is(err, common.ErrTokenExpired):
		return fiber.StatusUnauthorized, msgTokenExpired
	case errors.Is(err, common.ErrInvalidToken):
		return fiber.StatusBadRequest, msgInvalidToken
	default:
		return fiber.StatusInternalServerError, msgServerError
	}
}

// refreshStatusFor maps refresh failures. Expired and invalid refresh tokens
// get distinct responses, like access tokens in the middleware.
func refreshStatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return fiber.StatusUnauthorized, msgNoRefreshToken
	case errors.Is(err, common.ErrTokenExpired):
		return fiber.StatusUnauthorized, msgRefreshTokenExpired
	case errors.Is(err, common.ErrInvalidToken):
		return fiber.StatusBadRequest, msgInvalidRefreshToken
	default:
		return fiber.StatusInternalServerError, msgServerError
	}
}

// fail writes err as a JSON error, logging server-side failures.
func (s *Server) fail(c *fiber.Ctx, op string, err error, mapper func(error) (int, string)) error {
	status, msg := mapper(err)
	if status >= fiber.StatusInternalServerError {
		s.logger.Error(c.UserContext(), op+" failed", "error", err,
			"request_id", RequestIDFromContext(c.UserContext()))
	}
	return errorResponse(c, status, msg)
}

// errorHandler renders errors returned from handlers and fiber itself, such
// as unknown routes, in the same JSON shape.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return errorResponse(c, fe.Code, fe.Message)
	}
	return s.fail(c, "request", err, statusFor)
}
