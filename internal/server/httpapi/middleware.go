package httpapi

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/alumniauth/internal/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ctxKey string

const (
	userIDKey    ctxKey = "userID"
	requestIDKey ctxKey = "requestID"
)

// UserIDFromContext returns the user id attached by the auth middleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// RequestIDFromContext returns the id assigned to the current request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestIDMiddleware keeps an incoming X-Request-ID or generates one, and
// echoes it on the response.
func requestIDMiddleware(c *fiber.Ctx) error {
	id := c.Get(common.RequestIDHeaderName)
	if id == "" {
		id = uuid.NewString()
	}

	c.Set(common.RequestIDHeaderName, id)
	c.Locals(requestIDKey, id)
	c.SetUserContext(context.WithValue(c.UserContext(), requestIDKey, id))

	return c.Next()
}

// accessTokenMiddleware rejects requests without a valid access token in the
// Authorization header. The header holds the bare token, without a scheme.
func (s *Server) accessTokenMiddleware(c *fiber.Ctx) error {
	token := c.Get(common.AccessTokenHeaderName)
	if token == "" {
		return errorResponse(c, fiber.StatusUnauthorized, msgNoToken)
	}

	claims, err := s.tokens.VerifyAccess(token)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return errorResponse(c, fiber.StatusUnauthorized, msgTokenExpired)
		}
		s.logger.Debug(c.UserContext(), "access token rejected", "error", err,
			"request_id", RequestIDFromContext(c.UserContext()))
		return errorResponse(c, fiber.StatusBadRequest, msgInvalidToken)
	}

	c.Locals(userIDKey, claims.UserID)
	c.SetUserContext(context.WithValue(c.UserContext(), userIDKey, claims.UserID))

	return c.Next()
}
