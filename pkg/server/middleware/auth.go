package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/tarpaulin/tarpaulin/pkg/common"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	"github.com/tarpaulin/tarpaulin/pkg/infra/auth/jwt"
)

const unauthorizedMessage = "Valid authentication token required"

type authMiddleware struct {
	logger     *logrus.Logger
	jwtManager jwt.Manager
	optional   bool
}

// NewAuthMiddleware requires a valid bearer token and stores the caller
// identity in the user context and locals.
func NewAuthMiddleware(logger *logrus.Logger, jwtManager jwt.Manager) Middleware {
	return &authMiddleware{logger: logger, jwtManager: jwtManager}
}

// NewOptionalAuthMiddleware behaves like NewAuthMiddleware but lets requests
// without an Authorization header through anonymously. A header carrying a
// bad token is still rejected.
func NewOptionalAuthMiddleware(logger *logrus.Logger, jwtManager jwt.Manager) Middleware {
	return &authMiddleware{logger: logger, jwtManager: jwtManager, optional: true}
}

func (m *authMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(common.AuthorizationHeader)
		if header == "" && m.optional {
			return c.Next()
		}
		if !strings.HasPrefix(header, common.BearerPrefix) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": unauthorizedMessage})
		}

		claims, err := m.jwtManager.DecodeToken(strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix)))
		if err != nil {
			m.logger.WithError(err).Debug("rejected bearer token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": unauthorizedMessage})
		}
		id, err := claims.Identity()
		if err != nil {
			m.logger.WithError(err).Debug("token carries an invalid identity")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": unauthorizedMessage})
		}

		c.Locals(common.IdentityKey, id)
		c.SetUserContext(identity.WithIdentity(c.UserContext(), id))
		return c.Next()
	}
}

// Caller returns the authenticated identity of the request, or nil.
func Caller(c *fiber.Ctx) *identity.Identity {
	id, _ := c.Locals(common.IdentityKey).(*identity.Identity)
	return id
}
