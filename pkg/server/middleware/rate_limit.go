package middleware

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/tarpaulin/tarpaulin/pkg/app/ratelimit"
	"github.com/tarpaulin/tarpaulin/pkg/common"
)

const TooManyRequestsMessage = "Too many requests per minute"

type rateLimitMiddleware struct {
	logger  *logrus.Logger
	limiter ratelimit.Limiter
}

// NewRateLimitMiddleware admits each request against the bucket of the
// client IP before any routing or authentication.
func NewRateLimitMiddleware(logger *logrus.Logger, limiter ratelimit.Limiter) Middleware {
	return &rateLimitMiddleware{logger: logger, limiter: limiter}
}

func (m *rateLimitMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := m.limiter.Admit(c.UserContext(), c.IP())
		if !decision.FailedOpen {
			c.Set(common.RateLimitRemainingHeader, strconv.Itoa(int(math.Floor(decision.Tokens))))
		}
		if !decision.Admitted {
			m.logger.WithField("ip", c.IP()).Debug("request rejected by rate limiter")
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": TooManyRequestsMessage})
		}
		return c.Next()
	}
}
