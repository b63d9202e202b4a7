package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
)

const (
	ServerErrorMessage = "Server error. Please try again later."
	invalidBodyMessage = "Request body is not a valid JSON object"
)

// NotFoundMessage is the body text for unknown routes and missing entities.
func NotFoundMessage(url string) string {
	return fmt.Sprintf("Requested resource %s does not exist", url)
}

// ErrorHandler maps errors returned by handlers to JSON responses. Anything
// unclassified is logged and answered with a generic 500.
func ErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &fe):
			if fe.Code == fiber.StatusNotFound {
				return c.Status(fe.Code).JSON(fiber.Map{"error": NotFoundMessage(c.OriginalURL())})
			}
			if fe.Code >= fiber.StatusInternalServerError {
				break
			}
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		case domain.IsNotFoundError(err):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": NotFoundMessage(c.OriginalURL())})
		case errors.As(err, &ve):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Msg})
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Valid authentication token required"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions to access the specified resource"})
		case errors.Is(err, domain.ErrAlreadyExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Resource already exists"})
		}

		logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.OriginalURL(),
		}).Error("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ServerErrorMessage})
	}
}

type validatable interface {
	Validate() error
}

// bindJSON parses and validates the request body.
func bindJSON(c *fiber.Ctx, req validatable) error {
	if err := c.BodyParser(req); err != nil {
		return domain.NewValidationError(invalidBodyMessage)
	}
	if err := req.Validate(); err != nil {
		return domain.NewValidationError("%s", err.Error())
	}
	return nil
}

// pathID parses a uuid route parameter. Malformed ids cannot exist, so they
// are reported as not found.
func pathID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.ErrNotFound
	}
	return id, nil
}
