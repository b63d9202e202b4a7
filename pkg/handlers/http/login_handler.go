package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appUser "github.com/tarpaulin/tarpaulin/pkg/app/user"
	"github.com/tarpaulin/tarpaulin/pkg/handlers/http/request"
)

type loginHandler struct {
	logger        *logrus.Logger
	authenticator appUser.Authenticator
}

func NewLoginHandler(logger *logrus.Logger, authenticator appUser.Authenticator) Handler {
	return &loginHandler{
		logger:        logger,
		authenticator: authenticator,
	}
}

// Handle @Summary Log in
// @Description Exchanges email and password for a bearer token
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{} "token"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /users/login [post]
func (h *loginHandler) Handle(c *fiber.Ctx) error {
	req := new(request.LoginRequest)
	if err := bindJSON(c, req); err != nil {
		return err
	}

	token, err := h.authenticator.Login(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, appUser.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"token": token})
}
