package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appUser "github.com/tarpaulin/tarpaulin/pkg/app/user"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	"github.com/tarpaulin/tarpaulin/pkg/handlers/http/request"
)

type createUserHandler struct {
	logger    *logrus.Logger
	registrar appUser.Registrar
}

func NewCreateUserHandler(logger *logrus.Logger, registrar appUser.Registrar) Handler {
	return &createUserHandler{
		logger:    logger,
		registrar: registrar,
	}
}

// Handle @Summary Create a user
// @Description Creates a student account. Admin and instructor accounts require an admin token.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request.CreateUserRequest true "User data"
// @Success 201 {object} map[string]interface{} "id, role and token of the new user"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 403 {object} map[string]interface{} "Caller may not create this role"
// @Failure 409 {object} map[string]interface{} "Email already registered"
// @Router /users [post]
func (h *createUserHandler) Handle(c *fiber.Ctx) error {
	req := new(request.CreateUserRequest)
	if err := bindJSON(c, req); err != nil {
		return err
	}

	caller, _ := identity.FromContext(c.UserContext())
	reg, err := h.registrar.Register(c.UserContext(), caller, req)
	if err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{"user_id": reg.User.ID, "role": reg.User.Role}).Info("user created")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    reg.User.ID,
		"role":  reg.User.Role,
		"token": reg.Token,
	})
}
