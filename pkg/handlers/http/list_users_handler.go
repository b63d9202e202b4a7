package http

import (
	"github.com/gofiber/fiber/v2"
	domainUser "github.com/tarpaulin/tarpaulin/pkg/domain/user"
)

type listUsersHandler struct {
	repo domainUser.Repository
}

func NewListUsersHandler(repo domainUser.Repository) Handler {
	return &listUsersHandler{repo: repo}
}

// Handle @Summary List users
// @Tags Users
// @Param Authorization header string true "Bearer token"
// @Produce json
// @Success 200 {object} map[string]interface{} "users"
// @Failure 403 {object} map[string]interface{} "Admin or instructor only"
// @Router /users [get]
func (h *listUsersHandler) Handle(c *fiber.Ctx) error {
	users, err := h.repo.List(c.UserContext())
	if err != nil {
		return err
	}
	if users == nil {
		users = []domainUser.User{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": users})
}
