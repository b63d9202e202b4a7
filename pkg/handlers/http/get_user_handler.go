package http

import (
	"github.com/gofiber/fiber/v2"
	appUser "github.com/tarpaulin/tarpaulin/pkg/app/user"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
)

type getUserHandler struct {
	finder appUser.Finder
}

func NewGetUserHandler(finder appUser.Finder) Handler {
	return &getUserHandler{finder: finder}
}

// Handle @Summary Get a user
// @Description Returns the user and the ids of the courses they teach or attend
// @Tags Users
// @Param Authorization header string true "Bearer token"
// @Param id path string true "User ID"
// @Produce json
// @Success 200 {object} user.Profile "User"
// @Failure 403 {object} map[string]interface{} "Not allowed to read this user"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/{id} [get]
func (h *getUserHandler) Handle(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	caller, _ := identity.FromContext(c.UserContext())
	profile, err := h.finder.Find(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}
