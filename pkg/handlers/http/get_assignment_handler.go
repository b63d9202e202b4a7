package http

import (
	"github.com/gofiber/fiber/v2"
	domainAssignment "github.com/tarpaulin/tarpaulin/pkg/domain/assignment"
)

type getAssignmentHandler struct {
	repo domainAssignment.Repository
}

func NewGetAssignmentHandler(repo domainAssignment.Repository) Handler {
	return &getAssignmentHandler{repo: repo}
}

// Handle @Summary Get an assignment
// @Tags Assignments
// @Param id path string true "Assignment ID"
// @Produce json
// @Success 200 {object} assignment.Assignment "Assignment"
// @Failure 404 {object} map[string]interface{} "Assignment not found"
// @Router /assignments/{id} [get]
func (h *getAssignmentHandler) Handle(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	entity, err := h.repo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(entity)
}
