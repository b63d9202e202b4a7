package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appCourse "github.com/tarpaulin/tarpaulin/pkg/app/course"
	domainAssignment "github.com/tarpaulin/tarpaulin/pkg/domain/assignment"
	domainCourse "github.com/tarpaulin/tarpaulin/pkg/domain/course"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
)

type deleteAssignmentHandler struct {
	logger     *logrus.Logger
	repo       domainAssignment.Repository
	courseRepo domainCourse.Repository
}

func NewDeleteAssignmentHandler(logger *logrus.Logger, repo domainAssignment.Repository, courseRepo domainCourse.Repository) Handler {
	return &deleteAssignmentHandler{logger: logger, repo: repo, courseRepo: courseRepo}
}

// Handle @Summary Delete an assignment
// @Tags Assignments
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Assignment ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]interface{} "Not the course instructor"
// @Failure 404 {object} map[string]interface{} "Assignment not found"
// @Router /assignments/{id} [delete]
func (h *deleteAssignmentHandler) Handle(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	entity, err := h.repo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	caller, _ := identity.FromContext(c.UserContext())
	if _, err := appCourse.RequireStaff(c.UserContext(), h.courseRepo, caller, entity.CourseID); err != nil {
		return err
	}
	if err := h.repo.Delete(c.UserContext(), id); err != nil {
		return err
	}

	h.logger.WithField("assignment_id", id).Info("assignment deleted")
	return c.SendStatus(fiber.StatusNoContent)
}
