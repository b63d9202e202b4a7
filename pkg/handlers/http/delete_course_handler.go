package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	domainCourse "github.com/tarpaulin/tarpaulin/pkg/domain/course"
)

type deleteCourseHandler struct {
	logger *logrus.Logger
	repo   domainCourse.Repository
}

func NewDeleteCourseHandler(logger *logrus.Logger, repo domainCourse.Repository) Handler {
	return &deleteCourseHandler{logger: logger, repo: repo}
}

// Handle @Summary Delete a course
// @Description Deletes the course and its assignments
// @Tags Courses
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Course ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]interface{} "Admin only"
// @Failure 404 {object} map[string]interface{} "Course not found"
// @Router /courses/{id} [delete]
func (h *deleteCourseHandler) Handle(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.repo.Delete(c.UserContext(), id); err != nil {
		return err
	}
	h.logger.WithField("course_id", id).Info("course deleted")
	return c.SendStatus(fiber.StatusNoContent)
}
