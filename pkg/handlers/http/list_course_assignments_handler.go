package http

import (
	"github.com/gofiber/fiber/v2"
	domainAssignment "github.com/tarpaulin/tarpaulin/pkg/domain/assignment"
	domainCourse "github.com/tarpaulin/tarpaulin/pkg/domain/course"
)

type listCourseAssignmentsHandler struct {
	repo           domainCourse.Repository
	assignmentRepo domainAssignment.Repository
}

func NewListCourseAssignmentsHandler(repo domainCourse.Repository, assignmentRepo domainAssignment.Repository) Handler {
	return &listCourseAssignmentsHandler{repo: repo, assignmentRepo: assignmentRepo}
}

// Handle @Summary List the assignments of a course
// @Tags Courses
// @Param id path string true "Course ID"
// @Produce json
// @Success 200 {object} map[string]interface{} "assignments"
// @Failure 404 {object} map[string]interface{} "Course not found"
// @Router /courses/{id}/assignments [get]
func (h *listCourseAssignmentsHandler) Handle(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.repo.GetByID(c.UserContext(), id); err != nil {
		return err
	}
	assignments, err := h.assignmentRepo.ListByCourse(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"assignments": assignments})
}
