package http

import (
	"github.com/gofiber/fiber/v2"
	domainCourse "github.com/tarpaulin/tarpaulin/pkg/domain/course"
)

type getCourseHandler struct {
	repo domainCourse.Repository
}

func NewGetCourseHandler(repo domainCourse.Repository) Handler {
	return &getCourseHandler{repo: repo}
}

// Handle @Summary Get a course
// @Description Returns the course without its student and assignment lists
// @Tags Courses
// @Param id path string true "Course ID"
// @Produce json
// @Success 200 {object} course.Course "Course"
// @Failure 404 {object} map[string]interface{} "Course not found"
// @Router /courses/{id} [get]
func (h *getCourseHandler) Handle(c *fiber.Ctx) error {
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
