package http

import (
	"github.com/gofiber/fiber/v2"
	appCourse "github.com/tarpaulin/tarpaulin/pkg/app/course"
	"github.com/tarpaulin/tarpaulin/pkg/pagination"
)

type listCoursesHandler struct {
	pager appCourse.Pager
}

func NewListCoursesHandler(pager appCourse.Pager) Handler {
	return &listCoursesHandler{pager: pager}
}

// Handle @Summary List courses
// @Description Returns one page of courses with navigation links
// @Tags Courses
// @Param page query int false "Page number"
// @Produce json
// @Success 200 {object} course.Page "Courses page"
// @Router /courses [get]
func (h *listCoursesHandler) Handle(c *fiber.Ctx) error {
	page, err := h.pager.Page(c.UserContext(), pagination.ParsePage(c.Query("page")))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(page)
}
