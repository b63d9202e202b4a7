package http

import (
	"github.com/gofiber/fiber/v2"
	appCourse "github.com/tarpaulin/tarpaulin/pkg/app/course"
	domainCourse "github.com/tarpaulin/tarpaulin/pkg/domain/course"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	domainUser "github.com/tarpaulin/tarpaulin/pkg/domain/user"
)

type listStudentsHandler struct {
	repo     domainCourse.Repository
	userRepo domainUser.Repository
}

func NewListStudentsHandler(repo domainCourse.Repository, userRepo domainUser.Repository) Handler {
	return &listStudentsHandler{repo: repo, userRepo: userRepo}
}

// Handle @Summary List enrolled students
// @Tags Courses
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Course ID"
// @Produce json
// @Success 200 {object} map[string]interface{} "students"
// @Failure 403 {object} map[string]interface{} "Not the course instructor"
// @Failure 404 {object} map[string]interface{} "Course not found"
// @Router /courses/{id}/students [get]
func (h *listStudentsHandler) Handle(c *fiber.Ctx) error {
	students, err := enrolledStudents(c, h.repo, h.userRepo)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"students": students})
}

// enrolledStudents loads the students of the :id course after checking the
// caller may see them.
func enrolledStudents(c *fiber.Ctx, repo domainCourse.Repository, userRepo domainUser.Repository) ([]domainUser.User, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	caller, _ := identity.FromContext(c.UserContext())
	entity, err := appCourse.RequireStaff(c.UserContext(), repo, caller, id)
	if err != nil {
		return nil, err
	}
	return userRepo.GetByIDs(c.UserContext(), entity.Students)
}
