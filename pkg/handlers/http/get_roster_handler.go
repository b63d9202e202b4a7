package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	appCourse "github.com/tarpaulin/tarpaulin/pkg/app/course"
	domainCourse "github.com/tarpaulin/tarpaulin/pkg/domain/course"
	domainUser "github.com/tarpaulin/tarpaulin/pkg/domain/user"
)

const rosterFilename = "roster.csv"

type getRosterHandler struct {
	repo     domainCourse.Repository
	userRepo domainUser.Repository
}

func NewGetRosterHandler(repo domainCourse.Repository, userRepo domainUser.Repository) Handler {
	return &getRosterHandler{repo: repo, userRepo: userRepo}
}

// Handle @Summary Download the course roster
// @Description CSV with one id,name,email line per enrolled student
// @Tags Courses
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Course ID"
// @Produce text/csv
// @Success 200 {file} file "roster.csv"
// @Failure 403 {object} map[string]interface{} "Not the course instructor"
// @Failure 404 {object} map[string]interface{} "Course not found"
// @Router /courses/{id}/roster [get]
func (h *getRosterHandler) Handle(c *fiber.Ctx) error {
	students, err := enrolledStudents(c, h.repo, h.userRepo)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := appCourse.WriteRoster(&buf, students); err != nil {
		return err
	}
	c.Attachment(rosterFilename)
	c.Set(fiber.HeaderContentType, "text/csv")
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
