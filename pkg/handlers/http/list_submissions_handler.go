package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	appSubmission "github.com/tarpaulin/tarpaulin/pkg/app/submission"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	"github.com/tarpaulin/tarpaulin/pkg/pagination"
)

type listSubmissionsHandler struct {
	lister appSubmission.Lister
}

func NewListSubmissionsHandler(lister appSubmission.Lister) Handler {
	return &listSubmissionsHandler{lister: lister}
}

// Handle @Summary List submissions of an assignment
// @Description Pages of 5 submissions, optionally restricted to one student
// @Tags Assignments
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Assignment ID"
// @Param page query int false "Page number"
// @Param studentId query string false "Only submissions of this student"
// @Produce json
// @Success 200 {object} submission.Page "Submissions page"
// @Failure 400 {object} map[string]interface{} "Invalid studentId"
// @Failure 403 {object} map[string]interface{} "Not the course instructor"
// @Failure 404 {object} map[string]interface{} "Assignment not found"
// @Router /assignments/{id}/submissions [get]
func (h *listSubmissionsHandler) Handle(c *fiber.Ctx) error {
	assignmentID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	q := appSubmission.Query{Page: pagination.ParsePage(c.Query("page"))}
	if raw := c.Query("studentId"); raw != "" {
		studentID, err := uuid.Parse(raw)
		if err != nil {
			return domain.NewValidationError("studentId must be a valid id")
		}
		q.StudentID = &studentID
	}

	caller, _ := identity.FromContext(c.UserContext())
	page, err := h.lister.List(c.UserContext(), caller, assignmentID, q)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(page)
}
