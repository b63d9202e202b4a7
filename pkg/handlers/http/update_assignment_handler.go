package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appCourse "github.com/tarpaulin/tarpaulin/pkg/app/course"
	domainAssignment "github.com/tarpaulin/tarpaulin/pkg/domain/assignment"
	domainCourse "github.com/tarpaulin/tarpaulin/pkg/domain/course"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	"github.com/tarpaulin/tarpaulin/pkg/handlers/http/request"
)

type updateAssignmentHandler struct {
	logger     *logrus.Logger
	repo       domainAssignment.Repository
	courseRepo domainCourse.Repository
}

func NewUpdateAssignmentHandler(logger *logrus.Logger, repo domainAssignment.Repository, courseRepo domainCourse.Repository) Handler {
	return &updateAssignmentHandler{logger: logger, repo: repo, courseRepo: courseRepo}
}

// Handle @Summary Update an assignment
// @Tags Assignments
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Assignment ID"
// @Accept json
// @Produce json
// @Param request body request.UpdateAssignmentRequest true "Fields to change"
// @Success 200 {object} assignment.Assignment "Updated assignment"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 403 {object} map[string]interface{} "Not the course instructor"
// @Failure 404 {object} map[string]interface{} "Assignment not found"
// @Router /assignments/{id} [patch]
func (h *updateAssignmentHandler) Handle(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	req := new(request.UpdateAssignmentRequest)
	if err := bindJSON(c, req); err != nil {
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

	if req.Title != nil {
		entity.Title = *req.Title
	}
	if req.Points != nil {
		entity.Points = *req.Points
	}
	if req.Due != nil {
		entity.Due = *req.Due
	}
	if err := h.repo.Update(c.UserContext(), entity); err != nil {
		return err
	}

	h.logger.WithField("assignment_id", id).Info("assignment updated")
	return c.Status(fiber.StatusOK).JSON(entity)
}
