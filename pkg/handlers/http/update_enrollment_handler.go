package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appCourse "github.com/tarpaulin/tarpaulin/pkg/app/course"
	domainCourse "github.com/tarpaulin/tarpaulin/pkg/domain/course"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	"github.com/tarpaulin/tarpaulin/pkg/handlers/http/request"
)

type updateEnrollmentHandler struct {
	logger *logrus.Logger
	repo   domainCourse.Repository
}

func NewUpdateEnrollmentHandler(logger *logrus.Logger, repo domainCourse.Repository) Handler {
	return &updateEnrollmentHandler{logger: logger, repo: repo}
}

// Handle @Summary Update course enrollment
// @Description Removes then adds the given student ids
// @Tags Courses
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Course ID"
// @Accept json
// @Param request body request.EnrollmentRequest true "Students to add and remove"
// @Success 200 "OK"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 403 {object} map[string]interface{} "Not the course instructor"
// @Failure 404 {object} map[string]interface{} "Course not found"
// @Router /courses/{id}/students [post]
func (h *updateEnrollmentHandler) Handle(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	req := new(request.EnrollmentRequest)
	if err := bindJSON(c, req); err != nil {
		return err
	}

	caller, _ := identity.FromContext(c.UserContext())
	if _, err := appCourse.RequireStaff(c.UserContext(), h.repo, caller, id); err != nil {
		return err
	}

	add, _ := req.AddIDs()
	remove, _ := req.RemoveIDs()
	if err := h.repo.UpdateEnrollment(c.UserContext(), id, add, remove); err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"course_id": id,
		"added":     len(add),
		"removed":   len(remove),
	}).Info("enrollment updated")
	return c.SendStatus(fiber.StatusOK)
}
