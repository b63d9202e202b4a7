package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appSubmission "github.com/tarpaulin/tarpaulin/pkg/app/submission"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	"github.com/tarpaulin/tarpaulin/pkg/handlers/http/request"
)

type gradeSubmissionHandler struct {
	logger *logrus.Logger
	grader appSubmission.Grader
}

func NewGradeSubmissionHandler(logger *logrus.Logger, grader appSubmission.Grader) Handler {
	return &gradeSubmissionHandler{logger: logger, grader: grader}
}

// Handle @Summary Grade a submission
// @Tags Submissions
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Submission ID"
// @Accept json
// @Param request body request.GradeRequest true "Grade"
// @Success 200 "OK"
// @Failure 400 {object} map[string]interface{} "Invalid grade"
// @Failure 403 {object} map[string]interface{} "Not the course instructor"
// @Failure 404 {object} map[string]interface{} "Submission not found"
// @Router /submissions/{id} [patch]
func (h *gradeSubmissionHandler) Handle(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	req := new(request.GradeRequest)
	if err := bindJSON(c, req); err != nil {
		return err
	}

	caller, _ := identity.FromContext(c.UserContext())
	if err := h.grader.Grade(c.UserContext(), caller, id, *req.Grade); err != nil {
		return err
	}
	h.logger.WithFields(logrus.Fields{"submission_id": id, "grade": *req.Grade}).Info("submission graded")
	return c.SendStatus(fiber.StatusOK)
}
