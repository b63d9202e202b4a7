package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appSubmission "github.com/tarpaulin/tarpaulin/pkg/app/submission"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
)

const submissionFormField = "file"

type createSubmissionHandler struct {
	logger  *logrus.Logger
	creator appSubmission.Creator
}

func NewCreateSubmissionHandler(logger *logrus.Logger, creator appSubmission.Creator) Handler {
	return &createSubmissionHandler{logger: logger, creator: creator}
}

// Handle @Summary Submit a file for an assignment
// @Description Accepts text/csv, application/pdf and text/plain uploads from enrolled students
// @Tags Assignments
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Assignment ID"
// @Accept multipart/form-data
// @Param file formData file true "Submission file"
// @Produce json
// @Success 201 {object} map[string]interface{} "id of the stored submission"
// @Failure 400 {object} map[string]interface{} "Missing file or unsupported type"
// @Failure 403 {object} map[string]interface{} "Not an enrolled student"
// @Failure 404 {object} map[string]interface{} "Assignment not found"
// @Router /assignments/{id}/submissions [post]
func (h *createSubmissionHandler) Handle(c *fiber.Ctx) error {
	assignmentID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	header, err := c.FormFile(submissionFormField)
	if err != nil {
		return domain.NewValidationError("request must include a %q file", submissionFormField)
	}
	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	caller, _ := identity.FromContext(c.UserContext())
	id, err := h.creator.Create(c.UserContext(), caller, assignmentID, appSubmission.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Body:        file,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}
