package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	appSubmission "github.com/tarpaulin/tarpaulin/pkg/app/submission"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
)

type downloadSubmissionHandler struct {
	downloader appSubmission.Downloader
}

func NewDownloadSubmissionHandler(downloader appSubmission.Downloader) Handler {
	return &downloadSubmissionHandler{downloader: downloader}
}

// Handle @Summary Download a submission file
// @Tags Submissions
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Submission ID"
// @Success 200 {file} file "Stored file"
// @Failure 403 {object} map[string]interface{} "Not allowed to read this submission"
// @Failure 404 {object} map[string]interface{} "Submission not found"
// @Router /media/submissions/{id} [get]
func (h *downloadSubmissionHandler) Handle(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	caller, _ := identity.FromContext(c.UserContext())
	body, file, err := h.downloader.Open(c.UserContext(), caller, id)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", file.Filename))
	// the body is closed by fasthttp once it has been written
	return c.Status(fiber.StatusOK).SendStream(body, int(file.Length))
}
