package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	appCourse "github.com/tarpaulin/tarpaulin/pkg/app/course"
	domainAssignment "github.com/tarpaulin/tarpaulin/pkg/domain/assignment"
	domainCourse "github.com/tarpaulin/tarpaulin/pkg/domain/course"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	"github.com/tarpaulin/tarpaulin/pkg/handlers/http/request"
)

type createAssignmentHandler struct {
	logger     *logrus.Logger
	repo       domainAssignment.Repository
	courseRepo domainCourse.Repository
}

func NewCreateAssignmentHandler(logger *logrus.Logger, repo domainAssignment.Repository, courseRepo domainCourse.Repository) Handler {
	return &createAssignmentHandler{
		logger:     logger,
		repo:       repo,
		courseRepo: courseRepo,
	}
}

// Handle @Summary Create an assignment
// @Tags Assignments
// @Param Authorization header string true "Bearer token"
// @Accept json
// @Produce json
// @Param request body request.CreateAssignmentRequest true "Assignment data"
// @Success 201 {object} map[string]interface{} "id of the new assignment"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 403 {object} map[string]interface{} "Not the course instructor"
// @Router /assignments [post]
func (h *createAssignmentHandler) Handle(c *fiber.Ctx) error {
	req := new(request.CreateAssignmentRequest)
	if err := bindJSON(c, req); err != nil {
		return err
	}
	courseID := uuid.MustParse(req.CourseID)

	caller, _ := identity.FromContext(c.UserContext())
	if _, err := appCourse.RequireStaff(c.UserContext(), h.courseRepo, caller, courseID); err != nil {
		return err
	}

	entity := &domainAssignment.Assignment{
		CourseID: courseID,
		Title:    req.Title,
		Points:   req.Points,
		Due:      req.Due,
	}
	if err := h.repo.Save(c.UserContext(), entity); err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{"assignment_id": entity.ID, "course_id": courseID}).Info("assignment created")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": entity.ID})
}
