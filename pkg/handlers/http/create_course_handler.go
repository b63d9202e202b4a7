package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	domainCourse "github.com/tarpaulin/tarpaulin/pkg/domain/course"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	domainUser "github.com/tarpaulin/tarpaulin/pkg/domain/user"
	"github.com/tarpaulin/tarpaulin/pkg/handlers/http/request"
)

type createCourseHandler struct {
	logger   *logrus.Logger
	repo     domainCourse.Repository
	userRepo domainUser.Repository
}

func NewCreateCourseHandler(logger *logrus.Logger, repo domainCourse.Repository, userRepo domainUser.Repository) Handler {
	return &createCourseHandler{
		logger:   logger,
		repo:     repo,
		userRepo: userRepo,
	}
}

// Handle @Summary Create a course
// @Tags Courses
// @Param Authorization header string true "Bearer token"
// @Accept json
// @Produce json
// @Param request body request.CreateCourseRequest true "Course data"
// @Success 201 {object} map[string]interface{} "id of the new course"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 403 {object} map[string]interface{} "Admin only"
// @Router /courses [post]
func (h *createCourseHandler) Handle(c *fiber.Ctx) error {
	req := new(request.CreateCourseRequest)
	if err := bindJSON(c, req); err != nil {
		return err
	}
	instructorID := uuid.MustParse(req.InstructorID)
	if err := requireInstructor(c, h.userRepo, instructorID); err != nil {
		return err
	}

	entity := &domainCourse.Course{
		Subject:      req.Subject,
		Number:       req.Number,
		Title:        req.Title,
		Term:         req.Term,
		InstructorID: instructorID,
	}
	if err := h.repo.Save(c.UserContext(), entity); err != nil {
		return err
	}

	h.logger.WithField("course_id", entity.ID).Info("course created")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": entity.ID})
}

// requireInstructor fails with a validation error unless id is an instructor.
func requireInstructor(c *fiber.Ctx, repo domainUser.Repository, id uuid.UUID) error {
	u, err := repo.GetByID(c.UserContext(), id)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return domain.NewValidationError("instructorId does not refer to an instructor")
		}
		return err
	}
	if u.Role != identity.RoleInstructor {
		return domain.NewValidationError("instructorId does not refer to an instructor")
	}
	return nil
}
