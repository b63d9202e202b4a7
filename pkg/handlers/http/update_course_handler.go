package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	appCourse "github.com/tarpaulin/tarpaulin/pkg/app/course"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	domainCourse "github.com/tarpaulin/tarpaulin/pkg/domain/course"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	domainUser "github.com/tarpaulin/tarpaulin/pkg/domain/user"
	"github.com/tarpaulin/tarpaulin/pkg/handlers/http/request"
)

type updateCourseHandler struct {
	logger   *logrus.Logger
	repo     domainCourse.Repository
	userRepo domainUser.Repository
}

func NewUpdateCourseHandler(logger *logrus.Logger, repo domainCourse.Repository, userRepo domainUser.Repository) Handler {
	return &updateCourseHandler{
		logger:   logger,
		repo:     repo,
		userRepo: userRepo,
	}
}

// Handle @Summary Update a course
// @Description Partially updates a course. Only admins may reassign the instructor.
// @Tags Courses
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Course ID"
// @Accept json
// @Produce json
// @Param request body request.UpdateCourseRequest true "Fields to change"
// @Success 200 {object} course.Course "Updated course"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 403 {object} map[string]interface{} "Not the course instructor"
// @Failure 404 {object} map[string]interface{} "Course not found"
// @Router /courses/{id} [patch]
func (h *updateCourseHandler) Handle(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	req := new(request.UpdateCourseRequest)
	if err := bindJSON(c, req); err != nil {
		return err
	}

	caller, _ := identity.FromContext(c.UserContext())
	entity, err := appCourse.RequireStaff(c.UserContext(), h.repo, caller, id)
	if err != nil {
		return err
	}

	if req.Subject != nil {
		entity.Subject = *req.Subject
	}
	if req.Number != nil {
		entity.Number = *req.Number
	}
	if req.Title != nil {
		entity.Title = *req.Title
	}
	if req.Term != nil {
		entity.Term = *req.Term
	}
	if req.InstructorID != nil {
		if !caller.IsAdmin() {
			return domain.ErrForbidden
		}
		instructorID := uuid.MustParse(*req.InstructorID)
		if err := requireInstructor(c, h.userRepo, instructorID); err != nil {
			return err
		}
		entity.InstructorID = instructorID
	}

	if err := h.repo.Update(c.UserContext(), entity); err != nil {
		return err
	}
	h.logger.WithField("course_id", id).Info("course updated")
	return c.Status(fiber.StatusOK).JSON(entity)
}
