package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	handlers "github.com/tarpaulin/tarpaulin/pkg/handlers/http"
	"github.com/tarpaulin/tarpaulin/pkg/server/middleware"
)

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
	auth                middleware.Middleware
	optionalAuth        middleware.Middleware
}

// NewAPIRouter registers every route. The transport middlewares run globally,
// ahead of routing, so rate limiting also covers unknown paths.
func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
	auth middleware.Middleware,
	optionalAuth middleware.Middleware,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
		auth:                auth,
		optionalAuth:        optionalAuth,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	h := r.handlerTransport

	if mws := r.middlewareTransport.GetMiddlewares(); len(mws) > 0 {
		router.Use(mws...)
	}

	router.Static("/swagger.json", "./docs/swagger.json")
	router.Get("/docs/*", swagger.New(swagger.Config{
		URL: "/swagger.json",
	}))

	router.Get("/version", h.GetVersionHandler.Handle)
	router.Get("/health", h.HealthHandler.Handle)

	requireAuth := r.auth.Middleware()
	staff := middleware.RequireRoles(identity.RoleAdmin, identity.RoleInstructor)
	admin := middleware.RequireRoles(identity.RoleAdmin)

	users := router.Group("/users")
	{
		users.Post("", r.optionalAuth.Middleware(), h.CreateUserHandler.Handle)
		users.Post("/login", h.LoginHandler.Handle)
		users.Get("", requireAuth, staff, h.ListUsersHandler.Handle)
		users.Get("/:id", requireAuth, h.GetUserHandler.Handle)
	}

	courses := router.Group("/courses")
	{
		courses.Get("", h.ListCoursesHandler.Handle)
		courses.Post("", requireAuth, admin, h.CreateCourseHandler.Handle)
		courses.Get("/:id", h.GetCourseHandler.Handle)
		courses.Patch("/:id", requireAuth, h.UpdateCourseHandler.Handle)
		courses.Delete("/:id", requireAuth, admin, h.DeleteCourseHandler.Handle)
		courses.Post("/:id/students", requireAuth, h.UpdateEnrollmentHandler.Handle)
		courses.Get("/:id/students", requireAuth, h.ListStudentsHandler.Handle)
		courses.Get("/:id/roster", requireAuth, h.GetRosterHandler.Handle)
		courses.Get("/:id/assignments", h.ListCourseAssignmentsHandler.Handle)
	}

	assignments := router.Group("/assignments")
	{
		assignments.Post("", requireAuth, h.CreateAssignmentHandler.Handle)
		assignments.Get("/:id", h.GetAssignmentHandler.Handle)
		assignments.Patch("/:id", requireAuth, h.UpdateAssignmentHandler.Handle)
		assignments.Delete("/:id", requireAuth, h.DeleteAssignmentHandler.Handle)
		assignments.Post("/:id/submissions", requireAuth, h.CreateSubmissionHandler.Handle)
		assignments.Get("/:id/submissions", requireAuth, h.ListSubmissionsHandler.Handle)
	}

	router.Patch("/submissions/:id", requireAuth, h.GradeSubmissionHandler.Handle)
	router.Get("/media/submissions/:id", requireAuth, h.DownloadSubmissionHandler.Handle)

	return nil
}
