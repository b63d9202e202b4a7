package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Users
	CreateUserHandler Handler
	LoginHandler      Handler
	ListUsersHandler  Handler
	GetUserHandler    Handler

	// Courses
	ListCoursesHandler           Handler
	CreateCourseHandler          Handler
	GetCourseHandler             Handler
	UpdateCourseHandler          Handler
	DeleteCourseHandler          Handler
	UpdateEnrollmentHandler      Handler
	ListStudentsHandler          Handler
	GetRosterHandler             Handler
	ListCourseAssignmentsHandler Handler

	// Assignments
	CreateAssignmentHandler Handler
	GetAssignmentHandler    Handler
	UpdateAssignmentHandler Handler
	DeleteAssignmentHandler Handler

	// Submissions
	CreateSubmissionHandler   Handler
	ListSubmissionsHandler    Handler
	GradeSubmissionHandler    Handler
	DownloadSubmissionHandler Handler

	// Operational
	GetVersionHandler Handler
	HealthHandler     Handler
}
