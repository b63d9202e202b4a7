package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarpaulin/tarpaulin/pkg/config"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	handlers "github.com/tarpaulin/tarpaulin/pkg/handlers/http"
	"github.com/tarpaulin/tarpaulin/pkg/infra/auth/jwt"
	"github.com/tarpaulin/tarpaulin/pkg/server/middleware"
	"github.com/tarpaulin/tarpaulin/pkg/server/router"
)

type okHandler struct{}

func (okHandler) Handle(c *fiber.Ctx) error {
	return c.SendString("ok")
}

func newTestServer(t *testing.T) (*APIServer, jwt.Manager) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{Server: config.ServerConfig{SecretKey: "test-secret", BodyLimit: 1024}}
	jwtManager := jwt.NewJwtManager(&cfg.Server)

	var ok handlers.Handler = okHandler{}
	transport := handlers.HandlerTransport{
		CreateUserHandler: ok, LoginHandler: ok, ListUsersHandler: ok, GetUserHandler: ok,
		ListCoursesHandler: ok, CreateCourseHandler: ok, GetCourseHandler: ok, UpdateCourseHandler: ok,
		DeleteCourseHandler: ok, UpdateEnrollmentHandler: ok, ListStudentsHandler: ok, GetRosterHandler: ok,
		ListCourseAssignmentsHandler: ok, CreateAssignmentHandler: ok, GetAssignmentHandler: ok,
		UpdateAssignmentHandler: ok, DeleteAssignmentHandler: ok, CreateSubmissionHandler: ok,
		ListSubmissionsHandler: ok, GradeSubmissionHandler: ok, DownloadSubmissionHandler: ok,
		GetVersionHandler: ok, HealthHandler: ok,
	}
	apiRouter := router.NewAPIRouter(
		middleware.NewTransport(middleware.NewMetricsMiddleware(logger)),
		transport,
		middleware.NewAuthMiddleware(logger, jwtManager),
		middleware.NewOptionalAuthMiddleware(logger, jwtManager),
	)
	return NewAPIServer(cfg, logger, apiRouter), jwtManager
}

func bearer(t *testing.T, m jwt.Manager, role identity.Role) string {
	t.Helper()
	token, err := m.CreateToken(&identity.Identity{ID: uuid.New(), Role: role})
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAPIServer_RouteAccess(t *testing.T) {
	s, m := newTestServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		role   identity.Role
		status int
	}{
		{"public course list", http.MethodGet, "/courses", "", fiber.StatusOK},
		{"public assignment", http.MethodGet, "/assignments/" + uuid.NewString(), "", fiber.StatusOK},
		{"anonymous signup", http.MethodPost, "/users", "", fiber.StatusOK},
		{"login", http.MethodPost, "/users/login", "", fiber.StatusOK},
		{"roster needs a token", http.MethodGet, "/courses/" + uuid.NewString() + "/roster", "", fiber.StatusUnauthorized},
		{"students cannot list users", http.MethodGet, "/users", identity.RoleStudent, fiber.StatusForbidden},
		{"instructors list users", http.MethodGet, "/users", identity.RoleInstructor, fiber.StatusOK},
		{"instructors cannot create courses", http.MethodPost, "/courses", identity.RoleInstructor, fiber.StatusForbidden},
		{"admins create courses", http.MethodPost, "/courses", identity.RoleAdmin, fiber.StatusOK},
		{"admins delete courses", http.MethodDelete, "/courses/" + uuid.NewString(), identity.RoleAdmin, fiber.StatusOK},
		{"grading needs a token", http.MethodPatch, "/submissions/" + uuid.NewString(), "", fiber.StatusUnauthorized},
		{"media with token", http.MethodGet, "/media/submissions/" + uuid.NewString(), identity.RoleStudent, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.role != "" {
				req.Header.Set("Authorization", bearer(t, m, tc.role))
			}
			resp, err := s.Router.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
		})
	}
}

func TestAPIServer_UnknownRoute(t *testing.T) {
	s, _ := newTestServer(t)

	resp, err := s.Router.Test(httptest.NewRequest(http.MethodGet, "/nowhere?x=1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, handlers.NotFoundMessage("/nowhere?x=1"), body["error"])
}
