package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	appCourse "github.com/tarpaulin/tarpaulin/pkg/app/course"
	appSubmission "github.com/tarpaulin/tarpaulin/pkg/app/submission"
	appUser "github.com/tarpaulin/tarpaulin/pkg/app/user"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	domainAssignment "github.com/tarpaulin/tarpaulin/pkg/domain/assignment"
	assignmentMocks "github.com/tarpaulin/tarpaulin/pkg/domain/assignment/mocks"
	domainCourse "github.com/tarpaulin/tarpaulin/pkg/domain/course"
	courseMocks "github.com/tarpaulin/tarpaulin/pkg/domain/course/mocks"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	"github.com/tarpaulin/tarpaulin/pkg/domain/submission"
	submissionMocks "github.com/tarpaulin/tarpaulin/pkg/domain/submission/mocks"
	domainUser "github.com/tarpaulin/tarpaulin/pkg/domain/user"
	userMocks "github.com/tarpaulin/tarpaulin/pkg/domain/user/mocks"
	"github.com/tarpaulin/tarpaulin/pkg/infra/database/types"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler(testLogger())})
}

// as injects the caller the auth middleware would have decoded.
func as(caller *identity.Identity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(identity.WithIdentity(c.UserContext(), caller))
		return c.Next()
	}
}

func readJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

type submissionsFixture struct {
	assignmentRepo *assignmentMocks.Repository
	courseRepo     *courseMocks.Repository
	blobs          *submissionMocks.BlobStore
	assignment     *domainAssignment.Assignment
	instructor     *identity.Identity
	student        uuid.UUID
}

// newSubmissionsFixture stores 12 submissions; the 2nd, 7th and 12th belong
// to the same student.
func newSubmissionsFixture() *submissionsFixture {
	f := &submissionsFixture{
		assignmentRepo: new(assignmentMocks.Repository),
		courseRepo:     new(courseMocks.Repository),
		blobs:          new(submissionMocks.BlobStore),
		instructor:     &identity.Identity{ID: uuid.New(), Role: identity.RoleInstructor},
		student:        uuid.New(),
	}
	courseID := uuid.New()
	f.assignment = &domainAssignment.Assignment{ID: uuid.New(), CourseID: courseID}
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		id := uuid.New()
		owner := uuid.New()
		if i == 1 || i == 6 || i == 11 {
			owner = f.student
		}
		f.assignment.Submissions = append(f.assignment.Submissions, id)
		f.blobs.On("Find", mock.Anything, id).Return(&submission.File{
			ID: id,
			Metadata: submission.Metadata{
				AssignmentID: f.assignment.ID,
				StudentID:    owner,
				Timestamp:    base.Add(time.Duration(i) * time.Minute),
			},
		}, nil)
	}
	f.assignmentRepo.On("GetByID", mock.Anything, f.assignment.ID).Return(f.assignment, nil)
	f.courseRepo.On("GetByID", mock.Anything, courseID).
		Return(&domainCourse.Course{ID: courseID, InstructorID: f.instructor.ID}, nil)
	return f
}

func (f *submissionsFixture) app(caller *identity.Identity) *fiber.App {
	lister := appSubmission.NewLister(testLogger(), f.assignmentRepo, f.courseRepo, f.blobs)
	app := newTestApp()
	app.Get("/assignments/:id/submissions", as(caller), NewListSubmissionsHandler(lister).Handle)
	return app
}

func (f *submissionsFixture) get(t *testing.T, app *fiber.App, query string) (*http.Response, appSubmission.Page) {
	t.Helper()
	url := fmt.Sprintf("/assignments/%s/submissions%s", f.assignment.ID, query)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
	require.NoError(t, err)
	var page appSubmission.Page
	if resp.StatusCode == fiber.StatusOK {
		readJSON(t, resp, &page)
	}
	return resp, page
}

func TestListSubmissionsHandler_Pages(t *testing.T) {
	f := newSubmissionsFixture()
	app := f.app(f.instructor)

	for query, want := range map[string]struct{ page, items int }{
		"":         {1, 5},
		"?page=2":  {2, 5},
		"?page=3":  {3, 2},
		"?page=0":  {1, 5},
		"?page=99": {3, 2},
		"?page=x":  {1, 5},
	} {
		resp, page := f.get(t, app, query)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, query)
		assert.Equal(t, want.page, page.Page, query)
		assert.Len(t, page.Submissions, want.items, query)
		assert.Equal(t, 3, page.TotalPages, query)
		assert.Equal(t, 12, page.Count, query)
		assert.Equal(t, 5, page.PageSize, query)
	}
}

func TestListSubmissionsHandler_StudentFilter(t *testing.T) {
	f := newSubmissionsFixture()
	app := f.app(f.instructor)

	resp, page := f.get(t, app, "?studentId="+f.student.String())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 3, page.Count)
	require.Len(t, page.Submissions, 3)
	for _, s := range page.Submissions {
		assert.Equal(t, f.student, s.StudentID)
		assert.Contains(t, s.URL, "media/submissions/")
	}

	resp, page = f.get(t, app, "?page=4&studentId="+f.student.String())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Submissions, 3)
}

func TestListSubmissionsHandler_Errors(t *testing.T) {
	f := newSubmissionsFixture()

	resp, _ := f.get(t, f.app(f.instructor), "?studentId=nope")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = f.get(t, f.app(&identity.Identity{ID: uuid.New(), Role: identity.RoleInstructor}), "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	missing := uuid.New()
	f.assignmentRepo.On("GetByID", mock.Anything, missing).Return(nil, domain.NewNotFoundError("Assignment", missing))
	url := fmt.Sprintf("/assignments/%s/submissions", missing)
	resp, err := f.app(f.instructor).Test(httptest.NewRequest(http.MethodGet, url, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var body map[string]string
	readJSON(t, resp, &body)
	assert.Equal(t, NotFoundMessage(url), body["error"])
}

func multipartUpload(t *testing.T, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="answers.txt"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCreateSubmissionHandler(t *testing.T) {
	student := &identity.Identity{ID: uuid.New(), Role: identity.RoleStudent}
	courseID := uuid.New()
	a := &domainAssignment.Assignment{ID: uuid.New(), CourseID: courseID}

	assignmentRepo := new(assignmentMocks.Repository)
	courseRepo := new(courseMocks.Repository)
	blobs := new(submissionMocks.BlobStore)
	assignmentRepo.On("GetByID", mock.Anything, a.ID).Return(a, nil)
	courseRepo.On("GetByID", mock.Anything, courseID).
		Return(&domainCourse.Course{ID: courseID, Students: types.UUIDArray{student.ID}}, nil)

	stored := uuid.New()
	blobs.On("Upload", mock.Anything, "answers.txt", "text/plain", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			body, _ := io.ReadAll(args.Get(4).(io.Reader))
			assert.Equal(t, "forty two", string(body))
		}).
		Return(stored, nil)
	assignmentRepo.On("AppendSubmission", mock.Anything, a.ID, stored).Return(nil)

	creator := appSubmission.NewCreator(testLogger(), assignmentRepo, courseRepo, blobs)
	app := newTestApp()
	app.Post("/assignments/:id/submissions", as(student), NewCreateSubmissionHandler(testLogger(), creator).Handle)
	url := fmt.Sprintf("/assignments/%s/submissions", a.ID)

	body, ct := multipartUpload(t, "text/plain", "forty two")
	req := httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created map[string]string
	readJSON(t, resp, &created)
	assert.Equal(t, stored.String(), created["id"])
	assignmentRepo.AssertExpectations(t)

	body, ct = multipartUpload(t, "image/png", "png")
	req = httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", ct)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, url, nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetRosterHandler(t *testing.T) {
	instructor := &identity.Identity{ID: uuid.New(), Role: identity.RoleInstructor}
	ada := domainUser.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	c := &domainCourse.Course{ID: uuid.New(), InstructorID: instructor.ID, Students: types.UUIDArray{ada.ID}}

	courseRepo := new(courseMocks.Repository)
	userRepo := new(userMocks.Repository)
	courseRepo.On("GetByID", mock.Anything, c.ID).Return(c, nil)
	userRepo.On("GetByIDs", mock.Anything, []uuid.UUID(c.Students)).Return([]domainUser.User{ada}, nil)

	app := newTestApp()
	app.Get("/courses/:id/roster", as(instructor), NewGetRosterHandler(courseRepo, userRepo).Handle)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/courses/"+c.ID.String()+"/roster", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "roster.csv")
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, ada.ID.String()+",Ada,ada@example.com\n", string(body))
}

func TestListCoursesHandler(t *testing.T) {
	courseRepo := new(courseMocks.Repository)
	courseRepo.On("Count", mock.Anything).Return(int64(11), nil)
	courseRepo.On("List", mock.Anything, 10, appCourse.PageSize).Return([]domainCourse.Course{{ID: uuid.New()}}, nil)

	app := newTestApp()
	app.Get("/courses", NewListCoursesHandler(appCourse.NewPager(courseRepo)).Handle)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/courses?page=2", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var page appCourse.Page
	readJSON(t, resp, &page)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "/courses?page=1", page.Links.FirstPage)
	assert.Empty(t, page.Links.NextPage)
}

func TestErrorHandler(t *testing.T) {
	app := newTestApp()
	app.Get("/validation", func(c *fiber.Ctx) error { return domain.NewValidationError("title is required") })
	app.Get("/forbidden", func(c *fiber.Ctx) error { return fmt.Errorf("wrapped: %w", domain.ErrForbidden) })
	app.Get("/conflict", func(c *fiber.Ctx) error { return domain.ErrAlreadyExists })
	app.Get("/boom", func(c *fiber.Ctx) error { return context.DeadlineExceeded })

	cases := map[string]struct {
		status int
		msg    string
	}{
		"/validation": {fiber.StatusBadRequest, "title is required"},
		"/forbidden":  {fiber.StatusForbidden, "Insufficient permissions to access the specified resource"},
		"/conflict":   {fiber.StatusConflict, "Resource already exists"},
		"/boom":       {fiber.StatusInternalServerError, ServerErrorMessage},
		"/missing":    {fiber.StatusNotFound, "Requested resource /missing does not exist"},
	}
	for path, want := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, want.status, resp.StatusCode, path)
		var body map[string]string
		readJSON(t, resp, &body)
		assert.Equal(t, want.msg, body["error"], path)
	}
}

func TestCreateUserHandler_RejectsOverlongPassword(t *testing.T) {
	userRepo := new(userMocks.Repository)
	app := newTestApp()
	app.Post("/users", NewCreateUserHandler(testLogger(), appUser.NewRegistrar(testLogger(), userRepo, nil, nil)).Handle)

	payload, err := json.Marshal(map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": strings.Repeat("p", 80),
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(payload))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	readJSON(t, resp, &body)
	assert.Equal(t, "password must be at most 72 bytes", body["error"])
	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}
