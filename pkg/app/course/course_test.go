package course

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	domainCourse "github.com/tarpaulin/tarpaulin/pkg/domain/course"
	courseMocks "github.com/tarpaulin/tarpaulin/pkg/domain/course/mocks"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	domainUser "github.com/tarpaulin/tarpaulin/pkg/domain/user"
)

func TestRequireStaff(t *testing.T) {
	instructor := uuid.New()
	c := &domainCourse.Course{ID: uuid.New(), InstructorID: instructor}
	repo := new(courseMocks.Repository)
	repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)
	ctx := context.Background()

	got, err := RequireStaff(ctx, repo, &identity.Identity{ID: instructor, Role: identity.RoleInstructor}, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	_, err = RequireStaff(ctx, repo, &identity.Identity{ID: uuid.New(), Role: identity.RoleAdmin}, c.ID)
	assert.NoError(t, err)

	_, err = RequireStaff(ctx, repo, &identity.Identity{ID: uuid.New(), Role: identity.RoleInstructor}, c.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = RequireStaff(ctx, repo, &identity.Identity{ID: instructor, Role: identity.RoleStudent}, c.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPager_Page(t *testing.T) {
	repo := new(courseMocks.Repository)
	repo.On("Count", mock.Anything).Return(int64(25), nil)
	repo.On("List", mock.Anything, 10, PageSize).Return(make([]domainCourse.Course, 10), nil)
	repo.On("List", mock.Anything, 20, PageSize).Return(make([]domainCourse.Course, 5), nil)
	p := NewPager(repo)

	page, err := p.Page(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 25, page.Count)
	assert.Len(t, page.Courses, 10)
	assert.Equal(t, Links{
		NextPage:  "/courses?page=3",
		LastPage:  "/courses?page=3",
		PrevPage:  "/courses?page=1",
		FirstPage: "/courses?page=1",
	}, page.Links)

	page, err = p.Page(context.Background(), 40)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Empty(t, page.Links.NextPage)
	assert.Equal(t, "/courses?page=2", page.Links.PrevPage)
}

func TestPager_Empty(t *testing.T) {
	repo := new(courseMocks.Repository)
	repo.On("Count", mock.Anything).Return(int64(0), nil)
	repo.On("List", mock.Anything, 0, PageSize).Return(nil, nil)

	page, err := NewPager(repo).Page(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, page.TotalPages)
	assert.NotNil(t, page.Courses)
	assert.Equal(t, Links{}, page.Links)
}

func TestWriteRoster(t *testing.T) {
	a := domainUser.User{ID: uuid.New(), Name: "Ada Lovelace", Email: "ada@example.com"}
	b := domainUser.User{ID: uuid.New(), Name: "Hopper, Grace", Email: "grace@example.com"}

	var buf bytes.Buffer
	require.NoError(t, WriteRoster(&buf, []domainUser.User{a, b}))

	want := fmt.Sprintf("%s,Ada Lovelace,ada@example.com\n%s,\"Hopper, Grace\",grace@example.com\n", a.ID, b.ID)
	assert.Equal(t, want, buf.String())
}
