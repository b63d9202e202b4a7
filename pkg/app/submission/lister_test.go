package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/domain/assignment"
	assignmentMocks "github.com/tarpaulin/tarpaulin/pkg/domain/assignment/mocks"
	"github.com/tarpaulin/tarpaulin/pkg/domain/course"
	courseMocks "github.com/tarpaulin/tarpaulin/pkg/domain/course/mocks"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	"github.com/tarpaulin/tarpaulin/pkg/domain/submission"
	submissionMocks "github.com/tarpaulin/tarpaulin/pkg/domain/submission/mocks"
	"github.com/tarpaulin/tarpaulin/pkg/infra/database/types"
)

type fakeFiles struct {
	files map[uuid.UUID]*submission.File
	calls int
}

func (f *fakeFiles) find(_ context.Context, id uuid.UUID) (*submission.File, error) {
	f.calls++
	file, ok := f.files[id]
	if !ok {
		return nil, domain.NewNotFoundError(submission.EntityName, id)
	}
	return file, nil
}

// buildRefs creates n stored submissions; owners[i] overrides the student of
// the i-th one.
func buildRefs(assignmentID uuid.UUID, n int, owners map[int]uuid.UUID) ([]uuid.UUID, *fakeFiles) {
	store := &fakeFiles{files: make(map[uuid.UUID]*submission.File)}
	refs := make([]uuid.UUID, 0, n)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		id := uuid.New()
		student := uuid.New()
		if owner, ok := owners[i]; ok {
			student = owner
		}
		store.files[id] = &submission.File{
			ID: id,
			Metadata: submission.Metadata{
				AssignmentID: assignmentID,
				StudentID:    student,
				Timestamp:    base.Add(time.Duration(i) * time.Minute),
			},
		}
		refs = append(refs, id)
	}
	return refs, store
}

func TestPaginate_Unfiltered(t *testing.T) {
	refs, store := buildRefs(uuid.New(), 12, nil)
	ctx := context.Background()

	want := map[int]int{1: 5, 2: 5, 3: 2}
	for page, items := range want {
		got, err := Paginate(ctx, refs, Query{Page: page}, store.find)
		require.NoError(t, err)
		assert.Len(t, got.Submissions, items, "page %d", page)
		assert.Equal(t, page, got.Page)
		assert.Equal(t, 3, got.TotalPages)
		assert.Equal(t, 12, got.Count)
		assert.Equal(t, PageSize, got.PageSize)
	}

	got, err := Paginate(ctx, refs, Query{Page: 3}, store.find)
	require.NoError(t, err)
	assert.Equal(t, "media/submissions/"+refs[10].String(), got.Submissions[0].URL)
	assert.Equal(t, store.files[refs[11]].Metadata.StudentID, got.Submissions[1].StudentID)
}

func TestPaginate_UnfilteredOnlyResolvesWindow(t *testing.T) {
	refs, store := buildRefs(uuid.New(), 12, nil)

	_, err := Paginate(context.Background(), refs, Query{Page: 2}, store.find)
	require.NoError(t, err)
	assert.Equal(t, PageSize, store.calls)
}

func TestPaginate_Clamping(t *testing.T) {
	refs, store := buildRefs(uuid.New(), 12, nil)
	ctx := context.Background()

	got, err := Paginate(ctx, refs, Query{Page: 0}, store.find)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, refs[0].String(), got.Submissions[0].URL[len("media/submissions/"):])

	got, err = Paginate(ctx, refs, Query{Page: 99}, store.find)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Page)
	assert.Len(t, got.Submissions, 2)
}

func TestPaginate_Filtered(t *testing.T) {
	student := uuid.New()
	refs, store := buildRefs(uuid.New(), 12, map[int]uuid.UUID{1: student, 6: student, 11: student})

	got, err := Paginate(context.Background(), refs, Query{Page: 1, StudentID: &student}, store.find)
	require.NoError(t, err)

	assert.Len(t, got.Submissions, 3)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 1, got.TotalPages)
	assert.Equal(t, 3, got.Count)
	for _, s := range got.Submissions {
		assert.Equal(t, student, s.StudentID)
	}
	assert.Equal(t, 12, store.calls)
}

func TestPaginate_FilteredReclampsAgainstEffectiveCount(t *testing.T) {
	student := uuid.New()
	refs, store := buildRefs(uuid.New(), 12, map[int]uuid.UUID{0: student, 3: student, 5: student})

	// page 3 exists for the raw list but not for three matches
	got, err := Paginate(context.Background(), refs, Query{Page: 3, StudentID: &student}, store.find)
	require.NoError(t, err)

	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 1, got.TotalPages)
	assert.Len(t, got.Submissions, 3)
}

func TestPaginate_FilteredSecondPage(t *testing.T) {
	student := uuid.New()
	owners := map[int]uuid.UUID{}
	for _, i := range []int{0, 1, 2, 4, 6, 8, 10} {
		owners[i] = student
	}
	refs, store := buildRefs(uuid.New(), 12, owners)

	got, err := Paginate(context.Background(), refs, Query{Page: 2, StudentID: &student}, store.find)
	require.NoError(t, err)

	assert.Equal(t, 7, got.Count)
	assert.Equal(t, 2, got.TotalPages)
	assert.Equal(t, 2, got.Page)
	require.Len(t, got.Submissions, 2)
	assert.Equal(t, "media/submissions/"+refs[8].String(), got.Submissions[0].URL)
	assert.Equal(t, "media/submissions/"+refs[10].String(), got.Submissions[1].URL)
}

func TestPaginate_FilteredNoMatches(t *testing.T) {
	refs, store := buildRefs(uuid.New(), 4, nil)
	stranger := uuid.New()

	got, err := Paginate(context.Background(), refs, Query{Page: 2, StudentID: &stranger}, store.find)
	require.NoError(t, err)

	assert.Empty(t, got.Submissions)
	assert.NotNil(t, got.Submissions)
	assert.Equal(t, 0, got.Count)
	assert.Equal(t, 0, got.TotalPages)
	assert.Equal(t, 1, got.Page)
}

func TestPaginate_DanglingReferences(t *testing.T) {
	student := uuid.New()
	refs, store := buildRefs(uuid.New(), 6, map[int]uuid.UUID{0: student, 1: student, 2: student})
	delete(store.files, refs[1])
	delete(store.files, refs[4])

	got, err := Paginate(context.Background(), refs, Query{Page: 1, StudentID: &student}, store.find)
	require.NoError(t, err)
	assert.Len(t, got.Submissions, 2)
	assert.Equal(t, 2, got.Count)

	// unfiltered pages are not backfilled and count stays the reference count
	got, err = Paginate(context.Background(), refs, Query{Page: 1}, store.find)
	require.NoError(t, err)
	assert.Len(t, got.Submissions, 3)
	assert.Equal(t, 6, got.Count)
	assert.Equal(t, 2, got.TotalPages)
}

func TestPaginate_Empty(t *testing.T) {
	store := &fakeFiles{files: map[uuid.UUID]*submission.File{}}

	got, err := Paginate(context.Background(), nil, Query{Page: 4}, store.find)
	require.NoError(t, err)

	assert.Equal(t, &Page{
		Submissions: []submission.Summary{},
		Page:        1,
		TotalPages:  0,
		PageSize:    PageSize,
		Count:       0,
	}, got)
}

func TestPaginate_StoreFailure(t *testing.T) {
	refs := []uuid.UUID{uuid.New()}
	failing := func(context.Context, uuid.UUID) (*submission.File, error) {
		return nil, errors.New("connection reset by peer")
	}

	_, err := Paginate(context.Background(), refs, Query{Page: 1}, failing)
	assert.ErrorContains(t, err, "connection reset by peer")
}

func newLister(assignmentRepo *assignmentMocks.Repository, courseRepo *courseMocks.Repository, blobs *submissionMocks.BlobStore) Lister {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewLister(logger, assignmentRepo, courseRepo, blobs)
}

func TestLister_List(t *testing.T) {
	instructorID := uuid.New()
	courseID := uuid.New()
	subID := uuid.New()
	a := &assignment.Assignment{ID: uuid.New(), CourseID: courseID, Submissions: types.UUIDArray{subID}}
	file := &submission.File{ID: subID, Metadata: submission.Metadata{AssignmentID: a.ID, StudentID: uuid.New()}}

	t.Run("course instructor", func(t *testing.T) {
		assignmentRepo := new(assignmentMocks.Repository)
		courseRepo := new(courseMocks.Repository)
		blobs := new(submissionMocks.BlobStore)
		assignmentRepo.On("GetByID", mock.Anything, a.ID).Return(a, nil)
		courseRepo.On("GetByID", mock.Anything, courseID).Return(&course.Course{ID: courseID, InstructorID: instructorID}, nil)
		blobs.On("Find", mock.Anything, subID).Return(file, nil)

		caller := &identity.Identity{ID: instructorID, Role: identity.RoleInstructor}
		page, err := newLister(assignmentRepo, courseRepo, blobs).List(context.Background(), caller, a.ID, Query{Page: 1})

		require.NoError(t, err)
		assert.Equal(t, 1, page.Count)
		assignmentRepo.AssertExpectations(t)
		courseRepo.AssertExpectations(t)
	})

	t.Run("admin skips course lookup", func(t *testing.T) {
		assignmentRepo := new(assignmentMocks.Repository)
		courseRepo := new(courseMocks.Repository)
		blobs := new(submissionMocks.BlobStore)
		assignmentRepo.On("GetByID", mock.Anything, a.ID).Return(a, nil)
		blobs.On("Find", mock.Anything, subID).Return(file, nil)

		caller := &identity.Identity{ID: uuid.New(), Role: identity.RoleAdmin}
		_, err := newLister(assignmentRepo, courseRepo, blobs).List(context.Background(), caller, a.ID, Query{Page: 1})

		require.NoError(t, err)
		courseRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("other instructor", func(t *testing.T) {
		assignmentRepo := new(assignmentMocks.Repository)
		courseRepo := new(courseMocks.Repository)
		blobs := new(submissionMocks.BlobStore)
		assignmentRepo.On("GetByID", mock.Anything, a.ID).Return(a, nil)
		courseRepo.On("GetByID", mock.Anything, courseID).Return(&course.Course{ID: courseID, InstructorID: instructorID}, nil)

		caller := &identity.Identity{ID: uuid.New(), Role: identity.RoleInstructor}
		_, err := newLister(assignmentRepo, courseRepo, blobs).List(context.Background(), caller, a.ID, Query{Page: 1})

		assert.ErrorIs(t, err, domain.ErrForbidden)
		blobs.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	})

	t.Run("student", func(t *testing.T) {
		assignmentRepo := new(assignmentMocks.Repository)
		assignmentRepo.On("GetByID", mock.Anything, a.ID).Return(a, nil)

		caller := &identity.Identity{ID: uuid.New(), Role: identity.RoleStudent}
		_, err := newLister(assignmentRepo, new(courseMocks.Repository), new(submissionMocks.BlobStore)).
			List(context.Background(), caller, a.ID, Query{Page: 1})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown assignment", func(t *testing.T) {
		assignmentRepo := new(assignmentMocks.Repository)
		missing := uuid.New()
		assignmentRepo.On("GetByID", mock.Anything, missing).Return(nil, domain.NewNotFoundError("Assignment", missing))

		caller := &identity.Identity{ID: uuid.New(), Role: identity.RoleAdmin}
		_, err := newLister(assignmentRepo, new(courseMocks.Repository), new(submissionMocks.BlobStore)).
			List(context.Background(), caller, missing, Query{Page: 1})

		assert.True(t, domain.IsNotFoundError(err))
	})
}
