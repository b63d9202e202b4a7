package submission

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/domain/assignment"
	"github.com/tarpaulin/tarpaulin/pkg/domain/course"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	"github.com/tarpaulin/tarpaulin/pkg/domain/submission"
	"github.com/tarpaulin/tarpaulin/pkg/pagination"
)

const PageSize = 5

type Page struct {
	Submissions []submission.Summary `json:"submissions"`
	Page        int                  `json:"page"`
	TotalPages  int                  `json:"totalPages"`
	PageSize    int                  `json:"pageSize"`
	Count       int                  `json:"count"`
}

type Query struct {
	Page      int
	StudentID *uuid.UUID
}

// FindFunc resolves a submission reference. It returns a domain not-found
// error for dangling references.
type FindFunc func(ctx context.Context, id uuid.UUID) (*submission.File, error)

// Paginate builds one page over refs.
//
// Without a student filter only the references on the requested page are
// resolved and Count is the number of references. With a filter every
// reference is resolved, Count only includes resolvable references owned by
// the student, and the page is clamped against that count. Dangling
// references are skipped in both modes and never backfilled.
func Paginate(ctx context.Context, refs []uuid.UUID, q Query, find FindFunc) (*Page, error) {
	if q.StudentID == nil {
		return paginateAll(ctx, refs, q.Page, find)
	}
	return paginateFiltered(ctx, refs, q.Page, *q.StudentID, find)
}

func paginateAll(ctx context.Context, refs []uuid.UUID, requested int, find FindFunc) (*Page, error) {
	window := pagination.NewWindow(requested, len(refs), PageSize)
	items := make([]submission.Summary, 0, window.End-window.Start)
	for _, ref := range refs[window.Start:window.End] {
		file, ok, err := resolve(ctx, ref, find)
		if err != nil {
			return nil, err
		}
		if ok {
			items = append(items, file.Summary())
		}
	}
	return &Page{
		Submissions: items,
		Page:        window.Page,
		TotalPages:  window.TotalPages,
		PageSize:    PageSize,
		Count:       len(refs),
	}, nil
}

func paginateFiltered(ctx context.Context, refs []uuid.UUID, requested int, studentID uuid.UUID, find FindFunc) (*Page, error) {
	matches := make([]submission.Summary, 0)
	for _, ref := range refs {
		file, ok, err := resolve(ctx, ref, find)
		if err != nil {
			return nil, err
		}
		if ok && file.Metadata.StudentID == studentID {
			matches = append(matches, file.Summary())
		}
	}

	window := pagination.NewWindow(requested, len(matches), PageSize)
	items := make([]submission.Summary, 0, window.End-window.Start)
	items = append(items, matches[window.Start:window.End]...)
	return &Page{
		Submissions: items,
		Page:        window.Page,
		TotalPages:  window.TotalPages,
		PageSize:    PageSize,
		Count:       len(matches),
	}, nil
}

func resolve(ctx context.Context, ref uuid.UUID, find FindFunc) (*submission.File, bool, error) {
	file, err := find(ctx, ref)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to resolve submission %s: %w", ref, err)
	}
	if file == nil {
		return nil, false, nil
	}
	return file, true, nil
}

type Lister interface {
	List(ctx context.Context, caller *identity.Identity, assignmentID uuid.UUID, q Query) (*Page, error)
}

type lister struct {
	logger         *logrus.Logger
	assignmentRepo assignment.Repository
	courseRepo     course.Repository
	blobs          submission.BlobStore
}

func NewLister(
	logger *logrus.Logger,
	assignmentRepo assignment.Repository,
	courseRepo course.Repository,
	blobs submission.BlobStore,
) Lister {
	return &lister{
		logger:         logger,
		assignmentRepo: assignmentRepo,
		courseRepo:     courseRepo,
		blobs:          blobs,
	}
}

func (l *lister) List(ctx context.Context, caller *identity.Identity, assignmentID uuid.UUID, q Query) (*Page, error) {
	a, err := l.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := authorizeCourseStaff(ctx, l.courseRepo, caller, a.CourseID); err != nil {
		return nil, err
	}
	page, err := Paginate(ctx, a.Submissions, q, l.blobs.Find)
	if err != nil {
		l.logger.WithError(err).WithField("assignment_id", assignmentID).Error("failed to list submissions")
		return nil, err
	}
	return page, nil
}

// authorizeCourseStaff lets admins and the course instructor through.
func authorizeCourseStaff(ctx context.Context, repo course.Repository, caller *identity.Identity, courseID uuid.UUID) error {
	if caller.IsAdmin() {
		return nil
	}
	if !caller.HasRole(identity.RoleInstructor) {
		return domain.ErrForbidden
	}
	c, err := repo.GetByID(ctx, courseID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return domain.ErrForbidden
		}
		return err
	}
	if !c.IsInstructor(caller.ID) {
		return domain.ErrForbidden
	}
	return nil
}
