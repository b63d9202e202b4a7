package submission

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/domain/assignment"
	"github.com/tarpaulin/tarpaulin/pkg/domain/course"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	"github.com/tarpaulin/tarpaulin/pkg/domain/submission"
)

type Downloader interface {
	// Open returns the file content, which the caller must close.
	Open(ctx context.Context, caller *identity.Identity, submissionID uuid.UUID) (io.ReadCloser, *submission.File, error)
}

type downloader struct {
	assignmentRepo assignment.Repository
	courseRepo     course.Repository
	blobs          submission.BlobStore
}

func NewDownloader(assignmentRepo assignment.Repository, courseRepo course.Repository, blobs submission.BlobStore) Downloader {
	return &downloader{assignmentRepo: assignmentRepo, courseRepo: courseRepo, blobs: blobs}
}

func (d *downloader) Open(ctx context.Context, caller *identity.Identity, submissionID uuid.UUID) (io.ReadCloser, *submission.File, error) {
	file, err := d.blobs.Find(ctx, submissionID)
	if err != nil {
		return nil, nil, err
	}
	if !caller.HasRole(identity.RoleStudent) || file.Metadata.StudentID != caller.ID {
		a, err := d.assignmentRepo.GetByID(ctx, file.Metadata.AssignmentID)
		if err != nil {
			if domain.IsNotFoundError(err) {
				return nil, nil, domain.ErrForbidden
			}
			return nil, nil, err
		}
		if err := authorizeCourseStaff(ctx, d.courseRepo, caller, a.CourseID); err != nil {
			return nil, nil, err
		}
	}

	return d.blobs.OpenDownloadStream(ctx, submissionID)
}
