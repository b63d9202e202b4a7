package submission

import (
	"context"
	"fmt"
	"io"
	"mime"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/domain/assignment"
	"github.com/tarpaulin/tarpaulin/pkg/domain/course"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	"github.com/tarpaulin/tarpaulin/pkg/domain/submission"
	"github.com/tarpaulin/tarpaulin/pkg/infra/prometheus"
)

type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type Creator interface {
	Create(ctx context.Context, caller *identity.Identity, assignmentID uuid.UUID, upload Upload) (uuid.UUID, error)
}

type creator struct {
	logger         *logrus.Logger
	assignmentRepo assignment.Repository
	courseRepo     course.Repository
	blobs          submission.BlobStore
	now            func() time.Time
}

func NewCreator(
	logger *logrus.Logger,
	assignmentRepo assignment.Repository,
	courseRepo course.Repository,
	blobs submission.BlobStore,
) Creator {
	return &creator{
		logger:         logger,
		assignmentRepo: assignmentRepo,
		courseRepo:     courseRepo,
		blobs:          blobs,
		now:            time.Now,
	}
}

// Create stores the file and appends its id to the assignment. The two writes
// are not atomic: a failed append leaves an orphaned blob which is logged.
func (c *creator) Create(ctx context.Context, caller *identity.Identity, assignmentID uuid.UUID, upload Upload) (uuid.UUID, error) {
	if !caller.HasRole(identity.RoleStudent) {
		return uuid.Nil, domain.ErrForbidden
	}

	contentType, _, err := mime.ParseMediaType(upload.ContentType)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("invalid file content type")
	}
	if _, ok := submission.AllowedContentTypes[contentType]; !ok {
		return uuid.Nil, domain.NewValidationError("file type %s is not accepted", contentType)
	}

	a, err := c.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return uuid.Nil, err
	}
	crs, err := c.courseRepo.GetByID(ctx, a.CourseID)
	if err != nil {
		return uuid.Nil, err
	}
	if !crs.IsEnrolled(caller.ID) {
		return uuid.Nil, domain.ErrForbidden
	}

	meta := submission.Metadata{
		AssignmentID: a.ID,
		StudentID:    caller.ID,
		Timestamp:    c.now().UTC(),
	}
	id, err := c.blobs.Upload(ctx, upload.Filename, contentType, meta, upload.Body)
	if err != nil {
		prometheus.SubmissionUploads.WithLabelValues("upload_failed").Inc()
		return uuid.Nil, fmt.Errorf("failed to store submission: %w", err)
	}

	if err := c.assignmentRepo.AppendSubmission(ctx, a.ID, id); err != nil {
		prometheus.SubmissionUploads.WithLabelValues("orphaned").Inc()
		c.logger.WithError(err).WithFields(logrus.Fields{
			"assignment_id": a.ID,
			"submission_id": id,
		}).Error("submission stored but not linked to assignment")
		return uuid.Nil, fmt.Errorf("failed to link submission: %w", err)
	}

	prometheus.SubmissionUploads.WithLabelValues("stored").Inc()
	return id, nil
}
