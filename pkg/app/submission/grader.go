package submission

import (
	"context"

	"github.com/google/uuid"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/domain/assignment"
	"github.com/tarpaulin/tarpaulin/pkg/domain/course"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	"github.com/tarpaulin/tarpaulin/pkg/domain/submission"
)

type Grader interface {
	Grade(ctx context.Context, caller *identity.Identity, submissionID uuid.UUID, grade float64) error
}

type grader struct {
	assignmentRepo assignment.Repository
	courseRepo     course.Repository
	blobs          submission.BlobStore
}

func NewGrader(assignmentRepo assignment.Repository, courseRepo course.Repository, blobs submission.BlobStore) Grader {
	return &grader{assignmentRepo: assignmentRepo, courseRepo: courseRepo, blobs: blobs}
}

func (g *grader) Grade(ctx context.Context, caller *identity.Identity, submissionID uuid.UUID, grade float64) error {
	if grade < 0 {
		return domain.NewValidationError("grade must not be negative")
	}
	file, err := g.blobs.Find(ctx, submissionID)
	if err != nil {
		return err
	}
	a, err := g.assignmentRepo.GetByID(ctx, file.Metadata.AssignmentID)
	if err != nil {
		return err
	}
	if err := authorizeCourseStaff(ctx, g.courseRepo, caller, a.CourseID); err != nil {
		return err
	}
	return g.blobs.SetGrade(ctx, submissionID, grade)
}
