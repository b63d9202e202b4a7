package assignment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, assignment *Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Assignment, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]Assignment, error)
	Update(ctx context.Context, assignment *Assignment) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AppendSubmission adds a submission reference at the end of the list.
	AppendSubmission(ctx context.Context, id uuid.UUID, submissionID uuid.UUID) error
}
