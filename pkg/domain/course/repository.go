package course

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, course *Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*Course, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int) ([]Course, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateEnrollment(ctx context.Context, id uuid.UUID, add, remove []uuid.UUID) error
	ListIDsByInstructor(ctx context.Context, instructorID uuid.UUID) ([]uuid.UUID, error)
	ListIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error)
}
