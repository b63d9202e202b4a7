package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tarpaulin/tarpaulin/pkg/domain/course"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Save(ctx context.Context, c *course.Course) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *Repository) GetByID(ctx context.Context, id uuid.UUID) (*course.Course, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*course.Course) //nolint:errcheck
	return c, args.Error(1)
}

func (m *Repository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	total, _ := args.Get(0).(int64) //nolint:errcheck
	return total, args.Error(1)
}

func (m *Repository) List(ctx context.Context, offset, limit int) ([]course.Course, error) {
	args := m.Called(ctx, offset, limit)
	courses, _ := args.Get(0).([]course.Course) //nolint:errcheck
	return courses, args.Error(1)
}

func (m *Repository) Update(ctx context.Context, c *course.Course) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Repository) UpdateEnrollment(ctx context.Context, id uuid.UUID, add, remove []uuid.UUID) error {
	args := m.Called(ctx, id, add, remove)
	return args.Error(0)
}

func (m *Repository) ListIDsByInstructor(ctx context.Context, instructorID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, instructorID)
	ids, _ := args.Get(0).([]uuid.UUID) //nolint:errcheck
	return ids, args.Error(1)
}

func (m *Repository) ListIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, studentID)
	ids, _ := args.Get(0).([]uuid.UUID) //nolint:errcheck
	return ids, args.Error(1)
}
