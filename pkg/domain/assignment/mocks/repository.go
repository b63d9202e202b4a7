package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tarpaulin/tarpaulin/pkg/domain/assignment"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Save(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *Repository) GetByID(ctx context.Context, id uuid.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*assignment.Assignment) //nolint:errcheck
	return a, args.Error(1)
}

func (m *Repository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]assignment.Assignment, error) {
	args := m.Called(ctx, courseID)
	list, _ := args.Get(0).([]assignment.Assignment) //nolint:errcheck
	return list, args.Error(1)
}

func (m *Repository) Update(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Repository) AppendSubmission(ctx context.Context, id uuid.UUID, submissionID uuid.UUID) error {
	args := m.Called(ctx, id, submissionID)
	return args.Error(0)
}
