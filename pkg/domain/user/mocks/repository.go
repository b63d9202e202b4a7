package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tarpaulin/tarpaulin/pkg/domain/user"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Save(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *Repository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User) //nolint:errcheck
	return u, args.Error(1)
}

func (m *Repository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User) //nolint:errcheck
	return u, args.Error(1)
}

func (m *Repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]user.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]user.User) //nolint:errcheck
	return users, args.Error(1)
}

func (m *Repository) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]user.User) //nolint:errcheck
	return users, args.Error(1)
}
