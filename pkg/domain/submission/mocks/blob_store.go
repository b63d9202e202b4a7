package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tarpaulin/tarpaulin/pkg/domain/submission"
)

type BlobStore struct {
	mock.Mock
}

func (m *BlobStore) Upload(ctx context.Context, filename, contentType string, meta submission.Metadata, r io.Reader) (uuid.UUID, error) {
	args := m.Called(ctx, filename, contentType, meta, r)
	id, _ := args.Get(0).(uuid.UUID) //nolint:errcheck
	return id, args.Error(1)
}

func (m *BlobStore) Find(ctx context.Context, id uuid.UUID) (*submission.File, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*submission.File) //nolint:errcheck
	return f, args.Error(1)
}

func (m *BlobStore) OpenDownloadStream(ctx context.Context, id uuid.UUID) (io.ReadCloser, *submission.File, error) {
	args := m.Called(ctx, id)
	rc, _ := args.Get(0).(io.ReadCloser)     //nolint:errcheck
	f, _ := args.Get(1).(*submission.File) //nolint:errcheck
	return rc, f, args.Error(2)
}

func (m *BlobStore) SetGrade(ctx context.Context, id uuid.UUID, grade float64) error {
	args := m.Called(ctx, id, grade)
	return args.Error(0)
}
