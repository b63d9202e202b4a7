package submission

import (
	"context"
	"io"

	"github.com/google/uuid"
)

const EntityName = "Submission"

// BlobStore persists submission files together with their metadata.
// Find and OpenDownloadStream return a domain not-found error for unknown ids.
type BlobStore interface {
	Upload(ctx context.Context, filename, contentType string, meta Metadata, r io.Reader) (uuid.UUID, error)
	Find(ctx context.Context, id uuid.UUID) (*File, error)
	OpenDownloadStream(ctx context.Context, id uuid.UUID) (io.ReadCloser, *File, error)
	SetGrade(ctx context.Context, id uuid.UUID, grade float64) error
}
