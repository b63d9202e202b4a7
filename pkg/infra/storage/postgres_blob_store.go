package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/domain/submission"
	"gorm.io/gorm"
)

// fileRecord is the submission_files row. Data is only selected when the
// content is streamed.
type fileRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Filename     string
	ContentType  string
	Length       int64
	UploadedAt   time.Time
	AssignmentID uuid.UUID `gorm:"type:uuid;index"`
	StudentID    uuid.UUID `gorm:"type:uuid;index"`
	Timestamp    time.Time
	Grade        *float64
	Data         []byte `gorm:"type:bytea"`
}

func (fileRecord) TableName() string {
	return "submission_files"
}

func (r *fileRecord) toFile() *submission.File {
	return &submission.File{
		ID:          r.ID,
		Filename:    r.Filename,
		ContentType: r.ContentType,
		Length:      r.Length,
		UploadedAt:  r.UploadedAt,
		Metadata: submission.Metadata{
			AssignmentID: r.AssignmentID,
			StudentID:    r.StudentID,
			Timestamp:    r.Timestamp,
			Grade:        r.Grade,
		},
	}
}

var metadataColumns = []string{
	"id", "filename", "content_type", "length", "uploaded_at",
	"assignment_id", "student_id", "timestamp", "grade",
}

type PostgresBlobStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostgresBlobStore(db *gorm.DB) submission.BlobStore {
	return &PostgresBlobStore{db: db, now: time.Now}
}

func (s *PostgresBlobStore) Upload(
	ctx context.Context,
	filename, contentType string,
	meta submission.Metadata,
	r io.Reader,
) (uuid.UUID, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to read upload: %w", err)
	}
	rec := &fileRecord{
		ID:           uuid.New(),
		Filename:     filename,
		ContentType:  contentType,
		Length:       int64(len(data)),
		UploadedAt:   s.now().UTC(),
		AssignmentID: meta.AssignmentID,
		StudentID:    meta.StudentID,
		Timestamp:    meta.Timestamp,
		Grade:        meta.Grade,
		Data:         data,
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to store submission file: %w", err)
	}
	return rec.ID, nil
}

func (s *PostgresBlobStore) Find(ctx context.Context, id uuid.UUID) (*submission.File, error) {
	rec := new(fileRecord)
	err := s.db.WithContext(ctx).Select(metadataColumns).First(rec, "id = ?", id).Error
	if err != nil {
		return nil, s.mapError(err, id)
	}
	return rec.toFile(), nil
}

func (s *PostgresBlobStore) OpenDownloadStream(ctx context.Context, id uuid.UUID) (io.ReadCloser, *submission.File, error) {
	rec := new(fileRecord)
	if err := s.db.WithContext(ctx).First(rec, "id = ?", id).Error; err != nil {
		return nil, nil, s.mapError(err, id)
	}
	return io.NopCloser(bytes.NewReader(rec.Data)), rec.toFile(), nil
}

func (s *PostgresBlobStore) SetGrade(ctx context.Context, id uuid.UUID, grade float64) error {
	res := s.db.WithContext(ctx).
		Model(&fileRecord{}).
		Where("id = ?", id).
		Update("grade", grade)
	if res.Error != nil {
		return fmt.Errorf("failed to set grade: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFoundError(submission.EntityName, id)
	}
	return nil
}

func (s *PostgresBlobStore) mapError(err error, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFoundError(submission.EntityName, id)
	}
	return fmt.Errorf("failed to load submission file: %w", err)
}
