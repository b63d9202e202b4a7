package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/tarpaulin/tarpaulin/pkg/config"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/domain/submission"
)

// S3 user-metadata keys. The SDK returns them lower-cased.
const (
	metaFilename     = "filename"
	metaUploadedAt   = "uploaded-at"
	metaAssignmentID = "assignment-id"
	metaStudentID    = "student-id"
	metaTimestamp    = "timestamp"
	metaGrade        = "grade"
)

// S3API is the subset of the s3 client used by the blob store.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	CopyObject(ctx context.Context, in *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
}

type S3BlobStore struct {
	client S3API
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3Client builds an s3 client from the storage config. Static keys are
// used when both are set, otherwise the default credential chain applies.
func NewS3Client(ctx context.Context, cfg *config.StorageConfig) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func NewS3BlobStore(client S3API, bucket, prefix string) submission.BlobStore {
	return &S3BlobStore{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

func (s *S3BlobStore) key(id uuid.UUID) string {
	return path.Join(s.prefix, "submissions", id.String())
}

func (s *S3BlobStore) Upload(
	ctx context.Context,
	filename, contentType string,
	meta submission.Metadata,
	r io.Reader,
) (uuid.UUID, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to read upload: %w", err)
	}
	id := uuid.New()
	file := &submission.File{
		ID:          id,
		Filename:    filename,
		ContentType: contentType,
		Length:      int64(len(data)),
		UploadedAt:  s.now().UTC(),
		Metadata:    meta,
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(id)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(file.Length),
		ContentType:   aws.String(contentType),
		Metadata:      encodeMetadata(file),
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to put submission object: %w", err)
	}
	return id, nil
}

func (s *S3BlobStore) Find(ctx context.Context, id uuid.UUID) (*submission.File, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		return nil, mapS3Error(err, id)
	}
	return decodeMetadata(id, aws.ToString(out.ContentType), aws.ToInt64(out.ContentLength), out.Metadata)
}

func (s *S3BlobStore) OpenDownloadStream(ctx context.Context, id uuid.UUID) (io.ReadCloser, *submission.File, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		return nil, nil, mapS3Error(err, id)
	}
	file, err := decodeMetadata(id, aws.ToString(out.ContentType), aws.ToInt64(out.ContentLength), out.Metadata)
	if err != nil {
		_ = out.Body.Close()
		return nil, nil, err
	}
	return out.Body, file, nil
}

// SetGrade rewrites the object metadata with an in-place copy.
func (s *S3BlobStore) SetGrade(ctx context.Context, id uuid.UUID, grade float64) error {
	file, err := s.Find(ctx, id)
	if err != nil {
		return err
	}
	file.Metadata.Grade = &grade

	key := s.key(id)
	_, err = s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:            aws.String(s.bucket),
		Key:               aws.String(key),
		CopySource:        aws.String(url.PathEscape(s.bucket) + "/" + (&url.URL{Path: key}).EscapedPath()),
		ContentType:       aws.String(file.ContentType),
		Metadata:          encodeMetadata(file),
		MetadataDirective: types.MetadataDirectiveReplace,
	})
	if err != nil {
		return mapS3Error(err, id)
	}
	return nil
}

func encodeMetadata(f *submission.File) map[string]string {
	m := map[string]string{
		metaFilename:     url.QueryEscape(f.Filename),
		metaUploadedAt:   f.UploadedAt.Format(time.RFC3339Nano),
		metaAssignmentID: f.Metadata.AssignmentID.String(),
		metaStudentID:    f.Metadata.StudentID.String(),
		metaTimestamp:    f.Metadata.Timestamp.UTC().Format(time.RFC3339Nano),
	}
	if f.Metadata.Grade != nil {
		m[metaGrade] = strconv.FormatFloat(*f.Metadata.Grade, 'f', -1, 64)
	}
	return m
}

func decodeMetadata(id uuid.UUID, contentType string, length int64, m map[string]string) (*submission.File, error) {
	file := &submission.File{ID: id, ContentType: contentType, Length: length}
	var err error

	if file.Filename, err = url.QueryUnescape(m[metaFilename]); err != nil {
		file.Filename = m[metaFilename]
	}
	if file.Metadata.AssignmentID, err = uuid.Parse(m[metaAssignmentID]); err != nil {
		return nil, fmt.Errorf("submission %s has invalid assignment id: %w", id, err)
	}
	if file.Metadata.StudentID, err = uuid.Parse(m[metaStudentID]); err != nil {
		return nil, fmt.Errorf("submission %s has invalid student id: %w", id, err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, m[metaTimestamp]); err == nil {
		file.Metadata.Timestamp = ts
	}
	if ts, err := time.Parse(time.RFC3339Nano, m[metaUploadedAt]); err == nil {
		file.UploadedAt = ts
	}
	if raw, ok := m[metaGrade]; ok {
		if grade, err := strconv.ParseFloat(raw, 64); err == nil {
			file.Metadata.Grade = &grade
		}
	}
	return file, nil
}

func mapS3Error(err error, id uuid.UUID) error {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return domain.NewNotFoundError(submission.EntityName, id)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return domain.NewNotFoundError(submission.EntityName, id)
		}
	}
	return fmt.Errorf("s3 request for submission %s failed: %w", id, err)
}
