package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/domain/submission"
)

type fakeObject struct {
	data        []byte
	contentType string
	metadata    map[string]string
}

type fakeS3 struct {
	objects map[string]*fakeObject
	copies  []*s3.CopyObjectInput
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string]*fakeObject{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = &fakeObject{data: data, contentType: aws.ToString(in.ContentType), metadata: in.Metadata}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	obj, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{
		ContentType:   aws.String(obj.contentType),
		ContentLength: aws.Int64(int64(len(obj.data))),
		Metadata:      obj.metadata,
	}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	obj, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(obj.data)),
		ContentType:   aws.String(obj.contentType),
		ContentLength: aws.Int64(int64(len(obj.data))),
		Metadata:      obj.metadata,
	}, nil
}

func (f *fakeS3) CopyObject(_ context.Context, in *s3.CopyObjectInput, _ ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	f.copies = append(f.copies, in)
	obj, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	obj.metadata = in.Metadata
	obj.contentType = aws.ToString(in.ContentType)
	return &s3.CopyObjectOutput{}, nil
}

func newTestS3Store(client S3API) *S3BlobStore {
	s := NewS3BlobStore(client, "tarpaulin", "media").(*S3BlobStore)
	s.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestS3BlobStore_UploadFindDownload(t *testing.T) {
	fake := newFakeS3()
	store := newTestS3Store(fake)
	ctx := context.Background()
	meta := submission.Metadata{
		AssignmentID: uuid.New(),
		StudentID:    uuid.New(),
		Timestamp:    time.Date(2025, 3, 1, 11, 59, 0, 0, time.UTC),
	}

	id, err := store.Upload(ctx, "final answers.pdf", "application/pdf", meta, strings.NewReader("%PDF-1.7"))
	require.NoError(t, err)
	assert.Contains(t, fake.objects, "media/submissions/"+id.String())

	file, err := store.Find(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "final answers.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, int64(8), file.Length)
	assert.Equal(t, meta.AssignmentID, file.Metadata.AssignmentID)
	assert.Equal(t, meta.StudentID, file.Metadata.StudentID)
	assert.True(t, meta.Timestamp.Equal(file.Metadata.Timestamp))
	assert.Nil(t, file.Metadata.Grade)

	rc, _, err := store.OpenDownloadStream(ctx, id)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(body))
}

func TestS3BlobStore_SetGrade(t *testing.T) {
	fake := newFakeS3()
	store := newTestS3Store(fake)
	ctx := context.Background()

	id, err := store.Upload(ctx, "a.txt", "text/plain", submission.Metadata{AssignmentID: uuid.New(), StudentID: uuid.New()}, strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.SetGrade(ctx, id, 92.5))

	require.Len(t, fake.copies, 1)
	assert.Equal(t, types.MetadataDirectiveReplace, fake.copies[0].MetadataDirective)
	assert.Equal(t, "tarpaulin/media/submissions/"+id.String(), aws.ToString(fake.copies[0].CopySource))

	file, err := store.Find(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, file.Metadata.Grade)
	assert.Equal(t, 92.5, *file.Metadata.Grade)
	assert.Equal(t, "text/plain", file.ContentType)
}

func TestS3BlobStore_NotFound(t *testing.T) {
	store := newTestS3Store(newFakeS3())
	ctx := context.Background()
	id := uuid.New()

	_, err := store.Find(ctx, id)
	assert.True(t, domain.IsNotFoundError(err))

	_, _, err = store.OpenDownloadStream(ctx, id)
	assert.True(t, domain.IsNotFoundError(err))

	assert.True(t, domain.IsNotFoundError(store.SetGrade(ctx, id, 1)))
}
