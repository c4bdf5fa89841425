// Package service provides attachment storage backed by a blob bucket.
package service

import (
	"context"
	"io"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"

	apperrors "github.com/allisson/staffdocs/internal/errors"
)

// AttachmentStore persists and retrieves minute attachments by key.
type AttachmentStore interface {
	Save(ctx context.Context, key, contentType string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// blobAttachmentStore implements AttachmentStore on a gocloud blob bucket.
type blobAttachmentStore struct {
	bucket *blob.Bucket
}

// NewBlobAttachmentStore creates an AttachmentStore over an open bucket.
func NewBlobAttachmentStore(bucket *blob.Bucket) AttachmentStore {
	return &blobAttachmentStore{bucket: bucket}
}

// OpenBucket opens the bucket behind a gocloud URL (file://, s3://, gs://...).
func OpenBucket(ctx context.Context, bucketURL string) (*blob.Bucket, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open blob bucket")
	}
	return bucket, nil
}

func (s *blobAttachmentStore) Save(ctx context.Context, key, contentType string, r io.Reader) error {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return apperrors.Wrap(err, "failed to open attachment writer")
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return apperrors.Wrap(err, "failed to write attachment")
	}
	if err := w.Close(); err != nil {
		return apperrors.Wrap(err, "failed to finalize attachment")
	}
	return nil
}

func (s *blobAttachmentStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open attachment")
	}
	return r, nil
}

func (s *blobAttachmentStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		return apperrors.Wrap(err, "failed to delete attachment")
	}
	return nil
}
