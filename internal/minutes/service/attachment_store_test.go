package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestBlobAttachmentStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	store := NewBlobAttachmentStore(bucket)

	err := store.Save(ctx, "minutes/abc.pdf", "application/pdf", strings.NewReader("minute body"))
	require.NoError(t, err)

	r, err := store.Open(ctx, "minutes/abc.pdf")
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "minute body", string(data))
}

func TestBlobAttachmentStore_OpenMissingKey(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	store := NewBlobAttachmentStore(bucket)

	_, err := store.Open(ctx, "minutes/missing.pdf")
	assert.Error(t, err)
}

func TestBlobAttachmentStore_Delete(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	store := NewBlobAttachmentStore(bucket)

	require.NoError(t, store.Save(ctx, "minutes/x.txt", "text/plain", strings.NewReader("x")))
	require.NoError(t, store.Delete(ctx, "minutes/x.txt"))

	_, err := store.Open(ctx, "minutes/x.txt")
	assert.Error(t, err)
}

func TestOpenBucket_File(t *testing.T) {
	ctx := context.Background()

	bucket, err := OpenBucket(ctx, "file://"+t.TempDir())
	require.NoError(t, err)
	defer bucket.Close()

	store := NewBlobAttachmentStore(bucket)
	require.NoError(t, store.Save(ctx, "minutes/f.txt", "text/plain", strings.NewReader("file backed")))

	r, err := store.Open(ctx, "minutes/f.txt")
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "file backed", string(data))
}
