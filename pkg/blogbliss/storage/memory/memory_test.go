package memory

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss"
)

func TestUploadDownload(t *testing.T) {
	ctx := context.Background()
	backend := New()

	err := backend.UploadWithParams(ctx, strings.NewReader("image bytes"), blogbliss.UploadParams{
		ObjectKey: "thumbnails/ab/cd_pic.png",
		MimeType:  "image/png",
	})
	require.NoError(t, err)

	reader, err := backend.Download(ctx, "thumbnails/ab/cd_pic.png")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
}

func TestDownloadMissing(t *testing.T) {
	backend := New()

	_, err := backend.Download(context.Background(), "no/such/key")
	assert.ErrorIs(t, err, blogbliss.ErrObjectNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	backend := New()

	require.NoError(t, backend.Upload(ctx, "avatars/me.png", strings.NewReader("img")))
	require.NoError(t, backend.Delete(ctx, "avatars/me.png"))

	_, err := backend.Download(ctx, "avatars/me.png")
	assert.ErrorIs(t, err, blogbliss.ErrObjectNotFound)

	err = backend.Delete(ctx, "avatars/me.png")
	assert.ErrorIs(t, err, blogbliss.ErrObjectNotFound)
}

func TestGetObjectMeta(t *testing.T) {
	ctx := context.Background()
	backend := New()

	err := backend.UploadWithParams(ctx, strings.NewReader("image bytes"), blogbliss.UploadParams{
		ObjectKey: "thumbnails/pic.jpg",
		MimeType:  "image/jpeg",
	})
	require.NoError(t, err)

	meta, err := backend.GetObjectMeta(ctx, "thumbnails/pic.jpg")
	require.NoError(t, err)
	assert.Equal(t, "thumbnails/pic.jpg", meta.Key)
	assert.Equal(t, int64(len("image bytes")), meta.Size)
	assert.Equal(t, "image/jpeg", meta.ContentType)

	_, err = backend.GetObjectMeta(ctx, "no/such/key")
	assert.ErrorIs(t, err, blogbliss.ErrObjectNotFound)
}

func TestGetPublicURL(t *testing.T) {
	ctx := context.Background()
	backend := New()

	require.NoError(t, backend.Upload(ctx, "avatars/me.png", strings.NewReader("img")))

	url, err := backend.GetPublicURL(ctx, "avatars/me.png")
	require.NoError(t, err)
	assert.Equal(t, "memory://avatars/me.png", url)

	_, err = backend.GetPublicURL(ctx, "no/such/key")
	assert.ErrorIs(t, err, blogbliss.ErrObjectNotFound)
}
