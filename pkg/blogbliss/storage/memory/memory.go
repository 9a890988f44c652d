package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss"
)

// Backend is an in-memory implementation of the blogbliss.BlobStore interface
type Backend struct {
	mu              sync.RWMutex
	objects         map[string][]byte
	objectsMimeType map[string]string
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		objects:         make(map[string][]byte),
		objectsMimeType: make(map[string]string),
	}
}

// Upload uploads content directly
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[objectKey] = data
	if _, exists := b.objectsMimeType[objectKey]; !exists {
		b.objectsMimeType[objectKey] = "application/octet-stream"
	}
	return nil
}

// UploadWithParams uploads content with parameters
func (b *Backend) UploadWithParams(ctx context.Context, reader io.Reader, params blogbliss.UploadParams) error {
	if err := b.Upload(ctx, params.ObjectKey, reader); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objectsMimeType[params.ObjectKey] = params.MimeType
	return nil
}

// Download downloads content directly
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, blogbliss.ErrObjectNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete deletes content
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[objectKey]; !exists {
		return blogbliss.ErrObjectNotFound
	}

	delete(b.objects, objectKey)
	delete(b.objectsMimeType, objectKey)
	return nil
}

// GetObjectMeta retrieves metadata for an object in memory
func (b *Backend) GetObjectMeta(ctx context.Context, objectKey string) (*blogbliss.ObjectMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, blogbliss.ErrObjectNotFound
	}

	mimeType := b.objectsMimeType[objectKey]
	meta := &blogbliss.ObjectMeta{
		Key:         objectKey,
		Size:        int64(len(data)),
		ContentType: mimeType,
		Metadata:    map[string]string{"mime_type": mimeType},
	}

	return meta, nil
}

// GetPublicURL returns a synthetic URL for an object. In-memory blobs are
// not reachable over the network; the URL only has to be stable.
func (b *Backend) GetPublicURL(ctx context.Context, objectKey string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, exists := b.objects[objectKey]; !exists {
		return "", blogbliss.ErrObjectNotFound
	}
	return fmt.Sprintf("memory://%s", objectKey), nil
}
