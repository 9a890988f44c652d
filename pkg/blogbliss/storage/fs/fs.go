package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss"
)

// Backend is a filesystem implementation of the blogbliss.BlobStore
// interface. It is the legacy local-upload mode: keys map straight to
// files under the base directory.
type Backend struct {
	baseDir   string
	urlPrefix string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir   string // Base directory for storing files
	URLPrefix string // Optional URL prefix for issued public URLs
}

// New creates a new filesystem storage backend
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{
		baseDir:   config.BaseDir,
		urlPrefix: strings.TrimSuffix(config.URLPrefix, "/"),
	}, nil
}

func (b *Backend) path(objectKey string) string {
	return filepath.Join(b.baseDir, filepath.FromSlash(objectKey))
}

// Upload uploads content directly to the filesystem
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader) error {
	filePath := b.path(objectKey)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// UploadWithParams uploads content with parameters. The filesystem keeps no
// separate content-type record; the type is re-detected on read.
func (b *Backend) UploadWithParams(ctx context.Context, reader io.Reader, params blogbliss.UploadParams) error {
	return b.Upload(ctx, params.ObjectKey, reader)
}

// Download downloads content directly from the filesystem
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	file, err := os.Open(b.path(objectKey))
	if os.IsNotExist(err) {
		return nil, blogbliss.ErrObjectNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete deletes content from the filesystem
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	err := os.Remove(b.path(objectKey))
	if os.IsNotExist(err) {
		return blogbliss.ErrObjectNotFound
	} else if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetObjectMeta retrieves metadata for an object in the filesystem
func (b *Backend) GetObjectMeta(ctx context.Context, objectKey string) (*blogbliss.ObjectMeta, error) {
	filePath := b.path(objectKey)

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, blogbliss.ErrObjectNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	contentType := "application/octet-stream"
	if file, err := os.Open(filePath); err == nil {
		defer file.Close()
		buffer := make([]byte, 512)
		if n, err := file.Read(buffer); err == nil {
			contentType = http.DetectContentType(buffer[:n])
		}
	}

	meta := &blogbliss.ObjectMeta{
		Key:         objectKey,
		Size:        info.Size(),
		ContentType: contentType,
		UpdatedAt:   info.ModTime(),
		Metadata:    map[string]string{"content_type": contentType},
	}

	return meta, nil
}

// GetPublicURL returns the object's URL under the configured prefix. With
// no prefix configured, the bare key is the locator (legacy behavior).
func (b *Backend) GetPublicURL(ctx context.Context, objectKey string) (string, error) {
	if b.urlPrefix == "" {
		return objectKey, nil
	}
	return fmt.Sprintf("%s/%s", b.urlPrefix, objectKey), nil
}
