package blogbliss

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// BlobStore defines the interface for object storage backends
type BlobStore interface {
	// Upload uploads content directly
	Upload(ctx context.Context, objectKey string, reader io.Reader) error

	// UploadWithParams uploads content with additional parameters
	UploadWithParams(ctx context.Context, reader io.Reader, params UploadParams) error

	// Download downloads content directly
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// Delete deletes content. Deleting a missing key returns ErrObjectNotFound.
	Delete(ctx context.Context, objectKey string) error

	// GetObjectMeta retrieves metadata for an object
	GetObjectMeta(ctx context.Context, objectKey string) (*ObjectMeta, error)

	// GetPublicURL returns a displayable URL for an object
	GetPublicURL(ctx context.Context, objectKey string) (string, error)
}

// Repository defines the interface for user and post persistence
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	ListUsers(ctx context.Context) ([]*User, error)

	// AdjustPostCount shifts a user's denormalized post counter by delta
	// as a single per-document update.
	AdjustPostCount(ctx context.Context, userID uuid.UUID, delta int) error

	// Post operations
	CreatePost(ctx context.Context, post *Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*Post, error)
	UpdatePost(ctx context.Context, post *Post) error
	DeletePost(ctx context.Context, id uuid.UUID) error
	ListPosts(ctx context.Context) ([]*Post, error)
	ListPostsByCategory(ctx context.Context, category Category) ([]*Post, error)
	ListPostsByCreator(ctx context.Context, creatorID uuid.UUID) ([]*Post, error)
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues signed login tokens carrying the user's id and name.
type TokenIssuer interface {
	Issue(userID uuid.UUID, name string, ttl time.Duration) (string, error)
}
