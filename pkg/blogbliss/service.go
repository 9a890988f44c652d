package blogbliss

import (
	"context"

	"github.com/google/uuid"
)

// Service is the main interface for the blogging backend. It owns request
// validation, credential checks, and the asset-linked mutations of posts
// and user avatars; authorization beyond owner-id comparison is left to
// the transport layer.
type Service interface {
	// User operations
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*Session, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	ListAuthors(ctx context.Context) ([]*User, error)
	ChangeAvatar(ctx context.Context, req ChangeAvatarRequest) (*User, error)
	EditUser(ctx context.Context, req EditUserRequest) (*User, error)

	// Post operations
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*Post, error)
	ListPosts(ctx context.Context) ([]*Post, error)
	ListPostsByCategory(ctx context.Context, category string) ([]*Post, error)
	ListPostsByCreator(ctx context.Context, creatorID uuid.UUID) ([]*Post, error)
	EditPost(ctx context.Context, req EditPostRequest) (*Post, error)
	DeletePost(ctx context.Context, postID, requesterID uuid.UUID) error
}
