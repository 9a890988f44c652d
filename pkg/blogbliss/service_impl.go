package blogbliss

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss/objectkey"
	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repository Repository
	store      BlobStore
	assets     *AssetManager
	hasher     PasswordHasher
	tokens     TokenIssuer
	keys       objectkey.Generator
	logger     *slog.Logger
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the blob storage backend
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.store = store
	}
}

// WithPasswordHasher sets the password hasher
func WithPasswordHasher(hasher PasswordHasher) Option {
	return func(s *service) {
		s.hasher = hasher
	}
}

// WithTokenIssuer sets the login token issuer
func WithTokenIssuer(tokens TokenIssuer) Option {
	return func(s *service) {
		s.tokens = tokens
	}
}

// WithKeyGenerator sets the blob key generation strategy
func WithKeyGenerator(keys objectkey.Generator) Option {
	return func(s *service) {
		s.keys = keys
	}
}

// WithLogger sets the logger for the service
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.store == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if s.hasher == nil {
		return nil, fmt.Errorf("password hasher is required")
	}
	if s.tokens == nil {
		return nil, fmt.Errorf("token issuer is required")
	}
	if s.keys == nil {
		s.keys = objectkey.NewShardedGenerator()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.assets = NewAssetManager(s.store, s.keys, s.logger)
	return s, nil
}

// Entity adapters

// postEntityStore adapts the posts collection to the AssetManager.
type postEntityStore struct {
	repo Repository
}

func (es postEntityStore) GetEntity(ctx context.Context, id uuid.UUID) (*AssetEntity, error) {
	post, err := es.repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return &AssetEntity{ID: post.ID, OwnerID: post.Creator, Locator: post.Thumbnail}, nil
}

func (es postEntityStore) SetEntityAsset(ctx context.Context, id uuid.UUID, locator string) error {
	post, err := es.repo.GetPost(ctx, id)
	if err != nil {
		return err
	}
	post.Thumbnail = locator
	post.UpdatedAt = time.Now().UTC()
	return es.repo.UpdatePost(ctx, post)
}

func (es postEntityStore) RemoveEntity(ctx context.Context, id uuid.UUID) error {
	return es.repo.DeletePost(ctx, id)
}

// userEntityStore adapts the users collection to the AssetManager.
type userEntityStore struct {
	repo Repository
}

func (es userEntityStore) GetEntity(ctx context.Context, id uuid.UUID) (*AssetEntity, error) {
	user, err := es.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &AssetEntity{ID: user.ID, OwnerID: user.ID, Locator: user.Avatar}, nil
}

func (es userEntityStore) SetEntityAsset(ctx context.Context, id uuid.UUID, locator string) error {
	user, err := es.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}
	user.Avatar = locator
	user.UpdatedAt = time.Now().UTC()
	return es.repo.UpdateUser(ctx, user)
}

// User operations

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return nil, &ValidationError{Field: "request", Reason: "fill in all fields"}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repository.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	if len(strings.TrimSpace(req.Password)) < MinPasswordLength {
		return nil, &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", MinPasswordLength)}
	}
	if req.Password != req.ConfirmPassword {
		return nil, &ValidationError{Field: "confirmPassword", Reason: "passwords do not match"}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.presentUser(ctx, user), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	if req.Email == "" || req.Password == "" {
		return nil, &ValidationError{Field: "request", Reason: "fill in all fields"}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Unknown email and wrong password report the same error so login
	// cannot be used to enumerate accounts.
	user, err := s.repository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.Compare(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Name, TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &Session{Token: token, ID: user.ID, Name: user.Name}, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.repository.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.presentUser(ctx, user), nil
}

func (s *service) ListAuthors(ctx context.Context) ([]*User, error) {
	users, err := s.repository.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i, user := range users {
		users[i] = s.presentUser(ctx, user)
	}
	return users, nil
}

func (s *service) ChangeAvatar(ctx context.Context, req ChangeAvatarRequest) (*User, error) {
	up := AssetUpload{
		Data:        req.Data,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		MaxBytes:    MaxAvatarBytes,
		KeyPrefix:   "avatars",
	}
	if _, err := s.assets.ReplaceAsset(ctx, userEntityStore{s.repository}, req.UserID, req.UserID, up); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, req.UserID)
}

func (s *service) EditUser(ctx context.Context, req EditUserRequest) (*User, error) {
	if req.Name == "" || req.Email == "" || req.CurrentPassword == "" ||
		req.NewPassword == "" || req.ConfirmNewPassword == "" {
		return nil, &ValidationError{Field: "request", Reason: "fill in all fields"}
	}

	user, err := s.repository.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// The email stays usable for login, so a new one must not belong to a
	// different account.
	if existing, err := s.repository.GetUserByEmail(ctx, email); err == nil {
		if existing.ID != req.UserID {
			return nil, ErrEmailExists
		}
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	if err := s.hasher.Compare(user.Password, req.CurrentPassword); err != nil {
		return nil, ErrWrongPassword
	}
	if len(strings.TrimSpace(req.NewPassword)) < MinPasswordLength {
		return nil, &ValidationError{Field: "newPassword", Reason: fmt.Sprintf("must be at least %d characters", MinPasswordLength)}
	}
	if req.NewPassword != req.ConfirmNewPassword {
		return nil, &ValidationError{Field: "confirmNewPassword", Reason: "new passwords do not match"}
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user.Name = req.Name
	user.Email = email
	user.Password = hash
	user.UpdatedAt = time.Now().UTC()
	if err := s.repository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.presentUser(ctx, user), nil
}

// Post operations

func (s *service) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if req.Title == "" || req.Category == "" || req.Description == "" {
		return nil, &ValidationError{Field: "request", Reason: "fill in all fields and choose a thumbnail"}
	}

	req.Thumbnail.MaxBytes = MaxThumbnailBytes
	req.Thumbnail.KeyPrefix = "thumbnails"

	now := time.Now().UTC()
	post := &Post{
		ID:          uuid.New(),
		Title:       req.Title,
		Category:    NormalizeCategory(req.Category),
		Description: req.Description,
		Creator:     req.RequesterID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.assets.CreateWithAsset(ctx, req.Thumbnail, func(ctx context.Context, locator string) error {
		post.Thumbnail = locator
		return s.repository.CreatePost(ctx, post)
	})
	if err != nil {
		return nil, err
	}

	s.adjustPostCount(ctx, req.RequesterID, 1)
	return s.presentPost(ctx, post), nil
}

func (s *service) GetPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	post, err := s.repository.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.presentPost(ctx, post), nil
}

func (s *service) ListPosts(ctx context.Context) ([]*Post, error) {
	posts, err := s.repository.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	return s.presentPosts(ctx, posts), nil
}

func (s *service) ListPostsByCategory(ctx context.Context, category string) ([]*Post, error) {
	posts, err := s.repository.ListPostsByCategory(ctx, NormalizeCategory(category))
	if err != nil {
		return nil, err
	}
	return s.presentPosts(ctx, posts), nil
}

func (s *service) ListPostsByCreator(ctx context.Context, creatorID uuid.UUID) ([]*Post, error) {
	posts, err := s.repository.ListPostsByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	return s.presentPosts(ctx, posts), nil
}

func (s *service) EditPost(ctx context.Context, req EditPostRequest) (*Post, error) {
	if req.Title == "" || req.Category == "" {
		return nil, &ValidationError{Field: "request", Reason: "fill in all fields"}
	}
	if len(req.Description) < MinDescriptionLength {
		return nil, &ValidationError{Field: "description", Reason: fmt.Sprintf("must be at least %d characters", MinDescriptionLength)}
	}

	es := postEntityStore{s.repository}

	if req.Thumbnail != nil {
		req.Thumbnail.MaxBytes = MaxThumbnailBytes
		req.Thumbnail.KeyPrefix = "thumbnails"
		if _, err := s.assets.ReplaceAsset(ctx, es, req.PostID, req.RequesterID, *req.Thumbnail); err != nil {
			return nil, err
		}
	}

	err := s.assets.UpdateFields(ctx, es, req.PostID, req.RequesterID, func(ctx context.Context) error {
		post, err := s.repository.GetPost(ctx, req.PostID)
		if err != nil {
			return err
		}
		post.Title = req.Title
		post.Category = NormalizeCategory(req.Category)
		post.Description = req.Description
		post.UpdatedAt = time.Now().UTC()
		return s.repository.UpdatePost(ctx, post)
	})
	if err != nil {
		return nil, err
	}

	return s.GetPost(ctx, req.PostID)
}

func (s *service) DeletePost(ctx context.Context, postID, requesterID uuid.UUID) error {
	err := s.assets.DeleteWithAsset(ctx, postEntityStore{s.repository}, postID, requesterID)
	if err != nil {
		return err
	}

	s.adjustPostCount(ctx, requesterID, -1)
	return nil
}

// adjustPostCount maintains the denormalized per-user post counter.
// Counter maintenance is best effort: a failure is logged, never fatal,
// so the counter can drift under partial failure.
func (s *service) adjustPostCount(ctx context.Context, userID uuid.UUID, delta int) {
	if err := s.repository.AdjustPostCount(ctx, userID, delta); err != nil {
		s.logger.Warn("post count adjustment failed", "user_id", userID, "delta", delta, "error", err)
	}
}

func (s *service) presentUser(ctx context.Context, user *User) *User {
	out := *user
	out.Password = ""
	out.AvatarURL = ResolveLocator(ctx, s.store, out.Avatar)
	return &out
}

func (s *service) presentPost(ctx context.Context, post *Post) *Post {
	out := *post
	out.ThumbnailURL = ResolveLocator(ctx, s.store, out.Thumbnail)
	return &out
}

func (s *service) presentPosts(ctx context.Context, posts []*Post) []*Post {
	out := make([]*Post, len(posts))
	for i, post := range posts {
		out[i] = s.presentPost(ctx, post)
	}
	return out
}
