package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements blogbliss.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// Schema holds the DDL for the two collections. The unique index on email
// backs duplicate-registration rejection.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id          UUID PRIMARY KEY,
    name        TEXT NOT NULL,
    email       TEXT NOT NULL UNIQUE,
    password    TEXT NOT NULL,
    avatar      TEXT NOT NULL DEFAULT '',
    posts       INTEGER NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS posts (
    id          UUID PRIMARY KEY,
    title       TEXT NOT NULL,
    category    TEXT NOT NULL,
    description TEXT NOT NULL,
    thumbnail   TEXT NOT NULL,
    creator     UUID NOT NULL REFERENCES users (id),
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS posts_category_idx ON posts (category, created_at DESC);
CREATE INDEX IF NOT EXISTS posts_creator_idx ON posts (creator, created_at DESC);
`

// EnsureSchema creates the tables if they do not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, Schema)
	if err != nil {
		return r.handlePostgresError("ensure schema", err)
	}
	return nil
}

// handlePostgresError maps database errors onto domain errors.
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "email") {
				return blogbliss.ErrEmailExists
			}
			return fmt.Errorf("duplicate entry in %s: %s", operation, pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found in %s", operation)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *blogbliss.User) error {
	query := `
		INSERT INTO users (id, name, email, password, avatar, posts, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		user.ID, user.Name, strings.ToLower(user.Email), user.Password,
		user.Avatar, user.Posts, user.CreatedAt, user.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create user", err)
	}

	return nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*blogbliss.User, error) {
	query := `
		SELECT id, name, email, password, avatar, posts, created_at, updated_at
		FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blogbliss.ErrUserNotFound
		}
		return nil, r.handlePostgresError("get user", err)
	}

	return user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*blogbliss.User, error) {
	query := `
		SELECT id, name, email, password, avatar, posts, created_at, updated_at
		FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blogbliss.ErrUserNotFound
		}
		return nil, r.handlePostgresError("get user by email", err)
	}

	return user, nil
}

func (r *Repository) UpdateUser(ctx context.Context, user *blogbliss.User) error {
	query := `
		UPDATE users SET
			name = $2, email = $3, password = $4, avatar = $5, updated_at = $6
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		user.ID, user.Name, strings.ToLower(user.Email), user.Password,
		user.Avatar, user.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return blogbliss.ErrUserNotFound
	}

	return nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]*blogbliss.User, error) {
	query := `
		SELECT id, name, email, password, avatar, posts, created_at, updated_at
		FROM users ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list users", err)
	}
	defer rows.Close()

	var users []*blogbliss.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, r.handlePostgresError("list users", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *Repository) AdjustPostCount(ctx context.Context, userID uuid.UUID, delta int) error {
	// Single-statement adjustment; the document store's per-row atomicity
	// keeps concurrent increments from losing updates.
	query := `UPDATE users SET posts = posts + $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, userID, delta)
	if err != nil {
		return r.handlePostgresError("adjust post count", err)
	}
	if tag.RowsAffected() == 0 {
		return blogbliss.ErrUserNotFound
	}

	return nil
}

// Post operations

func (r *Repository) CreatePost(ctx context.Context, post *blogbliss.Post) error {
	query := `
		INSERT INTO posts (id, title, category, description, thumbnail, creator, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		post.ID, post.Title, string(post.Category), post.Description,
		post.Thumbnail, post.Creator, post.CreatedAt, post.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create post", err)
	}

	return nil
}

func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*blogbliss.Post, error) {
	query := `
		SELECT id, title, category, description, thumbnail, creator, created_at, updated_at
		FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blogbliss.ErrPostNotFound
		}
		return nil, r.handlePostgresError("get post", err)
	}

	return post, nil
}

func (r *Repository) UpdatePost(ctx context.Context, post *blogbliss.Post) error {
	query := `
		UPDATE posts SET
			title = $2, category = $3, description = $4, thumbnail = $5, updated_at = $6
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		post.ID, post.Title, string(post.Category), post.Description,
		post.Thumbnail, post.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("update post", err)
	}
	if tag.RowsAffected() == 0 {
		return blogbliss.ErrPostNotFound
	}

	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return blogbliss.ErrPostNotFound
	}

	return nil
}

func (r *Repository) ListPosts(ctx context.Context) ([]*blogbliss.Post, error) {
	query := `
		SELECT id, title, category, description, thumbnail, creator, created_at, updated_at
		FROM posts ORDER BY updated_at DESC`

	return r.queryPosts(ctx, "list posts", query)
}

func (r *Repository) ListPostsByCategory(ctx context.Context, category blogbliss.Category) ([]*blogbliss.Post, error) {
	query := `
		SELECT id, title, category, description, thumbnail, creator, created_at, updated_at
		FROM posts WHERE category = $1 ORDER BY created_at DESC`

	return r.queryPosts(ctx, "list posts by category", query, string(category))
}

func (r *Repository) ListPostsByCreator(ctx context.Context, creatorID uuid.UUID) ([]*blogbliss.Post, error) {
	query := `
		SELECT id, title, category, description, thumbnail, creator, created_at, updated_at
		FROM posts WHERE creator = $1 ORDER BY created_at DESC`

	return r.queryPosts(ctx, "list posts by creator", query, creatorID)
}

func (r *Repository) queryPosts(ctx context.Context, operation, query string, args ...interface{}) ([]*blogbliss.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError(operation, err)
	}
	defer rows.Close()

	var posts []*blogbliss.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, r.handlePostgresError(operation, err)
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

func scanUser(row pgx.Row) (*blogbliss.User, error) {
	var user blogbliss.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password,
		&user.Avatar, &user.Posts, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func scanPost(row pgx.Row) (*blogbliss.Post, error) {
	var post blogbliss.Post
	var category string
	err := row.Scan(&post.ID, &post.Title, &category, &post.Description,
		&post.Thumbnail, &post.Creator, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	post.Category = blogbliss.Category(category)
	return &post, nil
}
