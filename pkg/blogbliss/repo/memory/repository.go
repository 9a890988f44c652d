package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss"
	"github.com/google/uuid"
)

// Repository implements blogbliss.Repository using in-memory storage
type Repository struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]*blogbliss.User
	usersByEmail map[string]uuid.UUID
	posts        map[uuid.UUID]*blogbliss.Post
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		users:        make(map[uuid.UUID]*blogbliss.User),
		usersByEmail: make(map[string]uuid.UUID),
		posts:        make(map[uuid.UUID]*blogbliss.Post),
	}
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *blogbliss.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := r.usersByEmail[email]; exists {
		return blogbliss.ErrEmailExists
	}

	// Store a copy to avoid external modifications
	userCopy := *user
	userCopy.Email = email
	r.users[user.ID] = &userCopy
	r.usersByEmail[email] = user.ID

	return nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*blogbliss.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, blogbliss.ErrUserNotFound
	}
	userCopy := *user
	return &userCopy, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*blogbliss.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.usersByEmail[strings.ToLower(email)]
	if !exists {
		return nil, blogbliss.ErrUserNotFound
	}
	userCopy := *r.users[id]
	return &userCopy, nil
}

func (r *Repository) UpdateUser(ctx context.Context, user *blogbliss.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.users[user.ID]
	if !exists {
		return blogbliss.ErrUserNotFound
	}

	email := strings.ToLower(user.Email)
	if other, taken := r.usersByEmail[email]; taken && other != user.ID {
		return blogbliss.ErrEmailExists
	}
	if current.Email != email {
		delete(r.usersByEmail, current.Email)
		r.usersByEmail[email] = user.ID
	}

	userCopy := *user
	userCopy.Email = email
	r.users[user.ID] = &userCopy

	return nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]*blogbliss.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*blogbliss.User, 0, len(r.users))
	for _, user := range r.users {
		userCopy := *user
		result = append(result, &userCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *Repository) AdjustPostCount(ctx context.Context, userID uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[userID]
	if !exists {
		return blogbliss.ErrUserNotFound
	}
	user.Posts += delta

	return nil
}

// Post operations

func (r *Repository) CreatePost(ctx context.Context, post *blogbliss.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	postCopy := *post
	r.posts[post.ID] = &postCopy

	return nil
}

func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*blogbliss.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, exists := r.posts[id]
	if !exists {
		return nil, blogbliss.ErrPostNotFound
	}
	postCopy := *post
	return &postCopy, nil
}

func (r *Repository) UpdatePost(ctx context.Context, post *blogbliss.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[post.ID]; !exists {
		return blogbliss.ErrPostNotFound
	}

	postCopy := *post
	r.posts[post.ID] = &postCopy

	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[id]; !exists {
		return blogbliss.ErrPostNotFound
	}
	delete(r.posts, id)

	return nil
}

func (r *Repository) ListPosts(ctx context.Context) ([]*blogbliss.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.collect(func(*blogbliss.Post) bool { return true })

	// Full listing is sorted by recency of update
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})

	return result, nil
}

func (r *Repository) ListPostsByCategory(ctx context.Context, category blogbliss.Category) ([]*blogbliss.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.collect(func(p *blogbliss.Post) bool { return p.Category == category })
	sortByCreated(result)

	return result, nil
}

func (r *Repository) ListPostsByCreator(ctx context.Context, creatorID uuid.UUID) ([]*blogbliss.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.collect(func(p *blogbliss.Post) bool { return p.Creator == creatorID })
	sortByCreated(result)

	return result, nil
}

func (r *Repository) collect(keep func(*blogbliss.Post) bool) []*blogbliss.Post {
	var result []*blogbliss.Post
	for _, post := range r.posts {
		if keep(post) {
			postCopy := *post
			result = append(result, &postCopy)
		}
	}
	return result
}

func sortByCreated(posts []*blogbliss.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
