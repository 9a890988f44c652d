package api

import (
	"errors"
	"net/http"

	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

// PostsHandler handles post API endpoints
type PostsHandler struct {
	service blogbliss.Service
	auth    *jwtauth.JWTAuth
}

// NewPostsHandler creates a new posts handler
func NewPostsHandler(service blogbliss.Service, auth *jwtauth.JWTAuth) *PostsHandler {
	return &PostsHandler{service: service, auth: auth}
}

// Routes returns the router for post endpoints
func (h *PostsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListPosts)
	r.Get("/categories/{category}", h.ListByCategory)
	r.Get("/users/{id}", h.ListByCreator)

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(h.auth))
		r.Use(jwtauth.Authenticator)
		r.Post("/", h.CreatePost)
		r.Get("/{id}", h.GetPost)
		r.Patch("/{id}", h.EditPost)
		r.Delete("/{id}", h.DeletePost)
	})

	return r
}

// CreatePost creates a post from a multipart form carrying the text fields
// and the mandatory thumbnail file
func (h *PostsHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	creatorID, err := requesterID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	upload, err := readFilePart(r, "thumbnail", blogbliss.MaxThumbnailBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.service.CreatePost(r.Context(), blogbliss.CreatePostRequest{
		RequesterID: creatorID,
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Thumbnail:   *upload,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, post)
}

// ListPosts lists all posts, most recently updated first
func (h *PostsHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, posts)
}

// GetPost returns a single post
func (h *PostsHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, &blogbliss.ValidationError{Field: "id", Reason: "must be a valid post id"})
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, post)
}

// ListByCategory lists posts in one category, newest first
func (h *PostsHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPostsByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, posts)
}

// ListByCreator lists one author's posts, newest first
func (h *PostsHandler) ListByCreator(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, &blogbliss.ValidationError{Field: "id", Reason: "must be a valid user id"})
		return
	}

	posts, err := h.service.ListPostsByCreator(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, posts)
}

// EditPost updates a post's text fields and optionally replaces its
// thumbnail. Both paths are owner-only.
func (h *PostsHandler) EditPost(w http.ResponseWriter, r *http.Request) {
	editorID, err := requesterID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, &blogbliss.ValidationError{Field: "id", Reason: "must be a valid post id"})
		return
	}

	// The thumbnail file is optional on edit; anything else wrong with the
	// part is still an error.
	upload, err := readFilePart(r, "thumbnail", blogbliss.MaxThumbnailBytes)
	if err != nil && !errors.Is(err, blogbliss.ErrAssetMissing) {
		writeError(w, r, err)
		return
	}

	post, err := h.service.EditPost(r.Context(), blogbliss.EditPostRequest{
		RequesterID: editorID,
		PostID:      postID,
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Thumbnail:   upload,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, post)
}

// DeletePost removes a post and its thumbnail blob, owner-only
func (h *PostsHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	editorID, err := requesterID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, &blogbliss.ValidationError{Field: "id", Reason: "must be a valid post id"})
		return
	}

	if err := h.service.DeletePost(r.Context(), postID, editorID); err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{"message": "post deleted"})
}
