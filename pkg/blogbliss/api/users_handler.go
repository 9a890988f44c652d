package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

// UsersHandler handles account API endpoints
type UsersHandler struct {
	service blogbliss.Service
	auth    *jwtauth.JWTAuth
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(service blogbliss.Service, auth *jwtauth.JWTAuth) *UsersHandler {
	return &UsersHandler{service: service, auth: auth}
}

// Routes returns the router for user endpoints
func (h *UsersHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Get("/authors", h.GetAuthors)

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(h.auth))
		r.Use(jwtauth.Authenticator)
		r.Get("/{id}", h.GetUser)
		r.Post("/change-avatar", h.ChangeAvatar)
		r.Patch("/edit-user", h.EditUser)
	})

	return r
}

// Register creates a new account
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req blogbliss.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request", "error", err)
		writeError(w, r, &blogbliss.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, user)
}

// Login verifies credentials and issues a bearer token
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req blogbliss.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request", "error", err)
		writeError(w, r, &blogbliss.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	session, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, session)
}

// GetUser returns a user profile without credentials
func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, &blogbliss.ValidationError{Field: "id", Reason: "must be a valid user id"})
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, user)
}

// GetAuthors lists all registered users without credentials
func (h *UsersHandler) GetAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.service.ListAuthors(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, authors)
}

// ChangeAvatar replaces the requester's avatar from a multipart upload
func (h *UsersHandler) ChangeAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := requesterID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	upload, err := readFilePart(r, "avatar", blogbliss.MaxAvatarBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.service.ChangeAvatar(r.Context(), blogbliss.ChangeAvatarRequest{
		UserID:      userID,
		Data:        upload.Data,
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, user)
}

// EditUser updates the requester's profile after re-verifying the current
// password
func (h *UsersHandler) EditUser(w http.ResponseWriter, r *http.Request) {
	userID, err := requesterID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req blogbliss.EditUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request", "error", err)
		writeError(w, r, &blogbliss.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	req.UserID = userID

	user, err := h.service.EditUser(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, user)
}

const multipartMemoryLimit = 8 << 20

// readFilePart reads one uploaded file from a multipart form. The size cap
// is enforced from the part header before the payload is read, so an
// oversized upload is rejected before any store is touched.
func readFilePart(r *http.Request, field string, maxBytes int64) (*blogbliss.AssetUpload, error) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, blogbliss.ErrAssetMissing
		}
		return nil, &blogbliss.ValidationError{Field: field, Reason: "multipart form required"}
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, blogbliss.ErrAssetMissing
	}
	defer file.Close()

	if header.Size > maxBytes {
		return nil, blogbliss.ErrAssetTooLarge
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &blogbliss.AssetUpload{
		Data:        data,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		MaxBytes:    maxBytes,
	}, nil
}
