package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss"
	"github.com/go-chi/render"
)

// ErrorResponse is the uniform error body for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// writeError funnels every handler failure through one path: map the
// domain error onto an HTTP status, emit a JSON body, terminate the
// request. Unrecognized errors become opaque 500s so upstream failure
// detail never leaks to clients.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *blogbliss.ValidationError

	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.As(err, &ve):
		status = http.StatusUnprocessableEntity
		message = ve.Error()
	case errors.Is(err, blogbliss.ErrAssetMissing),
		errors.Is(err, blogbliss.ErrAssetTooLarge),
		errors.Is(err, blogbliss.ErrEmailExists),
		errors.Is(err, blogbliss.ErrInvalidCredentials),
		errors.Is(err, blogbliss.ErrWrongPassword):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, blogbliss.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, blogbliss.ErrUserNotFound),
		errors.Is(err, blogbliss.ErrPostNotFound),
		errors.Is(err, blogbliss.ErrObjectNotFound):
		status = http.StatusNotFound
		message = err.Error()
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Message: message})
}
