package blogbliss

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrUserNotFound indicates a user was not found
	ErrUserNotFound = errors.New("user not found")

	// ErrPostNotFound indicates a post was not found
	ErrPostNotFound = errors.New("post not found")

	// ErrObjectNotFound indicates a blob was not found in the object store
	ErrObjectNotFound = errors.New("object not found")

	// ErrEmailExists indicates the email is already registered
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidCredentials indicates a failed login. The same error is
	// returned for unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWrongPassword indicates the supplied current password did not match
	ErrWrongPassword = errors.New("current password is incorrect")

	// ErrForbidden indicates a mutation attempted by a non-owner
	ErrForbidden = errors.New("operation not permitted")

	// ErrUploadFailed indicates a blob upload failed
	ErrUploadFailed = errors.New("upload failed")

	// ErrAssetTooLarge indicates an asset payload exceeded its size limit
	ErrAssetTooLarge = errors.New("asset exceeds size limit")

	// ErrAssetMissing indicates a required asset payload was absent
	ErrAssetMissing = errors.New("asset payload required")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AssetError represents an error from an asset-linked entity operation.
type AssetError struct {
	EntityID uuid.UUID
	Op       string
	Key      string
	Err      error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}
