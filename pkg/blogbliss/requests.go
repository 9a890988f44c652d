package blogbliss

import "github.com/google/uuid"

// RegisterRequest contains parameters for registering a new account.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest contains parameters for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EditUserRequest contains parameters for editing the requester's profile.
// The current password is re-verified before any change is applied.
type EditUserRequest struct {
	UserID             uuid.UUID `json:"-"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	CurrentPassword    string    `json:"currentPassword"`
	NewPassword        string    `json:"newPassword"`
	ConfirmNewPassword string    `json:"confirmNewPassword"`
}

// ChangeAvatarRequest contains parameters for replacing the requester's
// avatar blob.
type ChangeAvatarRequest struct {
	UserID      uuid.UUID
	Data        []byte
	FileName    string
	ContentType string
}

// CreatePostRequest contains parameters for creating a post together with
// its mandatory thumbnail upload.
type CreatePostRequest struct {
	RequesterID uuid.UUID
	Title       string
	Category    string
	Description string
	Thumbnail   AssetUpload
}

// EditPostRequest contains parameters for editing a post. A nil Thumbnail
// leaves the stored blob untouched.
type EditPostRequest struct {
	RequesterID uuid.UUID
	PostID      uuid.UUID
	Title       string
	Category    string
	Description string
	Thumbnail   *AssetUpload
}
