package blogbliss

import (
	"time"

	"github.com/google/uuid"
)

// Upload limits and validation constants.
const (
	// MaxThumbnailBytes caps post thumbnail uploads (2 MB).
	MaxThumbnailBytes int64 = 2_000_000

	// MaxAvatarBytes caps user avatar uploads (500 KB).
	MaxAvatarBytes int64 = 500_000

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// MinDescriptionLength is the minimum post description length on edit.
	MinDescriptionLength = 12

	// TokenTTL is the lifetime of an issued login token.
	TokenTTL = 24 * time.Hour
)

// Category is the domain type for post categories.
type Category string

// Post category constants (typed).
const (
	CategoryTechnology    Category = "Technology"
	CategoryLifestyle     Category = "Lifestyle"
	CategoryBusiness      Category = "Business"
	CategoryEducation     Category = "Education"
	CategoryEntertainment Category = "Entertainment"
	CategoryScienceNature Category = "Science & Nature"
	CategorySports        Category = "Sports"
	CategoryOpinion       Category = "Opinion & Editorial"
	CategoryDIYCrafts     Category = "DIY & Crafts"
	CategoryFamily        Category = "Family & Parenting"
	CategoryUncategorized Category = "Uncategorized"
)

// Categories lists every valid post category.
var Categories = []Category{
	CategoryTechnology,
	CategoryLifestyle,
	CategoryBusiness,
	CategoryEducation,
	CategoryEntertainment,
	CategoryScienceNature,
	CategorySports,
	CategoryOpinion,
	CategoryDIYCrafts,
	CategoryFamily,
	CategoryUncategorized,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// NormalizeCategory maps an arbitrary category string to a known category,
// falling back to Uncategorized.
func NormalizeCategory(s string) Category {
	c := Category(s)
	if c.Valid() {
		return c
	}
	return CategoryUncategorized
}

// User represents a registered account.
//
// Avatar holds the stored asset locator for the profile picture: an object
// key in the current mode, or a bare filename / full URL carried over from
// the legacy local-upload mode. AvatarURL is computed at read time and never
// persisted.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Avatar    string    `json:"avatar,omitempty"`
	Posts     int       `json:"posts"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Computed field (not persisted - populated by the service layer)
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Post represents a blog post. Thumbnail holds the stored asset locator for
// the post's thumbnail blob; ThumbnailURL is computed at read time.
type Post struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	Creator     uuid.UUID `json:"creator"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Computed field (not persisted - populated by the service layer)
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// Session is the result of a successful login.
type Session struct {
	Token string    `json:"token"`
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
}

// ObjectMeta contains metadata about a blob in storage.
type ObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
	ETag        string
	Metadata    map[string]string
}

// UploadParams contains parameters for uploading a blob.
type UploadParams struct {
	ObjectKey string
	MimeType  string
}
