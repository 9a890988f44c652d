package blogbliss

import (
	"context"
	"strings"
)

// ResolveLocator turns a stored asset locator into a displayable URL.
//
// Two locator formats coexist in persisted records: object keys written by
// the current storage backends, and values carried over from the legacy
// local-upload mode (bare filenames, or already fully-qualified URLs).
// Full URLs pass through untouched; anything else is handed to the blob
// store for URL issuance, falling back to the raw locator when the backend
// cannot issue one.
func ResolveLocator(ctx context.Context, store BlobStore, locator string) string {
	if locator == "" {
		return ""
	}
	if strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://") {
		return locator
	}
	url, err := store.GetPublicURL(ctx, locator)
	if err != nil || url == "" {
		return locator
	}
	return url
}
