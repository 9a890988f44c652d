package blogbliss

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss/objectkey"
	"github.com/google/uuid"
)

// AssetEntity is the slice of a stored record the asset manager works with:
// who owns it and which blob it currently references.
type AssetEntity struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Locator string
}

// EntityStore adapts one collection (posts, users) to the AssetManager.
// GetEntity returns the collection's own not-found error for missing ids.
type EntityStore interface {
	GetEntity(ctx context.Context, id uuid.UUID) (*AssetEntity, error)
	SetEntityAsset(ctx context.Context, id uuid.UUID, locator string) error
}

// EntityRemover is an EntityStore whose records can be deleted.
type EntityRemover interface {
	EntityStore
	RemoveEntity(ctx context.Context, id uuid.UUID) error
}

// AssetUpload carries the payload and constraints of one asset upload.
type AssetUpload struct {
	Data        []byte
	FileName    string
	ContentType string
	MaxBytes    int64
	KeyPrefix   string
}

// AssetManager orchestrates mutations of records that reference exactly one
// managed blob. It keeps the invariant that a stored asset reference always
// points to a live blob: on create and replace the new blob is uploaded and
// the record durably references it before any old blob is removed. The
// ordering trades a possible leaked blob (cleanup debt) for never leaving a
// record pointing at a deleted blob.
type AssetManager struct {
	store  BlobStore
	keys   objectkey.Generator
	logger *slog.Logger
}

// NewAssetManager creates an asset manager over the given blob store.
// A nil generator defaults to sharded keys; a nil logger uses slog.Default.
func NewAssetManager(store BlobStore, keys objectkey.Generator, logger *slog.Logger) *AssetManager {
	if keys == nil {
		keys = objectkey.NewShardedGenerator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AssetManager{store: store, keys: keys, logger: logger}
}

func (m *AssetManager) validate(up AssetUpload) error {
	if len(up.Data) == 0 {
		return ErrAssetMissing
	}
	if up.MaxBytes > 0 && int64(len(up.Data)) > up.MaxBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrAssetTooLarge, len(up.Data), up.MaxBytes)
	}
	return nil
}

func (m *AssetManager) upload(ctx context.Context, up AssetUpload) (string, error) {
	key := m.keys.GenerateKey(up.KeyPrefix, up.FileName)
	params := UploadParams{ObjectKey: key, MimeType: up.ContentType}
	if err := m.store.UploadWithParams(ctx, bytes.NewReader(up.Data), params); err != nil {
		m.logger.Error("asset upload failed", "key", key, "error", err)
		return "", &AssetError{Op: "upload", Key: key, Err: ErrUploadFailed}
	}
	return key, nil
}

// cleanupBlob removes a blob outside the consistency contract. A missing
// blob is not an error; any other failure is logged and swallowed.
func (m *AssetManager) cleanupBlob(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := m.store.Delete(ctx, key); err != nil && !errors.Is(err, ErrObjectNotFound) {
		m.logger.Warn("asset cleanup failed", "key", key, "error", err)
	}
}

// CreateWithAsset uploads the asset as a new uniquely-named blob and, only
// after the upload succeeds, writes the entity record through persist,
// handing it the new blob's locator. Nothing is persisted on an upload
// failure. If persist fails, the freshly uploaded blob is removed again
// (best effort) so a failed create leaves neither store populated.
func (m *AssetManager) CreateWithAsset(ctx context.Context, up AssetUpload, persist func(ctx context.Context, locator string) error) (string, error) {
	if err := m.validate(up); err != nil {
		return "", err
	}

	key, err := m.upload(ctx, up)
	if err != nil {
		return "", err
	}

	if err := persist(ctx, key); err != nil {
		m.cleanupBlob(ctx, key)
		return "", err
	}

	return key, nil
}

// ReplaceAsset swaps the blob referenced by an existing entity. The caller's
// identity must match the entity's owner. The superseded blob is deleted
// strictly after the record references the replacement; a failed delete of
// the old blob does not fail the operation.
func (m *AssetManager) ReplaceAsset(ctx context.Context, es EntityStore, entityID, requesterID uuid.UUID, up AssetUpload) (string, error) {
	ent, err := es.GetEntity(ctx, entityID)
	if err != nil {
		return "", err
	}
	if ent.OwnerID != requesterID {
		return "", ErrForbidden
	}

	if err := m.validate(up); err != nil {
		return "", err
	}

	key, err := m.upload(ctx, up)
	if err != nil {
		return "", err
	}

	if err := es.SetEntityAsset(ctx, entityID, key); err != nil {
		m.cleanupBlob(ctx, key)
		return "", err
	}

	m.cleanupBlob(ctx, ent.Locator)
	return key, nil
}

// DeleteWithAsset removes an entity record and then best-effort deletes its
// blob. The record goes first so a blob-delete failure can never leave an
// orphaned, still-referenced record. A blob already gone at delete time is
// fine (idempotent).
func (m *AssetManager) DeleteWithAsset(ctx context.Context, es EntityRemover, entityID, requesterID uuid.UUID) error {
	ent, err := es.GetEntity(ctx, entityID)
	if err != nil {
		return err
	}
	if ent.OwnerID != requesterID {
		return ErrForbidden
	}

	if err := es.RemoveEntity(ctx, entityID); err != nil {
		return err
	}

	m.cleanupBlob(ctx, ent.Locator)
	return nil
}

// UpdateFields performs an ownership-checked record update that touches no
// asset. apply runs only when the requester owns the entity.
func (m *AssetManager) UpdateFields(ctx context.Context, es EntityStore, entityID, requesterID uuid.UUID, apply func(ctx context.Context) error) error {
	ent, err := es.GetEntity(ctx, entityID)
	if err != nil {
		return err
	}
	if ent.OwnerID != requesterID {
		return ErrForbidden
	}
	return apply(ctx)
}
