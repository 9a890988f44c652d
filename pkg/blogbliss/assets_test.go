package blogbliss_test

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss"
	memorystorage "github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss/storage/memory"
)

// fakeEntityStore keeps asset entities in a map for exercising the manager
// without a repository.
type fakeEntityStore struct {
	entities map[uuid.UUID]*blogbliss.AssetEntity
	setErr   error
}

func newFakeEntityStore() *fakeEntityStore {
	return &fakeEntityStore{entities: make(map[uuid.UUID]*blogbliss.AssetEntity)}
}

func (s *fakeEntityStore) GetEntity(ctx context.Context, id uuid.UUID) (*blogbliss.AssetEntity, error) {
	ent, ok := s.entities[id]
	if !ok {
		return nil, blogbliss.ErrPostNotFound
	}
	copied := *ent
	return &copied, nil
}

func (s *fakeEntityStore) SetEntityAsset(ctx context.Context, id uuid.UUID, locator string) error {
	if s.setErr != nil {
		return s.setErr
	}
	ent, ok := s.entities[id]
	if !ok {
		return blogbliss.ErrPostNotFound
	}
	ent.Locator = locator
	return nil
}

func (s *fakeEntityStore) RemoveEntity(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.entities[id]; !ok {
		return blogbliss.ErrPostNotFound
	}
	delete(s.entities, id)
	return nil
}

// brokenUploadStore rejects every upload.
type brokenUploadStore struct {
	blogbliss.BlobStore
}

func (s *brokenUploadStore) UploadWithParams(ctx context.Context, reader io.Reader, params blogbliss.UploadParams) error {
	return fmt.Errorf("connection reset")
}

func validUpload() blogbliss.AssetUpload {
	return blogbliss.AssetUpload{
		Data:        []byte("payload"),
		FileName:    "pic.png",
		ContentType: "image/png",
		MaxBytes:    1024,
		KeyPrefix:   "thumbnails",
	}
}

func TestCreateWithAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads before persisting", func(t *testing.T) {
		store := memorystorage.New()
		mgr := blogbliss.NewAssetManager(store, nil, nil)

		var persisted string
		key, err := mgr.CreateWithAsset(ctx, validUpload(), func(ctx context.Context, locator string) error {
			// The blob must already exist when the record is written.
			_, metaErr := store.GetObjectMeta(ctx, locator)
			require.NoError(t, metaErr)
			persisted = locator
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, persisted, key)
	})

	t.Run("persist failure removes the fresh blob", func(t *testing.T) {
		store := memorystorage.New()
		mgr := blogbliss.NewAssetManager(store, nil, nil)

		var uploaded string
		_, err := mgr.CreateWithAsset(ctx, validUpload(), func(ctx context.Context, locator string) error {
			uploaded = locator
			return fmt.Errorf("write conflict")
		})
		require.Error(t, err)

		_, err = store.GetObjectMeta(ctx, uploaded)
		assert.ErrorIs(t, err, blogbliss.ErrObjectNotFound)
	})

	t.Run("upload failure persists nothing", func(t *testing.T) {
		store := &brokenUploadStore{BlobStore: memorystorage.New()}
		mgr := blogbliss.NewAssetManager(store, nil, nil)

		called := false
		_, err := mgr.CreateWithAsset(ctx, validUpload(), func(ctx context.Context, locator string) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, blogbliss.ErrUploadFailed)
		assert.False(t, called)

		var assetErr *blogbliss.AssetError
		require.ErrorAs(t, err, &assetErr)
		assert.Equal(t, "upload", assetErr.Op)
	})

	t.Run("empty payload is rejected", func(t *testing.T) {
		mgr := blogbliss.NewAssetManager(memorystorage.New(), nil, nil)

		up := validUpload()
		up.Data = nil
		_, err := mgr.CreateWithAsset(ctx, up, func(ctx context.Context, locator string) error {
			t.Fatal("persist must not run")
			return nil
		})
		assert.ErrorIs(t, err, blogbliss.ErrAssetMissing)
	})

	t.Run("oversized payload is rejected", func(t *testing.T) {
		mgr := blogbliss.NewAssetManager(memorystorage.New(), nil, nil)

		up := validUpload()
		up.Data = make([]byte, up.MaxBytes+1)
		_, err := mgr.CreateWithAsset(ctx, up, func(ctx context.Context, locator string) error {
			t.Fatal("persist must not run")
			return nil
		})
		assert.ErrorIs(t, err, blogbliss.ErrAssetTooLarge)
	})
}

func TestReplaceAsset(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	entityID := uuid.New()

	seed := func(t *testing.T) (*fakeEntityStore, *memorystorage.Backend, *blogbliss.AssetManager, string) {
		t.Helper()
		store := memorystorage.New()
		mgr := blogbliss.NewAssetManager(store, nil, nil)

		oldKey, err := mgr.CreateWithAsset(ctx, validUpload(), func(ctx context.Context, locator string) error {
			return nil
		})
		require.NoError(t, err)

		es := newFakeEntityStore()
		es.entities[entityID] = &blogbliss.AssetEntity{ID: entityID, OwnerID: owner, Locator: oldKey}
		return es, store, mgr, oldKey
	}

	t.Run("record points at the new blob before the old one is deleted", func(t *testing.T) {
		es, store, mgr, oldKey := seed(t)

		newKey, err := mgr.ReplaceAsset(ctx, es, entityID, owner, validUpload())
		require.NoError(t, err)
		assert.NotEqual(t, oldKey, newKey)
		assert.Equal(t, newKey, es.entities[entityID].Locator)

		_, err = store.GetObjectMeta(ctx, oldKey)
		assert.ErrorIs(t, err, blogbliss.ErrObjectNotFound)
	})

	t.Run("record write failure cleans up the new blob and keeps the old", func(t *testing.T) {
		es, store, mgr, oldKey := seed(t)
		es.setErr = fmt.Errorf("write conflict")

		_, err := mgr.ReplaceAsset(ctx, es, entityID, owner, validUpload())
		require.Error(t, err)

		assert.Equal(t, oldKey, es.entities[entityID].Locator)
		_, err = store.GetObjectMeta(ctx, oldKey)
		assert.NoError(t, err)
	})

	t.Run("wrong requester is forbidden", func(t *testing.T) {
		es, _, mgr, oldKey := seed(t)

		_, err := mgr.ReplaceAsset(ctx, es, entityID, uuid.New(), validUpload())
		assert.ErrorIs(t, err, blogbliss.ErrForbidden)
		assert.Equal(t, oldKey, es.entities[entityID].Locator)
	})

	t.Run("missing entity propagates the store error", func(t *testing.T) {
		es, _, mgr, _ := seed(t)

		_, err := mgr.ReplaceAsset(ctx, es, uuid.New(), owner, validUpload())
		assert.ErrorIs(t, err, blogbliss.ErrPostNotFound)
	})
}

func TestDeleteWithAsset(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	entityID := uuid.New()

	t.Run("record first, then blob", func(t *testing.T) {
		store := memorystorage.New()
		mgr := blogbliss.NewAssetManager(store, nil, nil)

		key, err := mgr.CreateWithAsset(ctx, validUpload(), func(ctx context.Context, locator string) error {
			return nil
		})
		require.NoError(t, err)

		es := newFakeEntityStore()
		es.entities[entityID] = &blogbliss.AssetEntity{ID: entityID, OwnerID: owner, Locator: key}

		require.NoError(t, mgr.DeleteWithAsset(ctx, es, entityID, owner))
		assert.NotContains(t, es.entities, entityID)

		_, err = store.GetObjectMeta(ctx, key)
		assert.ErrorIs(t, err, blogbliss.ErrObjectNotFound)
	})

	t.Run("already-missing blob does not fail the delete", func(t *testing.T) {
		store := memorystorage.New()
		mgr := blogbliss.NewAssetManager(store, nil, nil)

		es := newFakeEntityStore()
		es.entities[entityID] = &blogbliss.AssetEntity{ID: entityID, OwnerID: owner, Locator: "thumbnails/gone.png"}

		require.NoError(t, mgr.DeleteWithAsset(ctx, es, entityID, owner))
		assert.NotContains(t, es.entities, entityID)
	})

	t.Run("entity without a blob deletes cleanly", func(t *testing.T) {
		mgr := blogbliss.NewAssetManager(memorystorage.New(), nil, nil)

		es := newFakeEntityStore()
		es.entities[entityID] = &blogbliss.AssetEntity{ID: entityID, OwnerID: owner}

		require.NoError(t, mgr.DeleteWithAsset(ctx, es, entityID, owner))
	})

	t.Run("wrong requester is forbidden", func(t *testing.T) {
		mgr := blogbliss.NewAssetManager(memorystorage.New(), nil, nil)

		es := newFakeEntityStore()
		es.entities[entityID] = &blogbliss.AssetEntity{ID: entityID, OwnerID: owner}

		err := mgr.DeleteWithAsset(ctx, es, entityID, uuid.New())
		assert.ErrorIs(t, err, blogbliss.ErrForbidden)
		assert.Contains(t, es.entities, entityID)
	})
}

func TestUpdateFields(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	entityID := uuid.New()

	mgr := blogbliss.NewAssetManager(memorystorage.New(), nil, nil)

	es := newFakeEntityStore()
	es.entities[entityID] = &blogbliss.AssetEntity{ID: entityID, OwnerID: owner}

	t.Run("owner may apply", func(t *testing.T) {
		applied := false
		err := mgr.UpdateFields(ctx, es, entityID, owner, func(ctx context.Context) error {
			applied = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, applied)
	})

	t.Run("non-owner may not", func(t *testing.T) {
		err := mgr.UpdateFields(ctx, es, entityID, uuid.New(), func(ctx context.Context) error {
			t.Fatal("apply must not run")
			return nil
		})
		assert.ErrorIs(t, err, blogbliss.ErrForbidden)
	})
}
