package objectkey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyGenerator(t *testing.T) {
	g := NewLegacyGenerator()

	t.Run("keeps base name and extension", func(t *testing.T) {
		key := g.GenerateKey("thumbnails", "holiday.png")
		assert.True(t, strings.HasPrefix(key, "holiday"))
		assert.True(t, strings.HasSuffix(key, ".png"))
		assert.NotContains(t, key, "/", "legacy keys are flat filenames")
	})

	t.Run("unique per call", func(t *testing.T) {
		a := g.GenerateKey("", "pic.jpg")
		b := g.GenerateKey("", "pic.jpg")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty name falls back", func(t *testing.T) {
		key := g.GenerateKey("", "")
		assert.True(t, strings.HasPrefix(key, "file"))
	})

	t.Run("sanitizes separators", func(t *testing.T) {
		key := g.GenerateKey("", "../etc/passwd.txt")
		assert.NotContains(t, key, "/")
	})
}

func TestShardedGenerator(t *testing.T) {
	g := NewShardedGenerator()

	t.Run("prefix, shard, and filename", func(t *testing.T) {
		key := g.GenerateKey("thumbnails", "holiday.png")

		parts := strings.Split(key, "/")
		require.Len(t, parts, 3)
		assert.Equal(t, "thumbnails", parts[0])
		assert.Len(t, parts[1], 2)
		assert.True(t, strings.HasSuffix(parts[2], "_holiday.png"))
	})

	t.Run("no prefix", func(t *testing.T) {
		key := g.GenerateKey("", "pic.jpg")
		parts := strings.Split(key, "/")
		require.Len(t, parts, 2)
		assert.Len(t, parts[0], 2)
	})

	t.Run("no filename", func(t *testing.T) {
		key := g.GenerateKey("avatars", "")
		parts := strings.Split(key, "/")
		require.Len(t, parts, 3)
		assert.NotContains(t, parts[2], "_")
	})

	t.Run("unique per call", func(t *testing.T) {
		a := g.GenerateKey("avatars", "me.png")
		b := g.GenerateKey("avatars", "me.png")
		assert.NotEqual(t, a, b)
	})

	t.Run("custom shard length", func(t *testing.T) {
		g := &ShardedGenerator{ShardLength: 4}
		key := g.GenerateKey("avatars", "me.png")
		parts := strings.Split(key, "/")
		require.Len(t, parts, 3)
		assert.Len(t, parts[1], 4)
	})

	t.Run("hostile inputs cannot add path levels", func(t *testing.T) {
		key := g.GenerateKey("../secrets", "../../escape.png")
		parts := strings.Split(key, "/")
		assert.Len(t, parts, 3)
		assert.False(t, strings.HasPrefix(parts[0], "."))
	})
}
