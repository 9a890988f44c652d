package objectkey

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Generator defines the interface for blob key generation strategies
type Generator interface {
	// GenerateKey creates an object key for storage backends. prefix groups
	// keys by asset kind (e.g. "thumbnails", "avatars"); fileName is the
	// client-supplied name, used for readable keys where possible.
	GenerateKey(prefix, fileName string) string
}

// LegacyGenerator reproduces the flat local-upload naming scheme:
// the original base name with a random uuid suffix, keeping the extension.
// Keys carry no directory component, so they double as bare filenames.
type LegacyGenerator struct{}

func NewLegacyGenerator() *LegacyGenerator {
	return &LegacyGenerator{}
}

func (g *LegacyGenerator) GenerateKey(prefix, fileName string) string {
	base := strings.TrimSuffix(fileName, path.Ext(fileName))
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s%s%s", sanitizeFilename(base), uuid.New(), path.Ext(fileName))
}

// ShardedGenerator produces Git-style sharded keys with a kind prefix:
// {prefix}/{shard}/{rest}_{filename}. The shard is taken from a random
// uuid, so concurrent uploads never collide.
type ShardedGenerator struct {
	// ShardLength controls how many characters to use for sharding (default: 2)
	ShardLength int
}

func NewShardedGenerator() *ShardedGenerator {
	return &ShardedGenerator{
		ShardLength: 2,
	}
}

func (g *ShardedGenerator) GenerateKey(prefix, fileName string) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")

	shardLen := g.ShardLength
	if shardLen <= 0 || shardLen > len(id) {
		shardLen = 2
	}
	shard := id[:shardLen]
	remaining := id[shardLen:]

	filename := remaining
	if fileName != "" {
		filename = fmt.Sprintf("%s_%s", remaining, sanitizeFilename(fileName))
	}

	if prefix == "" {
		return fmt.Sprintf("%s/%s", shard, filename)
	}
	return fmt.Sprintf("%s/%s/%s", sanitizePathComponent(prefix), shard, filename)
}

// sanitizeFilename replaces characters that are problematic in object keys
// and filesystem paths.
func sanitizeFilename(filename string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	return replacer.Replace(filename)
}

// sanitizePathComponent sanitizes a single path component, additionally
// stripping separators so the component cannot escape its level.
func sanitizePathComponent(component string) string {
	sanitized := sanitizeFilename(component)
	sanitized = strings.Trim(sanitized, "._")
	if sanitized == "" {
		sanitized = "default"
	}
	return sanitized
}
