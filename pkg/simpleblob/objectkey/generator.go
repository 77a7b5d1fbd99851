// Package objectkey generates storage keys for registered files.
package objectkey

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Generator defines the interface for object key generation strategies
type Generator interface {
	// GenerateKey creates an object key for storage backends
	GenerateKey(fileID uuid.UUID, fileName string) string
}

// FlatGenerator produces a flat "F/{id}/{name}" layout.
type FlatGenerator struct{}

func NewFlatGenerator() *FlatGenerator {
	return &FlatGenerator{}
}

func (g *FlatGenerator) GenerateKey(fileID uuid.UUID, fileName string) string {
	if fileName != "" {
		return fmt.Sprintf("F/%s/%s", fileID, sanitize(fileName))
	}
	return fmt.Sprintf("F/%s", fileID)
}

// ShardedGenerator produces Git-style sharded keys:
// files/ab/cd1234..._name. Sharding keeps any single directory or key prefix
// from accumulating every object.
type ShardedGenerator struct {
	// ShardLength controls how many hex characters form the shard prefix.
	ShardLength int
}

func NewShardedGenerator() *ShardedGenerator {
	return &ShardedGenerator{ShardLength: 2}
}

func (g *ShardedGenerator) GenerateKey(fileID uuid.UUID, fileName string) string {
	sum := sha256.Sum256(fileID[:])
	digest := fmt.Sprintf("%x", sum[:8])

	shardLen := g.ShardLength
	if shardLen <= 0 || shardLen >= len(digest) {
		shardLen = 2
	}
	shard, rest := digest[:shardLen], digest[shardLen:]

	if fileName != "" {
		return fmt.Sprintf("files/%s/%s_%s", shard, rest, sanitize(fileName))
	}
	return fmt.Sprintf("files/%s/%s", shard, rest)
}

// sanitize strips path separators and other characters unsafe in object keys.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, name)
}
