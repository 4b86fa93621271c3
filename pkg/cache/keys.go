package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// RenderKeyOpts carries the render settings that affect output bytes.
// Two renders with the same document but different options must never
// share a cache entry.
type RenderKeyOpts struct {
	CellLines bool    `json:"cell_lines"`
	Labels    bool    `json:"labels"`
	Scale     float64 `json:"scale"`
	Padding   int     `json:"padding"`
}

// RenderKey generates a cache key for a rendered artifact from the layout
// document bytes and the render options.
// The key format is: render:hash(document, options)
func RenderKey(document []byte, opts RenderKeyOpts) string {
	return hashKey("render", Hash(document), opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
