// Package cache holds pipeline results for repeated runs over the same
// document. Memory-only; results are cheap to recompute, so nothing is
// persisted across processes.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for caching serialized pipeline results.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from document text and the options that
// affect the result. Same text, different options, different key.
func Key(document string, sceneNumbers bool) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%t\x00%s", sceneNumbers, document)))
	return "slugline:v1:" + hex.EncodeToString(hash[:])
}
