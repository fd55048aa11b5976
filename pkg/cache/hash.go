package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...). Map keys marshal sorted, so
// equal params always hash equally. Components that cannot be encoded, such
// as NaN or infinite floats, yield an error instead of a shared key.
func hashKey(prefix string, parts ...any) (string, error) {
	data, err := json.Marshal(parts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnkeyable, err)
	}
	return fmt.Sprintf("%s:%s", prefix, Hash(data)), nil
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
