package testutil

import (
	"crypto/sha256"
	"fmt"
)

// GetTestChecksum calculates the SHA-256 hex digest of test content, the way
// descriptors report it.
func GetTestChecksum(content string) string {
	hash := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", hash)
}
