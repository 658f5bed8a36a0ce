package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/arthur-debert/sfo/pkg/types"
)

// ChunkSize is the read size used when streaming file content into the hash.
const ChunkSize = 8192

// Sum returns the lowercase hex SHA-256 digest of everything read from r.
func Sum(r io.Reader) (string, error) {
	hash := sha256.New()
	buf := make([]byte, ChunkSize)
	if _, err := io.CopyBuffer(hash, r, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// FileChecksum calculates the SHA-256 checksum of a file on fs
func FileChecksum(fs types.FS, path string) (string, error) {
	file, err := fs.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	// hide WriterTo so reads stay in ChunkSize chunks
	return Sum(struct{ io.Reader }{file})
}
