package types

import (
	"path/filepath"
	"time"
)

// FileDescriptor is the immutable snapshot of one file that rules are
// evaluated against.
type FileDescriptor struct {
	// Path is the absolute path of the file
	Path string

	// BaseName is the file name without its extension
	BaseName string

	// Extension is lowercase, without the leading dot, empty when absent
	Extension string

	// ModTime is local time truncated to whole seconds
	ModTime time.Time

	// ContentHash is the lowercase hex SHA-256 digest, empty when not computed
	ContentHash string

	// CapturedDate is the embedded capture date, nil when unavailable
	CapturedDate *time.Time
}

// FileName returns the file name including its extension.
func (d FileDescriptor) FileName() string {
	return filepath.Base(d.Path)
}

// HasHash reports whether the content hash was computed.
func (d FileDescriptor) HasHash() bool {
	return d.ContentHash != ""
}

// EffectiveDate is the captured date when known, otherwise the modification time.
func (d FileDescriptor) EffectiveDate() time.Time {
	if d.CapturedDate != nil {
		return *d.CapturedDate
	}
	return d.ModTime
}
