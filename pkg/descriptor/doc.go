// Package descriptor builds FileDescriptors from paths on a types.FS.
//
// A Builder reads metadata once per file: the name split into base and
// lowercase extension, the modification time, the SHA-256 content hash when
// a hash rule needs it, and the capture date of photos. Capture dates come
// from embedded EXIF DateTimeOriginal, falling back to an XMP sidecar next
// to the file. Failing to read a capture date is never an error; the
// descriptor simply carries none and templates use the modification time.
//
// Builders are safe for concurrent use. Hashes are cached per path for the
// lifetime of the Builder, which is one organize or dry-run.
package descriptor
