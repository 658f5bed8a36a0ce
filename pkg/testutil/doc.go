// Package testutil provides utilities for testing sfo components.
//
// Key components:
//   - TestEnvironment: source and destination trees on an in-memory or
//     temp-dir filesystem, with files created at fixed modification times
//   - Fixtures: JPEG bytes carrying an EXIF DateTimeOriginal, XMP sidecars
//
// All test data is defined inline, not in external files.
package testutil
