// Package filesystem provides filesystem implementations for sfo.
//
// This package contains implementations of the types.FS interface: the
// operating system filesystem and an afero-backed one used for in-memory
// tests and sandboxes.
package filesystem
