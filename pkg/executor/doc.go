// Package executor applies a computed plan to the filesystem and reverses it.
//
// Organize walks the plan in order. Per-file failures are recorded in the
// result and the manifest and do not stop the run, so the manifest always
// describes exactly what changed. Undo replays a manifest backwards.
package executor
