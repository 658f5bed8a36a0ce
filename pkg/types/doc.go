// Package types defines the core types and interfaces shared across sfo.
// This includes the FileDescriptor every rule is evaluated against, the plan
// entries produced by the planner, the action records written by the
// executor, and the FS interface all file access goes through.
package types
