package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sfo/pkg/filesystem"
	"github.com/arthur-debert/sfo/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// DefaultModTime is the modification time given to files added without one.
var DefaultModTime = time.Date(2023, time.January, 15, 10, 30, 0, 0, time.Local)

// TestEnvironment holds a source tree to organize and a destination root.
type TestEnvironment struct {
	SourceDir string
	DestDir   string
	FS        types.FS
	Type      EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.SourceDir = "/virtual/src"
		env.DestDir = "/virtual/dest"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		root := t.TempDir()
		env.SourceDir = filepath.Join(root, "src")
		env.DestDir = filepath.Join(root, "dest")
		env.FS = filesystem.NewOS()
	}

	require.NoError(t, env.FS.MkdirAll(env.SourceDir, 0755))
	return env
}

// AddFile writes content under the source dir at DefaultModTime and returns its path.
func (env *TestEnvironment) AddFile(rel, content string) string {
	env.t.Helper()
	return env.AddFileAt(rel, []byte(content), DefaultModTime)
}

// AddFileAt writes content under the source dir with the given modification time.
func (env *TestEnvironment) AddFileAt(rel string, content []byte, mtime time.Time) string {
	env.t.Helper()

	path := filepath.Join(env.SourceDir, rel)
	require.NoError(env.t, env.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(env.t, env.FS.WriteFile(path, content, 0644))
	require.NoError(env.t, env.FS.Chtimes(path, mtime, mtime))
	return path
}

// Dest joins parts onto the destination root.
func (env *TestEnvironment) Dest(parts ...string) string {
	return filepath.Join(append([]string{env.DestDir}, parts...)...)
}

// AssertFileContent fails the test unless path holds exactly content.
func (env *TestEnvironment) AssertFileContent(path, content string) {
	env.t.Helper()
	data, err := env.FS.ReadFile(path)
	require.NoError(env.t, err, "reading %s", path)
	require.Equal(env.t, content, string(data), "content of %s", path)
}

// AssertMissing fails the test if path exists.
func (env *TestEnvironment) AssertMissing(path string) {
	env.t.Helper()
	_, err := env.FS.Stat(path)
	require.Error(env.t, err, "%s should not exist", path)
}
