package executor_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/executor"
	"github.com/arthur-debert/sfo/pkg/logging"
	"github.com/arthur-debert/sfo/pkg/testutil"
	"github.com/arthur-debert/sfo/pkg/types"
	"github.com/arthur-debert/sfo/pkg/winpath"
)

// faultFS fails renames chosen by fail.
type faultFS struct {
	types.FS
	fail func(oldpath, newpath string) error
}

func (f *faultFS) Rename(oldpath, newpath string) error {
	if f.fail != nil {
		if err := f.fail(oldpath, newpath); err != nil {
			return err
		}
	}
	return f.FS.Rename(oldpath, newpath)
}

func entry(src, dst, rule string) types.PlanEntry {
	return types.PlanEntry{Src: src, Dst: dst, Rule: rule}
}

func TestOrganizeMoves(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	a := env.AddFile("a.txt", "A")
	b := env.AddFile("deep/b.jpg", "B")

	plan := types.Plan{
		entry(a, env.Dest("txt", "a.txt"), "fallback_extension"),
		entry(b, env.Dest("images", "2023", "b.jpg"), "images"),
	}

	res, err := executor.New(executor.Options{FS: env.FS}).Organize(context.Background(), plan)
	require.NoError(t, err)

	env.AssertMissing(a)
	env.AssertMissing(b)
	env.AssertFileContent(env.Dest("txt", "a.txt"), "A")
	env.AssertFileContent(env.Dest("images", "2023", "b.jpg"), "B")

	assert.Equal(t, 2, res.Count(types.ActionMove))
	assert.Empty(t, res.Failed())
	assert.Equal(t, types.Manifest{
		{MovedFrom: a, MovedTo: env.Dest("txt", "a.txt")},
		{MovedFrom: b, MovedTo: env.Dest("images", "2023", "b.jpg")},
	}, res.Manifest)
}

func TestOrganizeCollisionPolicies(t *testing.T) {
	tests := []struct {
		policy     types.CollisionPolicy
		wantAction types.ActionType
		wantFinal  string
		wantOld    string
		wantRecord bool
	}{
		{types.CollisionSkip, types.ActionSkip, "", "old", false},
		{types.CollisionOverwrite, types.ActionOverwrite, "a.txt", "new", true},
		{types.CollisionRename, types.ActionRename, "a_(2).txt", "old", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
			src := env.AddFile("a.txt", "new")
			require.NoError(t, env.FS.MkdirAll(env.Dest("txt"), 0755))
			require.NoError(t, env.FS.WriteFile(env.Dest("txt", "a.txt"), []byte("old"), 0644))
			require.NoError(t, env.FS.WriteFile(env.Dest("txt", "a_(1).txt"), []byte("older"), 0644))

			ex := executor.New(executor.Options{FS: env.FS, Collision: tt.policy})
			res, err := ex.Organize(context.Background(), types.Plan{entry(src, env.Dest("txt", "a.txt"), "r")})
			require.NoError(t, err)
			require.Len(t, res.Results, 1)

			got := res.Results[0]
			assert.Equal(t, tt.wantAction, got.Action)
			assert.NoError(t, got.Error)
			env.AssertFileContent(env.Dest("txt", "a.txt"), tt.wantOld)
			env.AssertFileContent(env.Dest("txt", "a_(1).txt"), "older")

			if tt.wantFinal == "" {
				assert.Empty(t, got.Final)
				env.AssertFileContent(src, "new")
				assert.Empty(t, res.Manifest)
				return
			}
			final := env.Dest("txt", tt.wantFinal)
			assert.Equal(t, final, got.Final)
			env.AssertFileContent(final, "new")
			env.AssertMissing(src)
			assert.Equal(t, types.Manifest{{MovedFrom: src, MovedTo: final}}, res.Manifest)
		})
	}
}

func TestOrganizeRenameKeepsDotfilesWhole(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	src := env.AddFile(".bashrc", "x")
	require.NoError(t, env.FS.MkdirAll(env.Dest("noext"), 0755))
	require.NoError(t, env.FS.WriteFile(env.Dest("noext", ".bashrc"), []byte("y"), 0644))

	res, err := executor.New(executor.Options{FS: env.FS}).
		Organize(context.Background(), types.Plan{entry(src, env.Dest("noext", ".bashrc"), "r")})
	require.NoError(t, err)
	assert.Equal(t, env.Dest("noext", ".bashrc_(1)"), res.Results[0].Final)
}

func TestOrganizeCopyMode(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	src := env.AddFile("a.txt", "A")
	dst := env.Dest("txt", "a.txt")

	res, err := executor.New(executor.Options{FS: env.FS, Copy: true, TrashDir: "/virtual/trash"}).
		Organize(context.Background(), types.Plan{entry(src, dst, "r")})
	require.NoError(t, err)

	env.AssertFileContent(src, "A")
	env.AssertFileContent(dst, "A")
	assert.Equal(t, types.ActionCopy, res.Results[0].Action)
	assert.Equal(t, types.Manifest{{CopiedFrom: src, CopiedTo: dst}}, res.Manifest)

	info, err := env.FS.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(testutil.DefaultModTime), "copy keeps the modification time")

	_, err = env.FS.Stat("/virtual/trash")
	assert.Error(t, err, "copies are never staged")
}

func TestOrganizeTrashStaging(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	trash := "/virtual/trash"
	ok := env.AddFile("ok.txt", "ok")
	stuck := env.AddFile("stuck.txt", "stuck")

	fs := &faultFS{FS: env.FS, fail: func(oldpath, _ string) error {
		if oldpath == filepath.Join(trash, "stuck.txt") {
			return &os.LinkError{Op: "rename", Old: oldpath, Err: os.ErrPermission}
		}
		return nil
	}}

	res, err := executor.New(executor.Options{FS: fs, TrashDir: trash}).Organize(context.Background(), types.Plan{
		entry(ok, env.Dest("txt", "ok.txt"), "r"),
		entry(stuck, env.Dest("txt", "stuck.txt"), "r"),
	})
	require.NoError(t, err)

	env.AssertFileContent(env.Dest("txt", "ok.txt"), "ok")
	env.AssertMissing(filepath.Join(trash, "ok.txt"))

	env.AssertMissing(stuck)
	env.AssertFileContent(filepath.Join(trash, "stuck.txt"), "stuck")
	assert.Equal(t, types.ActionTrashError, res.Results[1].Action)
	assert.True(t, errors.IsErrorCode(res.Results[1].Error, errors.ErrFileMove))

	assert.Equal(t, types.Manifest{
		{MovedFrom: ok, MovedTo: env.Dest("txt", "ok.txt")},
		{MovedFrom: stuck, TrashedAt: filepath.Join(trash, "stuck.txt")},
	}, res.Manifest)
}

func TestOrganizeRecordsFailuresAndContinues(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	locked := env.AddFile("locked_file.txt", "L")
	free := env.AddFile("free.txt", "F")

	fs := &faultFS{FS: env.FS, fail: func(oldpath, _ string) error {
		if oldpath == locked {
			return &os.LinkError{Op: "rename", Old: oldpath, Err: os.ErrPermission}
		}
		return nil
	}}

	res, err := executor.New(executor.Options{FS: fs}).Organize(context.Background(), types.Plan{
		entry(locked, env.Dest("txt", "locked_file.txt"), "r"),
		entry(free, env.Dest("txt", "free.txt"), "r"),
	})
	require.NoError(t, err)

	env.AssertFileContent(locked, "L")
	env.AssertFileContent(env.Dest("txt", "free.txt"), "F")

	failed := res.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, types.ActionError, failed[0].Action)
	assert.ErrorIs(t, failed[0].Error, os.ErrPermission)

	require.Len(t, res.Manifest, 2)
	assert.Equal(t, locked, res.Manifest[0].MovedFrom)
	assert.Contains(t, res.Manifest[0].Error, "permission denied")
	assert.False(t, res.Manifest[0].Undoable())
}

func TestOrganizeCrossDeviceFallsBackToCopy(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	src := env.AddFile("a.txt", "A")
	dst := env.Dest("txt", "a.txt")

	calls := 0
	fs := &faultFS{FS: env.FS, fail: func(oldpath, newpath string) error {
		calls++
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
	}}

	res, err := executor.New(executor.Options{FS: fs}).Organize(context.Background(), types.Plan{entry(src, dst, "r")})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, res.Failed())

	env.AssertMissing(src)
	env.AssertFileContent(dst, "A")
	info, err := env.FS.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(testutil.DefaultModTime))
}

func TestOrganizeActionLog(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	a := env.AddFile("a.txt", "A")
	b := env.AddFile("b.txt", "B")
	require.NoError(t, env.FS.MkdirAll(env.Dest("txt"), 0755))
	require.NoError(t, env.FS.WriteFile(env.Dest("txt", "b.txt"), []byte("old"), 0644))

	var buf bytes.Buffer
	log := logging.NewJSONLinesLogger(&buf)
	_, err := executor.New(executor.Options{FS: env.FS, ActionLog: &log}).Organize(context.Background(), types.Plan{
		entry(a, env.Dest("txt", "a.txt"), "docs"),
		entry(b, env.Dest("txt", "b.txt"), "docs"),
	})
	require.NoError(t, err)

	var actions []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		assert.Equal(t, "docs", rec["rule"])
		assert.Equal(t, "info", rec["level"])
		assert.Contains(t, rec, "ts")
		actions = append(actions, rec["action"].(string))
		if rec["action"] == "rename" {
			assert.Equal(t, filepath.ToSlash(env.Dest("txt", "b_(1).txt")), rec["dst"])
		}
	}
	assert.Equal(t, []string{"move", "rename", "move"}, actions)
}

func TestOrganizeSanitizesWindowsNames(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	src := env.AddFile("con.txt", "c")

	res, err := executor.New(executor.Options{FS: env.FS, Platform: &winpath.Platform{Windows: true}}).
		Organize(context.Background(), types.Plan{entry(src, env.Dest("txt", "con.txt"), "fallback_extension")})
	require.NoError(t, err)

	env.AssertFileContent(env.Dest("txt", "con_.txt"), "c")
	assert.Equal(t, env.Dest("txt", "con_.txt"), res.Manifest[0].MovedTo)
}

func TestOrganizeStopsEarly(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	src := env.AddFile("a.txt", "A")
	plan := types.Plan{entry(src, env.Dest("txt", "a.txt"), "r")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := executor.New(executor.Options{FS: env.FS}).Organize(ctx, plan)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCanceled))
	assert.Empty(t, res.Results)
	env.AssertFileContent(src, "A")

	_, err = executor.New(executor.Options{FS: env.FS, Collision: "merge"}).Organize(context.Background(), plan)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
	env.AssertFileContent(src, "A")
}

func TestOrganizeRealFilesystem(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	src := env.AddFile("a.txt", "A")

	res, err := executor.New(executor.Options{FS: env.FS}).
		Organize(context.Background(), types.Plan{entry(src, env.Dest("txt", "a.txt"), "r")})
	require.NoError(t, err)
	assert.Empty(t, res.Failed())
	env.AssertMissing(src)
	env.AssertFileContent(env.Dest("txt", "a.txt"), "A")
}

func TestOrganizeLogsToComponentLoggerByDefault(t *testing.T) {
	var buf bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = saved })

	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	missing := filepath.Join(env.SourceDir, "gone.txt")
	plan := types.Plan{entry(missing, env.Dest("txt", "gone.txt"), "fallback_extension")}

	res, err := executor.New(executor.Options{FS: env.FS}).Organize(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, res.Failed(), 1)

	out := buf.String()
	assert.Contains(t, out, "Action failed")
	assert.Contains(t, out, "Organize finished")
	assert.Contains(t, out, `"component":"executor"`)
}

func TestOrganizeUsesInjectedLogger(t *testing.T) {
	var global, injected bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&global)
	t.Cleanup(func() { log.Logger = saved })

	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	a := env.AddFile("a.txt", "A")
	plan := types.Plan{entry(a, env.Dest("txt", "a.txt"), "fallback_extension")}

	logger := zerolog.New(&injected)
	_, err := executor.New(executor.Options{FS: env.FS, Logger: &logger}).Organize(context.Background(), plan)
	require.NoError(t, err)

	assert.Contains(t, injected.String(), "Organize finished")
	assert.Empty(t, global.String())
}
