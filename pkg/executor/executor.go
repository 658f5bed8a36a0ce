package executor

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/filesystem"
	"github.com/arthur-debert/sfo/pkg/logging"
	"github.com/arthur-debert/sfo/pkg/types"
	"github.com/arthur-debert/sfo/pkg/winpath"
)

// Options contains configuration for the executor
type Options struct {
	// Filesystem operations interface for testing
	FS types.FS
	// Collision defaults to rename
	Collision types.CollisionPolicy
	// TrashDir stages each move through this directory when set
	TrashDir string
	// Copy leaves sources in place
	Copy bool
	// ActionLog receives one JSON line per action when set
	ActionLog *zerolog.Logger
	// Platform defaults to the running platform
	Platform *winpath.Platform
	// LongPaths passes filesystem paths through winpath.LongPath
	LongPaths bool
	// Logger defaults to the "executor" component logger
	Logger *zerolog.Logger
}

// Executor moves or copies planned files into place
type Executor struct {
	fs        types.FS
	collision types.CollisionPolicy
	trashDir  string
	copy      bool
	actionLog *zerolog.Logger
	platform  winpath.Platform
	longPaths bool
	logger    zerolog.Logger
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	collision := opts.Collision
	if collision == "" {
		collision = types.CollisionRename
	}

	platform := winpath.Current
	if opts.Platform != nil {
		platform = *opts.Platform
	}

	return &Executor{
		fs:        fs,
		collision: collision,
		trashDir:  opts.TrashDir,
		copy:      opts.Copy,
		actionLog: opts.ActionLog,
		platform:  platform,
		longPaths: opts.LongPaths,
		logger:    logger,
	}
}

// Organize applies plan entry by entry. The returned error is reserved for
// problems that stop the whole run: an invalid collision policy, an
// unusable trash directory or cancellation. The result holds everything done
// up to that point.
func (e *Executor) Organize(ctx context.Context, plan types.Plan) (types.OrganizeResult, error) {
	done := logging.LogOperationStart(e.logger, "organize")
	defer done()

	var out types.OrganizeResult
	if !e.collision.Valid() {
		return out, errors.Newf(errors.ErrConfigInvalid, "Invalid collision policy: %q", e.collision).
			WithDetail("field", "collision")
	}

	if e.staging() {
		if err := e.fs.MkdirAll(e.path(e.trashDir), 0755); err != nil {
			return out, errors.Wrapf(err, errors.ErrDirCreate, "failed to create trash directory %s", e.trashDir).
				WithDetail("path", e.trashDir)
		}
	}

	for _, entry := range plan {
		if err := ctx.Err(); err != nil {
			return out, errors.Wrap(err, errors.ErrCanceled, "organize canceled")
		}

		res, rec := e.apply(entry)
		out.Results = append(out.Results, res)
		if rec != nil {
			out.Manifest = append(out.Manifest, *rec)
		}
	}

	e.logger.Info().
		Int("entries", len(plan)).
		Int("moved", out.Count(types.ActionMove)+out.Count(types.ActionRename)+out.Count(types.ActionOverwrite)).
		Int("copied", out.Count(types.ActionCopy)).
		Int("skipped", out.Count(types.ActionSkip)).
		Int("failed", len(out.Failed())).
		Msg("Organize finished")
	return out, nil
}

func (e *Executor) staging() bool {
	return e.trashDir != "" && !e.copy
}

// apply executes one entry. A nil record means nothing changed on disk.
func (e *Executor) apply(entry types.PlanEntry) (types.ActionResult, *types.ManifestRecord) {
	src := entry.Src
	dst := e.destination(entry.Dst)
	result := types.ActionResult{Entry: entry, Final: dst}

	if err := e.fs.MkdirAll(e.path(filepath.Dir(dst)), 0755); err != nil {
		err = errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(dst)).
			WithDetail("path", filepath.Dir(dst))
		return e.failed(result, err)
	}

	action := types.ActionMove
	if e.exists(dst) {
		switch e.collision {
		case types.CollisionSkip:
			e.record(types.ActionSkip, src, dst, entry.Rule, zerolog.InfoLevel)
			result.Action = types.ActionSkip
			result.Final = ""
			return result, nil
		case types.CollisionOverwrite:
			e.record(types.ActionOverwrite, src, dst, entry.Rule, zerolog.InfoLevel)
			action = types.ActionOverwrite
		case types.CollisionRename:
			dst = e.uniqueName(dst)
			result.Final = dst
			e.record(types.ActionRename, src, dst, entry.Rule, zerolog.InfoLevel)
			action = types.ActionRename
		}
	}

	switch {
	case e.copy:
		if err := e.copyFile(src, dst); err != nil {
			return e.failed(result, errors.Wrapf(err, errors.ErrFileWrite, "failed to copy %s", src).
				WithDetail("path", src))
		}
		e.record(types.ActionCopy, src, dst, entry.Rule, zerolog.InfoLevel)
		result.Action = types.ActionCopy
		return result, &types.ManifestRecord{CopiedFrom: src, CopiedTo: dst}

	case e.staging():
		staged := e.uniqueName(filepath.Join(e.trashDir, filepath.Base(src)))
		if err := e.move(src, staged); err != nil {
			return e.failed(result, errors.Wrapf(err, errors.ErrFileMove, "failed to stage %s", src).
				WithDetail("path", src))
		}
		if err := e.move(staged, dst); err != nil {
			e.logger.Error().Err(err).Str("src", src).Str("trashed_at", staged).Msg("Move failed, file kept in trash")
			e.record(types.ActionTrashError, src, staged, entry.Rule, zerolog.ErrorLevel)
			result.Action = types.ActionTrashError
			result.Final = staged
			result.Error = errors.Wrapf(err, errors.ErrFileMove, "failed to move %s, file saved in trash", src).
				WithDetail("path", src).
				WithDetail("trashed_at", staged)
			return result, &types.ManifestRecord{MovedFrom: src, TrashedAt: staged}
		}

	default:
		if err := e.move(src, dst); err != nil {
			return e.failed(result, errors.Wrapf(err, errors.ErrFileMove, "failed to move %s", src).
				WithDetail("path", src))
		}
	}

	e.record(types.ActionMove, src, dst, entry.Rule, zerolog.InfoLevel)
	result.Action = action
	return result, &types.ManifestRecord{MovedFrom: src, MovedTo: dst}
}

// failed marks an entry whose source was left untouched.
func (e *Executor) failed(result types.ActionResult, err error) (types.ActionResult, *types.ManifestRecord) {
	e.logger.Error().Err(err).Str("src", result.Entry.Src).Msg("Action failed")
	e.record(types.ActionError, result.Entry.Src, result.Final, result.Entry.Rule, zerolog.ErrorLevel)

	result.Action = types.ActionError
	result.Error = err
	result.Final = ""
	if e.copy {
		return result, &types.ManifestRecord{CopiedFrom: result.Entry.Src, Error: err.Error()}
	}
	return result, &types.ManifestRecord{MovedFrom: result.Entry.Src, Error: err.Error()}
}

// destination sanitizes the file name part of dst for the target platform.
func (e *Executor) destination(dst string) string {
	if !e.platform.Windows {
		return dst
	}
	dir, name := filepath.Split(dst)
	return filepath.Join(dir, e.platform.SanitizeFilename(name))
}

func (e *Executor) record(action types.ActionType, src, dst, rule string, level zerolog.Level) {
	e.logger.Debug().
		Str("action", string(action)).
		Str("src", src).
		Str("dst", dst).
		Str("rule", rule).
		Msg("Action")

	if e.actionLog == nil {
		return
	}
	e.actionLog.WithLevel(level).
		Str("action", string(action)).
		Str("src", filepath.ToSlash(src)).
		Str("dst", filepath.ToSlash(dst)).
		Str("rule", rule).
		Send()
}
