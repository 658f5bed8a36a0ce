package executor

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/logging"
	"github.com/arthur-debert/sfo/pkg/types"
)

// UndoStatus is the outcome of reversing one manifest record
type UndoStatus string

const (
	// UndoRestored moved a file back to where it came from
	UndoRestored UndoStatus = "restored"
	// UndoRemoved deleted a copy
	UndoRemoved UndoStatus = "removed"
	// UndoMissing found nothing at the recorded location
	UndoMissing UndoStatus = "missing"
	// UndoFailed could not reverse the record
	UndoFailed UndoStatus = "failed"
)

// UndoOutcome reports what happened to one record.
type UndoOutcome struct {
	Record types.ManifestRecord
	Status UndoStatus
	// From is where the file was found, To where it went (empty for removals)
	From string
	To   string
	Err  error
}

// UndoResult lists outcomes in the order they were applied, newest record first.
type UndoResult struct {
	Outcomes []UndoOutcome
}

// Count returns how many outcomes have status s.
func (r UndoResult) Count(s UndoStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Undo reverses m, newest record first. It is best effort: missing files are
// reported and skipped, and a failure on one record does not stop the rest.
// Records of failed actions changed nothing and are ignored. A restore never
// replaces a file that has since appeared at the original location.
func (e *Executor) Undo(ctx context.Context, m types.Manifest) (UndoResult, error) {
	done := logging.LogOperationStart(e.logger, "undo")
	defer done()

	var out UndoResult
	for i := len(m) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return out, errors.Wrap(err, errors.ErrCanceled, "undo canceled")
		}

		rec := m[i]
		if !rec.Undoable() {
			continue
		}
		out.Outcomes = append(out.Outcomes, e.undoOne(rec))
	}

	e.logger.Info().
		Int("records", len(m)).
		Int("restored", out.Count(UndoRestored)).
		Int("removed", out.Count(UndoRemoved)).
		Int("missing", out.Count(UndoMissing)).
		Int("failed", out.Count(UndoFailed)).
		Msg("Undo finished")
	return out, nil
}

func (e *Executor) undoOne(rec types.ManifestRecord) UndoOutcome {
	if rec.CopiedTo != "" {
		o := UndoOutcome{Record: rec, From: rec.CopiedTo}
		if !e.exists(rec.CopiedTo) {
			o.Status = UndoMissing
			return o
		}
		if err := e.fs.Remove(e.path(rec.CopiedTo)); err != nil {
			o.Status = UndoFailed
			o.Err = errors.Wrapf(err, errors.ErrFileAccess, "failed to remove copy %s", rec.CopiedTo).
				WithDetail("path", rec.CopiedTo)
			return o
		}
		e.record(types.ActionRestore, rec.CopiedTo, "", "", zerolog.InfoLevel)
		o.Status = UndoRemoved
		return o
	}

	from := rec.MovedTo
	if from == "" {
		from = rec.TrashedAt
	}
	o := UndoOutcome{Record: rec, From: from, To: rec.MovedFrom}

	if !e.exists(from) {
		o.Status = UndoMissing
		return o
	}
	if e.exists(rec.MovedFrom) {
		o.Status = UndoFailed
		o.Err = errors.Newf(errors.ErrFileExists, "cannot restore %s: a file already exists there", rec.MovedFrom).
			WithDetail("path", rec.MovedFrom)
		return o
	}
	if err := e.fs.MkdirAll(e.path(filepath.Dir(rec.MovedFrom)), 0755); err != nil {
		o.Status = UndoFailed
		o.Err = errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(rec.MovedFrom))
		return o
	}
	if err := e.move(from, rec.MovedFrom); err != nil {
		o.Status = UndoFailed
		o.Err = errors.Wrapf(err, errors.ErrFileMove, "failed to restore %s", rec.MovedFrom).
			WithDetail("path", from)
		return o
	}

	e.record(types.ActionRestore, from, rec.MovedFrom, "", zerolog.InfoLevel)
	o.Status = UndoRestored
	return o
}
