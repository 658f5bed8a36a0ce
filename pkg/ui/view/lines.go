package view

import "fmt"

// PlanTitle heads the dry-run table.
const PlanTitle = "Dry Run Plan"

// Footer summarizes a dry run.
func (p Plan) Footer() string {
	return fmt.Sprintf("Planned moves: %d (no changes made)", len(p.Entries))
}

// Footer summarizes an organize run.
func (o Organize) Footer() string {
	return fmt.Sprintf("Done. Manifest written to %s", o.Manifest)
}

// Line describes one organize action.
func (a Action) Line() string {
	switch a.Action {
	case "move":
		return fmt.Sprintf("Moved: %s -> %s", a.Src, a.Dst)
	case "copy":
		return fmt.Sprintf("Copied: %s -> %s", a.Src, a.Dst)
	case "rename":
		return fmt.Sprintf("Renamed: %s -> %s", a.Src, a.Dst)
	case "overwrite":
		return fmt.Sprintf("Overwrote: %s", a.Dst)
	case "skip":
		return fmt.Sprintf("Skipped (exists): %s", a.Dst)
	case "trash_error":
		return fmt.Sprintf("Error moving %s: %s. File saved in trash.", a.Src, a.Error)
	}
	if a.Permission {
		return fmt.Sprintf("Permission error: %s: %s", a.Src, a.Error)
	}
	return fmt.Sprintf("Error: %s: %s", a.Src, a.Error)
}

// Failed reports whether the action left something undone.
func (a Action) Failed() bool {
	return a.Error != ""
}

// Line describes one undo outcome.
func (u UndoItem) Line() string {
	switch u.Status {
	case UndoRestored:
		return fmt.Sprintf("Restored: %s", u.To)
	case UndoRemoved:
		return fmt.Sprintf("Removed copy: %s", u.From)
	case UndoMissing:
		return fmt.Sprintf("Skip missing: %s", u.From)
	}
	return fmt.Sprintf("Failed: %s: %s", u.From, u.Error)
}

// UndoFooter closes undo output.
const UndoFooter = "Undo complete."

// ValidMessage and InvalidMessage report rules validate results.
const (
	ValidMessage   = "Config is valid."
	InvalidMessage = "Invalid config: %s"
)
