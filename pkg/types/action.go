package types

// ActionType defines what the executor did with one plan entry
type ActionType string

const (
	// ActionMove moved the file to its destination
	ActionMove ActionType = "move"

	// ActionCopy copied the file, leaving the source in place
	ActionCopy ActionType = "copy"

	// ActionSkip left the file alone because the destination existed
	ActionSkip ActionType = "skip"

	// ActionOverwrite replaced an existing destination
	ActionOverwrite ActionType = "overwrite"

	// ActionRename moved the file under a suffixed name to avoid a collision
	ActionRename ActionType = "rename"

	// ActionTrashError means the file reached the trash but not its destination
	ActionTrashError ActionType = "trash_error"

	// ActionError means the entry failed before anything was moved
	ActionError ActionType = "error"

	// ActionRestore is an undo of an earlier move, copy or trash
	ActionRestore ActionType = "restore"
)

// CollisionPolicy decides what happens when a destination already exists
type CollisionPolicy string

const (
	CollisionSkip      CollisionPolicy = "skip"
	CollisionOverwrite CollisionPolicy = "overwrite"
	CollisionRename    CollisionPolicy = "rename"
)

// Valid reports whether p is a known policy.
func (p CollisionPolicy) Valid() bool {
	switch p {
	case CollisionSkip, CollisionOverwrite, CollisionRename:
		return true
	}
	return false
}

// ManifestRecord is one executed action. Undoable records carry one of
// moved_from/moved_to, moved_from/trashed_at or copied_from/copied_to.
// Records with Error set describe a file that was left where it was.
type ManifestRecord struct {
	MovedFrom  string `json:"moved_from,omitempty"`
	MovedTo    string `json:"moved_to,omitempty"`
	TrashedAt  string `json:"trashed_at,omitempty"`
	CopiedFrom string `json:"copied_from,omitempty"`
	CopiedTo   string `json:"copied_to,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Undoable reports whether the record moved or copied something.
func (r ManifestRecord) Undoable() bool {
	return r.MovedTo != "" || r.TrashedAt != "" || r.CopiedTo != ""
}

// Manifest is the ordered list of records written by one organize run
type Manifest []ManifestRecord

// ActionResult reports the outcome for one plan entry
type ActionResult struct {
	Entry  PlanEntry
	Action ActionType
	// Final is where the file ended up, which differs from Entry.Dst after a rename
	Final string
	Error  error
}

// OrganizeResult summarizes one organize run
type OrganizeResult struct {
	Results  []ActionResult
	Manifest Manifest
}

// Count returns how many results carry the given action.
func (r OrganizeResult) Count(action ActionType) int {
	n := 0
	for _, res := range r.Results {
		if res.Action == action {
			n++
		}
	}
	return n
}

// Failed returns the results that carry an error.
func (r OrganizeResult) Failed() []ActionResult {
	var out []ActionResult
	for _, res := range r.Results {
		if res.Error != nil {
			out = append(out, res)
		}
	}
	return out
}
