// Package view holds the renderer-neutral shapes of command output.
//
// Paths are stored with forward slashes so JSON output reads the same on
// every platform.
package view

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/sfo/pkg/executor"
	"github.com/arthur-debert/sfo/pkg/rules"
	"github.com/arthur-debert/sfo/pkg/types"
)

// PlanEntry is one planned move.
type PlanEntry struct {
	Src  string `json:"src"`
	Dst  string `json:"dst"`
	Rule string `json:"rule"`
}

// Plan is the dry-run output.
type Plan struct {
	Entries []PlanEntry
	// Vanished files disappeared between the scan and planning
	Vanished []string
}

// Action is what organize did with one file.
type Action struct {
	Action string `json:"action"`
	Src    string `json:"src"`
	Dst    string `json:"dst"`
	Rule   string `json:"rule"`
	Error  string `json:"error,omitempty"`
	// Permission marks failures caused by missing access rights
	Permission bool `json:"permission,omitempty"`
}

// Organize is the organize output.
type Organize struct {
	Actions  []Action `json:"actions"`
	Manifest string   `json:"manifest"`
	Moved    int      `json:"moved"`
	Copied   int      `json:"copied"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
}

// UndoItem is the outcome for one manifest record.
type UndoItem struct {
	Status string `json:"status"`
	From   string `json:"from"`
	To     string `json:"to,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Undo is the undo output.
type Undo struct {
	Items []UndoItem `json:"items"`
}

// Explain reports which rule claims a file.
type Explain struct {
	File        string `json:"file"`
	Matched     bool   `json:"matched"`
	Rule        string `json:"rule"`
	Kind        string `json:"type,omitempty"`
	Rendered    string `json:"rendered"`
	Destination string `json:"destination,omitempty"`
}

// RuleSummary describes one compiled rule.
type RuleSummary struct {
	Name     string `json:"name"`
	Kind     string `json:"type"`
	When     string `json:"when,omitempty"`
	Template string `json:"target_template"`
}

// Validation is the rules validate output.
type Validation struct {
	Path  string        `json:"path"`
	Valid bool          `json:"valid"`
	Error string        `json:"error,omitempty"`
	Rules []RuleSummary `json:"rules,omitempty"`
}

// Slash converts a path to forward slashes.
func Slash(p string) string {
	return filepath.ToSlash(p)
}

// FromPlan converts a plan for display.
func FromPlan(p types.Plan, vanished []string) Plan {
	out := Plan{Entries: make([]PlanEntry, 0, len(p))}
	for _, e := range p {
		out.Entries = append(out.Entries, PlanEntry{Src: Slash(e.Src), Dst: Slash(e.Dst), Rule: e.Rule})
	}
	for _, v := range vanished {
		out.Vanished = append(out.Vanished, Slash(v))
	}
	return out
}

// FromOrganize converts an organize result for display.
func FromOrganize(r types.OrganizeResult, manifest string) Organize {
	out := Organize{Actions: make([]Action, 0, len(r.Results)), Manifest: Slash(manifest)}
	for _, res := range r.Results {
		dst := res.Final
		if dst == "" {
			dst = res.Entry.Dst
		}
		a := Action{
			Action: string(res.Action),
			Src:    Slash(res.Entry.Src),
			Dst:    Slash(dst),
			Rule:   res.Entry.Rule,
		}
		if res.Error != nil {
			a.Error = res.Error.Error()
			a.Permission = stderrors.Is(res.Error, fs.ErrPermission)
		}
		out.Actions = append(out.Actions, a)

		switch res.Action {
		case types.ActionMove, types.ActionRename, types.ActionOverwrite:
			if res.Error == nil {
				out.Moved++
			}
		case types.ActionCopy:
			out.Copied++
		case types.ActionSkip:
			out.Skipped++
		}
		if res.Error != nil {
			out.Failed++
		}
	}
	return out
}

// Undo statuses, as found in UndoItem.Status.
const (
	UndoRestored = string(executor.UndoRestored)
	UndoRemoved  = string(executor.UndoRemoved)
	UndoMissing  = string(executor.UndoMissing)
	UndoFailed   = string(executor.UndoFailed)
)

// FromUndo converts an undo result for display.
func FromUndo(r executor.UndoResult) Undo {
	out := Undo{Items: make([]UndoItem, 0, len(r.Outcomes))}
	for _, o := range r.Outcomes {
		item := UndoItem{Status: string(o.Status), From: Slash(o.From), To: Slash(o.To)}
		if o.Err != nil {
			item.Error = o.Err.Error()
		}
		out.Items = append(out.Items, item)
	}
	return out
}

// FromExplain converts a rule explanation for file. Destination is only
// filled in when destRoot is given.
func FromExplain(file string, ex rules.Explanation, destRoot string) Explain {
	out := Explain{
		File:     Slash(file),
		Matched:  ex.Matched,
		Rule:     ex.RuleName,
		Rendered: ex.Rendered,
	}
	if ex.Rule != nil {
		out.Kind = string(ex.Rule.Kind)
	}
	if destRoot != "" {
		out.Destination = Slash(filepath.Join(destRoot, ex.Rendered, filepath.Base(file)))
	}
	return out
}

// Summaries lists the rules of set in order.
func Summaries(set rules.RuleSet) []RuleSummary {
	out := make([]RuleSummary, 0, len(set))
	for _, r := range set {
		out = append(out, RuleSummary{Name: r.Name, Kind: string(r.Kind), When: r.When, Template: r.TargetTemplate})
	}
	return out
}
