package rules

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/types"
)

const (
	// FallbackRuleName is reported for files no rule matched
	FallbackRuleName = "fallback_extension"
	// DuplicatesDir is the directory under the destination root that holds duplicates
	DuplicatesDir   = "duplicates"
	duplicateSuffix = " (duplicate)"
)

// Resolution is the outcome of placing one file.
type Resolution struct {
	// Rule is the matching rule, nil for the fallback
	Rule *Rule
	// RuleName is the name reported in the plan
	RuleName string
	// Rendered is the destination directory relative to the root
	Rendered string
	// Dst is the full destination path including the file name
	Dst string
	// Duplicate is set when a hash rule found earlier identical content
	Duplicate    bool
	OriginalPath string
}

// Entry converts the resolution into a plan entry for src.
func (r Resolution) Entry(src string) types.PlanEntry {
	return types.PlanEntry{Src: src, Dst: r.Dst, Rule: r.RuleName}
}

// Resolve picks the destination of d. Hash rules consult and update
// tracker, so files must be resolved one at a time by its owner.
func Resolve(d types.FileDescriptor, set RuleSet, tracker *DedupTracker, destRoot string) (Resolution, error) {
	name := d.FileName()
	rule := set.FirstMatch(d)

	if rule == nil {
		rendered := ExtOrNoExt(d.Extension)
		return Resolution{
			RuleName: FallbackRuleName,
			Rendered: rendered,
			Dst:      filepath.Join(destRoot, rendered, name),
		}, nil
	}

	if rule.Kind == KindHash {
		if !d.HasHash() {
			return Resolution{}, errors.Newf(errors.ErrInvalidInput, "hash rule '%s' matched %s, which has no content hash", rule.Name, d.Path).
				WithDetails(map[string]interface{}{"rule": rule.Name, "path": d.Path})
		}
		if tracker == nil {
			return Resolution{}, errors.New(errors.ErrInternal, "hash rules need a dedup tracker")
		}
		if original, dup := tracker.CheckAndRecord(d.ContentHash, d.Path); dup {
			prefix := HashPrefix(d.ContentHash, rule.HashPrefixLen)
			rendered := filepath.Join(DuplicatesDir, prefix)
			return Resolution{
				Rule:         rule,
				RuleName:     rule.Name + duplicateSuffix,
				Rendered:     filepath.ToSlash(rendered),
				Dst:          filepath.Join(destRoot, rendered, name),
				Duplicate:    true,
				OriginalPath: original,
			}, nil
		}
	}

	rendered, err := rule.Render(d)
	if err != nil {
		return Resolution{}, err
	}
	dst := filepath.Join(destRoot, filepath.FromSlash(rendered), name)
	if !within(destRoot, dst) {
		return Resolution{}, errors.Newf(errors.ErrTemplateInvalid, "rule '%s' renders %q outside the destination", rule.Name, rendered).
			WithDetails(map[string]interface{}{"rule": rule.Name, "rendered": rendered})
	}
	return Resolution{
		Rule:     rule,
		RuleName: rule.Name,
		Rendered: rendered,
		Dst:      dst,
	}, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Explanation tells which rule claims a file and what it renders to,
// without any dedup bookkeeping.
type Explanation struct {
	Matched  bool
	Rule     *Rule
	RuleName string
	Rendered string
}

// Explain evaluates d against set the way Resolve does, minus duplicates.
func Explain(d types.FileDescriptor, set RuleSet) (Explanation, error) {
	rule := set.FirstMatch(d)
	if rule == nil {
		return Explanation{RuleName: FallbackRuleName, Rendered: ExtOrNoExt(d.Extension)}, nil
	}
	rendered, err := rule.Render(d)
	if err != nil {
		return Explanation{}, err
	}
	return Explanation{Matched: true, Rule: rule, RuleName: rule.Name, Rendered: rendered}, nil
}
