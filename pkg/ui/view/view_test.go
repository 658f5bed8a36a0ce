package view_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/executor"
	"github.com/arthur-debert/sfo/pkg/rules"
	"github.com/arthur-debert/sfo/pkg/types"
	"github.com/arthur-debert/sfo/pkg/ui/view"
)

func TestFromPlan(t *testing.T) {
	p := view.FromPlan(types.Plan{{Src: "/s/a", Dst: "/d/x/a", Rule: "x"}}, []string{"/s/gone"})
	assert.Equal(t, []view.PlanEntry{{Src: "/s/a", Dst: "/d/x/a", Rule: "x"}}, p.Entries)
	assert.Equal(t, []string{"/s/gone"}, p.Vanished)
	assert.Equal(t, "Planned moves: 1 (no changes made)", p.Footer())

	assert.NotNil(t, view.FromPlan(nil, nil).Entries)
}

func TestFromOrganize(t *testing.T) {
	denied := errors.Wrap(&os.PathError{Op: "rename", Path: "/s/c", Err: os.ErrPermission}, errors.ErrFileMove, "failed to move /s/c")
	r := types.OrganizeResult{Results: []types.ActionResult{
		{Entry: types.PlanEntry{Src: "/s/a", Dst: "/d/a", Rule: "r"}, Action: types.ActionMove, Final: "/d/a"},
		{Entry: types.PlanEntry{Src: "/s/b", Dst: "/d/b", Rule: "r"}, Action: types.ActionRename, Final: "/d/b_(1)"},
		{Entry: types.PlanEntry{Src: "/s/s", Dst: "/d/s", Rule: "r"}, Action: types.ActionSkip},
		{Entry: types.PlanEntry{Src: "/s/c", Dst: "/d/c", Rule: "r"}, Action: types.ActionError, Error: denied},
		{Entry: types.PlanEntry{Src: "/s/k", Dst: "/d/k", Rule: "r"}, Action: types.ActionCopy, Final: "/d/k"},
	}}

	o := view.FromOrganize(r, "m.json")
	assert.Equal(t, 2, o.Moved)
	assert.Equal(t, 1, o.Copied)
	assert.Equal(t, 1, o.Skipped)
	assert.Equal(t, 1, o.Failed)
	assert.Equal(t, "/d/s", o.Actions[2].Dst, "skips report the planned destination")
	assert.True(t, o.Actions[3].Permission)
	assert.True(t, o.Actions[3].Failed())
	assert.Equal(t, "Renamed: /s/b -> /d/b_(1)", o.Actions[1].Line())
	assert.Contains(t, o.Actions[3].Line(), "Permission error: /s/c")
}

func TestFromUndo(t *testing.T) {
	u := view.FromUndo(executor.UndoResult{Outcomes: []executor.UndoOutcome{
		{Status: executor.UndoRestored, From: "/d/a", To: "/s/a"},
		{Status: executor.UndoFailed, From: "/d/b", To: "/s/b", Err: fmt.Errorf("exists")},
	}})
	assert.Equal(t, []view.UndoItem{
		{Status: "restored", From: "/d/a", To: "/s/a"},
		{Status: "failed", From: "/d/b", To: "/s/b", Error: "exists"},
	}, u.Items)
}

func TestFromExplain(t *testing.T) {
	set, err := rules.Compile([]map[string]interface{}{
		{"name": "images", "type": "extension", "pattern": "jpg", "target_template": "images/{ext}", "when": "*.jpg"},
	})
	require.NoError(t, err)

	e := view.FromExplain("/s/a.jpg", rules.Explanation{Matched: true, Rule: set[0], RuleName: "images", Rendered: "images/jpg"}, "/d")
	assert.Equal(t, view.Explain{
		File: "/s/a.jpg", Matched: true, Rule: "images", Kind: "extension",
		Rendered: "images/jpg", Destination: "/d/images/jpg/a.jpg",
	}, e)

	assert.Equal(t, []view.RuleSummary{{Name: "images", Kind: "extension", When: "*.jpg", Template: "images/{ext}"}}, view.Summaries(set))
}
