package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/rules"
)

func TestRuleMatches(t *testing.T) {
	tests := []struct {
		name string
		rule rules.Rule
		file string
		want bool
	}{
		{"extension_hit", rules.Rule{Kind: rules.KindExtension, Pattern: "jpg,png", TargetTemplate: "x"}, "a.PNG", true},
		{"extension_miss", rules.Rule{Kind: rules.KindExtension, Pattern: "jpg,png", TargetTemplate: "x"}, "a.gif", false},
		{"extension_no_ext", rules.Rule{Kind: rules.KindExtension, Pattern: "jpg", TargetTemplate: "x"}, "jpg", false},
		{"regex_search_not_anchored", rules.Rule{Kind: rules.KindRegex, Pattern: "voice", TargetTemplate: "x"}, "Invoice_2023.pdf", true},
		{"regex_case_insensitive", rules.Rule{Kind: rules.KindRegex, Pattern: "^INVOICE", TargetTemplate: "x"}, "invoice.pdf", true},
		{"regex_miss", rules.Rule{Kind: rules.KindRegex, Pattern: "^receipt", TargetTemplate: "x"}, "invoice.pdf", false},
		{"mtime_always", rules.Rule{Kind: rules.KindMtime, TargetTemplate: "x"}, "anything", true},
		{"hash_always", rules.Rule{Kind: rules.KindHash, TargetTemplate: "x"}, "anything.bin", true},
		{"captured_always", rules.Rule{Kind: rules.KindCapturedDate, TargetTemplate: "x"}, "a.txt", true},
		{"when_blocks", rules.Rule{Kind: rules.KindMtime, When: "*.jpg", TargetTemplate: "x"}, "notes.txt", false},
		{"when_allows", rules.Rule{Kind: rules.KindMtime, When: "*.jpg", TargetTemplate: "x"}, "a.jpg", true},
		{"when_is_case_sensitive", rules.Rule{Kind: rules.KindMtime, When: "*.jpg", TargetTemplate: "x"}, "a.JPG", false},
		{"when_char_class", rules.Rule{Kind: rules.KindMtime, When: "IMG_[0-9]*", TargetTemplate: "x"}, "IMG_7.jpg", true},
		{"when_then_kind", rules.Rule{Kind: rules.KindExtension, Pattern: "txt", When: "*.jpg", TargetTemplate: "x"}, "a.jpg", false},
		{"invalid_rule_never_matches", rules.Rule{Kind: rules.KindExtension, TargetTemplate: "x"}, "a.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.rule
			assert.Equal(t, tt.want, r.Matches(file(tt.file, "")), "unprepared rule")

			if prepared, err := rules.NewRule(tt.rule); err == nil {
				assert.Equal(t, tt.want, prepared.Matches(file(tt.file, "")), "prepared rule")
			}
		})
	}
}

func TestRuleRenderUnpreparedReportsTemplateError(t *testing.T) {
	r := rules.Rule{Name: "bad", Kind: rules.KindMtime, TargetTemplate: "{yyyy}/{quarter}"}

	_, err := r.Render(file("a.txt", ""))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateInvalid))
	assert.Equal(t, "bad", errors.GetErrorDetails(err)["rule"])
}

func TestRuleRenderUsesPrefixLength(t *testing.T) {
	r, err := rules.NewRule(rules.Rule{Name: "h", Kind: rules.KindHash, HashPrefixLen: 5, TargetTemplate: "{hash_prefix}"})
	require.NoError(t, err)

	out, err := r.Render(file("a.bin", "0123456789"))
	require.NoError(t, err)
	assert.Equal(t, "01234", out)
}

func TestNewRuleRejectsUnknownKind(t *testing.T) {
	_, err := rules.NewRule(rules.Rule{Name: "x", Kind: "size", TargetTemplate: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unsupported rule type: size (rule 'x')")
}

func TestParseExtensions(t *testing.T) {
	assert.Equal(t, map[string]bool{"jpg": true, "png": true, "tar": true},
		rules.ParseExtensions(" JPG , .png,, tar "))
	assert.Empty(t, rules.ParseExtensions(""))
}

func TestRuleSetFirstMatch(t *testing.T) {
	set := mustCompile(t,
		map[string]interface{}{"name": "a", "type": "extension", "pattern": "txt", "target_template": "a"},
		map[string]interface{}{"name": "b", "type": "mtime", "target_template": "b"},
	)
	assert.Equal(t, "a", set.FirstMatch(file("x.txt", "")).Name)
	assert.Equal(t, "b", set.FirstMatch(file("x.md", "")).Name)
	assert.Nil(t, rules.RuleSet{}.FirstMatch(file("x.md", "")))
	assert.False(t, set.NeedsHash())
}

func TestDedupTracker(t *testing.T) {
	tr := rules.NewDedupTracker()

	_, seen := tr.Seen("h1")
	assert.False(t, seen)

	original, dup := tr.CheckAndRecord("h1", "/a")
	assert.False(t, dup)
	assert.Empty(t, original)

	original, dup = tr.CheckAndRecord("h1", "/b")
	assert.True(t, dup)
	assert.Equal(t, "/a", original)

	tr.Record("h1", "/c")
	p, seen := tr.Seen("h1")
	assert.True(t, seen)
	assert.Equal(t, "/a", p, "record keeps the first path")

	tr.Record("h2", "/d")
	assert.Equal(t, 2, tr.Len())
}

func TestDedupTrackerZeroValue(t *testing.T) {
	var tr rules.DedupTracker

	_, seen := tr.Seen("h1")
	assert.False(t, seen)
	assert.Equal(t, 0, tr.Len())

	original, dup := tr.CheckAndRecord("h1", "/a")
	assert.False(t, dup)
	assert.Empty(t, original)

	var rec rules.DedupTracker
	rec.Record("h2", "/b")
	p, seen := rec.Seen("h2")
	assert.True(t, seen)
	assert.Equal(t, "/b", p)
}

func TestReferenceCoversEveryKindAndToken(t *testing.T) {
	doc := rules.Reference()
	for _, k := range rules.Kinds() {
		assert.Contains(t, doc, "### "+string(k))
	}
	for _, tok := range rules.KnownTokens() {
		assert.Contains(t, doc, "{"+string(tok)+"}")
	}
}
