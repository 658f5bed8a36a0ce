package rules

import (
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/types"
)

// Kind is the rule variant
type Kind string

const (
	KindExtension    Kind = "extension"
	KindRegex        Kind = "regex"
	KindMtime        Kind = "mtime"
	KindHash         Kind = "hash"
	KindCapturedDate Kind = "captured_date"
)

// kindAliases maps accepted type spellings to kinds.
var kindAliases = map[string]Kind{
	"extension":     KindExtension,
	"regex":         KindRegex,
	"mtime":         KindMtime,
	"hash":          KindHash,
	"captured_date": KindCapturedDate,
	"exif_date":     KindCapturedDate,
}

// ParseKind accepts a rule type case- and whitespace-insensitively.
func ParseKind(s string) (Kind, bool) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

// Kinds lists every rule kind.
func Kinds() []Kind {
	return []Kind{KindExtension, KindRegex, KindMtime, KindHash, KindCapturedDate}
}

// Rule is one compiled, immutable rule. Build rules with NewRule or Compile;
// a zero-value Rule is prepared on every call, which is slow but correct.
type Rule struct {
	Name           string
	Kind           Kind
	When           string
	TargetTemplate string
	// Pattern is the extension list or the regular expression
	Pattern       string
	HashPrefixLen int

	template   Template
	extensions map[string]bool
	regex      *regexp.Regexp
	prepared   bool
}

// NewRule validates r and returns a prepared copy.
func NewRule(r Rule) (*Rule, error) {
	if r.HashPrefixLen == 0 {
		r.HashPrefixLen = DefaultHashPrefixLen
	}
	if r.HashPrefixLen < 0 {
		return nil, ruleError(r.Name, r.Kind, "hash_prefix_len", "Rule '%s' (type=%s) has invalid 'hash_prefix_len': %d", r.Name, r.Kind, r.HashPrefixLen)
	}

	if r.When != "" && !doublestar.ValidatePattern(r.When) {
		return nil, ruleError(r.Name, r.Kind, "when", "Rule '%s' (type=%s) has invalid 'when' glob: %s", r.Name, r.Kind, r.When)
	}

	switch r.Kind {
	case KindExtension:
		r.extensions = ParseExtensions(r.Pattern)
		if len(r.extensions) == 0 {
			return nil, ruleError(r.Name, r.Kind, "pattern", "Rule '%s' (type=%s) requires 'pattern'", r.Name, r.Kind)
		}
	case KindRegex:
		if strings.TrimSpace(r.Pattern) == "" {
			return nil, ruleError(r.Name, r.Kind, "pattern", "Rule '%s' (type=%s) requires 'pattern'", r.Name, r.Kind)
		}
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "Rule '%s' (type=%s) has invalid regex", r.Name, r.Kind).
				WithDetails(map[string]interface{}{"rule": r.Name, "type": string(r.Kind), "field": "pattern"})
		}
		r.regex = re
	case KindMtime, KindHash, KindCapturedDate:
	default:
		return nil, errors.Newf(errors.ErrConfigInvalid, "Unsupported rule type: %s (rule '%s')", r.Kind, r.Name).
			WithDetails(map[string]interface{}{"rule": r.Name, "type": string(r.Kind)})
	}

	if r.TargetTemplate == "" {
		return nil, ruleError(r.Name, r.Kind, "target_template", "Rule '%s' (type=%s) requires 'target_template'", r.Name, r.Kind)
	}
	tmpl, err := ParseTemplate(r.TargetTemplate)
	if err != nil {
		if se, ok := err.(*errors.SfoError); ok {
			se.WithDetail("rule", r.Name)
		}
		return nil, err
	}
	r.template = tmpl
	r.prepared = true
	return &r, nil
}

func ruleError(name string, kind Kind, field, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrConfigInvalid, format, args...).
		WithDetails(map[string]interface{}{"rule": name, "type": string(kind), "field": field})
}

// ParseExtensions splits a comma separated extension list into a set of
// lowercase extensions without dots. Empty entries are dropped.
func ParseExtensions(pattern string) map[string]bool {
	set := make(map[string]bool)
	for _, part := range strings.Split(pattern, ",") {
		ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(part), "."))
		if ext != "" {
			set[ext] = true
		}
	}
	return set
}

func (r *Rule) ready() (*Rule, error) {
	if r.prepared {
		return r, nil
	}
	return NewRule(*r)
}

// Template returns the parsed destination template.
func (r *Rule) Template() Template {
	p, err := r.ready()
	if err != nil {
		return Template{raw: r.TargetTemplate}
	}
	return p.template
}

// InScope reports whether the file name satisfies the rule's when glob.
func (r *Rule) InScope(d types.FileDescriptor) bool {
	if r.When == "" {
		return true
	}
	ok, err := doublestar.Match(r.When, d.FileName())
	return err == nil && ok
}

// Matches reports whether the rule claims d. The when glob is checked first.
func (r *Rule) Matches(d types.FileDescriptor) bool {
	p, err := r.ready()
	if err != nil {
		return false
	}
	if !p.InScope(d) {
		return false
	}

	switch p.Kind {
	case KindExtension:
		return p.extensions[d.Extension]
	case KindRegex:
		return p.regex.MatchString(d.FileName())
	case KindMtime, KindHash, KindCapturedDate:
		return true
	}
	return false
}

// Render expands the rule's destination template for d.
func (r *Rule) Render(d types.FileDescriptor) (string, error) {
	p, err := r.ready()
	if err != nil {
		return "", err
	}
	return p.template.Render(d, p.HashPrefixLen), nil
}

// Extensions returns the allowed extensions of an extension rule.
func (r *Rule) Extensions() []string {
	p, err := r.ready()
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(p.extensions))
	for ext := range p.extensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// RuleSet is an ordered list of rules; the first match wins.
type RuleSet []*Rule

// NeedsHash reports whether any rule is a hash rule, which makes content
// hashing necessary for every file.
func (s RuleSet) NeedsHash() bool {
	for _, r := range s {
		if r.Kind == KindHash {
			return true
		}
	}
	return false
}

// FirstMatch returns the first rule that matches d, or nil.
func (s RuleSet) FirstMatch(d types.FileDescriptor) *Rule {
	for _, r := range s {
		if r.Matches(d) {
			return r
		}
	}
	return nil
}

// Names returns the rule names in order.
func (s RuleSet) Names() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = r.Name
	}
	return out
}
