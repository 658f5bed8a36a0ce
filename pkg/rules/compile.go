package rules

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/arthur-debert/sfo/pkg/errors"
)

// Configuration keys of a raw rule
const (
	KeyName           = "name"
	KeyType           = "type"
	KeyWhen           = "when"
	KeyTargetTemplate = "target_template"
	KeyPattern        = "pattern"
	KeyHashPrefixLen  = "hash_prefix_len"
)

var commonKeys = []string{KeyName, KeyType, KeyWhen, KeyTargetTemplate}

// AllowedKeys returns the configuration keys accepted for kind, sorted.
func AllowedKeys(kind Kind) []string {
	keys := append([]string{}, commonKeys...)
	switch kind {
	case KindExtension, KindRegex:
		keys = append(keys, KeyPattern)
	case KindHash:
		keys = append(keys, KeyHashPrefixLen)
	}
	sort.Strings(keys)
	return keys
}

// Compile validates raw rule mappings and turns them into an ordered
// RuleSet. The first invalid rule aborts compilation; nothing touches the
// filesystem.
func Compile(raw []map[string]interface{}) (RuleSet, error) {
	set := make(RuleSet, 0, len(raw))
	for i, m := range raw {
		r, err := compileOne(i, m)
		if err != nil {
			return nil, err
		}
		set = append(set, r)
	}
	return set, nil
}

func compileOne(index int, m map[string]interface{}) (*Rule, error) {
	name := fmt.Sprintf("rule_%d", index+1)
	if v, ok := m[KeyName]; ok {
		s, isString := v.(string)
		if !isString || strings.TrimSpace(s) == "" {
			return nil, errors.Newf(errors.ErrConfigInvalid, "Rule #%d has invalid 'name': %v", index+1, v).
				WithDetails(map[string]interface{}{"rule": name, "field": KeyName})
		}
		name = s
	}

	rawType, ok := m[KeyType]
	if !ok {
		return nil, errors.Newf(errors.ErrConfigInvalid, "Rule '%s' requires 'type'", name).
			WithDetails(map[string]interface{}{"rule": name, "field": KeyType})
	}
	typeName, isString := rawType.(string)
	if !isString {
		return nil, errors.Newf(errors.ErrConfigInvalid, "Unsupported rule type: %v (rule '%s')", rawType, name).
			WithDetails(map[string]interface{}{"rule": name, "type": fmt.Sprint(rawType)})
	}
	kind, known := ParseKind(typeName)
	if !known {
		return nil, errors.Newf(errors.ErrConfigInvalid, "Unsupported rule type: %s (rule '%s')", typeName, name).
			WithDetails(map[string]interface{}{"rule": name, "type": typeName})
	}

	if unexpected := unexpectedKeys(kind, m); len(unexpected) > 0 {
		return nil, errors.Newf(errors.ErrConfigInvalid, "Rule '%s' (type: %s) has unexpected keys: %s",
			name, kind, strings.Join(unexpected, ", ")).
			WithDetails(map[string]interface{}{"rule": name, "type": string(kind), "keys": unexpected})
	}

	r := Rule{Name: name, Kind: kind}

	if kind == KindExtension || kind == KindRegex {
		pattern, err := stringField(m, KeyPattern, name, kind, true)
		if err != nil {
			return nil, err
		}
		r.Pattern = pattern
	}

	when, err := stringField(m, KeyWhen, name, kind, false)
	if err != nil {
		return nil, err
	}
	r.When = when

	tmpl, err := stringField(m, KeyTargetTemplate, name, kind, true)
	if err != nil {
		return nil, err
	}
	r.TargetTemplate = tmpl

	if kind == KindHash {
		if v, present := m[KeyHashPrefixLen]; present {
			n, ok := positiveInt(v)
			if !ok {
				return nil, ruleError(name, kind, KeyHashPrefixLen,
					"Rule '%s' (type=%s) has invalid 'hash_prefix_len': %v", name, kind, v)
			}
			r.HashPrefixLen = n
		}
	}

	return NewRule(r)
}

func unexpectedKeys(kind Kind, m map[string]interface{}) []string {
	allowed := make(map[string]bool)
	for _, k := range AllowedKeys(kind) {
		allowed[k] = true
	}
	var out []string
	for k := range m {
		if !allowed[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// stringField reads key as a string. Missing or blank required fields are
// reported as "requires"; values of other types as invalid.
func stringField(m map[string]interface{}, key, name string, kind Kind, required bool) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		if required {
			return "", ruleError(name, kind, key, "Rule '%s' (type=%s) requires '%s'", name, kind, key)
		}
		return "", nil
	}
	s, isString := v.(string)
	if !isString {
		return "", ruleError(name, kind, key, "Rule '%s' (type=%s) has non-string '%s': %v", name, kind, key, v)
	}
	if required && strings.TrimSpace(s) == "" {
		return "", ruleError(name, kind, key, "Rule '%s' (type=%s) requires '%s'", name, kind, key)
	}
	return s, nil
}

// positiveInt accepts the integer shapes YAML, TOML and JSON decoders produce.
func positiveInt(v interface{}) (int, bool) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case int32:
		n = int64(x)
	case uint64:
		if x > math.MaxInt32 {
			return 0, false
		}
		n = int64(x)
	case float64:
		if x != math.Trunc(x) || x > math.MaxInt32 {
			return 0, false
		}
		n = int64(x)
	default:
		return 0, false
	}
	if n < 1 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}
