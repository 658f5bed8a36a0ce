package rules

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/sfo/pkg/errors"
	"github.com/arthur-debert/sfo/pkg/types"
)

// Token is a placeholder recognized in destination templates
type Token string

const (
	TokenName       Token = "name"
	TokenExt        Token = "ext"
	TokenYear       Token = "yyyy"
	TokenMonth      Token = "mm"
	TokenDay        Token = "dd"
	TokenHash       Token = "hash"
	TokenHashPrefix Token = "hash_prefix"
)

// NoExt replaces {ext} for files without an extension.
const NoExt = "noext"

// DefaultHashPrefixLen is used when a rule does not set hash_prefix_len.
const DefaultHashPrefixLen = 2

var knownTokens = map[Token]bool{
	TokenName:       true,
	TokenExt:        true,
	TokenYear:       true,
	TokenMonth:      true,
	TokenDay:        true,
	TokenHash:       true,
	TokenHashPrefix: true,
}

// KnownTokens lists the template tokens in documentation order.
func KnownTokens() []Token {
	return []Token{TokenName, TokenExt, TokenYear, TokenMonth, TokenDay, TokenHash, TokenHashPrefix}
}

type segment struct {
	literal string
	token   Token
}

// Template is a parsed destination template
type Template struct {
	raw      string
	segments []segment
}

// ParseTemplate splits raw into literals and tokens, rejecting unknown
// tokens and unbalanced braces.
func ParseTemplate(raw string) (Template, error) {
	t := Template{raw: raw}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case '{':
			if i+1 < len(raw) && raw[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexAny(raw[i+1:], "{}")
			if end < 0 || raw[i+1+end] != '}' {
				return Template{}, templateError(raw, "unclosed '{' at offset %d", i)
			}
			name := Token(raw[i+1 : i+1+end])
			if !knownTokens[name] {
				return Template{}, templateError(raw, "unknown token {%s}", name).WithDetail("token", string(name))
			}
			flush()
			t.segments = append(t.segments, segment{token: name})
			i += end + 1
		case '}':
			if i+1 < len(raw) && raw[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return Template{}, templateError(raw, "unmatched '}' at offset %d", i)
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return t, nil
}

func templateError(raw, format string, args ...interface{}) *errors.SfoError {
	return errors.Newf(errors.ErrTemplateInvalid, "template %q: %s", raw, fmt.Sprintf(format, args...)).
		WithDetail("template", raw)
}

// String returns the template source.
func (t Template) String() string {
	return t.raw
}

// Tokens returns the tokens used, in order of appearance.
func (t Template) Tokens() []Token {
	var out []Token
	for _, s := range t.segments {
		if s.token != "" {
			out = append(out, s.token)
		}
	}
	return out
}

// Uses reports whether the template contains tok.
func (t Template) Uses(tok Token) bool {
	for _, s := range t.segments {
		if s.token == tok {
			return true
		}
	}
	return false
}

// Render substitutes every token from d. prefixLen is the {hash_prefix} length.
func (t Template) Render(d types.FileDescriptor, prefixLen int) string {
	var b strings.Builder
	date := d.EffectiveDate()
	for _, s := range t.segments {
		switch s.token {
		case "":
			b.WriteString(s.literal)
		case TokenName:
			b.WriteString(d.BaseName)
		case TokenExt:
			b.WriteString(ExtOrNoExt(d.Extension))
		case TokenYear:
			fmt.Fprintf(&b, "%04d", date.Year())
		case TokenMonth:
			fmt.Fprintf(&b, "%02d", int(date.Month()))
		case TokenDay:
			fmt.Fprintf(&b, "%02d", date.Day())
		case TokenHash:
			b.WriteString(d.ContentHash)
		case TokenHashPrefix:
			b.WriteString(HashPrefix(d.ContentHash, prefixLen))
		}
	}
	return b.String()
}

// ExtOrNoExt returns ext, or NoExt when ext is empty.
func ExtOrNoExt(ext string) string {
	if ext == "" {
		return NoExt
	}
	return ext
}

// HashPrefix returns the first n characters of hash, or all of it when
// shorter. An empty hash yields an empty prefix.
func HashPrefix(hash string, n int) string {
	if n <= 0 {
		n = DefaultHashPrefixLen
	}
	if n >= len(hash) {
		return hash
	}
	return hash[:n]
}
