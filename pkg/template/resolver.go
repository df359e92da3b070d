// Package template resolves {placeholder} tokens in operator-authored prompt
// text. Resolution never mutates stored prompt text; substitution happens at
// read time only, and every non-placeholder byte passes through unchanged.
package template

import (
	"fmt"
	"strings"
)

// Lookup supplies values for placeholder names during resolution.
type Lookup interface {
	Resolve(name string) (string, bool)
}

// MapLookup is the simplest Lookup: a flat name -> literal mapping.
type MapLookup map[string]string

func (m MapLookup) Resolve(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Multi tries each lookup in order and returns the first hit.
type Multi []Lookup

func (l Multi) Resolve(name string) (string, bool) {
	for _, lookup := range l {
		if v, ok := lookup.Resolve(name); ok {
			return v, true
		}
	}
	return "", false
}

// MissingPlaceholderError names the first placeholder with no value in the
// lookup. A silently unsubstituted token would leak raw template syntax into a
// model prompt, so resolution fails loudly instead.
type MissingPlaceholderError struct {
	Name string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("template: no value for placeholder %q", e.Name)
}

// Resolve substitutes every {name} token in text using lookup, in a single
// left-to-right pass. Escaped double braces ({{ and }}) emit a literal single
// brace, for prompts that are themselves format strings. A brace with no
// closing partner is passed through verbatim. Whitespace and line breaks are
// preserved byte-for-byte.
func Resolve(text string, lookup Lookup) (string, error) {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		c := text[i]
		switch c {
		case '{':
			if i+1 < len(text) && text[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				// Unterminated brace, treat as literal text.
				b.WriteByte('{')
				i++
				continue
			}
			name := text[i+1 : i+1+end]
			if name == "" || strings.ContainsRune(name, '{') {
				// "{}" or a nested open brace is not a placeholder.
				b.WriteByte('{')
				i++
				continue
			}
			value, ok := lookup.Resolve(name)
			if !ok {
				return "", &MissingPlaceholderError{Name: name}
			}
			b.WriteString(value)
			i += end + 2
		case '}':
			if i+1 < len(text) && text[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			b.WriteByte('}')
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String(), nil
}
