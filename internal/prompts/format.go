// Package prompts holds the instruction templates sent to the generation backend.
package prompts

import (
	"fmt"
	"strings"
	"unicode"
)

// Fields are the named values substituted into a template.
type Fields map[string]any

// MissingFieldError is returned when a template references a field that was not supplied.
type MissingFieldError struct {
	Template string
	Field    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("prompt template %q: missing field %q", e.Template, e.Field)
}

// Format substitutes {name} placeholders in text. Doubled braces render as
// literal braces, so JSON examples in templates are written with {{ and }}.
func Format(name, text string, fields Fields) (string, error) {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '{' && i+1 < len(text) && text[i+1] == '{':
			b.WriteByte('{')
			i++
		case ch == '}' && i+1 < len(text) && text[i+1] == '}':
			b.WriteByte('}')
			i++
		case ch == '{':
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				b.WriteString(text[i:])
				return b.String(), nil
			}
			field := text[i+1 : i+1+end]
			value, ok := fields[field]
			if !ok {
				return "", &MissingFieldError{Template: name, Field: field}
			}
			b.WriteString(fmt.Sprint(value))
			i += end + 1
		default:
			b.WriteByte(ch)
		}
	}

	return b.String(), nil
}

// SanitizeContent drops non-printable characters other than line breaks and
// tabs, then truncates to limit characters. A limit of zero keeps everything.
func SanitizeContent(content string, limit int) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' || unicode.IsPrint(r) {
			return r
		}
		return -1
	}, content)

	if limit > 0 {
		runes := []rune(cleaned)
		if len(runes) > limit {
			cleaned = string(runes[:limit])
		}
	}
	return cleaned
}
