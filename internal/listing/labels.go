package listing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// LabelFunc maps a raw tag to its display label
type LabelFunc func(tag string) string

// DefaultLabel capitalises the first letter
func DefaultLabel(tag string) string {
	r, size := utf8.DecodeRuneInString(tag)
	if r == utf8.RuneError {
		return tag
	}
	return string(unicode.ToUpper(r)) + tag[size:]
}

// IdentityLabel shows tags as they are
func IdentityLabel(tag string) string {
	return tag
}

// CamelCaseLabel capitalises the first letter and splits camelCase words,
// so "levelDesign" becomes "Level Design"
func CamelCaseLabel(tag string) string {
	var b strings.Builder
	for i, r := range DefaultLabel(tag) {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
