// Package sanitizer implements the naming rule the content store applies
// to page path segments.
package sanitizer

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"wireshell/internal/config"
)

// PageNameSanitizer turns arbitrary input into a path-safe page name:
// markup stripped, accents transliterated, lower-cased, anything outside
// [a-z0-9._-] collapsed to a single "-", separators trimmed at both ends.
type PageNameSanitizer struct {
	policy *bluemonday.Policy
	maxLen int
}

// New creates a sanitizer truncating names to config.MaxPageNameLength.
func New() *PageNameSanitizer {
	return &PageNameSanitizer{
		policy: bluemonday.StrictPolicy(),
		maxLen: config.MaxPageNameLength,
	}
}

// PageName sanitizes raw. The result may be empty when raw holds no usable
// characters.
func (s *PageNameSanitizer) PageName(raw string) string {
	text := html.UnescapeString(s.policy.Sanitize(raw))

	ascii, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), text)
	if err != nil {
		ascii = text
	}

	var b strings.Builder
	b.Grow(len(ascii))
	dash := false
	for _, r := range strings.ToLower(ascii) {
		if allowed(r) {
			if r == '-' {
				if dash {
					continue
				}
				dash = true
			} else {
				dash = false
			}
			b.WriteRune(r)
			continue
		}
		if !dash {
			b.WriteByte('-')
			dash = true
		}
	}

	name := strings.Trim(b.String(), "-._")
	if len(name) > s.maxLen {
		name = strings.Trim(name[:s.maxLen], "-._")
	}
	return name
}

func allowed(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.'
}
