package sanitizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"wireshell/internal/config"
)

func TestPageName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "already clean", raw: "foo", want: "foo"},
		{name: "lower-cases", raw: "About", want: "about"},
		{name: "spaces become dashes", raw: "Hello World", want: "hello-world"},
		{name: "runs collapse", raw: "a  /  b", want: "a-b"},
		{name: "accents transliterated", raw: "Über Café", want: "uber-cafe"},
		{name: "markup stripped", raw: "<b>Bold</b> move", want: "bold-move"},
		{name: "entities decoded", raw: "Tom &amp; Jerry", want: "tom-jerry"},
		{name: "dots and underscores kept", raw: "file_v1.2", want: "file_v1.2"},
		{name: "separators trimmed", raw: "--.draft._", want: "draft"},
		{name: "existing dashes collapse", raw: "a---b", want: "a-b"},
		{name: "nothing usable", raw: "!!!", want: ""},
		{name: "empty", raw: "", want: ""},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.PageName(tt.raw))
		})
	}
}

func TestPageName_Truncates(t *testing.T) {
	s := New()
	got := s.PageName(strings.Repeat("a", config.MaxPageNameLength+20))
	assert.Len(t, got, config.MaxPageNameLength)
}

func TestPageName_Idempotent(t *testing.T) {
	s := New()
	for _, raw := range []string{"Hello World", "Über-uns", "<i>x</i> y", "a.b_c"} {
		once := s.PageName(raw)
		assert.Equal(t, once, s.PageName(once), raw)
	}
}
