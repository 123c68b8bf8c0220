package paginate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	m := fixedMeasurer{}
	font := Font{Size: 10} // 5pt per rune

	tests := []struct {
		name  string
		text  string
		first float64
		rest  float64
		want  []string
	}{
		{name: "empty", text: "   ", first: 100, rest: 100, want: nil},
		{name: "fits", text: "hello world", first: 100, rest: 100, want: []string{"hello world"}},
		{name: "wraps", text: "aaaa bbbb cccc", first: 50, rest: 50, want: []string{"aaaa bbbb", "cccc"}},
		{name: "narrower rest", text: "aaaa bbbb cccc", first: 50, rest: 25, want: []string{"aaaa bbbb", "cccc"}},
		{name: "collapses whitespace", text: "a   b\n c", first: 100, rest: 100, want: []string{"a b c"}},
		{name: "word fits only later lines", text: "aaaaaa bb", first: 20, rest: 50, want: []string{"", "aaaaaa bb"}},
		{name: "long word split", text: "xx " + strings.Repeat("y", 12), first: 25, rest: 25, want: []string{"xx", "yyyyy", "yyyyy", "yy"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(m, tt.text, font, tt.first, tt.rest))
		})
	}
}

func TestWrap_NeverDropsCharacters(t *testing.T) {
	m := fixedMeasurer{}
	font := Font{Size: 10}
	text := "The quick brown fox jumps over the extraordinarilylongwordthatneverends lazy dog"
	lines := Wrap(m, text, font, 40, 30)
	assert.Equal(t, strings.ReplaceAll(text, " ", ""), strings.ReplaceAll(strings.Join(lines, ""), " ", ""))
	for i, l := range lines {
		limit := 30.0
		if i == 0 {
			limit = 40
		}
		assert.LessOrEqual(t, m.Width(l, font), limit, "line %q", l)
	}
}
