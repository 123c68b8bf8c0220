package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only whitespace", "   \n  \n  ", ""},
		{"collapses spaces", "Line    with \t multiple    spaces", "Line with multiple spaces"},
		{"line endings", "Line 1\r\nLine 2\rLine 3\nLine 4", "Line 1\nLine 2\nLine 3\nLine 4"},
		{"blank line runs", "Line 1\n\n\n\n\nLine 2", "Line 1\n\nLine 2"},
		{"markdown headings", "  # Title\n## Subtitle\nContent here", "# Title\n## Subtitle\nContent here"},
		{"dash bullets kept", "- Item   1\n* Item 3", "- Item 1\n* Item 3"},
		{"bullet glyphs normalized", "\u25cf Led   migration\n\uf0b7 Cut costs\n\u2022Shipped", "\u2022 Led migration\n\u2022 Cut costs\n\u2022 Shipped"},
		{"bare bullet glyph dropped", "Intro\n•\nOutro", "Intro\n\nOutro"},
		{"indented bullets keep indent", "Intro\n    - nested", "Intro\n    - nested"},
		{"invisible characters", "\ufeffJane\u00a0Doe\u200b", "Jane Doe"},
		{"unicode preserved", "Test with émojis 🚀 and spéciàl chàracters", "Test with émojis 🚀 and spéciàl chàracters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(input))
	assert.Equal(t, CleanText(input), CleanText(CleanText(input)))
}
