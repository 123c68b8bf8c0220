package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRun     = regexp.MustCompile(`\s+`)
	blankLineRun = regexp.MustCompile(`\n\n\n+`)
	bulletGlyphs = []string{"\u2022", "\u25cf", "\u25aa", "\u25e6", "\u2023", "\u00b7", "\uf0b7", "\uf0a7"}
	invisible    = strings.NewReplacer("\u00a0", " ", "\u200b", "", "\ufeff", "", "\x00", "")
)

// CleanText normalizes extracted text while preserving its line structure:
// line endings become LF, runs of spaces collapse, bullet glyphs become "• "
// and at most one blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = invisible.Replace(content)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line, keeping leading indentation of list items
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	indent := len(line) - len(trimmed)

	// Markdown headings keep their text as-is
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	if rest, ok := cutBullet(trimmed); ok {
		if rest == "" {
			return ""
		}
		return strings.Repeat(" ", indent) + "• " + spaceRun.ReplaceAllString(rest, " ")
	}
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		return strings.Repeat(" ", indent) + trimmed[:2] + spaceRun.ReplaceAllString(trimmed[2:], " ")
	}

	return strings.Repeat(" ", indent) + spaceRun.ReplaceAllString(trimmed, " ")
}

// cutBullet strips a leading bullet glyph and the space after it
func cutBullet(s string) (string, bool) {
	for _, g := range bulletGlyphs {
		if rest, ok := strings.CutPrefix(s, g); ok {
			return strings.TrimLeft(rest, " \t"), true
		}
	}
	return s, false
}
