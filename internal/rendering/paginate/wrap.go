package paginate

import "strings"

// Wrap splits text into lines no wider than firstWidth for the first line
// and restWidth for the others. Words wider than a line are broken by character.
// Whitespace runs collapse to one space. When the first word only fits the later
// lines, the first line is returned empty.
func Wrap(m Measurer, text string, font Font, firstWidth, restWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var cur string
	limit := firstWidth

	flush := func() {
		lines = append(lines, cur)
		cur = ""
		limit = restWidth
	}

	for _, w := range words {
		candidate := w
		if cur != "" {
			candidate = cur + " " + w
		}
		if m.Width(candidate, font) <= limit {
			cur = candidate
			continue
		}
		if cur != "" {
			flush()
		} else if len(lines) == 0 && m.Width(w, font) <= restWidth {
			flush()
		}
		if m.Width(w, font) <= limit {
			cur = w
			continue
		}
		// Over-long word: break it into chunks that fit
		for _, piece := range splitWord(m, w, font, limit, restWidth) {
			if cur != "" {
				flush()
			}
			cur = piece
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

func splitWord(m Measurer, word string, font Font, firstLimit, restLimit float64) []string {
	var out []string
	limit := firstLimit
	runes := []rune(word)
	start := 0
	for start < len(runes) {
		end := start + 1
		for end < len(runes) && m.Width(string(runes[start:end+1]), font) <= limit {
			end++
		}
		out = append(out, string(runes[start:end]))
		start = end
		limit = restLimit
	}
	return out
}
