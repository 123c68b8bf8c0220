// Package plaintext renders a resume as clipboard-friendly text
package plaintext

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

// Block is the text of one section
type Block struct {
	Key   string
	Lines []string
}

// Blocks renders each section to its lines
func Blocks(doc types.ResumeDocument) []Block {
	var out []Block
	for _, s := range layout.Sections(doc) {
		var lines []string
		if s.Kind == layout.KindHeader {
			if s.Header.Name != "" {
				lines = append(lines, s.Header.Name)
			}
			if c := s.Header.ContactText(); c != "" {
				lines = append(lines, c)
			}
			out = append(out, Block{Key: s.Key, Lines: lines})
			continue
		}

		lines = append(lines, s.Title)
		switch s.Kind {
		case layout.KindSummary:
			lines = append(lines, s.Summary)
		case layout.KindCoreStrengths:
			for _, c := range s.Strengths {
				lines = append(lines, "• "+c.Category+": "+c.Skills)
			}
		case layout.KindSkills:
			lines = append(lines, strings.Join(s.Skills, " • "))
		case layout.KindExperience:
			for i, v := range s.Experience {
				if i > 0 {
					lines = append(lines, "")
				}
				lines = appendPair(lines, v.Company, v.Dates)
				lines = appendPair(lines, v.Title, v.Location)
				lines = appendBullets(lines, v.Bullets)
			}
		case layout.KindEducation:
			for _, v := range s.Education {
				lines = appendPair(lines, v.Institution, v.Date)
				lines = appendPair(lines, v.Degree, v.Location)
			}
		case layout.KindCustom:
			for i, v := range s.Items {
				if i > 0 {
					lines = append(lines, "")
				}
				title := v.Title
				if v.Link != "" {
					title = joinNonEmpty(layout.ContactSeparator, v.Title, v.Link)
				}
				lines = appendPair(lines, title, v.Date)
				if v.Subtitle != "" {
					lines = append(lines, v.Subtitle)
				}
				if v.Description != "" {
					lines = append(lines, v.Description)
				}
				lines = appendBullets(lines, v.Bullets)
			}
		}
		out = append(out, Block{Key: s.Key, Lines: lines})
	}
	return out
}

// Render returns the whole resume as text, sections separated by a blank line
func Render(doc types.ResumeDocument) string {
	blocks := Blocks(doc)
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = strings.Join(b.Lines, "\n")
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// SectionKeys lists the keys of the rendered blocks
func SectionKeys(doc types.ResumeDocument) []string {
	var keys []string
	for _, b := range Blocks(doc) {
		keys = append(keys, b.Key)
	}
	return keys
}

// appendPair writes "left\tright", dropping whichever side is empty
func appendPair(lines []string, left, right string) []string {
	switch {
	case left != "" && right != "":
		return append(lines, left+"\t"+right)
	case left != "":
		return append(lines, left)
	case right != "":
		return append(lines, "\t"+right)
	}
	return lines
}

func appendBullets(lines []string, bullets []string) []string {
	for _, b := range bullets {
		lines = append(lines, "• "+b)
	}
	return lines
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
