package types

import (
	"fmt"
	"strings"
)

// ATSScore is derived from a document, never stored in it.
// Every score is an integer in [0, 100].
type ATSScore struct {
	Overall      int      `json:"overall"`
	KeywordMatch int      `json:"keywordMatch"`
	Formatting   int      `json:"formatting"`
	Structure    int      `json:"structure"`
	Suggestions  []string `json:"suggestions"`
}

// Clamp returns a copy with every score forced into [0, 100]
func (s ATSScore) Clamp() ATSScore {
	s.Overall = clampScore(s.Overall)
	s.KeywordMatch = clampScore(s.KeywordMatch)
	s.Formatting = clampScore(s.Formatting)
	s.Structure = clampScore(s.Structure)
	if s.Suggestions == nil {
		s.Suggestions = []string{}
	}
	return s
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ResumeAnalysis is the critique returned when importing an existing resume
type ResumeAnalysis struct {
	Weaknesses      []string `json:"weaknesses"`
	Improvements    []string `json:"improvements"`
	MissingKeywords []string `json:"missingKeywords"`
	Score           int      `json:"score"`
}

// JobDescription is the optional tailoring target
type JobDescription struct {
	Title             string   `json:"title"`
	Company           string   `json:"company"`
	Description       string   `json:"description"`
	ExtractedKeywords []string `json:"extractedKeywords"`
}

// IsEmpty reports whether no target job was supplied
func (j *JobDescription) IsEmpty() bool {
	return j == nil || strings.TrimSpace(j.Description) == ""
}

// LayoutFormat selects the font-size and spacing constants used by every renderer
type LayoutFormat string

const (
	// FormatStandard is the default, roomier layout
	FormatStandard LayoutFormat = "standard"
	// FormatCompact shrinks the name and section spacing
	FormatCompact LayoutFormat = "compact"
)

// ParseLayoutFormat maps user input to a LayoutFormat. Empty input selects standard.
func ParseLayoutFormat(s string) (LayoutFormat, error) {
	switch LayoutFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatStandard:
		return FormatStandard, nil
	case FormatCompact:
		return FormatCompact, nil
	default:
		return "", fmt.Errorf("unknown layout format %q (want standard or compact)", s)
	}
}
