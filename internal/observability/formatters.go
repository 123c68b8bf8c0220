// Package observability provides formatted output for verbose CLI mode and the
// Prometheus collectors shared by the CLI and the HTTP server.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// PrintDocument outputs a one-box summary of what a resume contains.
func (p *Printer) PrintDocument(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	name := doc.PersonalInfo.FullName
	if strings.TrimSpace(name) == "" {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:        %s\n", name))
	if contact := layout.Header(*doc).ContactLabels(); contact != "" {
		sb.WriteString(fmt.Sprintf("Contact:     %s\n", contact))
	}
	sb.WriteString(fmt.Sprintf("Experience:  %d entries\n", len(doc.Experience)))
	sb.WriteString(fmt.Sprintf("Education:   %d entries\n", len(doc.Education)))
	sb.WriteString(fmt.Sprintf("Strengths:   %d categories\n", len(doc.CoreStrengths)))

	if len(doc.CustomSections) > 0 {
		sb.WriteString("\nCustom sections:\n")
		count := min(len(doc.CustomSections), maxItemsToShow)
		for i := 0; i < count; i++ {
			s := doc.CustomSections[i]
			sb.WriteString(fmt.Sprintf("  • %s (%d items)\n", s.Title, len(s.Items)))
		}
		if len(doc.CustomSections) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.CustomSections)-maxItemsToShow))
		}
	}

	p.printBox("RESUME DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLayout outputs the page count and section order of a paginated layout
func (p *Printer) PrintLayout(pages int, sections []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", pages))
	sb.WriteString(fmt.Sprintf("Sections: %d\n", len(sections)))
	for _, s := range sections {
		sb.WriteString(fmt.Sprintf("  • %s\n", s))
	}
	p.printBox("LAYOUT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintATSScore outputs the score breakdown and the top suggestions.
func (p *Printer) PrintATSScore(score *types.ATSScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:        %3d\n", score.Overall))
	sb.WriteString(fmt.Sprintf("Keyword match:  %3d\n", score.KeywordMatch))
	sb.WriteString(fmt.Sprintf("Formatting:     %3d\n", score.Formatting))
	sb.WriteString(fmt.Sprintf("Structure:      %3d\n", score.Structure))

	if len(score.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		count := min(len(score.Suggestions), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", score.Suggestions[i]))
		}
		if len(score.Suggestions) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(score.Suggestions)-maxItemsToShow))
		}
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs the critique returned with an imported resume.
func (p *Printer) PrintAnalysis(analysis *types.ResumeAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d\n", analysis.Score))

	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("\n%s:\n", title))
		count := min(len(items), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
		}
		if len(items) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-3))
		}
	}
	list("Weaknesses", analysis.Weaknesses)
	list("Improvements", analysis.Improvements)
	list("Missing keywords", analysis.MissingKeywords)

	p.printBox("RESUME ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintViolations outputs any constraint violations found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations *types.Violations) {
	if violations == nil || len(violations.Violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO VIOLATIONS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(violations.Violations)))

	for i, v := range violations.Violations {
		marker := "⚠"
		if v.Severity == types.SeverityError {
			marker = "✖"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", marker, v.Type))
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(v.Details, 45)))
		if i < len(violations.Violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CONSTRAINT VIOLATIONS", sb.String())
}
