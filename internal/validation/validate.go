package validation

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/rendering/pdf"
	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultMaxPages is the page limit applied when Options leaves MaxPages unset
const DefaultMaxPages = 1

// Options controls which checks Validate runs
type Options struct {
	Format           types.LayoutFormat
	MaxPages         int      // Zero selects DefaultMaxPages, negative disables the page check
	MaxBulletChars   int      // Zero disables the bullet length check
	ForbiddenPhrases []string // Phrases that must not appear in the summary or bullets
}

// Validate runs every document check and lays the document out to check its page count.
// Warnings never block rendering; callers decide what to do with errors.
func Validate(doc types.ResumeDocument, opts Options) (*types.Violations, error) {
	var all []types.Violation
	all = append(all, CheckDocument(doc)...)
	all = append(all, CheckBulletLengths(doc, opts.MaxBulletChars)...)
	all = append(all, CheckForbiddenPhrases(doc, opts.ForbiddenPhrases)...)

	pages, err := CheckPages(doc, opts.Format, opts.MaxPages)
	if err != nil {
		return nil, fmt.Errorf("failed to check page count: %w", err)
	}
	all = append(all, pages...)

	if all == nil {
		all = []types.Violation{}
	}
	return &types.Violations{Violations: all}, nil
}

// CheckPages paginates the document and reports a page_overflow error when it
// runs past maxPages.
func CheckPages(doc types.ResumeDocument, format types.LayoutFormat, maxPages int) ([]types.Violation, error) {
	if maxPages == 0 {
		maxPages = DefaultMaxPages
	}
	if maxPages < 0 {
		return nil, nil
	}

	plan, err := pdf.Plan(doc, format)
	if err != nil {
		return nil, err
	}

	analysis := AnalyzePageOverflow(plan, maxPages)
	if !analysis.Overflowing() {
		return nil, nil
	}

	page := maxPages + 1
	return []types.Violation{{
		Type:             TypePageOverflow,
		Severity:         types.SeverityError,
		Details:          fmt.Sprintf("Resume has %d pages, maximum allowed is %d", analysis.Pages, maxPages),
		AffectedSections: analysis.Sections,
		PageNumber:       &page,
	}}, nil
}
