package validation

import (
	"github.com/jonathan/resume-builder/internal/rendering/paginate"
)

// OverflowAnalysis describes how far a paginated layout runs past its page limit
type OverflowAnalysis struct {
	Pages       int      // Pages in the plan
	ExcessPages int      // Pages beyond the limit
	ExcessLines int      // Text lines drawn on the excess pages
	Sections    []string // Section keys with content on the excess pages, in order
}

// Overflowing reports whether any content lies beyond the limit
func (a *OverflowAnalysis) Overflowing() bool {
	return a != nil && a.ExcessPages > 0
}

// AnalyzePageOverflow measures the content that lands past maxPages.
// A maxPages of zero or less means no limit.
func AnalyzePageOverflow(plan *paginate.Plan, maxPages int) *OverflowAnalysis {
	analysis := &OverflowAnalysis{}
	if plan == nil {
		return analysis
	}
	analysis.Pages = len(plan.Pages)
	if maxPages <= 0 || analysis.Pages <= maxPages {
		return analysis
	}

	analysis.ExcessPages = analysis.Pages - maxPages
	seen := make(map[string]bool)
	for _, page := range plan.Pages[maxPages:] {
		for _, op := range page.Ops {
			if op.Kind != paginate.OpText {
				continue
			}
			analysis.ExcessLines++
			if op.Section != "" && !seen[op.Section] {
				seen[op.Section] = true
				analysis.Sections = append(analysis.Sections, op.Section)
			}
		}
	}
	return analysis
}
