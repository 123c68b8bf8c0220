package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/types"
)

// Violation types reported by this package
const (
	TypeDateRange       = "date_range"
	TypeBulletTooLong   = "bullet_too_long"
	TypeForbiddenPhrase = "forbidden_phrase"
	TypePageOverflow    = "page_overflow"
)

var yearMonthPattern = regexp.MustCompile(`^\d{4}(-\d{2})?$`)

// CheckDocument reports structural problems the renderers tolerate but a reader
// would notice. Currently this is experience entries whose start date falls after
// their end date. Entries marked current are skipped since their end date is not shown.
func CheckDocument(doc types.ResumeDocument) []types.Violation {
	var violations []types.Violation
	for _, e := range doc.Experience {
		if e.Current {
			continue
		}
		start := strings.TrimSpace(e.StartDate)
		end := strings.TrimSpace(e.EndDate)
		if !yearMonthPattern.MatchString(start) || !yearMonthPattern.MatchString(end) {
			continue
		}
		if start <= end {
			continue
		}
		id := e.ID
		violations = append(violations, types.Violation{
			Type:             TypeDateRange,
			Severity:         types.SeverityWarning,
			Details:          fmt.Sprintf("%s at %s starts (%s) after it ends (%s)", label(e.JobTitle, "Position"), label(e.Company, "unknown company"), start, end),
			AffectedSections: []string{"experience"},
			EntryID:          &id,
		})
	}
	return violations
}

// CheckBulletLengths flags experience and custom-item bullets longer than maxChars.
// A maxChars of zero or less disables the check.
func CheckBulletLengths(doc types.ResumeDocument, maxChars int) []types.Violation {
	if maxChars <= 0 {
		return nil
	}

	var violations []types.Violation
	check := func(section, entryID string, bullets []string) {
		for i, b := range bullets {
			n := utf8.RuneCountInString(strings.TrimSpace(b))
			if n <= maxChars {
				continue
			}
			id := entryID
			violations = append(violations, types.Violation{
				Type:             TypeBulletTooLong,
				Severity:         types.SeverityWarning,
				Details:          fmt.Sprintf("Bullet %d has %d characters, maximum is %d", i+1, n, maxChars),
				AffectedSections: []string{section},
				EntryID:          &id,
			})
		}
	}

	for _, e := range doc.Experience {
		check("experience", e.ID, e.Bullets)
	}
	for _, s := range doc.CustomSections {
		for _, it := range s.Items {
			check("custom:"+s.ID, it.ID, it.Bullets)
		}
	}
	return violations
}

// CheckForbiddenPhrases reports every summary, bullet or item description that contains
// one of the phrases, matched case-insensitively. Only the first matching phrase per
// field is reported.
func CheckForbiddenPhrases(doc types.ResumeDocument, phrases []string) []types.Violation {
	var normalized []string
	for _, p := range phrases {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			normalized = append(normalized, p)
		}
	}
	if len(normalized) == 0 {
		return nil
	}

	var violations []types.Violation
	check := func(section string, entryID *string, text string) {
		lower := strings.ToLower(text)
		for _, phrase := range normalized {
			if strings.Contains(lower, phrase) {
				violations = append(violations, types.Violation{
					Type:             TypeForbiddenPhrase,
					Severity:         types.SeverityError,
					Details:          fmt.Sprintf("%s contains forbidden phrase: %s", section, phrase),
					AffectedSections: []string{section},
					EntryID:          entryID,
				})
				return
			}
		}
	}

	check("summary", nil, doc.Summary)
	for _, e := range doc.Experience {
		id := e.ID
		for _, b := range e.Bullets {
			check("experience", &id, b)
		}
	}
	for _, s := range doc.CustomSections {
		key := "custom:" + s.ID
		for _, it := range s.Items {
			id := it.ID
			check(key, &id, types.Val(it.Description))
			for _, b := range it.Bullets {
				check(key, &id, b)
			}
		}
	}
	return violations
}

func label(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}
