package optimize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
)

// minSummaryChars is the length at which a summary counts as present for suggestion filtering
const minSummaryChars = 50

// ApplyOptimizations merges result into a copy of doc:
//   - experience bullets are replaced for entries whose ID appears in the result
//   - core strengths are replaced when the result has any (missing IDs are generated)
//   - legacy skills are replaced when the result provides them
//   - the summary is replaced when the result's is non-empty
//
// Everything else, including entry order and unknown IDs, is left as it was.
func ApplyOptimizations(doc types.ResumeDocument, result *OptimizationResult) types.ResumeDocument {
	out := doc.Clone()
	if result == nil {
		return out
	}

	bullets := make(map[string][]string, len(result.Experience))
	for _, e := range result.Experience {
		if e.Bullets != nil {
			bullets[e.ID] = e.Bullets
		}
	}
	for i := range out.Experience {
		if b, ok := bullets[out.Experience[i].ID]; ok {
			out.Experience[i].Bullets = append([]string{}, b...)
		}
	}

	if len(result.CoreStrengths) > 0 {
		strengths := make([]types.SkillCategory, len(result.CoreStrengths))
		for i, c := range result.CoreStrengths {
			if strings.TrimSpace(c.ID) == "" {
				c.ID = uuid.NewString()
			}
			strengths[i] = c
		}
		out.CoreStrengths = strengths
	}

	if result.Skills != nil {
		out.Skills = append([]string{}, result.Skills...)
	}

	if result.Summary != "" {
		out.Summary = result.Summary
	}

	return out
}

var (
	projectTitle     = regexp.MustCompile(`project`)
	certificateTitle = regexp.MustCompile(`(certificat|license)`)
)

// NormalizeATSScore cleans up model-produced suggestions against the document they
// describe: blanks and case-insensitive duplicates are dropped, as are suggestions to
// add a section the document already has. KeywordMatch is zeroed when there was no
// target job to match against. Scores are clamped to [0, 100].
func NormalizeATSScore(score types.ATSScore, doc types.ResumeDocument, hasTargetJob bool) types.ATSScore {
	hasProjects := hasCustomSection(doc, projectTitle)
	hasCerts := hasCustomSection(doc, certificateTitle)
	hasSummary := utf8.RuneCountInString(strings.TrimSpace(doc.Summary)) >= minSummaryChars
	hasStrengths := false
	for _, c := range doc.CoreStrengths {
		if strings.TrimSpace(c.Skills) != "" {
			hasStrengths = true
			break
		}
	}

	suggestions := []string{}
	for _, s := range dedupe(score.Suggestions) {
		lc := strings.ToLower(s)
		switch {
		case hasProjects && strings.Contains(lc, "project") && containsAny(lc, "add", "consider"):
		case hasCerts && strings.Contains(lc, "cert") && containsAny(lc, "add", "consider"):
		case hasSummary && strings.Contains(lc, "summary") && containsAny(lc, "add", "include"):
		case hasStrengths && strings.Contains(lc, "skill") && containsAny(lc, "add", "include"):
			// the document already has it
		default:
			suggestions = append(suggestions, s)
		}
	}

	score.Suggestions = suggestions
	if !hasTargetJob {
		score.KeywordMatch = 0
	}
	return score.Clamp()
}

func hasCustomSection(doc types.ResumeDocument, title *regexp.Regexp) bool {
	for _, s := range doc.CustomSections {
		if title.MatchString(strings.ToLower(strings.TrimSpace(s.Title))) {
			return true
		}
	}
	return false
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, raw := range items {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
