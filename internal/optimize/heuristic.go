package optimize

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

// maxKeywords caps ExtractKeywords output
const maxKeywords = 25

// longBulletChars is the length past which a bullet costs formatting points
const longBulletChars = 220

var (
	tokenPattern = regexp.MustCompile(`[a-z0-9][a-z0-9+#./-]*`)
	digitPattern = regexp.MustCompile(`\d`)
)

var stopWords = map[string]bool{
	"a": true, "about": true, "above": true, "across": true, "after": true, "all": true, "also": true,
	"an": true, "and": true, "any": true, "are": true, "as": true, "at": true, "be": true, "been": true,
	"being": true, "both": true, "but": true, "by": true, "can": true, "could": true, "do": true,
	"does": true, "each": true, "etc": true, "for": true, "from": true, "has": true, "have": true,
	"help": true, "how": true, "if": true, "in": true, "including": true, "into": true, "is": true,
	"it": true, "its": true, "join": true, "just": true, "like": true, "looking": true, "may": true,
	"more": true, "most": true, "must": true, "new": true, "not": true, "of": true, "on": true,
	"or": true, "other": true, "our": true, "over": true, "own": true, "per": true, "plus": true,
	"preferred": true, "required": true, "responsibilities": true, "requirements": true, "role": true,
	"should": true, "so": true, "some": true, "strong": true, "such": true, "team": true, "than": true,
	"that": true, "the": true, "their": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "through": true, "to": true, "up": true, "us": true, "use": true,
	"using": true, "we": true, "well": true, "what": true, "when": true, "where": true, "which": true,
	"while": true, "who": true, "will": true, "with": true, "within": true, "work": true, "working": true,
	"would": true, "year": true, "years": true, "you": true, "your": true, "ability": true,
	"experience": true, "skills": true, "excellent": true, "knowledge": true, "understanding": true,
}

// ExtractKeywords returns the most frequent meaningful terms of text, most frequent
// first and ties in order of first appearance. Terms keep characters like + # . so
// "c++", "c#" and "node.js" survive.
func ExtractKeywords(text string) []string {
	type term struct {
		word  string
		count int
		first int
	}

	terms := make(map[string]*term)
	for i, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		tok = strings.TrimRight(tok, ".-/")
		if utf8.RuneCountInString(tok) < 2 || stopWords[tok] || !strings.ContainsAny(tok, "abcdefghijklmnopqrstuvwxyz") {
			continue
		}
		if t, ok := terms[tok]; ok {
			t.count++
			continue
		}
		terms[tok] = &term{word: tok, count: 1, first: i}
	}

	list := make([]*term, 0, len(terms))
	for _, t := range terms {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].first < list[j].first
	})

	out := make([]string, 0, min(len(list), maxKeywords))
	for i := 0; i < len(list) && i < maxKeywords; i++ {
		out = append(out, list[i].word)
	}
	return out
}

// HeuristicScore scores doc locally without calling a model. It is used when the AI
// service is not configured and as a baseline next to model scores.
//
//	Structure:    presence of contact details, summary, experience, education and skills
//	Formatting:   penalties for undated roles, reversed date ranges and very long bullets
//	KeywordMatch: share of the job description's top terms found in the resume
func HeuristicScore(doc types.ResumeDocument, jobDescription string) types.ATSScore {
	var suggestions []string

	structure := 0
	info := doc.PersonalInfo
	if strings.TrimSpace(info.FullName) != "" && strings.TrimSpace(info.Email) != "" {
		structure += 20
	} else {
		suggestions = append(suggestions, "Add your full name and email address to the header")
	}
	if strings.TrimSpace(info.Phone) != "" {
		structure += 10
	}
	if utf8.RuneCountInString(strings.TrimSpace(doc.Summary)) >= minSummaryChars {
		structure += 15
	} else {
		suggestions = append(suggestions, "Add a professional summary of two or three sentences")
	}
	if hasBullets(doc) {
		structure += 25
	} else {
		suggestions = append(suggestions, "Add experience entries with achievement bullets")
	}
	if len(doc.Education) > 0 {
		structure += 15
	}
	if hasSkills(doc) {
		structure += 15
	} else {
		suggestions = append(suggestions, "Add a core strengths section that groups your skills")
	}

	formatting := 100
	undated := 0
	for _, e := range doc.Experience {
		if strings.TrimSpace(e.StartDate) == "" {
			undated++
		}
	}
	if undated > 0 {
		formatting -= 10 * undated
		suggestions = append(suggestions, "Give every role a start date")
	}
	formatting -= 10 * len(validation.CheckDocument(doc))

	long, quantified, total := 0, 0, 0
	for _, e := range doc.Experience {
		for _, b := range e.Bullets {
			if strings.TrimSpace(b) == "" {
				continue
			}
			total++
			if utf8.RuneCountInString(b) > longBulletChars {
				long++
			}
			if digitPattern.MatchString(b) {
				quantified++
			}
		}
	}
	if long > 0 {
		formatting -= 5 * long
		suggestions = append(suggestions, "Shorten bullets to one or two lines")
	}
	if total > 0 && quantified*2 < total {
		suggestions = append(suggestions, "Quantify more achievements with numbers")
	}

	keywordMatch := 0
	hasJob := strings.TrimSpace(jobDescription) != ""
	if hasJob {
		var missing []string
		keywordMatch, missing = matchKeywords(doc, ExtractKeywords(jobDescription))
		if len(missing) > 0 {
			suggestions = append(suggestions, fmt.Sprintf("Consider adding these keywords from the job description: %s", strings.Join(missing[:min(len(missing), 5)], ", ")))
		}
	}

	score := types.ATSScore{
		KeywordMatch: keywordMatch,
		Formatting:   formatting,
		Structure:    structure,
		Suggestions:  suggestions,
	}.Clamp()

	if hasJob {
		score.Overall = int(math.Round(0.4*float64(score.KeywordMatch) + 0.3*float64(score.Formatting) + 0.3*float64(score.Structure)))
	} else {
		score.Overall = int(math.Round(0.5*float64(score.Formatting) + 0.5*float64(score.Structure)))
	}
	return NormalizeATSScore(score, doc, hasJob)
}

// matchKeywords returns the percentage of keywords present in doc and the missing ones in order
func matchKeywords(doc types.ResumeDocument, keywords []string) (int, []string) {
	if len(keywords) == 0 {
		return 0, nil
	}

	present := make(map[string]bool)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(documentText(doc)), -1) {
		present[strings.TrimRight(tok, ".-/")] = true
	}

	var missing []string
	for _, k := range keywords {
		if !present[k] {
			missing = append(missing, k)
		}
	}
	matched := len(keywords) - len(missing)
	return int(math.Round(100 * float64(matched) / float64(len(keywords)))), missing
}

func documentText(doc types.ResumeDocument) string {
	var sb strings.Builder
	write := func(parts ...string) {
		for _, p := range parts {
			sb.WriteString(p)
			sb.WriteByte('\n')
		}
	}

	write(doc.Summary)
	write(doc.Skills...)
	for _, c := range doc.CoreStrengths {
		write(c.Category, c.Skills)
	}
	for _, e := range doc.Experience {
		write(e.JobTitle, e.Company)
		write(e.Bullets...)
	}
	for _, e := range doc.Education {
		write(e.Degree, types.Val(e.Field), e.Institution)
	}
	for _, s := range doc.CustomSections {
		write(s.Title)
		for _, it := range s.Items {
			write(it.Title, types.Val(it.Subtitle), types.Val(it.Description))
			write(it.Bullets...)
		}
	}
	return sb.String()
}

func hasBullets(doc types.ResumeDocument) bool {
	for _, e := range doc.Experience {
		for _, b := range e.Bullets {
			if strings.TrimSpace(b) != "" {
				return true
			}
		}
	}
	return false
}

func hasSkills(doc types.ResumeDocument) bool {
	for _, c := range doc.CoreStrengths {
		if strings.TrimSpace(c.Skills) != "" {
			return true
		}
	}
	for _, s := range doc.Skills {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}
