package layout

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/normalize"
	"github.com/jonathan/resume-builder/internal/types"
)

// SectionKind identifies a section type
type SectionKind string

// Section kinds in their fixed display order. Custom sections may repeat.
const (
	KindHeader        SectionKind = "header"
	KindSummary       SectionKind = "summary"
	KindCoreStrengths SectionKind = "core_strengths"
	KindSkills        SectionKind = "skills"
	KindExperience    SectionKind = "experience"
	KindEducation     SectionKind = "education"
	KindCustom        SectionKind = "custom"
)

// Section is one renderable block with its content already filtered.
// Exactly one of the content fields is populated, matching Kind.
type Section struct {
	Kind SectionKind
	// Key is stable across renderers: the kind, or "custom:<id>" for custom sections
	Key   string
	Title string

	Header     *HeaderView
	Summary    string
	Strengths  []types.SkillCategory
	Skills     []string
	Experience []ExperienceView
	Education  []EducationView
	Items      []ItemView
}

// Sections returns the renderable sections of doc in display order:
// header, summary, core strengths (or legacy skills), experience, education,
// then custom sections in document order. Sections without content are absent.
func Sections(doc types.ResumeDocument) []Section {
	var out []Section

	if h := Header(doc); !h.empty() {
		out = append(out, Section{Kind: KindHeader, Key: string(KindHeader), Header: &h})
	}

	if s := strings.TrimSpace(doc.Summary); s != "" {
		out = append(out, Section{Kind: KindSummary, Key: string(KindSummary), Title: "SUMMARY", Summary: s})
	}

	if strengths := RenderableStrengths(doc.CoreStrengths); len(strengths) > 0 {
		out = append(out, Section{Kind: KindCoreStrengths, Key: string(KindCoreStrengths), Title: "CORE STRENGTHS", Strengths: strengths})
	} else if skills := nonBlank(doc.Skills); len(skills) > 0 {
		out = append(out, Section{Kind: KindSkills, Key: string(KindSkills), Title: "SKILLS", Skills: skills})
	}

	var exp []ExperienceView
	for _, e := range doc.Experience {
		if v, ok := ExperienceViewOf(e); ok {
			exp = append(exp, v)
		}
	}
	if len(exp) > 0 {
		out = append(out, Section{Kind: KindExperience, Key: string(KindExperience), Title: "EXPERIENCE", Experience: exp})
	}

	var edu []EducationView
	for _, e := range doc.Education {
		if v, ok := EducationViewOf(e); ok {
			edu = append(edu, v)
		}
	}
	if len(edu) > 0 {
		out = append(out, Section{Kind: KindEducation, Key: string(KindEducation), Title: "EDUCATION", Education: edu})
	}

	for _, cs := range doc.CustomSections {
		title := strings.TrimSpace(cs.Title)
		if title == "" {
			continue
		}
		var items []ItemView
		for _, it := range cs.Items {
			if v, ok := ItemViewOf(it); ok {
				items = append(items, v)
			}
		}
		if len(items) == 0 {
			continue
		}
		out = append(out, Section{
			Kind:  KindCustom,
			Key:   "custom:" + cs.ID,
			Title: strings.ToUpper(title),
			Items: items,
		})
	}

	return out
}

// Keys returns the section keys in order; renderers are compared on this list
func Keys(sections []Section) []string {
	keys := make([]string, len(sections))
	for i, s := range sections {
		keys[i] = s.Key
	}
	return keys
}

// RenderableStrengths keeps the categories with both a category name and skills
func RenderableStrengths(cats []types.SkillCategory) []types.SkillCategory {
	var out []types.SkillCategory
	for _, c := range cats {
		category := strings.TrimSpace(c.Category)
		skills := strings.TrimSpace(c.Skills)
		if category == "" || skills == "" {
			continue
		}
		out = append(out, types.SkillCategory{ID: c.ID, Category: category, Skills: skills})
	}
	return out
}

// VisibleBullets drops blank bullets and trims the rest
func VisibleBullets(bullets []string) []string {
	return nonBlank(bullets)
}

// IsBlank reports whether the preview should show its empty-state placeholder
func IsBlank(doc types.ResumeDocument) bool {
	return strings.TrimSpace(doc.PersonalInfo.FullName) == "" &&
		strings.TrimSpace(doc.Summary) == "" &&
		len(doc.Experience) == 0
}

// Filename builds "Jane_Doe_Resume.<ext>"
func Filename(doc types.ResumeDocument, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	parts := strings.Fields(doc.PersonalInfo.FullName)
	if len(parts) == 0 {
		return "Resume." + ext
	}
	return strings.Join(parts, "_") + "_Resume." + ext
}

// DateRange formats an experience date span
func DateRange(e types.ExperienceEntry) string {
	return normalize.DateRange(e.StartDate, e.EndDate, e.Current)
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
