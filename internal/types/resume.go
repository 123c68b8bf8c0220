// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/google/uuid"
)

// ResumeDocument is the canonical, serializable resume.
// JSON names follow the editor's camelCase wire format.
type ResumeDocument struct {
	PersonalInfo   PersonalInfo      `json:"personalInfo"`
	Summary        string            `json:"summary"`
	CoreStrengths  []SkillCategory   `json:"coreStrengths"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	CustomSections []CustomSection   `json:"customSections"`
	// Skills is kept for documents created before CoreStrengths existed.
	Skills []string `json:"skills"`
}

// PersonalInfo holds the header fields of a resume
type PersonalInfo struct {
	FullName  string  `json:"fullName"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Location  string  `json:"location"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	GitHub    *string `json:"github,omitempty"`
	Portfolio *string `json:"portfolio,omitempty"`
}

// SkillCategory is one "Category: skill, skill" line of the core strengths section
type SkillCategory struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Skills   string `json:"skills"`
}

// ExperienceEntry is a single job held by the candidate.
// When Current is true EndDate is ignored for display.
type ExperienceEntry struct {
	ID        string   `json:"id"`
	JobTitle  string   `json:"jobTitle"`
	Company   string   `json:"company"`
	Location  string   `json:"location"`
	WorkType  *string  `json:"workType,omitempty"` // Remote, Hybrid, On-site
	StartDate string   `json:"startDate"`          // YYYY-MM
	EndDate   string   `json:"endDate"`            // YYYY-MM
	Current   bool     `json:"current"`
	Bullets   []string `json:"bullets"`
}

// EducationEntry is a single degree
type EducationEntry struct {
	ID             string  `json:"id"`
	Degree         string  `json:"degree"`
	Field          *string `json:"field,omitempty"`
	Institution    string  `json:"institution"`
	Location       string  `json:"location"`
	GraduationDate string  `json:"graduationDate"`
	GPA            *string `json:"gpa,omitempty"`
}

// CustomSection is a user-named section (projects, certifications, awards, ...)
type CustomSection struct {
	ID    string              `json:"id"`
	Title string              `json:"title"`
	Items []CustomSectionItem `json:"items"`
}

// CustomSectionItem is the uniform item shape shared by all custom sections
type CustomSectionItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Subtitle    *string  `json:"subtitle,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Description *string  `json:"description,omitempty"`
	Link        *string  `json:"link,omitempty"`
	Bullets     []string `json:"bullets"`
}

// NewResumeDocument returns an empty document with non-nil collections
func NewResumeDocument() ResumeDocument {
	return ResumeDocument{
		CoreStrengths:  []SkillCategory{},
		Experience:     []ExperienceEntry{},
		Education:      []EducationEntry{},
		CustomSections: []CustomSection{},
		Skills:         []string{},
	}
}

// NewExperienceEntry returns an empty experience entry with a fresh ID and one blank bullet
func NewExperienceEntry() ExperienceEntry {
	return ExperienceEntry{ID: uuid.NewString(), Bullets: []string{""}}
}

// NewEducationEntry returns an empty education entry with a fresh ID
func NewEducationEntry() EducationEntry {
	return EducationEntry{ID: uuid.NewString()}
}

// NewSkillCategory returns a skill category with a fresh ID
func NewSkillCategory(category, skills string) SkillCategory {
	return SkillCategory{ID: uuid.NewString(), Category: category, Skills: skills}
}

// NewCustomSection returns an empty custom section with a fresh ID
func NewCustomSection(title string) CustomSection {
	return CustomSection{ID: uuid.NewString(), Title: title, Items: []CustomSectionItem{}}
}

// NewCustomSectionItem returns an empty custom item with a fresh ID
func NewCustomSectionItem(title string) CustomSectionItem {
	return CustomSectionItem{ID: uuid.NewString(), Title: title, Bullets: []string{}}
}

// Opt converts a boundary string into an optional value.
// Whitespace-only input is treated as absent.
func Opt(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// Val returns the optional value or "" when absent
func Val(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Clone returns a deep copy so callers can derive a new document without aliasing slices.
func (d ResumeDocument) Clone() ResumeDocument {
	out := d
	out.PersonalInfo.LinkedIn = cloneOpt(d.PersonalInfo.LinkedIn)
	out.PersonalInfo.GitHub = cloneOpt(d.PersonalInfo.GitHub)
	out.PersonalInfo.Portfolio = cloneOpt(d.PersonalInfo.Portfolio)

	out.CoreStrengths = append([]SkillCategory{}, d.CoreStrengths...)
	out.Skills = append([]string{}, d.Skills...)

	out.Experience = make([]ExperienceEntry, len(d.Experience))
	for i, e := range d.Experience {
		e.WorkType = cloneOpt(e.WorkType)
		e.Bullets = append([]string{}, e.Bullets...)
		out.Experience[i] = e
	}

	out.Education = make([]EducationEntry, len(d.Education))
	for i, e := range d.Education {
		e.Field = cloneOpt(e.Field)
		e.GPA = cloneOpt(e.GPA)
		out.Education[i] = e
	}

	out.CustomSections = make([]CustomSection, len(d.CustomSections))
	for i, s := range d.CustomSections {
		items := make([]CustomSectionItem, len(s.Items))
		for j, it := range s.Items {
			it.Subtitle = cloneOpt(it.Subtitle)
			it.Date = cloneOpt(it.Date)
			it.Description = cloneOpt(it.Description)
			it.Link = cloneOpt(it.Link)
			it.Bullets = append([]string{}, it.Bullets...)
			items[j] = it
		}
		s.Items = items
		out.CustomSections[i] = s
	}

	return out
}

func cloneOpt(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
