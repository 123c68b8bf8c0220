package layout

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/normalize"
	"github.com/jonathan/resume-builder/internal/types"
)

// ContactKind identifies a contact field
type ContactKind string

// Contact kinds in display order
const (
	ContactLocation  ContactKind = "location"
	ContactPhone     ContactKind = "phone"
	ContactEmail     ContactKind = "email"
	ContactGitHub    ContactKind = "github"
	ContactPortfolio ContactKind = "portfolio"
	ContactLinkedIn  ContactKind = "linkedin"
)

// ContactSeparator joins contact items on the contact line
const ContactSeparator = " | "

// ContactItem is one field of the contact line.
// Label is what visual renderers draw; Value is what plain text shows.
type ContactItem struct {
	Kind  ContactKind
	Label string
	Value string
	Href  string
}

// IsLink reports whether the item is drawn as a hyperlink
func (c ContactItem) IsLink() bool {
	return c.Href != ""
}

// HeaderView is the name and contact line
type HeaderView struct {
	Name     string // already uppercased
	Contacts []ContactItem
}

func (h HeaderView) empty() bool {
	return h.Name == "" && len(h.Contacts) == 0
}

// ContactText joins the plain values
func (h HeaderView) ContactText() string {
	parts := make([]string, len(h.Contacts))
	for i, c := range h.Contacts {
		parts[i] = c.Value
	}
	return strings.Join(parts, ContactSeparator)
}

// ContactLabels joins the labels drawn by visual renderers
func (h HeaderView) ContactLabels() string {
	parts := make([]string, len(h.Contacts))
	for i, c := range h.Contacts {
		parts[i] = c.Label
	}
	return strings.Join(parts, ContactSeparator)
}

// Header builds the header view of doc
func Header(doc types.ResumeDocument) HeaderView {
	return HeaderView{
		Name:     strings.ToUpper(strings.TrimSpace(doc.PersonalInfo.FullName)),
		Contacts: ContactItems(doc.PersonalInfo),
	}
}

// ContactItems returns the present contact fields in the fixed order
// location, phone, email, GitHub, portfolio, LinkedIn. Links that fail
// normalization are dropped.
func ContactItems(p types.PersonalInfo) []ContactItem {
	var out []ContactItem
	if s := strings.TrimSpace(p.Location); s != "" {
		out = append(out, ContactItem{Kind: ContactLocation, Label: s, Value: s})
	}
	if s := strings.TrimSpace(p.Phone); s != "" {
		out = append(out, ContactItem{Kind: ContactPhone, Label: s, Value: s})
	}
	if s := strings.TrimSpace(p.Email); s != "" {
		item := ContactItem{Kind: ContactEmail, Label: s, Value: s}
		if href, ok := normalize.Mailto(s); ok {
			item.Href = href
		}
		out = append(out, item)
	}
	links := []struct {
		kind  ContactKind
		label string
		raw   *string
	}{
		{ContactGitHub, "GitHub", p.GitHub},
		{ContactPortfolio, "Portfolio", p.Portfolio},
		{ContactLinkedIn, "LinkedIn", p.LinkedIn},
	}
	for _, l := range links {
		href, ok := normalize.NormalizeLink(types.Val(l.raw))
		if !ok {
			continue
		}
		out = append(out, ContactItem{Kind: l.kind, Label: l.label, Value: href, Href: href})
	}
	return out
}

// ExperienceView is one experience entry as drawn:
//
//	Company                         Jan 2022 - Present
//	Job Title                       Chicago | Remote
//	• bullet
type ExperienceView struct {
	ID       string
	Company  string
	Dates    string
	Title    string
	Location string
	Bullets  []string
}

// ExperienceViewOf reports false when the entry has nothing to draw
func ExperienceViewOf(e types.ExperienceEntry) (ExperienceView, bool) {
	v := ExperienceView{
		ID:      e.ID,
		Company: strings.TrimSpace(e.Company),
		Dates:   DateRange(e),
		Title:   strings.TrimSpace(e.JobTitle),
		Bullets: VisibleBullets(e.Bullets),
	}
	v.Location = joinPipe(strings.TrimSpace(e.Location), strings.TrimSpace(types.Val(e.WorkType)))
	if v.Company == "" && v.Title == "" && len(v.Bullets) == 0 {
		return v, false
	}
	return v, true
}

// EducationView is one education entry as drawn:
//
//	Institution                     May 2020
//	BS in Computer Science | GPA: 3.9    Chicago, IL
type EducationView struct {
	ID          string
	Institution string
	Date        string
	Degree      string
	Location    string
}

// EducationViewOf reports false when the entry has nothing to draw
func EducationViewOf(e types.EducationEntry) (EducationView, bool) {
	degree := strings.TrimSpace(e.Degree)
	if field := strings.TrimSpace(types.Val(e.Field)); field != "" {
		if degree != "" {
			degree += " in " + field
		} else {
			degree = field
		}
	}
	if gpa := strings.TrimSpace(types.Val(e.GPA)); gpa != "" {
		degree = joinPipe(degree, "GPA: "+gpa)
	}
	v := EducationView{
		ID:          e.ID,
		Institution: strings.TrimSpace(e.Institution),
		Date:        normalize.FormatMonthYear(e.GraduationDate),
		Degree:      degree,
		Location:    strings.TrimSpace(e.Location),
	}
	if v.Institution == "" && strings.TrimSpace(e.Degree) == "" {
		return v, false
	}
	return v, true
}

// ItemView is one custom section item as drawn.
// When Link is set the renderers append " | Link" to the title.
type ItemView struct {
	ID          string
	Title       string
	Link        string
	Date        string
	Subtitle    string
	Description string
	Bullets     []string
}

// LinkLabel is the visible text for a custom item link
const LinkLabel = "Link"

// ItemViewOf reports false when the item has nothing to draw
func ItemViewOf(it types.CustomSectionItem) (ItemView, bool) {
	v := ItemView{
		ID:          it.ID,
		Title:       strings.TrimSpace(it.Title),
		Date:        normalize.FormatMonthYear(types.Val(it.Date)),
		Subtitle:    strings.TrimSpace(types.Val(it.Subtitle)),
		Description: strings.TrimSpace(types.Val(it.Description)),
		Bullets:     VisibleBullets(it.Bullets),
	}
	if href, ok := normalize.NormalizeLink(types.Val(it.Link)); ok {
		v.Link = href
	}
	if v.Title == "" && v.Subtitle == "" && v.Description == "" && len(v.Bullets) == 0 {
		return v, false
	}
	return v, true
}

func joinPipe(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ContactSeparator)
}
