// Package docx renders a resume as a WordprocessingML (.docx) flow document.
// There is no manual pagination: the word processor reflows the paragraphs.
package docx

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

// twipsPerPoint converts points to twentieths of a point
const twipsPerPoint = 20

// Alignment of a paragraph
type Alignment string

// Paragraph alignments
const (
	AlignLeft   Alignment = ""
	AlignCenter Alignment = "center"
)

// Run is a span of uniformly formatted text.
// A Run with Tab set is preceded by a tab character that jumps to the right tab stop.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Size   float64 // points
	Tab    bool
	Link   string
}

// Paragraph is one block of runs
type Paragraph struct {
	Section      string
	Align        Alignment
	Before       float64 // spacing before, points
	After        float64 // spacing after, points
	BottomBorder bool
	RightTab     bool
	Indent       float64 // left indent, points
	Hanging      float64 // hanging indent, points
	Runs         []Run
}

// Text returns the paragraph text with tabs rendered as "\t"
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		if r.Tab {
			sb.WriteByte('\t')
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Document is the paragraph model of a resume
type Document struct {
	Policy     layout.Policy
	Title      string
	Author     string
	Paragraphs []Paragraph
}

// SectionKeys returns the section keys in paragraph order
func (d *Document) SectionKeys() []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range d.Paragraphs {
		if p.Section == "" || seen[p.Section] {
			continue
		}
		seen[p.Section] = true
		out = append(out, p.Section)
	}
	return out
}

// Links returns every hyperlink target in document order
func (d *Document) Links() []string {
	var out []string
	for _, p := range d.Paragraphs {
		for _, r := range p.Runs {
			if r.Link != "" {
				out = append(out, r.Link)
			}
		}
	}
	return out
}

type builder struct {
	policy  layout.Policy
	section string
	paras   []Paragraph
}

// Build converts doc into the paragraph model
func Build(doc types.ResumeDocument, format types.LayoutFormat) *Document {
	b := &builder{policy: layout.For(format)}
	for _, s := range layout.Sections(doc) {
		b.section = s.Key
		switch s.Kind {
		case layout.KindHeader:
			b.header(*s.Header)
		case layout.KindSummary:
			b.sectionHeader(s.Title)
			b.add(Paragraph{Runs: []Run{b.bodyRun(s.Summary)}})
		case layout.KindCoreStrengths:
			b.sectionHeader(s.Title)
			for _, c := range s.Strengths {
				b.add(Paragraph{
					Hanging: b.policy.HangingIndent,
					Indent:  b.policy.HangingIndent,
					Runs: []Run{
						{Text: "• " + c.Category + ": ", Bold: true, Size: b.policy.Fonts.Body},
						b.bodyRun(c.Skills),
					},
				})
			}
		case layout.KindSkills:
			b.sectionHeader(s.Title)
			b.add(Paragraph{Runs: []Run{b.bodyRun(strings.Join(s.Skills, " • "))}})
		case layout.KindExperience:
			b.sectionHeader(s.Title)
			for i, v := range s.Experience {
				b.experience(v, i > 0)
			}
		case layout.KindEducation:
			b.sectionHeader(s.Title)
			for i, v := range s.Education {
				b.education(v, i > 0)
			}
		case layout.KindCustom:
			b.sectionHeader(s.Title)
			for i, v := range s.Items {
				b.item(v, i > 0)
			}
		}
	}
	return &Document{
		Policy:     b.policy,
		Title:      layout.Header(doc).Name,
		Author:     strings.TrimSpace(doc.PersonalInfo.FullName),
		Paragraphs: b.paras,
	}
}

func (b *builder) add(p Paragraph) {
	p.Section = b.section
	b.paras = append(b.paras, p)
}

func (b *builder) bodyRun(text string) Run {
	return Run{Text: text, Size: b.policy.Fonts.Body}
}

func (b *builder) header(h layout.HeaderView) {
	if h.Name != "" {
		b.add(Paragraph{
			Align: AlignCenter,
			Runs:  []Run{{Text: h.Name, Bold: true, Size: b.policy.Fonts.Name}},
		})
	}
	if len(h.Contacts) == 0 {
		return
	}
	var runs []Run
	for i, c := range h.Contacts {
		if i > 0 {
			runs = append(runs, Run{Text: layout.ContactSeparator, Size: b.policy.ContactSize})
		}
		runs = append(runs, Run{Text: c.Label, Size: b.policy.ContactSize, Link: c.Href})
	}
	b.add(Paragraph{Align: AlignCenter, After: b.policy.EntryGap, Runs: runs})
}

func (b *builder) sectionHeader(title string) {
	b.add(Paragraph{
		Before:       b.policy.Fonts.Spacing + b.policy.EntryGap,
		After:        b.policy.HeaderRuleGap,
		BottomBorder: true,
		Runs:         []Run{{Text: title, Bold: true, Size: b.policy.Fonts.SectionHeader}},
	})
}

// leftRight is one paragraph with a right-aligned field after a tab
func (b *builder) leftRight(left Run, right Run, before float64) Paragraph {
	p := Paragraph{RightTab: true, Before: before}
	if left.Text != "" {
		p.Runs = append(p.Runs, left)
	}
	if right.Text != "" {
		right.Tab = true
		p.Runs = append(p.Runs, right)
	}
	return p
}

func (b *builder) gap(notFirst bool) float64 {
	if notFirst {
		return b.policy.EntryGap
	}
	return 0
}

func (b *builder) bullets(items []string) {
	for _, text := range items {
		b.add(Paragraph{
			Indent:  b.policy.BulletIndent + b.policy.HangingIndent,
			Hanging: b.policy.HangingIndent,
			Runs:    []Run{b.bodyRun("• " + text)},
		})
	}
}

func (b *builder) experience(v layout.ExperienceView, notFirst bool) {
	sub := b.policy.Fonts.Subheader
	body := b.policy.Fonts.Body
	before := b.gap(notFirst)
	if v.Company != "" || v.Dates != "" {
		b.add(b.leftRight(Run{Text: v.Company, Bold: true, Size: sub}, Run{Text: v.Dates, Size: body}, before))
		before = 0
	}
	if v.Title != "" || v.Location != "" {
		b.add(b.leftRight(Run{Text: v.Title, Italic: true, Size: body}, Run{Text: v.Location, Italic: true, Size: body}, before))
	}
	b.bullets(v.Bullets)
}

func (b *builder) education(v layout.EducationView, notFirst bool) {
	sub := b.policy.Fonts.Subheader
	body := b.policy.Fonts.Body
	before := b.gap(notFirst)
	if v.Institution != "" || v.Date != "" {
		b.add(b.leftRight(Run{Text: v.Institution, Bold: true, Size: sub}, Run{Text: v.Date, Size: body}, before))
		before = 0
	}
	if v.Degree != "" || v.Location != "" {
		b.add(b.leftRight(Run{Text: v.Degree, Size: body}, Run{Text: v.Location, Italic: true, Size: body}, before))
	}
}

func (b *builder) item(v layout.ItemView, notFirst bool) {
	sub := b.policy.Fonts.Subheader
	body := b.policy.Fonts.Body
	before := b.gap(notFirst)
	if v.Title != "" || v.Link != "" || v.Date != "" {
		p := Paragraph{RightTab: true, Before: before}
		if v.Title != "" {
			p.Runs = append(p.Runs, Run{Text: v.Title, Bold: true, Size: sub})
		}
		if v.Link != "" {
			if v.Title != "" {
				p.Runs = append(p.Runs, Run{Text: layout.ContactSeparator, Size: body})
			}
			p.Runs = append(p.Runs, Run{Text: layout.LinkLabel, Size: body, Link: v.Link})
		}
		if v.Date != "" {
			p.Runs = append(p.Runs, Run{Text: v.Date, Size: body, Tab: true})
		}
		b.add(p)
		before = 0
	}
	if v.Subtitle != "" {
		b.add(Paragraph{Before: before, Runs: []Run{{Text: v.Subtitle, Italic: true, Size: body}}})
		before = 0
	}
	if v.Description != "" {
		b.add(Paragraph{Before: before, Runs: []Run{b.bodyRun(v.Description)}})
	}
	b.bullets(v.Bullets)
}
