package paginate

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

// Row height ratios relative to font size
const (
	nameLeading    = 1.25
	headerLeading  = 1.2
	baselineOffset = 0.78
)

const bulletPrefix = "• "

// Engine holds the cursor state while a plan is built.
// An Engine is single use; call Layout for the common case.
type Engine struct {
	policy  layout.Policy
	m       Measurer
	pages   []Page
	cursor  float64
	section string
}

// NewEngine starts a plan on a fresh first page
func NewEngine(policy layout.Policy, m Measurer) *Engine {
	return &Engine{
		policy: policy,
		m:      m,
		pages:  []Page{{}},
		cursor: policy.MarginVertical,
	}
}

// Layout produces the paginated plan for doc
func Layout(doc types.ResumeDocument, policy layout.Policy, m Measurer) (*Plan, error) {
	if m == nil {
		return nil, fmt.Errorf("paginate: nil measurer")
	}
	e := NewEngine(policy, m)
	for _, s := range layout.Sections(doc) {
		e.section = s.Key
		switch s.Kind {
		case layout.KindHeader:
			e.header(*s.Header)
		case layout.KindSummary:
			e.sectionHeader(s.Title, e.lineHeight())
			e.paragraph(s.Summary, e.body(Regular), 0)
		case layout.KindCoreStrengths:
			e.sectionHeader(s.Title, e.lineHeight())
			for _, c := range s.Strengths {
				e.strength(c)
			}
		case layout.KindSkills:
			e.sectionHeader(s.Title, e.lineHeight())
			e.paragraph(strings.Join(s.Skills, " • "), e.body(Regular), 0)
		case layout.KindExperience:
			e.sectionHeader(s.Title, 2*e.lineHeight())
			for i, v := range s.Experience {
				e.entryGap(i)
				e.experience(v)
			}
		case layout.KindEducation:
			e.sectionHeader(s.Title, 2*e.lineHeight())
			for i, v := range s.Education {
				e.entryGap(i)
				e.education(v)
			}
		case layout.KindCustom:
			e.sectionHeader(s.Title, e.lineHeight())
			for i, v := range s.Items {
				e.entryGap(i)
				e.item(v)
			}
		default:
			return nil, fmt.Errorf("paginate: unknown section kind %q", s.Kind)
		}
	}
	return &Plan{Policy: policy, Pages: e.pages}, nil
}

func (e *Engine) lineHeight() float64 { return e.policy.Fonts.LineHeight }

func (e *Engine) body(style Style) Font { return Font{Style: style, Size: e.policy.Fonts.Body} }

func (e *Engine) left() float64 { return e.policy.MarginHorizontal }

func (e *Engine) right() float64 { return e.policy.PageWidth - e.policy.MarginHorizontal }

func (e *Engine) atPageTop() bool { return e.cursor <= e.policy.MarginVertical }

// ensure starts a new page when h more points do not fit. A unit taller than
// a whole page is drawn past the margin rather than breaking forever.
func (e *Engine) ensure(h float64) {
	if e.cursor+h > e.policy.ContentBottom() && !e.atPageTop() {
		e.pages = append(e.pages, Page{})
		e.cursor = e.policy.MarginVertical
	}
}

func (e *Engine) emit(op Op) {
	op.Section = e.section
	last := &e.pages[len(e.pages)-1]
	last.Ops = append(last.Ops, op)
}

func (e *Engine) text(s string, x, baseline float64, font Font) {
	if s == "" {
		return
	}
	e.emit(Op{Kind: OpText, X: x, Y: baseline, Text: s, Font: font})
}

func (e *Engine) textRight(s string, baseline float64, font Font) {
	if s == "" {
		return
	}
	e.text(s, e.right()-e.m.Width(s, font), baseline, font)
}

func (e *Engine) link(url string, x, baseline, w float64, font Font) {
	e.emit(Op{
		Kind: OpLink,
		X:    x,
		Y:    baseline - font.Size*baselineOffset,
		W:    w,
		H:    font.Size,
		URL:  url,
	})
}

// row reserves a row of height h and returns its baseline
func (e *Engine) row(h float64) float64 {
	e.ensure(h)
	baseline := e.cursor + h*baselineOffset
	e.cursor += h
	return baseline
}

func (e *Engine) entryGap(i int) {
	if i > 0 && !e.atPageTop() {
		e.cursor += e.policy.EntryGap
	}
}

func (e *Engine) header(h layout.HeaderView) {
	if h.Name != "" {
		font := Font{Style: Bold, Size: e.policy.Fonts.Name}
		baseline := e.row(e.policy.Fonts.Name * nameLeading)
		w := e.m.Width(h.Name, font)
		e.text(h.Name, e.left()+(e.policy.ContentWidth()-w)/2, baseline, font)
	}

	font := Font{Style: Regular, Size: e.policy.ContactSize}
	for _, line := range e.contactLines(h.Contacts, font) {
		baseline := e.row(e.lineHeight())
		var labels []string
		for _, c := range line {
			labels = append(labels, c.Label)
		}
		text := strings.Join(labels, layout.ContactSeparator)
		x := e.left() + (e.policy.ContentWidth()-e.m.Width(text, font))/2
		e.text(text, x, baseline, font)

		sepW := e.m.Width(layout.ContactSeparator, font)
		for i, c := range line {
			w := e.m.Width(c.Label, font)
			if c.IsLink() {
				e.link(c.Href, x, baseline, w, font)
			}
			x += w
			if i < len(line)-1 {
				x += sepW
			}
		}
	}
	e.cursor += e.policy.EntryGap
}

// contactLines wraps the contact items at item boundaries
func (e *Engine) contactLines(items []layout.ContactItem, font Font) [][]layout.ContactItem {
	var lines [][]layout.ContactItem
	var cur []layout.ContactItem
	var width float64
	sepW := e.m.Width(layout.ContactSeparator, font)
	for _, c := range items {
		w := e.m.Width(c.Label, font)
		if len(cur) > 0 && width+sepW+w > e.policy.ContentWidth() {
			lines = append(lines, cur)
			cur, width = nil, 0
		}
		if len(cur) > 0 {
			width += sepW
		}
		cur = append(cur, c)
		width += w
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// sectionHeader draws the title and its rule, keeping them on the same page
// as the first firstBody points of content.
func (e *Engine) sectionHeader(title string, firstBody float64) {
	p := e.policy
	font := Font{Style: Bold, Size: p.Fonts.SectionHeader}
	rowH := p.Fonts.SectionHeader * headerLeading
	ruleOffset := rowH*baselineOffset + p.HeaderRuleGap
	headerH := ruleOffset + p.RuleWidth + p.HeaderRuleGap

	spacing := p.Fonts.Spacing + p.EntryGap
	e.ensure(spacing + headerH + firstBody)
	if !e.atPageTop() {
		e.cursor += spacing
	}

	baseline := e.cursor + rowH*baselineOffset
	e.text(title, e.left(), baseline, font)
	e.emit(Op{Kind: OpRule, X: e.left(), Y: e.cursor + ruleOffset, W: p.ContentWidth(), H: p.RuleWidth})
	e.cursor += headerH
}

// paragraph wraps text to the content width, one row per line
func (e *Engine) paragraph(text string, font Font, indent float64) {
	width := e.policy.ContentWidth() - indent
	for _, line := range Wrap(e.m, text, font, width, width) {
		baseline := e.row(e.lineHeight())
		e.text(line, e.left()+indent, baseline, font)
	}
}

// bullet draws "• text" with continuation lines hanging under the text
func (e *Engine) bullet(text string) {
	p := e.policy
	font := e.body(Regular)
	x := e.left() + p.BulletIndent
	first := p.ContentWidth() - p.BulletIndent
	rest := first - p.HangingIndent
	for i, line := range Wrap(e.m, bulletPrefix+text, font, first, rest) {
		baseline := e.row(e.lineHeight())
		if i == 0 {
			e.text(line, x, baseline, font)
		} else {
			e.text(line, x+p.HangingIndent, baseline, font)
		}
	}
}

func (e *Engine) strength(c types.SkillCategory) {
	p := e.policy
	label := bulletPrefix + c.Category + ": "
	boldFont := e.body(Bold)
	font := e.body(Regular)
	labelW := e.m.Width(label, boldFont)
	x := e.left()

	first := p.ContentWidth() - labelW
	rest := p.ContentWidth() - p.HangingIndent
	lines := Wrap(e.m, c.Skills, font, first, rest)

	baseline := e.row(e.lineHeight())
	e.text(label, x, baseline, boldFont)
	for i, line := range lines {
		if i > 0 {
			baseline = e.row(e.lineHeight())
			e.text(line, x+p.HangingIndent, baseline, font)
			continue
		}
		e.text(line, x+labelW, baseline, font)
	}
}

// leftRight draws one row with a left field and a right-aligned field on the same baseline
func (e *Engine) leftRight(left string, leftFont Font, right string, rightFont Font) float64 {
	baseline := e.row(e.lineHeight())
	e.text(left, e.left(), baseline, leftFont)
	e.textRight(right, baseline, rightFont)
	return baseline
}

func (e *Engine) experience(v layout.ExperienceView) {
	sub := Font{Style: Bold, Size: e.policy.Fonts.Subheader}
	// company and title rows stay together
	e.ensure(2 * e.lineHeight())
	if v.Company != "" || v.Dates != "" {
		e.leftRight(v.Company, sub, v.Dates, e.body(Regular))
	}
	if v.Title != "" || v.Location != "" {
		e.leftRight(v.Title, e.body(Italic), v.Location, e.body(Italic))
	}
	for _, b := range v.Bullets {
		e.bullet(b)
	}
}

func (e *Engine) education(v layout.EducationView) {
	sub := Font{Style: Bold, Size: e.policy.Fonts.Subheader}
	e.ensure(2 * e.lineHeight())
	if v.Institution != "" || v.Date != "" {
		e.leftRight(v.Institution, sub, v.Date, e.body(Regular))
	}
	if v.Degree != "" || v.Location != "" {
		e.leftRight(v.Degree, e.body(Regular), v.Location, e.body(Italic))
	}
}

func (e *Engine) item(v layout.ItemView) {
	sub := Font{Style: Bold, Size: e.policy.Fonts.Subheader}
	if v.Title != "" || v.Link != "" || v.Date != "" {
		baseline := e.leftRight(v.Title, sub, v.Date, e.body(Regular))
		if v.Link != "" {
			x := e.left()
			if v.Title != "" {
				x += e.m.Width(v.Title, sub)
				e.text(layout.ContactSeparator, x, baseline, e.body(Regular))
				x += e.m.Width(layout.ContactSeparator, e.body(Regular))
			}
			linkFont := e.body(Regular)
			e.text(layout.LinkLabel, x, baseline, linkFont)
			e.link(v.Link, x, baseline, e.m.Width(layout.LinkLabel, linkFont), linkFont)
		}
	}
	if v.Subtitle != "" {
		baseline := e.row(e.lineHeight())
		e.text(v.Subtitle, e.left(), baseline, e.body(Italic))
	}
	if v.Description != "" {
		e.paragraph(v.Description, e.body(Regular), 0)
	}
	for _, b := range v.Bullets {
		e.bullet(b)
	}
}
