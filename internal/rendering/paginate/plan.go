// Package paginate lays a resume out on fixed-size pages. It owns the vertical
// cursor and every page-break decision; a backend only executes the resulting Plan.
package paginate

import "github.com/jonathan/resume-builder/internal/layout"

// Style is a font weight/slant combination
type Style int

// Font styles
const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
)

// Font is a style at a point size
type Font struct {
	Style Style
	Size  float64
}

// Measurer reports the advance width of text in points
type Measurer interface {
	Width(text string, font Font) float64
}

// OpKind is the type of a draw operation
type OpKind int

// Draw operation kinds
const (
	OpText OpKind = iota
	OpRule
	OpLink
)

// Op is a single draw call. Coordinates are in points from the top-left corner.
//
//	OpText: Text drawn with Font at baseline (X, Y)
//	OpRule: horizontal line from (X, Y) to (X+W, Y)
//	OpLink: invisible clickable rectangle (X, Y, W, H) pointing at URL
type Op struct {
	Kind    OpKind
	Section string
	X, Y    float64
	W, H    float64
	Text    string
	Font    Font
	URL     string
}

// Page is the ops drawn on one page, in draw order
type Page struct {
	Ops []Op
}

// Plan is the complete paginated layout of a document
type Plan struct {
	Policy layout.Policy
	Pages  []Page
}

// Lines returns the text of every text op across all pages, in draw order
func (p *Plan) Lines() []string {
	var out []string
	for _, page := range p.Pages {
		for _, op := range page.Ops {
			if op.Kind == OpText {
				out = append(out, op.Text)
			}
		}
	}
	return out
}

// SectionKeys returns section keys in the order they first appear
func (p *Plan) SectionKeys() []string {
	var out []string
	seen := make(map[string]bool)
	for _, page := range p.Pages {
		for _, op := range page.Ops {
			if op.Section == "" || seen[op.Section] {
				continue
			}
			seen[op.Section] = true
			out = append(out, op.Section)
		}
	}
	return out
}

// Links returns every link op across all pages
func (p *Plan) Links() []Op {
	var out []Op
	for _, page := range p.Pages {
		for _, op := range page.Ops {
			if op.Kind == OpLink {
				out = append(out, op)
			}
		}
	}
	return out
}
