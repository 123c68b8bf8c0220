// Package pdf draws a paginated plan with go-pdf/fpdf. Text is set in the core
// Times face, with an embedded UTF-8 face for runs outside cp1252.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/rendering/paginate"
	"github.com/jonathan/resume-builder/internal/types"
)

// fontFamily is the core Times face, metric compatible with Times New Roman
const fontFamily = "Times"

// Metadata is written into the PDF info dictionary
type Metadata struct {
	Title   string
	Author  string
	Created time.Time
}

// Measurer measures text with the same faces Write draws with
type Measurer struct {
	pdf   *fpdf.Fpdf
	faces *faces
}

// NewMeasurer returns a Measurer backed by a throwaway fpdf document
func NewMeasurer() *Measurer {
	p := fpdf.New("P", "pt", "Letter", "")
	return &Measurer{pdf: p, faces: newFaces(p)}
}

// Width implements paginate.Measurer
func (m *Measurer) Width(text string, font paginate.Font) float64 {
	return m.pdf.GetStringWidth(m.faces.set(text, font))
}

// Plan lays doc out with fpdf metrics
func Plan(doc types.ResumeDocument, format types.LayoutFormat) (*paginate.Plan, error) {
	return paginate.Layout(doc, layout.For(format), NewMeasurer())
}

// Render lays out and draws doc, returning the PDF bytes
func Render(doc types.ResumeDocument, format types.LayoutFormat) ([]byte, error) {
	plan, err := Plan(doc, format)
	if err != nil {
		return nil, err
	}
	return Write(plan, Metadata{
		Title:  layout.Header(doc).Name,
		Author: doc.PersonalInfo.FullName,
	})
}

// Write executes plan and returns the encoded document.
// Nothing is returned unless the whole document was produced.
func Write(plan *paginate.Plan, meta Metadata) ([]byte, error) {
	policy := plan.Policy
	p := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: policy.PageWidth, Ht: policy.PageHeight},
	})
	p.SetMargins(policy.MarginHorizontal, policy.MarginVertical, policy.MarginHorizontal)
	p.SetAutoPageBreak(false, 0)
	p.SetCatalogSort(true)
	p.SetCreator("resume-builder", false)
	if meta.Title != "" {
		p.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		p.SetAuthor(meta.Author, true)
	}
	if !meta.Created.IsZero() {
		p.SetCreationDate(meta.Created)
		p.SetModificationDate(meta.Created)
	}

	fc := newFaces(p)
	r, g, b := policy.RuleRGB()

	for _, page := range plan.Pages {
		p.AddPage()
		for _, op := range page.Ops {
			switch op.Kind {
			case paginate.OpText:
				p.Text(op.X, op.Y, fc.set(op.Text, op.Font))
			case paginate.OpRule:
				p.SetDrawColor(r, g, b)
				p.SetLineWidth(op.H)
				p.Line(op.X, op.Y, op.X+op.W, op.Y)
			case paginate.OpLink:
				p.LinkString(op.X, op.Y, op.W, op.H, op.URL)
			default:
				return nil, fmt.Errorf("pdf: unknown op kind %d", op.Kind)
			}
		}
	}

	if p.Err() {
		return nil, fmt.Errorf("failed to draw pdf: %w", p.Error())
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func styleString(s paginate.Style) string {
	switch s {
	case paginate.Bold:
		return "B"
	case paginate.Italic:
		return "I"
	case paginate.BoldItalic:
		return "BI"
	default:
		return ""
	}
}
