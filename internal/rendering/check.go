package rendering

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/rendering/docx"
	"github.com/jonathan/resume-builder/internal/rendering/pdf"
	"github.com/jonathan/resume-builder/internal/rendering/plaintext"
	"github.com/jonathan/resume-builder/internal/rendering/preview"
	"github.com/jonathan/resume-builder/internal/types"
	"golang.org/x/sync/errgroup"
)

// Renderer names reported by Check
const (
	RendererPreview   = "preview"
	RendererPDF       = "pdf"
	RendererDOCX      = "docx"
	RendererPlainText = "plaintext"
)

// CheckResult compares the sections each renderer actually produced
type CheckResult struct {
	Expected   []string            `json:"expected"`
	Renderers  map[string][]string `json:"renderers"`
	Pages      int                 `json:"pages"`
	Consistent bool                `json:"consistent"`
	Mismatches []string            `json:"mismatches,omitempty"`
	Links      []string            `json:"links,omitempty"` // hrefs in the preview
}

// Check runs every renderer on doc and reports whether they all present the
// same sections in the same order as the shared layout.
func Check(doc types.ResumeDocument, format types.LayoutFormat) (*CheckResult, error) {
	result := &CheckResult{
		Expected:  layout.Keys(layout.Sections(doc)),
		Renderers: make(map[string][]string),
	}
	// the preview shows a placeholder instead of sections for blank documents
	checkPreview := !layout.IsBlank(doc)

	var previewKeys, pdfKeys, docxKeys, textKeys []string
	var g errgroup.Group

	if checkPreview {
		g.Go(func() error {
			html, err := preview.Render(doc, format)
			if err != nil {
				return &RenderError{Message: "preview failed", Cause: err}
			}
			if previewKeys, err = preview.Sections(string(html)); err != nil {
				return err
			}
			result.Links, err = preview.Links(string(html))
			return err
		})
	}
	g.Go(func() error {
		plan, err := pdf.Plan(doc, format)
		if err != nil {
			return &RenderError{Message: "pdf layout failed", Cause: err}
		}
		pdfKeys = plan.SectionKeys()
		result.Pages = len(plan.Pages)
		return nil
	})
	g.Go(func() error {
		docxKeys = docx.Build(doc, format).SectionKeys()
		return nil
	})
	g.Go(func() error {
		textKeys = plaintext.SectionKeys(doc)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if checkPreview {
		result.Renderers[RendererPreview] = previewKeys
	}
	result.Renderers[RendererPDF] = pdfKeys
	result.Renderers[RendererDOCX] = docxKeys
	result.Renderers[RendererPlainText] = textKeys

	names := make([]string, 0, len(result.Renderers))
	for name := range result.Renderers {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		got := result.Renderers[name]
		if !slices.Equal(got, result.Expected) {
			result.Mismatches = append(result.Mismatches,
				fmt.Sprintf("%s: got [%s], want [%s]", name, strings.Join(got, ", "), strings.Join(result.Expected, ", ")))
		}
	}
	result.Consistent = len(result.Mismatches) == 0
	return result, nil
}
