// Package preview renders a resume as a static HTML page for on-screen display
package preview

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed preview.html.tmpl
var previewTemplate string

var tmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"join":      strings.Join,
	"linkLabel": func() string { return layout.LinkLabel },
}).Parse(previewTemplate))

type pageData struct {
	Policy   layout.Policy
	Name     string
	Spacing  float64
	Blank    bool
	Sections []layout.Section
}

// Render returns the preview page. A document with no name, summary or
// experience renders the empty-state placeholder instead of a resume.
func Render(doc types.ResumeDocument, format types.LayoutFormat) (template.HTML, error) {
	policy := layout.For(format)
	data := pageData{
		Policy:  policy,
		Name:    layout.Header(doc).Name,
		Spacing: policy.Fonts.Spacing + policy.EntryGap,
		Blank:   layout.IsBlank(doc),
	}
	if !data.Blank {
		data.Sections = layout.Sections(doc)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "preview", data); err != nil {
		return "", fmt.Errorf("failed to execute preview template: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Sections reads the data-section keys back out of rendered preview HTML
func Sections(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse preview html: %w", err)
	}
	var keys []string
	doc.Find("[data-section]").Each(func(_ int, s *goquery.Selection) {
		if key, ok := s.Attr("data-section"); ok {
			keys = append(keys, key)
		}
	})
	return keys, nil
}

// Links returns every href in the rendered preview, in document order
func Links(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse preview html: %w", err)
	}
	var out []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.AttrOr("href", ""))
	})
	return out, nil
}
