package rendering

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/rendering/docx"
	"github.com/jonathan/resume-builder/internal/rendering/pdf"
	"github.com/jonathan/resume-builder/internal/rendering/plaintext"
	"github.com/jonathan/resume-builder/internal/rendering/preview"
	"github.com/jonathan/resume-builder/internal/types"
	"golang.org/x/sync/errgroup"
)

// Kind is an export target
type Kind string

// Export kinds
const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindText Kind = "txt"
	KindHTML Kind = "html"
	KindZip  Kind = "zip"
)

var contentTypes = map[Kind]string{
	KindPDF:  "application/pdf",
	KindDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	KindText: "text/plain; charset=utf-8",
	KindHTML: "text/html; charset=utf-8",
	KindZip:  "application/zip",
}

// Artifact is a finished export
type Artifact struct {
	Kind        Kind
	Filename    string
	ContentType string
	Data        []byte
}

// ParseKind maps user input to a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	if k == "text" {
		k = KindText
	}
	switch k {
	case KindPDF, KindDOCX, KindText, KindHTML:
		return k, nil
	}
	return "", &UnsupportedKindError{Kind: s}
}

// Export renders doc to a single artifact. The full name is checked first and
// a failed render never returns partial output.
func Export(ctx context.Context, doc types.ResumeDocument, format types.LayoutFormat, kind Kind) (*Artifact, error) {
	if strings.TrimSpace(doc.PersonalInfo.FullName) == "" {
		return nil, ErrMissingName
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	var err error
	switch kind {
	case KindPDF:
		data, err = pdf.Render(doc, format)
	case KindDOCX:
		data, err = docx.Render(doc, format)
	case KindText:
		data = []byte(plaintext.Render(doc))
	case KindHTML:
		var page template.HTML
		page, err = preview.Render(doc, format)
		data = []byte(page)
	default:
		return nil, &UnsupportedKindError{Kind: string(kind)}
	}
	if err != nil {
		return nil, &RenderError{Message: fmt.Sprintf("failed to render %s", kind), Cause: err}
	}

	return &Artifact{
		Kind:        kind,
		Filename:    layout.Filename(doc, string(kind)),
		ContentType: contentTypes[kind],
		Data:        data,
	}, nil
}

// Bundle renders PDF, DOCX and plain text concurrently and zips them together
func Bundle(ctx context.Context, doc types.ResumeDocument, format types.LayoutFormat) (*Artifact, error) {
	if strings.TrimSpace(doc.PersonalInfo.FullName) == "" {
		return nil, ErrMissingName
	}

	kinds := []Kind{KindPDF, KindDOCX, KindText}
	artifacts := make([]*Artifact, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			a, err := Export(gctx, doc, format, kind)
			if err != nil {
				return err
			}
			artifacts[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, a := range artifacts {
		w, err := zw.Create(a.Filename)
		if err != nil {
			return nil, &RenderError{Message: "failed to add file to bundle", Cause: err}
		}
		if _, err := w.Write(a.Data); err != nil {
			return nil, &RenderError{Message: "failed to write bundle", Cause: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &RenderError{Message: "failed to finish bundle", Cause: err}
	}

	return &Artifact{
		Kind:        KindZip,
		Filename:    layout.Filename(doc, "zip"),
		ContentType: contentTypes[KindZip],
		Data:        buf.Bytes(),
	}, nil
}
