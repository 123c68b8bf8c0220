// Package ingestion turns uploaded resume files and job posting pages into clean text.
package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

// UnsupportedFileMessage is shown to users for files that are not PDF, DOCX or TXT
const UnsupportedFileMessage = "Unsupported file type. Please upload a PDF, DOCX, or TXT file."

// MaxFileSize bounds the size of an uploaded file
const MaxFileSize = 10 << 20

// UnsupportedFileError is returned for extensions ExtractText does not read
type UnsupportedFileError struct {
	Name      string
	Extension string
}

func (e *UnsupportedFileError) Error() string {
	return UnsupportedFileMessage
}

// ExtractionError is returned when a supported file cannot be read or yields no text
type ExtractionError struct {
	Name    string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract text from %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to extract text from %s: %s", e.Name, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// SupportedExtensions lists the file extensions ExtractText accepts
func SupportedExtensions() []string {
	return []string{".pdf", ".docx", ".txt", ".html", ".htm"}
}

// ExtractText returns the cleaned text of a file, choosing the reader by the
// extension of name. HTML is accepted for saved job postings and web resumes.
func ExtractText(name string, data []byte) (string, error) {
	if len(data) > MaxFileSize {
		return "", &ExtractionError{Name: name, Message: fmt.Sprintf("file is larger than %d MB", MaxFileSize>>20)}
	}

	ext := strings.ToLower(filepath.Ext(name))
	var (
		text string
		err  error
	)
	switch ext {
	case ".txt":
		text, err = extractPlainText(data)
	case ".pdf":
		text, err = extractPDFText(data)
	case ".docx":
		text, err = extractDOCXText(data)
	case ".html", ".htm":
		text, err = extractHTMLText(data)
	default:
		return "", &UnsupportedFileError{Name: name, Extension: ext}
	}
	if err != nil {
		return "", &ExtractionError{Name: name, Message: "unreadable " + strings.TrimPrefix(ext, ".") + " file", Cause: err}
	}

	text = CleanText(text)
	if text == "" {
		return "", &ExtractionError{Name: name, Message: "no text found"}
	}
	return text, nil
}

// ExtractFile reads path and extracts its text
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Name: filepath.Base(path), Message: "failed to read file", Cause: err}
	}
	return ExtractText(filepath.Base(path), data)
}

func extractPlainText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", errors.New("text is not valid UTF-8")
	}
	return string(data), nil
}

// extractPDFText reads the text layer of every page. The pdf reader panics on
// some malformed inputs, so panics are turned into errors.
func extractPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		for _, row := range rows {
			for j, word := range row.Content {
				if j > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(word.S)
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// extractDOCXText walks word/document.xml collecting w:t runs. Paragraphs end
// lines, w:tab becomes a tab and w:br a line break.
func extractDOCXText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("not a DOCX archive: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			part = f
			break
		}
	}
	if part == nil {
		return "", errors.New("word/document.xml not found")
	}

	rc, err := part.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

	var sb strings.Builder
	dec := xml.NewDecoder(rc)
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("invalid document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}

func extractHTMLText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript, head").Remove()

	var sb strings.Builder
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, td, dt, dd").Each(func(_ int, s *goquery.Selection) {
		// Nested blocks are visited on their own
		if s.Find("p, li").Length() > 0 {
			return
		}
		line := strings.TrimSpace(s.Text())
		if line == "" {
			return
		}
		if goquery.NodeName(s) == "li" {
			line = "• " + line
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	})
	if sb.Len() == 0 {
		return doc.Find("body").Text(), nil
	}
	return sb.String(), nil
}
