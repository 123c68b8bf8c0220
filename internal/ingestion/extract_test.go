package ingestion

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-builder/internal/rendering/docx"
	"github.com/jonathan/resume-builder/internal/rendering/pdf"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resumeFixture() types.ResumeDocument {
	doc := types.NewResumeDocument()
	doc.PersonalInfo = types.PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com", Location: "Chicago, IL"}
	doc.Summary = "Backend engineer focused on reliable data systems."
	doc.Experience = []types.ExperienceEntry{
		{ID: "exp-1", JobTitle: "Engineer", Company: "Acme", StartDate: "2022-01", EndDate: "2023-06", Bullets: []string{"Built the billing pipeline"}},
	}
	return doc
}

func TestExtractText_PlainText(t *testing.T) {
	text, err := ExtractText("resume.TXT", []byte("\xef\xbb\xbfJane Doe\r\n\r\n\r\n•  Built   things"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\n• Built things", text)
}

func TestExtractText_InvalidUTF8(t *testing.T) {
	_, err := ExtractText("resume.txt", []byte{0xff, 0xfe, 0xfd})

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, "resume.txt", extractErr.Name)
}

func TestExtractText_Unsupported(t *testing.T) {
	for _, name := range []string{"resume.doc", "resume.rtf", "resume", "photo.png"} {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractText(name, []byte("data"))

			var unsupported *UnsupportedFileError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, UnsupportedFileMessage, err.Error())
		})
	}
}

func TestExtractText_Empty(t *testing.T) {
	_, err := ExtractText("resume.txt", []byte("  \n\t\n"))

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Contains(t, err.Error(), "no text found")
}

func TestExtractText_TooLarge(t *testing.T) {
	_, err := ExtractText("resume.txt", make([]byte, MaxFileSize+1))

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Contains(t, err.Error(), "larger than 10 MB")
}

func TestExtractText_DOCX(t *testing.T) {
	data, err := docx.Render(resumeFixture(), types.FormatStandard)
	require.NoError(t, err)

	text, err := ExtractText("resume.docx", data)
	require.NoError(t, err)
	assert.Contains(t, text, "JANE DOE")
	assert.Contains(t, text, "Built the billing pipeline")
	assert.Contains(t, text, "Backend engineer focused on reliable data systems.")
}

func TestExtractText_DOCXHandWritten(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>Engineer</w:t></w:r><w:r><w:tab/></w:r><w:r><w:t>2020 - 2022</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>
</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	text, err := ExtractText("resume.docx", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Engineer 2020 - 2022\nLine one\nLine two", text)
}

func TestExtractText_DOCXInvalid(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
	}{
		{"not a zip", func(*testing.T) []byte { return []byte("plain text") }},
		{"missing document part", func(t *testing.T) []byte {
			var buf bytes.Buffer
			zw := zip.NewWriter(&buf)
			_, err := zw.Create("word/styles.xml")
			require.NoError(t, err)
			require.NoError(t, zw.Close())
			return buf.Bytes()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractText("resume.docx", tt.data(t))

			var extractErr *ExtractionError
			require.ErrorAs(t, err, &extractErr)
			assert.Contains(t, err.Error(), "unreadable docx file")
		})
	}
}

func TestExtractText_PDF(t *testing.T) {
	data, err := pdf.Render(resumeFixture(), types.FormatStandard)
	require.NoError(t, err)

	text, err := ExtractText("resume.pdf", data)
	require.NoError(t, err)
	assert.Contains(t, text, "JANE DOE")
	assert.Contains(t, text, "Built the billing pipeline")
}

func TestExtractText_PDFInvalid(t *testing.T) {
	_, err := ExtractText("resume.pdf", []byte("%PDF-1.4 truncated"))

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
}

func TestExtractText_HTML(t *testing.T) {
	html := `<html><head><title>Ignored</title><style>p{}</style></head><body>
<h1>Senior Go Engineer</h1>
<p>We build   payments infrastructure.</p>
<ul><li>Go</li><li>PostgreSQL</li></ul>
<script>var x = 1;</script>
</body></html>`

	text, err := ExtractText("posting.html", []byte(html))
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Engineer\nWe build payments infrastructure.\n• Go\n• PostgreSQL", text)
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe"), 0644))

	text, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", text)

	_, err = ExtractFile(filepath.Join(dir, "missing.txt"))
	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
