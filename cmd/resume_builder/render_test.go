package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		kind     string
		filename string
		prefix   string
	}{
		{kind: "pdf", filename: "Jane_Doe_Resume.pdf", prefix: "%PDF"},
		{kind: "docx", filename: "Jane_Doe_Resume.docx", prefix: "PK"},
		{kind: "txt", filename: "Jane_Doe_Resume.txt", prefix: "JANE DOE"},
		{kind: "html", filename: "Jane_Doe_Resume.html", prefix: "<"},
		{kind: "zip", filename: "Jane_Doe_Resume.zip", prefix: "PK"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			outDir := t.TempDir()
			output, err := executeCommand(t, "render", "--resume", testResume, "--kind", tt.kind, "--out", outDir)
			require.NoError(t, err, output)
			assert.Contains(t, output, "Successfully rendered "+tt.kind)

			data, err := os.ReadFile(filepath.Join(outDir, tt.filename))
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(bytes.TrimSpace(data), []byte(tt.prefix)))
		})
	}
}

func TestRenderCommand_Verbose(t *testing.T) {
	output, err := executeCommand(t, "render", "-r", testResume, "-k", "txt", "-o", t.TempDir(), "-v")
	require.NoError(t, err)

	assert.Contains(t, output, "RESUME DOCUMENT")
	assert.Contains(t, output, "LAYOUT")
	assert.Contains(t, output, "paginate.Op")
}

func TestRenderCommand_VerbosePDFPages(t *testing.T) {
	output, err := executeCommand(t, "render", "-r", testResume, "-o", t.TempDir(), "--verbose")
	require.NoError(t, err)
	assert.Contains(t, output, "Pages: 1")
}

func TestRenderCommand_Errors(t *testing.T) {
	blank := writeTemp(t, "blank.json", `{"personalInfo": {"fullName": "  "}}`)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing resume flag",
			args:    []string{"render"},
			wantErr: `required flag(s) "resume" not set`,
		},
		{
			name:    "unknown kind",
			args:    []string{"render", "-r", testResume, "-k", "odt"},
			wantErr: "odt",
		},
		{
			name:    "unknown format",
			args:    []string{"render", "-r", testResume, "-f", "tiny"},
			wantErr: "tiny",
		},
		{
			name:    "missing file",
			args:    []string{"render", "-r", "testdata/nope.json"},
			wantErr: "failed to read resume",
		},
		{
			name:    "missing name",
			args:    []string{"render", "-r", blank, "-o", t.TempDir()},
			wantErr: rendering.ErrMissingName.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPreviewCommand(t *testing.T) {
	output, err := executeCommand(t, "preview", "--resume", testResume, "--format", "compact")
	require.NoError(t, err)
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, `data-section="experience"`)

	outFile := filepath.Join(t.TempDir(), "preview.html")
	output, err = executeCommand(t, "preview", "--resume", testResume, "--out", outFile)
	require.NoError(t, err)
	assert.Contains(t, output, outFile)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Jane Doe")
}
