package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() types.ResumeDocument {
	doc := types.NewResumeDocument()
	doc.PersonalInfo = types.PersonalInfo{
		FullName: "Jane Doe",
		Email:    "jane@x.com",
		Location: "Chicago, IL",
		LinkedIn: types.Opt("linkedin.com/in/jane"),
	}
	doc.Summary = "Builds R&D tooling <fast>."
	doc.CoreStrengths = []types.SkillCategory{{ID: "c1", Category: "Languages", Skills: "Go, SQL"}, {ID: "c2", Category: "Empty"}}
	doc.Experience = []types.ExperienceEntry{
		{ID: "e1", Company: "Acme", JobTitle: "Engineer", Location: "Chicago", WorkType: types.Opt("Hybrid"), StartDate: "2022-01", Current: true, Bullets: []string{"Did X"}},
	}
	doc.CustomSections = []types.CustomSection{{
		ID: "s1", Title: "Projects",
		Items: []types.CustomSectionItem{{ID: "i1", Title: "Tool", Link: types.Opt("example.com/tool"), Date: types.Opt("2023-04")}},
	}}
	return doc
}

func paragraphTexts(d *Document) []string {
	var out []string
	for _, p := range d.Paragraphs {
		out = append(out, p.Text())
	}
	return out
}

func TestBuild_Paragraphs(t *testing.T) {
	d := Build(testDocument(), types.FormatStandard)

	assert.Equal(t, []string{"header", "summary", "core_strengths", "experience", "custom:s1"}, d.SectionKeys())
	assert.Equal(t, []string{
		"JANE DOE",
		"Chicago, IL | jane@x.com | LinkedIn",
		"SUMMARY",
		"Builds R&D tooling <fast>.",
		"CORE STRENGTHS",
		"• Languages: Go, SQL",
		"EXPERIENCE",
		"Acme\tJan 2022 - Present",
		"Engineer\tChicago | Hybrid",
		"• Did X",
		"PROJECTS",
		"Tool | Link\tApr 2023",
	}, paragraphTexts(d))
	assert.Equal(t, []string{"mailto:jane@x.com", "https://linkedin.com/in/jane", "https://example.com/tool"}, d.Links())

	name := d.Paragraphs[0]
	assert.Equal(t, AlignCenter, name.Align)
	assert.Equal(t, 21.0, name.Runs[0].Size)
	assert.True(t, d.Paragraphs[2].BottomBorder)
	assert.True(t, d.Paragraphs[7].RightTab)
	assert.True(t, d.Paragraphs[8].Runs[0].Italic)

	compact := Build(testDocument(), types.FormatCompact)
	assert.Equal(t, 18.0, compact.Paragraphs[0].Runs[0].Size)
}

func readParts(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	parts := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		parts[f.Name] = string(b)
	}
	return parts
}

func wellFormed(t *testing.T, name, content string) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader([]byte(content)))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err, "%s is not well-formed XML", name)
	}
}

func TestRender_Package(t *testing.T) {
	data, err := Render(testDocument(), types.FormatStandard)
	require.NoError(t, err)

	parts := readParts(t, data)
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/_rels/document.xml.rels", "word/styles.xml", "docProps/core.xml"} {
		content, ok := parts[name]
		require.True(t, ok, "missing part %s", name)
		wellFormed(t, name, content)
	}

	body := parts["word/document.xml"]
	assert.Contains(t, body, `<w:tab w:val="right" w:pos="10800"/>`)
	assert.Contains(t, body, `w:color="C5A000"`)
	assert.Contains(t, body, `<w:pgMar w:top="520" w:right="720" w:bottom="520" w:left="720"`)
	assert.Contains(t, body, `<w:hyperlink r:id="rIdLink2" w:history="1">`)
	assert.Contains(t, body, `<w:rStyle w:val="Hyperlink"/>`)
	assert.Contains(t, body, "R&amp;D tooling &lt;fast&gt;.")
	assert.Contains(t, body, `<w:sz w:val="42"/>`)

	rels := parts["word/_rels/document.xml.rels"]
	assert.Contains(t, rels, `Target="https://linkedin.com/in/jane" TargetMode="External"`)
	assert.Contains(t, rels, `Target="mailto:jane@x.com"`)

	styles := parts["word/styles.xml"]
	assert.Contains(t, styles, `w:styleId="FollowedHyperlink"`)
	assert.Contains(t, styles, `w:ascii="Times New Roman"`)
}

func TestEncode_CoreProperties(t *testing.T) {
	d := Build(testDocument(), types.FormatStandard)
	data, err := d.Encode(time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC))
	require.NoError(t, err)

	core := readParts(t, data)["docProps/core.xml"]
	assert.Contains(t, core, "<dc:title>JANE DOE</dc:title>")
	assert.Contains(t, core, "2024-05-06T07:08:09Z")

	again, err := d.Encode(time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, data, again)
}
