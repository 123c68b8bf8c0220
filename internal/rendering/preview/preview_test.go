package preview

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() types.ResumeDocument {
	doc := types.NewResumeDocument()
	doc.PersonalInfo = types.PersonalInfo{
		FullName:  "Jane Doe",
		Email:     "jane@x.com",
		Phone:     "555-0100",
		Location:  "Chicago, IL",
		GitHub:    types.Opt("github.com/jane"),
		Portfolio: types.Opt("jane.dev"),
		LinkedIn:  types.Opt("linkedin.com/in/jane"),
	}
	doc.Summary = "Engineer <script>alert(1)</script>"
	doc.CoreStrengths = []types.SkillCategory{{ID: "c1", Category: "Languages", Skills: "Go"}, {ID: "c2", Category: "Cloud", Skills: ""}}
	doc.Experience = []types.ExperienceEntry{{ID: "e1", Company: "Acme", JobTitle: "Engineer", StartDate: "2022-01", Current: true, Bullets: []string{"Did X"}}}
	doc.CustomSections = []types.CustomSection{{ID: "s1", Title: "Awards", Items: []types.CustomSectionItem{{ID: "i1", Title: "Best Paper"}}}}
	return doc
}

func TestRender_SectionsAndContacts(t *testing.T) {
	html, err := Render(testDocument(), types.FormatStandard)
	require.NoError(t, err)

	keys, err := Sections(string(html))
	require.NoError(t, err)
	assert.Equal(t, []string{"header", "summary", "core_strengths", "experience", "custom:s1"}, keys)

	links, err := Links(string(html))
	require.NoError(t, err)
	assert.Equal(t, []string{"mailto:jane@x.com", "https://github.com/jane", "https://jane.dev", "https://linkedin.com/in/jane"}, links)

	s := string(html)
	assert.Contains(t, s, "JANE DOE")
	assert.Contains(t, s, "Jan 2022 - Present")
	assert.Contains(t, s, "Languages:")
	assert.NotContains(t, s, "Cloud:")
	assert.NotContains(t, s, "<script>alert(1)</script>")
	assert.Contains(t, s, "font-size: 21pt")
	assert.Contains(t, s, "#C5A000")

	// location, phone, email, GitHub, portfolio, LinkedIn
	order := []string{"Chicago, IL", "555-0100", "jane@x.com", ">GitHub<", ">Portfolio<", ">LinkedIn<"}
	last := -1
	for _, want := range order {
		idx := strings.Index(s, want)
		require.Greater(t, idx, last, "%s out of order", want)
		last = idx
	}
}

func TestRender_CompactFormat(t *testing.T) {
	html, err := Render(testDocument(), types.FormatCompact)
	require.NoError(t, err)
	assert.Contains(t, string(html), "font-size: 18pt")
	assert.Contains(t, string(html), `data-format="compact"`)
}

func TestRender_Placeholder(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Education = []types.EducationEntry{{ID: "d", Degree: "BS", Institution: "State U"}}

	html, err := Render(doc, types.FormatStandard)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Start filling in your details")

	keys, err := Sections(string(html))
	require.NoError(t, err)
	assert.Empty(t, keys)
}
