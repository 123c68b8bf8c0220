package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/rendering/pdf"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() types.ResumeDocument {
	doc := types.NewResumeDocument()
	doc.PersonalInfo = types.PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com", Location: "Chicago, IL"}
	doc.Summary = "Backend engineer focused on reliable data systems."
	doc.Experience = []types.ExperienceEntry{
		{ID: "exp-1", JobTitle: "Engineer", Company: "Acme", StartDate: "2022-01", EndDate: "2023-06", Bullets: []string{"Built the billing pipeline"}},
	}
	return doc
}

func longDoc(entries int) types.ResumeDocument {
	doc := sampleDoc()
	doc.Experience = nil
	for i := 0; i < entries; i++ {
		doc.Experience = append(doc.Experience, types.ExperienceEntry{
			ID:        fmt.Sprintf("exp-%d", i),
			JobTitle:  "Engineer",
			Company:   fmt.Sprintf("Company %d", i),
			StartDate: "2020-01",
			EndDate:   "2021-01",
			Bullets: []string{
				"Designed and shipped a service that processed millions of events per day across regions",
				"Reduced infrastructure cost by consolidating clusters and tuning autoscaling policies",
			},
		})
	}
	return doc
}

func TestCheckDocument_DateRanges(t *testing.T) {
	tests := []struct {
		name    string
		entry   types.ExperienceEntry
		wantHit bool
	}{
		{"ordered", types.ExperienceEntry{ID: "a", StartDate: "2020-01", EndDate: "2021-01"}, false},
		{"same month", types.ExperienceEntry{ID: "a", StartDate: "2020-01", EndDate: "2020-01"}, false},
		{"reversed", types.ExperienceEntry{ID: "a", StartDate: "2022-05", EndDate: "2021-01"}, true},
		{"reversed year only", types.ExperienceEntry{ID: "a", StartDate: "2022", EndDate: "2021"}, true},
		{"reversed but current", types.ExperienceEntry{ID: "a", StartDate: "2022-05", EndDate: "2021-01", Current: true}, false},
		{"missing end", types.ExperienceEntry{ID: "a", StartDate: "2022-05"}, false},
		{"free text", types.ExperienceEntry{ID: "a", StartDate: "Spring 2022", EndDate: "2021-01"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDoc()
			doc.Experience = []types.ExperienceEntry{tt.entry}
			got := CheckDocument(doc)
			if !tt.wantHit {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, TypeDateRange, got[0].Type)
			assert.Equal(t, types.SeverityWarning, got[0].Severity)
			assert.Equal(t, []string{"experience"}, got[0].AffectedSections)
			require.NotNil(t, got[0].EntryID)
			assert.Equal(t, "a", *got[0].EntryID)
		})
	}
}

func TestCheckBulletLengths(t *testing.T) {
	doc := sampleDoc()
	doc.Experience[0].Bullets = []string{"short", strings.Repeat("x", 30)}
	item := types.NewCustomSectionItem("Project")
	item.Bullets = []string{strings.Repeat("é", 30)}
	section := types.NewCustomSection("Projects")
	section.Items = []types.CustomSectionItem{item}
	doc.CustomSections = []types.CustomSection{section}

	got := CheckBulletLengths(doc, 20)
	require.Len(t, got, 2)
	assert.Equal(t, "Bullet 2 has 30 characters, maximum is 20", got[0].Details)
	assert.Equal(t, "exp-1", *got[0].EntryID)
	assert.Equal(t, []string{"custom:" + section.ID}, got[1].AffectedSections)
	assert.Equal(t, item.ID, *got[1].EntryID)

	assert.Empty(t, CheckBulletLengths(doc, 0))
}

func TestCheckForbiddenPhrases(t *testing.T) {
	doc := sampleDoc()
	doc.Summary = "A true Rockstar ninja engineer"
	doc.Experience[0].Bullets = []string{"Acted as a team player", "Shipped things"}

	got := CheckForbiddenPhrases(doc, []string{"rockstar", "ninja", " Team Player ", ""})
	require.Len(t, got, 2)

	assert.Equal(t, TypeForbiddenPhrase, got[0].Type)
	assert.Equal(t, types.SeverityError, got[0].Severity)
	assert.Equal(t, "summary contains forbidden phrase: rockstar", got[0].Details)
	assert.Nil(t, got[0].EntryID)

	assert.Equal(t, "experience contains forbidden phrase: team player", got[1].Details)
	assert.Equal(t, "exp-1", *got[1].EntryID)

	assert.Empty(t, CheckForbiddenPhrases(doc, nil))
}

func TestCheckPages(t *testing.T) {
	t.Run("fits", func(t *testing.T) {
		got, err := CheckPages(sampleDoc(), types.FormatStandard, 1)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("overflows", func(t *testing.T) {
		doc := longDoc(40)
		got, err := CheckPages(doc, types.FormatStandard, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, TypePageOverflow, got[0].Type)
		assert.Equal(t, types.SeverityError, got[0].Severity)
		assert.Contains(t, got[0].Details, "maximum allowed is 1")
		require.NotNil(t, got[0].PageNumber)
		assert.Equal(t, 2, *got[0].PageNumber)
		assert.Contains(t, got[0].AffectedSections, "experience")
	})

	t.Run("disabled", func(t *testing.T) {
		got, err := CheckPages(longDoc(40), types.FormatStandard, -1)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestAnalyzePageOverflow(t *testing.T) {
	plan, err := pdf.Plan(longDoc(40), types.FormatStandard)
	require.NoError(t, err)
	require.Greater(t, len(plan.Pages), 1)

	a := AnalyzePageOverflow(plan, 1)
	assert.True(t, a.Overflowing())
	assert.Equal(t, len(plan.Pages), a.Pages)
	assert.Equal(t, len(plan.Pages)-1, a.ExcessPages)
	assert.Greater(t, a.ExcessLines, 0)
	assert.Equal(t, []string{"experience"}, a.Sections)

	none := AnalyzePageOverflow(plan, len(plan.Pages))
	assert.False(t, none.Overflowing())
	assert.Zero(t, none.ExcessLines)

	assert.False(t, AnalyzePageOverflow(nil, 1).Overflowing())
}

func TestValidate(t *testing.T) {
	doc := longDoc(40)
	doc.Experience[0].StartDate = "2024-01"

	v, err := Validate(doc, Options{Format: types.FormatCompact, ForbiddenPhrases: []string{"autoscaling"}})
	require.NoError(t, err)
	assert.True(t, v.HasErrors())

	counts := make(map[string]int)
	for _, violation := range v.Violations {
		counts[violation.Type]++
	}
	assert.Equal(t, 1, counts[TypeDateRange])
	assert.Equal(t, 40, counts[TypeForbiddenPhrase])
	assert.Equal(t, 1, counts[TypePageOverflow])
	assert.Zero(t, counts[TypeBulletTooLong])

	clean, err := Validate(sampleDoc(), Options{})
	require.NoError(t, err)
	assert.NotNil(t, clean.Violations)
	assert.False(t, clean.HasErrors())
}

func TestCountPDFPages(t *testing.T) {
	doc := longDoc(40)
	plan, err := pdf.Plan(doc, types.FormatStandard)
	require.NoError(t, err)
	data, err := pdf.Render(doc, types.FormatStandard)
	require.NoError(t, err)

	n, err := CountPDFPages(data)
	require.NoError(t, err)
	assert.Equal(t, len(plan.Pages), n)

	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, data, 0644))
	n, err = CountPDFFilePages(path)
	require.NoError(t, err)
	assert.Equal(t, len(plan.Pages), n)
}

func TestCountPDFPages_Errors(t *testing.T) {
	_, err := CountPDFPages(nil)
	var vErr *Error
	require.ErrorAs(t, err, &vErr)

	_, err = CountPDFPages([]byte("not a pdf at all"))
	require.Error(t, err)

	_, err = CountPDFFilePages(filepath.Join(t.TempDir(), "missing.pdf"))
	var readErr *FileReadError
	require.ErrorAs(t, err, &readErr)
}
