package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jonathan/resume-builder/internal/optimize"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	optimizeResult *optimize.OptimizationResult
	importResult   *optimize.ImportResult
	err            error
	during         func()

	lastJob  string
	lastText string
	tailored bool
}

func (f *fakeService) Optimize(_ context.Context, _ types.ResumeDocument, jobDescription string) (*optimize.OptimizationResult, error) {
	f.lastJob = jobDescription
	if f.during != nil {
		f.during()
	}
	return f.optimizeResult, f.err
}

func (f *fakeService) Analyze(_ context.Context, rawText string) (*optimize.ImportResult, error) {
	f.lastText = rawText
	return f.importResult, f.err
}

func (f *fakeService) Tailor(_ context.Context, rawText, jobDescription string) (*optimize.ImportResult, error) {
	f.lastText, f.lastJob, f.tailored = rawText, jobDescription, true
	return f.importResult, f.err
}

func seeded() *Session {
	doc := types.NewResumeDocument()
	doc.PersonalInfo.FullName = "Jane Doe"
	doc.Experience = []types.ExperienceEntry{
		{ID: "a", Company: "Acme", Bullets: []string{"one"}},
		{ID: "b", Company: "Beta", Bullets: []string{"two"}},
		{ID: "c", Company: "Core", Bullets: []string{"three"}},
	}
	return New(&doc)
}

func companies(doc types.ResumeDocument) []string {
	out := make([]string, len(doc.Experience))
	for i, e := range doc.Experience {
		out[i] = e.Company
	}
	return out
}

func TestNew_Empty(t *testing.T) {
	s := New(nil)
	doc := s.Snapshot()
	assert.NotNil(t, doc.Experience)
	assert.Empty(t, doc.Experience)
	assert.Nil(t, s.Score())
}

func TestSnapshot_IsIndependent(t *testing.T) {
	s := seeded()
	snap := s.Snapshot()
	snap.Experience[0].Bullets[0] = "changed"
	snap.PersonalInfo.FullName = "Someone Else"

	again := s.Snapshot()
	assert.Equal(t, "one", again.Experience[0].Bullets[0])
	assert.Equal(t, "Jane Doe", again.PersonalInfo.FullName)
}

func TestUpdate_AllOrNothing(t *testing.T) {
	s := seeded()

	err := s.Update(SetSummary("new summary"), RemoveExperience("missing"))
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "experience", nf.Kind)
	assert.Equal(t, "", s.Snapshot().Summary, "a failed edit leaves the document untouched")

	require.NoError(t, s.Update(SetSummary("new summary"), RemoveExperience("b")))
	doc := s.Snapshot()
	assert.Equal(t, "new summary", doc.Summary)
	assert.Equal(t, []string{"Acme", "Core"}, companies(doc))
}

func TestUpdate_PriorSnapshotUnchanged(t *testing.T) {
	s := seeded()
	before := s.Snapshot()

	require.NoError(t, s.Update(UpdateExperience("a", func(e types.ExperienceEntry) types.ExperienceEntry {
		e.Bullets[0] = "edited"
		e.ID = "hijacked"
		return e
	})))

	assert.Equal(t, "one", before.Experience[0].Bullets[0])
	after := s.Snapshot()
	assert.Equal(t, "edited", after.Experience[0].Bullets[0])
	assert.Equal(t, "a", after.Experience[0].ID, "IDs cannot be changed by an update")
}

func TestMoveExperience(t *testing.T) {
	tests := []struct {
		name string
		id   string
		to   int
		want []string
	}{
		{"to front", "c", 0, []string{"Core", "Acme", "Beta"}},
		{"to back", "a", 2, []string{"Beta", "Core", "Acme"}},
		{"clamped high", "a", 10, []string{"Beta", "Core", "Acme"}},
		{"clamped low", "b", -3, []string{"Beta", "Acme", "Core"}},
		{"in place", "b", 1, []string{"Acme", "Beta", "Core"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seeded()
			require.NoError(t, s.Update(MoveExperience(tt.id, tt.to)))
			assert.Equal(t, tt.want, companies(s.Snapshot()))
		})
	}
}

func TestAddEntries_AssignIDs(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Update(
		AddExperience(types.ExperienceEntry{Company: "Acme"}),
		AddEducation(types.EducationEntry{Institution: "State"}),
		AddCoreStrength(types.SkillCategory{Category: "Languages", Skills: "Go"}),
		AddCustomSection(types.CustomSection{ID: "s1", Title: "Projects"}),
		AddCustomItem("s1", types.CustomSectionItem{Title: "Tool"}),
	))

	doc := s.Snapshot()
	assert.NotEmpty(t, doc.Experience[0].ID)
	assert.NotEmpty(t, doc.Education[0].ID)
	assert.NotEmpty(t, doc.CoreStrengths[0].ID)
	require.Len(t, doc.CustomSections[0].Items, 1)
	assert.NotEmpty(t, doc.CustomSections[0].Items[0].ID)
	assert.NotNil(t, doc.CustomSections[0].Items[0].Bullets)
}

func TestCustomItemEdits(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Update(
		AddCustomSection(types.CustomSection{ID: "s1", Title: "Projects"}),
		AddCustomItem("s1", types.CustomSectionItem{ID: "i1", Title: "One"}),
		AddCustomItem("s1", types.CustomSectionItem{ID: "i2", Title: "Two"}),
		MoveCustomItem("s1", "i2", 0),
		UpdateCustomItem("s1", "i1", func(it types.CustomSectionItem) types.CustomSectionItem {
			it.Link = types.Opt("github.com/jane/one")
			return it
		}),
		RenameCustomSection("s1", "Side Projects"),
	))

	section := s.Snapshot().CustomSections[0]
	assert.Equal(t, "Side Projects", section.Title)
	assert.Equal(t, "i2", section.Items[0].ID)
	assert.Equal(t, "github.com/jane/one", types.Val(section.Items[1].Link))

	require.NoError(t, s.Update(RemoveCustomItem("s1", "i2")))
	assert.Len(t, s.Snapshot().CustomSections[0].Items, 1)

	err := s.Update(RemoveCustomItem("s1", "nope"))
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "custom item", nf.Kind)

	err = s.Update(AddCustomItem("missing", types.CustomSectionItem{}))
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "custom section", nf.Kind)

	require.NoError(t, s.Update(RemoveCustomSection("s1")))
	assert.Empty(t, s.Snapshot().CustomSections)
}

func TestEducationAndStrengthEdits(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Update(
		AddEducation(types.EducationEntry{ID: "e1", Degree: "BS"}),
		AddEducation(types.EducationEntry{ID: "e2", Degree: "MS"}),
		MoveEducation("e2", 0),
		UpdateEducation("e1", func(e types.EducationEntry) types.EducationEntry {
			e.GPA = types.Opt("3.9")
			return e
		}),
		AddCoreStrength(types.SkillCategory{ID: "c1", Category: "Languages"}),
		AddCoreStrength(types.SkillCategory{ID: "c2", Category: "Cloud"}),
		MoveCoreStrength("c2", 0),
		UpdateCoreStrength("c1", func(c types.SkillCategory) types.SkillCategory {
			c.Skills = "Go, SQL"
			return c
		}),
		RemoveEducation("e2"),
		RemoveCoreStrength("c2"),
		SetSkills([]string{"Go"}),
	))

	doc := s.Snapshot()
	require.Len(t, doc.Education, 1)
	assert.Equal(t, "3.9", types.Val(doc.Education[0].GPA))
	require.Len(t, doc.CoreStrengths, 1)
	assert.Equal(t, "Go, SQL", doc.CoreStrengths[0].Skills)
	assert.Equal(t, []string{"Go"}, doc.Skills)
}

func TestSetPersonalInfo_NormalizesOptionals(t *testing.T) {
	s := New(nil)
	blank := "   "
	require.NoError(t, s.Update(SetPersonalInfo(types.PersonalInfo{FullName: "Jane", GitHub: &blank})))
	assert.Nil(t, s.Snapshot().PersonalInfo.GitHub)
}

func TestApplyOptimization(t *testing.T) {
	s := seeded()
	svc := &fakeService{optimizeResult: &optimize.OptimizationResult{
		Summary:    "Optimized",
		Experience: []optimize.OptimizedExperience{{ID: "b", Bullets: []string{"better two"}}},
		ATSScore:   types.ATSScore{Overall: 90, KeywordMatch: 75, Suggestions: []string{"x", "X"}},
	}}

	score, err := s.ApplyOptimization(context.Background(), svc, "")
	require.NoError(t, err)
	assert.Equal(t, 0, score.KeywordMatch, "no job description means no keyword match")
	assert.Equal(t, []string{"x"}, score.Suggestions)

	doc := s.Snapshot()
	assert.Equal(t, "Optimized", doc.Summary)
	assert.Equal(t, []string{"better two"}, doc.Experience[1].Bullets)
	assert.Equal(t, 90, s.Score().Overall)
}

func TestApplyOptimization_KeepsConcurrentEdits(t *testing.T) {
	s := seeded()
	svc := &fakeService{optimizeResult: &optimize.OptimizationResult{
		Experience: []optimize.OptimizedExperience{{ID: "a", Bullets: []string{"better one"}}},
	}}
	svc.during = func() {
		require.NoError(t, s.Update(func(doc types.ResumeDocument) (types.ResumeDocument, error) {
			doc.PersonalInfo.FullName = "Jane Edited"
			return doc, nil
		}))
	}

	_, err := s.ApplyOptimization(context.Background(), svc, "")
	require.NoError(t, err)

	doc := s.Snapshot()
	assert.Equal(t, "Jane Edited", doc.PersonalInfo.FullName)
	assert.Equal(t, []string{"better one"}, doc.Experience[0].Bullets)
}

func TestApplyOptimization_FailureLeavesDocument(t *testing.T) {
	s := seeded()
	before := s.Snapshot()

	_, err := s.ApplyOptimization(context.Background(), &fakeService{err: &optimize.APICallError{Operation: "optimize", Cause: errors.New("down")}}, "job")
	var apiErr *optimize.APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, before, s.Snapshot())
	assert.Nil(t, s.Score())
}

func TestImportFrom(t *testing.T) {
	imported := types.NewResumeDocument()
	imported.PersonalInfo.FullName = "Imported"
	imported.Experience = []types.ExperienceEntry{{Company: "New Co"}}
	svc := &fakeService{importResult: &optimize.ImportResult{
		Document: imported,
		ATSScore: &types.ATSScore{Overall: 70, KeywordMatch: 50},
	}}

	t.Run("analyze", func(t *testing.T) {
		s := seeded()
		_, err := s.ImportFrom(context.Background(), svc, "raw text", "")
		require.NoError(t, err)
		assert.False(t, svc.tailored)
		doc := s.Snapshot()
		assert.Equal(t, "Imported", doc.PersonalInfo.FullName)
		assert.NotEmpty(t, doc.Experience[0].ID)
		assert.Equal(t, 0, s.Score().KeywordMatch)
	})

	t.Run("tailor", func(t *testing.T) {
		s := seeded()
		_, err := s.ImportFrom(context.Background(), svc, "raw text", "job")
		require.NoError(t, err)
		assert.True(t, svc.tailored)
		assert.Equal(t, "job", svc.lastJob)
		assert.Equal(t, 50, s.Score().KeywordMatch)
	})

	t.Run("failure", func(t *testing.T) {
		s := seeded()
		before := s.Snapshot()
		_, err := s.ImportFrom(context.Background(), &fakeService{err: errors.New("bad")}, "raw", "")
		require.Error(t, err)
		assert.Equal(t, before, s.Snapshot())
	})
}

func TestReplace(t *testing.T) {
	s := seeded()
	_, err := s.ApplyOptimization(context.Background(), &fakeService{optimizeResult: &optimize.OptimizationResult{}}, "")
	require.NoError(t, err)
	require.NotNil(t, s.Score())

	s.Replace(types.NewResumeDocument())
	assert.Empty(t, s.Snapshot().Experience)
	assert.Nil(t, s.Score())
}

func TestConcurrentReadersSeeWholeDocuments(t *testing.T) {
	s := seeded()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				doc := s.Snapshot()
				assert.Equal(t, doc.Summary == "B", doc.PersonalInfo.FullName == "B")
			}
		}()
	}
	for j := 0; j < 100; j++ {
		name := "A"
		if j%2 == 0 {
			name = "B"
		}
		require.NoError(t, s.Update(SetSummary(name), func(doc types.ResumeDocument) (types.ResumeDocument, error) {
			doc.PersonalInfo.FullName = name
			return doc, nil
		}))
	}
	wg.Wait()
}
