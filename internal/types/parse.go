package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/schemas"
)

// ParseDocument validates raw JSON against the resume document schema and
// returns the normalized document.
func ParseDocument(data []byte) (*ResumeDocument, error) {
	if err := schemas.ValidateNamed(schemas.ResumeDocument, string(data)); err != nil {
		return nil, err
	}

	var doc ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse resume document: %w", err)
	}

	normalized := Normalize(doc)
	return &normalized, nil
}

// Normalize is the single boundary where "empty string means absent" is resolved.
// Optional fields holding only whitespace become nil, nil collections become empty
// and entries without an ID receive one. The input is not modified.
func Normalize(doc ResumeDocument) ResumeDocument {
	out := doc.Clone()

	out.PersonalInfo.LinkedIn = normOpt(out.PersonalInfo.LinkedIn)
	out.PersonalInfo.GitHub = normOpt(out.PersonalInfo.GitHub)
	out.PersonalInfo.Portfolio = normOpt(out.PersonalInfo.Portfolio)

	for i := range out.CoreStrengths {
		ensureID(&out.CoreStrengths[i].ID)
	}

	for i := range out.Experience {
		e := &out.Experience[i]
		ensureID(&e.ID)
		e.WorkType = normOpt(e.WorkType)
		if e.Bullets == nil {
			e.Bullets = []string{}
		}
	}

	for i := range out.Education {
		e := &out.Education[i]
		ensureID(&e.ID)
		e.Field = normOpt(e.Field)
		e.GPA = normOpt(e.GPA)
	}

	for i := range out.CustomSections {
		s := &out.CustomSections[i]
		ensureID(&s.ID)
		if s.Items == nil {
			s.Items = []CustomSectionItem{}
		}
		for j := range s.Items {
			it := &s.Items[j]
			ensureID(&it.ID)
			it.Subtitle = normOpt(it.Subtitle)
			it.Date = normOpt(it.Date)
			it.Description = normOpt(it.Description)
			it.Link = normOpt(it.Link)
			if it.Bullets == nil {
				it.Bullets = []string{}
			}
		}
	}

	return out
}

func normOpt(p *string) *string {
	if p == nil {
		return nil
	}
	return Opt(strings.TrimSpace(*p))
}

func ensureID(id *string) {
	if strings.TrimSpace(*id) == "" {
		*id = uuid.NewString()
	}
}
