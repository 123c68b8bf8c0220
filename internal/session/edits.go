package session

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// NotFoundError is returned when an edit addresses an entry ID that does not exist
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// SetPersonalInfo replaces the header fields
func SetPersonalInfo(info types.PersonalInfo) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		doc.PersonalInfo = info
		doc.PersonalInfo.LinkedIn = optCopy(info.LinkedIn)
		doc.PersonalInfo.GitHub = optCopy(info.GitHub)
		doc.PersonalInfo.Portfolio = optCopy(info.Portfolio)
		return doc, nil
	}
}

// SetSummary replaces the professional summary
func SetSummary(summary string) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		doc.Summary = summary
		return doc, nil
	}
}

// SetSkills replaces the legacy flat skills list
func SetSkills(skills []string) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		doc.Skills = append([]string{}, skills...)
		return doc, nil
	}
}

// AddExperience appends an entry, assigning an ID when it has none
func AddExperience(e types.ExperienceEntry) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		doc.Experience = append(cloneList(doc.Experience), e)
		return types.Normalize(doc), nil
	}
}

// UpdateExperience replaces the entry with the given ID by fn's result. The ID is preserved.
func UpdateExperience(id string, fn func(types.ExperienceEntry) types.ExperienceEntry) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		list, err := updateByID(doc.Experience, "experience", id, experienceID, func(e types.ExperienceEntry) types.ExperienceEntry {
			out := fn(e)
			out.ID = e.ID
			return out
		})
		if err != nil {
			return doc, err
		}
		doc.Experience = list
		return doc, nil
	}
}

// RemoveExperience drops the entry with the given ID
func RemoveExperience(id string) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		list, err := removeByID(doc.Experience, "experience", id, experienceID)
		if err != nil {
			return doc, err
		}
		doc.Experience = list
		return doc, nil
	}
}

// MoveExperience moves the entry with the given ID to index to, clamped to the list bounds
func MoveExperience(id string, to int) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		list, err := moveByID(doc.Experience, "experience", id, to, experienceID)
		if err != nil {
			return doc, err
		}
		doc.Experience = list
		return doc, nil
	}
}

// AddEducation appends an entry, assigning an ID when it has none
func AddEducation(e types.EducationEntry) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		doc.Education = append(cloneList(doc.Education), e)
		return types.Normalize(doc), nil
	}
}

// UpdateEducation replaces the entry with the given ID by fn's result
func UpdateEducation(id string, fn func(types.EducationEntry) types.EducationEntry) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		list, err := updateByID(doc.Education, "education", id, educationID, func(e types.EducationEntry) types.EducationEntry {
			out := fn(e)
			out.ID = e.ID
			return out
		})
		if err != nil {
			return doc, err
		}
		doc.Education = list
		return doc, nil
	}
}

// RemoveEducation drops the entry with the given ID
func RemoveEducation(id string) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		list, err := removeByID(doc.Education, "education", id, educationID)
		if err != nil {
			return doc, err
		}
		doc.Education = list
		return doc, nil
	}
}

// MoveEducation moves the entry with the given ID to index to
func MoveEducation(id string, to int) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		list, err := moveByID(doc.Education, "education", id, to, educationID)
		if err != nil {
			return doc, err
		}
		doc.Education = list
		return doc, nil
	}
}

// AddCoreStrength appends a skill category
func AddCoreStrength(c types.SkillCategory) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		doc.CoreStrengths = append(cloneList(doc.CoreStrengths), c)
		return types.Normalize(doc), nil
	}
}

// UpdateCoreStrength replaces the category with the given ID by fn's result
func UpdateCoreStrength(id string, fn func(types.SkillCategory) types.SkillCategory) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		list, err := updateByID(doc.CoreStrengths, "core strength", id, strengthID, func(c types.SkillCategory) types.SkillCategory {
			out := fn(c)
			out.ID = c.ID
			return out
		})
		if err != nil {
			return doc, err
		}
		doc.CoreStrengths = list
		return doc, nil
	}
}

// RemoveCoreStrength drops the category with the given ID
func RemoveCoreStrength(id string) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		list, err := removeByID(doc.CoreStrengths, "core strength", id, strengthID)
		if err != nil {
			return doc, err
		}
		doc.CoreStrengths = list
		return doc, nil
	}
}

// MoveCoreStrength moves the category with the given ID to index to
func MoveCoreStrength(id string, to int) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		list, err := moveByID(doc.CoreStrengths, "core strength", id, to, strengthID)
		if err != nil {
			return doc, err
		}
		doc.CoreStrengths = list
		return doc, nil
	}
}

// AddCustomSection appends a section
func AddCustomSection(s types.CustomSection) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		doc.CustomSections = append(cloneList(doc.CustomSections), s)
		return types.Normalize(doc), nil
	}
}

// RenameCustomSection changes a section title
func RenameCustomSection(id, title string) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		list, err := updateByID(doc.CustomSections, "custom section", id, customSectionID, func(s types.CustomSection) types.CustomSection {
			s.Title = title
			return s
		})
		if err != nil {
			return doc, err
		}
		doc.CustomSections = list
		return doc, nil
	}
}

// RemoveCustomSection drops the section and all of its items
func RemoveCustomSection(id string) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		list, err := removeByID(doc.CustomSections, "custom section", id, customSectionID)
		if err != nil {
			return doc, err
		}
		doc.CustomSections = list
		return doc, nil
	}
}

// MoveCustomSection moves the section with the given ID to index to
func MoveCustomSection(id string, to int) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		list, err := moveByID(doc.CustomSections, "custom section", id, to, customSectionID)
		if err != nil {
			return doc, err
		}
		doc.CustomSections = list
		return doc, nil
	}
}

// AddCustomItem appends an item to a section
func AddCustomItem(sectionID string, item types.CustomSectionItem) Edit {
	return withSection(sectionID, func(s types.CustomSection) (types.CustomSection, error) {
		s.Items = append(cloneList(s.Items), item)
		return s, nil
	})
}

// UpdateCustomItem replaces an item by fn's result
func UpdateCustomItem(sectionID, itemID string, fn func(types.CustomSectionItem) types.CustomSectionItem) Edit {
	return withSection(sectionID, func(s types.CustomSection) (types.CustomSection, error) {
		items, err := updateByID(s.Items, "custom item", itemID, itemIDOf, func(it types.CustomSectionItem) types.CustomSectionItem {
			out := fn(it)
			out.ID = it.ID
			return out
		})
		s.Items = items
		return s, err
	})
}

// RemoveCustomItem drops an item from a section
func RemoveCustomItem(sectionID, itemID string) Edit {
	return withSection(sectionID, func(s types.CustomSection) (types.CustomSection, error) {
		items, err := removeByID(s.Items, "custom item", itemID, itemIDOf)
		s.Items = items
		return s, err
	})
}

// MoveCustomItem moves an item within its section
func MoveCustomItem(sectionID, itemID string, to int) Edit {
	return withSection(sectionID, func(s types.CustomSection) (types.CustomSection, error) {
		items, err := moveByID(s.Items, "custom item", itemID, to, itemIDOf)
		s.Items = items
		return s, err
	})
}

func withSection(id string, fn func(types.CustomSection) (types.CustomSection, error)) Edit {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		i := indexByID(doc.CustomSections, id, customSectionID)
		if i < 0 {
			return doc, &NotFoundError{Kind: "custom section", ID: id}
		}
		updated, err := fn(doc.CustomSections[i])
		if err != nil {
			return doc, err
		}
		list := cloneList(doc.CustomSections)
		list[i] = updated
		doc.CustomSections = list
		return types.Normalize(doc), nil
	}
}

func experienceID(e types.ExperienceEntry) string { return e.ID }
func educationID(e types.EducationEntry) string { return e.ID }
func strengthID(c types.SkillCategory) string { return c.ID }
func customSectionID(s types.CustomSection) string { return s.ID }
func itemIDOf(it types.CustomSectionItem) string { return it.ID }

func cloneList[T any](list []T) []T {
	return append(make([]T, 0, len(list)+1), list...)
}

func indexByID[T any](list []T, id string, idOf func(T) string) int {
	for i, v := range list {
		if idOf(v) == id {
			return i
		}
	}
	return -1
}

func updateByID[T any](list []T, kind, id string, idOf func(T) string, fn func(T) T) ([]T, error) {
	i := indexByID(list, id, idOf)
	if i < 0 {
		return list, &NotFoundError{Kind: kind, ID: id}
	}
	out := cloneList(list)
	out[i] = fn(out[i])
	return out, nil
}

func removeByID[T any](list []T, kind, id string, idOf func(T) string) ([]T, error) {
	i := indexByID(list, id, idOf)
	if i < 0 {
		return list, &NotFoundError{Kind: kind, ID: id}
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...), nil
}

func moveByID[T any](list []T, kind, id string, to int, idOf func(T) string) ([]T, error) {
	i := indexByID(list, id, idOf)
	if i < 0 {
		return list, &NotFoundError{Kind: kind, ID: id}
	}
	if to < 0 {
		to = 0
	}
	if to > len(list)-1 {
		to = len(list) - 1
	}

	item := list[i]
	out := make([]T, 0, len(list))
	out = append(out, list[:i]...)
	out = append(out, list[i+1:]...)
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out, nil
}

func optCopy(p *string) *string {
	if p == nil {
		return nil
	}
	return types.Opt(*p)
}
