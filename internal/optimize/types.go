// Package optimize improves, imports and tailors resumes through a language model
// and merges the results back into a document.
package optimize

import "github.com/jonathan/resume-builder/internal/types"

// OptimizationResult is the model's reply to an optimize request
type OptimizationResult struct {
	Summary           string                `json:"optimizedSummary"`
	CoreStrengths     []types.SkillCategory `json:"optimizedCoreStrengths,omitempty"`
	Skills            []string              `json:"optimizedSkills,omitempty"`
	Experience        []OptimizedExperience `json:"optimizedExperience"`
	ATSScore          types.ATSScore        `json:"atsScore"`
	ExtractedKeywords []string              `json:"extractedKeywords"`
}

// OptimizedExperience carries replacement bullets for the experience entry with ID
type OptimizedExperience struct {
	ID      string   `json:"id"`
	Bullets []string `json:"optimizedBullets"`
}

// ImportResult is the model's reply to an import or tailor request
type ImportResult struct {
	Document          types.ResumeDocument `json:"parsedResumeData"`
	Analysis          types.ResumeAnalysis `json:"analysis"`
	ATSScore          *types.ATSScore      `json:"atsScore,omitempty"`
	ExtractedKeywords []string             `json:"extractedKeywords,omitempty"`
}
