package types

// Violation severities
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Violation represents a single document or layout problem.
// Violations are advisory: renderers never refuse a document because of one.
type Violation struct {
	Type             string   `json:"type"`
	Severity         string   `json:"severity"`
	Details          string   `json:"details"`
	AffectedSections []string `json:"affected_sections,omitempty"`
	PageNumber       *int     `json:"page_number,omitempty"`

	// EntryID points at the experience/education/custom item that caused the violation
	EntryID *string `json:"entry_id,omitempty"`
}

// Violations represents a collection of validation findings
type Violations struct {
	Violations []Violation `json:"violations"`
}

// HasErrors reports whether any violation has error severity
func (v *Violations) HasErrors() bool {
	if v == nil {
		return false
	}
	for _, violation := range v.Violations {
		if violation.Severity == SeverityError {
			return true
		}
	}
	return false
}
