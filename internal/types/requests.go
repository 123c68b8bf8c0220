package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RenderRequest is the body of the render, preview, bundle and check endpoints.
type RenderRequest struct {
	Document json.RawMessage `json:"document" validate:"required"`
	Format   string          `json:"format,omitempty" validate:"omitempty,oneof=standard compact"`
}

// ValidateRequest runs the document checks with caller-chosen limits.
type ValidateRequest struct {
	Document         json.RawMessage `json:"document" validate:"required"`
	Format           string          `json:"format,omitempty" validate:"omitempty,oneof=standard compact"`
	MaxPages         int             `json:"maxPages,omitempty" validate:"omitempty,min=1,max=5"`
	MaxBulletChars   int             `json:"maxBulletChars,omitempty" validate:"omitempty,min=40,max=2000"`
	ForbiddenPhrases []string        `json:"forbiddenPhrases,omitempty" validate:"max=50,dive,min=1,max=100"`
}

// OptimizeRequest asks the AI service to improve an existing document. The job
// description may be given inline or fetched from JobURL.
type OptimizeRequest struct {
	Document       json.RawMessage `json:"document" validate:"required"`
	JobDescription string          `json:"jobDescription,omitempty" validate:"max=20000"`
	JobURL         string          `json:"jobUrl,omitempty" validate:"omitempty,url"`
}

// ImportRequest carries already-extracted resume text. A job description or
// posting URL tailors the import.
type ImportRequest struct {
	RawText        string `json:"rawText" validate:"required,min=20,max=100000"`
	JobDescription string `json:"jobDescription,omitempty" validate:"max=20000"`
	JobURL         string `json:"jobUrl,omitempty" validate:"omitempty,url"`
}

// TailorRequest rewrites raw resume text against a job description.
type TailorRequest struct {
	RawText        string `json:"rawText" validate:"required,min=20,max=100000"`
	JobDescription string `json:"jobDescription,omitempty" validate:"required_without=JobURL,max=20000"`
	JobURL         string `json:"jobUrl,omitempty" validate:"omitempty,url"`
}

// CompressRequest asks the AI service to shorten a document that overflows its page budget.
type CompressRequest struct {
	Document json.RawMessage `json:"document" validate:"required"`
	Format   string          `json:"format,omitempty" validate:"omitempty,oneof=standard compact"`
	MaxPages int             `json:"maxPages,omitempty" validate:"omitempty,min=1,max=5"`
}

// JobPostingRequest fetches a job description from a posting URL.
type JobPostingRequest struct {
	URL        string `json:"url" validate:"required,url"`
	UseBrowser bool   `json:"useBrowser,omitempty"`
}

// SaveResumeRequest creates or replaces a saved resume.
type SaveResumeRequest struct {
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	TargetJob string          `json:"target_job,omitempty" validate:"max=200"`
	Format    string          `json:"format,omitempty" validate:"omitempty,oneof=standard compact"`
	Document  json.RawMessage `json:"resume_data" validate:"required"`
	ATSScore  *ATSScore       `json:"ats_score,omitempty"`
}

// JobApplicationRequest creates or updates a tracked job application.
type JobApplicationRequest struct {
	CompanyName   string     `json:"company_name" validate:"required,max=200"`
	PositionTitle string     `json:"position_title" validate:"required,max=200"`
	Location      string     `json:"location,omitempty" validate:"max=200"`
	WorkType      string     `json:"work_type,omitempty" validate:"omitempty,oneof=remote onsite hybrid"`
	Status        string     `json:"status,omitempty" validate:"omitempty,oneof=saved applied interviewing offer rejected withdrawn"`
	AppliedDate   string     `json:"applied_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	JobURL        string     `json:"job_url,omitempty" validate:"omitempty,url"`
	SalaryRange   string     `json:"salary_range,omitempty" validate:"max=100"`
	ResumeID      *uuid.UUID `json:"resume_id,omitempty"`
}

// StatusUpdateRequest moves an application to a new status.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=saved applied interviewing offer rejected withdrawn"`
}

// NoteRequest adds a note to an application.
type NoteRequest struct {
	NoteType string `json:"note_type,omitempty" validate:"omitempty,oneof=general interview followup feedback"`
	Content  string `json:"content" validate:"required,min=1,max=5000"`
}

// Validate validates the RenderRequest using the validator.
func (r *RenderRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ValidateRequest using the validator.
func (r *ValidateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the OptimizeRequest using the validator.
func (r *OptimizeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ImportRequest using the validator.
func (r *ImportRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the TailorRequest using the validator.
func (r *TailorRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CompressRequest using the validator.
func (r *CompressRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the JobPostingRequest using the validator.
func (r *JobPostingRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SaveResumeRequest using the validator.
func (r *SaveResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the JobApplicationRequest using the validator.
func (r *JobApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the StatusUpdateRequest using the validator.
func (r *StatusUpdateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the NoteRequest using the validator.
func (r *NoteRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
