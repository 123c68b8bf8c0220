package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/tracker"
	"github.com/jonathan/resume-builder/internal/types"
)

// SavedResume is a resume document stored for a user
type SavedResume struct {
	ID        uuid.UUID            `json:"id"`
	UserID    uuid.UUID            `json:"user_id"`
	Name      string               `json:"name"`
	TargetJob *string              `json:"target_job"`
	Format    types.LayoutFormat   `json:"format"`
	Document  types.ResumeDocument `json:"resume_data"`
	ATSScore  *types.ATSScore      `json:"ats_score"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// SavedResumeInput holds the writable fields of a saved resume
type SavedResumeInput struct {
	Name      string
	TargetJob *string
	Format    types.LayoutFormat
	Document  types.ResumeDocument
	ATSScore  *types.ATSScore
}

// ApplicationInput holds the writable fields of a job application
type ApplicationInput struct {
	CompanyName   string
	PositionTitle string
	Location      *string
	WorkType      *string
	Status        tracker.Status
	AppliedDate   *time.Time
	JobURL        *string
	SalaryRange   *string
	ResumeID      *uuid.UUID
}

// NoteInput holds the writable fields of an application note
type NoteInput struct {
	NoteType string
	Content  string
}
