// Package tracker models job applications and their notes.
package tracker

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the stage of a job application
type Status string

const (
	StatusSaved        Status = "saved"
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusRejected     Status = "rejected"
	StatusWithdrawn    Status = "withdrawn"
)

// DefaultStatus is used for applications created without one
const DefaultStatus = StatusApplied

// Statuses returns every status in pipeline order
func Statuses() []Status {
	return []Status{StatusSaved, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected, StatusWithdrawn}
}

// ParseStatus maps user input to a Status. Empty input selects DefaultStatus.
func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultStatus, nil
	}
	for _, st := range Statuses() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid application status %q", s)
}

// Label is the display name of s
func (s Status) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Active reports whether the application is still in progress
func (s Status) Active() bool {
	return s == StatusSaved || s == StatusApplied || s == StatusInterviewing
}

// Work arrangements
const (
	WorkRemote = "remote"
	WorkOnsite = "onsite"
	WorkHybrid = "hybrid"
)

// Note types
const (
	NoteGeneral   = "general"
	NoteInterview = "interview"
	NoteFollowup  = "followup"
	NoteFeedback  = "feedback"
)

// Application is a tracked job application
type Application struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	CompanyName   string     `json:"company_name"`
	PositionTitle string     `json:"position_title"`
	Location      *string    `json:"location"`
	WorkType      *string    `json:"work_type"`
	Status        Status     `json:"status"`
	AppliedDate   *time.Time `json:"applied_date"`
	JobURL        *string    `json:"job_url"`
	SalaryRange   *string    `json:"salary_range"`
	ResumeID      *uuid.UUID `json:"resume_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Note is a dated remark attached to an application
type Note struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	UserID        uuid.UUID `json:"user_id"`
	NoteType      string    `json:"note_type"`
	Content       string    `json:"content"`
	NoteDate      time.Time `json:"note_date"`
}

// Filter returns the applications with the given status. An empty status or
// "all" returns every application.
func Filter(apps []Application, status string) []Application {
	if status == "" || status == "all" {
		return apps
	}
	out := make([]Application, 0, len(apps))
	for _, a := range apps {
		if string(a.Status) == status {
			out = append(out, a)
		}
	}
	return out
}

// Summary counts applications per status
type Summary struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	ByStatus map[Status]int `json:"by_status"`
	// ResponseRate is the share of submitted applications that reached an
	// interview or an offer, in percent
	ResponseRate int `json:"response_rate"`
}

// Summarize computes a Summary of apps
func Summarize(apps []Application) Summary {
	s := Summary{Total: len(apps), ByStatus: make(map[Status]int, len(Statuses()))}
	for _, st := range Statuses() {
		s.ByStatus[st] = 0
	}

	submitted, responded := 0, 0
	for _, a := range apps {
		s.ByStatus[a.Status]++
		if a.Status.Active() {
			s.Active++
		}
		if a.Status != StatusSaved {
			submitted++
		}
		if a.Status == StatusInterviewing || a.Status == StatusOffer {
			responded++
		}
	}
	if submitted > 0 {
		s.ResponseRate = responded * 100 / submitted
	}
	return s
}

// SortByCreated orders apps newest first
func SortByCreated(apps []Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
}
