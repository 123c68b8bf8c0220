package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/tracker"
	"github.com/jonathan/resume-builder/internal/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ---- Applications ----

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	if status != "" && status != "all" {
		if _, err := tracker.ParseStatus(status); err != nil {
			s.writeError(w, &ErrValidation{Field: "status", Message: err.Error()})
			return
		}
	}

	apps, err := s.store.ListApplications(r.Context(), userID, status)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if apps == nil {
		apps = []tracker.Application{}
	}
	s.jsonResponse(w, http.StatusOK, apps)
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	input, ok := s.decodeApplication(w, r)
	if !ok {
		return
	}
	app, err := s.store.CreateApplication(r.Context(), userID, *input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, app)
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}

	app, err := s.store.GetApplication(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if app == nil {
		s.writeError(w, db.ErrNotFound)
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}

	input, ok := s.decodeApplication(w, r)
	if !ok {
		return
	}
	app, err := s.store.UpdateApplication(r.Context(), userID, id, *input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}

	var req types.StatusUpdateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	status, err := tracker.ParseStatus(req.Status)
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "status", Message: err.Error()})
		return
	}

	if err := s.store.UpdateApplicationStatus(r.Context(), userID, id, status); err != nil {
		s.writeError(w, err)
		return
	}
	app, err := s.store.GetApplication(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if app == nil {
		s.writeError(w, db.ErrNotFound)
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteApplication(r.Context(), userID, id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleApplicationSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	apps, err := s.store.ListApplications(r.Context(), userID, "")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, tracker.Summarize(apps))
}

// handleExportApplications downloads every application and note as an Excel workbook
func (s *Server) handleExportApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	apps, err := s.store.ListApplications(r.Context(), userID, "")
	if err != nil {
		s.writeError(w, err)
		return
	}
	notes, err := s.store.NotesByApplication(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	now := time.Now()
	data, err := tracker.ExportXLSX(apps, notes, now)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "job-applications-"+now.Format("2006-01-02")+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ---- Notes ----

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}

	notes, err := s.store.ListNotes(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if notes == nil {
		notes = []tracker.Note{}
	}
	s.jsonResponse(w, http.StatusOK, notes)
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}

	var req types.NoteRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	note, err := s.store.AddNote(r.Context(), userID, id, db.NoteInput{
		NoteType: req.NoteType,
		Content:  strings.TrimSpace(req.Content),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteNote(r.Context(), userID, id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decodeApplication(w http.ResponseWriter, r *http.Request) (*db.ApplicationInput, bool) {
	var req types.JobApplicationRequest
	if !s.decodeJSON(w, r, &req) {
		return nil, false
	}

	status, err := tracker.ParseStatus(req.Status)
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "status", Message: err.Error()})
		return nil, false
	}
	input := &db.ApplicationInput{
		CompanyName:   strings.TrimSpace(req.CompanyName),
		PositionTitle: strings.TrimSpace(req.PositionTitle),
		Location:      optString(req.Location),
		WorkType:      optString(req.WorkType),
		Status:        status,
		JobURL:        optString(req.JobURL),
		SalaryRange:   optString(req.SalaryRange),
		ResumeID:      req.ResumeID,
	}
	if req.AppliedDate != "" {
		applied, err := time.Parse("2006-01-02", req.AppliedDate)
		if err != nil {
			s.writeError(w, &ErrValidation{Field: "applied_date", Message: "must be YYYY-MM-DD"})
			return nil, false
		}
		input.AppliedDate = &applied
	}
	return input, true
}
