package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// ---- Saved resumes ----

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resumes, err := s.store.ListResumes(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if resumes == nil {
		resumes = []db.SavedResume{}
	}
	s.jsonResponse(w, http.StatusOK, resumes)
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	input, ok := s.decodeResume(w, r)
	if !ok {
		return
	}
	saved, err := s.store.CreateResume(r.Context(), userID, *input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, saved)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.loadResume(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, saved)
}

func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}

	input, ok := s.decodeResume(w, r)
	if !ok {
		return
	}
	saved, err := s.store.UpdateResume(r.Context(), userID, id, *input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteResume(r.Context(), userID, id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderSavedResume exports a stored resume in its saved layout format
func (s *Server) handleRenderSavedResume(w http.ResponseWriter, r *http.Request) {
	kind, err := rendering.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	saved, ok := s.loadResume(w, r)
	if !ok {
		return
	}
	format, err := types.ParseLayoutFormat(string(saved.Format))
	if err != nil {
		format = types.FormatStandard
	}
	source, err := json.Marshal(saved.Document)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.renderArtifact(w, r, source, saved.Document, format, kind)
}

// loadResume fetches the resume named by the path for the authenticated user.
// A resume owned by someone else is reported as missing.
func (s *Server) loadResume(w http.ResponseWriter, r *http.Request) (*db.SavedResume, bool) {
	userID, id, ok := s.ownerAndID(w, r)
	if !ok {
		return nil, false
	}

	saved, err := s.store.GetResume(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	if saved == nil {
		s.writeError(w, db.ErrNotFound)
		return nil, false
	}
	return saved, true
}

func (s *Server) decodeResume(w http.ResponseWriter, r *http.Request) (*db.SavedResumeInput, bool) {
	var req types.SaveResumeRequest
	if !s.decodeJSON(w, r, &req) {
		return nil, false
	}
	doc, format, err := parseDocument(req.Document, req.Format)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}

	input := &db.SavedResumeInput{
		Name:      strings.TrimSpace(req.Name),
		TargetJob: optString(req.TargetJob),
		Format:    format,
		Document:  *doc,
	}
	if req.ATSScore != nil {
		score := req.ATSScore.Clamp()
		input.ATSScore = &score
	}
	return input, true
}

// ownerAndID returns the authenticated user and the {id} path value
func (s *Server) ownerAndID(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

// optString returns nil for blank input
func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
