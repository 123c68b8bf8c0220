package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/rendering/preview"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

// validatable is implemented by every request body type
type validatable interface {
	Validate() error
}

// ValidateResponse is the body of /v1/validate
type ValidateResponse struct {
	Violations []types.Violation `json:"violations"`
	HasErrors  bool              `json:"hasErrors"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- Rendering ----

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req types.RenderRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	doc, format, err := parseDocument(req.Document, req.Format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	html, err := preview.Render(*doc, format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	kind, err := rendering.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req types.RenderRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	doc, format, err := parseDocument(req.Document, req.Format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.renderArtifact(w, r, req.Document, *doc, format, kind)
}

func (s *Server) handleBundle(w http.ResponseWriter, r *http.Request) {
	var req types.RenderRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	doc, format, err := parseDocument(req.Document, req.Format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.renderArtifact(w, r, req.Document, *doc, format, rendering.KindZip)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req types.RenderRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	doc, format, err := parseDocument(req.Document, req.Format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := rendering.Check(*doc, format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req types.ValidateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	doc, format, err := parseDocument(req.Document, req.Format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	violations, err := validation.Validate(*doc, validation.Options{
		Format:           format,
		MaxPages:         req.MaxPages,
		MaxBulletChars:   req.MaxBulletChars,
		ForbiddenPhrases: req.ForbiddenPhrases,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ValidateResponse{
		Violations: violations.Violations,
		HasErrors:  violations.HasErrors(),
	})
}

// renderArtifact exports doc through the render cache and writes it as a download.
// source is the document JSON doc was parsed from.
func (s *Server) renderArtifact(w http.ResponseWriter, r *http.Request, source []byte, doc types.ResumeDocument, format types.LayoutFormat, kind rendering.Kind) {
	key := renderKey(source, format, kind)
	artifact, hit, err := s.cache.getOrRender(key, func() (a *rendering.Artifact, err error) {
		start := time.Now()
		defer func() { s.metrics.ObserveRender(string(kind), time.Since(start), err, failureReason(err)) }()

		if kind == rendering.KindZip {
			return rendering.Bundle(r.Context(), doc, format)
		}
		return rendering.Export(r.Context(), doc, format, kind)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	cacheStatus := "MISS"
	if hit {
		cacheStatus = "HIT"
	}
	w.Header().Set("X-Cache", cacheStatus)
	s.writeArtifact(w, artifact)
}

// failureReason labels a render error for the failure counter
func failureReason(err error) string {
	var kindErr *rendering.UnsupportedKindError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, rendering.ErrMissingName):
		return "missing_name"
	case errors.As(err, &kindErr):
		return "unsupported_kind"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "render_error"
	}
}

func (s *Server) writeArtifact(w http.ResponseWriter, a *rendering.Artifact) {
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(a.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(a.Data); err != nil {
		log.Printf("Error writing %s artifact: %v", a.Kind, err)
	}
}

// ---- Request helpers ----

// decodeJSON reads a size-limited JSON body into dst and validates it. On failure the
// error response has already been written.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst validatable) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeError(w, &ErrTooLarge{Limit: maxBytesErr.Limit})
			return false
		}
		s.writeError(w, &ErrValidation{Message: "invalid request body: " + err.Error()})
		return false
	}
	if err := dst.Validate(); err != nil {
		s.writeError(w, err)
		return false
	}
	return true
}

// parseDocument validates a raw document against the schema and resolves its layout format
func parseDocument(raw json.RawMessage, format string) (*types.ResumeDocument, types.LayoutFormat, error) {
	doc, err := types.ParseDocument(raw)
	if err != nil {
		return nil, "", err
	}
	f, err := types.ParseLayoutFormat(format)
	if err != nil {
		return nil, "", &ErrValidation{Field: "format", Message: err.Error()}
	}
	return doc, f, nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid ID"}
	}
	return id, nil
}

// ---- Response helpers ----

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status code. Internal errors are logged and hidden from the client.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		s.errorResponse(w, status, "Internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}
