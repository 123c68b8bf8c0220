package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/optimize"
	"github.com/jonathan/resume-builder/internal/rendering/pdf"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

// DocumentResponse is returned by the endpoints that produce a new document
type DocumentResponse struct {
	Document          types.ResumeDocument  `json:"document"`
	ATSScore          *types.ATSScore       `json:"atsScore,omitempty"`
	Analysis          *types.ResumeAnalysis `json:"analysis,omitempty"`
	ExtractedKeywords []string              `json:"extractedKeywords,omitempty"`
}

// CompressResponse is the body of /v1/compress
type CompressResponse struct {
	Document    types.ResumeDocument `json:"document"`
	Compressed  bool                 `json:"compressed"`
	PagesBefore int                  `json:"pagesBefore"`
	PagesAfter  int                  `json:"pagesAfter"`
	Sections    []string             `json:"sections,omitempty"`
}

var errAIUnavailable = &ErrUnavailable{Service: "AI service"}

// ---- Scoring and optimization ----

// handleScore computes the keyword heuristic score locally. It needs no AI service.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.OptimizeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	doc, _, err := parseDocument(req.Document, "")
	if err != nil {
		s.writeError(w, err)
		return
	}
	jd, err := s.jobDescription(r.Context(), req.JobDescription, req.JobURL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	score := optimize.HeuristicScore(*doc, jd)
	s.jsonResponse(w, http.StatusOK, score)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	if s.ai == nil {
		s.writeError(w, errAIUnavailable)
		return
	}

	var req types.OptimizeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	doc, _, err := parseDocument(req.Document, "")
	if err != nil {
		s.writeError(w, err)
		return
	}
	jd, err := s.jobDescription(r.Context(), req.JobDescription, req.JobURL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.ai.Optimize(r.Context(), *doc, jd)
	if err != nil {
		s.writeError(w, err)
		return
	}
	merged := optimize.ApplyOptimizations(*doc, result)
	score := optimize.NormalizeATSScore(result.ATSScore, merged, jd != "")

	s.jsonResponse(w, http.StatusOK, DocumentResponse{
		Document:          merged,
		ATSScore:          &score,
		ExtractedKeywords: result.ExtractedKeywords,
	})
}

// ---- Import ----

// handleImport parses an existing resume. The body is either a multipart form with a
// "file" part and optional "jobDescription" and "jobUrl" fields, or a JSON ImportRequest.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if s.ai == nil {
		s.writeError(w, errAIUnavailable)
		return
	}

	var rawText, inline, jobURL string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		text, err := s.readUpload(w, r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		rawText = text
		inline = r.FormValue("jobDescription")
		jobURL = strings.TrimSpace(r.FormValue("jobUrl"))
		if jobURL != "" {
			posting := types.JobPostingRequest{URL: jobURL}
			if err := posting.Validate(); err != nil {
				s.writeError(w, err)
				return
			}
		}
	} else {
		var req types.ImportRequest
		if !s.decodeJSON(w, r, &req) {
			return
		}
		rawText, inline, jobURL = req.RawText, req.JobDescription, req.JobURL
	}

	jd, err := s.jobDescription(r.Context(), inline, jobURL)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.importText(w, r, rawText, jd)
}

func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	if s.ai == nil {
		s.writeError(w, errAIUnavailable)
		return
	}

	var req types.TailorRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	jd, err := s.jobDescription(r.Context(), req.JobDescription, req.JobURL)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.importText(w, r, req.RawText, jd)
}

func (s *Server) importText(w http.ResponseWriter, r *http.Request, rawText, jd string) {
	sess := session.New(nil)
	result, err := sess.ImportFrom(r.Context(), s.ai, rawText, jd)
	if err != nil {
		s.writeError(w, err)
		return
	}

	analysis := result.Analysis
	s.jsonResponse(w, http.StatusOK, DocumentResponse{
		Document:          sess.Snapshot(),
		ATSScore:          sess.Score(),
		Analysis:          &analysis,
		ExtractedKeywords: result.ExtractedKeywords,
	})
}

// readUpload extracts the text of the "file" part of a multipart request
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return "", &ErrTooLarge{Limit: maxBytesErr.Limit}
		}
		return "", &ErrValidation{Field: "file", Message: "invalid multipart form: " + err.Error()}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", &ErrValidation{Field: "file", Message: "file is required"}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", &ErrValidation{Field: "file", Message: "failed to read upload"}
	}
	return ingestion.ExtractText(header.Filename, data)
}

// ---- Compression ----

// handleCompress shortens a document that runs past maxPages. A document that
// already fits is returned unchanged without calling the AI service.
func (s *Server) handleCompress(w http.ResponseWriter, r *http.Request) {
	var req types.CompressRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	doc, format, err := parseDocument(req.Document, req.Format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	maxPages := req.MaxPages
	if maxPages == 0 {
		maxPages = validation.DefaultMaxPages
	}

	plan, err := pdf.Plan(*doc, format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	analysis := validation.AnalyzePageOverflow(plan, maxPages)
	if !analysis.Overflowing() {
		s.jsonResponse(w, http.StatusOK, CompressResponse{
			Document:    *doc,
			PagesBefore: analysis.Pages,
			PagesAfter:  analysis.Pages,
		})
		return
	}

	if s.compressor == nil {
		s.writeError(w, errAIUnavailable)
		return
	}
	compressed, err := s.compressor.Compress(r.Context(), *doc, analysis.Sections)
	if err != nil {
		s.writeError(w, err)
		return
	}
	after, err := pdf.Plan(*compressed, format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, CompressResponse{
		Document:    *compressed,
		Compressed:  true,
		PagesBefore: analysis.Pages,
		PagesAfter:  len(after.Pages),
		Sections:    analysis.Sections,
	})
}

// ---- Job postings ----

func (s *Server) handleJobPosting(w http.ResponseWriter, r *http.Request) {
	var req types.JobPostingRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	posting, err := s.fetch(r.Context(), req.URL, req.UseBrowser || s.useBrowser)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, posting)
}

// jobDescription returns the inline description, or fetches it from jobURL when only
// a URL was given.
func (s *Server) jobDescription(ctx context.Context, inline, jobURL string) (string, error) {
	if jd := strings.TrimSpace(inline); jd != "" || jobURL == "" {
		return jd, nil
	}
	posting, err := s.fetch(ctx, jobURL, s.useBrowser)
	if err != nil {
		return "", err
	}
	return posting.Text, nil
}
