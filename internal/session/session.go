// Package session owns the resume being edited. The document is only ever replaced
// as a whole, so readers always observe a complete snapshot.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/resume-builder/internal/optimize"
	"github.com/jonathan/resume-builder/internal/types"
)

// Edit derives a new document from the current one. It must not modify its input.
type Edit func(types.ResumeDocument) (types.ResumeDocument, error)

// Session is the single writer of one ResumeDocument
type Session struct {
	mu    sync.Mutex
	doc   types.ResumeDocument
	score *types.ATSScore
}

// New starts a session from doc. A nil doc starts from an empty document.
func New(doc *types.ResumeDocument) *Session {
	if doc == nil {
		return &Session{doc: types.NewResumeDocument()}
	}
	return &Session{doc: types.Normalize(*doc)}
}

// Snapshot returns a deep copy of the current document
func (s *Session) Snapshot() types.ResumeDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Score returns the ATS score from the last successful optimization or import
func (s *Session) Score() *types.ATSScore {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.score == nil {
		return nil
	}
	score := *s.score
	score.Suggestions = append([]string{}, s.score.Suggestions...)
	return &score
}

// Update applies the edits in order to a copy of the current document. The result
// replaces the document only when every edit succeeds.
func (s *Session) Update(edits ...Edit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	for _, edit := range edits {
		var err error
		if next, err = edit(next); err != nil {
			return err
		}
	}
	s.doc = next
	return nil
}

// Replace swaps in a new document and clears the stored score
func (s *Session) Replace(doc types.ResumeDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = types.Normalize(doc)
	s.score = nil
}

// ApplyOptimization sends the current snapshot to svc and merges the reply.
// On failure the document and score are left untouched.
func (s *Session) ApplyOptimization(ctx context.Context, svc optimize.Service, jobDescription string) (*types.ATSScore, error) {
	snapshot := s.Snapshot()

	result, err := svc.Optimize(ctx, snapshot, jobDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize resume: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// edits committed during the call are kept; the reply is merged onto them
	merged := optimize.ApplyOptimizations(s.doc, result)
	score := optimize.NormalizeATSScore(result.ATSScore, merged, jobDescription != "")
	s.doc = merged
	s.score = &score
	return &score, nil
}

// ImportFrom replaces the document with one parsed from raw resume text.
// When jobDescription is non-empty the text is tailored to it during parsing.
func (s *Session) ImportFrom(ctx context.Context, svc optimize.Service, rawText, jobDescription string) (*optimize.ImportResult, error) {
	var (
		result *optimize.ImportResult
		err    error
	)
	if jobDescription != "" {
		result, err = svc.Tailor(ctx, rawText, jobDescription)
	} else {
		result, err = svc.Analyze(ctx, rawText)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to import resume: %w", err)
	}

	doc := types.Normalize(result.Document)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.score = nil
	if result.ATSScore != nil {
		score := optimize.NormalizeATSScore(*result.ATSScore, doc, jobDescription != "")
		s.score = &score
	}
	return result, nil
}
