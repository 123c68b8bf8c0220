package optimize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// Operation names used in errors and metrics
const (
	OpOptimize = "optimize"
	OpImport   = "import"
	OpTailor   = "tailor"
	OpCompress = "compress"
)

// Service is the AI boundary. Each call is a single round trip with no retries;
// a failed call returns an error and no partial result.
type Service interface {
	Optimize(ctx context.Context, doc types.ResumeDocument, jobDescription string) (*OptimizationResult, error)
	Analyze(ctx context.Context, rawText string) (*ImportResult, error)
	Tailor(ctx context.Context, rawText, jobDescription string) (*ImportResult, error)
}

// LLMService implements Service on top of an llm.Client
type LLMService struct {
	client  llm.Client
	metrics *observability.Metrics
}

// Option configures an LLMService
type Option func(*LLMService)

// WithMetrics records call durations on m
func WithMetrics(m *observability.Metrics) Option {
	return func(s *LLMService) { s.metrics = m }
}

// NewLLMService creates a service that prompts client
func NewLLMService(client llm.Client, opts ...Option) *LLMService {
	s := &LLMService{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Optimize rewrites the summary, strengths and bullets of doc, tailored to
// jobDescription when one is given.
func (s *LLMService) Optimize(ctx context.Context, doc types.ResumeDocument, jobDescription string) (*OptimizationResult, error) {
	resumeJSON, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}

	guidance, err := jobGuidance(prompts.KeyJobGuidance, prompts.KeyNoJobGuidance, jobDescription)
	if err != nil {
		return nil, err
	}
	prompt, err := buildPrompt(prompts.KeyOptimize, schemas.OptimizationResult, map[string]string{
		"JobGuidance": guidance,
		"Resume":      quote("resume json", string(resumeJSON)),
	})
	if err != nil {
		return nil, err
	}

	var result OptimizationResult
	if err := s.call(ctx, OpOptimize, prompt, llm.TierAdvanced, schemas.OptimizationResult, &result); err != nil {
		return nil, err
	}
	result.ATSScore = result.ATSScore.Clamp()
	return &result, nil
}

// Analyze parses raw resume text into a document and critiques it
func (s *LLMService) Analyze(ctx context.Context, rawText string) (*ImportResult, error) {
	return s.importText(ctx, OpImport, rawText, "")
}

// Tailor parses raw resume text and rewrites it for jobDescription
func (s *LLMService) Tailor(ctx context.Context, rawText, jobDescription string) (*ImportResult, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, errors.New("tailor requires a job description")
	}
	return s.importText(ctx, OpTailor, rawText, jobDescription)
}

func (s *LLMService) importText(ctx context.Context, op, rawText, jobDescription string) (*ImportResult, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, fmt.Errorf("%s requires resume text", op)
	}

	guidance := ""
	if jobDescription != "" {
		var err error
		if guidance, err = jobGuidance(prompts.KeyTailorGuidance, "", jobDescription); err != nil {
			return nil, err
		}
	}
	prompt, err := buildPrompt(prompts.KeyImport, schemas.ImportResult, map[string]string{
		"JobGuidance": guidance,
		"RawText":     quoteChecked("resume text", rawText),
	})
	if err != nil {
		return nil, err
	}

	tier := llm.TierStandard
	if op == OpTailor {
		tier = llm.TierAdvanced
	}

	var result ImportResult
	if err := s.call(ctx, op, prompt, tier, schemas.ImportResult, &result); err != nil {
		return nil, err
	}
	result.Document = types.Normalize(result.Document)
	if result.ATSScore != nil {
		score := result.ATSScore.Clamp()
		result.ATSScore = &score
	}
	return &result, nil
}

// Compress asks the model to shorten doc so it fits on one page. sections names the
// section keys that overflow. IDs are preserved by the prompt and re-filled when missing.
func (s *LLMService) Compress(ctx context.Context, doc types.ResumeDocument, sections []string) (*types.ResumeDocument, error) {
	resumeJSON, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}

	overflow := strings.Join(sections, ", ")
	if overflow == "" {
		overflow = "(unknown)"
	}
	prompt, err := buildPrompt(prompts.KeyCompress, schemas.ResumeDocument, map[string]string{
		"OverflowSections": overflow,
		"Resume":           quote("resume json", string(resumeJSON)),
	})
	if err != nil {
		return nil, err
	}

	var out types.ResumeDocument
	if err := s.call(ctx, OpCompress, prompt, llm.TierAdvanced, schemas.ResumeDocument, &out); err != nil {
		return nil, err
	}
	out = types.Normalize(out)
	return &out, nil
}

// call sends prompt and strictly decodes the reply into out: it must be JSON, must
// validate against schemaName and must unmarshal. Nothing is repaired.
func (s *LLMService) call(ctx context.Context, op, prompt string, tier llm.ModelTier, schemaName string, out any) (err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveAICall(op, time.Since(start), err) }()

	reply, err := s.client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return &APICallError{Operation: op, Cause: err}
	}

	if !json.Valid([]byte(reply)) {
		return &ParseError{Operation: op, Cause: errors.New("response is not valid JSON")}
	}
	if err := schemas.ValidateNamed(schemaName, reply); err != nil {
		return &SchemaError{Operation: op, Cause: err}
	}
	if err := json.Unmarshal([]byte(reply), out); err != nil {
		return &ParseError{Operation: op, Cause: err}
	}
	return nil
}

func buildPrompt(key, schemaName string, data map[string]string) (string, error) {
	schema, err := schemas.Schema(schemaName)
	if err != nil {
		return "", err
	}
	data["Schema"] = schema
	prompt, err := prompts.Render(key, data)
	if err != nil {
		return "", fmt.Errorf("failed to build %s prompt: %w", key, err)
	}
	return prompt, nil
}

// jobGuidance renders withJob around the quoted job description, or withoutJob when
// there is none. An empty withoutJob key yields no guidance.
func jobGuidance(withJob, withoutJob, jobDescription string) (string, error) {
	if strings.TrimSpace(jobDescription) == "" {
		if withoutJob == "" {
			return "", nil
		}
		return prompts.Render(withoutJob, nil)
	}
	return prompts.Render(withJob, map[string]string{
		"JobDescription": quoteChecked("job description", jobDescription),
	})
}
