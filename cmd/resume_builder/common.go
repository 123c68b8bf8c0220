package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/optimize"
	"github.com/jonathan/resume-builder/internal/types"
)

// loadSettings merges an optional config file under the values given as flags.
// Flags win; the file fills whatever the flags left empty.
func loadSettings(configPath string, flags config.Config) (config.Config, error) {
	if configPath == "" {
		merged := flags.MergeWithDefaults(config.Config{})
		return merged, merged.Validate()
	}

	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := fileCfg.Validate(); err != nil {
		return config.Config{}, err
	}

	merged := flags.MergeWithDefaults(*fileCfg)
	merged.UseBrowser = flags.UseBrowser || fileCfg.UseBrowser
	merged.Verbose = flags.Verbose || fileCfg.Verbose
	if flags.Job != "" || flags.JobURL != "" {
		// an explicit job flag replaces both job inputs from the file
		merged.Job, merged.JobURL = flags.Job, flags.JobURL
	}
	return merged, merged.Validate()
}

// loadDocument reads and schema-validates a resume document JSON file
func loadDocument(path string) (types.ResumeDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ResumeDocument{}, fmt.Errorf("failed to read resume %s: %w", path, err)
	}
	doc, err := types.ParseDocument(data)
	if err != nil {
		return types.ResumeDocument{}, fmt.Errorf("invalid resume %s: %w", path, err)
	}
	return *doc, nil
}

// writeJSON writes v as indented JSON to path, creating parent directories
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// jobDescription returns the job text from a file or a fetched posting.
// Both empty yields "" so callers fall back to general optimization.
func jobDescription(ctx context.Context, cfg config.Config) (string, error) {
	switch {
	case cfg.Job != "":
		text, err := ingestion.ExtractFile(cfg.Job)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return strings.TrimSpace(text), nil
	case cfg.JobURL != "":
		posting, err := ingestion.FetchJobPosting(ctx, cfg.JobURL, ingestion.JobPostingOptions{
			UseBrowser: cfg.UseBrowser,
			Verbose:    cfg.Verbose,
		})
		if err != nil {
			return "", fmt.Errorf("failed to fetch job posting: %w", err)
		}
		return posting.Text, nil
	}
	return "", nil
}

// newAIService builds the Gemini-backed service. The returned func closes the client.
func newAIService(ctx context.Context, apiKey string) (*optimize.LLMService, func(), error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, nil, fmt.Errorf("API key is required (use --api-key flag or GEMINI_API_KEY env var)")
	}

	client, err := llm.NewGeminiClient(ctx, llm.ConfigFromEnv(), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	return optimize.NewLLMService(client), func() { _ = client.Close() }, nil
}

// splitList turns a comma-separated flag value into trimmed, non-empty items
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
