package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/resume-builder/internal/fetch"
)

// ErrEmptyPosting is returned when a job posting page has no extractable text
var ErrEmptyPosting = errors.New("job posting has no text")

// JobPosting is a job description fetched from a URL
type JobPosting struct {
	URL       string `json:"url"`
	Platform  string `json:"platform,omitempty"`
	Text      string `json:"text"`
	Hash      string `json:"hash"`
	FetchedAt string `json:"fetchedAt"`
}

// JobPostingOptions configures FetchJobPosting
type JobPostingOptions struct {
	// UseBrowser re-renders pages whose static HTML is too thin (SPA job boards)
	UseBrowser bool
	Verbose    bool
	Fetch      *fetch.Options
}

// FetchJobPosting downloads a job posting and returns its description text,
// using the selectors of the job board the URL belongs to.
func FetchJobPosting(ctx context.Context, url string, opts JobPostingOptions) (*JobPosting, error) {
	platform := fetch.DetectPlatform(url)
	if opts.Verbose {
		log.Printf("[VERBOSE] Job posting %s (platform: %s)", url, platform)
	}

	result, err := fetch.URL(ctx, url, opts.Fetch)
	if err != nil {
		return nil, err
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, fmt.Errorf("failed to extract job posting text: %w", err)
	}

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		if opts.Verbose {
			log.Printf("[VERBOSE] Only %d chars extracted, rendering %s in a browser", len(text), url)
		}
		html, browserErr := fetch.BrowserSimple(ctx, url, opts.Verbose)
		if browserErr != nil {
			log.Printf("Browser rendering of %s failed, keeping static content: %v", url, browserErr)
		} else if rendered, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...); err == nil {
			text = rendered
		}
	}

	text = CleanText(text)
	if text == "" {
		return nil, ErrEmptyPosting
	}

	sum := sha256.Sum256([]byte(text))
	return &JobPosting{
		URL:       url,
		Platform:  string(platform),
		Text:      text,
		Hash:      hex.EncodeToString(sum[:]),
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
