// Package snapshot prints the HTML preview through headless Chrome so its
// pagination can be compared with the PDF renderer.
package snapshot

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/rendering/pdf"
	"github.com/jonathan/resume-builder/internal/rendering/preview"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

// DefaultTimeout bounds a whole browser session
const DefaultTimeout = 60 * time.Second

// ChromePathEnv names the variable that overrides the Chrome binary
const ChromePathEnv = "CHROME_PATH"

// Options configures a browser print
type Options struct {
	Timeout    time.Duration
	ChromePath string
	Verbose    bool
}

// Result compares the browser print of the preview with the PDF renderer
type Result struct {
	PDF          []byte `json:"-"`
	BrowserPages int    `json:"browserPages"`
	EnginePages  int    `json:"enginePages"`
}

// Match reports whether both renderers produced the same number of pages
func (r *Result) Match() bool {
	return r.BrowserPages == r.EnginePages
}

// PrintHTML loads html into a blank tab and prints it to PDF on the page size of policy.
// The preview's @page rule supplies the margins.
func PrintHTML(ctx context.Context, html string, policy layout.Policy, opts Options) ([]byte, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	allocOpts := fetch.AllocatorOptions()
	chromePath := opts.ChromePath
	if chromePath == "" {
		chromePath = os.Getenv(ChromePathEnv)
	}
	if chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var out []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			out, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(policy.PageWidth / 72).
				WithPaperHeight(policy.PageHeight / 72).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print HTML to PDF: %w", err)
	}

	if opts.Verbose {
		log.Printf("[BROWSER] Printed %d bytes of PDF", len(out))
	}
	return out, nil
}

// Document prints the preview of doc and counts the pages of both renderers
func Document(ctx context.Context, doc types.ResumeDocument, format types.LayoutFormat, opts Options) (*Result, error) {
	html, err := preview.Render(doc, format)
	if err != nil {
		return nil, err
	}

	data, err := PrintHTML(ctx, string(html), layout.For(format), opts)
	if err != nil {
		return nil, err
	}

	browserPages, err := validation.CountPDFPages(data)
	if err != nil {
		return nil, fmt.Errorf("failed to count browser pages: %w", err)
	}

	plan, err := pdf.Plan(doc, format)
	if err != nil {
		return nil, err
	}

	return &Result{
		PDF:          data,
		BrowserPages: browserPages,
		EnginePages:  len(plan.Pages),
	}, nil
}
