package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/spf13/cobra"
)

var optimizeCommand = &cobra.Command{
	Use:   "optimize",
	Short: "Rewrite a resume with AI, optionally targeting a job description",
	Long: `Sends the resume to the AI service, merges the rewritten summary, strengths and bullets
back into the document and prints the resulting ATS score.

The job description can come from a file (--job) or a posting URL (--job-url). Without
either the resume is optimized for general ATS readability.`,
	RunE: runOptimize,
}

var (
	optimizeResume     string
	optimizeJob        string
	optimizeJobURL     string
	optimizeOutputFile string
	optimizeAPIKey     string
	optimizeConfigPath string
	optimizeUseBrowser bool
	optimizeVerbose    bool
)

func init() {
	optimizeCommand.Flags().StringVarP(&optimizeResume, "resume", "r", "", "Path to resume document JSON file")
	optimizeCommand.Flags().StringVarP(&optimizeJob, "job", "j", "", "Path to job description file (mutually exclusive with --job-url)")
	optimizeCommand.Flags().StringVar(&optimizeJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	optimizeCommand.Flags().StringVarP(&optimizeOutputFile, "out", "o", "", "Output file for the optimized document JSON")
	optimizeCommand.Flags().StringVar(&optimizeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	optimizeCommand.Flags().StringVar(&optimizeConfigPath, "config", "", "Path to config.json file")
	optimizeCommand.Flags().BoolVar(&optimizeUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	optimizeCommand.Flags().BoolVarP(&optimizeVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := optimizeCommand.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := optimizeCommand.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(optimizeCommand)
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadSettings(optimizeConfigPath, config.Config{
		Job:        optimizeJob,
		JobURL:     optimizeJobURL,
		APIKey:     optimizeAPIKey,
		UseBrowser: optimizeUseBrowser,
		Verbose:    optimizeVerbose,
	})
	if err != nil {
		return err
	}

	doc, err := loadDocument(optimizeResume)
	if err != nil {
		return err
	}

	jd, err := jobDescription(ctx, cfg)
	if err != nil {
		return err
	}

	svc, closeFn, err := newAIService(ctx, cfg.APIKey)
	if err != nil {
		return err
	}
	defer closeFn()

	s := session.New(&doc)
	score, err := s.ApplyOptimization(ctx, svc, jd)
	if err != nil {
		return err
	}

	optimized := s.Snapshot()
	if err := writeJSON(optimizeOutputFile, optimized); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)
	if cfg.Verbose {
		printer.PrintDocument(&optimized)
	}
	printer.PrintATSScore(score)
	_, _ = fmt.Fprintf(out, "Output: %s\n", optimizeOutputFile)
	return nil
}
