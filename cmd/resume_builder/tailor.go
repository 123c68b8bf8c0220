package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/spf13/cobra"
)

var tailorCommand = &cobra.Command{
	Use:   "tailor",
	Short: "Import a resume file and tailor it to a job description in one step",
	Long: `Like import, but the AI service rewrites the resume toward the given job while structuring it.
Exactly one of --job or --job-url is required.`,
	RunE: runTailor,
}

var (
	tailorFile       string
	tailorJob        string
	tailorJobURL     string
	tailorOutputFile string
	tailorAPIKey     string
	tailorConfigPath string
	tailorUseBrowser bool
	tailorVerbose    bool
)

func init() {
	tailorCommand.Flags().StringVarP(&tailorFile, "file", "i", "", "Path to the resume file to import")
	tailorCommand.Flags().StringVarP(&tailorJob, "job", "j", "", "Path to job description file (mutually exclusive with --job-url)")
	tailorCommand.Flags().StringVar(&tailorJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	tailorCommand.Flags().StringVarP(&tailorOutputFile, "out", "o", "", "Output file for the resume document JSON")
	tailorCommand.Flags().StringVar(&tailorAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	tailorCommand.Flags().StringVar(&tailorConfigPath, "config", "", "Path to config.json file")
	tailorCommand.Flags().BoolVar(&tailorUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	tailorCommand.Flags().BoolVarP(&tailorVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := tailorCommand.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}
	if err := tailorCommand.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(tailorCommand)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(tailorConfigPath, config.Config{
		Job:        tailorJob,
		JobURL:     tailorJobURL,
		APIKey:     tailorAPIKey,
		UseBrowser: tailorUseBrowser,
		Verbose:    tailorVerbose,
	})
	if err != nil {
		return err
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url is required")
	}
	return importResume(cmd, cfg, tailorFile, tailorOutputFile)
}
