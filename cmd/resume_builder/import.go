package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/spf13/cobra"
)

var importCommand = &cobra.Command{
	Use:   "import",
	Short: "Convert a PDF, DOCX or text resume into a resume document",
	Long: `Extracts the text of an existing resume file and has the AI service structure it into a
resume document, returning a critique of the original alongside it.

Supported files: ` + strings.Join(ingestion.SupportedExtensions(), ", "),
	RunE: runImport,
}

var (
	importFile       string
	importOutputFile string
	importAPIKey     string
	importConfigPath string
	importVerbose    bool
)

func init() {
	importCommand.Flags().StringVarP(&importFile, "file", "i", "", "Path to the resume file to import")
	importCommand.Flags().StringVarP(&importOutputFile, "out", "o", "", "Output file for the resume document JSON")
	importCommand.Flags().StringVar(&importAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	importCommand.Flags().StringVar(&importConfigPath, "config", "", "Path to config.json file")
	importCommand.Flags().BoolVarP(&importVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := importCommand.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}
	if err := importCommand.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(importCommand)
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(importConfigPath, config.Config{
		APIKey:  importAPIKey,
		Verbose: importVerbose,
	})
	if err != nil {
		return err
	}
	// a job in the config file does not turn import into tailor
	cfg.Job, cfg.JobURL = "", ""
	return importResume(cmd, cfg, importFile, importOutputFile)
}

// importResume extracts the text of path, imports it through the AI service
// (tailoring it when cfg names a job) and writes the document to outputFile.
func importResume(cmd *cobra.Command, cfg config.Config, path, outputFile string) error {
	ctx := cmd.Context()

	raw, err := ingestion.ExtractFile(path)
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

	s := session.New(nil)
	result, err := s.ImportFrom(ctx, svc, raw, jd)
	if err != nil {
		return err
	}

	doc := s.Snapshot()
	if err := writeJSON(outputFile, doc); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)
	if cfg.Verbose {
		printer.PrintDocument(&doc)
	}
	printer.PrintAnalysis(&result.Analysis)
	printer.PrintATSScore(s.Score())
	_, _ = fmt.Fprintf(out, "Output: %s\n", outputFile)
	return nil
}
