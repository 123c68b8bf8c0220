package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
	"github.com/spf13/cobra"
)

var checkCommand = &cobra.Command{
	Use:   "check",
	Short: "Validate a resume and check that every renderer agrees on its sections",
	Long: `Runs the document checks (date ranges, bullet length, forbidden phrases, page budget)
and renders the document with every renderer to confirm they present the same sections
in the same order. Exits non-zero when an error-level violation or a mismatch is found.

With --schema-only the file is only checked against the resume document JSON Schema.`,
	RunE: runCheck,
}

var (
	checkResume           string
	checkFormat           string
	checkMaxPages         int
	checkMaxBulletChars   int
	checkForbiddenPhrases string
	checkConfigPath       string
	checkOutputFile       string
	checkSchemaOnly       bool
)

func init() {
	checkCommand.Flags().StringVarP(&checkResume, "resume", "r", "", "Path to resume document JSON file")
	checkCommand.Flags().StringVarP(&checkFormat, "format", "f", "", "Layout format: standard or compact")
	checkCommand.Flags().IntVar(&checkMaxPages, "max-pages", 0, "Page budget (default 1)")
	checkCommand.Flags().IntVar(&checkMaxBulletChars, "max-bullet-chars", 0, "Maximum characters per bullet (0 disables)")
	checkCommand.Flags().StringVar(&checkForbiddenPhrases, "forbidden", "", "Comma-separated phrases that must not appear")
	checkCommand.Flags().StringVar(&checkConfigPath, "config", "", "Path to config.json file")
	checkCommand.Flags().StringVarP(&checkOutputFile, "out", "o", "", "Write violations JSON to this file")
	checkCommand.Flags().BoolVar(&checkSchemaOnly, "schema-only", false, "Only validate the file against the document schema")

	if err := checkCommand.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}

	rootCmd.AddCommand(checkCommand)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if checkSchemaOnly {
		if err := schemas.ValidateFile(schemas.ResumeDocument, checkResume); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Schema: valid (%s)\n", schemas.ResumeDocument)
		return nil
	}

	cfg, err := loadSettings(checkConfigPath, config.Config{
		Format:   checkFormat,
		MaxPages: checkMaxPages,
	})
	if err != nil {
		return err
	}

	format, err := types.ParseLayoutFormat(cfg.Format)
	if err != nil {
		return err
	}

	doc, err := loadDocument(checkResume)
	if err != nil {
		return err
	}

	violations, err := validation.Validate(doc, validation.Options{
		Format:           format,
		MaxPages:         cfg.MaxPages,
		MaxBulletChars:   checkMaxBulletChars,
		ForbiddenPhrases: splitList(checkForbiddenPhrases),
	})
	if err != nil {
		return err
	}

	result, err := rendering.Check(doc, format)
	if err != nil {
		return fmt.Errorf("failed to compare renderers: %w", err)
	}

	out := cmd.OutOrStdout()
	observability.NewPrinter(out).PrintViolations(violations)
	_, _ = fmt.Fprintf(out, "Pages: %d\n", result.Pages)
	_, _ = fmt.Fprintf(out, "Sections: %s\n", strings.Join(result.Expected, ", "))
	_, _ = fmt.Fprintf(out, "Links: %d\n", len(result.Links))

	if checkOutputFile != "" {
		if err := writeJSON(checkOutputFile, violations); err != nil {
			return err
		}
	}

	if !result.Consistent {
		return fmt.Errorf("renderers disagree: %s", strings.Join(result.Mismatches, "; "))
	}
	if violations.HasErrors() {
		return fmt.Errorf("found %d violations", len(violations.Violations))
	}
	_, _ = fmt.Fprintln(out, "All checks passed")
	return nil
}
