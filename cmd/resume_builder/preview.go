package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/rendering/preview"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var previewCommand = &cobra.Command{
	Use:   "preview",
	Short: "Render the HTML preview of a resume document",
	Long:  `Writes the live-preview HTML page for a resume document to a file, or to stdout when --out is omitted.`,
	RunE:  runPreview,
}

var (
	previewResume     string
	previewFormat     string
	previewOutputFile string
)

func init() {
	previewCommand.Flags().StringVarP(&previewResume, "resume", "r", "", "Path to resume document JSON file")
	previewCommand.Flags().StringVarP(&previewFormat, "format", "f", "", "Layout format: standard or compact")
	previewCommand.Flags().StringVarP(&previewOutputFile, "out", "o", "", "Output HTML file (default: stdout)")

	if err := previewCommand.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}

	rootCmd.AddCommand(previewCommand)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	format, err := types.ParseLayoutFormat(previewFormat)
	if err != nil {
		return err
	}

	doc, err := loadDocument(previewResume)
	if err != nil {
		return err
	}

	html, err := preview.Render(doc, format)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}

	if previewOutputFile == "" {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), html)
		return nil
	}
	if err := writeFile(previewOutputFile, []byte(html)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", previewOutputFile)
	return nil
}
