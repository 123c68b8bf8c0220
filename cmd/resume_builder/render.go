package main

import (
	"fmt"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/rendering/pdf"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
	"github.com/spf13/cobra"
)

var renderCommand = &cobra.Command{
	Use:   "render",
	Short: "Export a resume document as PDF, DOCX, plain text, HTML or a zip of all three",
	Long: `Renders a resume document JSON file and writes the result into the output directory,
named after the candidate (Jane_Doe_Resume.pdf).

Kinds: pdf, docx, txt, html and zip (PDF, DOCX and text bundled together).`,
	RunE: runRender,
}

var (
	renderResume     string
	renderKind       string
	renderFormat     string
	renderOutputDir  string
	renderConfigPath string
	renderVerbose    bool
)

func init() {
	renderCommand.Flags().StringVarP(&renderResume, "resume", "r", "", "Path to resume document JSON file")
	renderCommand.Flags().StringVarP(&renderKind, "kind", "k", "pdf", "Export kind: pdf, docx, txt, html or zip")
	renderCommand.Flags().StringVarP(&renderFormat, "format", "f", "", "Layout format: standard or compact")
	renderCommand.Flags().StringVarP(&renderOutputDir, "out", "o", "", "Output directory (default: current directory)")
	renderCommand.Flags().StringVar(&renderConfigPath, "config", "", "Path to config.json file")
	renderCommand.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print the document summary and the first page of the layout")

	if err := renderCommand.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCommand)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(renderConfigPath, config.Config{
		Format:  renderFormat,
		Output:  renderOutputDir,
		Verbose: renderVerbose,
	})
	if err != nil {
		return err
	}

	format, err := types.ParseLayoutFormat(cfg.Format)
	if err != nil {
		return err
	}

	doc, err := loadDocument(renderResume)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Verbose {
		printer := observability.NewPrinter(out)
		printer.PrintDocument(&doc)
		if plan, err := pdf.Plan(doc, format); err == nil {
			printer.PrintLayout(len(plan.Pages), layout.Keys(layout.Sections(doc)))
			if len(plan.Pages) > 0 {
				spew.Fdump(out, plan.Pages[0].Ops)
			}
		}
	}

	var artifact *rendering.Artifact
	if renderKind == string(rendering.KindZip) {
		artifact, err = rendering.Bundle(cmd.Context(), doc, format)
	} else {
		kind, kindErr := rendering.ParseKind(renderKind)
		if kindErr != nil {
			return kindErr
		}
		artifact, err = rendering.Export(cmd.Context(), doc, format, kind)
	}
	if err != nil {
		return err
	}

	outputPath := filepath.Join(cfg.Output, artifact.Filename)
	if err := writeFile(outputPath, artifact.Data); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Successfully rendered %s (%d bytes)\n", artifact.Kind, len(artifact.Data))
	if cfg.Verbose && artifact.Kind == rendering.KindPDF {
		if pages, err := validation.CountPDFFilePages(outputPath); err == nil {
			_, _ = fmt.Fprintf(out, "Pages: %d\n", pages)
		}
	}
	_, _ = fmt.Fprintf(out, "Output: %s\n", outputPath)
	return nil
}
