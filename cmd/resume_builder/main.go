package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Render, check and tailor resumes from a structured JSON document",
	Long: `Resume Builder renders one resume document into a live HTML preview, a paginated PDF,
a Word document and plain text that all present the same sections in the same order.

It can also optimize a resume against a job description, import resumes from PDF, DOCX or
text files, and serve everything over a REST API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
