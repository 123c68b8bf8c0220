package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for rendering, checking and optimizing
resumes, and for saved resumes and tracked job applications.

Rendering works without any configuration. DATABASE_URL and AUTH_JWT_SECRET enable the
account routes; GEMINI_API_KEY enables the AI routes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: PORT env var or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	var jwtCfg *config.JWTConfig
	if os.Getenv("AUTH_JWT_SECRET") != "" {
		jwtCfg, err = config.NewJWTConfig()
		if err != nil {
			return fmt.Errorf("invalid auth configuration: %w", err)
		}
	} else {
		log.Printf("AUTH_JWT_SECRET not set; saved resumes and applications are disabled")
	}

	srv, err := server.New(cmd.Context(), cfg, jwtCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
