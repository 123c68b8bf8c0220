// Package server provides the HTTP REST API for rendering, AI editing and tracking resumes.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/optimize"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/tracker"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Store is the persistence the authenticated routes need. *db.DB implements it.
type Store interface {
	CreateResume(ctx context.Context, userID uuid.UUID, input db.SavedResumeInput) (*db.SavedResume, error)
	GetResume(ctx context.Context, userID, id uuid.UUID) (*db.SavedResume, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]db.SavedResume, error)
	UpdateResume(ctx context.Context, userID, id uuid.UUID, input db.SavedResumeInput) (*db.SavedResume, error)
	DeleteResume(ctx context.Context, userID, id uuid.UUID) error

	CreateApplication(ctx context.Context, userID uuid.UUID, input db.ApplicationInput) (*tracker.Application, error)
	GetApplication(ctx context.Context, userID, id uuid.UUID) (*tracker.Application, error)
	ListApplications(ctx context.Context, userID uuid.UUID, status string) ([]tracker.Application, error)
	UpdateApplication(ctx context.Context, userID, id uuid.UUID, input db.ApplicationInput) (*tracker.Application, error)
	UpdateApplicationStatus(ctx context.Context, userID, id uuid.UUID, status tracker.Status) error
	DeleteApplication(ctx context.Context, userID, id uuid.UUID) error

	AddNote(ctx context.Context, userID, applicationID uuid.UUID, input db.NoteInput) (*tracker.Note, error)
	ListNotes(ctx context.Context, userID, applicationID uuid.UUID) ([]tracker.Note, error)
	NotesByApplication(ctx context.Context, userID uuid.UUID) (map[uuid.UUID][]tracker.Note, error)
	DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error
}

// Compressor shortens a document that overflows its page budget. *optimize.LLMService implements it.
type Compressor interface {
	Compress(ctx context.Context, doc types.ResumeDocument, sections []string) (*types.ResumeDocument, error)
}

// PostingFetcher downloads a job description from a posting URL
type PostingFetcher func(ctx context.Context, url string, useBrowser bool) (*ingestion.JobPosting, error)

// Options are the dependencies of a Server. Nil services disable their routes with 503.
type Options struct {
	Store          Store
	AI             optimize.Service
	Compressor     Compressor
	Verifier       middleware.TokenValidator
	FetchPosting   PostingFetcher
	Metrics        *observability.Metrics
	RateLimit      *ratelimit.Config
	AllowedOrigins []string
	CacheSize      int
	MaxUploadBytes int64
	UseBrowser     bool
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	handler    http.Handler

	store      Store
	ai         optimize.Service
	compressor Compressor
	verifier   middleware.TokenValidator
	fetch      PostingFetcher
	metrics    *observability.Metrics
	limiter    *ratelimit.Limiter
	cache      *renderCache

	maxUploadBytes int64
	useBrowser     bool
	closers        []func()
}

// NewWithOptions builds a server around opts without binding a port
func NewWithOptions(opts Options) (*Server, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 128
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = ingestion.MaxFileSize
	}
	if opts.FetchPosting == nil {
		opts.FetchPosting = fetchPosting
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	cache, err := newRenderCache(opts.CacheSize, opts.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create render cache: %w", err)
	}

	s := &Server{
		store:          opts.Store,
		ai:             opts.AI,
		compressor:     opts.Compressor,
		verifier:       opts.Verifier,
		fetch:          opts.FetchPosting,
		metrics:        opts.Metrics,
		limiter:        ratelimit.NewLimiter(opts.RateLimit),
		cache:          cache,
		maxUploadBytes: opts.MaxUploadBytes,
		useBrowser:     opts.UseBrowser,
	}
	s.closers = append(s.closers, s.limiter.Stop)

	s.handler = middleware.Chain(s.routes(),
		middleware.Logging(opts.Metrics),
		middleware.CORS(opts.AllowedOrigins),
		ratelimit.Middleware(s.limiter),
	)
	return s, nil
}

// New connects the configured backends and creates a server listening on cfg.Port.
// Without a database the resume and application routes answer 503; without an API
// key the AI routes do; without jwtCfg every authenticated route answers 503.
func New(ctx context.Context, cfg *config.ServerConfig, jwtCfg *config.JWTConfig) (*Server, error) {
	metrics := observability.DefaultMetrics()
	opts := Options{
		Metrics:        metrics,
		RateLimit:      ratelimit.LoadConfig(),
		AllowedOrigins: cfg.AllowedOrigins,
		CacheSize:      cfg.CacheSize,
		MaxUploadBytes: cfg.MaxUploadBytes,
		UseBrowser:     cfg.UseBrowser,
	}
	var closers []func()

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, err
		}
		opts.Store = database
		closers = append(closers, database.Close)
	} else {
		log.Println("DATABASE_URL not set, persistence routes disabled")
	}

	if cfg.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, llm.ConfigFromEnv(), cfg.APIKey)
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		svc := optimize.NewLLMService(client, optimize.WithMetrics(metrics))
		opts.AI = svc
		opts.Compressor = svc
		closers = append(closers, func() { _ = client.Close() })
	} else {
		log.Println("GEMINI_API_KEY not set, AI routes disabled")
	}

	if jwtCfg != nil {
		opts.Verifier = NewJWTVerifier(jwtCfg).AsTokenValidator()
	} else {
		log.Println("AUTH_JWT_SECRET not set, authenticated routes disabled")
	}

	s, err := NewWithOptions(opts)
	if err != nil {
		for _, c := range closers {
			c()
		}
		return nil, err
	}
	s.closers = append(s.closers, closers...)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // AI calls and browser fetches are slow
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Rendering
	mux.HandleFunc("POST /v1/preview", s.handlePreview)
	mux.HandleFunc("POST /v1/render/{kind}", s.handleRender)
	mux.HandleFunc("POST /v1/bundle", s.handleBundle)
	mux.HandleFunc("POST /v1/check", s.handleCheck)
	mux.HandleFunc("POST /v1/validate", s.handleValidate)

	// AI and ingestion
	mux.HandleFunc("POST /v1/score", s.handleScore)
	mux.HandleFunc("POST /v1/optimize", s.handleOptimize)
	mux.HandleFunc("POST /v1/import", s.handleImport)
	mux.HandleFunc("POST /v1/tailor", s.handleTailor)
	mux.HandleFunc("POST /v1/compress", s.handleCompress)
	mux.HandleFunc("POST /v1/job-posting", s.handleJobPosting)

	// Saved resumes
	mux.Handle("GET /v1/resumes", s.authed(s.handleListResumes))
	mux.Handle("POST /v1/resumes", s.authed(s.handleCreateResume))
	mux.Handle("GET /v1/resumes/{id}", s.authed(s.handleGetResume))
	mux.Handle("PUT /v1/resumes/{id}", s.authed(s.handleUpdateResume))
	mux.Handle("DELETE /v1/resumes/{id}", s.authed(s.handleDeleteResume))
	mux.Handle("GET /v1/resumes/{id}/render/{kind}", s.authed(s.handleRenderSavedResume))

	// Application tracker
	mux.Handle("GET /v1/applications", s.authed(s.handleListApplications))
	mux.Handle("POST /v1/applications", s.authed(s.handleCreateApplication))
	mux.Handle("GET /v1/applications/summary", s.authed(s.handleApplicationSummary))
	mux.Handle("GET /v1/applications/export.xlsx", s.authed(s.handleExportApplications))
	mux.Handle("GET /v1/applications/{id}", s.authed(s.handleGetApplication))
	mux.Handle("PUT /v1/applications/{id}", s.authed(s.handleUpdateApplication))
	mux.Handle("PATCH /v1/applications/{id}/status", s.authed(s.handleUpdateApplicationStatus))
	mux.Handle("DELETE /v1/applications/{id}", s.authed(s.handleDeleteApplication))
	mux.Handle("GET /v1/applications/{id}/notes", s.authed(s.handleListNotes))
	mux.Handle("POST /v1/applications/{id}/notes", s.authed(s.handleAddNote))
	mux.Handle("DELETE /v1/notes/{id}", s.authed(s.handleDeleteNote))

	return mux
}

// authed wraps h with bearer token authentication. Without a verifier or a store
// the route answers 503.
func (s *Server) authed(h http.HandlerFunc) http.Handler {
	if s.verifier == nil || s.store == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			s.writeError(w, &ErrUnavailable{Service: "account storage"})
		})
	}
	return middleware.AuthMiddleware(s.verifier)(h)
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	if s.httpServer == nil {
		return fmt.Errorf("server was created without a listen address")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	log.Println("Server stopped")
	return nil
}

// Close releases the rate limiter, the database pool and the LLM client
func (s *Server) Close() {
	for _, c := range s.closers {
		c()
	}
	s.closers = nil
}

func fetchPosting(ctx context.Context, url string, useBrowser bool) (*ingestion.JobPosting, error) {
	return ingestion.FetchJobPosting(ctx, url, ingestion.JobPostingOptions{UseBrowser: useBrowser})
}
