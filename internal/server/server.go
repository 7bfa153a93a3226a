package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/parse"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/types"
)

// Store is the persistence surface the server depends on. *db.DB
// implements it; tests substitute a fake.
type Store interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*types.Document, error)
	UpdateUserProfile(ctx context.Context, userID uuid.UUID, doc types.Document) error

	CreateResume(ctx context.Context, userID uuid.UUID, title, templateID string, doc types.Document) (*db.Resume, error)
	GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	GetResumeByShareLink(ctx context.Context, linkID string) (*db.Resume, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]db.Resume, error)
	UpdateResumeDocument(ctx context.Context, id uuid.UUID, doc types.Document) error
	UpdateResumeMeta(ctx context.Context, id uuid.UUID, title, templateID string) error
	DeleteResume(ctx context.Context, id uuid.UUID) error
	SetShareLink(ctx context.Context, id uuid.UUID, link db.ShareLink) error
	ClearShareLink(ctx context.Context, id uuid.UUID) error
}

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	store       Store
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	validator   *validator.Validate
	parser      *parse.Parser
	llmClient   llm.Client
	exportCfg   *config.ExportConfig
}

// Config holds server configuration.
type Config struct {
	Port         int
	GeminiAPIKey string // optional, enables LLM-assisted upload parsing
}

// New creates a server instance on top of an already connected store.
func New(cfg Config, store Store) (*Server, error) {
	s := &Server{
		store:     store,
		validator: validator.New(),
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(store, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.exportCfg, err = config.NewExportConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create export config: %w", err)
	}

	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llmClient = client
	}
	s.parser = parse.New(s.llmClient)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // exports run a headless browser
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the route table. Everything except auth, the public view,
// and the health check requires a bearer token.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.Auth(s.jwtService.AsTokenValidator())
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, auth(h))
	}

	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	protected("PUT /auth/password", s.authHandler.UpdatePassword)

	protected("GET /user/profile", s.handleGetProfile)
	protected("PUT /user/profile", s.handleUpdateProfile)

	protected("POST /resumes", s.handleCreateResume)
	protected("GET /resumes", s.handleListResumes)
	protected("GET /resumes/{id}", s.handleGetResume)
	protected("PUT /resumes/{id}", s.handleUpdateResume)
	protected("DELETE /resumes/{id}", s.handleDeleteResume)

	protected("POST /resumes/{id}/edits", s.handleApplyEdits)
	protected("POST /resumes/{id}/reconcile", s.handleReconcile)

	protected("POST /resumes/{id}/share", s.handleCreateShareLink)
	protected("DELETE /resumes/{id}/share", s.handleDeleteShareLink)
	mux.HandleFunc("GET /public/resumes/{id}", s.handlePublicResume)

	mux.HandleFunc("GET /templates", s.handleListTemplates)
	mux.HandleFunc("GET /templates/{id}", s.handleGetTemplate)

	protected("POST /upload", s.handleUpload)

	protected("GET /resumes/{id}/export/pdf", s.handleExportPDF)
	protected("GET /resumes/{id}/export/docx", s.handleExportDOCX)
	protected("GET /resumes/{id}/export/bundle", s.handleExportBundle)

	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start begins listening and blocks until an interrupt, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRateLimit adds rate limiting middleware.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID identifies the client by IP address.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}
	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	})
}
