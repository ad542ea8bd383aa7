package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"punktual/internal/capture"
	"punktual/internal/codegen"
	"punktual/internal/config"
	"punktual/internal/ics"
	appLog "punktual/internal/log"
	"punktual/internal/model"
	"punktual/internal/shortlink"
)

// Shortener swaps raw platform URLs for tracked ones.
type Shortener interface {
	Configured() bool
	CreateShortLinks(ctx context.Context, links model.LinkMap, title, userID, accessToken string) (model.LinkMap, error)
}

// Fetcher downloads a remote ICS payload.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// PreviewFunc renders markup to PNG.
type PreviewFunc func(ctx context.Context, markup string, opts capture.Options) ([]byte, error)

// Server exposes the link and code generators over HTTP.
type Server struct {
	cfg       *config.Config
	gen       *codegen.Generator
	shortener Shortener
	fetcher   Fetcher
	preview   PreviewFunc
	router    *gin.Engine
}

// Option customises a Server, mostly for tests.
type Option func(*Server)

// WithGenerator replaces the default generator.
func WithGenerator(g *codegen.Generator) Option {
	return func(s *Server) { s.gen = g }
}

// WithShortener replaces the configured short-link client.
func WithShortener(sh Shortener) Option {
	return func(s *Server) { s.shortener = sh }
}

// WithFetcher replaces the ICS import fetcher.
func WithFetcher(f Fetcher) Option {
	return func(s *Server) { s.fetcher = f }
}

// WithPreview replaces the headless browser capture.
func WithPreview(p PreviewFunc) Option {
	return func(s *Server) { s.preview = p }
}

// NewServer constructs a Server from cfg.
func NewServer(cfg *config.Config, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.Normalize()

	fetcher := ics.NewFetcher(cfg.ImportTimeout(), cfg.Import.MaxBytes)
	fetcher.AllowPrivate = cfg.Import.AllowPrivate

	s := &Server{
		cfg:       cfg,
		gen:       codegen.New(cfg.BaseURL, nil),
		shortener: shortlink.NewClient(cfg.ShortLink.Endpoint, cfg.ShortLinkTimeout()),
		fetcher:   fetcher,
		preview:   capture.PreviewPNG,
	}
	for _, o := range opts {
		o(s)
	}

	s.router = gin.New()
	s.router.Use(gin.Recovery(), requestLogger())
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	// /health is always unauthenticated.
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		api.Use(gin.BasicAuthForRealm(gin.Accounts{
			s.cfg.BasicAuth.Username: s.cfg.BasicAuth.Password,
		}, "Punktual"))
	}
	{
		api.GET("/platforms", s.handlePlatforms)
		api.POST("/links", s.handleLinks)
		api.POST("/generate", s.handleGenerate)
		api.POST("/occurrences", s.handleOccurrences)
		api.POST("/import", s.handleImport)
		api.POST("/preview", s.handlePreview)
	}
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// Blank credentials count as disabled.
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// StartServer serves on cfg.Listen until ctx is cancelled, then shuts down
// gracefully.
func StartServer(ctx context.Context, cfg *config.Config, debug bool) error {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	s := NewServer(cfg)
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+cfg.Listen, "debug", debug)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	appLog.Info("shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		appLog.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
