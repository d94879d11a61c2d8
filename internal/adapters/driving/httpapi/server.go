package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/logger"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 10 * time.Second

// Config holds HTTP server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":5000".
	Addr string

	// AllowedOrigins lists CORS origins. Empty allows any origin.
	AllowedOrigins []string

	// AdminPassword unlocks the admin routes. Empty disables admin login.
	AdminPassword string

	// Version is reported by /health.
	Version string
}

// Server serves the HTTP API.
type Server struct {
	ports  *Ports
	cfg    Config
	tokens *tokenStore
	engine *gin.Engine
}

// NewServer creates the server and registers its routes.
func NewServer(ports *Ports, cfg Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.MaxMultipartMemory = domain.MaxUploadBytes
	engine.Use(gin.Recovery(), requestID(), cors.New(corsConfig(cfg.AllowedOrigins)))

	s := &Server{
		ports:  ports,
		cfg:    cfg,
		tokens: newTokenStore(),
		engine: engine,
	}
	s.registerRoutes()

	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		select {
		case <-ctx.Done():
		case <-stopped:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("Listening on %s", s.cfg.Addr)
	err := httpServer.ListenAndServe()
	close(stopped)
	<-shutdownDone
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) registerRoutes() {
	r := s.engine

	r.GET("/health", s.handleHealth)
	r.POST("/ask", s.handleAsk)
	if s.ports.Search != nil {
		r.GET("/search", s.handleSearch)
	}

	admin := r.Group("/admin")
	admin.POST("/login", s.handleLogin)

	protected := admin.Group("")
	protected.Use(s.requireAdmin())
	protected.POST("/logout", s.handleLogout)

	if s.ports.Library != nil {
		protected.POST("/upload", s.handleUpload)
		protected.GET("/files", s.handleListFiles)
		protected.DELETE("/delete/:name", s.handleDeleteFile)
	}
	if s.ports.Source != nil {
		protected.GET("/sources", s.handleListSources)
		protected.POST("/sources", s.handleAddSource)
		protected.DELETE("/sources/:name", s.handleRemoveSource)
	}
	if s.ports.Ingest != nil {
		protected.POST("/ingest", s.handleIngest)
		protected.GET("/documents", s.handleDocuments)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", HeaderRequestID)
	cfg.ExposeHeaders = []string{HeaderRequestID}
	return cfg
}
