package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/asrdrop/logger"
	"github.com/kbukum/asrdrop/observability"
	"github.com/kbukum/asrdrop/server/endpoint"
	"github.com/kbukum/asrdrop/server/middleware"
	"github.com/kbukum/asrdrop/transcription"
)

// Server is the HTTP trigger surface: a Gin engine behind the standard
// middleware stack, served over HTTP/1.1 and h2c on one port.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	handler    http.Handler
	registry   *prometheus.Registry
	metrics    *middleware.HTTPMetrics
	config     Config
	log        *logger.Logger

	mu       sync.Mutex
	listener net.Listener
}

// New creates a Server. cfg is defaulted and validated.
func New(cfg Config, log *logger.Logger) (*Server, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	// Set Gin mode based on global zerolog level.
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics, err := middleware.NewHTTPMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("http metrics: %w", err)
	}

	log = log.WithComponent("server")
	engine := gin.New()
	engine.Use(httpMetrics.Gin())

	handler := middleware.Chain(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.CORS(&cfg.CORS),
		middleware.BodySizeLimit(cfg.MaxBodySize),
		middleware.RequestLogger(log),
	)(engine)

	// h2c serves HTTP/2 without TLS next to HTTP/1.1.
	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          time.Duration(cfg.IdleTimeout) * time.Second,
	}
	handler = h2c.NewHandler(handler, h2s)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(cfg.IdleTimeout) * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		engine:     engine,
		handler:    handler,
		registry:   registry,
		metrics:    httpMetrics,
		config:     cfg,
		log:        log,
	}, nil
}

// GinEngine returns the underlying Gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// Handler returns the fully wrapped handler, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Registry returns the Prometheus registry served at /metrics.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// RegisterTranscription mounts the transcription routes for p:
//
//	POST /v1/transcriptions        first file only
//	POST /v1/transcriptions/batch  every file in one request
func (s *Server) RegisterTranscription(p transcription.Provider) {
	v1 := s.engine.Group("/v1", middleware.RateLimit(s.config.RateLimit))
	v1.POST("/transcriptions", endpoint.Transcribe(p, transcription.ModeSingle))
	v1.POST("/transcriptions/batch", endpoint.Transcribe(p, transcription.ModeBatch))
}

// RegisterDefaultEndpoints registers /health, /ready, /info and /metrics.
// p may be nil when no provider is configured.
func (s *Server) RegisterDefaultEndpoints(serviceName, version string, p transcription.Provider) {
	var checkers []observability.HealthChecker
	providerName := ""
	if p != nil {
		providerName = p.Name()
		checkers = append(checkers, observability.ProbeChecker{Name: p.Name(), Probe: p.IsAvailable})
	}
	s.engine.GET("/health", endpoint.Health(serviceName, version, checkers...))
	s.engine.GET("/ready", endpoint.Readiness(serviceName, checkers...))
	s.engine.GET("/info", endpoint.Info(serviceName, providerName))
	s.engine.GET("/metrics", endpoint.Metrics(s.registry))
}

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a goroutine.
func (s *Server) Start(_ context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Server error", logger.ErrorFields("serve", err))
		}
	}()

	s.log.Info("HTTP server started", logger.Fields("addr", listener.Addr().String()))
	return nil
}

// Stop gracefully shuts down the server. In-flight transcriptions get until
// ctx is done, or the write timeout when ctx has no deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.httpServer.WriteTimeout)
		defer cancel()
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.log.Error("Server shutdown error", logger.ErrorFields("shutdown", err))
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the bound address once started, else the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}
