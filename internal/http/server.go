// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/redactor/internal/config"
	"github.com/allisson/redactor/internal/metrics"
	redactionHTTP "github.com/allisson/redactor/internal/redaction/http"
)

const serviceName = "redactor"

// ReadinessCheck reports whether a dependency is able to serve traffic.
type ReadinessCheck func(ctx context.Context) error

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
	checks map[string]ReadinessCheck
}

// NewServer creates a new HTTP server. Every entry of checks becomes a component
// of the readiness report.
func NewServer(
	host string,
	port int,
	logger *slog.Logger,
	checks map[string]ReadinessCheck,
) *Server {
	return &Server{
		logger: logger,
		checks: checks,
		server: newListener(host, port, 60*time.Second),
	}
}

// newListener returns an http.Server bound to host:port.
func newListener(host string, port int, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(host, strconv.Itoa(port)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}
}

// apiWriteTimeout leaves room for a full detection engine call plus decryption,
// redaction and writing the response.
func apiWriteTimeout(detectionTimeout time.Duration) time.Duration {
	return max(60*time.Second, detectionTimeout+30*time.Second)
}

// serve runs ListenAndServe and treats a graceful shutdown as success.
func serve(server *http.Server, logger *slog.Logger, name string) error {
	logger.Info("starting "+name, slog.String("addr", server.Addr))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return nil
}

// SetupRouter registers middleware and routes. ctx bounds background work owned by
// middleware such as the upload rate limiter cleanup.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	redactionHandler *redactionHTTP.RedactionHandler,
	metricsProvider *metrics.Provider,
) {
	s.server.WriteTimeout = apiWriteTimeout(cfg.DetectionEngineTimeout)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	uploadHandlers := []gin.HandlerFunc{}
	if cfg.RateLimitUploadEnabled {
		uploadHandlers = append(uploadHandlers, UploadRateLimitMiddleware(
			ctx,
			cfg.RateLimitUploadRequestsPerSec,
			cfg.RateLimitUploadBurst,
			s.logger,
		))
	}
	uploadHandlers = append(uploadHandlers, redactionHandler.UploadHandler)

	router.GET("/handshake", redactionHandler.HandshakeHandler)
	router.POST("/upload", uploadHandlers...)
	router.GET("/download/:file_id", redactionHandler.DownloadHandler)
	router.DELETE("/download/:file_id", redactionHandler.DeleteHandler)
	router.GET("/strategies", redactionHandler.StrategiesHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router
	return serve(s.server, s.logger, "http server")
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}

// readinessHandler runs every readiness check with a short deadline.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	ready := true
	components := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.String("component", name), slog.Any("error", err))
			components[name] = "error"
			ready = false
			continue
		}
		components[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
