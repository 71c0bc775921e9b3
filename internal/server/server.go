package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kassalytics/tracker/internal/betting"
	"github.com/kassalytics/tracker/internal/database"
	"github.com/kassalytics/tracker/internal/handler"
	"github.com/kassalytics/tracker/internal/logger"
	"github.com/kassalytics/tracker/internal/metrics"
	"github.com/kassalytics/tracker/internal/registry"
	"github.com/kassalytics/tracker/internal/repository"
)

type Server struct {
	httpServer      *http.Server
	dbPool          database.Pool
	bettingService  betting.Service
	registryService registry.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, bettingService betting.Service, registryService registry.Service, eventLog repository.EventLog) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Betting routes
		bettingHandler := handler.NewBettingHandler(bettingService)
		r.Route("/bets", func(r chi.Router) {
			r.Post("/", bettingHandler.HandlePlaceBet)
			r.Get("/", bettingHandler.HandleListGameWagers)
			r.Get("/history", bettingHandler.HandleWagerHistory)
		})
		r.Get("/balance", bettingHandler.HandleGetBalance)
		r.Get("/leaderboard", bettingHandler.HandleLeaderboard)

		// Game routes
		gameHandler := handler.NewGameHandler(registryService)
		r.Route("/games", func(r chi.Router) {
			r.Get("/", gameHandler.HandleListGames)
			r.Get("/get", gameHandler.HandleGetGame)
		})

		// Tracked account routes
		accountHandler := handler.NewAccountHandler(registryService)
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", accountHandler.HandleListAccounts)
			r.Post("/track", accountHandler.HandleTrackAccount)
			r.Post("/untrack", accountHandler.HandleUntrackAccount)
		})

		// Admin routes
		adminHandler := handler.NewAdminHandler(bettingService, eventLog)
		r.Route("/admin", func(r chi.Router) {
			r.Post("/resolve", adminHandler.HandleResolveGame)
			r.Post("/adjust", adminHandler.HandleAdjustBalance)
			r.Get("/events", adminHandler.HandleGetEvents)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:          dbPool,
		bettingService:  bettingService,
		registryService: registryService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
