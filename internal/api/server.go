// Package api provides the HTTP server for Exhale.
// It exposes the REST API the companion UI consumes: profile, event log,
// progress, achievements, and notifications.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/exhale-health/exhale/internal/app/achievement"
	"github.com/exhale-health/exhale/internal/app/notify"
	"github.com/exhale-health/exhale/internal/app/progress"
	"github.com/exhale-health/exhale/internal/domain"
	"github.com/exhale-health/exhale/internal/health"
)

// Refresher recomputes a user's progress and evaluates achievements in
// one pass. Implemented by the daemon; injected so handlers and the
// auto-refresh loop share one code path.
type Refresher interface {
	RefreshUser(userID string, now time.Time) (domain.ProgressStats, []domain.AchievementDef, error)
}

// Server is the Exhale HTTP API server.
type Server struct {
	store          domain.RecordStore
	progress       *progress.Service
	achievements   *achievement.Service
	notify         *notify.Service
	refresher      Refresher
	checker        *health.Checker
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(store domain.RecordStore, prog *progress.Service, ach *achievement.Service, notif *notify.Service) *Server {
	return &Server{store: store, progress: prog, achievements: ach, notify: notif}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetRefresher sets the refresh orchestrator.
func (s *Server) SetRefresher(r Refresher) { s.refresher = r }

// SetHealthChecker sets the health checker backing /health.
func (s *Server) SetHealthChecker(c *health.Checker) { s.checker = c }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "Exhale is running",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": "0.1.0",
		})
	})

	r.Route("/api/users/{userID}", func(r chi.Router) {
		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handlePutProfile)
		r.Post("/events", s.handleLogEvent)
		r.Get("/events", s.handleListEvents)
		r.Get("/progress", s.handleGetProgress)
		r.Post("/progress/refresh", s.handleRefresh)
		r.Get("/achievements", s.handleAchievements)
		r.Get("/notifications", s.handleNotifications)
		r.Post("/notifications/{id}/shown", s.handleNotificationShown)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.checker == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	status := "ok"
	code := http.StatusOK
	if !s.checker.IsHealthy() {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": s.checker.Statuses(),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for the local UI shell.
func corsMiddleware(next http.Handler) http.Handler {
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
