package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// healthCheckTimeout bounds each component probe in /health.
const healthCheckTimeout = 2 * time.Second

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Tool-call surface for LLM orchestration
		r.Route("/tools/robots_control", func(r chi.Router) {
			r.Get("/", s.handleToolDescriptor)
			r.Post("/", s.handleToolInvoke)
		})

		// Robot metadata endpoints
		r.Route("/robots", func(r chi.Router) {
			r.Get("/", s.handleListRobots)
			r.Post("/", s.handleCreateRobot)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetRobot)
				r.Patch("/", s.handleUpdateRobot)
				r.Delete("/", s.handleDeleteRobot)
			})
		})
	})

	return r
}

// handleHealth returns the server health status with per-component detail.
// MQTT being down is reported but does not fail the endpoint; the broker
// reconnects in the background.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	components := map[string]string{}
	status := "ok"

	if s.dbHealth != nil {
		if err := s.dbHealth.HealthCheck(ctx); err != nil {
			components["database"] = err.Error()
			status = "degraded"
		} else {
			components["database"] = "ok"
		}
	}

	if s.mqttHealth != nil {
		if err := s.mqttHealth.HealthCheck(ctx); err != nil {
			components["mqtt"] = err.Error()
		} else {
			components["mqtt"] = "ok"
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     status,
		"version":    s.version,
		"components": components,
	})
}
