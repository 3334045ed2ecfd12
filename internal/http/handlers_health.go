package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fundboard/internal/gateway"
)

// readinessPath is called without a credential; any answer from the
// backend, including a refusal, proves it is reachable.
const readinessPath = "/funds/stats/overview"

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	health := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.uptime).String(),
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(health)
}

// handleReady checks templates and backend reachability.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.gw == nil {
		checks["backend"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		res := s.gw.Request(ctx, gateway.Call{Method: http.MethodGet, Path: readinessPath})
		if res.Kind == gateway.Unavailable {
			checks["backend"] = fmt.Sprintf("failed: %v", res.Err)
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["backend"] = "ok"
		}
	}

	if s.sessions != nil {
		checks["sessions"] = map[string]interface{}{
			"active": s.sessions.Len(),
			"status": "ok",
		}
	}

	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(response)
}

// handleMetrics provides application metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	traceMetrics := s.traceMiddleware.GetMetrics()
	activeSessions := 0
	if s.sessions != nil {
		activeSessions = s.sessions.Len()
	}

	w.WriteHeader(http.StatusOK)

	counter := func(name, help string, v int64) {
		fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n%s %d\n\n", name, help, name, name, v)
	}
	gauge := func(name, help string, v float64) {
		fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s gauge\n%s %.0f\n\n", name, help, name, name, v)
	}

	counter("http_requests_total", "Total number of HTTP requests", traceMetrics.TotalRequests)
	counter("http_client_errors_total", "Responses with a 4xx status", traceMetrics.ClientErrors)
	counter("http_server_errors_total", "Responses with a 5xx status", traceMetrics.ServerErrors)
	gauge("http_response_time_avg_microseconds", "Average response time", float64(traceMetrics.AverageResponseTime))
	counter("logins_total", "Successful logins", s.appMetrics.logins.Load())
	counter("login_failures_total", "Rejected or failed login attempts", s.appMetrics.loginFailures.Load())
	counter("registrations_total", "Successful registrations", s.appMetrics.registrations.Load())
	counter("logouts_total", "Logouts", s.appMetrics.logouts.Load())
	gauge("sessions_active", "Live browser sessions", float64(activeSessions))
	gauge("uptime_seconds", "Application uptime in seconds", time.Since(s.appMetrics.uptime).Seconds())
}
